package catalog_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-funeraria/internal/application/catalog"
	"github.com/jhoicas/inventario-funeraria/internal/application/dto"
	"github.com/jhoicas/inventario-funeraria/internal/domain"
	"github.com/jhoicas/inventario-funeraria/internal/domain/entity"
	"github.com/jhoicas/inventario-funeraria/internal/infrastructure/memory"
)

func newProductRequest() dto.CreateProductRequest {
	return dto.CreateProductRequest{
		ProductID:    "PRD-0007",
		SKU:          "SKU-QUIM-007",
		Name:         "Líquido de embalsamamiento",
		Category:     "Químicos",
		Unit:         entity.UnitGallon,
		CostPrice:    decimal.NewFromFloat(45.50),
		SellingPrice: decimal.NewFromFloat(60.00),
		ReorderLevel: 8,
	}
}

func TestProductCreate(t *testing.T) {
	store := memory.New()
	uc := catalog.NewProductUseCase(store.Products())

	created, err := uc.Create(newProductRequest())
	require.NoError(t, err)
	assert.Equal(t, "PRD-0007", created.ProductID)
	assert.Equal(t, entity.ProductStatusActive, created.Status)
	assert.True(t, created.CostPrice.Equal(decimal.NewFromFloat(45.50)))

	// SKU duplicado.
	dup := newProductRequest()
	dup.ProductID = "PRD-0008"
	_, err = uc.Create(dup)
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	// product_id duplicado.
	dup = newProductRequest()
	dup.SKU = "SKU-QUIM-008"
	_, err = uc.Create(dup)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductCreate_UnidadPorDefectoEInvariantes(t *testing.T) {
	store := memory.New()
	uc := catalog.NewProductUseCase(store.Products())

	// Sin unidad: EACH por defecto.
	req := newProductRequest()
	req.Unit = ""
	created, err := uc.Create(req)
	require.NoError(t, err)
	assert.Equal(t, entity.UnitEach, created.Unit)

	// Mínimo mayor que máximo.
	min, max := int64(20), int64(5)
	req = newProductRequest()
	req.ProductID, req.SKU = "PRD-0009", "SKU-0009"
	req.MinimumStock, req.MaximumStock = &min, &max
	_, err = uc.Create(req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductGetAndList(t *testing.T) {
	store := memory.New()
	uc := catalog.NewProductUseCase(store.Products())
	_, err := uc.Create(newProductRequest())
	require.NoError(t, err)

	got, err := uc.GetByID("PRD-0007")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "SKU-QUIM-007", got.SKU)

	missing, err := uc.GetByID("PRD-0000")
	require.NoError(t, err)
	assert.Nil(t, missing)

	list, err := uc.List(10, 0)
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)
}
