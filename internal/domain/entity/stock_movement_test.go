package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/inventario-funeraria/internal/domain/entity"
)

func TestSignedDelta(t *testing.T) {
	assert.Equal(t, int64(7), entity.SignedDelta(entity.DirectionIN, 7))
	assert.Equal(t, int64(-7), entity.SignedDelta(entity.DirectionOUT, 7))
}

func TestValidMovementType(t *testing.T) {
	for _, mt := range []string{
		entity.MovementTypePurchaseReceipt,
		entity.MovementTypeSaleUsage,
		entity.MovementTypeStockAdjustment,
		entity.MovementTypeBranchTransfer,
		entity.MovementTypeSupplierReturn,
		entity.MovementTypeDamageLoss,
	} {
		assert.True(t, entity.ValidMovementType(mt), mt)
	}
	assert.False(t, entity.ValidMovementType("DONATION"))
	assert.False(t, entity.ValidMovementType(""))
}

func TestValidDirection(t *testing.T) {
	assert.True(t, entity.ValidDirection(entity.DirectionIN))
	assert.True(t, entity.ValidDirection(entity.DirectionOUT))
	assert.False(t, entity.ValidDirection("SIDEWAYS"))
}

func TestProductValidate(t *testing.T) {
	min, max := int64(2), int64(10)
	base := func() *entity.Product {
		return &entity.Product{
			ID:   "PRD-0001",
			SKU:  "SKU-001",
			Name: "Urna de mármol",
			Unit: entity.UnitEach,
		}
	}

	assert.True(t, base().Validate())

	p := base()
	p.MinimumStock, p.MaximumStock = &min, &max
	assert.True(t, p.Validate())

	// Mínimo mayor que máximo.
	p = base()
	p.MinimumStock, p.MaximumStock = &max, &min
	assert.False(t, p.Validate())

	p = base()
	p.Unit = "LITRO"
	assert.False(t, p.Validate())

	p = base()
	p.ReorderLevel = -1
	assert.False(t, p.Validate())

	p = base()
	p.SKU = ""
	assert.False(t, p.Validate())
}
