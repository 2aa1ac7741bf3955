package catalog

import (
	"time"

	"github.com/jhoicas/inventario-funeraria/internal/application/dto"
	"github.com/jhoicas/inventario-funeraria/internal/domain"
	"github.com/jhoicas/inventario-funeraria/internal/domain/entity"
	"github.com/jhoicas/inventario-funeraria/internal/domain/repository"
)

// ProductUseCase altas y consultas del catálogo. El stock NUNCA se edita
// aquí: toda variación de cantidad pasa por el ledger de movimientos.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create registra un producto nuevo. SKU y product_id deben ser únicos.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if existing, _ := uc.repo.GetBySKU(in.SKU); existing != nil {
		return nil, domain.ErrDuplicate
	}
	if existing, _ := uc.repo.GetByID(in.ProductID); existing != nil {
		return nil, domain.ErrDuplicate
	}
	if in.Unit == "" {
		in.Unit = entity.UnitEach
	}

	now := time.Now()
	product := &entity.Product{
		ID:              in.ProductID,
		SKU:             in.SKU,
		Name:            in.Name,
		Category:        in.Category,
		ProductType:     in.ProductType,
		Unit:            in.Unit,
		CostPrice:       in.CostPrice,
		SellingPrice:    in.SellingPrice,
		Status:          entity.ProductStatusActive,
		Supplier:        in.Supplier,
		Description:     in.Description,
		ReorderLevel:    in.ReorderLevel,
		ReorderQuantity: in.ReorderQuantity,
		MinimumStock:    in.MinimumStock,
		MaximumStock:    in.MaximumStock,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if !product.Validate() {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por su clave de negocio.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// List lista productos con paginación.
func (uc *ProductUseCase) List(limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: len(items)},
	}, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ProductID:       p.ID,
		SKU:             p.SKU,
		Name:            p.Name,
		Category:        p.Category,
		ProductType:     p.ProductType,
		Unit:            p.Unit,
		CostPrice:       p.CostPrice,
		SellingPrice:    p.SellingPrice,
		Status:          p.Status,
		Supplier:        p.Supplier,
		Description:     p.Description,
		ReorderLevel:    p.ReorderLevel,
		ReorderQuantity: p.ReorderQuantity,
		MinimumStock:    p.MinimumStock,
		MaximumStock:    p.MaximumStock,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}
