package ledger

import (
	"github.com/jhoicas/inventario-funeraria/internal/application/dto"
	"github.com/jhoicas/inventario-funeraria/internal/domain"
	"github.com/jhoicas/inventario-funeraria/internal/domain/entity"
	"github.com/jhoicas/inventario-funeraria/internal/domain/inventory"
	"github.com/jhoicas/inventario-funeraria/internal/domain/repository"
)

// ReorderMonitorUseCase clasifica el estado de reposición de los productos
// comparando el stock proyectado contra los umbrales del catálogo.
// Sin efectos secundarios: seguro de invocar con cualquier frecuencia.
type ReorderMonitorUseCase struct {
	productRepo repository.ProductRepository
	projRepo    repository.ProjectedStockRepository
}

// NewReorderMonitorUseCase construye el monitor.
func NewReorderMonitorUseCase(
	productRepo repository.ProductRepository,
	projRepo repository.ProjectedStockRepository,
) *ReorderMonitorUseCase {
	return &ReorderMonitorUseCase{productRepo: productRepo, projRepo: projRepo}
}

// EvaluateReorderStatus devuelve OK, BELOW_REORDER_LEVEL, BELOW_MINIMUM o
// ABOVE_MAXIMUM para (producto, sede). Función pura de sus entradas actuales.
func (uc *ReorderMonitorUseCase) EvaluateReorderStatus(productID, branch string) (*dto.ReorderStatusResponse, error) {
	if productID == "" || branch == "" {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	proj, err := uc.projRepo.Get(productID, branch)
	if err != nil {
		return nil, err
	}

	return &dto.ReorderStatusResponse{
		ProductID:    product.ID,
		Branch:       branch,
		CurrentStock: proj.CurrentStock,
		ReorderLevel: product.ReorderLevel,
		MinimumStock: product.MinimumStock,
		MaximumStock: product.MaximumStock,
		Status:       inventory.ClassifyReorderStatus(product, proj.CurrentStock),
	}, nil
}

// ListBelowReorderLevel devuelve los SKUs bajo su nivel de reorden en la sede
// indicada (vacía = todas), con cantidad sugerida y prioridad por déficit.
func (uc *ReorderMonitorUseCase) ListBelowReorderLevel(branch string) ([]dto.ReorderSuggestionDTO, error) {
	items, err := uc.projRepo.ListBelowReorderLevel(branch)
	if err != nil {
		return nil, err
	}

	suggestions := make([]dto.ReorderSuggestionDTO, 0, len(items))
	for i, item := range items {
		// El repo solo trae el umbral; ReorderQuantity se resuelve del catálogo.
		product, err := uc.productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			// Proyección residual de un producto retirado del catálogo.
			product = &entity.Product{ID: item.ProductID, ReorderLevel: item.ReorderLevel}
		}
		suggestions = append(suggestions, dto.ReorderSuggestionDTO{
			ProductID:         item.ProductID,
			SKU:               item.SKU,
			ProductName:       item.ProductName,
			Branch:            item.Branch,
			CurrentStock:      item.CurrentStock,
			ReorderLevel:      item.ReorderLevel,
			SuggestedOrderQty: inventory.SuggestedOrderQuantity(product, item.CurrentStock),
			Priority:          i + 1, // el repo ordena por mayor déficit primero
		})
	}
	return suggestions, nil
}
