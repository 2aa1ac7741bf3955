package inventory

import "github.com/jhoicas/inventario-funeraria/internal/domain/entity"

// Estados de reposición de un producto en una sede.
const (
	ReorderStatusOK                = "OK"
	ReorderStatusBelowReorderLevel = "BELOW_REORDER_LEVEL"
	ReorderStatusBelowMinimum      = "BELOW_MINIMUM"
	ReorderStatusAboveMaximum      = "ABOVE_MAXIMUM"
)

// ClassifyReorderStatus compara el stock proyectado contra los umbrales del
// producto (servicio de dominio, función pura). Precedencia: BELOW_MINIMUM
// sobre BELOW_REORDER_LEVEL sobre ABOVE_MAXIMUM.
func ClassifyReorderStatus(product *entity.Product, currentStock int64) string {
	if product.MinimumStock != nil && currentStock < *product.MinimumStock {
		return ReorderStatusBelowMinimum
	}
	if currentStock < product.ReorderLevel {
		return ReorderStatusBelowReorderLevel
	}
	if product.MaximumStock != nil && currentStock > *product.MaximumStock {
		return ReorderStatusAboveMaximum
	}
	return ReorderStatusOK
}

// SuggestedOrderQuantity devuelve la cantidad sugerida de pedido para un
// producto bajo su nivel de reorden: ReorderQuantity si está configurada,
// si no el déficit contra el nivel de reorden.
func SuggestedOrderQuantity(product *entity.Product, currentStock int64) int64 {
	if currentStock >= product.ReorderLevel {
		return 0
	}
	if product.ReorderQuantity > 0 {
		return product.ReorderQuantity
	}
	return product.ReorderLevel - currentStock
}
