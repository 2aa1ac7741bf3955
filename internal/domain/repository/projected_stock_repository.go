package repository

import "github.com/jhoicas/inventario-funeraria/internal/domain/entity"

// ReorderItem resultado crudo del repositorio para un producto bajo reorden.
type ReorderItem struct {
	ProductID    string
	SKU          string
	ProductName  string
	Branch       string
	CurrentStock int64
	ReorderLevel int64
}

// ProjectedStockRepository define el puerto para el stock materializado por
// (producto, sede). Se actualiza únicamente dentro de la misma unidad atómica
// que el append del movimiento correspondiente.
type ProjectedStockRepository interface {
	// Get devuelve la proyección; si no hay fila, stock 0 y secuencia 0.
	Get(productID, branch string) (*entity.ProjectedStock, error)
	// GetForUpdate bloquea la fila para el append (SELECT FOR UPDATE o
	// equivalente); serializa los appends del mismo (producto, sede).
	GetForUpdate(productID, branch string) (*entity.ProjectedStock, error)
	Upsert(stock *entity.ProjectedStock) error

	// ListBelowReorderLevel devuelve los productos cuyo stock proyectado en la
	// sede indicada está por debajo de su nivel de reorden, mayor déficit primero.
	// branch vacío = todas las sedes.
	ListBelowReorderLevel(branch string) ([]ReorderItem, error)
}
