package repository

import (
	"time"

	"github.com/jhoicas/inventario-funeraria/internal/domain/entity"
)

// MovementFilter filtros opcionales para listar movimientos de un producto.
type MovementFilter struct {
	Branch       string // vacío = todas las sedes
	MovementType string // vacío = todos los tipos
	From         *time.Time
	To           *time.Time
	Limit        int // <= 0 = sin límite
	Offset       int
}

// StockMovementRepository define el puerto de persistencia del ledger.
// El ledger es append-only: no existen Update ni Delete; las correcciones
// son movimientos compensatorios nuevos.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	GetByID(id string) (*entity.StockMovement, error)
	// ListByProduct devuelve movimientos ordenados por SequenceID ascendente
	// (secuencia reiniciable: Limit/Offset permiten retomar el recorrido).
	ListByProduct(productID string, filter MovementFilter) ([]*entity.StockMovement, error)
	// ListForReplay devuelve TODOS los movimientos de (producto, sede)
	// ordenados por SequenceID ascendente, para reconstruir la proyección.
	ListForReplay(productID, branch string) ([]*entity.StockMovement, error)
}
