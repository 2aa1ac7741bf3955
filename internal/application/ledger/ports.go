package ledger

import (
	"context"

	"github.com/jhoicas/inventario-funeraria/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una unidad atómica de almacenamiento,
// pasando repositorios atados a esa transacción. Garantiza que el append del
// movimiento y la actualización del stock proyectado se confirmen juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		projRepo repository.ProjectedStockRepository,
	) error) error
}

// ReferenceChecker verifica la existencia de referencias externas opcionales
// (orden de compra, caso funerario) contra los sistemas colaboradores.
// La verificación ocurre SIEMPRE antes de adquirir el lock del append: ninguna
// llamada de red se hace con el lock tomado.
type ReferenceChecker interface {
	PurchaseOrderExists(ctx context.Context, ref string) (bool, error)
	CaseExists(ctx context.Context, ref string) (bool, error)
}
