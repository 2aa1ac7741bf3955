package ledger

import (
	"context"

	"github.com/jhoicas/inventario-funeraria/internal/domain"
	"github.com/jhoicas/inventario-funeraria/internal/domain/entity"
	"github.com/jhoicas/inventario-funeraria/internal/domain/repository"
	"github.com/jhoicas/inventario-funeraria/pkg/logger"
)

// StockProjectorUseCase responde "cuánto stock hay de P en la sede B" sin
// replegar el ledger completo en cada consulta, y reconstruye la proyección
// cuando se sospecha corrupción.
type StockProjectorUseCase struct {
	txRunner TxRunner
	movRepo  repository.StockMovementRepository
	projRepo repository.ProjectedStockRepository
	log      *logger.Logger
}

// NewStockProjectorUseCase construye el proyector. movRepo y projRepo van
// atados al pool (lecturas); txRunner se usa solo para Rebuild.
func NewStockProjectorUseCase(
	txRunner TxRunner,
	movRepo repository.StockMovementRepository,
	projRepo repository.ProjectedStockRepository,
	log *logger.Logger,
) *StockProjectorUseCase {
	return &StockProjectorUseCase{txRunner: txRunner, movRepo: movRepo, projRepo: projRepo, log: log}
}

// GetCurrentStock devuelve la proyección materializada; sin fila = stock 0.
func (uc *StockProjectorUseCase) GetCurrentStock(productID, branch string) (*entity.ProjectedStock, error) {
	if productID == "" || branch == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.projRepo.Get(productID, branch)
}

// GetMovement devuelve un movimiento confirmado por su movement_id.
func (uc *StockProjectorUseCase) GetMovement(movementID string) (*entity.StockMovement, error) {
	if movementID == "" {
		return nil, domain.ErrInvalidInput
	}
	mov, err := uc.movRepo.GetByID(movementID)
	if err != nil {
		return nil, err
	}
	if mov == nil {
		return nil, domain.ErrNotFound
	}
	return mov, nil
}

// ListMovements devuelve los movimientos de un producto ordenados por
// SequenceID ascendente. Solo lectura, sin locks más allá del snapshot.
func (uc *StockProjectorUseCase) ListMovements(productID string, filter repository.MovementFilter) ([]*entity.StockMovement, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	if filter.MovementType != "" && !entity.ValidMovementType(filter.MovementType) {
		return nil, domain.ErrInvalidInput
	}
	return uc.movRepo.ListByProduct(productID, filter)
}

// Rebuild repliega todos los movimientos de (producto, sede) desde la
// secuencia 0 y sobreescribe la proyección. Toma el mismo lock que el append
// para excluir escrituras concurrentes sobre la clave. Si un StockAfter
// almacenado no coincide con el replay, aborta con ErrReplayMismatch y la
// proyección anterior queda intacta: la divergencia se reporta, nunca se
// corrige en silencio.
func (uc *StockProjectorUseCase) Rebuild(ctx context.Context, productID, branch string) (*entity.ProjectedStock, error) {
	if productID == "" || branch == "" {
		return nil, domain.ErrInvalidInput
	}

	var rebuilt *entity.ProjectedStock
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		projRepo repository.ProjectedStockRepository,
	) error {
		proj, err := projRepo.GetForUpdate(productID, branch)
		if err != nil {
			return err
		}

		movements, err := movRepo.ListForReplay(productID, branch)
		if err != nil {
			return err
		}

		var running int64
		var lastSeq int64
		for _, m := range movements {
			if m.StockBefore != running || m.StockAfter != running+m.SignedDelta {
				uc.log.Error().
					Str("product_id", productID).
					Str("branch", branch).
					Str("movement_id", m.ID).
					Int64("sequence_id", m.SequenceID).
					Int64("expected_before", running).
					Int64("stored_before", m.StockBefore).
					Msg("replay del ledger no coincide con el movimiento almacenado")
				return domain.ErrReplayMismatch
			}
			running = m.StockAfter
			lastSeq = m.SequenceID
		}

		proj.CurrentStock = running
		proj.LastSequenceID = lastSeq
		if err := projRepo.Upsert(proj); err != nil {
			return err
		}
		rebuilt = proj
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("product_id", productID).
		Str("branch", branch).
		Int64("current_stock", rebuilt.CurrentStock).
		Int64("last_sequence_id", rebuilt.LastSequenceID).
		Msg("proyección de stock reconstruida")
	return rebuilt, nil
}
