package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/inventario-funeraria/internal/domain"
	"github.com/jhoicas/inventario-funeraria/internal/domain/entity"
	"github.com/jhoicas/inventario-funeraria/internal/domain/repository"
)

// Options parámetros de comportamiento del ledger.
type Options struct {
	// AllowNegativeStock permite que un OUT deje el stock en negativo.
	// Por defecto false: el append falla con ErrInsufficientStock.
	AllowNegativeStock bool
	// MaxRetries reintentos internos ante ErrConflict antes de propagarlo.
	MaxRetries int
	// RetryBackoff espera base entre reintentos (crece linealmente).
	RetryBackoff time.Duration
}

// DefaultOptions valores por defecto del ledger.
func DefaultOptions() Options {
	return Options{
		AllowNegativeStock: false,
		MaxRetries:         3,
		RetryBackoff:       50 * time.Millisecond,
	}
}

// AppendMovementUseCase registra movimientos de stock de forma transaccional.
// Cada append lee el stock proyectado bajo el lock por (producto, sede),
// calcula StockBefore/StockAfter en el servidor y confirma movimiento y
// proyección en la misma unidad atómica.
type AppendMovementUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	linker      *ReferenceLinker
	opts        Options
}

// NewAppendMovementUseCase construye el caso de uso.
func NewAppendMovementUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	linker *ReferenceLinker,
	opts Options,
) *AppendMovementUseCase {
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = DefaultOptions().MaxRetries
	}
	if opts.RetryBackoff <= 0 {
		opts.RetryBackoff = DefaultOptions().RetryBackoff
	}
	return &AppendMovementUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		linker:      linker,
		opts:        opts,
	}
}

// MovementInput entrada para registrar un movimiento en el ledger.
type MovementInput struct {
	ProductID        string
	Branch           string
	MovementType     string
	Direction        string
	Quantity         int64
	Reason           string
	MovementDate     time.Time // cero = ahora
	PurchaseOrderRef string
	CaseRef          string
	Notes            string
	CreatedBy        string
}

// AppendMovement valida la entrada, verifica las referencias externas (antes
// de cualquier lock) y confirma el movimiento con el siguiente SequenceID
// sin huecos para (producto, sede). Devuelve el movimiento confirmado.
// Ante ErrConflict reintenta internamente hasta Options.MaxRetries veces.
func (uc *AppendMovementUseCase) AppendMovement(ctx context.Context, input MovementInput) (*entity.StockMovement, error) {
	if err := uc.validate(input); err != nil {
		return nil, err
	}

	// El producto debe existir en el catálogo (el ledger nunca lo muta).
	product, err := uc.productRepo.GetByID(input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	// Referencias externas: verificación consultiva, estrictamente antes del lock.
	if err := uc.linker.ValidateReference(ctx, ReferenceKindPurchaseOrder, input.PurchaseOrderRef); err != nil {
		return nil, err
	}
	if err := uc.linker.ValidateReference(ctx, ReferenceKindCase, input.CaseRef); err != nil {
		return nil, err
	}

	var committed *entity.StockMovement
	for attempt := 0; ; attempt++ {
		committed, err = uc.appendOnce(ctx, input)
		if err == nil {
			return committed, nil
		}
		if !errors.Is(err, domain.ErrConflict) || attempt+1 >= uc.opts.MaxRetries {
			return nil, err
		}
		// Backoff lineal acotado antes de reintentar el conflicto.
		select {
		case <-time.After(uc.opts.RetryBackoff * time.Duration(attempt+1)):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// appendOnce ejecuta un intento de append dentro de la unidad atómica.
// Una vez tomado el lock la operación corre hasta commit o fallo explícito;
// no se interrumpe por cancelación para no dejar ledger y proyección
// desincronizados.
func (uc *AppendMovementUseCase) appendOnce(ctx context.Context, input MovementInput) (*entity.StockMovement, error) {
	var committed *entity.StockMovement

	err := uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		projRepo repository.ProjectedStockRepository,
	) error {
		// Lock por (producto, sede): serializa la secuencia leer-calcular-escribir.
		proj, err := projRepo.GetForUpdate(input.ProductID, input.Branch)
		if err != nil {
			return err
		}

		delta := entity.SignedDelta(input.Direction, input.Quantity)
		stockBefore := proj.CurrentStock
		stockAfter := stockBefore + delta
		if stockAfter < 0 && !uc.opts.AllowNegativeStock {
			return domain.ErrInsufficientStock
		}

		now := time.Now()
		movementDate := input.MovementDate
		if movementDate.IsZero() {
			movementDate = now
		}

		mov := &entity.StockMovement{
			ID:               uuid.New().String(),
			SequenceID:       proj.LastSequenceID + 1,
			ProductID:        input.ProductID,
			Branch:           input.Branch,
			Type:             input.MovementType,
			Direction:        input.Direction,
			Quantity:         input.Quantity,
			SignedDelta:      delta,
			Reason:           input.Reason,
			StockBefore:      stockBefore,
			StockAfter:       stockAfter,
			PurchaseOrderRef: input.PurchaseOrderRef,
			CaseRef:          input.CaseRef,
			Notes:            input.Notes,
			MovementDate:     movementDate,
			CreatedAt:        now,
			CreatedBy:        input.CreatedBy,
		}
		if err := movRepo.Create(mov); err != nil {
			return err
		}

		proj.CurrentStock = stockAfter
		proj.LastSequenceID = mov.SequenceID
		proj.UpdatedAt = now
		if err := projRepo.Upsert(proj); err != nil {
			return err
		}

		committed = mov
		return nil
	})
	if err != nil {
		return nil, err
	}
	return committed, nil
}

// validate reglas estructurales: enums, cantidad positiva y razón no vacía.
func (uc *AppendMovementUseCase) validate(input MovementInput) error {
	if input.ProductID == "" || input.Branch == "" || input.Reason == "" {
		return domain.ErrInvalidInput
	}
	if !entity.ValidMovementType(input.MovementType) {
		return domain.ErrInvalidInput
	}
	if !entity.ValidDirection(input.Direction) {
		return domain.ErrInvalidInput
	}
	if input.Quantity <= 0 {
		return domain.ErrInvalidInput
	}
	return nil
}
