package ledger

import (
	"context"
	"errors"

	"github.com/jhoicas/inventario-funeraria/internal/domain"
)

// Tipos de referencia externa que un movimiento puede enlazar.
const (
	ReferenceKindPurchaseOrder = "PURCHASE_ORDER"
	ReferenceKindCase          = "CASE"
)

// ReferenceLinker valida referencias opcionales antes de incrustarlas en un
// movimiento. La verificación es consultiva, no transaccional: la entidad
// externa podría borrarse entre la verificación y el commit, lo cual se
// acepta como consistencia eventual.
type ReferenceLinker struct {
	checker ReferenceChecker
}

// NewReferenceLinker construye el linker.
func NewReferenceLinker(checker ReferenceChecker) *ReferenceLinker {
	return &ReferenceLinker{checker: checker}
}

// ValidateReference verifica que la referencia exista en el sistema externo.
// ref vacío es un no-op (las referencias son opcionales). Devuelve
// ErrDanglingReference si no existe y ErrReferenceCheckTimeout si el
// colaborador no respondió; el caller puede reintentar esta última.
func (l *ReferenceLinker) ValidateReference(ctx context.Context, kind, ref string) error {
	if ref == "" {
		return nil
	}
	var (
		exists bool
		err    error
	)
	switch kind {
	case ReferenceKindPurchaseOrder:
		exists, err = l.checker.PurchaseOrderExists(ctx, ref)
	case ReferenceKindCase:
		exists, err = l.checker.CaseExists(ctx, ref)
	default:
		return domain.ErrInvalidInput
	}
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return domain.ErrReferenceCheckTimeout
		}
		return err
	}
	if !exists {
		return domain.ErrDanglingReference
	}
	return nil
}
