package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound              = errors.New("recurso no encontrado")
	ErrInvalidInput          = errors.New("entrada inválida")
	ErrDuplicate             = errors.New("recurso duplicado")
	ErrConflict              = errors.New("conflicto de concurrencia con el estado actual")
	ErrInsufficientStock     = errors.New("stock insuficiente")
	ErrDanglingReference     = errors.New("la referencia externa no existe")
	ErrReferenceCheckTimeout = errors.New("no se pudo verificar la referencia externa")
	ErrReplayMismatch        = errors.New("divergencia entre el ledger y el stock proyectado")
)
