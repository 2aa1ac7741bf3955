package entity

import "time"

// ProjectedStock es el stock actual materializado de un producto en una sede.
// Derivado del ledger: siempre igual al StockAfter del último movimiento
// confirmado para (ProductID, Branch); recomputable con un replay desde cero.
type ProjectedStock struct {
	ProductID      string
	Branch         string
	CurrentStock   int64
	LastSequenceID int64 // 0 = sin movimientos
	UpdatedAt      time.Time
}
