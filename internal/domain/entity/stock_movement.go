package entity

import "time"

// Tipos de movimiento de stock (las seis categorías del formulario de bodega).
const (
	MovementTypePurchaseReceipt = "PURCHASE_RECEIPT" // recepción de orden de compra
	MovementTypeSaleUsage       = "SALE_USAGE"       // venta o uso en un caso
	MovementTypeStockAdjustment = "STOCK_ADJUSTMENT" // ajuste por conteo físico
	MovementTypeBranchTransfer  = "BRANCH_TRANSFER"  // traslado entre sedes
	MovementTypeSupplierReturn  = "SUPPLIER_RETURN"  // devolución a proveedor
	MovementTypeDamageLoss      = "DAMAGE_LOSS"      // daño o pérdida
)

// Dirección del movimiento.
const (
	DirectionIN  = "IN"  // aumenta stock
	DirectionOUT = "OUT" // disminuye stock
)

// StockMovement es un registro append-only del ledger de inventario.
// Inmutable una vez confirmado: las correcciones son movimientos compensatorios
// nuevos, nunca ediciones ni borrados.
type StockMovement struct {
	ID               string // movement_id, único global (UUID)
	SequenceID       int64  // consecutivo por (producto, sede), sin huecos
	ProductID        string
	Branch           string
	Type             string // PURCHASE_RECEIPT, SALE_USAGE, ...
	Direction        string // IN, OUT
	Quantity         int64  // siempre > 0
	SignedDelta      int64  // +Quantity si IN, -Quantity si OUT
	Reason           string
	StockBefore      int64 // stock proyectado leído bajo el lock del append
	StockAfter       int64 // StockBefore + SignedDelta
	PurchaseOrderRef string // opcional, número de orden de compra
	CaseRef          string // opcional, id de caso funerario
	Notes            string // opcional
	MovementDate     time.Time
	CreatedAt        time.Time
	CreatedBy        string
}

// ValidMovementType indica si el tipo pertenece al conjunto enumerado.
func ValidMovementType(t string) bool {
	switch t {
	case MovementTypePurchaseReceipt, MovementTypeSaleUsage, MovementTypeStockAdjustment,
		MovementTypeBranchTransfer, MovementTypeSupplierReturn, MovementTypeDamageLoss:
		return true
	}
	return false
}

// ValidDirection indica si la dirección es IN u OUT.
func ValidDirection(d string) bool {
	return d == DirectionIN || d == DirectionOUT
}

// SignedDelta calcula el delta con signo: +quantity para IN, -quantity para OUT.
func SignedDelta(direction string, quantity int64) int64 {
	if direction == DirectionIN {
		return quantity
	}
	return -quantity
}
