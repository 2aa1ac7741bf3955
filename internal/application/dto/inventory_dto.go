package dto

import "time"

// AppendMovementRequest body para POST /api/inventory/movements.
// Validaciones declarativas con go-playground/validator; las reglas de
// negocio (producto existente, stock suficiente) viven en el caso de uso.
type AppendMovementRequest struct {
	ProductID        string     `json:"product_id" validate:"required"`
	Branch           string     `json:"branch" validate:"required"`
	MovementType     string     `json:"movement_type" validate:"required,oneof=PURCHASE_RECEIPT SALE_USAGE STOCK_ADJUSTMENT BRANCH_TRANSFER SUPPLIER_RETURN DAMAGE_LOSS"`
	Direction        string     `json:"direction" validate:"required,oneof=IN OUT"`
	Quantity         int64      `json:"quantity" validate:"required,gt=0"`
	Reason           string     `json:"reason" validate:"required"`
	MovementDate     *time.Time `json:"movement_date,omitempty"`
	PurchaseOrderRef string     `json:"purchase_order_ref,omitempty"`
	CaseRef          string     `json:"case_ref,omitempty"`
	Notes            string     `json:"notes,omitempty"`
}

// MovementResponse representación de un movimiento confirmado.
type MovementResponse struct {
	MovementID       string    `json:"movement_id"`
	SequenceID       int64     `json:"sequence_id"`
	ProductID        string    `json:"product_id"`
	Branch           string    `json:"branch"`
	MovementType     string    `json:"movement_type"`
	Direction        string    `json:"direction"`
	Quantity         int64     `json:"quantity"`
	SignedDelta      int64     `json:"signed_delta"`
	Reason           string    `json:"reason"`
	StockBefore      int64     `json:"stock_before"`
	StockAfter       int64     `json:"stock_after"`
	PurchaseOrderRef string    `json:"purchase_order_ref,omitempty"`
	CaseRef          string    `json:"case_ref,omitempty"`
	Notes            string    `json:"notes,omitempty"`
	MovementDate     time.Time `json:"movement_date"`
	CreatedAt        time.Time `json:"created_at"`
}

// ListMovementsRequest query params para GET /api/inventory/movements.
type ListMovementsRequest struct {
	ProductID    string     `query:"product_id" validate:"required"`
	Branch       string     `query:"branch"`
	MovementType string     `query:"movement_type" validate:"omitempty,oneof=PURCHASE_RECEIPT SALE_USAGE STOCK_ADJUSTMENT BRANCH_TRANSFER SUPPLIER_RETURN DAMAGE_LOSS"`
	From         *time.Time `query:"from"`
	To           *time.Time `query:"to"`
	PageRequest
}

// StockResponse stock proyectado de un producto en una sede.
type StockResponse struct {
	ProductID      string    `json:"product_id"`
	Branch         string    `json:"branch"`
	CurrentStock   int64     `json:"current_stock"`
	LastSequenceID int64     `json:"last_sequence_id"`
	UpdatedAt      time.Time `json:"updated_at,omitempty"`
}

// ReorderStatusResponse clasificación de reposición de un producto en una sede.
type ReorderStatusResponse struct {
	ProductID    string `json:"product_id"`
	Branch       string `json:"branch"`
	CurrentStock int64  `json:"current_stock"`
	ReorderLevel int64  `json:"reorder_level"`
	MinimumStock *int64 `json:"minimum_stock,omitempty"`
	MaximumStock *int64 `json:"maximum_stock,omitempty"`
	Status       string `json:"status"` // OK, BELOW_REORDER_LEVEL, BELOW_MINIMUM, ABOVE_MAXIMUM
}

// ReorderSuggestionDTO un SKU bajo su nivel de reorden con la cantidad sugerida.
type ReorderSuggestionDTO struct {
	ProductID         string `json:"product_id"`
	SKU               string `json:"sku"`
	ProductName       string `json:"product_name"`
	Branch            string `json:"branch"`
	CurrentStock      int64  `json:"current_stock"`
	ReorderLevel      int64  `json:"reorder_level"`
	SuggestedOrderQty int64  `json:"suggested_order_qty"`
	Priority          int    `json:"priority"` // 1 = más urgente
}
