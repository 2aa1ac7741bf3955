package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Unidades de medida del catálogo.
const (
	UnitEach   = "EACH"
	UnitBox    = "BOX"
	UnitPack   = "PACK"
	UnitSet    = "SET"
	UnitGallon = "GALLON"
)

// Estados del producto en el catálogo.
const (
	ProductStatusActive       = "Active"
	ProductStatusInactive     = "Inactive"
	ProductStatusDiscontinued = "Discontinued"
)

// Product representa un producto o SKU del catálogo (ataúdes, urnas, químicos, flores...).
// El stock NO vive aquí: se deriva del ledger de movimientos (ProjectedStock).
// CostPrice/SellingPrice son datos de referencia; el ledger nunca los modifica.
type Product struct {
	ID              string // product_id, clave de negocio (ej. PRD-0007)
	SKU             string // único
	Name            string
	Category        string
	ProductType     string
	Unit            string // EACH, BOX, PACK, SET, GALLON
	CostPrice       decimal.Decimal
	SellingPrice    decimal.Decimal
	Status          string
	Supplier        string
	Description     string
	ReorderLevel    int64  // umbral de reorden (>= 0)
	ReorderQuantity int64  // cantidad sugerida de pedido (>= 0)
	MinimumStock    *int64 // opcional
	MaximumStock    *int64 // opcional; si ambos están definidos, Minimum <= Maximum
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ValidUnit indica si la unidad pertenece al catálogo de unidades.
func ValidUnit(u string) bool {
	switch u {
	case UnitEach, UnitBox, UnitPack, UnitSet, UnitGallon:
		return true
	}
	return false
}

// Validate verifica los invariantes del catálogo: umbrales no negativos y
// MinimumStock <= MaximumStock cuando ambos están definidos.
func (p *Product) Validate() bool {
	if p.ID == "" || p.SKU == "" || p.Name == "" {
		return false
	}
	if !ValidUnit(p.Unit) {
		return false
	}
	if p.ReorderLevel < 0 || p.ReorderQuantity < 0 {
		return false
	}
	if p.MinimumStock != nil && *p.MinimumStock < 0 {
		return false
	}
	if p.MaximumStock != nil && *p.MaximumStock < 0 {
		return false
	}
	if p.MinimumStock != nil && p.MaximumStock != nil && *p.MinimumStock > *p.MaximumStock {
		return false
	}
	return true
}
