package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	ProductID       string          `json:"product_id" validate:"required"`
	SKU             string          `json:"sku" validate:"required"`
	Name            string          `json:"name" validate:"required"`
	Category        string          `json:"category" validate:"required"`
	ProductType     string          `json:"product_type"`
	Unit            string          `json:"unit" validate:"omitempty,oneof=EACH BOX PACK SET GALLON"`
	CostPrice       decimal.Decimal `json:"cost_price"`
	SellingPrice    decimal.Decimal `json:"selling_price"`
	Supplier        string          `json:"supplier"`
	Description     string          `json:"description"`
	ReorderLevel    int64           `json:"reorder_level" validate:"omitempty,min=0"`
	ReorderQuantity int64           `json:"reorder_quantity" validate:"omitempty,min=0"`
	MinimumStock    *int64          `json:"minimum_stock,omitempty"`
	MaximumStock    *int64          `json:"maximum_stock,omitempty"`
}

// ProductResponse representación de un producto del catálogo.
type ProductResponse struct {
	ProductID       string          `json:"product_id"`
	SKU             string          `json:"sku"`
	Name            string          `json:"name"`
	Category        string          `json:"category"`
	ProductType     string          `json:"product_type,omitempty"`
	Unit            string          `json:"unit"`
	CostPrice       decimal.Decimal `json:"cost_price"`
	SellingPrice    decimal.Decimal `json:"selling_price"`
	Status          string          `json:"status"`
	Supplier        string          `json:"supplier,omitempty"`
	Description     string          `json:"description,omitempty"`
	ReorderLevel    int64           `json:"reorder_level"`
	ReorderQuantity int64           `json:"reorder_quantity"`
	MinimumStock    *int64          `json:"minimum_stock,omitempty"`
	MaximumStock    *int64          `json:"maximum_stock,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ProductListResponse listado paginado de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
