package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateProductRequest struct {
	Name             string          `json:"name"               validate:"required,min=1,max=45"`
	Description      string          `json:"description"        validate:"max=255"`
	Status           string          `json:"status"             validate:"omitempty,oneof=active inactive out_of_stock"`
	Stock            int             `json:"stock"              validate:"min=0"`
	SupplierPrice    decimal.Decimal `json:"supplier_price"     validate:"min=0"`
	PublicPrice      decimal.Decimal `json:"public_price"       validate:"min=0"`
	Thumbnail        string          `json:"thumbnail"          validate:"max=255"`
	BarCode          string          `json:"bar_code"           validate:"required,max=45"`
	MinimalSafeStock int             `json:"minimal_safe_stock" validate:"min=0"`
	Discount         decimal.Decimal `json:"discount"           validate:"min=0,max=100"`
	CategoryID       uuid.UUID       `json:"category_id"        validate:"required"`
	SupplierID       *uuid.UUID      `json:"supplier_id"`
}

// UpdateProductRequest does not touch stock; use the stock endpoint for that.
type UpdateProductRequest struct {
	Name             *string          `json:"name"               validate:"omitempty,min=1,max=45"`
	Description      *string          `json:"description"        validate:"omitempty,max=255"`
	Status           *string          `json:"status"             validate:"omitempty,oneof=active inactive out_of_stock"`
	SupplierPrice    *decimal.Decimal `json:"supplier_price"     validate:"omitempty,min=0"`
	PublicPrice      *decimal.Decimal `json:"public_price"       validate:"omitempty,min=0"`
	Thumbnail        *string          `json:"thumbnail"          validate:"omitempty,max=255"`
	BarCode          *string          `json:"bar_code"           validate:"omitempty,max=45"`
	MinimalSafeStock *int             `json:"minimal_safe_stock" validate:"omitempty,min=0"`
	Discount         *decimal.Decimal `json:"discount"           validate:"omitempty,min=0,max=100"`
	CategoryID       *uuid.UUID       `json:"category_id"`
	SupplierID       *uuid.UUID       `json:"supplier_id"`
}

type AdjustStockRequest struct {
	Delta  int    `json:"delta"  validate:"required"`
	Reason string `json:"reason" validate:"max=255"`
}

// ProductFilter is bound from the query string of GET /products.
type ProductFilter struct {
	Name       string `form:"name"`
	Status     string `form:"status"      validate:"omitempty,oneof=active inactive out_of_stock"`
	SupplierID string `form:"supplier_id" validate:"omitempty,uuid"`
	PageQuery
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductResponse struct {
	ID               uuid.UUID       `json:"id"`
	Name             string          `json:"name"`
	Description      string          `json:"description"`
	Status           string          `json:"status"`
	Stock            int             `json:"stock"`
	SupplierPrice    decimal.Decimal `json:"supplier_price"`
	PublicPrice      decimal.Decimal `json:"public_price"`
	Thumbnail        string          `json:"thumbnail"`
	BarCode          string          `json:"bar_code"`
	MinimalSafeStock int             `json:"minimal_safe_stock"`
	LowStock         bool            `json:"low_stock"`
	Discount         decimal.Decimal `json:"discount"`
	EnterpriseID     uuid.UUID       `json:"enterprise_id"`
	CategoryID       uuid.UUID       `json:"category_id"`
	CategoryName     string          `json:"category_name,omitempty"`
	SupplierID       *uuid.UUID      `json:"supplier_id"`
	SupplierName     string          `json:"supplier_name,omitempty"`
}

type StockMovementResponse struct {
	ID          uuid.UUID  `json:"id"`
	ProductID   uuid.UUID  `json:"product_id"`
	Kind        string     `json:"kind"`
	Delta       int        `json:"delta"`
	StockBefore int        `json:"stock_before"`
	StockAfter  int        `json:"stock_after"`
	Reason      string     `json:"reason"`
	ReferenceID *uuid.UUID `json:"reference_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}
