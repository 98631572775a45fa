package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateSaleRequest registers one product line. A zero price takes the
// product's public price; an empty sell_date means today.
type CreateSaleRequest struct {
	Quantity  int             `json:"quantity"   validate:"required,min=1"`
	Discount  decimal.Decimal `json:"discount"   validate:"min=0"`
	Price     decimal.Decimal `json:"price"      validate:"min=0"`
	SellDate  string          `json:"sell_date"  validate:"omitempty,datetime=2006-01-02"`
	InvoiceID uuid.UUID       `json:"invoice_id" validate:"required"`
	ClientID  uuid.UUID       `json:"client_id"  validate:"required"`
	ProductID uuid.UUID       `json:"product_id" validate:"required"`
}

type SaleResponse struct {
	ID           uuid.UUID       `json:"id"`
	Quantity     int             `json:"quantity"`
	Discount     decimal.Decimal `json:"discount"`
	Price        decimal.Decimal `json:"price"`
	SellDate     string          `json:"sell_date"`
	TotalPrice   decimal.Decimal `json:"total_price"`
	InvoiceID    uuid.UUID       `json:"invoice_id"`
	ClientID     uuid.UUID       `json:"client_id"`
	ProductID    uuid.UUID       `json:"product_id"`
	ProductName  string          `json:"product_name,omitempty"`
	EmployeeID   *uuid.UUID      `json:"employee_id,omitempty"`
	EnterpriseID uuid.UUID       `json:"enterprise_id"`
}
