package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateInvoiceRequest struct {
	PaymentMethod string          `json:"payment_method" validate:"required,oneof=cash credit_card debit_card"`
	TotalPrice    decimal.Decimal `json:"total_price"    validate:"min=0"`
}

type InvoiceResponse struct {
	ID            uuid.UUID       `json:"id"`
	PaymentMethod string          `json:"payment_method"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	EnterpriseID  uuid.UUID       `json:"enterprise_id"`
	CreatedAt     time.Time       `json:"created_at"`
}
