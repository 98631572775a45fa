package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sale is one product line sold to a client under an invoice.
// TotalPrice = Price * Quantity - Discount, computed by the service.
type Sale struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Quantity     int             `gorm:"not null"`
	Discount     decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	Price        decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	SellDate     time.Time       `gorm:"type:date;not null;index"`
	TotalPrice   decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	InvoiceID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	ClientID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	EmployeeID   *uuid.UUID      `gorm:"type:uuid;index"`
	EnterpriseID uuid.UUID       `gorm:"type:uuid;not null;index"`
	CreatedAt    time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
}
