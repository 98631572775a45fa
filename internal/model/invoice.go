package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentCash       PaymentMethod = "cash"
	PaymentCreditCard PaymentMethod = "credit_card"
	PaymentDebitCard  PaymentMethod = "debit_card"
)

type Invoice struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PaymentMethod PaymentMethod   `gorm:"type:varchar(20);not null"`
	TotalPrice    decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	EnterpriseID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	CreatedAt     time.Time       `gorm:"index"`
	UpdatedAt     time.Time

	Sales []Sale `gorm:"foreignKey:InvoiceID"`
}
