package model

import (
	"time"

	"github.com/google/uuid"
)

type StockMovementKind string

const (
	MovementSale         StockMovementKind = "sale"
	MovementSaleReversal StockMovementKind = "sale_reversal"
	MovementManual       StockMovementKind = "manual"
)

// StockMovement records every change to a product's stock.
// It is written in the same transaction as the stock update.
type StockMovement struct {
	ID           uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID    uuid.UUID         `gorm:"type:uuid;not null;index"`
	EnterpriseID uuid.UUID         `gorm:"type:uuid;not null;index"`
	Kind         StockMovementKind `gorm:"type:varchar(20);not null"`
	Delta        int               `gorm:"not null"` // positive = in, negative = out
	StockBefore  int               `gorm:"not null"`
	StockAfter   int               `gorm:"not null"`
	Reason       string            `gorm:"not null;default:''"`
	ReferenceID  *uuid.UUID        `gorm:"type:uuid"` // sale id when applicable
	CreatedAt    time.Time
}
