package model

import (
	"time"

	"github.com/google/uuid"
)

type Supplier struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string    `gorm:"type:varchar(100);not null"`
	Email        string    `gorm:"type:varchar(100);not null;default:''"`
	Phone        string    `gorm:"type:varchar(20);not null;default:''"`
	TaxID        string    `gorm:"column:nit;type:varchar(45);not null;default:''"`
	EnterpriseID uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
