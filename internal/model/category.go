package model

import (
	"time"

	"github.com/google/uuid"
)

// Category classifies products inside one enterprise.
type Category struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string    `gorm:"type:varchar(45);not null"`
	Description  string    `gorm:"type:varchar(255);not null;default:''"`
	EnterpriseID uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName keeps the plural form used by the SQL dumps.
func (Category) TableName() string { return "categories" }
