package model

import (
	"time"

	"github.com/google/uuid"
)

// Enterprise is the tenant. Every scoped row carries its id.
type Enterprise struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"not null"`
	TaxID     string    `gorm:"column:nit;uniqueIndex;not null"`
	Email     string    `gorm:"not null"`
	Phone     string    `gorm:"not null"`
	Currency  string    `gorm:"type:varchar(3);not null;default:'COP'"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
