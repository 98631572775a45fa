package model

import (
	"time"

	"github.com/google/uuid"
)

// Employee is a back-office user. EnterpriseID is copied from the creator and never changes.
type Employee struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string    `gorm:"type:varchar(255);not null"`
	Lastname     string    `gorm:"type:varchar(100);not null"`
	Email        string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	Code         string    `gorm:"type:varchar(45);not null;default:''"`
	Telephone    string    `gorm:"type:varchar(20);not null;default:''"`
	PasswordHash string    `gorm:"not null"`
	IsActive     bool      `gorm:"not null;default:true"`
	EnterpriseID uuid.UUID `gorm:"type:uuid;not null;index"`
	RoleID       uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Enterprise *Enterprise `gorm:"foreignKey:EnterpriseID"`
	Role       *Role       `gorm:"foreignKey:RoleID"`
}
