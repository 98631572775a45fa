package model

import (
	"time"

	"github.com/google/uuid"
)

// NotificationToken is an Expo push token registered by one device.
// A token string is unique among active rows; re-registration by another
// employee deactivates the previous row.
type NotificationToken struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Token      string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_notification_tokens_active,where:active = true"`
	DeviceName string    `gorm:"type:varchar(100);not null;default:''"`
	Active     bool      `gorm:"not null;default:true"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
