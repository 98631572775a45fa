package model

import (
	"time"

	"github.com/google/uuid"
)

// PasswordResetToken is a single-use numeric code sent by email.
type PasswordResetToken struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email     string    `gorm:"type:varchar(100);not null;index"`
	Token     string    `gorm:"type:varchar(8);not null"`
	IsUsed    bool      `gorm:"not null;default:false"`
	CreatedAt time.Time `gorm:"not null"`
}

// Expired reports whether the code is older than ttl at now.
func (t *PasswordResetToken) Expired(now time.Time, ttl time.Duration) bool {
	return now.After(t.CreatedAt.Add(ttl))
}
