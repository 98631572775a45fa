package dto

import (
	"time"

	"github.com/google/uuid"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type RegisterTokenRequest struct {
	Token      string `json:"token"       validate:"required,max=255"`
	DeviceName string `json:"device_name" validate:"max=100"`
}

type UpdateTokenRequest struct {
	DeviceName *string `json:"device_name" validate:"omitempty,max=100"`
	Active     *bool   `json:"active"`
}

type SendNotificationRequest struct {
	Title   string                 `json:"title"   validate:"required,max=100"`
	Message string                 `json:"message" validate:"required,max=500"`
	Data    map[string]interface{} `json:"data"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type NotificationTokenResponse struct {
	ID         uuid.UUID `json:"id"`
	Token      string    `json:"token"`
	DeviceName string    `json:"device_name"`
	Active     bool      `json:"active"`
	UserID     uuid.UUID `json:"user_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type NotificationTokenList struct {
	Data  []NotificationTokenResponse `json:"data"`
	Count int                         `json:"count"`
}

// SendResult summarizes one fan-out to a user's active devices.
type SendResult struct {
	Total              int         `json:"total"`
	Successful         int         `json:"successful"`
	Failed             int         `json:"failed"`
	TokensToDeactivate []uuid.UUID `json:"tokens_to_deactivate"`
}

type SendResponse struct {
	Message string     `json:"message"`
	Results SendResult `json:"results"`
}
