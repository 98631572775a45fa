package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateEnterpriseRequest struct {
	Name     string `json:"name"     validate:"required,min=2,max=100"`
	TaxID    string `json:"nit"      validate:"required,max=45"`
	Email    string `json:"email"    validate:"required,email"`
	Phone    string `json:"phone"    validate:"required,max=20"`
	Currency string `json:"currency" validate:"omitempty,len=3,alpha"`
}

type EnterpriseResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	TaxID     string    `json:"nit"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Currency  string    `json:"currency"`
	CreatedAt time.Time `json:"created_at"`
}
