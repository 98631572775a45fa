package dto

import "github.com/google/uuid"

type CreateSupplierRequest struct {
	Name  string `json:"name"  validate:"required,min=2,max=100"`
	Email string `json:"email" validate:"omitempty,email,max=100"`
	Phone string `json:"phone" validate:"max=20"`
	TaxID string `json:"nit"   validate:"max=45"`
}

type UpdateSupplierRequest struct {
	Name  *string `json:"name"  validate:"omitempty,min=2,max=100"`
	Email *string `json:"email" validate:"omitempty,email,max=100"`
	Phone *string `json:"phone" validate:"omitempty,max=20"`
	TaxID *string `json:"nit"   validate:"omitempty,max=45"`
}

type SupplierResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	TaxID        string    `json:"nit"`
	EnterpriseID uuid.UUID `json:"enterprise_id"`
}
