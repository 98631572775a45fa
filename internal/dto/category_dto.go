package dto

import "github.com/google/uuid"

type CreateCategoryRequest struct {
	Name        string `json:"name"        validate:"required,min=2,max=45"`
	Description string `json:"description" validate:"max=255"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name"        validate:"omitempty,min=2,max=45"`
	Description *string `json:"description" validate:"omitempty,max=255"`
}

type CategoryResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	EnterpriseID uuid.UUID `json:"enterprise_id"`
}
