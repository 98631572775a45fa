package dto

import "github.com/google/uuid"

type CreateClientRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

type ClientResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	EnterpriseID uuid.UUID `json:"enterprise_id"`
}
