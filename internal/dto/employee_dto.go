package dto

import "github.com/google/uuid"

// CreateEmployeeRequest never carries an enterprise: new employees join the creator's.
type CreateEmployeeRequest struct {
	Name      string    `json:"name"      validate:"required,min=1,max=255"`
	Lastname  string    `json:"lastname"  validate:"required,min=1,max=100"`
	Email     string    `json:"email"     validate:"required,email,max=100"`
	Code      string    `json:"code"      validate:"max=45"`
	Telephone string    `json:"telephone" validate:"max=20"`
	Password  string    `json:"password"  validate:"required,min=8,max=40"`
	RoleID    uuid.UUID `json:"role_id"   validate:"required"`
}

type UpdateEmployeeRequest struct {
	Name      *string    `json:"name"      validate:"omitempty,min=1,max=255"`
	Lastname  *string    `json:"lastname"  validate:"omitempty,min=1,max=100"`
	Email     *string    `json:"email"     validate:"omitempty,email,max=100"`
	Code      *string    `json:"code"      validate:"omitempty,max=45"`
	Telephone *string    `json:"telephone" validate:"omitempty,max=20"`
	Password  *string    `json:"password"  validate:"omitempty,min=8,max=40"`
	IsActive  *bool      `json:"is_active"`
	RoleID    *uuid.UUID `json:"role_id"`
}

type UpdateMeRequest struct {
	Name      *string `json:"name"      validate:"omitempty,min=1,max=255"`
	Lastname  *string `json:"lastname"  validate:"omitempty,min=1,max=100"`
	Telephone *string `json:"telephone" validate:"omitempty,max=20"`
}
