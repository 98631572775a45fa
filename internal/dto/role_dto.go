package dto

import "github.com/google/uuid"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateRoleRequest struct {
	Name          string      `json:"name"           validate:"required,oneof=ADMIN EMPLOYEE SELLER"`
	Description   string      `json:"description"    validate:"max=255"`
	PermissionIDs []uuid.UUID `json:"permission_ids"`
}

type CreatePermissionRequest struct {
	Name        string `json:"name"        validate:"required,min=2,max=50"`
	Description string `json:"description" validate:"max=255"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type PermissionResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
}

type RoleResponse struct {
	ID          uuid.UUID            `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Permissions []PermissionResponse `json:"permissions"`
}
