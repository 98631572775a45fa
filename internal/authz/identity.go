// Package authz decides which employee may act on which resource. An Identity
// is resolved from a bearer token once per request and checked by the Guard
// against role, permission and enterprise ownership.
package authz

import (
	"github.com/MartinOstios/backend-posco/internal/model"

	"github.com/google/uuid"
)

type PermissionRef struct {
	ID          uuid.UUID            `json:"id"`
	Name        model.PermissionName `json:"name"`
	Description string               `json:"description"`
}

type RoleRef struct {
	ID          uuid.UUID       `json:"id"`
	Name        model.RoleName  `json:"name"`
	Description string          `json:"description"`
	Permissions []PermissionRef `json:"permissions"`
}

type EnterpriseRef struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	TaxID string    `json:"nit"`
}

// Identity is an immutable snapshot of an employee with its role, permissions
// and enterprise. It is also the employee read model returned by the API.
type Identity struct {
	ID         uuid.UUID     `json:"id"`
	Name       string        `json:"name"`
	Lastname   string        `json:"lastname"`
	Email      string        `json:"email"`
	Code       string        `json:"code"`
	Telephone  string        `json:"telephone"`
	IsActive   bool          `json:"is_active"`
	Enterprise EnterpriseRef `json:"enterprise"`
	Role       RoleRef       `json:"role"`
}

func (i *Identity) IsSuperuser() bool { return i.Role.Name.IsSuperuser() }

// HasPermission reports whether the role grants name. Superusers hold every permission.
func (i *Identity) HasPermission(name model.PermissionName) bool {
	if i.IsSuperuser() {
		return true
	}
	for _, p := range i.Role.Permissions {
		if p.Name == name {
			return true
		}
	}
	return false
}

// Project builds the read view of an employee. Enterprise and Role must be
// loaded; missing associations project as zero values.
func Project(e model.Employee) Identity {
	id := Identity{
		ID:        e.ID,
		Name:      e.Name,
		Lastname:  e.Lastname,
		Email:     e.Email,
		Code:      e.Code,
		Telephone: e.Telephone,
		IsActive:  e.IsActive,
		Enterprise: EnterpriseRef{
			ID: e.EnterpriseID,
		},
		Role: RoleRef{
			ID:          e.RoleID,
			Permissions: []PermissionRef{},
		},
	}
	if e.Enterprise != nil {
		id.Enterprise.Name = e.Enterprise.Name
		id.Enterprise.TaxID = e.Enterprise.TaxID
	}
	if e.Role != nil {
		id.Role.Name = e.Role.Name
		id.Role.Description = e.Role.Description
		for _, p := range e.Role.Permissions {
			id.Role.Permissions = append(id.Role.Permissions, PermissionRef{
				ID: p.ID, Name: p.Name, Description: p.Description,
			})
		}
	}
	return id
}
