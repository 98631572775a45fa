package authz

import (
	"github.com/MartinOstios/backend-posco/internal/repository"

	"github.com/google/uuid"
)

// Owned is implemented by every tenant-scoped row.
type Owned interface {
	OwnerID() uuid.UUID
}

// Scope returns the enterprise filter and page for a tenant-scoped list.
func Scope(id *Identity, page repository.Page) (uuid.UUID, repository.Page) {
	return id.Enterprise.ID, page
}

// OwnedBy applies TenantMatch to a row fetched by id.
func OwnedBy(id *Identity, row Owned) error {
	return Authorize(id, TenantMatch(row.OwnerID()))
}
