package authz

import (
	"context"
	"errors"
	"fmt"

	"github.com/MartinOstios/backend-posco/internal/apierror"
	"github.com/MartinOstios/backend-posco/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TokenVerifier extracts the employee id from a bearer token.
type TokenVerifier interface {
	Verify(token string) (uuid.UUID, error)
}

// Resolver turns a bearer token into an Identity. It reads the current rows
// on every call, so role and permission changes apply on the next request.
type Resolver struct {
	tokens    TokenVerifier
	employees repository.EmployeeRepository
}

func NewResolver(tokens TokenVerifier, employees repository.EmployeeRepository) *Resolver {
	return &Resolver{tokens: tokens, employees: employees}
}

func (r *Resolver) Resolve(ctx context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, apierror.Unauthenticated("Not authenticated")
	}
	subject, err := r.tokens.Verify(token)
	if err != nil {
		return nil, apierror.Unauthenticated("Could not validate credentials")
	}
	emp, err := r.employees.FindWithAccess(ctx, subject)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("Employee not found")
		}
		return nil, fmt.Errorf("resolve identity: %w", err)
	}
	id := Project(*emp)
	return &id, nil
}
