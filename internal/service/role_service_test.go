package service

import (
	"context"
	"testing"

	"github.com/MartinOstios/backend-posco/internal/apierror"
	"github.com/MartinOstios/backend-posco/internal/dto"
	"github.com/MartinOstios/backend-posco/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleService_Create(t *testing.T) {
	sales := model.Permission{ID: uuid.New(), Name: model.PermManageSales}
	perms := &stubPermissionRepo{rows: map[uuid.UUID]model.Permission{sales.ID: sales}}
	roles := &stubRoleRepo{rows: map[uuid.UUID]model.Role{}}
	svc := NewRoleService(&lockingTx{}, roles, perms)
	ctx := context.Background()

	role, err := svc.Create(ctx, dto.CreateRoleRequest{Name: "SELLER", PermissionIDs: []uuid.UUID{sales.ID}})
	require.NoError(t, err)
	require.Len(t, role.Permissions, 1)
	assert.Equal(t, string(model.PermManageSales), role.Permissions[0].Name)

	got, err := svc.Permissions(ctx, role.ID)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	_, err = svc.Create(ctx, dto.CreateRoleRequest{Name: "SELLER"})
	assert.ErrorIs(t, err, apierror.ErrConflict)

	_, err = svc.Create(ctx, dto.CreateRoleRequest{Name: "MANAGER"})
	assert.ErrorIs(t, err, apierror.ErrInvalidInput, "role names are a closed set")

	_, err = svc.Create(ctx, dto.CreateRoleRequest{Name: "EMPLOYEE", PermissionIDs: []uuid.UUID{uuid.New()}})
	assert.ErrorIs(t, err, apierror.ErrNotFound)
	_, err = roles.FindByName(ctx, model.RoleEmployee)
	assert.Error(t, err, "nothing is written when a permission is missing")
}
