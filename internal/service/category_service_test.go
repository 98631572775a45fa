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

func TestCategoryService_NamesAreUniquePerEnterprise(t *testing.T) {
	repo := &stubCategoryRepo{rows: map[uuid.UUID]model.Category{}}
	svc := NewCategoryService(repo)
	ctx := context.Background()
	mine := actorIn(uuid.New(), model.RoleEmployee, model.PermManageInventory)
	other := actorIn(uuid.New(), model.RoleEmployee, model.PermManageInventory)

	_, err := svc.Create(ctx, mine, dto.CreateCategoryRequest{Name: "Bebidas"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, mine, dto.CreateCategoryRequest{Name: "Bebidas"})
	assert.ErrorIs(t, err, apierror.ErrConflict)

	_, err = svc.Create(ctx, other, dto.CreateCategoryRequest{Name: "Bebidas"})
	assert.NoError(t, err, "another enterprise may reuse the name")
}

func TestCategoryService_RenameConflict(t *testing.T) {
	repo := &stubCategoryRepo{rows: map[uuid.UUID]model.Category{}}
	svc := NewCategoryService(repo)
	ctx := context.Background()
	actor := actorIn(uuid.New(), model.RoleEmployee, model.PermManageInventory)

	_, err := svc.Create(ctx, actor, dto.CreateCategoryRequest{Name: "Bebidas"})
	require.NoError(t, err)
	snacks, err := svc.Create(ctx, actor, dto.CreateCategoryRequest{Name: "Snacks"})
	require.NoError(t, err)

	name := "Bebidas"
	_, err = svc.Update(ctx, actor, snacks.ID, dto.UpdateCategoryRequest{Name: &name})
	assert.ErrorIs(t, err, apierror.ErrConflict)

	desc := "Paquetes"
	got, err := svc.Update(ctx, actor, snacks.ID, dto.UpdateCategoryRequest{Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, "Paquetes", got.Description)
}

func TestCategoryService_Delete(t *testing.T) {
	enterpriseID := uuid.New()
	withProducts := model.Category{ID: uuid.New(), Name: "Bebidas", EnterpriseID: enterpriseID}
	empty := model.Category{ID: uuid.New(), Name: "Vacía", EnterpriseID: enterpriseID}
	repo := &stubCategoryRepo{
		rows:     map[uuid.UUID]model.Category{withProducts.ID: withProducts, empty.ID: empty},
		products: map[uuid.UUID]int64{withProducts.ID: 3},
	}
	svc := NewCategoryService(repo)
	ctx := context.Background()

	err := svc.Delete(ctx, actorIn(uuid.New(), model.RoleAdmin), empty.ID)
	assert.ErrorIs(t, err, apierror.ErrCrossTenantAccess)

	actor := actorIn(enterpriseID, model.RoleEmployee, model.PermManageInventory)
	err = svc.Delete(ctx, actor, withProducts.ID)
	assert.ErrorIs(t, err, apierror.ErrReferentialDeleteBlocked)

	require.NoError(t, svc.Delete(ctx, actor, empty.ID))
	assert.NotContains(t, repo.rows, empty.ID)
}
