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

func newSupplierFixture() (SupplierService, *stubSupplierRepo) {
	repo := &stubSupplierRepo{rows: map[uuid.UUID]model.Supplier{}, products: map[uuid.UUID]int64{}}
	return NewSupplierService(repo), repo
}

func TestSupplierService_CreateScopesToActor(t *testing.T) {
	svc, _ := newSupplierFixture()
	actor := actorIn(uuid.New(), model.RoleAdmin)

	got, err := svc.Create(context.Background(), actor, dto.CreateSupplierRequest{Name: "Postobon", TaxID: "890903939"})

	require.NoError(t, err)
	assert.Equal(t, actor.Enterprise.ID, got.EnterpriseID)
}

func TestSupplierService_ListOnlyOwnEnterprise(t *testing.T) {
	svc, _ := newSupplierFixture()
	mine := actorIn(uuid.New(), model.RoleAdmin)
	theirs := actorIn(uuid.New(), model.RoleAdmin)
	_, err := svc.Create(context.Background(), mine, dto.CreateSupplierRequest{Name: "Alpina"})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), theirs, dto.CreateSupplierRequest{Name: "Colanta"})
	require.NoError(t, err)

	list, err := svc.List(context.Background(), mine, dto.PageQuery{Limit: 10})

	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Alpina", list[0].Name)
}

func TestSupplierService_GetForeignOrMissing(t *testing.T) {
	svc, _ := newSupplierFixture()
	owner := actorIn(uuid.New(), model.RoleAdmin)
	sup, err := svc.Create(context.Background(), owner, dto.CreateSupplierRequest{Name: "Alpina"})
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), actorIn(uuid.New(), model.RoleAdmin), sup.ID)
	assert.ErrorIs(t, err, apierror.ErrCrossTenantAccess)

	_, err = svc.Get(context.Background(), owner, uuid.New())
	assert.ErrorIs(t, err, apierror.ErrNotFound)
}

func TestSupplierService_UpdateForeignLeavesRowUntouched(t *testing.T) {
	svc, repo := newSupplierFixture()
	owner := actorIn(uuid.New(), model.RoleAdmin)
	sup, err := svc.Create(context.Background(), owner, dto.CreateSupplierRequest{Name: "Alpina"})
	require.NoError(t, err)
	name := "Hijacked"

	_, err = svc.Update(context.Background(), actorIn(uuid.New(), model.RoleAdmin), sup.ID, dto.UpdateSupplierRequest{Name: &name})

	assert.ErrorIs(t, err, apierror.ErrCrossTenantAccess)
	assert.Equal(t, "Alpina", repo.rows[sup.ID].Name)
}

func TestSupplierService_DeleteBlockedWithProducts(t *testing.T) {
	svc, repo := newSupplierFixture()
	owner := actorIn(uuid.New(), model.RoleAdmin)
	sup, err := svc.Create(context.Background(), owner, dto.CreateSupplierRequest{Name: "Alpina"})
	require.NoError(t, err)
	repo.products[sup.ID] = 3

	err = svc.Delete(context.Background(), owner, sup.ID)
	assert.ErrorIs(t, err, apierror.ErrReferentialDeleteBlocked)
	assert.Contains(t, repo.rows, sup.ID)

	repo.products[sup.ID] = 0
	require.NoError(t, svc.Delete(context.Background(), owner, sup.ID))
	assert.NotContains(t, repo.rows, sup.ID)
}
