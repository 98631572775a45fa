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

func newEnterpriseFixture() (EnterpriseService, *stubEnterpriseRepo) {
	repo := &stubEnterpriseRepo{rows: map[uuid.UUID]model.Enterprise{}, busy: map[uuid.UUID]bool{}}
	return NewEnterpriseService(repo), repo
}

func TestEnterpriseService_CreateDefaultsCurrency(t *testing.T) {
	svc, _ := newEnterpriseFixture()

	got, err := svc.Create(context.Background(), dto.CreateEnterpriseRequest{
		Name: "Tienda Centro", TaxID: "900123", Email: "centro@posco.test", Phone: "3001234567",
	})

	require.NoError(t, err)
	assert.Equal(t, "COP", got.Currency)
	assert.Equal(t, "900123", got.TaxID)
}

func TestEnterpriseService_DuplicateNITIsConflict(t *testing.T) {
	svc, repo := newEnterpriseFixture()
	req := dto.CreateEnterpriseRequest{Name: "Tienda", TaxID: "900123", Email: "a@posco.test", Phone: "300", Currency: "usd"}
	first, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "USD", first.Currency)

	req.Name = "Otra tienda"
	_, err = svc.Create(context.Background(), req)

	assert.ErrorIs(t, err, apierror.ErrConflict)
	assert.Len(t, repo.rows, 1)
}

func TestEnterpriseService_GetMissingIsNotFound(t *testing.T) {
	svc, _ := newEnterpriseFixture()

	_, err := svc.Get(context.Background(), uuid.New())

	assert.ErrorIs(t, err, apierror.ErrNotFound)
}

func TestEnterpriseService_DeleteBlockedWhileReferenced(t *testing.T) {
	svc, repo := newEnterpriseFixture()
	ent, err := svc.Create(context.Background(), dto.CreateEnterpriseRequest{Name: "Tienda", TaxID: "1", Email: "a@posco.test", Phone: "300"})
	require.NoError(t, err)
	repo.busy[ent.ID] = true

	err = svc.Delete(context.Background(), ent.ID)

	assert.ErrorIs(t, err, apierror.ErrReferentialDeleteBlocked)
	assert.Contains(t, repo.rows, ent.ID)

	repo.busy[ent.ID] = false
	require.NoError(t, svc.Delete(context.Background(), ent.ID))
	assert.NotContains(t, repo.rows, ent.ID)

	err = svc.Delete(context.Background(), ent.ID)
	assert.ErrorIs(t, err, apierror.ErrNotFound)
}
