package authz

import (
	"context"
	"testing"
	"time"

	"github.com/MartinOstios/backend-posco/internal/apierror"
	"github.com/MartinOstios/backend-posco/internal/model"
	"github.com/MartinOstios/backend-posco/internal/repository"
	"github.com/MartinOstios/backend-posco/internal/security"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubEmployeeRepo struct {
	rows map[uuid.UUID]*model.Employee
}

var _ repository.EmployeeRepository = (*stubEmployeeRepo)(nil)

func (s *stubEmployeeRepo) Create(_ context.Context, e *model.Employee) error {
	s.rows[e.ID] = e
	return nil
}
func (s *stubEmployeeRepo) FindWithAccess(_ context.Context, id uuid.UUID) (*model.Employee, error) {
	e, ok := s.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *e
	return &cp, nil
}
func (s *stubEmployeeRepo) FindByEmail(_ context.Context, email string) (*model.Employee, error) {
	for _, e := range s.rows {
		if e.Email == email {
			return e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}
func (s *stubEmployeeRepo) ListByEnterprise(context.Context, uuid.UUID, repository.Page) ([]model.Employee, error) {
	return nil, nil
}
func (s *stubEmployeeRepo) Update(_ context.Context, e *model.Employee) error {
	s.rows[e.ID] = e
	return nil
}
func (s *stubEmployeeRepo) SetActive(context.Context, uuid.UUID, bool) error        { return nil }
func (s *stubEmployeeRepo) UpdatePassword(context.Context, uuid.UUID, string) error { return nil }
func (s *stubEmployeeRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(s.rows, id)
	return nil
}

func seededEmployee() *model.Employee {
	entID := uuid.New()
	roleID := uuid.New()
	return &model.Employee{
		ID:           uuid.New(),
		Name:         "Ana",
		Lastname:     "Gomez",
		Email:        "ana@tienda.co",
		Code:         "E-01",
		Telephone:    "3001234567",
		IsActive:     true,
		EnterpriseID: entID,
		RoleID:       roleID,
		Enterprise:   &model.Enterprise{ID: entID, Name: "Tienda Uno", TaxID: "900123"},
		Role: &model.Role{
			ID:   roleID,
			Name: model.RoleEmployee,
			Permissions: []model.Permission{
				{ID: uuid.New(), Name: model.PermManageInventory, Description: "inventory"},
			},
		},
	}
}

func TestResolver_ReturnsCurrentSnapshot(t *testing.T) {
	emp := seededEmployee()
	repo := &stubEmployeeRepo{rows: map[uuid.UUID]*model.Employee{emp.ID: emp}}
	tokens := security.NewTokenManager("resolver_test_secret_long_enough!", time.Hour)
	r := NewResolver(tokens, repo)

	tok, err := tokens.Issue(emp.ID, 0)
	require.NoError(t, err)

	id, err := r.Resolve(context.Background(), tok)
	require.NoError(t, err)
	assert.Equal(t, emp.ID, id.ID)
	assert.Equal(t, "900123", id.Enterprise.TaxID)
	assert.Equal(t, model.RoleEmployee, id.Role.Name)
	require.Len(t, id.Role.Permissions, 1)
	assert.True(t, id.HasPermission(model.PermManageInventory))

	// permission changes are visible on the next resolve
	emp.Role.Permissions = append(emp.Role.Permissions, model.Permission{ID: uuid.New(), Name: model.PermViewReports})
	id, err = r.Resolve(context.Background(), tok)
	require.NoError(t, err)
	assert.True(t, id.HasPermission(model.PermViewReports))
}

func TestResolver_RejectsBadTokens(t *testing.T) {
	repo := &stubEmployeeRepo{rows: map[uuid.UUID]*model.Employee{}}
	tokens := security.NewTokenManager("resolver_test_secret_long_enough!", time.Hour)
	r := NewResolver(tokens, repo)

	for _, tok := range []string{"", "garbage", "a.b.c"} {
		_, err := r.Resolve(context.Background(), tok)
		assert.ErrorIs(t, err, apierror.ErrUnauthenticated, tok)
	}

	foreign, err := security.NewTokenManager("other_secret_that_does_not_match!", time.Hour).Issue(uuid.New(), 0)
	require.NoError(t, err)
	_, err = r.Resolve(context.Background(), foreign)
	assert.ErrorIs(t, err, apierror.ErrUnauthenticated)
}

func TestResolver_DeletedEmployeeIsNotFound(t *testing.T) {
	repo := &stubEmployeeRepo{rows: map[uuid.UUID]*model.Employee{}}
	tokens := security.NewTokenManager("resolver_test_secret_long_enough!", time.Hour)
	r := NewResolver(tokens, repo)

	tok, err := tokens.Issue(uuid.New(), 0)
	require.NoError(t, err)

	_, err = r.Resolve(context.Background(), tok)
	assert.ErrorIs(t, err, apierror.ErrNotFound)
}

func TestProject_MissingAssociations(t *testing.T) {
	id := Project(model.Employee{ID: uuid.New(), EnterpriseID: uuid.New()})

	assert.Empty(t, id.Role.Name)
	assert.NotNil(t, id.Role.Permissions)
	assert.Empty(t, id.Enterprise.Name)
}
