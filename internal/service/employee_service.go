package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MartinOstios/backend-posco/internal/apierror"
	"github.com/MartinOstios/backend-posco/internal/authz"
	"github.com/MartinOstios/backend-posco/internal/dto"
	"github.com/MartinOstios/backend-posco/internal/model"
	"github.com/MartinOstios/backend-posco/internal/repository"
	"github.com/MartinOstios/backend-posco/internal/security"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EmployeeService manages employees inside the actor's enterprise. Every
// response is built by authz.Project.
type EmployeeService interface {
	List(ctx context.Context, actor *authz.Identity, page dto.PageQuery) ([]authz.Identity, error)
	Create(ctx context.Context, actor *authz.Identity, req dto.CreateEmployeeRequest) (authz.Identity, error)
	Get(ctx context.Context, actor *authz.Identity, id uuid.UUID) (authz.Identity, error)
	Update(ctx context.Context, actor *authz.Identity, id uuid.UUID, req dto.UpdateEmployeeRequest) (authz.Identity, error)
	UpdateMe(ctx context.Context, actor *authz.Identity, req dto.UpdateMeRequest) (authz.Identity, error)
	SetActive(ctx context.Context, actor *authz.Identity, id uuid.UUID, active bool) error
	Delete(ctx context.Context, actor *authz.Identity, id uuid.UUID) error
}

type employeeService struct {
	employees repository.EmployeeRepository
	roles     repository.RoleRepository
}

func NewEmployeeService(employees repository.EmployeeRepository, roles repository.RoleRepository) EmployeeService {
	return &employeeService{employees: employees, roles: roles}
}

// load fetches an employee and applies the tenant check.
func (s *employeeService) load(ctx context.Context, actor *authz.Identity, id uuid.UUID) (*model.Employee, error) {
	e, err := s.employees.FindWithAccess(ctx, id)
	if err != nil {
		return nil, notFound(err, "Employee not found")
	}
	if err := authz.OwnedBy(actor, e); err != nil {
		return nil, err
	}
	return e, nil
}

// assignableRole loads a role and refuses to hand out ADMIN unless the actor is a superuser.
func (s *employeeService) assignableRole(ctx context.Context, actor *authz.Identity, roleID uuid.UUID) (*model.Role, error) {
	role, err := s.roles.FindByID(ctx, roleID)
	if err != nil {
		return nil, notFound(err, "Role not found")
	}
	if role.Name.IsSuperuser() {
		if err := authz.Authorize(actor, authz.SuperuserRequired); err != nil {
			return nil, err
		}
	}
	return role, nil
}

func (s *employeeService) emailTaken(ctx context.Context, email string, except uuid.UUID) error {
	existing, err := s.employees.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if existing != nil && existing.ID != except {
		return apierror.Conflict("An employee with this email already exists")
	}
	return nil
}

func (s *employeeService) reload(ctx context.Context, id uuid.UUID) (authz.Identity, error) {
	e, err := s.employees.FindWithAccess(ctx, id)
	if err != nil {
		return authz.Identity{}, notFound(err, "Employee not found")
	}
	return authz.Project(*e), nil
}

func (s *employeeService) List(ctx context.Context, actor *authz.Identity, page dto.PageQuery) ([]authz.Identity, error) {
	enterpriseID, p := authz.Scope(actor, toPage(page))
	list, err := s.employees.ListByEnterprise(ctx, enterpriseID, p)
	if err != nil {
		return nil, err
	}
	return mapList(list, authz.Project), nil
}

func (s *employeeService) Create(ctx context.Context, actor *authz.Identity, req dto.CreateEmployeeRequest) (authz.Identity, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if err := s.emailTaken(ctx, email, uuid.Nil); err != nil {
		return authz.Identity{}, err
	}
	role, err := s.assignableRole(ctx, actor, req.RoleID)
	if err != nil {
		return authz.Identity{}, err
	}
	hash, err := security.HashPassword(req.Password)
	if err != nil {
		return authz.Identity{}, fmt.Errorf("hash password: %w", err)
	}

	e := &model.Employee{
		Name:         req.Name,
		Lastname:     req.Lastname,
		Email:        email,
		Code:         req.Code,
		Telephone:    req.Telephone,
		PasswordHash: hash,
		IsActive:     true,
		EnterpriseID: actor.Enterprise.ID,
		RoleID:       role.ID,
	}
	if err := s.employees.Create(ctx, e); err != nil {
		return authz.Identity{}, conflictOnDuplicate(err, "An employee with this email already exists")
	}
	return s.reload(ctx, e.ID)
}

func (s *employeeService) Get(ctx context.Context, actor *authz.Identity, id uuid.UUID) (authz.Identity, error) {
	e, err := s.load(ctx, actor, id)
	if err != nil {
		return authz.Identity{}, err
	}
	return authz.Project(*e), nil
}

func (s *employeeService) Update(ctx context.Context, actor *authz.Identity, id uuid.UUID, req dto.UpdateEmployeeRequest) (authz.Identity, error) {
	e, err := s.load(ctx, actor, id)
	if err != nil {
		return authz.Identity{}, err
	}

	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email != e.Email {
			if err := s.emailTaken(ctx, email, e.ID); err != nil {
				return authz.Identity{}, err
			}
		}
		e.Email = email
	}
	if req.RoleID != nil && *req.RoleID != e.RoleID {
		role, err := s.assignableRole(ctx, actor, *req.RoleID)
		if err != nil {
			return authz.Identity{}, err
		}
		e.RoleID = role.ID
		e.Role = role
	}
	if req.Password != nil {
		hash, err := security.HashPassword(*req.Password)
		if err != nil {
			return authz.Identity{}, fmt.Errorf("hash password: %w", err)
		}
		e.PasswordHash = hash
	}
	if req.Name != nil {
		e.Name = *req.Name
	}
	if req.Lastname != nil {
		e.Lastname = *req.Lastname
	}
	if req.Code != nil {
		e.Code = *req.Code
	}
	if req.Telephone != nil {
		e.Telephone = *req.Telephone
	}
	if req.IsActive != nil {
		e.IsActive = *req.IsActive
	}

	if err := s.employees.Update(ctx, e); err != nil {
		return authz.Identity{}, conflictOnDuplicate(err, "An employee with this email already exists")
	}
	return s.reload(ctx, e.ID)
}

func (s *employeeService) UpdateMe(ctx context.Context, actor *authz.Identity, req dto.UpdateMeRequest) (authz.Identity, error) {
	e, err := s.employees.FindWithAccess(ctx, actor.ID)
	if err != nil {
		return authz.Identity{}, notFound(err, "Employee not found")
	}
	if req.Name != nil {
		e.Name = *req.Name
	}
	if req.Lastname != nil {
		e.Lastname = *req.Lastname
	}
	if req.Telephone != nil {
		e.Telephone = *req.Telephone
	}
	if err := s.employees.Update(ctx, e); err != nil {
		return authz.Identity{}, err
	}
	return s.reload(ctx, e.ID)
}

func (s *employeeService) SetActive(ctx context.Context, actor *authz.Identity, id uuid.UUID, active bool) error {
	if _, err := s.load(ctx, actor, id); err != nil {
		return err
	}
	return s.employees.SetActive(ctx, id, active)
}

func (s *employeeService) Delete(ctx context.Context, actor *authz.Identity, id uuid.UUID) error {
	e, err := s.employees.FindWithAccess(ctx, id)
	if err != nil {
		return notFound(err, "Employee not found")
	}
	if err := authz.CanDeleteEmployee(actor, e); err != nil {
		return err
	}
	return s.employees.Delete(ctx, id)
}
