package service

import (
	"context"
	"errors"

	"github.com/MartinOstios/backend-posco/internal/apierror"
	"github.com/MartinOstios/backend-posco/internal/dto"
	"github.com/MartinOstios/backend-posco/internal/model"
	"github.com/MartinOstios/backend-posco/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RoleService interface {
	List(ctx context.Context, page dto.PageQuery) ([]dto.RoleResponse, error)
	Create(ctx context.Context, req dto.CreateRoleRequest) (dto.RoleResponse, error)
	Get(ctx context.Context, id uuid.UUID) (dto.RoleResponse, error)
	Permissions(ctx context.Context, id uuid.UUID) ([]dto.PermissionResponse, error)
}

type roleService struct {
	tx    repository.TxManager
	roles repository.RoleRepository
	perms repository.PermissionRepository
}

func NewRoleService(tx repository.TxManager, roles repository.RoleRepository, perms repository.PermissionRepository) RoleService {
	return &roleService{tx: tx, roles: roles, perms: perms}
}

func (s *roleService) List(ctx context.Context, page dto.PageQuery) ([]dto.RoleResponse, error) {
	list, err := s.roles.List(ctx, toPage(page))
	if err != nil {
		return nil, err
	}
	return mapList(list, mapRole), nil
}

func (s *roleService) Create(ctx context.Context, req dto.CreateRoleRequest) (dto.RoleResponse, error) {
	name := model.RoleName(req.Name)
	if !name.Valid() {
		return dto.RoleResponse{}, apierror.InvalidInput("Unknown role name " + req.Name)
	}
	existing, err := s.roles.FindByName(ctx, name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.RoleResponse{}, err
	}
	if existing != nil {
		return dto.RoleResponse{}, apierror.Conflict("A role with this name already exists")
	}

	var perms []model.Permission
	for _, id := range req.PermissionIDs {
		p, err := s.perms.FindByID(ctx, id)
		if err != nil {
			return dto.RoleResponse{}, notFound(err, "Permission "+id.String()+" not found")
		}
		perms = append(perms, *p)
	}

	role := &model.Role{Name: name, Description: req.Description}
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.roles.Create(txCtx, role); err != nil {
			return conflictOnDuplicate(err, "A role with this name already exists")
		}
		if len(perms) == 0 {
			return nil
		}
		return s.roles.ReplacePermissions(txCtx, role, perms)
	})
	if err != nil {
		return dto.RoleResponse{}, err
	}
	role.Permissions = perms
	return mapRole(*role), nil
}

func (s *roleService) Get(ctx context.Context, id uuid.UUID) (dto.RoleResponse, error) {
	role, err := s.roles.FindByID(ctx, id)
	if err != nil {
		return dto.RoleResponse{}, notFound(err, "Role not found")
	}
	return mapRole(*role), nil
}

func (s *roleService) Permissions(ctx context.Context, id uuid.UUID) ([]dto.PermissionResponse, error) {
	if _, err := s.roles.FindByID(ctx, id); err != nil {
		return nil, notFound(err, "Role not found")
	}
	perms, err := s.roles.Permissions(ctx, id)
	if err != nil {
		return nil, err
	}
	return mapList(perms, mapPermission), nil
}

type PermissionService interface {
	List(ctx context.Context, page dto.PageQuery) ([]dto.PermissionResponse, error)
	Create(ctx context.Context, req dto.CreatePermissionRequest) (dto.PermissionResponse, error)
	Get(ctx context.Context, id uuid.UUID) (dto.PermissionResponse, error)
}

type permissionService struct {
	repo repository.PermissionRepository
}

func NewPermissionService(repo repository.PermissionRepository) PermissionService {
	return &permissionService{repo: repo}
}

func (s *permissionService) List(ctx context.Context, page dto.PageQuery) ([]dto.PermissionResponse, error) {
	list, err := s.repo.List(ctx, toPage(page))
	if err != nil {
		return nil, err
	}
	return mapList(list, mapPermission), nil
}

func (s *permissionService) Create(ctx context.Context, req dto.CreatePermissionRequest) (dto.PermissionResponse, error) {
	name := model.PermissionName(req.Name)
	existing, err := s.repo.FindByName(ctx, name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.PermissionResponse{}, err
	}
	if existing != nil {
		return dto.PermissionResponse{}, apierror.Conflict("A permission with this name already exists")
	}
	p := &model.Permission{Name: name, Description: req.Description}
	if err := s.repo.Create(ctx, p); err != nil {
		return dto.PermissionResponse{}, conflictOnDuplicate(err, "A permission with this name already exists")
	}
	return mapPermission(*p), nil
}

func (s *permissionService) Get(ctx context.Context, id uuid.UUID) (dto.PermissionResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return dto.PermissionResponse{}, notFound(err, "Permission not found")
	}
	return mapPermission(*p), nil
}
