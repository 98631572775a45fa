package repository

import (
	"context"

	"github.com/MartinOstios/backend-posco/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RoleRepository interface {
	Create(ctx context.Context, role *model.Role) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Role, error)
	FindByName(ctx context.Context, name model.RoleName) (*model.Role, error)
	List(ctx context.Context, page Page) ([]model.Role, error)
	Permissions(ctx context.Context, roleID uuid.UUID) ([]model.Permission, error)
	// ReplacePermissions makes perms the role's exact permission set.
	ReplacePermissions(ctx context.Context, role *model.Role, perms []model.Permission) error
}

type roleRepo struct{ db *gorm.DB }

func NewRoleRepository(db *gorm.DB) RoleRepository { return &roleRepo{db: db} }

func (r *roleRepo) Create(ctx context.Context, role *model.Role) error {
	return GetDB(ctx, r.db).Create(role).Error
}

func (r *roleRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Role, error) {
	var role model.Role
	if err := GetDB(ctx, r.db).Preload("Permissions").First(&role, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *roleRepo) FindByName(ctx context.Context, name model.RoleName) (*model.Role, error) {
	var role model.Role
	if err := GetDB(ctx, r.db).Preload("Permissions").Where("name = ?", name).First(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *roleRepo) List(ctx context.Context, page Page) ([]model.Role, error) {
	var roles []model.Role
	err := page.apply(GetDB(ctx, r.db).Preload("Permissions").Order("name ASC")).Find(&roles).Error
	return roles, err
}

func (r *roleRepo) Permissions(ctx context.Context, roleID uuid.UUID) ([]model.Permission, error) {
	var perms []model.Permission
	err := GetDB(ctx, r.db).
		Joins("JOIN role_has_permissions rhp ON rhp.permission_id = permissions.id").
		Where("rhp.role_id = ?", roleID).
		Order("permissions.name ASC").
		Find(&perms).Error
	return perms, err
}

func (r *roleRepo) ReplacePermissions(ctx context.Context, role *model.Role, perms []model.Permission) error {
	return GetDB(ctx, r.db).Model(role).Association("Permissions").Replace(perms)
}
