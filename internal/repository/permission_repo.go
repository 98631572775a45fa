package repository

import (
	"context"

	"github.com/MartinOstios/backend-posco/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PermissionRepository interface {
	Create(ctx context.Context, p *model.Permission) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Permission, error)
	FindByName(ctx context.Context, name model.PermissionName) (*model.Permission, error)
	List(ctx context.Context, page Page) ([]model.Permission, error)
	ListAll(ctx context.Context) ([]model.Permission, error)
}

type permissionRepo struct{ db *gorm.DB }

func NewPermissionRepository(db *gorm.DB) PermissionRepository { return &permissionRepo{db: db} }

func (r *permissionRepo) Create(ctx context.Context, p *model.Permission) error {
	return GetDB(ctx, r.db).Create(p).Error
}

func (r *permissionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Permission, error) {
	var p model.Permission
	if err := GetDB(ctx, r.db).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *permissionRepo) FindByName(ctx context.Context, name model.PermissionName) (*model.Permission, error) {
	var p model.Permission
	if err := GetDB(ctx, r.db).Where("name = ?", name).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *permissionRepo) List(ctx context.Context, page Page) ([]model.Permission, error) {
	var list []model.Permission
	err := page.apply(GetDB(ctx, r.db).Order("name ASC")).Find(&list).Error
	return list, err
}

func (r *permissionRepo) ListAll(ctx context.Context) ([]model.Permission, error) {
	var list []model.Permission
	err := GetDB(ctx, r.db).Order("name ASC").Find(&list).Error
	return list, err
}
