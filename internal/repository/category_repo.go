package repository

import (
	"context"

	"github.com/MartinOstios/backend-posco/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CategoryRepository interface {
	Create(ctx context.Context, c *model.Category) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Category, error)
	FindByName(ctx context.Context, enterpriseID uuid.UUID, name string) (*model.Category, error)
	ListByEnterprise(ctx context.Context, enterpriseID uuid.UUID, page Page) ([]model.Category, error)
	Update(ctx context.Context, c *model.Category) error
	CountProducts(ctx context.Context, id uuid.UUID) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type categoryRepo struct{ db *gorm.DB }

func NewCategoryRepository(db *gorm.DB) CategoryRepository { return &categoryRepo{db: db} }

func (r *categoryRepo) Create(ctx context.Context, c *model.Category) error {
	return GetDB(ctx, r.db).Create(c).Error
}

func (r *categoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	var c model.Category
	if err := GetDB(ctx, r.db).First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *categoryRepo) FindByName(ctx context.Context, enterpriseID uuid.UUID, name string) (*model.Category, error) {
	var c model.Category
	err := GetDB(ctx, r.db).
		Where("enterprise_id = ? AND LOWER(name) = LOWER(?)", enterpriseID, name).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *categoryRepo) ListByEnterprise(ctx context.Context, enterpriseID uuid.UUID, page Page) ([]model.Category, error) {
	var list []model.Category
	q := GetDB(ctx, r.db).Where("enterprise_id = ?", enterpriseID).Order("name ASC")
	err := page.apply(q).Find(&list).Error
	return list, err
}

func (r *categoryRepo) Update(ctx context.Context, c *model.Category) error {
	return GetDB(ctx, r.db).Save(c).Error
}

func (r *categoryRepo) CountProducts(ctx context.Context, id uuid.UUID) (int64, error) {
	var n int64
	err := GetDB(ctx, r.db).Model(&model.Product{}).Where("category_id = ?", id).Count(&n).Error
	return n, err
}

func (r *categoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Delete(&model.Category{}, "id = ?", id).Error
}
