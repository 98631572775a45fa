package repository

import (
	"context"

	"github.com/MartinOstios/backend-posco/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EnterpriseRepository interface {
	Create(ctx context.Context, e *model.Enterprise) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Enterprise, error)
	FindByTaxID(ctx context.Context, taxID string) (*model.Enterprise, error)
	List(ctx context.Context, page Page) ([]model.Enterprise, error)
	// HasDependents reports whether any scoped row still references the enterprise.
	HasDependents(ctx context.Context, id uuid.UUID) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type enterpriseRepo struct{ db *gorm.DB }

func NewEnterpriseRepository(db *gorm.DB) EnterpriseRepository { return &enterpriseRepo{db: db} }

func (r *enterpriseRepo) Create(ctx context.Context, e *model.Enterprise) error {
	return GetDB(ctx, r.db).Create(e).Error
}

func (r *enterpriseRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Enterprise, error) {
	var e model.Enterprise
	if err := GetDB(ctx, r.db).First(&e, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *enterpriseRepo) FindByTaxID(ctx context.Context, taxID string) (*model.Enterprise, error) {
	var e model.Enterprise
	if err := GetDB(ctx, r.db).Where("nit = ?", taxID).First(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *enterpriseRepo) List(ctx context.Context, page Page) ([]model.Enterprise, error) {
	var list []model.Enterprise
	err := page.apply(GetDB(ctx, r.db).Order("name ASC")).Find(&list).Error
	return list, err
}

func (r *enterpriseRepo) HasDependents(ctx context.Context, id uuid.UUID) (bool, error) {
	db := GetDB(ctx, r.db)
	for _, m := range []interface{}{
		&model.Employee{}, &model.Category{}, &model.Supplier{},
		&model.Product{}, &model.Client{}, &model.Invoice{},
	} {
		var n int64
		if err := db.Model(m).Where("enterprise_id = ?", id).Limit(1).Count(&n).Error; err != nil {
			return false, err
		}
		if n > 0 {
			return true, nil
		}
	}
	return false, nil
}

func (r *enterpriseRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Delete(&model.Enterprise{}, "id = ?", id).Error
}
