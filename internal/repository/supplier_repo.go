package repository

import (
	"context"

	"github.com/MartinOstios/backend-posco/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SupplierRepository interface {
	Create(ctx context.Context, s *model.Supplier) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Supplier, error)
	ListByEnterprise(ctx context.Context, enterpriseID uuid.UUID, page Page) ([]model.Supplier, error)
	Update(ctx context.Context, s *model.Supplier) error
	CountProducts(ctx context.Context, id uuid.UUID) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type supplierRepo struct{ db *gorm.DB }

func NewSupplierRepository(db *gorm.DB) SupplierRepository { return &supplierRepo{db: db} }

func (r *supplierRepo) Create(ctx context.Context, s *model.Supplier) error {
	return GetDB(ctx, r.db).Create(s).Error
}

func (r *supplierRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Supplier, error) {
	var s model.Supplier
	if err := GetDB(ctx, r.db).First(&s, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *supplierRepo) ListByEnterprise(ctx context.Context, enterpriseID uuid.UUID, page Page) ([]model.Supplier, error) {
	var list []model.Supplier
	q := GetDB(ctx, r.db).Where("enterprise_id = ?", enterpriseID).Order("name ASC")
	err := page.apply(q).Find(&list).Error
	return list, err
}

func (r *supplierRepo) Update(ctx context.Context, s *model.Supplier) error {
	return GetDB(ctx, r.db).Save(s).Error
}

func (r *supplierRepo) CountProducts(ctx context.Context, id uuid.UUID) (int64, error) {
	var n int64
	err := GetDB(ctx, r.db).Model(&model.Product{}).Where("supplier_id = ?", id).Count(&n).Error
	return n, err
}

func (r *supplierRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Delete(&model.Supplier{}, "id = ?", id).Error
}
