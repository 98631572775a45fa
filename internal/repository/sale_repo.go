package repository

import (
	"context"
	"time"

	"github.com/MartinOstios/backend-posco/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SaleRepository interface {
	Create(ctx context.Context, s *model.Sale) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error)
	ListByEnterprise(ctx context.Context, enterpriseID uuid.UUID, page Page) ([]model.Sale, error)
	// ListByDateRange filters on sell_date, both bounds inclusive.
	ListByDateRange(ctx context.Context, enterpriseID uuid.UUID, from, to time.Time, page Page) ([]model.Sale, error)
	ListByClient(ctx context.Context, clientID uuid.UUID, page Page) ([]model.Sale, error)
	ListByInvoice(ctx context.Context, invoiceID uuid.UUID, page Page) ([]model.Sale, error)
	CountByClient(ctx context.Context, clientID uuid.UUID) (int64, error)
	CountByInvoice(ctx context.Context, invoiceID uuid.UUID) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type saleRepo struct{ db *gorm.DB }

func NewSaleRepository(db *gorm.DB) SaleRepository { return &saleRepo{db: db} }

func (r *saleRepo) Create(ctx context.Context, s *model.Sale) error {
	return GetDB(ctx, r.db).Omit("Product").Create(s).Error
}

func (r *saleRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error) {
	var s model.Sale
	if err := GetDB(ctx, r.db).Preload("Product").First(&s, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *saleRepo) list(ctx context.Context, page Page, where string, args ...interface{}) ([]model.Sale, error) {
	var list []model.Sale
	q := GetDB(ctx, r.db).Preload("Product").Where(where, args...).Order("sell_date DESC, created_at DESC")
	err := page.apply(q).Find(&list).Error
	return list, err
}

func (r *saleRepo) ListByEnterprise(ctx context.Context, enterpriseID uuid.UUID, page Page) ([]model.Sale, error) {
	return r.list(ctx, page, "enterprise_id = ?", enterpriseID)
}

func (r *saleRepo) ListByDateRange(ctx context.Context, enterpriseID uuid.UUID, from, to time.Time, page Page) ([]model.Sale, error) {
	return r.list(ctx, page, "enterprise_id = ? AND sell_date BETWEEN ? AND ?", enterpriseID, from, to)
}

func (r *saleRepo) ListByClient(ctx context.Context, clientID uuid.UUID, page Page) ([]model.Sale, error) {
	return r.list(ctx, page, "client_id = ?", clientID)
}

func (r *saleRepo) ListByInvoice(ctx context.Context, invoiceID uuid.UUID, page Page) ([]model.Sale, error) {
	return r.list(ctx, page, "invoice_id = ?", invoiceID)
}

func (r *saleRepo) CountByClient(ctx context.Context, clientID uuid.UUID) (int64, error) {
	var n int64
	err := GetDB(ctx, r.db).Model(&model.Sale{}).Where("client_id = ?", clientID).Count(&n).Error
	return n, err
}

func (r *saleRepo) CountByInvoice(ctx context.Context, invoiceID uuid.UUID) (int64, error) {
	var n int64
	err := GetDB(ctx, r.db).Model(&model.Sale{}).Where("invoice_id = ?", invoiceID).Count(&n).Error
	return n, err
}

func (r *saleRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Delete(&model.Sale{}, "id = ?", id).Error
}
