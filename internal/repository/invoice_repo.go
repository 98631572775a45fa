package repository

import (
	"context"
	"time"

	"github.com/MartinOstios/backend-posco/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InvoiceRepository interface {
	Create(ctx context.Context, inv *model.Invoice) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Invoice, error)
	// FindWithSales preloads the invoice's sale lines and their products.
	FindWithSales(ctx context.Context, id uuid.UUID) (*model.Invoice, error)
	ListByEnterprise(ctx context.Context, enterpriseID uuid.UUID, page Page) ([]model.Invoice, error)
	// ListByDateRange returns invoices created within [from, to], both inclusive by day.
	ListByDateRange(ctx context.Context, enterpriseID uuid.UUID, from, to time.Time, page Page) ([]model.Invoice, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type invoiceRepo struct{ db *gorm.DB }

func NewInvoiceRepository(db *gorm.DB) InvoiceRepository { return &invoiceRepo{db: db} }

func (r *invoiceRepo) Create(ctx context.Context, inv *model.Invoice) error {
	return GetDB(ctx, r.db).Omit("Sales").Create(inv).Error
}

func (r *invoiceRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Invoice, error) {
	var inv model.Invoice
	if err := GetDB(ctx, r.db).First(&inv, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *invoiceRepo) FindWithSales(ctx context.Context, id uuid.UUID) (*model.Invoice, error) {
	var inv model.Invoice
	err := GetDB(ctx, r.db).
		Preload("Sales", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("Sales.Product").
		First(&inv, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *invoiceRepo) ListByEnterprise(ctx context.Context, enterpriseID uuid.UUID, page Page) ([]model.Invoice, error) {
	var list []model.Invoice
	q := GetDB(ctx, r.db).Where("enterprise_id = ?", enterpriseID).Order("created_at DESC")
	err := page.apply(q).Find(&list).Error
	return list, err
}

func (r *invoiceRepo) ListByDateRange(ctx context.Context, enterpriseID uuid.UUID, from, to time.Time, page Page) ([]model.Invoice, error) {
	var list []model.Invoice
	q := GetDB(ctx, r.db).
		Where("enterprise_id = ? AND created_at >= ? AND created_at < ?", enterpriseID, from, to.AddDate(0, 0, 1)).
		Order("created_at DESC")
	err := page.apply(q).Find(&list).Error
	return list, err
}

func (r *invoiceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Delete(&model.Invoice{}, "id = ?", id).Error
}
