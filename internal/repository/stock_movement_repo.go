package repository

import (
	"context"

	"github.com/MartinOstios/backend-posco/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StockMovementRepository interface {
	Create(ctx context.Context, m *model.StockMovement) error
	ListByProduct(ctx context.Context, productID uuid.UUID, page Page) ([]model.StockMovement, error)
}

type stockMovementRepo struct{ db *gorm.DB }

func NewStockMovementRepository(db *gorm.DB) StockMovementRepository {
	return &stockMovementRepo{db: db}
}

func (r *stockMovementRepo) Create(ctx context.Context, m *model.StockMovement) error {
	return GetDB(ctx, r.db).Create(m).Error
}

func (r *stockMovementRepo) ListByProduct(ctx context.Context, productID uuid.UUID, page Page) ([]model.StockMovement, error) {
	var list []model.StockMovement
	q := GetDB(ctx, r.db).Where("product_id = ?", productID).Order("created_at DESC")
	err := page.apply(q).Find(&list).Error
	return list, err
}
