package repository

import (
	"context"

	"github.com/MartinOstios/backend-posco/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClientRepository interface {
	Create(ctx context.Context, c *model.Client) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Client, error)
	ListByEnterprise(ctx context.Context, enterpriseID uuid.UUID, page Page) ([]model.Client, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type clientRepo struct{ db *gorm.DB }

func NewClientRepository(db *gorm.DB) ClientRepository { return &clientRepo{db: db} }

func (r *clientRepo) Create(ctx context.Context, c *model.Client) error {
	return GetDB(ctx, r.db).Create(c).Error
}

func (r *clientRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Client, error) {
	var c model.Client
	if err := GetDB(ctx, r.db).First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *clientRepo) ListByEnterprise(ctx context.Context, enterpriseID uuid.UUID, page Page) ([]model.Client, error) {
	var list []model.Client
	q := GetDB(ctx, r.db).Where("enterprise_id = ?", enterpriseID).Order("name ASC")
	err := page.apply(q).Find(&list).Error
	return list, err
}

func (r *clientRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Delete(&model.Client{}, "id = ?", id).Error
}
