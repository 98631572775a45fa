package repository

import (
	"context"

	"github.com/MartinOstios/backend-posco/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationTokenRepository interface {
	Create(ctx context.Context, t *model.NotificationToken) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.NotificationToken, error)
	FindActiveByToken(ctx context.Context, token string) (*model.NotificationToken, error)
	ListByUser(ctx context.Context, userID uuid.UUID, activeOnly bool) ([]model.NotificationToken, error)
	Update(ctx context.Context, t *model.NotificationToken) error
	Deactivate(ctx context.Context, ids ...uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type notificationTokenRepo struct{ db *gorm.DB }

func NewNotificationTokenRepository(db *gorm.DB) NotificationTokenRepository {
	return &notificationTokenRepo{db: db}
}

func (r *notificationTokenRepo) Create(ctx context.Context, t *model.NotificationToken) error {
	return GetDB(ctx, r.db).Create(t).Error
}

func (r *notificationTokenRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.NotificationToken, error) {
	var t model.NotificationToken
	if err := GetDB(ctx, r.db).First(&t, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *notificationTokenRepo) FindActiveByToken(ctx context.Context, token string) (*model.NotificationToken, error) {
	var t model.NotificationToken
	if err := GetDB(ctx, r.db).Where("token = ? AND active = true", token).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *notificationTokenRepo) ListByUser(ctx context.Context, userID uuid.UUID, activeOnly bool) ([]model.NotificationToken, error) {
	q := GetDB(ctx, r.db).Where("user_id = ?", userID)
	if activeOnly {
		q = q.Where("active = true")
	}
	var list []model.NotificationToken
	err := q.Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *notificationTokenRepo) Update(ctx context.Context, t *model.NotificationToken) error {
	return GetDB(ctx, r.db).Save(t).Error
}

func (r *notificationTokenRepo) Deactivate(ctx context.Context, ids ...uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return GetDB(ctx, r.db).Model(&model.NotificationToken{}).
		Where("id IN ?", ids).Update("active", false).Error
}

func (r *notificationTokenRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Delete(&model.NotificationToken{}, "id = ?", id).Error
}
