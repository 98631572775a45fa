package repository

import (
	"context"
	"time"

	"github.com/MartinOstios/backend-posco/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ResetTokenRepository interface {
	Create(ctx context.Context, t *model.PasswordResetToken) error
	// InvalidateForEmail marks every unused code for the address as used.
	InvalidateForEmail(ctx context.Context, email string) error
	// FindValid returns the newest unused code matching email and code created after notBefore.
	FindValid(ctx context.Context, email, code string, notBefore time.Time) (*model.PasswordResetToken, error)
	// Consume flips is_used only if it is still false. It reports whether this call won.
	Consume(ctx context.Context, id uuid.UUID) (bool, error)
}

type resetTokenRepo struct{ db *gorm.DB }

func NewResetTokenRepository(db *gorm.DB) ResetTokenRepository { return &resetTokenRepo{db: db} }

func (r *resetTokenRepo) Create(ctx context.Context, t *model.PasswordResetToken) error {
	return GetDB(ctx, r.db).Create(t).Error
}

func (r *resetTokenRepo) InvalidateForEmail(ctx context.Context, email string) error {
	return GetDB(ctx, r.db).Model(&model.PasswordResetToken{}).
		Where("LOWER(email) = LOWER(?) AND is_used = false", email).
		Update("is_used", true).Error
}

func (r *resetTokenRepo) FindValid(ctx context.Context, email, code string, notBefore time.Time) (*model.PasswordResetToken, error) {
	var t model.PasswordResetToken
	err := GetDB(ctx, r.db).
		Where("LOWER(email) = LOWER(?) AND token = ? AND is_used = false AND created_at >= ?", email, code, notBefore).
		Order("created_at DESC").
		First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *resetTokenRepo) Consume(ctx context.Context, id uuid.UUID) (bool, error) {
	res := GetDB(ctx, r.db).Model(&model.PasswordResetToken{}).
		Where("id = ? AND is_used = false", id).
		Update("is_used", true)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
