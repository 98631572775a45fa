package repository

import (
	"context"

	"github.com/MartinOstios/backend-posco/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EmployeeRepository loads employees together with the graph authorization needs.
type EmployeeRepository interface {
	Create(ctx context.Context, e *model.Employee) error
	// FindWithAccess preloads Enterprise, Role and Role.Permissions.
	FindWithAccess(ctx context.Context, id uuid.UUID) (*model.Employee, error)
	FindByEmail(ctx context.Context, email string) (*model.Employee, error)
	ListByEnterprise(ctx context.Context, enterpriseID uuid.UUID, page Page) ([]model.Employee, error)
	Update(ctx context.Context, e *model.Employee) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type employeeRepo struct{ db *gorm.DB }

func NewEmployeeRepository(db *gorm.DB) EmployeeRepository { return &employeeRepo{db: db} }

func (r *employeeRepo) withAccess(ctx context.Context) *gorm.DB {
	return GetDB(ctx, r.db).Preload("Enterprise").Preload("Role.Permissions")
}

func (r *employeeRepo) Create(ctx context.Context, e *model.Employee) error {
	return GetDB(ctx, r.db).Omit("Enterprise", "Role").Create(e).Error
}

func (r *employeeRepo) FindWithAccess(ctx context.Context, id uuid.UUID) (*model.Employee, error) {
	var e model.Employee
	if err := r.withAccess(ctx).First(&e, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *employeeRepo) FindByEmail(ctx context.Context, email string) (*model.Employee, error) {
	var e model.Employee
	if err := r.withAccess(ctx).Where("LOWER(email) = LOWER(?)", email).First(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *employeeRepo) ListByEnterprise(ctx context.Context, enterpriseID uuid.UUID, page Page) ([]model.Employee, error) {
	var list []model.Employee
	q := r.withAccess(ctx).Where("enterprise_id = ?", enterpriseID).Order("lastname ASC, name ASC")
	err := page.apply(q).Find(&list).Error
	return list, err
}

func (r *employeeRepo) Update(ctx context.Context, e *model.Employee) error {
	return GetDB(ctx, r.db).Omit("Enterprise", "Role").Save(e).Error
}

func (r *employeeRepo) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	return GetDB(ctx, r.db).Model(&model.Employee{}).Where("id = ?", id).Update("is_active", active).Error
}

func (r *employeeRepo) UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error {
	return GetDB(ctx, r.db).Model(&model.Employee{}).Where("id = ?", id).Update("password_hash", hash).Error
}

// Delete removes the employee and its notification tokens.
func (r *employeeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	db := GetDB(ctx, r.db)
	if err := db.Where("user_id = ?", id).Delete(&model.NotificationToken{}).Error; err != nil {
		return err
	}
	return db.Delete(&model.Employee{}, "id = ?", id).Error
}
