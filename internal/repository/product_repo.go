package repository

import (
	"context"

	"github.com/MartinOstios/backend-posco/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductFilter struct {
	CategoryID *uuid.UUID
	SupplierID *uuid.UUID
	Status     model.ProductStatus
	Name       string
}

type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	// FindForUpdate takes a row lock held until the surrounding transaction ends.
	FindForUpdate(ctx context.Context, id uuid.UUID) (*model.Product, error)
	FindByBarCode(ctx context.Context, enterpriseID uuid.UUID, barCode string) (*model.Product, error)
	List(ctx context.Context, enterpriseID uuid.UUID, f ProductFilter, page Page) ([]model.Product, error)
	Update(ctx context.Context, p *model.Product) error
	UpdateStock(ctx context.Context, id uuid.UUID, stock int, status model.ProductStatus) error
	CountSales(ctx context.Context, id uuid.UUID) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type productRepo struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) ProductRepository { return &productRepo{db: db} }

func (r *productRepo) Create(ctx context.Context, p *model.Product) error {
	return GetDB(ctx, r.db).Omit("Category", "Supplier").Create(p).Error
}

func (r *productRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var p model.Product
	if err := GetDB(ctx, r.db).Preload("Category").Preload("Supplier").First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) FindForUpdate(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var p model.Product
	err := GetDB(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) FindByBarCode(ctx context.Context, enterpriseID uuid.UUID, barCode string) (*model.Product, error) {
	var p model.Product
	err := GetDB(ctx, r.db).
		Where("enterprise_id = ? AND bar_code = ?", enterpriseID, barCode).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) List(ctx context.Context, enterpriseID uuid.UUID, f ProductFilter, page Page) ([]model.Product, error) {
	q := GetDB(ctx, r.db).Preload("Category").Preload("Supplier").
		Where("enterprise_id = ?", enterpriseID)
	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	if f.SupplierID != nil {
		q = q.Where("supplier_id = ?", *f.SupplierID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Name != "" {
		q = q.Where("name ILIKE ?", "%"+f.Name+"%")
	}
	var list []model.Product
	err := page.apply(q.Order("name ASC")).Find(&list).Error
	return list, err
}

func (r *productRepo) Update(ctx context.Context, p *model.Product) error {
	return GetDB(ctx, r.db).Omit("Category", "Supplier").Save(p).Error
}

func (r *productRepo) UpdateStock(ctx context.Context, id uuid.UUID, stock int, status model.ProductStatus) error {
	return GetDB(ctx, r.db).Model(&model.Product{}).Where("id = ?", id).
		Updates(map[string]interface{}{"stock": stock, "status": status}).Error
}

func (r *productRepo) CountSales(ctx context.Context, id uuid.UUID) (int64, error) {
	var n int64
	err := GetDB(ctx, r.db).Model(&model.Sale{}).Where("product_id = ?", id).Count(&n).Error
	return n, err
}

// Delete removes the product together with its stock history.
func (r *productRepo) Delete(ctx context.Context, id uuid.UUID) error {
	db := GetDB(ctx, r.db)
	if err := db.Where("product_id = ?", id).Delete(&model.StockMovement{}).Error; err != nil {
		return err
	}
	return db.Delete(&model.Product{}, "id = ?", id).Error
}
