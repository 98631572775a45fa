package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProductStatus string

const (
	ProductActive     ProductStatus = "active"
	ProductInactive   ProductStatus = "inactive"
	ProductOutOfStock ProductStatus = "out_of_stock"
)

// Product is a sellable item. BarCode is unique within an enterprise.
type Product struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name             string          `gorm:"type:varchar(45);not null;index"`
	Description      string          `gorm:"type:varchar(255);not null;default:''"`
	Status           ProductStatus   `gorm:"type:varchar(20);not null;default:'active'"`
	Stock            int             `gorm:"not null;default:0"`
	SupplierPrice    decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	PublicPrice      decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Thumbnail        string          `gorm:"type:varchar(255);not null;default:''"`
	BarCode          string          `gorm:"type:varchar(45);not null;uniqueIndex:idx_products_enterprise_barcode"`
	MinimalSafeStock int             `gorm:"not null;default:0"`
	Discount         decimal.Decimal `gorm:"type:numeric(5,2);not null;default:0"`
	EnterpriseID     uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_products_enterprise_barcode;index"`
	CategoryID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	SupplierID       *uuid.UUID      `gorm:"type:uuid;index"`
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Category *Category `gorm:"foreignKey:CategoryID"`
	Supplier *Supplier `gorm:"foreignKey:SupplierID"`
}

// StatusForStock returns the status a product should have after its stock
// changes. Inactive products keep their status.
func (p *Product) StatusForStock(stock int) ProductStatus {
	switch {
	case p.Status == ProductInactive:
		return ProductInactive
	case stock == 0:
		return ProductOutOfStock
	default:
		return ProductActive
	}
}
