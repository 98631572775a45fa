package service

import (
	"context"
	"errors"

	"github.com/MartinOstios/backend-posco/internal/apierror"
	"github.com/MartinOstios/backend-posco/internal/authz"
	"github.com/MartinOstios/backend-posco/internal/dto"
	"github.com/MartinOstios/backend-posco/internal/model"
	"github.com/MartinOstios/backend-posco/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductService defines the business logic contract for products.
type ProductService interface {
	Create(ctx context.Context, actor *authz.Identity, req dto.CreateProductRequest) (dto.ProductResponse, error)
	List(ctx context.Context, actor *authz.Identity, filter dto.ProductFilter) ([]dto.ProductResponse, error)
	ListByCategory(ctx context.Context, actor *authz.Identity, categoryID uuid.UUID, page dto.PageQuery) ([]dto.ProductResponse, error)
	Get(ctx context.Context, actor *authz.Identity, id uuid.UUID) (dto.ProductResponse, error)
	Update(ctx context.Context, actor *authz.Identity, id uuid.UUID, req dto.UpdateProductRequest) (dto.ProductResponse, error)
	Delete(ctx context.Context, actor *authz.Identity, id uuid.UUID) error
	AdjustStock(ctx context.Context, actor *authz.Identity, id uuid.UUID, req dto.AdjustStockRequest) (dto.ProductResponse, error)
	Movements(ctx context.Context, actor *authz.Identity, id uuid.UUID, page dto.PageQuery) ([]dto.StockMovementResponse, error)
}

type productService struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	suppliers  repository.SupplierRepository
	movements  repository.StockMovementRepository
	stock      StockService
}

func NewProductService(
	products repository.ProductRepository,
	categories repository.CategoryRepository,
	suppliers repository.SupplierRepository,
	movements repository.StockMovementRepository,
	stock StockService,
) ProductService {
	return &productService{
		products:   products,
		categories: categories,
		suppliers:  suppliers,
		movements:  movements,
		stock:      stock,
	}
}

func (s *productService) load(ctx context.Context, actor *authz.Identity, id uuid.UUID) (*model.Product, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Product not found")
	}
	if err := authz.OwnedBy(actor, p); err != nil {
		return nil, err
	}
	return p, nil
}

// checkRefs verifies that the category and optional supplier belong to the actor's enterprise.
func (s *productService) checkRefs(ctx context.Context, actor *authz.Identity, categoryID uuid.UUID, supplierID *uuid.UUID) error {
	c, err := s.categories.FindByID(ctx, categoryID)
	if err != nil {
		return notFound(err, "Category not found")
	}
	if err := authz.OwnedBy(actor, c); err != nil {
		return err
	}
	if supplierID == nil {
		return nil
	}
	sup, err := s.suppliers.FindByID(ctx, *supplierID)
	if err != nil {
		return notFound(err, "Supplier not found")
	}
	return authz.OwnedBy(actor, sup)
}

func (s *productService) barCodeTaken(ctx context.Context, enterpriseID uuid.UUID, barCode string, except uuid.UUID) error {
	existing, err := s.products.FindByBarCode(ctx, enterpriseID, barCode)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if existing != nil && existing.ID != except {
		return apierror.Conflict("A product with this bar code already exists")
	}
	return nil
}

func (s *productService) Create(ctx context.Context, actor *authz.Identity, req dto.CreateProductRequest) (dto.ProductResponse, error) {
	if err := s.checkRefs(ctx, actor, req.CategoryID, req.SupplierID); err != nil {
		return dto.ProductResponse{}, err
	}
	if err := s.barCodeTaken(ctx, actor.Enterprise.ID, req.BarCode, uuid.Nil); err != nil {
		return dto.ProductResponse{}, err
	}

	p := &model.Product{
		Name:             req.Name,
		Description:      req.Description,
		Status:           model.ProductStatus(req.Status),
		SupplierPrice:    req.SupplierPrice,
		PublicPrice:      req.PublicPrice,
		Thumbnail:        req.Thumbnail,
		BarCode:          req.BarCode,
		MinimalSafeStock: req.MinimalSafeStock,
		Discount:         req.Discount,
		EnterpriseID:     actor.Enterprise.ID,
		CategoryID:       req.CategoryID,
		SupplierID:       req.SupplierID,
	}
	p.Stock = req.Stock
	p.Status = p.StatusForStock(req.Stock)

	if err := s.products.Create(ctx, p); err != nil {
		return dto.ProductResponse{}, conflictOnDuplicate(err, "A product with this bar code already exists")
	}
	return mapProduct(*p), nil
}

func (s *productService) List(ctx context.Context, actor *authz.Identity, filter dto.ProductFilter) ([]dto.ProductResponse, error) {
	enterpriseID, page := authz.Scope(actor, toPage(filter.PageQuery))
	f := repository.ProductFilter{Name: filter.Name, Status: model.ProductStatus(filter.Status)}
	if filter.SupplierID != "" {
		id, err := uuid.Parse(filter.SupplierID)
		if err != nil {
			return nil, apierror.InvalidInput("Invalid supplier_id")
		}
		f.SupplierID = &id
	}
	list, err := s.products.List(ctx, enterpriseID, f, page)
	if err != nil {
		return nil, err
	}
	return mapList(list, mapProduct), nil
}

func (s *productService) ListByCategory(ctx context.Context, actor *authz.Identity, categoryID uuid.UUID, page dto.PageQuery) ([]dto.ProductResponse, error) {
	c, err := s.categories.FindByID(ctx, categoryID)
	if err != nil {
		return nil, notFound(err, "Category not found")
	}
	if err := authz.OwnedBy(actor, c); err != nil {
		return nil, err
	}
	enterpriseID, p := authz.Scope(actor, toPage(page))
	list, err := s.products.List(ctx, enterpriseID, repository.ProductFilter{CategoryID: &categoryID}, p)
	if err != nil {
		return nil, err
	}
	return mapList(list, mapProduct), nil
}

func (s *productService) Get(ctx context.Context, actor *authz.Identity, id uuid.UUID) (dto.ProductResponse, error) {
	p, err := s.load(ctx, actor, id)
	if err != nil {
		return dto.ProductResponse{}, err
	}
	return mapProduct(*p), nil
}

func (s *productService) Update(ctx context.Context, actor *authz.Identity, id uuid.UUID, req dto.UpdateProductRequest) (dto.ProductResponse, error) {
	p, err := s.load(ctx, actor, id)
	if err != nil {
		return dto.ProductResponse{}, err
	}

	categoryID, supplierID := p.CategoryID, p.SupplierID
	if req.CategoryID != nil {
		categoryID = *req.CategoryID
	}
	if req.SupplierID != nil {
		supplierID = req.SupplierID
	}
	if req.CategoryID != nil || req.SupplierID != nil {
		if err := s.checkRefs(ctx, actor, categoryID, supplierID); err != nil {
			return dto.ProductResponse{}, err
		}
	}
	if req.BarCode != nil && *req.BarCode != p.BarCode {
		if err := s.barCodeTaken(ctx, p.EnterpriseID, *req.BarCode, p.ID); err != nil {
			return dto.ProductResponse{}, err
		}
		p.BarCode = *req.BarCode
	}

	p.CategoryID, p.SupplierID = categoryID, supplierID
	p.Category, p.Supplier = nil, nil
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.SupplierPrice != nil {
		p.SupplierPrice = *req.SupplierPrice
	}
	if req.PublicPrice != nil {
		p.PublicPrice = *req.PublicPrice
	}
	if req.Thumbnail != nil {
		p.Thumbnail = *req.Thumbnail
	}
	if req.MinimalSafeStock != nil {
		p.MinimalSafeStock = *req.MinimalSafeStock
	}
	if req.Discount != nil {
		p.Discount = *req.Discount
	}
	if req.Status != nil {
		// out_of_stock is derived from stock; only active/inactive are chosen by hand
		p.Status = model.ProductStatus(*req.Status)
		if p.Status != model.ProductInactive {
			p.Status = model.ProductActive
			p.Status = p.StatusForStock(p.Stock)
		}
	}

	if err := s.products.Update(ctx, p); err != nil {
		return dto.ProductResponse{}, conflictOnDuplicate(err, "A product with this bar code already exists")
	}
	return s.Get(ctx, actor, p.ID)
}

func (s *productService) Delete(ctx context.Context, actor *authz.Identity, id uuid.UUID) error {
	if _, err := s.load(ctx, actor, id); err != nil {
		return err
	}
	n, err := s.products.CountSales(ctx, id)
	if err != nil {
		return err
	}
	if err := authz.CanDeleteWithSales("product", n); err != nil {
		return err
	}
	return s.products.Delete(ctx, id)
}

func (s *productService) AdjustStock(ctx context.Context, actor *authz.Identity, id uuid.UUID, req dto.AdjustStockRequest) (dto.ProductResponse, error) {
	if _, err := s.load(ctx, actor, id); err != nil {
		return dto.ProductResponse{}, err
	}
	p, err := s.stock.AdjustStock(ctx, StockAdjustment{
		Actor:     actor,
		ProductID: id,
		Delta:     req.Delta,
		Kind:      model.MovementManual,
		Reason:    req.Reason,
	})
	if err != nil {
		return dto.ProductResponse{}, err
	}
	return mapProduct(*p), nil
}

func (s *productService) Movements(ctx context.Context, actor *authz.Identity, id uuid.UUID, page dto.PageQuery) ([]dto.StockMovementResponse, error) {
	if _, err := s.load(ctx, actor, id); err != nil {
		return nil, err
	}
	list, err := s.movements.ListByProduct(ctx, id, toPage(page))
	if err != nil {
		return nil, err
	}
	return mapList(list, mapMovement), nil
}
