package service

import (
	"context"

	"github.com/MartinOstios/backend-posco/internal/authz"
	"github.com/MartinOstios/backend-posco/internal/dto"
	"github.com/MartinOstios/backend-posco/internal/model"
	"github.com/MartinOstios/backend-posco/internal/repository"

	"github.com/google/uuid"
)

type SupplierService interface {
	Create(ctx context.Context, actor *authz.Identity, req dto.CreateSupplierRequest) (dto.SupplierResponse, error)
	List(ctx context.Context, actor *authz.Identity, page dto.PageQuery) ([]dto.SupplierResponse, error)
	Get(ctx context.Context, actor *authz.Identity, id uuid.UUID) (dto.SupplierResponse, error)
	Update(ctx context.Context, actor *authz.Identity, id uuid.UUID, req dto.UpdateSupplierRequest) (dto.SupplierResponse, error)
	Delete(ctx context.Context, actor *authz.Identity, id uuid.UUID) error
}

type supplierService struct {
	repo repository.SupplierRepository
}

func NewSupplierService(repo repository.SupplierRepository) SupplierService {
	return &supplierService{repo: repo}
}

func (s *supplierService) load(ctx context.Context, actor *authz.Identity, id uuid.UUID) (*model.Supplier, error) {
	sup, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Supplier not found")
	}
	if err := authz.OwnedBy(actor, sup); err != nil {
		return nil, err
	}
	return sup, nil
}

func (s *supplierService) Create(ctx context.Context, actor *authz.Identity, req dto.CreateSupplierRequest) (dto.SupplierResponse, error) {
	sup := &model.Supplier{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		TaxID:        req.TaxID,
		EnterpriseID: actor.Enterprise.ID,
	}
	if err := s.repo.Create(ctx, sup); err != nil {
		return dto.SupplierResponse{}, err
	}
	return mapSupplier(*sup), nil
}

func (s *supplierService) List(ctx context.Context, actor *authz.Identity, page dto.PageQuery) ([]dto.SupplierResponse, error) {
	enterpriseID, p := authz.Scope(actor, toPage(page))
	list, err := s.repo.ListByEnterprise(ctx, enterpriseID, p)
	if err != nil {
		return nil, err
	}
	return mapList(list, mapSupplier), nil
}

func (s *supplierService) Get(ctx context.Context, actor *authz.Identity, id uuid.UUID) (dto.SupplierResponse, error) {
	sup, err := s.load(ctx, actor, id)
	if err != nil {
		return dto.SupplierResponse{}, err
	}
	return mapSupplier(*sup), nil
}

func (s *supplierService) Update(ctx context.Context, actor *authz.Identity, id uuid.UUID, req dto.UpdateSupplierRequest) (dto.SupplierResponse, error) {
	sup, err := s.load(ctx, actor, id)
	if err != nil {
		return dto.SupplierResponse{}, err
	}
	if req.Name != nil {
		sup.Name = *req.Name
	}
	if req.Email != nil {
		sup.Email = *req.Email
	}
	if req.Phone != nil {
		sup.Phone = *req.Phone
	}
	if req.TaxID != nil {
		sup.TaxID = *req.TaxID
	}
	if err := s.repo.Update(ctx, sup); err != nil {
		return dto.SupplierResponse{}, err
	}
	return mapSupplier(*sup), nil
}

func (s *supplierService) Delete(ctx context.Context, actor *authz.Identity, id uuid.UUID) error {
	if _, err := s.load(ctx, actor, id); err != nil {
		return err
	}
	n, err := s.repo.CountProducts(ctx, id)
	if err != nil {
		return err
	}
	if err := authz.CanDeleteWithChildren("supplier", "products", n); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
