package service

import (
	"context"
	"errors"
	"strings"

	"github.com/MartinOstios/backend-posco/internal/apierror"
	"github.com/MartinOstios/backend-posco/internal/dto"
	"github.com/MartinOstios/backend-posco/internal/model"
	"github.com/MartinOstios/backend-posco/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EnterpriseService manages tenants. Enterprise operations are global and
// carry no tenant check.
type EnterpriseService interface {
	Create(ctx context.Context, req dto.CreateEnterpriseRequest) (dto.EnterpriseResponse, error)
	List(ctx context.Context, page dto.PageQuery) ([]dto.EnterpriseResponse, error)
	Get(ctx context.Context, id uuid.UUID) (dto.EnterpriseResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type enterpriseService struct {
	repo repository.EnterpriseRepository
}

func NewEnterpriseService(repo repository.EnterpriseRepository) EnterpriseService {
	return &enterpriseService{repo: repo}
}

func (s *enterpriseService) Create(ctx context.Context, req dto.CreateEnterpriseRequest) (dto.EnterpriseResponse, error) {
	existing, err := s.repo.FindByTaxID(ctx, req.TaxID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.EnterpriseResponse{}, err
	}
	if existing != nil {
		return dto.EnterpriseResponse{}, apierror.Conflict("An enterprise with this NIT already exists")
	}

	e := &model.Enterprise{
		Name:     req.Name,
		TaxID:    req.TaxID,
		Email:    req.Email,
		Phone:    req.Phone,
		Currency: strings.ToUpper(req.Currency),
	}
	if e.Currency == "" {
		e.Currency = "COP"
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return dto.EnterpriseResponse{}, conflictOnDuplicate(err, "An enterprise with this NIT already exists")
	}
	return mapEnterprise(*e), nil
}

func (s *enterpriseService) List(ctx context.Context, page dto.PageQuery) ([]dto.EnterpriseResponse, error) {
	list, err := s.repo.List(ctx, toPage(page))
	if err != nil {
		return nil, err
	}
	return mapList(list, mapEnterprise), nil
}

func (s *enterpriseService) Get(ctx context.Context, id uuid.UUID) (dto.EnterpriseResponse, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return dto.EnterpriseResponse{}, notFound(err, "Enterprise not found")
	}
	return mapEnterprise(*e), nil
}

func (s *enterpriseService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return notFound(err, "Enterprise not found")
	}
	busy, err := s.repo.HasDependents(ctx, id)
	if err != nil {
		return err
	}
	if busy {
		return apierror.E(apierror.KindReferentialDeleteBlocked,
			"Cannot delete an enterprise that still has employees or records")
	}
	return s.repo.Delete(ctx, id)
}
