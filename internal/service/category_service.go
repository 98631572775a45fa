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

// CategoryService defines business operations for product categories.
type CategoryService interface {
	Create(ctx context.Context, actor *authz.Identity, req dto.CreateCategoryRequest) (dto.CategoryResponse, error)
	List(ctx context.Context, actor *authz.Identity, page dto.PageQuery) ([]dto.CategoryResponse, error)
	Get(ctx context.Context, actor *authz.Identity, id uuid.UUID) (dto.CategoryResponse, error)
	Update(ctx context.Context, actor *authz.Identity, id uuid.UUID, req dto.UpdateCategoryRequest) (dto.CategoryResponse, error)
	Delete(ctx context.Context, actor *authz.Identity, id uuid.UUID) error
}

type categoryService struct {
	repo repository.CategoryRepository
}

func NewCategoryService(repo repository.CategoryRepository) CategoryService {
	return &categoryService{repo: repo}
}

func (s *categoryService) load(ctx context.Context, actor *authz.Identity, id uuid.UUID) (*model.Category, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Category not found")
	}
	if err := authz.OwnedBy(actor, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *categoryService) nameTaken(ctx context.Context, enterpriseID uuid.UUID, name string, except uuid.UUID) error {
	existing, err := s.repo.FindByName(ctx, enterpriseID, name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if existing != nil && existing.ID != except {
		return apierror.Conflict("A category with this name already exists")
	}
	return nil
}

func (s *categoryService) Create(ctx context.Context, actor *authz.Identity, req dto.CreateCategoryRequest) (dto.CategoryResponse, error) {
	if err := s.nameTaken(ctx, actor.Enterprise.ID, req.Name, uuid.Nil); err != nil {
		return dto.CategoryResponse{}, err
	}
	c := &model.Category{
		Name:         req.Name,
		Description:  req.Description,
		EnterpriseID: actor.Enterprise.ID,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return dto.CategoryResponse{}, err
	}
	return mapCategory(*c), nil
}

func (s *categoryService) List(ctx context.Context, actor *authz.Identity, page dto.PageQuery) ([]dto.CategoryResponse, error) {
	enterpriseID, p := authz.Scope(actor, toPage(page))
	list, err := s.repo.ListByEnterprise(ctx, enterpriseID, p)
	if err != nil {
		return nil, err
	}
	return mapList(list, mapCategory), nil
}

func (s *categoryService) Get(ctx context.Context, actor *authz.Identity, id uuid.UUID) (dto.CategoryResponse, error) {
	c, err := s.load(ctx, actor, id)
	if err != nil {
		return dto.CategoryResponse{}, err
	}
	return mapCategory(*c), nil
}

func (s *categoryService) Update(ctx context.Context, actor *authz.Identity, id uuid.UUID, req dto.UpdateCategoryRequest) (dto.CategoryResponse, error) {
	c, err := s.load(ctx, actor, id)
	if err != nil {
		return dto.CategoryResponse{}, err
	}
	if req.Name != nil && *req.Name != c.Name {
		if err := s.nameTaken(ctx, c.EnterpriseID, *req.Name, c.ID); err != nil {
			return dto.CategoryResponse{}, err
		}
		c.Name = *req.Name
	}
	if req.Description != nil {
		c.Description = *req.Description
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return dto.CategoryResponse{}, err
	}
	return mapCategory(*c), nil
}

func (s *categoryService) Delete(ctx context.Context, actor *authz.Identity, id uuid.UUID) error {
	if _, err := s.load(ctx, actor, id); err != nil {
		return err
	}
	n, err := s.repo.CountProducts(ctx, id)
	if err != nil {
		return err
	}
	if err := authz.CanDeleteWithChildren("category", "products", n); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
