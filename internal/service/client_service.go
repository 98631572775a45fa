package service

import (
	"context"

	"github.com/MartinOstios/backend-posco/internal/authz"
	"github.com/MartinOstios/backend-posco/internal/dto"
	"github.com/MartinOstios/backend-posco/internal/model"
	"github.com/MartinOstios/backend-posco/internal/repository"

	"github.com/google/uuid"
)

type ClientService interface {
	Create(ctx context.Context, actor *authz.Identity, req dto.CreateClientRequest) (dto.ClientResponse, error)
	List(ctx context.Context, actor *authz.Identity, page dto.PageQuery) ([]dto.ClientResponse, error)
	Get(ctx context.Context, actor *authz.Identity, id uuid.UUID) (dto.ClientResponse, error)
	ListSales(ctx context.Context, actor *authz.Identity, id uuid.UUID, page dto.PageQuery) ([]dto.SaleResponse, error)
	Delete(ctx context.Context, actor *authz.Identity, id uuid.UUID) error
}

type clientService struct {
	clients repository.ClientRepository
	sales   repository.SaleRepository
}

func NewClientService(clients repository.ClientRepository, sales repository.SaleRepository) ClientService {
	return &clientService{clients: clients, sales: sales}
}

func (s *clientService) load(ctx context.Context, actor *authz.Identity, id uuid.UUID) (*model.Client, error) {
	c, err := s.clients.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Client not found")
	}
	if err := authz.OwnedBy(actor, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *clientService) Create(ctx context.Context, actor *authz.Identity, req dto.CreateClientRequest) (dto.ClientResponse, error) {
	c := &model.Client{Name: req.Name, EnterpriseID: actor.Enterprise.ID}
	if err := s.clients.Create(ctx, c); err != nil {
		return dto.ClientResponse{}, err
	}
	return mapClient(*c), nil
}

func (s *clientService) List(ctx context.Context, actor *authz.Identity, page dto.PageQuery) ([]dto.ClientResponse, error) {
	enterpriseID, p := authz.Scope(actor, toPage(page))
	list, err := s.clients.ListByEnterprise(ctx, enterpriseID, p)
	if err != nil {
		return nil, err
	}
	return mapList(list, mapClient), nil
}

func (s *clientService) Get(ctx context.Context, actor *authz.Identity, id uuid.UUID) (dto.ClientResponse, error) {
	c, err := s.load(ctx, actor, id)
	if err != nil {
		return dto.ClientResponse{}, err
	}
	return mapClient(*c), nil
}

func (s *clientService) ListSales(ctx context.Context, actor *authz.Identity, id uuid.UUID, page dto.PageQuery) ([]dto.SaleResponse, error) {
	if _, err := s.load(ctx, actor, id); err != nil {
		return nil, err
	}
	list, err := s.sales.ListByClient(ctx, id, toPage(page))
	if err != nil {
		return nil, err
	}
	return mapList(list, mapSale), nil
}

// Delete refuses while any sale still references the client.
func (s *clientService) Delete(ctx context.Context, actor *authz.Identity, id uuid.UUID) error {
	if _, err := s.load(ctx, actor, id); err != nil {
		return err
	}
	n, err := s.sales.CountByClient(ctx, id)
	if err != nil {
		return err
	}
	if err := authz.CanDeleteWithSales("client", n); err != nil {
		return err
	}
	return s.clients.Delete(ctx, id)
}
