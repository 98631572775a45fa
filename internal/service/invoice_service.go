package service

import (
	"context"

	"github.com/MartinOstios/backend-posco/internal/authz"
	"github.com/MartinOstios/backend-posco/internal/dto"
	"github.com/MartinOstios/backend-posco/internal/model"
	"github.com/MartinOstios/backend-posco/internal/repository"

	"github.com/google/uuid"
)

// InvoiceRenderer produces the printable receipt for an invoice and its sales.
type InvoiceRenderer func(inv *model.Invoice, ent *model.Enterprise) ([]byte, error)

type InvoiceService interface {
	Create(ctx context.Context, actor *authz.Identity, req dto.CreateInvoiceRequest) (dto.InvoiceResponse, error)
	List(ctx context.Context, actor *authz.Identity, page dto.PageQuery) ([]dto.InvoiceResponse, error)
	ListByDateRange(ctx context.Context, actor *authz.Identity, q dto.DateRangeQuery) ([]dto.InvoiceResponse, error)
	Get(ctx context.Context, actor *authz.Identity, id uuid.UUID) (dto.InvoiceResponse, error)
	ListSales(ctx context.Context, actor *authz.Identity, id uuid.UUID, page dto.PageQuery) ([]dto.SaleResponse, error)
	Delete(ctx context.Context, actor *authz.Identity, id uuid.UUID) error
	PDF(ctx context.Context, actor *authz.Identity, id uuid.UUID) ([]byte, error)
}

type invoiceService struct {
	invoices    repository.InvoiceRepository
	sales       repository.SaleRepository
	enterprises repository.EnterpriseRepository
	render      InvoiceRenderer
}

func NewInvoiceService(
	invoices repository.InvoiceRepository,
	sales repository.SaleRepository,
	enterprises repository.EnterpriseRepository,
	render InvoiceRenderer,
) InvoiceService {
	return &invoiceService{invoices: invoices, sales: sales, enterprises: enterprises, render: render}
}

func (s *invoiceService) load(ctx context.Context, actor *authz.Identity, id uuid.UUID) (*model.Invoice, error) {
	inv, err := s.invoices.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Invoice not found")
	}
	if err := authz.OwnedBy(actor, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *invoiceService) Create(ctx context.Context, actor *authz.Identity, req dto.CreateInvoiceRequest) (dto.InvoiceResponse, error) {
	inv := &model.Invoice{
		PaymentMethod: model.PaymentMethod(req.PaymentMethod),
		TotalPrice:    req.TotalPrice,
		EnterpriseID:  actor.Enterprise.ID,
	}
	if err := s.invoices.Create(ctx, inv); err != nil {
		return dto.InvoiceResponse{}, err
	}
	return mapInvoice(*inv), nil
}

func (s *invoiceService) List(ctx context.Context, actor *authz.Identity, page dto.PageQuery) ([]dto.InvoiceResponse, error) {
	enterpriseID, p := authz.Scope(actor, toPage(page))
	list, err := s.invoices.ListByEnterprise(ctx, enterpriseID, p)
	if err != nil {
		return nil, err
	}
	return mapList(list, mapInvoice), nil
}

func (s *invoiceService) ListByDateRange(ctx context.Context, actor *authz.Identity, q dto.DateRangeQuery) ([]dto.InvoiceResponse, error) {
	from, to, err := parseDateRange(q)
	if err != nil {
		return nil, err
	}
	enterpriseID, p := authz.Scope(actor, toPage(q.PageQuery))
	list, err := s.invoices.ListByDateRange(ctx, enterpriseID, from, to, p)
	if err != nil {
		return nil, err
	}
	return mapList(list, mapInvoice), nil
}

func (s *invoiceService) Get(ctx context.Context, actor *authz.Identity, id uuid.UUID) (dto.InvoiceResponse, error) {
	inv, err := s.load(ctx, actor, id)
	if err != nil {
		return dto.InvoiceResponse{}, err
	}
	return mapInvoice(*inv), nil
}

func (s *invoiceService) ListSales(ctx context.Context, actor *authz.Identity, id uuid.UUID, page dto.PageQuery) ([]dto.SaleResponse, error) {
	if _, err := s.load(ctx, actor, id); err != nil {
		return nil, err
	}
	list, err := s.sales.ListByInvoice(ctx, id, toPage(page))
	if err != nil {
		return nil, err
	}
	return mapList(list, mapSale), nil
}

func (s *invoiceService) Delete(ctx context.Context, actor *authz.Identity, id uuid.UUID) error {
	if _, err := s.load(ctx, actor, id); err != nil {
		return err
	}
	n, err := s.sales.CountByInvoice(ctx, id)
	if err != nil {
		return err
	}
	if err := authz.CanDeleteWithSales("invoice", n); err != nil {
		return err
	}
	return s.invoices.Delete(ctx, id)
}

func (s *invoiceService) PDF(ctx context.Context, actor *authz.Identity, id uuid.UUID) ([]byte, error) {
	inv, err := s.invoices.FindWithSales(ctx, id)
	if err != nil {
		return nil, notFound(err, "Invoice not found")
	}
	if err := authz.OwnedBy(actor, inv); err != nil {
		return nil, err
	}
	ent, err := s.enterprises.FindByID(ctx, inv.EnterpriseID)
	if err != nil {
		return nil, notFound(err, "Enterprise not found")
	}
	return s.render(inv, ent)
}
