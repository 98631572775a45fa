package service

import (
	"context"
	"time"

	"github.com/MartinOstios/backend-posco/internal/apierror"
	"github.com/MartinOstios/backend-posco/internal/authz"
	"github.com/MartinOstios/backend-posco/internal/dto"
	"github.com/MartinOstios/backend-posco/internal/model"
	"github.com/MartinOstios/backend-posco/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type SaleService interface {
	Create(ctx context.Context, actor *authz.Identity, req dto.CreateSaleRequest) (dto.SaleResponse, error)
	List(ctx context.Context, actor *authz.Identity, page dto.PageQuery) ([]dto.SaleResponse, error)
	ListByDateRange(ctx context.Context, actor *authz.Identity, q dto.DateRangeQuery) ([]dto.SaleResponse, error)
	Get(ctx context.Context, actor *authz.Identity, id uuid.UUID) (dto.SaleResponse, error)
	Delete(ctx context.Context, actor *authz.Identity, id uuid.UUID) error
}

type saleService struct {
	tx       repository.TxManager
	sales    repository.SaleRepository
	invoices repository.InvoiceRepository
	clients  repository.ClientRepository
	products repository.ProductRepository
	stock    StockService
	now      func() time.Time
}

func NewSaleService(
	tx repository.TxManager,
	sales repository.SaleRepository,
	invoices repository.InvoiceRepository,
	clients repository.ClientRepository,
	products repository.ProductRepository,
	stock StockService,
) SaleService {
	return &saleService{
		tx:       tx,
		sales:    sales,
		invoices: invoices,
		clients:  clients,
		products: products,
		stock:    stock,
		now:      time.Now,
	}
}

// Create validates every reference, then decrements stock and inserts the
// sale in one transaction.
func (s *saleService) Create(ctx context.Context, actor *authz.Identity, req dto.CreateSaleRequest) (dto.SaleResponse, error) {
	inv, err := s.invoices.FindByID(ctx, req.InvoiceID)
	if err != nil {
		return dto.SaleResponse{}, notFound(err, "Invoice not found")
	}
	if err := authz.OwnedBy(actor, inv); err != nil {
		return dto.SaleResponse{}, err
	}
	client, err := s.clients.FindByID(ctx, req.ClientID)
	if err != nil {
		return dto.SaleResponse{}, notFound(err, "Client not found")
	}
	if err := authz.OwnedBy(actor, client); err != nil {
		return dto.SaleResponse{}, err
	}
	product, err := s.products.FindByID(ctx, req.ProductID)
	if err != nil {
		return dto.SaleResponse{}, notFound(err, "Product not found")
	}
	if err := authz.OwnedBy(actor, product); err != nil {
		return dto.SaleResponse{}, err
	}

	price := req.Price
	if price.IsZero() {
		price = product.PublicPrice
	}
	total := price.Mul(decimal.NewFromInt(int64(req.Quantity))).Sub(req.Discount)
	if total.IsNegative() {
		return dto.SaleResponse{}, apierror.InvalidInput("Discount cannot exceed the sale amount")
	}

	sellDate := s.now().UTC().Truncate(24 * time.Hour)
	if req.SellDate != "" {
		sellDate, err = time.Parse(dateLayout, req.SellDate)
		if err != nil {
			return dto.SaleResponse{}, apierror.InvalidInput("Invalid sell_date, expected YYYY-MM-DD")
		}
	}

	employeeID := actor.ID
	sale := &model.Sale{
		ID:           uuid.New(),
		Quantity:     req.Quantity,
		Discount:     req.Discount,
		Price:        price,
		SellDate:     sellDate,
		TotalPrice:   total,
		InvoiceID:    inv.ID,
		ClientID:     client.ID,
		ProductID:    product.ID,
		EmployeeID:   &employeeID,
		EnterpriseID: actor.Enterprise.ID,
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		updated, err := s.stock.AdjustStock(txCtx, StockAdjustment{
			Actor:       actor,
			ProductID:   product.ID,
			Delta:       -req.Quantity,
			Kind:        model.MovementSale,
			ReferenceID: &sale.ID,
		})
		if err != nil {
			return err
		}
		if err := s.sales.Create(txCtx, sale); err != nil {
			return err
		}
		sale.Product = updated
		return nil
	})
	if err != nil {
		return dto.SaleResponse{}, err
	}
	return mapSale(*sale), nil
}

func (s *saleService) List(ctx context.Context, actor *authz.Identity, page dto.PageQuery) ([]dto.SaleResponse, error) {
	enterpriseID, p := authz.Scope(actor, toPage(page))
	list, err := s.sales.ListByEnterprise(ctx, enterpriseID, p)
	if err != nil {
		return nil, err
	}
	return mapList(list, mapSale), nil
}

func (s *saleService) ListByDateRange(ctx context.Context, actor *authz.Identity, q dto.DateRangeQuery) ([]dto.SaleResponse, error) {
	from, to, err := parseDateRange(q)
	if err != nil {
		return nil, err
	}
	enterpriseID, p := authz.Scope(actor, toPage(q.PageQuery))
	list, err := s.sales.ListByDateRange(ctx, enterpriseID, from, to, p)
	if err != nil {
		return nil, err
	}
	return mapList(list, mapSale), nil
}

func (s *saleService) Get(ctx context.Context, actor *authz.Identity, id uuid.UUID) (dto.SaleResponse, error) {
	sale, err := s.sales.FindByID(ctx, id)
	if err != nil {
		return dto.SaleResponse{}, notFound(err, "Sale not found")
	}
	if err := authz.OwnedBy(actor, sale); err != nil {
		return dto.SaleResponse{}, err
	}
	return mapSale(*sale), nil
}

// Delete removes the sale and puts its quantity back into stock.
func (s *saleService) Delete(ctx context.Context, actor *authz.Identity, id uuid.UUID) error {
	return s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		sale, err := s.sales.FindByID(txCtx, id)
		if err != nil {
			return notFound(err, "Sale not found")
		}
		if err := authz.OwnedBy(actor, sale); err != nil {
			return err
		}
		if err := s.sales.Delete(txCtx, id); err != nil {
			return err
		}
		_, err = s.stock.AdjustStock(txCtx, StockAdjustment{
			Actor:       actor,
			ProductID:   sale.ProductID,
			Delta:       sale.Quantity,
			Kind:        model.MovementSaleReversal,
			ReferenceID: &sale.ID,
		})
		return err
	})
}
