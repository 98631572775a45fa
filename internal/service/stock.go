package service

import (
	"context"
	"fmt"

	"github.com/MartinOstios/backend-posco/internal/apierror"
	"github.com/MartinOstios/backend-posco/internal/authz"
	"github.com/MartinOstios/backend-posco/internal/model"
	"github.com/MartinOstios/backend-posco/internal/repository"

	"github.com/google/uuid"
)

// StockAdjustment is one signed change to a product's stock.
type StockAdjustment struct {
	Actor       *authz.Identity
	ProductID   uuid.UUID
	Delta       int
	Kind        model.StockMovementKind
	Reason      string
	ReferenceID *uuid.UUID
}

// StockService applies stock changes under a row lock and records each one
// as a StockMovement.
type StockService interface {
	// AdjustStock joins the caller's transaction when ctx carries one.
	AdjustStock(ctx context.Context, adj StockAdjustment) (*model.Product, error)
}

type stockService struct {
	tx        repository.TxManager
	products  repository.ProductRepository
	movements repository.StockMovementRepository
}

func NewStockService(tx repository.TxManager, products repository.ProductRepository, movements repository.StockMovementRepository) StockService {
	return &stockService{tx: tx, products: products, movements: movements}
}

func (s *stockService) AdjustStock(ctx context.Context, adj StockAdjustment) (*model.Product, error) {
	var out *model.Product
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		p, err := s.products.FindForUpdate(txCtx, adj.ProductID)
		if err != nil {
			return notFound(err, "Product not found")
		}
		if err := authz.OwnedBy(adj.Actor, p); err != nil {
			return err
		}

		newStock := p.Stock + adj.Delta
		if newStock < 0 {
			return apierror.E(apierror.KindInsufficientStock,
				fmt.Sprintf("Insufficient stock for %s: available %d, requested %d", p.Name, p.Stock, -adj.Delta))
		}
		status := p.StatusForStock(newStock)
		if err := s.products.UpdateStock(txCtx, p.ID, newStock, status); err != nil {
			return fmt.Errorf("update stock: %w", err)
		}

		mov := &model.StockMovement{
			ProductID:    p.ID,
			EnterpriseID: p.EnterpriseID,
			Kind:         adj.Kind,
			Delta:        adj.Delta,
			StockBefore:  p.Stock,
			StockAfter:   newStock,
			Reason:       adj.Reason,
			ReferenceID:  adj.ReferenceID,
		}
		if err := s.movements.Create(txCtx, mov); err != nil {
			return fmt.Errorf("record stock movement: %w", err)
		}

		p.Stock = newStock
		p.Status = status
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
