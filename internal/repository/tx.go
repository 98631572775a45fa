package repository

import (
	"context"

	"gorm.io/gorm"
)

type contextKey string

const txKey contextKey = "gorm_tx"

// TxManager runs a unit of work inside one database transaction. Repositories
// called with the context passed to fn join that transaction through GetDB.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error
}

type txManager struct{ db *gorm.DB }

func NewTxManager(db *gorm.DB) TxManager { return &txManager{db: db} }

// RunInTx commits when fn returns nil and rolls back on error or panic.
// Nested calls reuse the outer transaction.
func (t *txManager) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	if _, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return fn(ctx)
	}
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey, tx))
	})
}

// GetDB returns the transaction bound to ctx, or root when there is none.
func GetDB(ctx context.Context, root *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return root.WithContext(ctx)
}

// Page carries skip/limit straight from the query string. Limit has no upper bound.
type Page struct {
	Skip  int
	Limit int
}

const DefaultLimit = 100

func (p Page) apply(q *gorm.DB) *gorm.DB {
	limit := p.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	return q.Offset(p.Skip).Limit(limit)
}
