//go:build integration

package repository_test

// Runs the gorm repositories against a real Postgres.
// Run with: go test -tags integration ./internal/repository/... -v

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/MartinOstios/backend-posco/internal/apierror"
	"github.com/MartinOstios/backend-posco/internal/authz"
	"github.com/MartinOstios/backend-posco/internal/infra"
	"github.com/MartinOstios/backend-posco/internal/model"
	"github.com/MartinOstios/backend-posco/internal/repository"
	"github.com/MartinOstios/backend-posco/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:16-alpine"),
		tcPostgres.WithDatabase("posco_test"),
		tcPostgres.WithUsername("posco"),
		tcPostgres.WithPassword("posco"),
		tcPostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	dsn, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, infra.RunMigrations(db))
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, stock int) (*model.Enterprise, *model.Product) {
	t.Helper()
	ent := &model.Enterprise{Name: "Tienda", TaxID: uuid.NewString()[:12], Email: "t@posco.test", Phone: "300"}
	require.NoError(t, db.Create(ent).Error)
	cat := &model.Category{Name: "Bebidas", EnterpriseID: ent.ID}
	require.NoError(t, db.Create(cat).Error)
	p := &model.Product{
		Name:          "Agua 600ml",
		Stock:         stock,
		Status:        model.ProductActive,
		SupplierPrice: decimal.NewFromInt(900),
		PublicPrice:   decimal.NewFromInt(1500),
		BarCode:       "7701",
		EnterpriseID:  ent.ID,
		CategoryID:    cat.ID,
	}
	require.NoError(t, db.Create(p).Error)
	return ent, p
}

func TestStockAdjust_ConcurrentSalesNeverOversell(t *testing.T) {
	db := setupDB(t)
	ent, p := seedProduct(t, db, 5)

	products := repository.NewProductRepository(db)
	movements := repository.NewStockMovementRepository(db)
	stock := service.NewStockService(repository.NewTxManager(db), products, movements)
	actor := &authz.Identity{ID: uuid.New(), IsActive: true, Enterprise: authz.EnterpriseRef{ID: ent.ID}}

	const buyers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		ok        int
		shortages int
	)
	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := stock.AdjustStock(context.Background(), service.StockAdjustment{
				Actor:     actor,
				ProductID: p.ID,
				Delta:     -1,
				Kind:      model.MovementSale,
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, apierror.ErrInsufficientStock):
				shortages++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 5, ok)
	assert.Equal(t, buyers-5, shortages)

	got, err := products.FindByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Stock)
	assert.Equal(t, model.ProductOutOfStock, got.Status)

	history, err := movements.ListByProduct(context.Background(), p.ID, repository.Page{Limit: 100})
	require.NoError(t, err)
	assert.Len(t, history, 5)
}

func TestProducts_NegativeStockRejectedByDatabase(t *testing.T) {
	db := setupDB(t)
	_, p := seedProduct(t, db, 1)

	err := repository.NewProductRepository(db).UpdateStock(context.Background(), p.ID, -1, model.ProductActive)

	assert.Error(t, err)
}

func TestResetTokens_ConsumeIsSingleUse(t *testing.T) {
	db := setupDB(t)
	repo := repository.NewResetTokenRepository(db)
	ctx := context.Background()

	first := &model.PasswordResetToken{Email: "ana@posco.test", Token: "1111", CreatedAt: time.Now()}
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.InvalidateForEmail(ctx, "ana@posco.test"))
	live := &model.PasswordResetToken{Email: "ana@posco.test", Token: "4821", CreatedAt: time.Now()}
	require.NoError(t, repo.Create(ctx, live))

	_, err := repo.FindValid(ctx, "ana@posco.test", "1111", time.Now().Add(-15*time.Minute))
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	found, err := repo.FindValid(ctx, "ana@posco.test", "4821", time.Now().Add(-15*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, live.ID, found.ID)

	won, err := repo.Consume(ctx, found.ID)
	require.NoError(t, err)
	assert.True(t, won)

	won, err = repo.Consume(ctx, found.ID)
	require.NoError(t, err)
	assert.False(t, won)
}
