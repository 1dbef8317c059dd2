//go:build integration

package service_test

// invoice_integration_test.go
// Transaction-boundary tests against real Postgres via testcontainers.
// Run with: go test -tags integration ./internal/service/... -v
//
// The stub suite covers the invoice semantics; these tests cover the one
// thing stubs cannot: that a stock-deduction failure mid-transaction rolls
// back the already-inserted invoice and movement rows.

import (
	"context"
	"testing"
	"time"

	"github.com/Praborkar/Inventory-Management-billing-System/internal/dto"
	"github.com/Praborkar/Inventory-Management-billing-System/internal/infra"
	"github.com/Praborkar/Inventory-Management-billing-System/internal/model"
	"github.com/Praborkar/Inventory-Management-billing-System/internal/notify"
	"github.com/Praborkar/Inventory-Management-billing-System/internal/repository"
	"github.com/Praborkar/Inventory-Management-billing-System/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

func setupPostgres(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("invenbill_test"),
		tcPostgres.WithUsername("invenbill"),
		tcPostgres.WithPassword("invenbill"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	dsn, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := infra.NewDatabase(dsn)
	require.NoError(t, err)
	require.NoError(t, infra.RunMigrations(db))
	return db
}

func seedDBProduct(t *testing.T, repo repository.ProductRepository, name, sku string, qty int) *model.Product {
	t.Helper()
	p := &model.Product{
		ID:                uuid.New(),
		Name:              name,
		SKU:               sku,
		HSN:               "1905",
		MRP:               decimal.NewFromInt(120),
		SellingPrice:      decimal.NewFromInt(100),
		PurchasePrice:     decimal.NewFromInt(80),
		Quantity:          qty,
		Unit:              "Pcs",
		Category:          "Snacks",
		LowStockThreshold: 5,
		GSTRate:           18,
		CreatedAt:         time.Now(),
		UpdatedAt:         time.Now(),
	}
	require.NoError(t, repo.Create(context.Background(), p))
	return p
}

// deductFailProductRepo delegates to the real repository but fails the stock
// deduction for one product, simulating a concurrent sale that drains it
// between editor validation and the write transaction.
type deductFailProductRepo struct {
	repository.ProductRepository
	failID uuid.UUID
}

func (r deductFailProductRepo) DeductStockTx(tx *gorm.DB, id uuid.UUID, qty int) error {
	if id == r.failID {
		return repository.ErrInsufficientStock
	}
	return r.ProductRepository.DeductStockTx(tx, id, qty)
}

func TestInvoiceCreate_DeductFailureRollsBackEverything(t *testing.T) {
	db := setupPostgres(t)

	productRepo := repository.NewProductRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	movementRepo := repository.NewStockMovementRepository(db)

	first := seedDBProduct(t, productRepo, "Parle-G 200g", "PG-200", 10)
	second := seedDBProduct(t, productRepo, "Tata Salt 1kg", "TS-1000", 8)

	flaky := deductFailProductRepo{ProductRepository: productRepo, failID: second.ID}
	svc := service.NewInvoiceService(invoiceRepo, flaky, movementRepo, notify.Nop{}, nil)

	_, err := svc.Create(context.Background(), service.Identity{ID: "u1", Name: "Admin"},
		dto.CreateInvoiceRequest{
			CustomerName:  "Walk-in",
			CustomerEmail: "walkin@example.com",
			Items: []dto.InvoiceItemRequest{
				{ProductID: first.ID.String(), Quantity: 2},
				{ProductID: second.ID.String(), Quantity: 1},
			},
		})
	require.Error(t, err)
	require.ErrorIs(t, err, repository.ErrInsufficientStock)

	// The first item's deduction and the invoice insert happened before the
	// failure; all of it must be gone.
	invoices, err := invoiceRepo.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, invoices)

	stored, err := productRepo.FindByID(context.Background(), first.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, stored.Quantity)

	movements, err := movementRepo.ListByProduct(context.Background(), first.ID)
	require.NoError(t, err)
	assert.Empty(t, movements)
}

func TestInvoiceCreate_CommitsAtomically(t *testing.T) {
	db := setupPostgres(t)

	productRepo := repository.NewProductRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	movementRepo := repository.NewStockMovementRepository(db)

	p := seedDBProduct(t, productRepo, "Maggi Noodles 70g", "MG-70", 20)

	svc := service.NewInvoiceService(invoiceRepo, productRepo, movementRepo, notify.Nop{}, nil)

	resp, err := svc.Create(context.Background(), service.Identity{ID: "u1", Name: "Admin"},
		dto.CreateInvoiceRequest{
			CustomerName:  "Walk-in",
			CustomerEmail: "walkin@example.com",
			Items: []dto.InvoiceItemRequest{
				{ProductID: p.ID.String(), Quantity: 3},
			},
		})
	require.NoError(t, err)
	assert.Equal(t, "INV-001", resp.InvoiceNumber)

	stored, err := productRepo.FindByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, 17, stored.Quantity)

	movements, err := movementRepo.ListByProduct(context.Background(), p.ID)
	require.NoError(t, err)
	require.Len(t, movements, 1)
	assert.Equal(t, "sale", movements[0].Type)
	assert.Equal(t, -3, movements[0].Quantity)
	assert.Equal(t, 20, movements[0].StockBefore)
	assert.Equal(t, 17, movements[0].StockAfter)

	inv, err := invoiceRepo.FindByID(context.Background(), uuid.MustParse(resp.ID))
	require.NoError(t, err)
	require.Len(t, inv.Items, 1)
	assert.Equal(t, p.ID, inv.Items[0].ProductID)
}
