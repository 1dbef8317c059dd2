package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/Praborkar/Inventory-Management-billing-System/internal/apierror"
	"github.com/Praborkar/Inventory-Management-billing-System/internal/dto"
	"github.com/Praborkar/Inventory-Management-billing-System/internal/notify"
	"github.com/Praborkar/Inventory-Management-billing-System/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildCatalogSvc() (service.CatalogService, *stubProductRepo, *stubMovementRepo, *stubPriceRepo) {
	productRepo := newStubProductRepo()
	movementRepo := &stubMovementRepo{}
	priceRepo := &stubPriceRepo{}
	svc := service.NewCatalogService(productRepo, movementRepo, priceRepo, notify.Nop{})
	return svc, productRepo, movementRepo, priceRepo
}

func decPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func TestCreateProduct_DefaultsAndDuplicateSKU(t *testing.T) {
	svc, _, _, _ := buildCatalogSvc()

	resp, err := svc.Create(context.Background(), dto.CreateProductRequest{
		Name: "Parle-G 200g", SKU: "PG-200", HSN: "1905",
		MRP:          decimal.NewFromInt(25),
		SellingPrice: decimal.NewFromInt(22),
		Quantity:     50, Category: "Snacks", GSTRate: 18,
	})
	require.NoError(t, err)
	assert.Equal(t, "Pcs", resp.Unit)
	assert.Equal(t, 5, resp.LowStockThreshold)
	assert.False(t, resp.LowStock)

	_, err = svc.Create(context.Background(), dto.CreateProductRequest{
		Name: "Another", SKU: "PG-200", HSN: "1905", Category: "Snacks",
	})
	var vErr *apierror.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "sku")
}

func TestUpdateProduct_BumpsTimestamp(t *testing.T) {
	svc, productRepo, _, _ := buildCatalogSvc()
	p := seedProduct(productRepo, "Tata Salt", "TS-1", 30, 5)
	p.UpdatedAt = time.Now().Add(-time.Hour)
	before := p.UpdatedAt

	name := "Tata Salt 1kg"
	resp, found, err := svc.Update(context.Background(), p.ID, dto.UpdateProductRequest{Name: &name})
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Tata Salt 1kg", resp.Name)

	stored, _ := productRepo.FindByID(context.Background(), p.ID)
	assert.True(t, stored.UpdatedAt.After(before))
}

func TestUpdateProduct_UnknownIDIsNoop(t *testing.T) {
	svc, _, _, _ := buildCatalogSvc()
	name := "whatever"
	resp, found, err := svc.Update(context.Background(), uuid.New(), dto.UpdateProductRequest{Name: &name})
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, resp)
}

func TestUpdateProduct_PriceChangeRecordsHistory(t *testing.T) {
	svc, productRepo, _, priceRepo := buildCatalogSvc()
	p := seedProduct(productRepo, "Amul Milk", "AM-1", 20, 5)

	resp, found, err := svc.Update(context.Background(), p.ID, dto.UpdateProductRequest{
		SellingPrice: decPtr(110),
	})
	require.NoError(t, err)
	require.True(t, found)
	assert.True(t, resp.SellingPrice.Equal(decimal.NewFromInt(110)))

	history, _ := priceRepo.ListByProduct(context.Background(), p.ID)
	require.Len(t, history, 1)
	assert.True(t, history[0].SellingBefore.Equal(decimal.NewFromInt(100)))
	assert.True(t, history[0].SellingAfter.Equal(decimal.NewFromInt(110)))
	assert.Equal(t, "manual", history[0].Reason)

	// A non-price patch adds no history row.
	name := "Amul Milk 1L"
	_, _, err = svc.Update(context.Background(), p.ID, dto.UpdateProductRequest{Name: &name})
	require.NoError(t, err)
	history, _ = priceRepo.ListByProduct(context.Background(), p.ID)
	assert.Len(t, history, 1)
}

func TestDeleteProduct_NoCascade(t *testing.T) {
	svc, productRepo, movementRepo, _ := buildCatalogSvc()
	p := seedProduct(productRepo, "Dettol", "DT-1", 10, 2)

	_, err := svc.AdjustStock(context.Background(), p.ID, dto.AdjustStockRequest{Delta: -3, Reason: "damaged units"})
	require.NoError(t, err)

	deleted, err := svc.Delete(context.Background(), p.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	// The movement ledger survives the product.
	movs, _ := movementRepo.ListByProduct(context.Background(), p.ID)
	assert.Len(t, movs, 1)

	deleted, err = svc.Delete(context.Background(), p.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestLowStock_BoundaryInclusive(t *testing.T) {
	svc, productRepo, _, _ := buildCatalogSvc()
	seedProduct(productRepo, "At threshold", "SKU-1", 5, 5)
	seedProduct(productRepo, "Below threshold", "SKU-2", 3, 5)
	seedProduct(productRepo, "Above threshold", "SKU-3", 6, 5)
	seedProduct(productRepo, "Zero stock", "SKU-4", 0, 5)

	low, err := svc.LowStock(context.Background())
	require.NoError(t, err)
	names := make([]string, 0, len(low))
	for _, p := range low {
		names = append(names, p.Name)
		assert.True(t, p.LowStock)
	}
	assert.ElementsMatch(t, []string{"At threshold", "Below threshold", "Zero stock"}, names)
}

func TestAdjustStock_RecordsMovement(t *testing.T) {
	svc, productRepo, movementRepo, _ := buildCatalogSvc()
	p := seedProduct(productRepo, "Maggi", "MG-1", 10, 2)

	resp, err := svc.AdjustStock(context.Background(), p.ID, dto.AdjustStockRequest{Delta: 15, Reason: "restock delivery"})
	require.NoError(t, err)
	assert.Equal(t, 25, resp.Quantity)

	movs, _ := movementRepo.ListByProduct(context.Background(), p.ID)
	require.Len(t, movs, 1)
	assert.Equal(t, "manual_adjustment", movs[0].Type)
	assert.Equal(t, 15, movs[0].Quantity)
	assert.Equal(t, 10, movs[0].StockBefore)
	assert.Equal(t, 25, movs[0].StockAfter)
	assert.Equal(t, "restock delivery", movs[0].Reason)
	assert.Nil(t, movs[0].ReferenceID)
}

func TestAdjustStock_RejectsNegativeResult(t *testing.T) {
	svc, productRepo, movementRepo, _ := buildCatalogSvc()
	p := seedProduct(productRepo, "Colgate", "CG-1", 4, 2)

	_, err := svc.AdjustStock(context.Background(), p.ID, dto.AdjustStockRequest{Delta: -5, Reason: "shrinkage"})
	var vErr *apierror.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "delta")

	stored, _ := productRepo.FindByID(context.Background(), p.ID)
	assert.Equal(t, 4, stored.Quantity)
	assert.Empty(t, movementRepo.movements)

	// Draining to exactly zero is allowed.
	resp, err := svc.AdjustStock(context.Background(), p.ID, dto.AdjustStockRequest{Delta: -4, Reason: "shrinkage"})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Quantity)
}

func TestAdjustStock_ConcurrentDrainHitsRepoGuard(t *testing.T) {
	svc, productRepo, movementRepo, _ := buildCatalogSvc()
	p := seedProduct(productRepo, "Fortune Oil", "FO-1", 6, 2)

	// The pre-check sees 6 units, but the row-level guard loses the race.
	productRepo.failAdjust[p.ID] = true

	_, err := svc.AdjustStock(context.Background(), p.ID, dto.AdjustStockRequest{Delta: -5, Reason: "shrinkage"})
	var vErr *apierror.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "delta")

	stored, _ := productRepo.FindByID(context.Background(), p.ID)
	assert.Equal(t, 6, stored.Quantity)
	assert.Empty(t, movementRepo.movements)
}
