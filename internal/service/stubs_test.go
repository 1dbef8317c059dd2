package service_test

// Shared in-memory stubs for the service tests. Repositories are replaced
// wholesale; the nil *gorm.DB handed around in transaction paths is never
// dereferenced because every stub ignores it.

import (
	"context"
	"errors"
	"sort"

	"github.com/Praborkar/Inventory-Management-billing-System/internal/dto"
	"github.com/Praborkar/Inventory-Management-billing-System/internal/model"
	"github.com/Praborkar/Inventory-Management-billing-System/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── Product repository stub ──────────────────────────────────────────────────

type stubProductRepo struct {
	products map[uuid.UUID]*model.Product
	order    []uuid.UUID
	// failDeduct forces DeductStockTx to report insufficient stock for the
	// given product, simulating a concurrent sale between validation and tx.
	failDeduct map[uuid.UUID]bool
	// failAdjust does the same for AdjustStock's negativity guard.
	failAdjust map[uuid.UUID]bool
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{
		products:   make(map[uuid.UUID]*model.Product),
		failDeduct: make(map[uuid.UUID]bool),
		failAdjust: make(map[uuid.UUID]bool),
	}
}

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.products[p.ID] = p
	r.order = append(r.order, p.ID)
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	// Return a detached copy, mirroring GORM's behavior: later writes through
	// the repo must not mutate structs already handed to callers.
	cp := *p
	return &cp, nil
}

func (r *stubProductRepo) FindBySKU(_ context.Context, sku string) (*model.Product, error) {
	for _, p := range r.products {
		if p.SKU == sku {
			return p, nil
		}
	}
	return nil, errors.New("record not found")
}

func (r *stubProductRepo) List(_ context.Context, _ dto.ProductFilter) ([]model.Product, int64, error) {
	all := r.snapshot()
	return all, int64(len(all)), nil
}

func (r *stubProductRepo) ListAll(_ context.Context) ([]model.Product, error) {
	return r.snapshot(), nil
}

func (r *stubProductRepo) Update(_ context.Context, p *model.Product) error {
	if _, ok := r.products[p.ID]; !ok {
		return errors.New("record not found")
	}
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	if _, ok := r.products[id]; !ok {
		return false, nil
	}
	delete(r.products, id)
	return true, nil
}

func (r *stubProductRepo) LowStock(_ context.Context) ([]model.Product, error) {
	var out []model.Product
	for _, p := range r.snapshot() {
		if p.Quantity <= p.LowStockThreshold {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *stubProductRepo) AdjustStock(_ context.Context, id uuid.UUID, delta int) error {
	p, ok := r.products[id]
	if !ok {
		return errors.New("record not found")
	}
	if r.failAdjust[id] || p.Quantity+delta < 0 {
		return repository.ErrInsufficientStock
	}
	p.Quantity += delta
	return nil
}

func (r *stubProductRepo) DeductStockTx(_ *gorm.DB, id uuid.UUID, qty int) error {
	p, ok := r.products[id]
	if !ok {
		return repository.ErrInsufficientStock
	}
	if r.failDeduct[id] || p.Quantity < qty {
		return repository.ErrInsufficientStock
	}
	p.Quantity -= qty
	return nil
}

func (r *stubProductRepo) DB() *gorm.DB { return nil }

func (r *stubProductRepo) snapshot() []model.Product {
	out := make([]model.Product, 0, len(r.products))
	for _, id := range r.order {
		if p, ok := r.products[id]; ok {
			out = append(out, *p)
		}
	}
	return out
}

var _ repository.ProductRepository = (*stubProductRepo)(nil)

// seedProduct registers a product with the given stock and threshold.
func seedProduct(r *stubProductRepo, name, sku string, qty, threshold int) *model.Product {
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
		LowStockThreshold: threshold,
		GSTRate:           18,
	}
	_ = r.Create(context.Background(), p)
	return p
}

// ── Invoice repository stub ──────────────────────────────────────────────────

type stubInvoiceRepo struct {
	invoices map[uuid.UUID]*model.Invoice
	order    []uuid.UUID
}

func newStubInvoiceRepo() *stubInvoiceRepo {
	return &stubInvoiceRepo{invoices: make(map[uuid.UUID]*model.Invoice)}
}

func (r *stubInvoiceRepo) Create(_ context.Context, _ *gorm.DB, inv *model.Invoice) error {
	r.invoices[inv.ID] = inv
	r.order = append(r.order, inv.ID)
	return nil
}

func (r *stubInvoiceRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Invoice, error) {
	inv, ok := r.invoices[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return inv, nil
}

func (r *stubInvoiceRepo) List(_ context.Context, _ dto.InvoiceFilter) ([]model.Invoice, int64, error) {
	all, _ := r.ListAll(context.Background())
	return all, int64(len(all)), nil
}

func (r *stubInvoiceRepo) ListAll(_ context.Context) ([]model.Invoice, error) {
	out := make([]model.Invoice, 0, len(r.invoices))
	for _, id := range r.order {
		if inv, ok := r.invoices[id]; ok {
			out = append(out, *inv)
		}
	}
	return out, nil
}

func (r *stubInvoiceRepo) Recent(_ context.Context, n int) ([]model.Invoice, error) {
	all, _ := r.ListAll(context.Background())
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	if len(all) > n {
		all = all[:n]
	}
	return all, nil
}

func (r *stubInvoiceRepo) NumbersTx(_ *gorm.DB) ([]string, error) {
	var numbers []string
	for _, inv := range r.invoices {
		numbers = append(numbers, inv.InvoiceNumber)
	}
	return numbers, nil
}

func (r *stubInvoiceRepo) UpdateFields(_ context.Context, id uuid.UUID, fields map[string]interface{}) (bool, error) {
	inv, ok := r.invoices[id]
	if !ok {
		return false, nil
	}
	if v, ok := fields["status"]; ok {
		inv.Status = v.(string)
	}
	if v, ok := fields["payment_mode"]; ok {
		inv.PaymentMode = v.(string)
	}
	if v, ok := fields["notes"]; ok {
		s := v.(string)
		inv.Notes = &s
	}
	return true, nil
}

func (r *stubInvoiceRepo) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	if _, ok := r.invoices[id]; !ok {
		return false, nil
	}
	delete(r.invoices, id)
	return true, nil
}

func (r *stubInvoiceRepo) DB() *gorm.DB { return nil }

var _ repository.InvoiceRepository = (*stubInvoiceRepo)(nil)

// ── Stock movement repository stub ───────────────────────────────────────────

type stubMovementRepo struct {
	movements []model.StockMovement
}

func (r *stubMovementRepo) Create(_ context.Context, m *model.StockMovement) error {
	r.movements = append(r.movements, *m)
	return nil
}

func (r *stubMovementRepo) CreateTx(_ *gorm.DB, m *model.StockMovement) error {
	r.movements = append(r.movements, *m)
	return nil
}

func (r *stubMovementRepo) ListByProduct(_ context.Context, productID uuid.UUID) ([]model.StockMovement, error) {
	var out []model.StockMovement
	for _, m := range r.movements {
		if m.ProductID == productID {
			out = append(out, m)
		}
	}
	return out, nil
}

var _ repository.StockMovementRepository = (*stubMovementRepo)(nil)

// ── Price history repository stub ────────────────────────────────────────────

type stubPriceRepo struct {
	history []model.PriceHistory
}

func (r *stubPriceRepo) Create(_ context.Context, h *model.PriceHistory) error {
	r.history = append(r.history, *h)
	return nil
}

func (r *stubPriceRepo) ListByProduct(_ context.Context, productID uuid.UUID) ([]model.PriceHistory, error) {
	var out []model.PriceHistory
	for _, h := range r.history {
		if h.ProductID == productID {
			out = append(out, h)
		}
	}
	return out, nil
}

var _ repository.PriceHistoryRepository = (*stubPriceRepo)(nil)
