package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Praborkar/Inventory-Management-billing-System/internal/apierror"
	"github.com/Praborkar/Inventory-Management-billing-System/internal/dto"
	"github.com/Praborkar/Inventory-Management-billing-System/internal/infra"
	"github.com/Praborkar/Inventory-Management-billing-System/internal/model"
	"github.com/Praborkar/Inventory-Management-billing-System/internal/notify"
	"github.com/Praborkar/Inventory-Management-billing-System/internal/repository"
	"github.com/Praborkar/Inventory-Management-billing-System/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Identity is the acting-user snapshot supplied by the identity collaborator.
// The zero value is valid: createdBy falls back to empty fields when no
// identity is available.
type Identity struct {
	ID   string
	Name string
}

type InvoiceService interface {
	// Create runs the full submit flow: replay line items through the
	// editor, validate, price, number, then commit invoice + stock
	// deduction as a single transaction.
	Create(ctx context.Context, actor Identity, req dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.InvoiceResponse, error)
	List(ctx context.Context, filter dto.InvoiceFilter) (*dto.InvoiceListResponse, error)
	Recent(ctx context.Context, n int) ([]dto.InvoiceResponse, error)
	// Update patches status/paymentMode/notes. Unknown id is a documented
	// no-op: (nil, false, nil).
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, bool, error)
	// Delete removes the invoice without restoring deducted stock.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	// RenderPDF writes the invoice PDF under storagePath and returns the
	// file path, reusing a previously rendered file when present.
	RenderPDF(ctx context.Context, id uuid.UUID, businessName, businessGSTIN, storagePath string) (string, error)
}

type invoiceService struct {
	repo         repository.InvoiceRepository
	productRepo  repository.ProductRepository
	movementRepo repository.StockMovementRepository
	notifier     notify.Notifier
	dispatcher   *worker.Dispatcher
}

func NewInvoiceService(
	repo repository.InvoiceRepository,
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
	notifier notify.Notifier,
	dispatcher *worker.Dispatcher,
) InvoiceService {
	return &invoiceService{
		repo:         repo,
		productRepo:  productRepo,
		movementRepo: movementRepo,
		notifier:     notifier,
		dispatcher:   dispatcher,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// ── Create ───────────────────────────────────────────────────────────────────
// Flow:
//   1. Replay requested items through the line-item editor (duplicate rule,
//      stock guard, snapshotting) against the live catalog.
//   2. Submit-time validation — any failure returns a field map and nothing
//      is persisted.
//   3. Clamp discount, compute totals.
//   4. TX: scan numbers → assign next, insert invoice, deduct stock (guarded)
//      and record a stock movement per item. Both commit or neither does.
//   5. After commit: notify, enqueue receipt email (best-effort).

func (s *invoiceService) Create(ctx context.Context, actor Identity, req dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	editor := NewInvoiceEditor(s.productRepo)
	fields := make(map[string]string)

	for i, item := range req.Items {
		idx := editor.AddRow()
		pid, err := uuid.Parse(item.ProductID)
		if err != nil {
			editor.RemoveRow(idx)
			fields[fmt.Sprintf("items[%d].product_id", i)] = "Invalid product id"
			continue
		}
		before := editor.Len()
		if err := editor.SelectProduct(ctx, idx, pid); err != nil {
			fields[fmt.Sprintf("items[%d].product_id", i)] = err.Error()
			editor.RemoveRow(idx)
			continue
		}
		if editor.Len() < before {
			// Row was silently dropped: duplicate product.
			fields["items"] = "Duplicate products found. Please remove duplicates."
			continue
		}
		// Stock guard errors mark the row invalid; ValidateSubmit picks the
		// message up with the right row index.
		_ = editor.SetQuantity(ctx, idx, item.Quantity)
	}

	for k, v := range editor.ValidateSubmit(CustomerDetails{
		Name:   req.CustomerName,
		Email:  req.CustomerEmail,
		Mobile: req.CustomerMobile,
	}) {
		fields[k] = v
	}
	if len(fields) > 0 {
		return nil, apierror.NewValidation(fields)
	}

	items := editor.Items()
	totals := CalculateTotals(items, ClampDiscount(req.DiscountPercent))

	inv := buildInvoice(actor, req, items, totals)

	// Stock-before snapshots for the movement ledger, taken from the rows
	// the editor resolved.
	available := make(map[uuid.UUID]int, editor.Len())
	for _, row := range editor.Rows() {
		available[row.Item.ProductID] = row.Available
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		numbers, err := s.repo.NumbersTx(tx)
		if err != nil {
			return err
		}
		inv.InvoiceNumber = NextInvoiceNumber(numbers)

		if err := s.repo.Create(ctx, tx, inv); err != nil {
			return err
		}

		for _, item := range inv.Items {
			if err := s.productRepo.DeductStockTx(tx, item.ProductID, item.Quantity); err != nil {
				return fmt.Errorf("deducting stock for %s: %w", item.ProductName, err)
			}
			before := available[item.ProductID]
			mov := &model.StockMovement{
				ProductID:   item.ProductID,
				Type:        "sale",
				Quantity:    -item.Quantity,
				StockBefore: before,
				StockAfter:  before - item.Quantity,
				Reason:      fmt.Sprintf("Invoice %s", inv.InvoiceNumber),
				ReferenceID: &inv.ID,
			}
			if err := s.movementRepo.CreateTx(tx, mov); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		log.Error().Err(txErr).Str("customer", req.CustomerName).Msg("invoice creation rolled back")
		return nil, txErr
	}

	s.notifier.Notify("invoice.created", "Invoice created",
		fmt.Sprintf("Invoice #%s has been created", inv.InvoiceNumber))

	// Receipt email is best-effort fire & forget.
	if s.dispatcher != nil {
		_ = s.dispatcher.EnqueueReceipt(ctx, worker.ReceiptJobPayload{
			InvoiceID: inv.ID.String(),
			ToEmail:   inv.CustomerEmail,
		})
	}

	return invoiceToResponse(inv), nil
}

// buildInvoice assembles the persisted record: stamps id and createdAt,
// copies the validated customer fields, items and calculator output, and the
// acting-user snapshot. The invoice number is assigned later, inside the
// create transaction.
func buildInvoice(actor Identity, req dto.CreateInvoiceRequest, items []model.InvoiceItem, totals Totals) *model.Invoice {
	status := req.Status
	if status == "" {
		status = "pending"
	}
	mode := req.PaymentMode
	if mode == "" {
		mode = "cash"
	}
	return &model.Invoice{
		ID:              uuid.New(),
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerMobile:  req.CustomerMobile,
		Items:           items,
		Subtotal:        totals.Subtotal,
		DiscountPercent: ClampDiscount(req.DiscountPercent),
		DiscountAmount:  totals.DiscountAmount,
		CGST:            totals.CGST,
		SGST:            totals.SGST,
		Total:           totals.Total,
		Status:          status,
		PaymentMode:     mode,
		Notes:           req.Notes,
		CreatedByID:     actor.ID,
		CreatedByName:   actor.Name,
		CreatedAt:       time.Now(),
	}
}

func (s *invoiceService) Get(ctx context.Context, id uuid.UUID) (*dto.InvoiceResponse, error) {
	inv, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return invoiceToResponse(inv), nil
}

func (s *invoiceService) List(ctx context.Context, filter dto.InvoiceFilter) (*dto.InvoiceListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	invoices, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.InvoiceResponse, 0, len(invoices))
	for i := range invoices {
		data = append(data, *invoiceToResponse(&invoices[i]))
	}
	return &dto.InvoiceListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *invoiceService) Recent(ctx context.Context, n int) ([]dto.InvoiceResponse, error) {
	if n < 1 {
		n = 5
	}
	invoices, err := s.repo.Recent(ctx, n)
	if err != nil {
		return nil, err
	}
	data := make([]dto.InvoiceResponse, 0, len(invoices))
	for i := range invoices {
		data = append(data, *invoiceToResponse(&invoices[i]))
	}
	return data, nil
}

func (s *invoiceService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, bool, error) {
	fields := make(map[string]interface{})
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	if req.PaymentMode != nil {
		fields["payment_mode"] = *req.PaymentMode
	}
	if req.Notes != nil {
		fields["notes"] = *req.Notes
	}
	if len(fields) == 0 {
		inv, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return nil, false, nil
		}
		return invoiceToResponse(inv), true, nil
	}

	found, err := s.repo.UpdateFields(ctx, id, fields)
	if err != nil {
		return nil, false, err
	}
	if !found {
		return nil, false, nil
	}

	inv, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, true, err
	}
	s.notifier.Notify("invoice.updated", "Invoice updated",
		fmt.Sprintf("Invoice #%s has been updated", inv.InvoiceNumber))
	return invoiceToResponse(inv), true, nil
}

func (s *invoiceService) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	inv, err := s.repo.FindByID(ctx, id)
	if err != nil {
		// Unknown id is a silent no-op.
		return false, nil
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil || !deleted {
		return deleted, err
	}

	// Deleting an invoice does NOT restore deducted stock.
	s.notifier.Notify("invoice.deleted", "Invoice deleted",
		fmt.Sprintf("Invoice #%s has been deleted", inv.InvoiceNumber))
	return true, nil
}

func (s *invoiceService) RenderPDF(ctx context.Context, id uuid.UUID, businessName, businessGSTIN, storagePath string) (string, error) {
	inv, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return "", err
	}
	existing := filepath.Join(storagePath, inv.InvoiceNumber+".pdf")
	if _, err := os.Stat(existing); err == nil {
		return existing, nil
	}
	return infra.GenerateInvoicePDF(inv, businessName, businessGSTIN, storagePath)
}

func invoiceToResponse(inv *model.Invoice) *dto.InvoiceResponse {
	items := make([]dto.InvoiceItemResponse, 0, len(inv.Items))
	for _, it := range inv.Items {
		items = append(items, dto.InvoiceItemResponse{
			ProductID:   it.ProductID.String(),
			ProductName: it.ProductName,
			HSN:         it.HSN,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			GSTRate:     it.GSTRate,
			GSTAmount:   it.GSTAmount,
			Total:       it.Total,
		})
	}
	return &dto.InvoiceResponse{
		ID:              inv.ID.String(),
		InvoiceNumber:   inv.InvoiceNumber,
		CustomerName:    inv.CustomerName,
		CustomerEmail:   inv.CustomerEmail,
		CustomerMobile:  inv.CustomerMobile,
		Items:           items,
		Subtotal:        inv.Subtotal,
		DiscountPercent: inv.DiscountPercent,
		DiscountAmount:  inv.DiscountAmount,
		CGST:            inv.CGST,
		SGST:            inv.SGST,
		Total:           inv.Total,
		Status:          inv.Status,
		PaymentMode:     inv.PaymentMode,
		Notes:           inv.Notes,
		CreatedBy:       dto.CreatedByResponse{ID: inv.CreatedByID, Name: inv.CreatedByName},
		CreatedAt:       inv.CreatedAt.Format(time.RFC3339),
	}
}
