package worker

// receipt_worker.go
// Processes receipt jobs from QueueReceipt: renders the invoice PDF and,
// when the customer supplied an email, hands the attachment to the email
// queue. Runs after the invoice transaction has already committed, so a
// failure here never touches invoice or stock state.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Praborkar/Inventory-Management-billing-System/internal/infra"
	"github.com/Praborkar/Inventory-Management-billing-System/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ReceiptJobPayload is the job envelope sent to QueueReceipt.
type ReceiptJobPayload struct {
	InvoiceID string `json:"invoice_id"`
	ToEmail   string `json:"to_email"`
}

// ReceiptWorker renders invoice PDFs and chains email jobs.
type ReceiptWorker struct {
	invoiceRepo    repository.InvoiceRepository
	dispatcher     *Dispatcher
	pdfStoragePath string
	businessName   string
	businessGSTIN  string
}

func NewReceiptWorker(
	invoiceRepo repository.InvoiceRepository,
	dispatcher *Dispatcher,
	pdfStoragePath string,
	businessName string,
	businessGSTIN string,
) *ReceiptWorker {
	return &ReceiptWorker{
		invoiceRepo:    invoiceRepo,
		dispatcher:     dispatcher,
		pdfStoragePath: pdfStoragePath,
		businessName:   businessName,
		businessGSTIN:  businessGSTIN,
	}
}

// Process handles a single receipt job:
//  1. Parse ReceiptJobPayload from the job envelope
//  2. Fetch the invoice (with items) from DB
//  3. Render the GST invoice PDF
//  4. Enqueue an email job carrying the PDF path
func (w *ReceiptWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload ReceiptJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("receipt_worker: invalid payload")
		return nil // malformed jobs are not retryable
	}

	invoiceID, err := uuid.Parse(payload.InvoiceID)
	if err != nil {
		log.Error().Str("invoice_id", payload.InvoiceID).Msg("receipt_worker: invalid invoice_id")
		return nil
	}

	inv, err := w.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return fmt.Errorf("receipt_worker: invoice %s: %w", payload.InvoiceID, err)
	}

	pdfPath, err := infra.GenerateInvoicePDF(inv, w.businessName, w.businessGSTIN, w.pdfStoragePath)
	if err != nil {
		return fmt.Errorf("receipt_worker: render pdf for %s: %w", inv.InvoiceNumber, err)
	}
	log.Info().Str("pdf", pdfPath).Str("invoice", inv.InvoiceNumber).Msg("receipt_worker: PDF generated")

	if payload.ToEmail == "" {
		return nil
	}

	emailJob := EmailJobPayload{
		ToEmail: payload.ToEmail,
		Subject: fmt.Sprintf("Invoice %s from %s", inv.InvoiceNumber, w.businessName),
		Body: fmt.Sprintf("Dear %s,\n\nPlease find your invoice %s attached.\nAmount due: ₹%s\n\nThank you for your business.",
			inv.CustomerName, inv.InvoiceNumber, inv.Total.StringFixed(2)),
		PDFPath: pdfPath,
	}
	if err := w.dispatcher.EnqueueEmail(ctx, emailJob); err != nil {
		return fmt.Errorf("receipt_worker: enqueue email for %s: %w", inv.InvoiceNumber, err)
	}
	log.Info().Str("email", payload.ToEmail).Str("invoice", inv.InvoiceNumber).Msg("receipt_worker: email job enqueued")
	return nil
}
