package infra

// pdf.go — GST invoice PDF generation using go-pdf/fpdf.
// Generates an A4 tax invoice with:
//   - Business name + GSTIN header
//   - Invoice number, date, customer block
//   - Item table (name, HSN, qty, rate, GST %, GST amount, amount)
//   - Subtotal / discount / CGST / SGST split / grand total
//
// The output file is saved to storagePath/{invoice_number}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Praborkar/Inventory-Management-billing-System/internal/model"

	"github.com/go-pdf/fpdf"
)

// GenerateInvoicePDF renders a tax invoice to disk and returns the path to
// the generated file. storagePath is created if needed.
func GenerateInvoicePDF(inv *model.Invoice, businessName, businessGSTIN, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("%s.pdf", inv.InvoiceNumber)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	// Core Helvetica is cp1252; free-text fields must go through the
	// translator or multi-byte runes end up as mojibake in the content stream.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30 // total margins = 30mm

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, tr(businessName), "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	if businessGSTIN != "" {
		pdf.CellFormat(contentW, 5, "GSTIN: "+businessGSTIN, "", 1, "C", false, 0, "")
	}
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW, 7, "TAX INVOICE", "", 1, "C", false, 0, "")
	pdf.Ln(3)

	// ── Invoice / customer block ──────────────────────────────────────────────
	half := contentW / 2
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(half, 5, "Invoice No: "+inv.InvoiceNumber, "", 0, "L", false, 0, "")
	pdf.CellFormat(half, 5, "Date: "+inv.CreatedAt.Format("02/01/2006"), "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(half, 5, tr("Bill To: "+inv.CustomerName), "", 0, "L", false, 0, "")
	pdf.CellFormat(half, 5, "Payment: "+inv.PaymentMode, "", 1, "R", false, 0, "")
	pdf.CellFormat(half, 5, tr(inv.CustomerEmail), "", 0, "L", false, 0, "")
	pdf.CellFormat(half, 5, "Status: "+inv.Status, "", 1, "R", false, 0, "")
	if inv.CustomerMobile != nil && *inv.CustomerMobile != "" {
		pdf.CellFormat(half, 5, "Mobile: "+*inv.CustomerMobile, "", 1, "L", false, 0, "")
	}
	pdf.Ln(3)

	// ── Items table ───────────────────────────────────────────────────────────
	colName := contentW * 0.30
	colHSN := contentW * 0.11
	colQty := contentW * 0.08
	colRate := contentW * 0.14
	colGSTPct := contentW * 0.08
	colGSTAmt := contentW * 0.14
	colAmount := contentW * 0.15

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(235, 235, 235)
	pdf.CellFormat(colName, 6, "Item", "1", 0, "L", true, 0, "")
	pdf.CellFormat(colHSN, 6, "HSN", "1", 0, "C", true, 0, "")
	pdf.CellFormat(colQty, 6, "Qty", "1", 0, "C", true, 0, "")
	pdf.CellFormat(colRate, 6, "Rate", "1", 0, "R", true, 0, "")
	pdf.CellFormat(colGSTPct, 6, "GST%", "1", 0, "C", true, 0, "")
	pdf.CellFormat(colGSTAmt, 6, "GST Amt", "1", 0, "R", true, 0, "")
	pdf.CellFormat(colAmount, 6, "Amount", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	for _, item := range inv.Items {
		pdf.CellFormat(colName, 6, tr(truncateRunes(item.ProductName, 34)), "1", 0, "L", false, 0, "")
		pdf.CellFormat(colHSN, 6, item.HSN, "1", 0, "C", false, 0, "")
		pdf.CellFormat(colQty, 6, fmt.Sprintf("%d", item.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(colRate, 6, item.UnitPrice.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colGSTPct, 6, fmt.Sprintf("%d%%", item.GSTRate), "1", 0, "C", false, 0, "")
		pdf.CellFormat(colGSTAmt, 6, item.GSTAmount.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colAmount, 6, item.Total.StringFixed(2), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(3)

	// ── Totals block ──────────────────────────────────────────────────────────
	labelW := contentW * 0.71
	valueW := contentW * 0.29

	totalsRow := func(label, value string, bold bool) {
		if bold {
			pdf.SetFont("Helvetica", "B", 10)
		} else {
			pdf.SetFont("Helvetica", "", 9)
		}
		pdf.CellFormat(labelW, 6, label, "", 0, "R", false, 0, "")
		pdf.CellFormat(valueW, 6, value, "", 1, "R", false, 0, "")
	}

	// Currency prefix stays ASCII: the rupee sign is not in cp1252.
	totalsRow("Subtotal:", "Rs. "+inv.Subtotal.StringFixed(2), false)
	if !inv.DiscountAmount.IsZero() {
		totalsRow(fmt.Sprintf("Discount (%s%%):", inv.DiscountPercent.StringFixed(0)),
			"-Rs. "+inv.DiscountAmount.StringFixed(2), false)
	}
	totalsRow("CGST:", "Rs. "+inv.CGST.StringFixed(2), false)
	totalsRow("SGST:", "Rs. "+inv.SGST.StringFixed(2), false)
	totalsRow("TOTAL:", "Rs. "+inv.Total.StringFixed(2), true)

	// ── Footer ────────────────────────────────────────────────────────────────
	pdf.Ln(5)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(contentW, 5, "Thank you for your business!", "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}

// truncateRunes caps s at max runes, replacing the tail with an ellipsis.
// Cutting by runes keeps multi-byte product names valid UTF-8.
func truncateRunes(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
