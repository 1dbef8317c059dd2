package service

import (
	"github.com/Praborkar/Inventory-Management-billing-System/internal/model"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Totals is the calculator output for an invoice draft.
type Totals struct {
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	CGST           decimal.Decimal
	SGST           decimal.Decimal
	Total          decimal.Decimal
}

// CalculateTotals computes invoice-level amounts from line items.
//
// Pure and deterministic: identical inputs always produce identical outputs.
// It trusts each item's GSTAmount — per-item tax is recomputed by the editor
// at line-edit time, never here. The caller clamps discountPercent to [0,100]
// (see ClampDiscount); out-of-range input is a contract violation, not a
// runtime check.
//
// CGST and SGST are always an equal split of the total GST, matching the
// intra-state sale assumption carried throughout the system.
func CalculateTotals(items []model.InvoiceItem, discountPercent decimal.Decimal) Totals {
	subtotal := decimal.Zero
	totalGST := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.Total)
		totalGST = totalGST.Add(it.GSTAmount)
	}

	discountAmount := subtotal.Mul(discountPercent).Div(hundred)
	half := totalGST.Div(decimal.NewFromInt(2))

	return Totals{
		Subtotal:       subtotal,
		DiscountAmount: discountAmount,
		CGST:           half,
		SGST:           half,
		Total:          subtotal.Sub(discountAmount).Add(half).Add(half),
	}
}

// ClampDiscount bounds a discount percentage to [0,100].
func ClampDiscount(p decimal.Decimal) decimal.Decimal {
	if p.IsNegative() {
		return decimal.Zero
	}
	if p.GreaterThan(hundred) {
		return hundred
	}
	return p
}

// LineAmounts computes a line item's total and GST amount from its snapshot
// fields: total = quantity × unitPrice, gstAmount = total × gstRate/100.
func LineAmounts(unitPrice decimal.Decimal, quantity, gstRate int) (total, gstAmount decimal.Decimal) {
	total = unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
	gstAmount = total.Mul(decimal.NewFromInt(int64(gstRate))).Div(hundred)
	return total, gstAmount
}
