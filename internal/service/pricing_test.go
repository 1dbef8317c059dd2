package service_test

import (
	"testing"

	"github.com/Praborkar/Inventory-Management-billing-System/internal/model"
	"github.com/Praborkar/Inventory-Management-billing-System/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func item(unitPrice int64, qty, gstRate int) model.InvoiceItem {
	price := decimal.NewFromInt(unitPrice)
	total, gstAmount := service.LineAmounts(price, qty, gstRate)
	return model.InvoiceItem{
		Quantity:  qty,
		UnitPrice: price,
		GSTRate:   gstRate,
		GSTAmount: gstAmount,
		Total:     total,
	}
}

func TestCalculateTotals_SingleItemWithDiscount(t *testing.T) {
	// 2 × 100 @ 18% GST, 10% discount:
	// subtotal 200, discount 20, gst 36 split 18/18, total 216
	items := []model.InvoiceItem{item(100, 2, 18)}
	totals := service.CalculateTotals(items, decimal.NewFromInt(10))

	assert.True(t, totals.Subtotal.Equal(decimal.NewFromInt(200)), "subtotal = %s", totals.Subtotal)
	assert.True(t, totals.DiscountAmount.Equal(decimal.NewFromInt(20)), "discount = %s", totals.DiscountAmount)
	assert.True(t, totals.CGST.Equal(decimal.NewFromInt(18)), "cgst = %s", totals.CGST)
	assert.True(t, totals.SGST.Equal(decimal.NewFromInt(18)), "sgst = %s", totals.SGST)
	assert.True(t, totals.Total.Equal(decimal.NewFromInt(216)), "total = %s", totals.Total)
}

func TestCalculateTotals_GSTSplitsEvenly(t *testing.T) {
	items := []model.InvoiceItem{item(100, 1, 18), item(50, 3, 5)}
	totals := service.CalculateTotals(items, decimal.Zero)

	assert.True(t, totals.CGST.Equal(totals.SGST))
	gstSum := totals.CGST.Add(totals.SGST)
	want := decimal.NewFromFloat(18).Add(decimal.NewFromFloat(7.5))
	assert.True(t, gstSum.Equal(want), "gst = %s", gstSum)
}

func TestCalculateTotals_NoItems(t *testing.T) {
	totals := service.CalculateTotals(nil, decimal.NewFromInt(50))

	assert.True(t, totals.Subtotal.IsZero())
	assert.True(t, totals.DiscountAmount.IsZero())
	assert.True(t, totals.Total.IsZero())
}

func TestCalculateTotals_Deterministic(t *testing.T) {
	items := []model.InvoiceItem{item(123, 7, 12), item(45, 2, 28)}
	first := service.CalculateTotals(items, decimal.NewFromInt(15))
	second := service.CalculateTotals(items, decimal.NewFromInt(15))

	assert.True(t, first.Total.Equal(second.Total))
	assert.True(t, first.DiscountAmount.Equal(second.DiscountAmount))
}

func TestClampDiscount(t *testing.T) {
	assert.True(t, service.ClampDiscount(decimal.NewFromInt(-5)).IsZero())
	assert.True(t, service.ClampDiscount(decimal.NewFromInt(150)).Equal(decimal.NewFromInt(100)))
	assert.True(t, service.ClampDiscount(decimal.NewFromInt(50)).Equal(decimal.NewFromInt(50)))
	assert.True(t, service.ClampDiscount(decimal.Zero).IsZero())
}

func TestLineAmounts(t *testing.T) {
	total, gst := service.LineAmounts(decimal.NewFromFloat(22.50), 4, 18)
	assert.True(t, total.Equal(decimal.NewFromInt(90)), "total = %s", total)
	assert.True(t, gst.Equal(decimal.NewFromFloat(16.2)), "gst = %s", gst)

	total, gst = service.LineAmounts(decimal.NewFromInt(56), 2, 0)
	assert.True(t, total.Equal(decimal.NewFromInt(112)))
	assert.True(t, gst.IsZero())
}
