package service_test

import (
	"context"
	"testing"

	"github.com/Praborkar/Inventory-Management-billing-System/internal/apierror"
	"github.com/Praborkar/Inventory-Management-billing-System/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestEditor_AddRowDefaults(t *testing.T) {
	repo := newStubProductRepo()
	ed := service.NewInvoiceEditor(repo)

	idx := ed.AddRow()
	require.Equal(t, 0, idx)
	require.Equal(t, 1, ed.Len())

	row, err := ed.Row(idx)
	require.NoError(t, err)
	assert.Equal(t, service.RowUnselected, row.State)
	assert.Equal(t, 1, row.Item.Quantity)
}

func TestEditor_SelectProductSnapshotsCatalog(t *testing.T) {
	repo := newStubProductRepo()
	p := seedProduct(repo, "Parle-G 200g", "PG-200", 40, 5)
	ed := service.NewInvoiceEditor(repo)

	idx := ed.AddRow()
	require.NoError(t, ed.SelectProduct(context.Background(), idx, p.ID))

	row, err := ed.Row(idx)
	require.NoError(t, err)
	assert.Equal(t, service.RowValid, row.State)
	assert.Equal(t, p.ID, row.Item.ProductID)
	assert.Equal(t, "Parle-G 200g", row.Item.ProductName)
	assert.Equal(t, "1905", row.Item.HSN)
	assert.Equal(t, 18, row.Item.GSTRate)
	assert.Equal(t, 40, row.Available)
	// qty 1 × 100 @18%
	assert.True(t, row.Item.Total.Equal(decimal.NewFromInt(100)))
	assert.True(t, row.Item.GSTAmount.Equal(decimal.NewFromInt(18)))
}

func TestEditor_SelectUnknownProduct(t *testing.T) {
	repo := newStubProductRepo()
	p := seedProduct(repo, "Tata Salt", "TS-1", 10, 5)
	_, _ = repo.Delete(context.Background(), p.ID)

	ed := service.NewInvoiceEditor(repo)
	idx := ed.AddRow()
	err := ed.SelectProduct(context.Background(), idx, p.ID)
	assert.ErrorContains(t, err, "not found")
}

func TestEditor_DuplicateSelectionRemovesTriggeringRow(t *testing.T) {
	repo := newStubProductRepo()
	p := seedProduct(repo, "Maggi 70g", "MG-70", 100, 5)
	ed := service.NewInvoiceEditor(repo)

	first := ed.AddRow()
	require.NoError(t, ed.SelectProduct(context.Background(), first, p.ID))

	second := ed.AddRow()
	require.Equal(t, 2, ed.Len())

	// Selecting an already-present product removes THIS row, silently.
	err := ed.SelectProduct(context.Background(), second, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, ed.Len())

	// The surviving row is untouched.
	row, err := ed.Row(first)
	require.NoError(t, err)
	assert.Equal(t, service.RowValid, row.State)
	assert.Equal(t, p.ID, row.Item.ProductID)
}

func TestEditor_StockGuardKeepsPriorQuantity(t *testing.T) {
	repo := newStubProductRepo()
	p := seedProduct(repo, "Dettol 200ml", "DT-200", 5, 2)
	ed := service.NewInvoiceEditor(repo)

	idx := ed.AddRow()
	require.NoError(t, ed.SelectProduct(context.Background(), idx, p.ID))

	err := ed.SetQuantity(context.Background(), idx, 6)
	require.Error(t, err)
	var stockErr *apierror.StockExceededError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 5, stockErr.Available)
	assert.Equal(t, "Only 5 items available in stock", err.Error())

	row, rowErr := ed.Row(idx)
	require.NoError(t, rowErr)
	assert.Equal(t, service.RowInvalid, row.State)
	assert.Equal(t, "Only 5 items available in stock", row.Message)
	// Rejected change: the prior quantity stands.
	assert.Equal(t, 1, row.Item.Quantity)

	// Quantity equal to stock is allowed and clears the row error.
	require.NoError(t, ed.SetQuantity(context.Background(), idx, 5))
	row, _ = ed.Row(idx)
	assert.Equal(t, service.RowValid, row.State)
	assert.Equal(t, 5, row.Item.Quantity)
	assert.Empty(t, row.Message)
}

func TestEditor_SetQuantityBeforeSelection(t *testing.T) {
	repo := newStubProductRepo()
	ed := service.NewInvoiceEditor(repo)

	idx := ed.AddRow()
	require.NoError(t, ed.SetQuantity(context.Background(), idx, 7))

	row, err := ed.Row(idx)
	require.NoError(t, err)
	assert.Equal(t, service.RowUnselected, row.State)
	assert.Equal(t, 7, row.Item.Quantity)
}

func TestEditor_RemoveRowShiftsIndexes(t *testing.T) {
	repo := newStubProductRepo()
	a := seedProduct(repo, "A", "SKU-A", 10, 2)
	b := seedProduct(repo, "B", "SKU-B", 10, 2)
	ed := service.NewInvoiceEditor(repo)

	i0 := ed.AddRow()
	i1 := ed.AddRow()
	require.NoError(t, ed.SelectProduct(context.Background(), i0, a.ID))
	require.NoError(t, ed.SelectProduct(context.Background(), i1, b.ID))

	ed.RemoveRow(0)
	require.Equal(t, 1, ed.Len())
	row, err := ed.Row(0)
	require.NoError(t, err)
	assert.Equal(t, b.ID, row.Item.ProductID)
}

func TestEditor_ValidateSubmit(t *testing.T) {
	repo := newStubProductRepo()
	p := seedProduct(repo, "Surf Excel", "SE-1", 5, 2)

	t.Run("valid draft passes", func(t *testing.T) {
		ed := service.NewInvoiceEditor(repo)
		idx := ed.AddRow()
		require.NoError(t, ed.SelectProduct(context.Background(), idx, p.ID))

		errs := ed.ValidateSubmit(service.CustomerDetails{
			Name: "Asha", Email: "asha@example.com",
		})
		assert.Empty(t, errs)
	})

	t.Run("missing customer fields", func(t *testing.T) {
		ed := service.NewInvoiceEditor(repo)
		idx := ed.AddRow()
		require.NoError(t, ed.SelectProduct(context.Background(), idx, p.ID))

		errs := ed.ValidateSubmit(service.CustomerDetails{})
		assert.Contains(t, errs, "customer_name")
		assert.Contains(t, errs, "customer_email")
	})

	t.Run("email shape", func(t *testing.T) {
		ed := service.NewInvoiceEditor(repo)
		idx := ed.AddRow()
		require.NoError(t, ed.SelectProduct(context.Background(), idx, p.ID))

		errs := ed.ValidateSubmit(service.CustomerDetails{Name: "Asha", Email: "not-an-email"})
		assert.Contains(t, errs["customer_email"], "valid email")
	})

	t.Run("mobile shape when provided", func(t *testing.T) {
		ed := service.NewInvoiceEditor(repo)
		idx := ed.AddRow()
		require.NoError(t, ed.SelectProduct(context.Background(), idx, p.ID))

		errs := ed.ValidateSubmit(service.CustomerDetails{
			Name: "Asha", Email: "asha@example.com", Mobile: strPtr("12345"),
		})
		assert.Contains(t, errs, "customer_mobile")

		errs = ed.ValidateSubmit(service.CustomerDetails{
			Name: "Asha", Email: "asha@example.com", Mobile: strPtr("9876543210"),
		})
		assert.Empty(t, errs)
	})

	t.Run("no rows", func(t *testing.T) {
		ed := service.NewInvoiceEditor(repo)
		errs := ed.ValidateSubmit(service.CustomerDetails{Name: "Asha", Email: "asha@example.com"})
		assert.Contains(t, errs["items"], "At least one product")
	})

	t.Run("unselected row", func(t *testing.T) {
		ed := service.NewInvoiceEditor(repo)
		ed.AddRow()
		errs := ed.ValidateSubmit(service.CustomerDetails{Name: "Asha", Email: "asha@example.com"})
		assert.Contains(t, errs["items"], "select a product")
	})

	t.Run("invalid row surfaces its message by index", func(t *testing.T) {
		ed := service.NewInvoiceEditor(repo)
		idx := ed.AddRow()
		require.NoError(t, ed.SelectProduct(context.Background(), idx, p.ID))
		_ = ed.SetQuantity(context.Background(), idx, 99)

		errs := ed.ValidateSubmit(service.CustomerDetails{Name: "Asha", Email: "asha@example.com"})
		assert.Equal(t, "Only 5 items available in stock", errs["items[0].quantity"])
	})
}
