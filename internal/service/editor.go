package service

import (
	"context"
	"fmt"
	"regexp"

	"github.com/Praborkar/Inventory-Management-billing-System/internal/apierror"
	"github.com/Praborkar/Inventory-Management-billing-System/internal/model"

	"github.com/google/uuid"
)

// CatalogReader is the read-only catalog view the editor resolves products
// against. Satisfied by repository.ProductRepository.
type CatalogReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
}

// RowState tracks the validity of a single editor row.
type RowState int

const (
	RowUnselected RowState = iota // no product chosen yet
	RowValid                      // product chosen, quantity within stock
	RowInvalid                    // quantity change rejected; Message set
)

// EditorRow is one (product, quantity) selection in progress. Once a product
// is selected the Item carries the catalog snapshot (name, HSN, price, GST)
// and the computed line amounts.
type EditorRow struct {
	State   RowState
	Message string
	// Available is the catalog stock observed when the product was resolved.
	Available int
	Item      model.InvoiceItem
}

// InvoiceEditor manages the in-progress set of line items for one invoice
// draft. It enforces the duplicate-product rule and the per-row stock guard
// before anything touches the stores. Rows in RowInvalid state block
// submission but never adding, editing or removing other rows.
type InvoiceEditor struct {
	catalog CatalogReader
	rows    []EditorRow
}

func NewInvoiceEditor(catalog CatalogReader) *InvoiceEditor {
	return &InvoiceEditor{catalog: catalog}
}

// AddRow appends an unselected row with quantity 1 and returns its index.
// No catalog side effects.
func (e *InvoiceEditor) AddRow() int {
	e.rows = append(e.rows, EditorRow{
		State: RowUnselected,
		Item:  model.InvoiceItem{Quantity: 1},
	})
	return len(e.rows) - 1
}

// Len returns the current row count.
func (e *InvoiceEditor) Len() int { return len(e.rows) }

// Row returns a copy of the row at i.
func (e *InvoiceEditor) Row(i int) (EditorRow, error) {
	if i < 0 || i >= len(e.rows) {
		return EditorRow{}, fmt.Errorf("row %d out of range", i)
	}
	return e.rows[i], nil
}

// SelectProduct resolves productID against the catalog and snapshots its
// name, HSN, selling price and GST rate into the row, recomputing the line
// amounts for the row's current quantity.
//
// If the product is already selected in a different row, THIS row is removed
// silently — duplicate-product rows are not allowed, and the rule is enforced
// by row removal, not by an error surfaced to the triggering row.
func (e *InvoiceEditor) SelectProduct(ctx context.Context, rowIndex int, productID uuid.UUID) error {
	if rowIndex < 0 || rowIndex >= len(e.rows) {
		return fmt.Errorf("row %d out of range", rowIndex)
	}

	for i, row := range e.rows {
		if i != rowIndex && row.State != RowUnselected && row.Item.ProductID == productID {
			e.RemoveRow(rowIndex)
			return nil
		}
	}

	p, err := e.catalog.FindByID(ctx, productID)
	if err != nil {
		return fmt.Errorf("product %s not found", productID)
	}

	row := &e.rows[rowIndex]
	row.Item.ProductID = p.ID
	row.Item.ProductName = p.Name
	row.Item.HSN = p.HSN
	row.Item.UnitPrice = p.SellingPrice
	row.Item.GSTRate = p.GSTRate
	row.Item.Total, row.Item.GSTAmount = LineAmounts(p.SellingPrice, row.Item.Quantity, p.GSTRate)
	row.Available = p.Quantity
	row.State = RowValid
	row.Message = ""
	return nil
}

// SetQuantity updates a row's quantity and recomputes its line amounts.
//
// When the requested quantity exceeds the resolved product's available stock
// the row keeps its prior valid quantity, is marked RowInvalid with a message
// reporting the available stock, and a StockExceededError is returned. The
// rejection is row-scoped: the rest of the editing session continues.
func (e *InvoiceEditor) SetQuantity(ctx context.Context, rowIndex, quantity int) error {
	if rowIndex < 0 || rowIndex >= len(e.rows) {
		return fmt.Errorf("row %d out of range", rowIndex)
	}
	row := &e.rows[rowIndex]

	if row.State == RowUnselected {
		// Nothing to validate against yet; the quantity is kept for when a
		// product is selected.
		row.Item.Quantity = quantity
		return nil
	}

	p, err := e.catalog.FindByID(ctx, row.Item.ProductID)
	if err != nil {
		return fmt.Errorf("product %s not found", row.Item.ProductID)
	}
	row.Available = p.Quantity

	if quantity > p.Quantity {
		stockErr := apierror.NewStockExceeded(p.Name, p.Quantity)
		row.State = RowInvalid
		row.Message = stockErr.Error()
		return stockErr
	}

	row.Item.Quantity = quantity
	row.Item.Total, row.Item.GSTAmount = LineAmounts(row.Item.UnitPrice, quantity, row.Item.GSTRate)
	row.State = RowValid
	row.Message = ""
	return nil
}

// RemoveRow deletes the row and its line item.
func (e *InvoiceEditor) RemoveRow(rowIndex int) {
	if rowIndex < 0 || rowIndex >= len(e.rows) {
		return
	}
	e.rows = append(e.rows[:rowIndex], e.rows[rowIndex+1:]...)
}

// Rows returns a copy of the current rows.
func (e *InvoiceEditor) Rows() []EditorRow {
	out := make([]EditorRow, len(e.rows))
	copy(out, e.rows)
	return out
}

// Items returns the line items of all selected rows, in row order.
func (e *InvoiceEditor) Items() []model.InvoiceItem {
	items := make([]model.InvoiceItem, 0, len(e.rows))
	for _, row := range e.rows {
		if row.State != RowUnselected {
			items = append(items, row.Item)
		}
	}
	return items
}

// CustomerDetails are the invoice header fields validated at submit time.
type CustomerDetails struct {
	Name   string
	Email  string
	Mobile *string
}

var (
	emailShape  = regexp.MustCompile(`^\S+@\S+\.\S+$`)
	mobileShape = regexp.MustCompile(`^[0-9]{10}$`)
)

// ValidateSubmit checks every submit-time rule and returns field-scoped
// messages. An empty map means the draft is ready for submission; a non-empty
// map blocks it entirely — there is no partial submit.
func (e *InvoiceEditor) ValidateSubmit(customer CustomerDetails) map[string]string {
	errs := make(map[string]string)

	if customer.Name == "" {
		errs["customer_name"] = "Customer name is required"
	}
	if customer.Email == "" {
		errs["customer_email"] = "Customer email is required"
	} else if !emailShape.MatchString(customer.Email) {
		errs["customer_email"] = "Please enter a valid email address"
	}
	if customer.Mobile != nil && *customer.Mobile != "" && !mobileShape.MatchString(*customer.Mobile) {
		errs["customer_mobile"] = "Mobile number must be exactly 10 digits"
	}

	if len(e.rows) == 0 {
		errs["items"] = "At least one product must be selected"
		return errs
	}

	seen := make(map[uuid.UUID]bool)
	for i, row := range e.rows {
		switch {
		case row.State == RowUnselected:
			errs["items"] = "Please select a product for all rows"
		case row.State == RowInvalid:
			errs[fmt.Sprintf("items[%d].quantity", i)] = row.Message
		}
		if row.State != RowUnselected {
			if seen[row.Item.ProductID] {
				errs["items"] = "Duplicate products found. Please remove duplicates."
			}
			seen[row.Item.ProductID] = true
		}
		if row.Item.Quantity <= 0 {
			errs["items"] = "Quantity must be greater than zero for all products"
		}
	}
	return errs
}
