package dto

import "github.com/shopspring/decimal"

// ─── Filter / List ──────────────────────────────────────────────────────────

// InvoiceFilter is bound from query string of GET /v1/invoices.
type InvoiceFilter struct {
	Status string `form:"status"` // pending | paid | cancelled | all
	Date   string `form:"date"`   // YYYY-MM-DD; empty = no date filter
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type InvoiceListResponse struct {
	Data  []InvoiceResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

// InvoiceItemRequest selects a product and quantity; prices and tax are
// snapshotted server-side from the catalog, never taken from the client.
type InvoiceItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity"   validate:"required,min=1"`
}

type CreateInvoiceRequest struct {
	CustomerName   string               `json:"customer_name"`
	CustomerEmail  string               `json:"customer_email"`
	CustomerMobile *string              `json:"customer_mobile"`
	Items          []InvoiceItemRequest `json:"items"`
	// DiscountPercent outside [0,100] is clamped before any computation.
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	Status          string          `json:"status"       validate:"omitempty,oneof=pending paid cancelled"`
	PaymentMode     string          `json:"payment_mode" validate:"omitempty,oneof=cash upi card netbanking"`
	Notes           *string         `json:"notes"`
}

// UpdateInvoiceRequest covers the only fields mutable after creation.
// Amounts, items and customer identity are frozen at creation time.
type UpdateInvoiceRequest struct {
	Status      *string `json:"status"       validate:"omitempty,oneof=pending paid cancelled"`
	PaymentMode *string `json:"payment_mode" validate:"omitempty,oneof=cash upi card netbanking"`
	Notes       *string `json:"notes"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type InvoiceItemResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	HSN         string          `json:"hsn"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	GSTRate     int             `json:"gst_rate"`
	GSTAmount   decimal.Decimal `json:"gst_amount"`
	Total       decimal.Decimal `json:"total"`
}

type CreatedByResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type InvoiceResponse struct {
	ID              string                `json:"id"`
	InvoiceNumber   string                `json:"invoice_number"`
	CustomerName    string                `json:"customer_name"`
	CustomerEmail   string                `json:"customer_email"`
	CustomerMobile  *string               `json:"customer_mobile,omitempty"`
	Items           []InvoiceItemResponse `json:"items"`
	Subtotal        decimal.Decimal       `json:"subtotal"`
	DiscountPercent decimal.Decimal       `json:"discount_percent"`
	DiscountAmount  decimal.Decimal       `json:"discount_amount"`
	CGST            decimal.Decimal       `json:"cgst"`
	SGST            decimal.Decimal       `json:"sgst"`
	Total           decimal.Decimal       `json:"total"`
	Status          string                `json:"status"`
	PaymentMode     string                `json:"payment_mode"`
	Notes           *string               `json:"notes,omitempty"`
	CreatedBy       CreatedByResponse     `json:"created_by"`
	CreatedAt       string                `json:"created_at"`
}
