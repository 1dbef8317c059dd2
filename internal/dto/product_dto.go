package dto

import "github.com/shopspring/decimal"

// ─── Filter / List ──────────────────────────────────────────────────────────

// ProductFilter is bound from query string of GET /v1/products.
type ProductFilter struct {
	Name     string `form:"name"`
	SKU      string `form:"sku"`
	Category string `form:"category"`
	Page     int    `form:"page,default=1"   validate:"min=1"`
	Limit    int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type ProductListResponse struct {
	Data  []ProductResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateProductRequest struct {
	Name          string          `json:"name"           validate:"required"`
	SKU           string          `json:"sku"            validate:"required"`
	HSN           string          `json:"hsn"            validate:"required"`
	MRP           decimal.Decimal `json:"mrp"            validate:"min=0"`
	SellingPrice  decimal.Decimal `json:"selling_price"  validate:"min=0"`
	PurchasePrice decimal.Decimal `json:"purchase_price" validate:"min=0"`
	Quantity      int             `json:"quantity"       validate:"min=0"`
	// Unit defaults to "Pcs" when omitted.
	Unit          string          `json:"unit"           validate:"omitempty,oneof=Pcs Box Kg Ltr Mtr Pack Set"`
	Category      string          `json:"category"       validate:"required"`
	LowStockThreshold int         `json:"low_stock_threshold" validate:"min=0"`
	GSTRate       int             `json:"gst_rate"       validate:"oneof=0 5 12 18 28"`
	Description   *string         `json:"description"`
	ImageURL      *string         `json:"image_url"      validate:"omitempty,uri"`
}

// UpdateProductRequest is a partial-field patch: nil pointers are left
// untouched. Every present field refreshes the product's updated_at.
type UpdateProductRequest struct {
	Name          *string          `json:"name"           validate:"omitempty,min=1"`
	SKU           *string          `json:"sku"            validate:"omitempty,min=1"`
	HSN           *string          `json:"hsn"`
	MRP           *decimal.Decimal `json:"mrp"            validate:"omitempty,min=0"`
	SellingPrice  *decimal.Decimal `json:"selling_price"  validate:"omitempty,min=0"`
	PurchasePrice *decimal.Decimal `json:"purchase_price" validate:"omitempty,min=0"`
	Quantity      *int             `json:"quantity"       validate:"omitempty,min=0"`
	Unit          *string          `json:"unit"           validate:"omitempty,oneof=Pcs Box Kg Ltr Mtr Pack Set"`
	Category      *string          `json:"category"       validate:"omitempty,min=1"`
	LowStockThreshold *int         `json:"low_stock_threshold" validate:"omitempty,min=0"`
	GSTRate       *int             `json:"gst_rate"       validate:"omitempty,oneof=0 5 12 18 28"`
	Description   *string          `json:"description"`
	ImageURL      *string          `json:"image_url"      validate:"omitempty,uri"`
}

// AdjustStockRequest applies a signed delta to the stock on hand.
type AdjustStockRequest struct {
	Delta  int    `json:"delta"  validate:"required"`
	Reason string `json:"reason" validate:"required,min=3"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	SKU           string          `json:"sku"`
	HSN           string          `json:"hsn"`
	MRP           decimal.Decimal `json:"mrp"`
	SellingPrice  decimal.Decimal `json:"selling_price"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	Quantity      int             `json:"quantity"`
	Unit          string          `json:"unit"`
	Category      string          `json:"category"`
	LowStockThreshold int         `json:"low_stock_threshold"`
	GSTRate       int             `json:"gst_rate"`
	Description   *string         `json:"description,omitempty"`
	ImageURL      *string         `json:"image_url,omitempty"`
	LowStock      bool            `json:"low_stock"`
	CreatedAt     string          `json:"created_at"`
	UpdatedAt     string          `json:"updated_at"`
}

type StockMovementResponse struct {
	ID          string  `json:"id"`
	ProductID   string  `json:"product_id"`
	Type        string  `json:"type"`
	Quantity    int     `json:"quantity"`
	StockBefore int     `json:"stock_before"`
	StockAfter  int     `json:"stock_after"`
	Reason      string  `json:"reason,omitempty"`
	ReferenceID *string `json:"reference_id,omitempty"`
	CreatedAt   string  `json:"created_at"`
}

type PriceHistoryResponse struct {
	ID             string          `json:"id"`
	ProductID      string          `json:"product_id"`
	SellingBefore  decimal.Decimal `json:"selling_before"`
	SellingAfter   decimal.Decimal `json:"selling_after"`
	PurchaseBefore decimal.Decimal `json:"purchase_before"`
	PurchaseAfter  decimal.Decimal `json:"purchase_after"`
	Reason         string          `json:"reason"`
	CreatedAt      string          `json:"created_at"`
}
