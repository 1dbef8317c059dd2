package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a catalog record. Quantity is the stock on hand and is only
// mutated through the catalog service (manual adjustment) or an invoice
// transaction (sale deduction) — it can never go negative.
type Product struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"index;not null"`
	SKU         string    `gorm:"uniqueIndex;not null"`
	HSN         string    `gorm:"not null"`
	MRP         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	SellingPrice  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PurchasePrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Quantity    int    `gorm:"not null;default:0"`
	Unit        string `gorm:"type:varchar(10);not null;default:'Pcs'"`
	Category    string `gorm:"index;not null"`
	// LowStockThreshold is the restock floor: quantity <= threshold flags the
	// product on the dashboard.
	LowStockThreshold int `gorm:"not null;default:5"`
	// GSTRate is a percentage, one of the Indian GST slabs: 0, 5, 12, 18, 28.
	GSTRate     int `gorm:"not null"`
	Description *string
	ImageURL    *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Units accepted for Product.Unit.
var Units = []string{"Pcs", "Box", "Kg", "Ltr", "Mtr", "Pack", "Set"}

// GSTRates are the valid GST slab percentages.
var GSTRates = []int{0, 5, 12, 18, 28}
