package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Invoice is a finalized sales document.
// Status: "pending" | "paid" | "cancelled"
// PaymentMode: "cash" | "upi" | "card" | "netbanking"
//
// Invoices intentionally carry no UpdatedAt: post-creation edits are limited to
// status/paymentMode/notes and do not rewrite the financial record.
type Invoice struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`
	// InvoiceNumber is the human-facing sequential identifier (INV-001, …),
	// assigned as max of the surviving numbers plus one. Gaps below the
	// maximum are never refilled.
	InvoiceNumber  string        `gorm:"uniqueIndex;not null"`
	CustomerName   string        `gorm:"not null"`
	CustomerEmail  string        `gorm:"not null"`
	CustomerMobile *string       `gorm:"type:varchar(10)"`
	Items          []InvoiceItem `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
	Subtotal        decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	DiscountPercent decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	DiscountAmount  decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	CGST            decimal.Decimal `gorm:"type:decimal(14,2);not null;column:cgst"`
	SGST            decimal.Decimal `gorm:"type:decimal(14,2);not null;column:sgst"`
	Total           decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Status          string          `gorm:"type:varchar(20);not null;default:'pending'"`
	PaymentMode     string          `gorm:"type:varchar(20);not null;default:'cash'"`
	Notes           *string
	// CreatedBy fields are a snapshot of the acting user; empty when no
	// identity was available at creation time.
	CreatedByID   string `gorm:"not null;default:''"`
	CreatedByName string `gorm:"not null;default:''"`
	CreatedAt     time.Time
}

// InvoiceItem is a denormalized line snapshot embedded in an invoice. Product
// fields are copied at sale time so the invoice survives product deletion.
// Total = Quantity × UnitPrice; GSTAmount = Total × GSTRate/100.
type InvoiceItem struct {
	ID        uint      `gorm:"primaryKey"`
	InvoiceID uuid.UUID `gorm:"type:uuid;index;not null"`
	// ProductID is a weak reference: it is not a foreign key and may point at
	// a product that has since been deleted.
	ProductID   uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName string          `gorm:"not null"`
	HSN         string          `gorm:"not null"`
	Quantity    int             `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	GSTRate     int             `gorm:"not null;column:gst_rate"`
	GSTAmount   decimal.Decimal `gorm:"type:decimal(14,2);not null;column:gst_amount"`
	Total       decimal.Decimal `gorm:"type:decimal(14,2);not null"`
}
