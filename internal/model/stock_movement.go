package model

import (
	"time"

	"github.com/google/uuid"
)

// StockMovement records every stock change on a product.
// Created automatically when an invoice deducts stock or an admin adjusts it.
// Invoice deletion creates no movement: deducted stock is not restored.
type StockMovement struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Type       string    `gorm:"not null"` // "sale" | "manual_adjustment"
	Quantity   int       `gorm:"not null"` // positive = in, negative = out
	StockBefore int      `gorm:"not null"`
	StockAfter  int      `gorm:"not null"`
	Reason     string
	// ReferenceID holds the invoice id for sale movements.
	ReferenceID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt   time.Time
}
