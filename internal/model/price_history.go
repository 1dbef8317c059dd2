package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PriceHistory records every price change on a product. Rows are immutable —
// never updated or removed, even when the product itself is deleted.
type PriceHistory struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	SellingBefore decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	SellingAfter  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PurchaseBefore decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PurchaseAfter  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Reason        string          `gorm:"not null;default:'manual'"`
	CreatedAt     time.Time
}

// TableName overrides GORM's default pluralization (price_historys → price_history).
func (PriceHistory) TableName() string { return "price_history" }
