package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// GoldPrice is an immutable reference-price snapshot. Rows are only ever
// inserted; cart lines and pricing reference them by id.
type GoldPrice struct {
	ID           uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	PricePerGram decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price_per_gram"`
	Source       string          `gorm:"size:64" json:"source"`
	RecordedAt   time.Time       `gorm:"index;not null" json:"recorded_at"`
}
