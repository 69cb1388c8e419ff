package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PricingMode string

const (
	PricingModeFixed      PricingMode = "fixed"       // BasePrice is the unit price
	PricingModeGoldWeight PricingMode = "gold_weight" // priced from the current gold snapshot
)

type Product struct {
	ID              uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	Name            string          `gorm:"not null" json:"name"`
	Description     string          `json:"description"`
	SKU             string          `gorm:"uniqueIndex;size:64" json:"sku"`
	BasePrice       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"base_price"`
	PricingMode     PricingMode     `gorm:"type:VARCHAR(20);default:'fixed'" json:"pricing_mode"`
	GoldWeightGrams decimal.Decimal `gorm:"type:decimal(10,3)" json:"gold_weight_grams"`
	StockQuantity   int             `gorm:"not null;default:0;check:stock_quantity >= 0" json:"stock_quantity"`
	IsActive        bool            `gorm:"default:true" json:"is_active"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	DeletedAt       gorm.DeletedAt  `gorm:"index" json:"-"`
}
