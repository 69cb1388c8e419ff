package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItem holds one cart line per (user, product) pair. The unique index is
// what keeps concurrent adds from producing duplicate rows.
type CartItem struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	UserID          string          `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"user_id"`
	ProductID       uint            `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"product_id"`
	Quantity        int             `gorm:"not null" json:"quantity"`
	PriceAtAddition decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price_at_addition"`
	GoldPriceID     *uint           `json:"gold_price_id,omitempty"`
	GoldPrice       *GoldPrice      `gorm:"foreignKey:GoldPriceID" json:"gold_price,omitempty"`
	AddedAt         time.Time       `json:"added_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
