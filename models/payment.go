package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"   // created at checkout, outcome unknown
	PaymentStatusSucceeded PaymentStatus = "succeeded" // gateway confirmed the charge
	PaymentStatusFailed    PaymentStatus = "failed"    // charge declined; retries create new rows
	PaymentStatusRefunded  PaymentStatus = "refunded"  // money returned to customer
)

// Payment records one payment attempt against an order. Failed attempts are
// kept; a retry inserts a fresh pending row rather than mutating the old one.
type Payment struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	OrderID       uint            `gorm:"index;not null" json:"order_id"`
	Amount        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	PaymentMethod string          `gorm:"size:32" json:"payment_method"`
	TransactionID string          `gorm:"uniqueIndex;size:64;not null" json:"transaction_id"`
	Status        PaymentStatus   `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
