package orderControllers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/IKA-Syrian/An-E-Commerce-Jewelry-Website-sub001/models"
)

var (
	ErrEmptyCart                = errors.New("cart is empty")
	ErrOrderNotFound            = errors.New("order not found")
	ErrPaymentNotFound          = errors.New("payment not found")
	ErrAddressNotFound          = errors.New("address not found")
	ErrAddressOwnershipMismatch = errors.New("address does not belong to this user")
	ErrTrackingNumberRequired   = errors.New("tracking number is required before shipping")
	ErrNoSucceededPayment       = errors.New("order has no succeeded payment to refund")
	ErrInvalidPaymentOutcome    = errors.New("payment outcome must be succeeded or failed")
)

// StockShortage names one cart line that cannot be fulfilled.
type StockShortage struct {
	ProductID uint   `json:"product_id"`
	Name      string `json:"name,omitempty"`
	Requested int    `json:"requested"`
	Available int    `json:"available"`
}

// InsufficientStockError reports every offending line, not just the first.
type InsufficientStockError struct {
	Shortages []StockShortage
}

func (e *InsufficientStockError) Error() string {
	ids := make([]string, 0, len(e.Shortages))
	for _, s := range e.Shortages {
		ids = append(ids, fmt.Sprintf("%d", s.ProductID))
	}
	return "insufficient stock for product(s): " + strings.Join(ids, ", ")
}

// InvalidTransitionError names the current and requested states so the caller
// can tell a stale request from a bad one.
type InvalidTransitionError struct {
	Current   models.OrderStatus
	Requested models.OrderStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid order status transition: %s -> %s", e.Current, e.Requested)
}
