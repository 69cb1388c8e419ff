package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	// Order statuses (checkout places the order in pending_payment)
	OrderStatusPendingPayment OrderStatus = "pending_payment" // awaiting a successful payment
	OrderStatusProcessing     OrderStatus = "processing"      // paid, being prepared
	OrderStatusShipped        OrderStatus = "shipped"         // handed to the carrier
	OrderStatusDelivered      OrderStatus = "delivered"       // customer received the item
	OrderStatusCancelled      OrderStatus = "cancelled"       // cancelled before shipping, stock restored
	OrderStatusRefunded       OrderStatus = "refunded"        // money returned after a successful payment
)

// orderTransitions is the full state machine. Refunds additionally require a
// succeeded payment on the order; that check lives with the transition logic.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPendingPayment: {OrderStatusProcessing, OrderStatusCancelled, OrderStatusRefunded},
	OrderStatusProcessing:     {OrderStatusShipped, OrderStatusCancelled, OrderStatusRefunded},
	OrderStatusShipped:        {OrderStatusDelivered, OrderStatusRefunded},
	OrderStatusDelivered:      {},
	OrderStatusCancelled:      {},
	OrderStatusRefunded:       {},
}

func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	for _, next := range orderTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

func (s OrderStatus) IsTerminal() bool {
	return len(orderTransitions[s]) == 0
}

func (s OrderStatus) IsValid() bool {
	_, ok := orderTransitions[s]
	return ok
}

type Order struct {
	ID                uint            `gorm:"primaryKey" json:"id"`
	OrderRef          string          `gorm:"uniqueIndex;size:64;not null" json:"order_ref"`
	UserID            string          `gorm:"not null;index" json:"user_id"`
	User              User            `gorm:"foreignKey:UserID" json:"user"`
	Items             []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	Payments          []Payment       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"payments"`
	Status            OrderStatus     `gorm:"type:VARCHAR(20);default:'pending_payment'" json:"status"`
	TotalAmount       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	ShippingCost      decimal.Decimal `gorm:"type:decimal(10,2)" json:"shipping_cost"`
	TaxAmount         decimal.Decimal `gorm:"type:decimal(10,2)" json:"tax_amount"`
	ShippingAddressID uint            `gorm:"not null" json:"shipping_address_id"`
	BillingAddressID  uint            `gorm:"not null" json:"billing_address_id"`
	ShippingAddress   AddressSnapshot `gorm:"embedded;embeddedPrefix:ship_" json:"shipping_address"`
	BillingAddress    AddressSnapshot `gorm:"embedded;embeddedPrefix:bill_" json:"billing_address"`
	ShippingMethod    string          `gorm:"size:32" json:"shipping_method"`
	TrackingNumber    string          `gorm:"size:64" json:"tracking_number"`
	CustomerNotes     string          `json:"customer_notes"`
	OrderDate         time.Time       `gorm:"not null" json:"order_date"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// OrderItem freezes the unit price agreed at add-to-cart time. It is never
// re-priced from the product after creation.
type OrderItem struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	OrderID         uint            `gorm:"index" json:"order_id"`
	ProductID       uint            `gorm:"not null" json:"product_id"`
	Product         Product         `gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT" json:"product"`
	ProductName     string          `json:"product_name"`
	Quantity        int             `gorm:"not null" json:"quantity"`
	PriceAtPurchase decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price_at_purchase"`
}
