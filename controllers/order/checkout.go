package orderControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/IKA-Syrian/An-E-Commerce-Jewelry-Website-sub001/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CheckoutRequest struct {
	ShippingAddressID uint            `json:"shipping_address_id" binding:"required"`
	BillingAddressID  uint            `json:"billing_address_id" binding:"required"`
	ShippingMethod    string          `json:"shipping_method"`
	CustomerNotes     string          `json:"customer_notes"`
	PaymentMethod     string          `json:"payment_method"`
	ShippingCost      decimal.Decimal `json:"shipping_cost"`
	TaxAmount         decimal.Decimal `json:"tax_amount"`
}

type CheckoutResult struct {
	OrderID     uint               `json:"order_id"`
	OrderRef    string             `json:"order_ref"`
	Status      models.OrderStatus `json:"status"`
	TotalAmount decimal.Decimal    `json:"total_amount"`
	PaymentID   uint               `json:"payment_id"`
}

// Generate unique order reference, e.g. 20250908130500-<uuid4>
func generateOrderRef() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

// loadOwnedAddress resolves an address id and checks it belongs to the user.
func loadOwnedAddress(tx *gorm.DB, addressID uint, userID string) (*models.Address, error) {
	var addr models.Address
	if err := tx.First(&addr, "id = ?", addressID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAddressNotFound
		}
		return nil, err
	}
	if addr.UserID != userID {
		return nil, ErrAddressOwnershipMismatch
	}
	return &addr, nil
}

// Checkout converts the user's cart into an order, all-or-nothing.
//
// Inside one transaction it validates the cart and both addresses, checks and
// decrements stock, creates the Order with its items at the prices locked at
// add-to-cart time, deletes the checked-out cart lines, and opens a pending
// Payment. Any failure rolls the whole thing back; no partial state is ever
// visible.
func Checkout(db *gorm.DB, userID string, req CheckoutRequest) (*CheckoutResult, error) {
	var result CheckoutResult

	err := db.Transaction(func(tx *gorm.DB) error {
		var lines []models.CartItem
		if err := tx.Where("user_id = ?", userID).Find(&lines).Error; err != nil {
			return err
		}
		if len(lines) == 0 {
			return ErrEmptyCart
		}

		shipAddr, err := loadOwnedAddress(tx, req.ShippingAddressID, userID)
		if err != nil {
			return err
		}
		billAddr, err := loadOwnedAddress(tx, req.BillingAddressID, userID)
		if err != nil {
			return err
		}

		// First pass: validate every line so the error can name all
		// offending products at once.
		products := make(map[uint]models.Product, len(lines))
		var shortages []StockShortage
		for _, line := range lines {
			var product models.Product
			if err := tx.First(&product, "id = ?", line.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					shortages = append(shortages, StockShortage{
						ProductID: line.ProductID,
						Requested: line.Quantity,
						Available: 0,
					})
					continue
				}
				return err
			}
			if !product.IsActive || product.StockQuantity < line.Quantity {
				available := product.StockQuantity
				if !product.IsActive {
					available = 0
				}
				shortages = append(shortages, StockShortage{
					ProductID: product.ID,
					Name:      product.Name,
					Requested: line.Quantity,
					Available: available,
				})
				continue
			}
			products[line.ProductID] = product
		}
		if len(shortages) > 0 {
			return &InsufficientStockError{Shortages: shortages}
		}

		// Second pass: guarded decrement. The stock check is re-run inside
		// the UPDATE itself so concurrent checkouts cannot interleave into
		// negative stock.
		total := decimal.Zero
		orderItems := make([]models.OrderItem, 0, len(lines))
		cartIDs := make([]uint, 0, len(lines))
		for _, line := range lines {
			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock_quantity >= ?", line.ProductID, line.Quantity).
				UpdateColumn("stock_quantity", gorm.Expr("stock_quantity - ?", line.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				var current models.Product
				_ = tx.First(&current, "id = ?", line.ProductID).Error
				return &InsufficientStockError{Shortages: []StockShortage{{
					ProductID: line.ProductID,
					Name:      current.Name,
					Requested: line.Quantity,
					Available: current.StockQuantity,
				}}}
			}

			total = total.Add(line.PriceAtAddition.Mul(decimal.NewFromInt(int64(line.Quantity))))
			orderItems = append(orderItems, models.OrderItem{
				ProductID:       line.ProductID,
				ProductName:     products[line.ProductID].Name,
				Quantity:        line.Quantity,
				PriceAtPurchase: line.PriceAtAddition,
			})
			cartIDs = append(cartIDs, line.ID)
		}

		// Shipping and tax are pass-through inputs, never computed here.
		total = total.Add(req.ShippingCost).Add(req.TaxAmount).Round(2)

		order := models.Order{
			OrderRef:          generateOrderRef(),
			UserID:            userID,
			Items:             orderItems,
			Status:            models.OrderStatusPendingPayment,
			TotalAmount:       total,
			ShippingCost:      req.ShippingCost,
			TaxAmount:         req.TaxAmount,
			ShippingAddressID: shipAddr.ID,
			BillingAddressID:  billAddr.ID,
			ShippingAddress:   shipAddr.Snapshot(),
			BillingAddress:    billAddr.Snapshot(),
			ShippingMethod:    req.ShippingMethod,
			CustomerNotes:     req.CustomerNotes,
			OrderDate:         time.Now(),
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		// Remove exactly the lines this checkout consumed.
		if err := tx.Where("id IN ?", cartIDs).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}

		method := req.PaymentMethod
		if method == "" {
			method = "card"
		}
		payment := models.Payment{
			OrderID:       order.ID,
			Amount:        total,
			PaymentMethod: method,
			TransactionID: "sim-" + uuid.NewString(),
			Status:        models.PaymentStatusPending,
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}

		result = CheckoutResult{
			OrderID:     order.ID,
			OrderRef:    order.OrderRef,
			Status:      order.Status,
			TotalAmount: order.TotalAmount,
			PaymentID:   payment.ID,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	broadcastOrderStatus(result.OrderID, result.Status)
	return &result, nil
}

// POST /orders/checkout
func CheckoutHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		var req CheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		result, err := Checkout(db, userID, req)
		if err != nil {
			var stockErr *InsufficientStockError
			switch {
			case errors.Is(err, ErrEmptyCart):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			case errors.Is(err, ErrAddressNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			case errors.Is(err, ErrAddressOwnershipMismatch):
				c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			case errors.As(err, &stockErr):
				c.JSON(http.StatusConflict, gin.H{
					"error":     stockErr.Error(),
					"shortages": stockErr.Shortages,
				})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Checkout failed"})
			}
			return
		}
		c.JSON(http.StatusCreated, result)
	}
}
