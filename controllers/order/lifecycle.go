package orderControllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/IKA-Syrian/An-E-Commerce-Jewelry-Website-sub001/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// -------- Request Structs --------

type PaymentOutcomeRequest struct {
	Outcome string `json:"outcome" binding:"required"` // "succeeded" or "failed"
}

type UpdateOrderStatusRequest struct {
	Status         string `json:"status" binding:"required"`
	TrackingNumber string `json:"tracking_number"`
}

type RetryPaymentRequest struct {
	PaymentMethod string `json:"payment_method"`
}

func mapOrderStatus(status string) (models.OrderStatus, error) {
	s := models.OrderStatus(strings.ToLower(status))
	if !s.IsValid() {
		return "", errors.New("invalid order status: " + status)
	}
	return s, nil
}

// -------- Core Logic --------

// RecordPaymentOutcome applies a gateway outcome to one payment attempt.
// A succeeded payment moves a pending_payment order to processing (stock was
// already taken at checkout). A failed payment leaves the order where it is
// so the customer can retry.
func RecordPaymentOutcome(db *gorm.DB, orderID, paymentID uint, outcome models.PaymentStatus) (models.OrderStatus, error) {
	if outcome != models.PaymentStatusSucceeded && outcome != models.PaymentStatusFailed {
		return "", ErrInvalidPaymentOutcome
	}

	var status models.OrderStatus
	err := db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, "id = ?", orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}

		var payment models.Payment
		if err := tx.First(&payment, "id = ? AND order_id = ?", paymentID, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPaymentNotFound
			}
			return err
		}

		if err := tx.Model(&payment).Update("status", outcome).Error; err != nil {
			return err
		}

		status = order.Status
		if outcome == models.PaymentStatusSucceeded && order.Status == models.OrderStatusPendingPayment {
			if err := tx.Model(&order).Update("status", models.OrderStatusProcessing).Error; err != nil {
				return err
			}
			status = models.OrderStatusProcessing
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	broadcastOrderStatus(orderID, status)
	return status, nil
}

// RetryPayment opens a fresh pending payment attempt on an order that is
// still awaiting payment. The failed rows stay on record.
func RetryPayment(db *gorm.DB, orderID uint, method string) (*models.Payment, error) {
	var payment models.Payment
	err := db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, "id = ?", orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}
		if order.Status != models.OrderStatusPendingPayment {
			return &InvalidTransitionError{Current: order.Status, Requested: models.OrderStatusPendingPayment}
		}

		if method == "" {
			method = "card"
		}
		payment = models.Payment{
			OrderID:       order.ID,
			Amount:        order.TotalAmount,
			PaymentMethod: method,
			TransactionID: "sim-" + uuid.NewString(),
			Status:        models.PaymentStatusPending,
		}
		return tx.Create(&payment).Error
	})
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// TransitionOrderStatus drives the fulfillment side of the state machine.
// Cancellation routes through CancelOrder so stock restoration always
// happens with the status flip.
func TransitionOrderStatus(db *gorm.DB, orderID uint, target models.OrderStatus, trackingNumber string) (models.OrderStatus, error) {
	if target == models.OrderStatusCancelled {
		result, err := CancelOrder(db, orderID)
		if err != nil {
			return "", err
		}
		return result.Status, nil
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, "id = ?", orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}

		if !order.Status.CanTransitionTo(target) {
			return &InvalidTransitionError{Current: order.Status, Requested: target}
		}

		updates := map[string]any{"status": target}

		switch target {
		case models.OrderStatusShipped:
			if trackingNumber != "" {
				updates["tracking_number"] = trackingNumber
			} else if order.TrackingNumber == "" {
				return ErrTrackingNumberRequired
			}
		case models.OrderStatusRefunded:
			// Refunds only make sense once money actually moved.
			var succeeded models.Payment
			err := tx.First(&succeeded, "order_id = ? AND status = ?", orderID, models.PaymentStatusSucceeded).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNoSucceededPayment
			}
			if err != nil {
				return err
			}
			if err := tx.Model(&succeeded).Update("status", models.PaymentStatusRefunded).Error; err != nil {
				return err
			}
		}

		// Guard on the current status so a concurrent transition loses
		// cleanly instead of double-applying.
		res := tx.Model(&models.Order{}).
			Where("id = ? AND status = ?", orderID, order.Status).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return &InvalidTransitionError{Current: order.Status, Requested: target}
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	broadcastOrderStatus(orderID, target)
	return target, nil
}

// StockRestoration reports one product whose stock a cancellation returned.
type StockRestoration struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

type CancelResult struct {
	Status        models.OrderStatus `json:"status"`
	RestoredStock []StockRestoration `json:"restored_stock"`
}

// CancelOrder cancels an order still in pending_payment or processing and
// puts the consumed stock back, in the same transaction as the status flip.
func CancelOrder(db *gorm.DB, orderID uint) (*CancelResult, error) {
	var result CancelResult

	err := db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.Preload("Items").First(&order, "id = ?", orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}

		if !order.Status.CanTransitionTo(models.OrderStatusCancelled) {
			return &InvalidTransitionError{Current: order.Status, Requested: models.OrderStatusCancelled}
		}

		// Flip status first, guarded on the state we read, so two racing
		// cancels cannot both restore stock.
		res := tx.Model(&models.Order{}).
			Where("id = ? AND status = ?", orderID, order.Status).
			Update("status", models.OrderStatusCancelled)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return &InvalidTransitionError{Current: order.Status, Requested: models.OrderStatusCancelled}
		}

		restored := make([]StockRestoration, 0, len(order.Items))
		for _, item := range order.Items {
			if err := tx.Model(&models.Product{}).
				Where("id = ?", item.ProductID).
				UpdateColumn("stock_quantity", gorm.Expr("stock_quantity + ?", item.Quantity)).Error; err != nil {
				return err
			}
			restored = append(restored, StockRestoration{ProductID: item.ProductID, Quantity: item.Quantity})
		}

		result = CancelResult{Status: models.OrderStatusCancelled, RestoredStock: restored}
		return nil
	})
	if err != nil {
		return nil, err
	}

	broadcastOrderStatus(orderID, result.Status)
	return &result, nil
}

// -------- Handlers --------

func parseOrderID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("orderID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return 0, false
	}
	return uint(id), true
}

func respondLifecycleError(c *gin.Context, err error) {
	var transitionErr *InvalidTransitionError
	switch {
	case errors.Is(err, ErrOrderNotFound), errors.Is(err, ErrPaymentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ErrInvalidPaymentOutcome), errors.Is(err, ErrTrackingNumberRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, ErrNoSucceededPayment):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &transitionErr):
		c.JSON(http.StatusConflict, gin.H{
			"error":            transitionErr.Error(),
			"current_status":   transitionErr.Current,
			"requested_status": transitionErr.Requested,
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Operation failed"})
	}
}

// POST /orders/:orderID/payments/:paymentID/outcome
// This is the seam a real gateway webhook would call; payments here are
// simulated records only.
func PaymentOutcomeHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, ok := parseOrderID(c)
		if !ok {
			return
		}
		paymentID, err := strconv.ParseUint(c.Param("paymentID"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payment ID"})
			return
		}

		var req PaymentOutcomeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		status, err := RecordPaymentOutcome(db, orderID, uint(paymentID),
			models.PaymentStatus(strings.ToLower(req.Outcome)))
		if err != nil {
			respondLifecycleError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"order_status": status})
	}
}

// POST /orders/:orderID/payments/retry
func RetryPaymentHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, ok := parseOrderID(c)
		if !ok {
			return
		}
		var req RetryPaymentRequest
		_ = c.ShouldBindJSON(&req)

		payment, err := RetryPayment(db, orderID, req.PaymentMethod)
		if err != nil {
			respondLifecycleError(c, err)
			return
		}
		c.JSON(http.StatusCreated, payment)
	}
}

// PUT /orders/:orderID/status
func UpdateOrderStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, ok := parseOrderID(c)
		if !ok {
			return
		}
		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		target, err := mapOrderStatus(req.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		status, err := TransitionOrderStatus(db, orderID, target, req.TrackingNumber)
		if err != nil {
			respondLifecycleError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"order_status": status})
	}
}

// POST /orders/:orderID/cancel
func CancelOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, ok := parseOrderID(c)
		if !ok {
			return
		}
		result, err := CancelOrder(db, orderID)
		if err != nil {
			respondLifecycleError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}
