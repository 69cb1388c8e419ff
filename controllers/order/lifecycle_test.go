package orderControllers

import (
	"testing"

	"github.com/IKA-Syrian/An-E-Commerce-Jewelry-Website-sub001/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// placeOrder runs a full checkout and returns the ids the lifecycle tests need.
func placeOrder(t *testing.T, db *gorm.DB, userID string, product models.Product, qty int) *CheckoutResult {
	t.Helper()
	addr := seedUserWithAddress(t, db, userID)
	addCartLine(t, db, userID, product, qty)
	result, err := Checkout(db, userID, CheckoutRequest{
		ShippingAddressID: addr.ID,
		BillingAddressID:  addr.ID,
		PaymentMethod:     "card",
	})
	require.NoError(t, err)
	return result
}

func orderStatus(t *testing.T, db *gorm.DB, orderID uint) models.OrderStatus {
	t.Helper()
	var order models.Order
	require.NoError(t, db.First(&order, orderID).Error)
	return order.Status
}

func TestRecordPaymentOutcome_SucceededMovesToProcessing(t *testing.T) {
	db := setupTestDB(t)
	ring := seedProduct(t, db, "Ring", 150, 10)
	placed := placeOrder(t, db, "user-1", ring, 1)

	status, err := RecordPaymentOutcome(db, placed.OrderID, placed.PaymentID, models.PaymentStatusSucceeded)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusProcessing, status)
	assert.Equal(t, models.OrderStatusProcessing, orderStatus(t, db, placed.OrderID))

	var payment models.Payment
	require.NoError(t, db.First(&payment, placed.PaymentID).Error)
	assert.Equal(t, models.PaymentStatusSucceeded, payment.Status)
}

func TestRecordPaymentOutcome_FailedLeavesPendingPayment(t *testing.T) {
	db := setupTestDB(t)
	ring := seedProduct(t, db, "Ring", 150, 10)
	placed := placeOrder(t, db, "user-1", ring, 1)

	status, err := RecordPaymentOutcome(db, placed.OrderID, placed.PaymentID, models.PaymentStatusFailed)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPendingPayment, status)
	assert.Equal(t, models.OrderStatusPendingPayment, orderStatus(t, db, placed.OrderID))
}

func TestRecordPaymentOutcome_Errors(t *testing.T) {
	db := setupTestDB(t)
	ring := seedProduct(t, db, "Ring", 150, 10)
	placed := placeOrder(t, db, "user-1", ring, 1)

	_, err := RecordPaymentOutcome(db, 9999, placed.PaymentID, models.PaymentStatusSucceeded)
	assert.ErrorIs(t, err, ErrOrderNotFound)

	_, err = RecordPaymentOutcome(db, placed.OrderID, 9999, models.PaymentStatusSucceeded)
	assert.ErrorIs(t, err, ErrPaymentNotFound)

	_, err = RecordPaymentOutcome(db, placed.OrderID, placed.PaymentID, models.PaymentStatusRefunded)
	assert.ErrorIs(t, err, ErrInvalidPaymentOutcome)
}

func TestRetryPayment_NewPendingRowAfterFailure(t *testing.T) {
	db := setupTestDB(t)
	ring := seedProduct(t, db, "Ring", 150, 10)
	placed := placeOrder(t, db, "user-1", ring, 1)

	_, err := RecordPaymentOutcome(db, placed.OrderID, placed.PaymentID, models.PaymentStatusFailed)
	require.NoError(t, err)

	retry, err := RetryPayment(db, placed.OrderID, "wallet")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPending, retry.Status)
	assert.NotEqual(t, placed.PaymentID, retry.ID)
	assert.True(t, retry.Amount.Equal(placed.TotalAmount))

	// The failed attempt stays on record.
	var payments []models.Payment
	require.NoError(t, db.Where("order_id = ?", placed.OrderID).Find(&payments).Error)
	assert.Len(t, payments, 2)
}

func TestTransition_ShippedRequiresTracking(t *testing.T) {
	db := setupTestDB(t)
	ring := seedProduct(t, db, "Ring", 150, 10)
	placed := placeOrder(t, db, "user-1", ring, 1)
	_, err := RecordPaymentOutcome(db, placed.OrderID, placed.PaymentID, models.PaymentStatusSucceeded)
	require.NoError(t, err)

	_, err = TransitionOrderStatus(db, placed.OrderID, models.OrderStatusShipped, "")
	assert.ErrorIs(t, err, ErrTrackingNumberRequired)

	status, err := TransitionOrderStatus(db, placed.OrderID, models.OrderStatusShipped, "TRK-001")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusShipped, status)

	var order models.Order
	require.NoError(t, db.First(&order, placed.OrderID).Error)
	assert.Equal(t, "TRK-001", order.TrackingNumber)

	status, err = TransitionOrderStatus(db, placed.OrderID, models.OrderStatusDelivered, "")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusDelivered, status)
}

func TestTransition_InvalidNamesBothStates(t *testing.T) {
	db := setupTestDB(t)
	ring := seedProduct(t, db, "Ring", 150, 10)
	placed := placeOrder(t, db, "user-1", ring, 1)

	// pending_payment cannot jump straight to delivered
	_, err := TransitionOrderStatus(db, placed.OrderID, models.OrderStatusDelivered, "")
	var transitionErr *InvalidTransitionError
	require.ErrorAs(t, err, &transitionErr)
	assert.Equal(t, models.OrderStatusPendingPayment, transitionErr.Current)
	assert.Equal(t, models.OrderStatusDelivered, transitionErr.Requested)
	assert.Equal(t, models.OrderStatusPendingPayment, orderStatus(t, db, placed.OrderID))
}

func TestTransition_RefundRequiresSucceededPayment(t *testing.T) {
	db := setupTestDB(t)
	ring := seedProduct(t, db, "Ring", 150, 10)
	placed := placeOrder(t, db, "user-1", ring, 1)

	_, err := TransitionOrderStatus(db, placed.OrderID, models.OrderStatusRefunded, "")
	assert.ErrorIs(t, err, ErrNoSucceededPayment)

	_, err = RecordPaymentOutcome(db, placed.OrderID, placed.PaymentID, models.PaymentStatusSucceeded)
	require.NoError(t, err)

	status, err := TransitionOrderStatus(db, placed.OrderID, models.OrderStatusRefunded, "")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusRefunded, status)

	var payment models.Payment
	require.NoError(t, db.First(&payment, placed.PaymentID).Error)
	assert.Equal(t, models.PaymentStatusRefunded, payment.Status)
}

func TestCancelOrder_RestoresStockOnce(t *testing.T) {
	db := setupTestDB(t)
	pendant := seedProduct(t, db, "Pendant", 75, 9)
	placed := placeOrder(t, db, "user-1", pendant, 2)
	_, err := RecordPaymentOutcome(db, placed.OrderID, placed.PaymentID, models.PaymentStatusSucceeded)
	require.NoError(t, err)

	var got models.Product
	require.NoError(t, db.First(&got, pendant.ID).Error)
	require.Equal(t, 7, got.StockQuantity)

	result, err := CancelOrder(db, placed.OrderID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, result.Status)
	require.Len(t, result.RestoredStock, 1)
	assert.Equal(t, pendant.ID, result.RestoredStock[0].ProductID)
	assert.Equal(t, 2, result.RestoredStock[0].Quantity)

	require.NoError(t, db.First(&got, pendant.ID).Error)
	assert.Equal(t, 9, got.StockQuantity)

	// A second cancel hits a terminal state and must not restore again.
	_, err = CancelOrder(db, placed.OrderID)
	var transitionErr *InvalidTransitionError
	require.ErrorAs(t, err, &transitionErr)
	assert.Equal(t, models.OrderStatusCancelled, transitionErr.Current)

	require.NoError(t, db.First(&got, pendant.ID).Error)
	assert.Equal(t, 9, got.StockQuantity)
}

func TestCancelOrder_NotAllowedAfterShipping(t *testing.T) {
	db := setupTestDB(t)
	ring := seedProduct(t, db, "Ring", 150, 10)
	placed := placeOrder(t, db, "user-1", ring, 1)
	_, err := RecordPaymentOutcome(db, placed.OrderID, placed.PaymentID, models.PaymentStatusSucceeded)
	require.NoError(t, err)
	_, err = TransitionOrderStatus(db, placed.OrderID, models.OrderStatusShipped, "TRK-002")
	require.NoError(t, err)

	_, err = CancelOrder(db, placed.OrderID)
	var transitionErr *InvalidTransitionError
	require.ErrorAs(t, err, &transitionErr)
	assert.Equal(t, models.OrderStatusShipped, transitionErr.Current)
	assert.Equal(t, models.OrderStatusCancelled, transitionErr.Requested)
}

func TestTransitionViaCancelledTargetRestoresStock(t *testing.T) {
	db := setupTestDB(t)
	ring := seedProduct(t, db, "Ring", 150, 5)
	placed := placeOrder(t, db, "user-1", ring, 3)

	status, err := TransitionOrderStatus(db, placed.OrderID, models.OrderStatusCancelled, "")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, status)

	var got models.Product
	require.NoError(t, db.First(&got, ring.ID).Error)
	assert.Equal(t, 5, got.StockQuantity)
}

func TestStockLedgerInvariantAcrossCheckoutsAndCancels(t *testing.T) {
	db := setupTestDB(t)
	stone := seedProduct(t, db, "Stone", 10, 10)

	first := placeOrder(t, db, "user-1", stone, 4)
	second := placeOrder(t, db, "user-2", stone, 3)

	_, err := CancelOrder(db, first.OrderID)
	require.NoError(t, err)

	// initial 10 - 3 (only the non-cancelled order's quantity)
	var got models.Product
	require.NoError(t, db.First(&got, stone.ID).Error)
	assert.Equal(t, 7, got.StockQuantity)

	var payment models.Payment
	require.NoError(t, db.First(&payment, "order_id = ?", second.OrderID).Error)
	assert.True(t, payment.Amount.Equal(decimal.NewFromInt(30)))
}
