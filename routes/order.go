package routes

import (
	orderControllers "github.com/IKA-Syrian/An-E-Commerce-Jewelry-Website-sub001/controllers/order"
	"github.com/IKA-Syrian/An-E-Commerce-Jewelry-Website-sub001/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupOrderRoutes(r *gin.Engine, db *gorm.DB) {
	orders := r.Group("/orders")
	{
		// websocket endpoint for real-time order status updates
		orders.GET("/ws", orderControllers.OrderWebSocketHandler)

		// Payment outcome seam (gateway webhook / simulator)
		orders.POST("/:orderID/payments/:paymentID/outcome", orderControllers.PaymentOutcomeHandler(db))

		// Open a fresh payment attempt after a failure
		orders.POST("/:orderID/payments/retry", orderControllers.RetryPaymentHandler(db))

		// Fetch orders for a specific user
		orders.GET("/user/:userID", middleware.ValidateToken, orderControllers.GetUserOrdersHandler(db))

		// Fetch a single order by id or order_ref
		orders.GET("/:orderID", orderControllers.GetOrderByIDHandler(db))
	}
}
