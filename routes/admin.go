package routes

import (
	cartControllers "github.com/IKA-Syrian/An-E-Commerce-Jewelry-Website-sub001/controllers/cart"
	orderControllers "github.com/IKA-Syrian/An-E-Commerce-Jewelry-Website-sub001/controllers/order"
	pricingControllers "github.com/IKA-Syrian/An-E-Commerce-Jewelry-Website-sub001/controllers/pricing"
	productControllers "github.com/IKA-Syrian/An-E-Commerce-Jewelry-Website-sub001/controllers/product"
	"github.com/IKA-Syrian/An-E-Commerce-Jewelry-Website-sub001/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupAdminRoutes registers the API-key-protected back office.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB) {
	admin := r.Group("/admin")
	admin.Use(middleware.ValidateAPIKey)
	{
		// ──────────────── Products ────────────────
		admin.POST("/products", productControllers.CreateProduct(db))
		admin.PUT("/products/:id", productControllers.UpdateProduct(db))
		admin.DELETE("/products/:id", productControllers.DeleteProduct(db))

		// ──────────────── Gold Prices ────────────────
		admin.POST("/gold-prices", pricingControllers.RecordGoldPrice(db))

		// ──────────────── Orders ────────────────
		admin.GET("/orders", orderControllers.GetAllOrdersHandler(db))
		admin.GET("/orders/export", orderControllers.ExportOrdersToExcel(db))
		admin.PUT("/orders/:orderID/status", orderControllers.UpdateOrderStatusHandler(db))
		admin.POST("/orders/:orderID/cancel", orderControllers.CancelOrderHandler(db))

		// ──────────────── Carts ────────────────
		admin.GET("/carts/:user_id", cartControllers.GetAdminUserCartHandler(db))
	}
}
