package routes

import (
	cartControllers "github.com/IKA-Syrian/An-E-Commerce-Jewelry-Website-sub001/controllers/cart"
	orderControllers "github.com/IKA-Syrian/An-E-Commerce-Jewelry-Website-sub001/controllers/order"
	"github.com/IKA-Syrian/An-E-Commerce-Jewelry-Website-sub001/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupUserRoutes registers all "/user/*" endpoints. Requires JWT middleware.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB) {
	userGroup := r.Group("/user")
	userGroup.Use(middleware.ValidateToken)
	{
		// ──────────────── Shopping Cart ────────────────
		cartGroup := userGroup.Group("/cart")
		{
			cartGroup.GET("/", cartControllers.GetUserCartHandler(db))                  // GET /user/cart
			cartGroup.POST("/", cartControllers.AddToCartHandler(db))                   // POST /user/cart
			cartGroup.PUT("/:product_id", cartControllers.UpdateCartItemHandler(db))    // PUT /user/cart/:product_id
			cartGroup.DELETE("/:product_id", cartControllers.DeleteCartItemHandler(db)) // DELETE /user/cart/:product_id
			cartGroup.DELETE("/", cartControllers.ClearUserCartHandler(db))             // DELETE /user/cart
		}

		// ──────────────── Checkout ────────────────
		userGroup.POST("/checkout", orderControllers.CheckoutHandler(db)) // POST /user/checkout
	}
}
