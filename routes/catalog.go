package routes

import (
	pricingControllers "github.com/IKA-Syrian/An-E-Commerce-Jewelry-Website-sub001/controllers/pricing"
	productControllers "github.com/IKA-Syrian/An-E-Commerce-Jewelry-Website-sub001/controllers/product"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupCatalogRoutes(r *gin.Engine, db *gorm.DB) {
	r.GET("/products", productControllers.GetProducts(db))
	r.GET("/products/:id", productControllers.GetProductByID(db))
	r.GET("/products/:id/quote", pricingControllers.QuoteProductPrice(db))
	r.GET("/gold-prices/latest", pricingControllers.GetLatestGoldPrice(db))
}
