package pricingControllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/IKA-Syrian/An-E-Commerce-Jewelry-Website-sub001/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrPriceUnavailable = errors.New("no gold price snapshot available")
)

// ResolveUnitPrice resolves the unit price to freeze into a cart line.
// Fixed-price products charge BasePrice. Gold-weight products charge
// price-per-gram times weight plus BasePrice as the making charge, against
// the snapshot identified by goldPriceID, or the latest one when nil.
// Pure read; never writes.
func ResolveUnitPrice(db *gorm.DB, productID uint, goldPriceID *uint) (decimal.Decimal, *models.GoldPrice, error) {
	var product models.Product
	if err := db.First(&product, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, nil, ErrProductNotFound
		}
		return decimal.Zero, nil, err
	}

	if product.PricingMode != models.PricingModeGoldWeight {
		return product.BasePrice.Round(2), nil, nil
	}

	var snapshot models.GoldPrice
	if goldPriceID != nil {
		if err := db.First(&snapshot, "id = ?", *goldPriceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return decimal.Zero, nil, ErrPriceUnavailable
			}
			return decimal.Zero, nil, err
		}
	} else {
		if err := db.Order("recorded_at DESC").First(&snapshot).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return decimal.Zero, nil, ErrPriceUnavailable
			}
			return decimal.Zero, nil, err
		}
	}

	price := snapshot.PricePerGram.
		Mul(product.GoldWeightGrams).
		Add(product.BasePrice).
		Round(2)
	return price, &snapshot, nil
}

type RecordGoldPriceInput struct {
	PricePerGram decimal.Decimal `json:"price_per_gram" binding:"required"`
	Source       string          `json:"source"`
}

// POST /admin/gold-prices
func RecordGoldPrice(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input RecordGoldPriceInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if input.PricePerGram.LessThanOrEqual(decimal.Zero) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "price_per_gram must be positive"})
			return
		}

		snapshot := models.GoldPrice{
			PricePerGram: input.PricePerGram.Round(2),
			Source:       input.Source,
			RecordedAt:   time.Now(),
		}
		if err := db.Create(&snapshot).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record gold price"})
			return
		}
		c.JSON(http.StatusCreated, snapshot)
	}
}

// GET /gold-prices/latest
func GetLatestGoldPrice(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var snapshot models.GoldPrice
		if err := db.Order("recorded_at DESC").First(&snapshot).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "No gold price recorded yet"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch gold price"})
			return
		}
		c.JSON(http.StatusOK, snapshot)
	}
}

// GET /products/:id/quote — what a unit would cost right now, without
// touching the cart. Useful for display next to gold-weight items.
func QuoteProductPrice(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		price, snapshot, err := ResolveUnitPrice(db, uint(id), nil)
		if err != nil {
			switch {
			case errors.Is(err, ErrProductNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			case errors.Is(err, ErrPriceUnavailable):
				c.JSON(http.StatusConflict, gin.H{"error": "No gold price snapshot available"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve price"})
			}
			return
		}

		resp := gin.H{"product_id": id, "unit_price": price}
		if snapshot != nil {
			resp["gold_price_id"] = snapshot.ID
		}
		c.JSON(http.StatusOK, resp)
	}
}
