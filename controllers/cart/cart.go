package cartControllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	pricingControllers "github.com/IKA-Syrian/An-E-Commerce-Jewelry-Website-sub001/controllers/pricing"
	"github.com/IKA-Syrian/An-E-Commerce-Jewelry-Website-sub001/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var (
	ErrInvalidQuantity  = errors.New("quantity must be at least 1")
	ErrCartItemNotFound = errors.New("cart item not found")
)

// AddToCart inserts a cart line for (user, product), or bumps the quantity if
// one already exists. The unit price is resolved once, at first add, and
// stays fixed for the life of the line.
func AddToCart(db *gorm.DB, userID string, productID uint, quantity int, goldPriceID *uint) (*models.CartItem, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		var existing models.CartItem
		err := tx.Where("user_id = ? AND product_id = ?", userID, productID).First(&existing).Error
		if err == nil {
			return tx.Model(&existing).
				UpdateColumn("quantity", gorm.Expr("quantity + ?", quantity)).Error
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		price, snapshot, err := pricingControllers.ResolveUnitPrice(tx, productID, goldPriceID)
		if err != nil {
			return err
		}

		item := models.CartItem{
			UserID:          userID,
			ProductID:       productID,
			Quantity:        quantity,
			PriceAtAddition: price,
			AddedAt:         time.Now(),
		}
		if snapshot != nil {
			item.GoldPriceID = &snapshot.ID
		}
		if err := tx.Create(&item).Error; err != nil {
			// A concurrent add won the race on the (user, product) index;
			// fold this add into the existing row.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return tx.Model(&models.CartItem{}).
					Where("user_id = ? AND product_id = ?", userID, productID).
					UpdateColumn("quantity", gorm.Expr("quantity + ?", quantity)).Error
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var item models.CartItem
	if err := db.Where("user_id = ? AND product_id = ?", userID, productID).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateCartItem sets the quantity of an existing line. Quantities below 1
// are clamped to 1; removal goes through RemoveCartItem.
func UpdateCartItem(db *gorm.DB, userID string, productID uint, quantity int) (*models.CartItem, error) {
	if quantity < 1 {
		quantity = 1
	}

	result := db.Model(&models.CartItem{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Update("quantity", quantity)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrCartItemNotFound
	}

	var item models.CartItem
	if err := db.Where("user_id = ? AND product_id = ?", userID, productID).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// RemoveCartItem deletes the line for (user, product). Reports
// ErrCartItemNotFound when nothing was there to delete.
func RemoveCartItem(db *gorm.DB, userID string, productID uint) error {
	result := db.Where("user_id = ? AND product_id = ?", userID, productID).Delete(&models.CartItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

// ClearCart deletes every line the user has.
func ClearCart(db *gorm.DB, userID string) error {
	return db.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
}

// GetCart returns all of the user's cart lines.
func GetCart(db *gorm.DB, userID string) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := db.Where("user_id = ?", userID).Order("added_at").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// -------- Handlers --------

type CartItemInput struct {
	ProductID   uint  `json:"product_id" binding:"required"`
	Quantity    int   `json:"quantity" binding:"required,min=1"`
	GoldPriceID *uint `json:"gold_price_id"`
}

type CartQuantityInput struct {
	Quantity int `json:"quantity" binding:"required"`
}

func userIDFromContext(c *gin.Context) (string, bool) {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return userIDVal.(string), true
}

// POST /user/cart
func AddToCartHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDFromContext(c)
		if !ok {
			return
		}

		var input CartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		item, err := AddToCart(db, userID, input.ProductID, input.Quantity, input.GoldPriceID)
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidQuantity):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			case errors.Is(err, pricingControllers.ErrProductNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "Product does not exist"})
			case errors.Is(err, pricingControllers.ErrPriceUnavailable):
				c.JSON(http.StatusConflict, gin.H{"error": "No gold price snapshot available"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to cart"})
			}
			return
		}
		c.JSON(http.StatusCreated, item)
	}
}

// PUT /user/cart/:product_id
func UpdateCartItemHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDFromContext(c)
		if !ok {
			return
		}
		productID, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		var input CartQuantityInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		item, err := UpdateCartItem(db, userID, uint(productID), input.Quantity)
		if err != nil {
			if errors.Is(err, ErrCartItemNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart item"})
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

// DELETE /user/cart/:product_id
func DeleteCartItemHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDFromContext(c)
		if !ok {
			return
		}
		productID, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		if err := RemoveCartItem(db, userID, uint(productID)); err != nil {
			if errors.Is(err, ErrCartItemNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete item"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart item deleted"})
	}
}

// DELETE /user/cart
func ClearUserCartHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDFromContext(c)
		if !ok {
			return
		}
		if err := ClearCart(db, userID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
	}
}

// GET /user/cart
func GetUserCartHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDFromContext(c)
		if !ok {
			return
		}
		items, err := GetCart(db, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

// GET /admin/carts/:user_id
func GetAdminUserCartHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("user_id")
		if userID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
			return
		}
		items, err := GetCart(db, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		c.JSON(http.StatusOK, items)
	}
}
