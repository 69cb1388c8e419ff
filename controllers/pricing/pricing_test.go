package pricingControllers

import (
	"testing"
	"time"

	"github.com/IKA-Syrian/An-E-Commerce-Jewelry-Website-sub001/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Product{}, &models.GoldPrice{}))
	return db
}

func TestResolveUnitPrice_FixedMode(t *testing.T) {
	db := setupTestDB(t)
	product := models.Product{
		Name:        "Silver Band",
		SKU:         "SB-001",
		BasePrice:   decimal.NewFromFloat(149.99),
		PricingMode: models.PricingModeFixed,
		IsActive:    true,
	}
	require.NoError(t, db.Create(&product).Error)

	price, snapshot, err := ResolveUnitPrice(db, product.ID, nil)
	require.NoError(t, err)
	assert.Nil(t, snapshot)
	assert.True(t, price.Equal(decimal.NewFromFloat(149.99)), "got %s", price)
}

func TestResolveUnitPrice_GoldWeightUsesLatestSnapshot(t *testing.T) {
	db := setupTestDB(t)
	product := models.Product{
		Name:            "Gold Chain",
		SKU:             "GC-001",
		BasePrice:       decimal.NewFromInt(50), // making charge
		PricingMode:     models.PricingModeGoldWeight,
		GoldWeightGrams: decimal.NewFromFloat(10.5),
		IsActive:        true,
	}
	require.NoError(t, db.Create(&product).Error)

	old := models.GoldPrice{PricePerGram: decimal.NewFromInt(60), RecordedAt: time.Now().Add(-time.Hour)}
	latest := models.GoldPrice{PricePerGram: decimal.NewFromInt(70), RecordedAt: time.Now()}
	require.NoError(t, db.Create(&old).Error)
	require.NoError(t, db.Create(&latest).Error)

	price, snapshot, err := ResolveUnitPrice(db, product.ID, nil)
	require.NoError(t, err)
	require.NotNil(t, snapshot)
	assert.Equal(t, latest.ID, snapshot.ID)
	// 70 * 10.5 + 50 = 785.00
	assert.True(t, price.Equal(decimal.NewFromInt(785)), "got %s", price)
}

func TestResolveUnitPrice_GoldWeightSpecificSnapshot(t *testing.T) {
	db := setupTestDB(t)
	product := models.Product{
		Name:            "Gold Ring",
		SKU:             "GR-001",
		BasePrice:       decimal.NewFromInt(30),
		PricingMode:     models.PricingModeGoldWeight,
		GoldWeightGrams: decimal.NewFromInt(4),
		IsActive:        true,
	}
	require.NoError(t, db.Create(&product).Error)

	pinned := models.GoldPrice{PricePerGram: decimal.NewFromInt(55), RecordedAt: time.Now().Add(-2 * time.Hour)}
	require.NoError(t, db.Create(&pinned).Error)
	require.NoError(t, db.Create(&models.GoldPrice{PricePerGram: decimal.NewFromInt(90), RecordedAt: time.Now()}).Error)

	price, snapshot, err := ResolveUnitPrice(db, product.ID, &pinned.ID)
	require.NoError(t, err)
	require.NotNil(t, snapshot)
	assert.Equal(t, pinned.ID, snapshot.ID)
	// 55 * 4 + 30 = 250.00
	assert.True(t, price.Equal(decimal.NewFromInt(250)), "got %s", price)
}

func TestResolveUnitPrice_ProductNotFound(t *testing.T) {
	db := setupTestDB(t)
	_, _, err := ResolveUnitPrice(db, 9999, nil)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestResolveUnitPrice_NoSnapshotAvailable(t *testing.T) {
	db := setupTestDB(t)
	product := models.Product{
		Name:            "Gold Pendant",
		SKU:             "GP-001",
		BasePrice:       decimal.NewFromInt(20),
		PricingMode:     models.PricingModeGoldWeight,
		GoldWeightGrams: decimal.NewFromInt(3),
		IsActive:        true,
	}
	require.NoError(t, db.Create(&product).Error)

	_, _, err := ResolveUnitPrice(db, product.ID, nil)
	assert.ErrorIs(t, err, ErrPriceUnavailable)

	missing := uint(424242)
	_, _, err = ResolveUnitPrice(db, product.ID, &missing)
	assert.ErrorIs(t, err, ErrPriceUnavailable)
}
