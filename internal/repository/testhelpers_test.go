package repository

import (
	"strings"
	"testing"
	"time"

	"github.com/duomart-next/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := "file:" + name + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{DisableForeignKeyConstraintWhenMigrating: true})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func createTestProduct(t *testing.T, db *gorm.DB, slug string, categoryID uint, minPrice int64, active bool) *models.Product {
	t.Helper()
	product := &models.Product{
		CategoryID:         categoryID,
		Slug:               slug,
		TitleJSON:          models.JSON{"zh-CN": slug, "en-US": slug},
		PriceCurrency:      "CNY",
		IsActive:           active,
		BaseMinPrice:       models.NewMoneyFromInt(minPrice),
		BaseMaxPrice:       models.NewMoneyFromInt(minPrice),
		CalculatedMinPrice: models.NewMoneyFromInt(minPrice),
		CalculatedMaxPrice: models.NewMoneyFromInt(minPrice),
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func createTestStrategy(t *testing.T, db *gorm.DB, productID uint, base int64, primary bool, createdAt time.Time) *models.PricingStrategy {
	t.Helper()
	strategy := &models.PricingStrategy{
		ProductID:         productID,
		PriceUnit:         "piece",
		ConversionRate:    decimal.NewFromInt(1),
		BasePriceAmount:   models.NewMoneyFromInt(base),
		FinalPriceAmount:  models.NewMoneyFromInt(base),
		MinEffectivePrice: models.NewMoneyFromInt(base),
		MaxEffectivePrice: models.NewMoneyFromInt(base),
		ConditionConfig:   models.NoConditionConfig(),
		IsPrimary:         primary,
		IsActive:          true,
		CreatedAt:         createdAt,
	}
	if err := db.Create(strategy).Error; err != nil {
		t.Fatalf("create strategy failed: %v", err)
	}
	return strategy
}
