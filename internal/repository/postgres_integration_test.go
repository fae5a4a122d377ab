//go:build integration
// +build integration

package repository

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/duomart-next/internal/models"
	"github.com/duomart-next/internal/pricing"

	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupPostgresIntegrationDB 初始化 PostgreSQL 集成测试数据库。
func setupPostgresIntegrationDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := strings.TrimSpace(os.Getenv("TEST_POSTGRES_DSN"))
	if dsn == "" {
		t.Skip("skip postgres integration test: TEST_POSTGRES_DSN is empty")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open postgres failed: %v", err)
	}

	cleanupModels := []interface{}{
		&models.OrderItem{},
		&models.Order{},
		&models.PricingStrategy{},
		&models.Product{},
		&models.Category{},
	}
	_ = db.Migrator().DropTable(cleanupModels...)

	if err := db.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.PricingStrategy{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		t.Fatalf("migrate postgres models failed: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Migrator().DropTable(cleanupModels...)
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}

func TestPostgresLocalizedJSONSearch(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	createTestProduct(t, db, "pg-needle", 1, 100, true)
	createTestProduct(t, db, "pg-other", 1, 100, true)

	products, total, err := NewProductRepository(db).List(ProductListFilter{Search: "NEEDLE", OnlyActive: true})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if total != 1 || products[0].Slug != "pg-needle" {
		t.Fatalf("ILIKE search should match case-insensitively, got total=%d", total)
	}
}

func TestPostgresSummaryUpdateWithRowLock(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	product := createTestProduct(t, db, "pg-summary", 1, 0, true)
	createTestStrategy(t, db, product.ID, 1000, true, time.Now())

	err := db.Transaction(func(tx *gorm.DB) error {
		repo := NewProductRepository(db).WithTx(tx)
		locked, err := repo.GetForUpdate(product.ID)
		if err != nil || locked == nil {
			t.Fatalf("lock product failed: %v", err)
		}
		strategies, err := NewPricingStrategyRepository(db).WithTx(tx).ListByProduct(product.ID, true)
		if err != nil {
			return err
		}
		_, err = repo.UpdatePriceSummary(product.ID, pricing.ComputeSummary(strategies), time.Now())
		return err
	})
	if err != nil {
		t.Fatalf("transaction failed: %v", err)
	}

	reloaded, err := NewProductRepository(db).GetByID(product.ID)
	if err != nil || reloaded == nil {
		t.Fatalf("reload failed: %v", err)
	}
	if !reloaded.CalculatedMinPrice.Equal(decimal.NewFromInt(1000)) || reloaded.PricingVersion != 1 {
		t.Fatalf("unexpected summary: %+v", reloaded)
	}
}

func TestPostgresSinglePrimaryIndex(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	product := createTestProduct(t, db, "pg-primary", 1, 0, true)
	createTestStrategy(t, db, product.ID, 100, true, time.Now())

	duplicate := &models.PricingStrategy{
		ProductID:       product.ID,
		ConversionRate:  decimal.NewFromInt(1),
		ConditionConfig: models.NoConditionConfig(),
		IsPrimary:       true,
		IsActive:        true,
	}
	if err := db.Create(duplicate).Error; err == nil {
		t.Fatalf("second active primary should violate the partial unique index")
	}
}
