package service

import (
	"context"
	"strings"
	"testing"

	"github.com/duomart-next/internal/config"
	"github.com/duomart-next/internal/constants"
	"github.com/duomart-next/internal/metrics"
	"github.com/duomart-next/internal/models"
	"github.com/duomart-next/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type pricingFixture struct {
	db           *gorm.DB
	productRepo  *repository.GormProductRepository
	strategyRepo *repository.GormPricingStrategyRepository
	orderRepo    *repository.GormOrderRepository
	memberRepo   *repository.GormAccountMemberRepository
	strategies   *PricingStrategyService
	resolver     *PriceResolveService
	products     *ProductService
	competitive  *CompetitivePricingService
	cart         *CartService
	checkout     *CheckoutService
	category     *models.Category
	seller       *models.User
}

func openServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func newPricingFixture(t *testing.T) *pricingFixture {
	t.Helper()
	db := openServiceTestDB(t)
	cfg := config.PricingConfig{
		DefaultCurrency: "CNY",
		MaxTxAttempts:   3,
		RetryBackoffMS:  1,
	}
	m := metrics.NewPricingMetrics(nil)

	productRepo := repository.NewProductRepository(db)
	strategyRepo := repository.NewPricingStrategyRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	memberRepo := repository.NewAccountMemberRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	cartRepo := repository.NewCartRepository(db)
	userRepo := repository.NewUserRepository(db)

	summary := NewPriceSummaryMaintainer(productRepo, strategyRepo)
	notifier := NewPriceChangeNotifier(nil, m)
	strategies := NewPricingStrategyService(productRepo, strategyRepo, orderRepo, memberRepo, summary, notifier, m, cfg)
	resolver := NewPriceResolveService(productRepo, strategyRepo, m, cfg)
	cart := NewCartService(cartRepo, productRepo, userRepo, resolver)

	category := &models.Category{Slug: "tools", NameJSON: models.JSON{"zh-CN": "工具", "en-US": "Tools"}}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	seller := createTestUser(t, db, "seller@example.com", "")

	return &pricingFixture{
		db:           db,
		productRepo:  productRepo,
		strategyRepo: strategyRepo,
		orderRepo:    orderRepo,
		memberRepo:   memberRepo,
		strategies:   strategies,
		resolver:     resolver,
		products:     NewProductService(productRepo, categoryRepo, memberRepo, strategies, cfg),
		competitive:  NewCompetitivePricingService(productRepo, strategyRepo, memberRepo, cfg),
		cart:         cart,
		checkout:     NewCheckoutService(cart, orderRepo, cartRepo, productRepo, strategyRepo),
		category:     category,
		seller:       seller,
	}
}

func createTestUser(t *testing.T, db *gorm.DB, email, customerType string) *models.User {
	t.Helper()
	user := &models.User{
		Email:        email,
		PasswordHash: "not-used",
		Status:       constants.UserStatusActive,
		CustomerType: customerType,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return user
}

func (f *pricingFixture) sellerActor() Actor {
	return UserActor(f.seller.ID)
}

func (f *pricingFixture) createProduct(t *testing.T, slug string, basePrice int64) *models.Product {
	t.Helper()
	product, err := f.products.Create(context.Background(), f.sellerActor(), CreateProductInput{
		CategoryID: f.category.ID,
		Slug:       slug,
		Brand:      "acme",
		TitleJSON:  map[string]interface{}{"zh-CN": slug, "en-US": slug},
		BasePrice:  decimal.NewFromInt(basePrice),
	})
	if err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func (f *pricingFixture) createStrategy(t *testing.T, productID uint, input StrategyInput) *models.PricingStrategy {
	t.Helper()
	strategy, err := f.strategies.CreateStrategy(context.Background(), f.sellerActor(), productID, input)
	if err != nil {
		t.Fatalf("create strategy failed: %v", err)
	}
	return strategy
}

func (f *pricingFixture) listStrategies(t *testing.T, productID uint) []models.PricingStrategy {
	t.Helper()
	strategies, err := f.strategyRepo.ListByProduct(productID, false)
	if err != nil {
		t.Fatalf("list strategies failed: %v", err)
	}
	return strategies
}

func (f *pricingFixture) reloadProduct(t *testing.T, productID uint) *models.Product {
	t.Helper()
	product, err := f.productRepo.GetByID(productID)
	if err != nil || product == nil {
		t.Fatalf("reload product failed: %v", err)
	}
	return product
}

func bulkInput(name string, basePrice int64, minQuantity int, maxQuantity *int, adjustment int64) StrategyInput {
	return StrategyInput{
		Name:                    name,
		ConditionType:           constants.ConditionTypeBulkOrder,
		BasePriceAmount:         decimal.NewFromInt(basePrice),
		CustomAdjustmentPercent: decimal.NewNullDecimal(decimal.NewFromInt(adjustment)),
		BulkOrder:               &models.BulkOrderConfig{MinQuantity: minQuantity, MaxQuantity: maxQuantity},
	}
}

func conditionInput(name, conditionType string, basePrice int64, adjustment int64) StrategyInput {
	return StrategyInput{
		Name:                    name,
		ConditionType:           conditionType,
		BasePriceAmount:         decimal.NewFromInt(basePrice),
		CustomAdjustmentPercent: decimal.NewNullDecimal(decimal.NewFromInt(adjustment)),
	}
}

func intPtr(v int) *int {
	return &v
}

func boolPtr(v bool) *bool {
	return &v
}

func primaryIDs(strategies []models.PricingStrategy) []uint {
	ids := make([]uint, 0, 1)
	for _, strategy := range strategies {
		if strategy.IsActive && strategy.IsPrimary {
			ids = append(ids, strategy.ID)
		}
	}
	return ids
}
