package main

import (
	"context"
	"errors"
	"time"

	"github.com/duomart-next/internal/app"
	"github.com/duomart-next/internal/config"
	"github.com/duomart-next/internal/constants"
	"github.com/duomart-next/internal/logger"
	"github.com/duomart-next/internal/models"
	"github.com/duomart-next/internal/provider"
	"github.com/duomart-next/internal/service"

	"github.com/shopspring/decimal"
)

type seedCategory struct {
	Slug string
	Name map[string]interface{}
}

type seedProduct struct {
	Category  string
	Slug      string
	Brand     string
	Title     map[string]interface{}
	BasePrice int64
	Unit      string
}

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := app.OpenDatabase(cfg); err != nil {
		stdLog.Fatalf("Failed to prepare database: %v", err)
	}

	c, err := provider.NewContainer(cfg)
	if err != nil {
		stdLog.Fatalf("Failed to build container: %v", err)
	}
	defer func() { _ = c.Close() }()
	ctx := context.Background()
	if _, err := c.AuthService.EnsureBootstrapAdmin(cfg.Bootstrap.AdminUsername, cfg.Bootstrap.AdminPassword, true); err != nil {
		stdLog.Printf("Failed to init admin: %v", err)
	}

	// 添加分类
	categoryIDs := map[string]uint{}
	for _, item := range []seedCategory{
		{Slug: "building-materials", Name: map[string]interface{}{"zh-CN": "建材", "zh-TW": "建材", "en-US": "Building materials"}},
		{Slug: "tools", Name: map[string]interface{}{"zh-CN": "工具", "zh-TW": "工具", "en-US": "Tools"}},
	} {
		category, err := c.CategoryService.Create(service.CreateCategoryInput{Slug: item.Slug, NameJSON: item.Name})
		if errors.Is(err, service.ErrSlugExists) {
			category, err = c.CategoryRepo.GetBySlug(item.Slug)
		}
		if err != nil || category == nil {
			stdLog.Fatalf("Failed to seed category %s: %v", item.Slug, err)
		}
		categoryIDs[item.Slug] = category.ID
		stdLog.Printf("Category ready: %s", item.Slug)
	}

	// 添加用户（卖家与 VIP 买家）
	seller := ensureUser(c, "seller@example.com", "")
	ensureUser(c, "vip@example.com", constants.ConditionTypeVIP)
	ensureUser(c, "buyer@example.com", "")
	actor := service.UserActor(seller.ID)

	// 添加商品与定价策略
	products := []seedProduct{
		{Category: "building-materials", Slug: "portland-cement", Brand: "Atlas", BasePrice: 1000, Unit: "bag",
			Title: map[string]interface{}{"zh-CN": "硅酸盐水泥", "zh-TW": "矽酸鹽水泥", "en-US": "Portland cement"}},
		{Category: "building-materials", Slug: "steel-rebar", Brand: "Atlas", BasePrice: 1200, Unit: "ton",
			Title: map[string]interface{}{"zh-CN": "螺纹钢", "zh-TW": "螺紋鋼", "en-US": "Steel rebar"}},
		{Category: "tools", Slug: "cordless-drill", Brand: "Volt", BasePrice: 900, Unit: "piece",
			Title: map[string]interface{}{"zh-CN": "无线电钻", "zh-TW": "無線電鑽", "en-US": "Cordless drill"}},
	}
	for _, item := range products {
		product, err := c.ProductService.Create(ctx, actor, service.CreateProductInput{
			CategoryID: categoryIDs[item.Category],
			Slug:       item.Slug,
			Brand:      item.Brand,
			TitleJSON:  item.Title,
			BasePrice:  decimal.NewFromInt(item.BasePrice),
			PriceUnit:  item.Unit,
		})
		if errors.Is(err, service.ErrSlugExists) {
			stdLog.Printf("Product already exists: %s", item.Slug)
			continue
		}
		if err != nil {
			stdLog.Fatalf("Failed to seed product %s: %v", item.Slug, err)
		}
		seedStrategies(ctx, c, actor, product.ID, item.BasePrice)
		stdLog.Printf("Created product: %s", item.Slug)
	}

	stdLog.Println("Seed completed")
}

func ensureUser(c *provider.Container, email, customerType string) *models.User {
	stdLog := logger.StdLogger()
	user, err := c.UserRepo.GetByEmail(email)
	if err != nil {
		stdLog.Fatalf("Failed to load user %s: %v", email, err)
	}
	if user != nil {
		return user
	}
	hash, err := service.HashPassword("password123")
	if err != nil {
		stdLog.Fatalf("Failed to hash password: %v", err)
	}
	user = &models.User{
		Email:        email,
		PasswordHash: hash,
		Status:       constants.UserStatusActive,
		CustomerType: customerType,
	}
	if err := c.UserRepo.Create(user); err != nil {
		stdLog.Fatalf("Failed to create user %s: %v", email, err)
	}
	stdLog.Printf("Created user: %s", email)
	return user
}

func seedStrategies(ctx context.Context, c *provider.Container, actor service.Actor, productID uint, basePrice int64) {
	stdLog := logger.StdLogger()
	base := decimal.NewFromInt(basePrice)
	now := time.Now()
	inputs := []service.StrategyInput{
		{
			Name:                    "VIP",
			ConditionType:           constants.ConditionTypeVIP,
			BasePriceAmount:         base,
			CustomAdjustmentPercent: decimal.NewNullDecimal(decimal.NewFromInt(-12)),
		},
		{
			Name:                    "Card payment",
			ConditionType:           constants.ConditionTypeCardPayment,
			BasePriceAmount:         base,
			CustomAdjustmentPercent: decimal.NewNullDecimal(decimal.NewFromInt(2)),
		},
		{
			Name:                    "Express delivery",
			ConditionType:           constants.ConditionTypeExpress,
			BasePriceAmount:         base,
			CustomAdjustmentPercent: decimal.NewNullDecimal(decimal.NewFromInt(5)),
		},
		{
			Name:                    "Season sale",
			ConditionType:           constants.ConditionTypeSeasonal,
			BasePriceAmount:         base,
			CustomAdjustmentPercent: decimal.NewNullDecimal(decimal.NewFromInt(-8)),
			Seasonal:                &models.SeasonalConfig{StartsAt: now, EndsAt: now.AddDate(0, 1, 0)},
		},
	}
	for _, input := range inputs {
		if _, err := c.PricingStrategyService.CreateStrategy(ctx, actor, productID, input); err != nil {
			stdLog.Printf("Failed to create strategy %s for product %d: %v", input.Name, productID, err)
		}
	}

	maxSmall := 199
	if _, err := c.PricingStrategyService.SetVolumeDiscounts(ctx, actor, productID, []service.VolumeDiscountRule{
		{Name: "50+", MinQuantity: 50, MaxQuantity: &maxSmall, DiscountPercent: decimal.NewFromInt(-10)},
		{Name: "200+", MinQuantity: 200, DiscountPercent: decimal.NewFromInt(-15)},
	}); err != nil {
		stdLog.Printf("Failed to set volume discounts for product %d: %v", productID, err)
	}
}
