package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/duomart-next/internal/cache"
	"github.com/duomart-next/internal/config"
	"github.com/duomart-next/internal/logger"
	"github.com/duomart-next/internal/metrics"
	"github.com/duomart-next/internal/models"
	"github.com/duomart-next/internal/pricing"
	"github.com/duomart-next/internal/repository"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
)

// AppliedStrategy 命中的策略（按优先级排序，第一个为实际采用）
type AppliedStrategy struct {
	ID                uint                `json:"id"`
	Name              string              `json:"name"`
	ConditionCategory string              `json:"condition_category"`
	ConditionType     string              `json:"condition_type"`
	FinalPrice        models.Money        `json:"final_price"`
	AdjustmentPercent decimal.NullDecimal `json:"adjustment_percent"`
	IsPrimary         bool                `json:"is_primary"`
}

// PriceBreakdown 价格明细
type PriceBreakdown struct {
	BasePrice          models.Money        `json:"base_price"`
	AdjustmentPercent  decimal.NullDecimal `json:"adjustment_percent"`
	StrategyFinalPrice models.Money        `json:"strategy_final_price"`
	BulkExtraPercent   decimal.Decimal     `json:"bulk_extra_percent"`
	CanonicalUnitPrice decimal.Decimal     `json:"canonical_unit_price"`
	PriceUnit          string              `json:"price_unit"`
	ConversionRate     decimal.Decimal     `json:"conversion_rate"`
	Trace              []pricing.TraceStep `json:"trace"`
}

// ResolvedPrice 价格解析结果
type ResolvedPrice struct {
	ProductID         uint              `json:"product_id"`
	Price             models.Money      `json:"price"`
	Currency          string            `json:"currency"`
	Quantity          int               `json:"quantity"`
	AppliedStrategyID uint              `json:"applied_strategy_id"`
	Selection         string            `json:"selection"`
	AppliedStrategies []AppliedStrategy `json:"applied_strategies"`
	Breakdown         PriceBreakdown    `json:"breakdown"`
	PricingVersion    int64             `json:"pricing_version"`
	ResolvedAt        time.Time         `json:"resolved_at"`
}

// PriceResolveService 价格解析服务（只读，不加锁）
type PriceResolveService struct {
	productRepo         repository.ProductRepository
	strategyRepo        repository.PricingStrategyRepository
	metrics             *metrics.PricingMetrics
	cacheTTL            time.Duration
	maxBulkExtraPercent decimal.Decimal
	group               singleflight.Group
	now                 func() time.Time
}

// NewPriceResolveService 创建价格解析服务
func NewPriceResolveService(productRepo repository.ProductRepository, strategyRepo repository.PricingStrategyRepository, m *metrics.PricingMetrics, cfg config.PricingConfig) *PriceResolveService {
	maxExtra := pricing.DefaultMaxBulkExtraPercent
	if cfg.MaxBulkExtraPercent > 0 {
		maxExtra = decimal.NewFromFloat(cfg.MaxBulkExtraPercent)
	}
	return &PriceResolveService{
		productRepo:         productRepo,
		strategyRepo:        strategyRepo,
		metrics:             m,
		cacheTTL:            cfg.ResolveCacheTTL(),
		maxBulkExtraPercent: maxExtra,
		now:                 time.Now,
	}
}

// ResolvePrice 按运行时条件解析商品成交单价
func (s *PriceResolveService) ResolvePrice(ctx context.Context, productID uint, conditions pricing.Conditions) (*ResolvedPrice, error) {
	start := time.Now()
	conditions = conditions.Normalize(s.now())
	fingerprint := cache.ConditionFingerprint(
		conditions.PaymentMethod,
		conditions.DeliveryMethod,
		conditions.CustomerType,
		strconv.Itoa(conditions.Quantity),
		strconv.FormatInt(conditions.At.Truncate(time.Minute).Unix(), 10),
	)

	if s.cacheTTL > 0 {
		version, ok, err := cache.GetPricingVersion(ctx, productID)
		if err != nil {
			logger.Ctx(ctx).Warnw("pricing_version_cache_get_failed", "product_id", productID, "error", err)
		}
		if ok {
			var cached ResolvedPrice
			hit, err := cache.GetResolvedPrice(ctx, productID, version, fingerprint, &cached)
			if err != nil {
				logger.Ctx(ctx).Warnw("resolved_price_cache_get_failed", "product_id", productID, "error", err)
			}
			if hit {
				s.metrics.ObserveResolve(cached.Selection, true, time.Since(start))
				return &cached, nil
			}
		}
	}

	key := fmt.Sprintf("%d:%s", productID, fingerprint)
	value, err, _ := s.group.Do(key, func() (interface{}, error) {
		return s.resolveFromStore(ctx, productID, conditions, fingerprint)
	})
	if err != nil {
		return nil, err
	}
	resolved := *value.(*ResolvedPrice)
	s.metrics.ObserveResolve(resolved.Selection, false, time.Since(start))
	return &resolved, nil
}

func (s *PriceResolveService) resolveFromStore(ctx context.Context, productID uint, conditions pricing.Conditions, fingerprint string) (*ResolvedPrice, error) {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, ErrProductNotFound
	}
	strategies, err := s.strategyRepo.ListByProduct(productID, true)
	if err != nil {
		return nil, err
	}
	scale := pricing.CurrencyScale(product.PriceCurrency)
	resolution, err := pricing.Resolve(strategies, conditions, pricing.Options{
		Scale:               scale,
		MaxBulkExtraPercent: s.maxBulkExtraPercent,
	})
	if err != nil {
		if errors.Is(err, pricing.ErrNoActiveStrategy) {
			return nil, ErrNoActivePricing
		}
		return nil, err
	}
	resolved := buildResolvedPrice(product, resolution, conditions)
	if s.cacheTTL > 0 {
		if err := cache.AdvancePricingVersion(ctx, productID, product.PricingVersion); err != nil {
			logger.Ctx(ctx).Warnw("pricing_version_cache_set_failed", "product_id", productID, "error", err)
		}
		if err := cache.SetResolvedPrice(ctx, productID, product.PricingVersion, fingerprint, resolved, s.cacheTTL); err != nil {
			logger.Ctx(ctx).Warnw("resolved_price_cache_set_failed", "product_id", productID, "error", err)
		}
	}
	return resolved, nil
}

func buildResolvedPrice(product *models.Product, resolution pricing.Resolution, conditions pricing.Conditions) *ResolvedPrice {
	chosen := resolution.Strategy
	applied := make([]AppliedStrategy, 0, len(resolution.Matched))
	for i := range resolution.Matched {
		applied = append(applied, toAppliedStrategy(&resolution.Matched[i]))
	}
	if len(applied) == 0 {
		applied = append(applied, toAppliedStrategy(&chosen))
	}
	return &ResolvedPrice{
		ProductID:         product.ID,
		Price:             models.NewMoneyFromDecimal(resolution.Price),
		Currency:          product.PriceCurrency,
		Quantity:          conditions.Quantity,
		AppliedStrategyID: chosen.ID,
		Selection:         resolution.Selection,
		AppliedStrategies: applied,
		Breakdown: PriceBreakdown{
			BasePrice:          chosen.BasePriceAmount,
			AdjustmentPercent:  chosen.CustomAdjustmentPercent,
			StrategyFinalPrice: models.NewMoneyFromDecimal(resolution.StrategyFinalPrice),
			BulkExtraPercent:   resolution.BulkExtraPercent,
			CanonicalUnitPrice: pricing.CanonicalUnitPrice(resolution.Price, chosen.ConversionRate),
			PriceUnit:          chosen.PriceUnit,
			ConversionRate:     chosen.ConversionRate,
			Trace:              resolution.Trace,
		},
		PricingVersion: product.PricingVersion,
		ResolvedAt:     conditions.At,
	}
}

func toAppliedStrategy(strategy *models.PricingStrategy) AppliedStrategy {
	return AppliedStrategy{
		ID:                strategy.ID,
		Name:              strategy.Name,
		ConditionCategory: strategy.ConditionCategory,
		ConditionType:     strategy.ConditionType,
		FinalPrice:        strategy.FinalPriceAmount,
		AdjustmentPercent: strategy.CustomAdjustmentPercent,
		IsPrimary:         strategy.IsPrimary,
	}
}
