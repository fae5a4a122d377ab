package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/duomart-next/internal/config"
	"github.com/duomart-next/internal/constants"
	"github.com/duomart-next/internal/logger"
	"github.com/duomart-next/internal/metrics"
	"github.com/duomart-next/internal/models"
	"github.com/duomart-next/internal/pricing"
	"github.com/duomart-next/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// StrategyInput 创建定价策略输入
type StrategyInput struct {
	Name                    string
	ConditionCategory       string
	ConditionType           string
	PriceUnit               string
	ConversionRate          *decimal.Decimal
	BasePriceAmount         decimal.Decimal
	CustomAdjustmentPercent decimal.NullDecimal
	BulkOrder               *models.BulkOrderConfig
	Seasonal                *models.SeasonalConfig
	PriceRange              *models.PriceRangeConfig
	IsPrimary               bool
	IsActive                *bool
}

// StrategyPatch 更新定价策略输入（nil 表示不修改）
type StrategyPatch struct {
	Name                    *string
	ConditionCategory       *string
	ConditionType           *string
	PriceUnit               *string
	ConversionRate          *decimal.Decimal
	BasePriceAmount         *decimal.Decimal
	CustomAdjustmentPercent *decimal.NullDecimal
	ClearAdjustment         bool
	BulkOrder               *models.BulkOrderConfig
	Seasonal                *models.SeasonalConfig
	PriceRange              *models.PriceRangeConfig
	ClearPriceRange         bool
	IsPrimary               *bool
	IsActive                *bool
}

// DeleteStrategyResult 删除结果
type DeleteStrategyResult struct {
	Success            bool  `json:"success"`
	SoftDisabled       bool  `json:"soft_disabled"`
	PromotedStrategyID *uint `json:"promoted_strategy_id"`
}

// ProductPriceSummary 商品价格汇总视图
type ProductPriceSummary struct {
	ProductID           uint                `json:"product_id"`
	Currency            string              `json:"currency"`
	BaseMinPrice        models.Money        `json:"base_min_price"`
	BaseMaxPrice        models.Money        `json:"base_max_price"`
	CalculatedMinPrice  models.Money        `json:"calculated_min_price"`
	CalculatedMaxPrice  models.Money        `json:"calculated_max_price"`
	HasAnyDiscount      bool                `json:"has_any_discount"`
	BestDiscountPercent decimal.NullDecimal `json:"best_discount_percent"`
	PricingVersion      int64               `json:"pricing_version"`
	PricingUpdatedAt    *time.Time          `json:"pricing_updated_at"`
}

// SummaryOf 从商品字段读取价格汇总
func SummaryOf(product *models.Product) ProductPriceSummary {
	if product == nil {
		return ProductPriceSummary{}
	}
	return ProductPriceSummary{
		ProductID:           product.ID,
		Currency:            product.PriceCurrency,
		BaseMinPrice:        product.BaseMinPrice,
		BaseMaxPrice:        product.BaseMaxPrice,
		CalculatedMinPrice:  product.CalculatedMinPrice,
		CalculatedMaxPrice:  product.CalculatedMaxPrice,
		HasAnyDiscount:      product.HasAnyDiscount,
		BestDiscountPercent: product.BestDiscountPercent,
		PricingVersion:      product.PricingVersion,
		PricingUpdatedAt:    product.PricingUpdatedAt,
	}
}

// StrategyListResult 策略列表结果
type StrategyListResult struct {
	Strategies []models.PricingStrategy `json:"strategies"`
	Summary    ProductPriceSummary      `json:"summary"`
}

// VolumeDiscountRule 批量折扣规则（一条规则对应一个 bulk_order 策略）
type VolumeDiscountRule struct {
	Name                      string
	MinQuantity               int
	MaxQuantity               *int
	DiscountPercent           decimal.Decimal
	AdditionalDiscountPerUnit *decimal.Decimal
	PriceRange                *models.PriceRangeConfig
}

// VolumeDiscountResult 批量折扣替换结果
type VolumeDiscountResult struct {
	Created    int                      `json:"created"`
	Updated    int                      `json:"updated"`
	Removed    int                      `json:"removed"`
	Strategies []models.PricingStrategy `json:"strategies"`
}

// PricingStrategyService 定价策略服务：所有写操作在单个事务内完成校验、写入、主策略维护与汇总重算
type PricingStrategyService struct {
	productRepo  repository.ProductRepository
	strategyRepo repository.PricingStrategyRepository
	orderRepo    repository.OrderRepository
	memberRepo   repository.AccountMemberRepository
	summary      *PriceSummaryMaintainer
	notifier     *PriceChangeNotifier
	metrics      *metrics.PricingMetrics
	retry        txRetryPolicy
	now          func() time.Time
}

// NewPricingStrategyService 创建定价策略服务
func NewPricingStrategyService(
	productRepo repository.ProductRepository,
	strategyRepo repository.PricingStrategyRepository,
	orderRepo repository.OrderRepository,
	memberRepo repository.AccountMemberRepository,
	summary *PriceSummaryMaintainer,
	notifier *PriceChangeNotifier,
	m *metrics.PricingMetrics,
	cfg config.PricingConfig,
) *PricingStrategyService {
	return &PricingStrategyService{
		productRepo:  productRepo,
		strategyRepo: strategyRepo,
		orderRepo:    orderRepo,
		memberRepo:   memberRepo,
		summary:      summary,
		notifier:     notifier,
		metrics:      m,
		retry:        newTxRetryPolicy(cfg.MaxTxAttempts, cfg.RetryBackoff(), m),
		now:          time.Now,
	}
}

type mutationOutcome struct {
	productID uint
	version   int64
}

// runMutation 带重试地执行写事务，提交后发送定价变更通知
func (s *PricingStrategyService) runMutation(ctx context.Context, operation, reason string, fn func(tx *gorm.DB, out *mutationOutcome) error) error {
	var out mutationOutcome
	err := withTxRetry(ctx, s.retry, operation, s.productRepo.Transaction, func(tx *gorm.DB) error {
		out = mutationOutcome{}
		return fn(tx, &out)
	})
	s.metrics.IncMutation(operation, err)
	if err != nil {
		return err
	}
	if out.productID != 0 {
		s.notifier.Notify(ctx, out.productID, out.version, reason)
	}
	return nil
}

// lockProduct 在事务内锁定商品行
func (s *PricingStrategyService) lockProduct(tx *gorm.DB, productID uint) (*models.Product, error) {
	product, err := s.productRepo.WithTx(tx).GetForUpdate(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

func (s *PricingStrategyService) lockAuthorizedProduct(tx *gorm.DB, actor Actor, productID uint) (*models.Product, error) {
	product, err := s.lockProduct(tx, productID)
	if err != nil {
		return nil, err
	}
	if err := authorizeProduct(actor, product, s.memberRepo.WithTx(tx)); err != nil {
		return nil, err
	}
	return product, nil
}

// lockStrategy 锁定策略所属商品后重新读取策略，保证基于最新提交的数据做校验
func (s *PricingStrategyService) lockStrategy(tx *gorm.DB, actor Actor, strategyID uint) (*models.Product, *models.PricingStrategy, error) {
	strategyRepo := s.strategyRepo.WithTx(tx)
	strategy, err := strategyRepo.GetByID(strategyID)
	if err != nil {
		return nil, nil, err
	}
	if strategy == nil {
		return nil, nil, ErrStrategyNotFound
	}
	product, err := s.lockAuthorizedProduct(tx, actor, strategy.ProductID)
	if err != nil {
		return nil, nil, err
	}
	strategy, err = strategyRepo.GetByID(strategyID)
	if err != nil {
		return nil, nil, err
	}
	if strategy == nil {
		return nil, nil, ErrStrategyNotFound
	}
	return product, strategy, nil
}

// CreateStrategy 创建定价策略
func (s *PricingStrategyService) CreateStrategy(ctx context.Context, actor Actor, productID uint, input StrategyInput) (*models.PricingStrategy, error) {
	var created models.PricingStrategy
	err := s.runMutation(ctx, "create", constants.PriceChangeStrategyCreated, func(tx *gorm.DB, out *mutationOutcome) error {
		product, err := s.lockAuthorizedProduct(tx, actor, productID)
		if err != nil {
			return err
		}
		strategy, err := s.createStrategyTx(tx, product, input)
		if err != nil {
			return err
		}
		recomputed, err := s.summary.Recompute(tx, product.ID)
		if err != nil {
			return err
		}
		out.productID, out.version = product.ID, recomputed.Version
		created = *strategy
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// createStrategyTx 事务内创建策略（不重算汇总）；商品的第一个启用策略自动成为主策略
func (s *PricingStrategyService) createStrategyTx(tx *gorm.DB, product *models.Product, input StrategyInput) (*models.PricingStrategy, error) {
	strategyRepo := s.strategyRepo.WithTx(tx)
	existing, err := strategyRepo.ListByProduct(product.ID, false)
	if err != nil {
		return nil, err
	}
	candidate, err := buildStrategy(product, input)
	if err != nil {
		return nil, err
	}
	if err := pricing.Validate(existing, *candidate); err != nil {
		return nil, newValidationError(err)
	}
	if candidate.IsPrimary && !candidate.IsActive {
		return nil, fieldValidationError("is_primary", pricing.RuleInactivePrimary, "an inactive strategy cannot be primary")
	}
	if candidate.IsActive && pricing.CountActive(existing) == 0 {
		candidate.IsPrimary = true
	}
	if candidate.IsPrimary {
		if _, err := strategyRepo.DemoteOthers(product.ID, 0); err != nil {
			return nil, err
		}
	}
	if err := strategyRepo.Create(candidate); err != nil {
		return nil, err
	}
	return candidate, nil
}

// UpdateStrategy 更新定价策略
func (s *PricingStrategyService) UpdateStrategy(ctx context.Context, actor Actor, strategyID uint, patch StrategyPatch) (*models.PricingStrategy, error) {
	var updated models.PricingStrategy
	err := s.runMutation(ctx, "update", constants.PriceChangeStrategyUpdated, func(tx *gorm.DB, out *mutationOutcome) error {
		product, original, err := s.lockStrategy(tx, actor, strategyID)
		if err != nil {
			return err
		}
		strategyRepo := s.strategyRepo.WithTx(tx)
		existing, err := strategyRepo.ListByProduct(product.ID, false)
		if err != nil {
			return err
		}
		candidate, err := applyStrategyPatch(product, *original, patch)
		if err != nil {
			return err
		}
		if err := pricing.Validate(existing, candidate); err != nil {
			return newValidationError(err)
		}

		wasPrimary := original.IsActive && original.IsPrimary
		if wasPrimary && patch.IsPrimary != nil && !*patch.IsPrimary {
			return fieldValidationError("is_primary", pricing.RulePrimaryRequired, "set another strategy as primary instead")
		}
		if candidate.IsPrimary && !candidate.IsActive && patch.IsPrimary != nil && *patch.IsPrimary {
			return fieldValidationError("is_primary", pricing.RuleInactivePrimary, "an inactive strategy cannot be primary")
		}

		var promoted *models.PricingStrategy
		switch {
		case original.IsActive && !candidate.IsActive:
			if pricing.CountActive(existing) <= 1 {
				return ErrSoleActiveStrategy
			}
			candidate.IsPrimary = false
			if wasPrimary {
				promoted = pricing.PromotionCandidate(existing, original.ID)
				if promoted == nil {
					return ErrNoPromotionCandidate
				}
			}
		case !original.IsActive && candidate.IsActive:
			if pricing.CountActive(existing) == 0 {
				candidate.IsPrimary = true
			}
		}

		if candidate.IsActive && candidate.IsPrimary && !wasPrimary {
			if _, err := strategyRepo.DemoteOthers(product.ID, candidate.ID); err != nil {
				return err
			}
		}
		if err := strategyRepo.Save(&candidate); err != nil {
			return err
		}
		if promoted != nil {
			promoted.IsPrimary = true
			if err := strategyRepo.Save(promoted); err != nil {
				return err
			}
		}
		recomputed, err := s.summary.Recompute(tx, product.ID)
		if err != nil {
			return err
		}
		out.productID, out.version = product.ID, recomputed.Version
		updated = candidate
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteStrategy 删除定价策略；被订单引用的策略改为停用
func (s *PricingStrategyService) DeleteStrategy(ctx context.Context, actor Actor, strategyID uint) (*DeleteStrategyResult, error) {
	result := &DeleteStrategyResult{}
	err := s.runMutation(ctx, "delete", constants.PriceChangeStrategyDeleted, func(tx *gorm.DB, out *mutationOutcome) error {
		*result = DeleteStrategyResult{}
		product, strategy, err := s.lockStrategy(tx, actor, strategyID)
		if err != nil {
			return err
		}
		strategyRepo := s.strategyRepo.WithTx(tx)
		existing, err := strategyRepo.ListByProduct(product.ID, false)
		if err != nil {
			return err
		}
		if strategy.IsActive && pricing.CountActive(existing) <= 1 {
			return ErrSoleActiveStrategy
		}
		var promoted *models.PricingStrategy
		if strategy.IsActive && strategy.IsPrimary {
			promoted = pricing.PromotionCandidate(existing, strategy.ID)
			if promoted == nil {
				return ErrNoPromotionCandidate
			}
		}

		referenced, err := s.orderRepo.WithTx(tx).CountItemsByStrategy(strategy.ID)
		if err != nil {
			return err
		}
		if referenced > 0 {
			strategy.IsActive = false
			strategy.IsPrimary = false
			if err := strategyRepo.Save(strategy); err != nil {
				return err
			}
			result.SoftDisabled = true
		} else if err := strategyRepo.Delete(strategy.ID); err != nil {
			return err
		}

		if promoted != nil {
			promoted.IsPrimary = true
			if err := strategyRepo.Save(promoted); err != nil {
				return err
			}
			promotedID := promoted.ID
			result.PromotedStrategyID = &promotedID
		}
		recomputed, err := s.summary.Recompute(tx, product.ID)
		if err != nil {
			return err
		}
		out.productID, out.version = product.ID, recomputed.Version
		result.Success = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ListStrategies 获取商品的定价策略与价格汇总
func (s *PricingStrategyService) ListStrategies(ctx context.Context, actor Actor, productID uint, activeOnly bool) (*StrategyListResult, error) {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if err := authorizeProduct(actor, product, s.memberRepo); err != nil {
		return nil, err
	}
	strategies, err := s.strategyRepo.ListByProduct(productID, activeOnly)
	if err != nil {
		return nil, err
	}
	return &StrategyListResult{Strategies: strategies, Summary: SummaryOf(product)}, nil
}

// SetVolumeDiscounts 以整组替换的方式维护商品的批量折扣策略
func (s *PricingStrategyService) SetVolumeDiscounts(ctx context.Context, actor Actor, productID uint, rules []VolumeDiscountRule) (*VolumeDiscountResult, error) {
	configs, err := buildVolumeConfigs(rules)
	if err != nil {
		return nil, err
	}
	result := &VolumeDiscountResult{}
	err = s.runMutation(ctx, "set_volume_discounts", constants.PriceChangeVolumeDiscounts, func(tx *gorm.DB, out *mutationOutcome) error {
		*result = VolumeDiscountResult{}
		product, err := s.lockAuthorizedProduct(tx, actor, productID)
		if err != nil {
			return err
		}
		strategyRepo := s.strategyRepo.WithTx(tx)
		existing, err := strategyRepo.ListByProduct(product.ID, false)
		if err != nil {
			return err
		}
		primary := pricing.CurrentPrimary(existing)
		if primary == nil {
			return ErrNoPrimaryStrategy
		}
		scale := pricing.CurrencyScale(product.PriceCurrency)

		current := make(map[int]*models.PricingStrategy)
		for i := range existing {
			if existing[i].IsActive && existing[i].IsBulkOrder() {
				current[existing[i].ConditionConfig.BulkOrder.MinQuantity] = &existing[i]
			}
		}
		kept := make(map[uint]bool, len(rules))
		for i, rule := range rules {
			target, ok := current[rule.MinQuantity]
			if !ok {
				target = &models.PricingStrategy{ProductID: product.ID, IsActive: true}
			}
			target.Name = strings.TrimSpace(rule.Name)
			if target.Name == "" {
				target.Name = configs[i].BulkOrder.RangeLabel()
			}
			target.ConditionCategory = constants.ConditionCategoryOrderCondition
			target.ConditionType = constants.ConditionTypeBulkOrder
			target.ConditionConfig = configs[i]
			target.BasePriceAmount = primary.BasePriceAmount
			target.PriceUnit = primary.PriceUnit
			target.ConversionRate = primary.ConversionRate
			target.CustomAdjustmentPercent = decimal.NewNullDecimal(rule.DiscountPercent)
			target.IsActive = true
			pricing.ApplyDerived(target, scale)
			if err := pricing.Validate(nil, *target); err != nil {
				return newValidationError(err)
			}
			if ok {
				if err := strategyRepo.Save(target); err != nil {
					return err
				}
				kept[target.ID] = true
				result.Updated++
				continue
			}
			if err := strategyRepo.Create(target); err != nil {
				return err
			}
			result.Created++
		}

		stale := make([]*models.PricingStrategy, 0, len(current))
		for _, strategy := range current {
			if !kept[strategy.ID] {
				stale = append(stale, strategy)
			}
		}
		sort.Slice(stale, func(i, j int) bool { return stale[i].ID < stale[j].ID })
		needPromotion := false
		for _, strategy := range stale {
			if strategy.IsPrimary {
				needPromotion = true
			}
			softDisabled, err := s.removeStrategyTx(tx, strategy)
			if err != nil {
				return err
			}
			if !softDisabled {
				logger.Debugw("volume_discount_rule_deleted", "product_id", product.ID, "strategy_id", strategy.ID)
			}
			result.Removed++
		}
		if needPromotion {
			if _, err := s.promoteTx(tx, product.ID); err != nil {
				return err
			}
		}

		active, err := strategyRepo.ListByProduct(product.ID, true)
		if err != nil {
			return err
		}
		for i := range active {
			if active[i].IsBulkOrder() {
				result.Strategies = append(result.Strategies, active[i])
			}
		}
		recomputed, err := s.summary.Recompute(tx, product.ID)
		if err != nil {
			return err
		}
		out.productID, out.version = product.ID, recomputed.Version
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// removeStrategyTx 删除策略，被订单引用时停用；返回是否为停用
func (s *PricingStrategyService) removeStrategyTx(tx *gorm.DB, strategy *models.PricingStrategy) (bool, error) {
	strategyRepo := s.strategyRepo.WithTx(tx)
	referenced, err := s.orderRepo.WithTx(tx).CountItemsByStrategy(strategy.ID)
	if err != nil {
		return false, err
	}
	if referenced > 0 {
		strategy.IsActive = false
		strategy.IsPrimary = false
		return true, strategyRepo.Save(strategy)
	}
	return false, strategyRepo.Delete(strategy.ID)
}

// promoteTx 从剩余启用策略中晋升主策略
func (s *PricingStrategyService) promoteTx(tx *gorm.DB, productID uint) (*models.PricingStrategy, error) {
	strategyRepo := s.strategyRepo.WithTx(tx)
	remaining, err := strategyRepo.ListByProduct(productID, true)
	if err != nil {
		return nil, err
	}
	candidate := pricing.PromotionCandidate(remaining, 0)
	if candidate == nil {
		return nil, ErrNoPromotionCandidate
	}
	if _, err := strategyRepo.DemoteOthers(productID, candidate.ID); err != nil {
		return nil, err
	}
	candidate.IsPrimary = true
	if err := strategyRepo.Save(candidate); err != nil {
		return nil, err
	}
	return candidate, nil
}

// RecomputeSummary 手动重算商品价格汇总
func (s *PricingStrategyService) RecomputeSummary(ctx context.Context, actor Actor, productID uint) (*ProductPriceSummary, error) {
	var view ProductPriceSummary
	err := s.runMutation(ctx, "recompute_summary", constants.PriceChangeSummaryRecomputed, func(tx *gorm.DB, out *mutationOutcome) error {
		product, err := s.lockAuthorizedProduct(tx, actor, productID)
		if err != nil {
			return err
		}
		recomputed, err := s.summary.Recompute(tx, product.ID)
		if err != nil {
			return err
		}
		recomputed.ApplyTo(product)
		product.PricingVersion = recomputed.Version
		view = SummaryOf(product)
		out.productID, out.version = product.ID, recomputed.Version
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &view, nil
}

// DeactivateExpiredSeasonal 停用活动窗口已结束的季节性策略；商品唯一启用的策略保持启用
func (s *PricingStrategyService) DeactivateExpiredSeasonal(ctx context.Context, at time.Time, limit int) (int, error) {
	expired, err := s.strategyRepo.ListExpiredSeasonal(at, limit)
	if err != nil {
		return 0, err
	}
	productIDs := make([]uint, 0, len(expired))
	seen := make(map[uint]struct{}, len(expired))
	for _, strategy := range expired {
		if _, ok := seen[strategy.ProductID]; ok {
			continue
		}
		seen[strategy.ProductID] = struct{}{}
		productIDs = append(productIDs, strategy.ProductID)
	}
	total := 0
	for _, productID := range productIDs {
		count, err := s.deactivateExpiredForProduct(ctx, productID, at)
		if err != nil {
			logger.Ctx(ctx).Warnw("seasonal_sweep_product_failed", "product_id", productID, "error", err)
			continue
		}
		total += count
	}
	return total, nil
}

func (s *PricingStrategyService) deactivateExpiredForProduct(ctx context.Context, productID uint, at time.Time) (int, error) {
	count := 0
	err := s.runMutation(ctx, "seasonal_sweep", constants.PriceChangeSeasonalExpired, func(tx *gorm.DB, out *mutationOutcome) error {
		count = 0
		product, err := s.lockProduct(tx, productID)
		if err != nil {
			if errors.Is(err, ErrProductNotFound) {
				return nil
			}
			return err
		}
		strategyRepo := s.strategyRepo.WithTx(tx)
		existing, err := strategyRepo.ListByProduct(product.ID, false)
		if err != nil {
			return err
		}
		active := pricing.CountActive(existing)
		needPromotion := false
		for i := range existing {
			strategy := &existing[i]
			if !strategy.IsActive || !strategy.IsSeasonal() || !strategy.ConditionConfig.Seasonal.ExpiredAt(at) {
				continue
			}
			if active <= 1 {
				logger.Ctx(ctx).Infow("seasonal_sweep_skip_sole_active", "product_id", product.ID, "strategy_id", strategy.ID)
				continue
			}
			if strategy.IsPrimary {
				needPromotion = true
			}
			strategy.IsActive = false
			strategy.IsPrimary = false
			if err := strategyRepo.Save(strategy); err != nil {
				return err
			}
			active--
			count++
		}
		if count == 0 {
			return nil
		}
		if needPromotion {
			if _, err := s.promoteTx(tx, product.ID); err != nil {
				return err
			}
		}
		recomputed, err := s.summary.Recompute(tx, product.ID)
		if err != nil {
			return err
		}
		out.productID, out.version = product.ID, recomputed.Version
		return nil
	})
	return count, err
}

// buildStrategy 由输入构造策略并计算派生字段
func buildStrategy(product *models.Product, input StrategyInput) (*models.PricingStrategy, error) {
	conditionType := strings.TrimSpace(input.ConditionType)
	conditionConfig, err := buildConditionConfig(conditionType, input.BulkOrder, input.Seasonal, input.PriceRange)
	if err != nil {
		return nil, err
	}
	rate := decimal.NewFromInt(1)
	if input.ConversionRate != nil {
		rate = *input.ConversionRate
	}
	unit := strings.TrimSpace(input.PriceUnit)
	if unit == "" {
		unit = constants.DefaultPriceUnit
	}
	active := true
	if input.IsActive != nil {
		active = *input.IsActive
	}
	strategy := &models.PricingStrategy{
		ProductID:               product.ID,
		Name:                    strings.TrimSpace(input.Name),
		ConditionCategory:       normalizeCategory(input.ConditionCategory, conditionType),
		ConditionType:           conditionType,
		PriceUnit:               unit,
		ConversionRate:          rate,
		BasePriceAmount:         models.NewMoneyFromDecimal(input.BasePriceAmount),
		CustomAdjustmentPercent: input.CustomAdjustmentPercent,
		ConditionConfig:         conditionConfig,
		IsPrimary:               input.IsPrimary,
		IsActive:                active,
	}
	pricing.ApplyDerived(strategy, pricing.CurrencyScale(product.PriceCurrency))
	return strategy, nil
}

// applyStrategyPatch 在策略副本上应用修改并重新计算派生字段
func applyStrategyPatch(product *models.Product, strategy models.PricingStrategy, patch StrategyPatch) (models.PricingStrategy, error) {
	if patch.Name != nil {
		strategy.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.ConditionType != nil {
		strategy.ConditionType = strings.TrimSpace(*patch.ConditionType)
		if patch.ConditionCategory == nil {
			strategy.ConditionCategory = normalizeCategory("", strategy.ConditionType)
		}
	}
	if patch.ConditionCategory != nil {
		strategy.ConditionCategory = normalizeCategory(*patch.ConditionCategory, strategy.ConditionType)
	}
	if patch.PriceUnit != nil {
		strategy.PriceUnit = strings.TrimSpace(*patch.PriceUnit)
		if strategy.PriceUnit == "" {
			strategy.PriceUnit = constants.DefaultPriceUnit
		}
	}
	if patch.ConversionRate != nil {
		strategy.ConversionRate = *patch.ConversionRate
	}
	if patch.BasePriceAmount != nil {
		strategy.BasePriceAmount = models.NewMoneyFromDecimal(*patch.BasePriceAmount)
	}
	if patch.ClearAdjustment {
		strategy.CustomAdjustmentPercent = decimal.NullDecimal{}
	}
	if patch.CustomAdjustmentPercent != nil {
		strategy.CustomAdjustmentPercent = *patch.CustomAdjustmentPercent
	}

	kind := models.ConditionKindFor(strategy.ConditionType)
	bulk := strategy.ConditionConfig.BulkOrder
	seasonal := strategy.ConditionConfig.Seasonal
	priceRange := strategy.ConditionConfig.PriceRange
	if kind != constants.ConditionKindBulkOrder {
		bulk = nil
	}
	if kind != constants.ConditionKindSeasonal {
		seasonal = nil
	}
	if patch.BulkOrder != nil {
		bulk = patch.BulkOrder
	}
	if patch.Seasonal != nil {
		seasonal = patch.Seasonal
	}
	if patch.ClearPriceRange {
		priceRange = nil
	}
	if patch.PriceRange != nil {
		priceRange = patch.PriceRange
	}
	conditionConfig, err := buildConditionConfig(strategy.ConditionType, bulk, seasonal, priceRange)
	if err != nil {
		return models.PricingStrategy{}, err
	}
	strategy.ConditionConfig = conditionConfig

	if patch.IsActive != nil {
		strategy.IsActive = *patch.IsActive
	}
	if patch.IsPrimary != nil {
		strategy.IsPrimary = *patch.IsPrimary
	}
	pricing.ApplyDerived(&strategy, pricing.CurrencyScale(product.PriceCurrency))
	return strategy, nil
}

// buildConditionConfig 按条件类型构造对应的配置变体
func buildConditionConfig(conditionType string, bulk *models.BulkOrderConfig, seasonal *models.SeasonalConfig, priceRange *models.PriceRangeConfig) (models.ConditionConfig, error) {
	var (
		conditionConfig models.ConditionConfig
		err             error
	)
	switch models.ConditionKindFor(conditionType) {
	case constants.ConditionKindBulkOrder:
		if bulk == nil {
			return models.ConditionConfig{}, fieldValidationError("condition_config.bulk_order", pricing.RuleConditionConfig, "bulk_order parameters are required")
		}
		if seasonal != nil {
			return models.ConditionConfig{}, fieldValidationError("condition_config.seasonal", pricing.RuleConditionConfig, "seasonal window is only allowed for seasonal")
		}
		conditionConfig, err = models.NewBulkOrderConfig(bulk.MinQuantity, bulk.MaxQuantity, bulk.AdditionalDiscountPerUnit)
	case constants.ConditionKindSeasonal:
		if seasonal == nil {
			return models.ConditionConfig{}, fieldValidationError("condition_config.seasonal", pricing.RuleConditionConfig, "seasonal window is required")
		}
		if bulk != nil {
			return models.ConditionConfig{}, fieldValidationError("condition_config.bulk_order", pricing.RuleConditionConfig, "bulk_order parameters are only allowed for bulk_order")
		}
		conditionConfig, err = models.NewSeasonalConfig(seasonal.StartsAt, seasonal.EndsAt)
	default:
		if bulk != nil || seasonal != nil {
			return models.ConditionConfig{}, fieldValidationError("condition_config", pricing.RuleConditionConfig,
				fmt.Sprintf("condition_type %q takes no condition parameters", conditionType))
		}
		conditionConfig = models.NoConditionConfig()
	}
	if err != nil {
		return models.ConditionConfig{}, fieldValidationError("condition_config", pricing.RuleConditionConfig, err.Error())
	}
	if priceRange != nil {
		conditionConfig, err = conditionConfig.WithPriceRange(priceRange.MinPrice, priceRange.MaxPrice)
		if err != nil {
			return models.ConditionConfig{}, fieldValidationError("condition_config.price_range", pricing.RuleConditionConfig, err.Error())
		}
	}
	return conditionConfig, nil
}

// normalizeCategory 未指定分类时由条件类型推导
func normalizeCategory(category, conditionType string) string {
	category = strings.TrimSpace(category)
	if category != "" || conditionType == "" {
		return category
	}
	if derived, ok := constants.CategoryOfConditionType(conditionType); ok {
		return derived
	}
	return category
}

// buildVolumeConfigs 成组校验批量折扣规则
func buildVolumeConfigs(rules []VolumeDiscountRule) ([]models.ConditionConfig, error) {
	if len(rules) == 0 {
		return nil, fmt.Errorf("%w: at least one rule is required", ErrVolumeDiscountSetInvalid)
	}
	seen := make(map[int]struct{}, len(rules))
	ranges := make([]models.BulkOrderConfig, 0, len(rules))
	for _, rule := range rules {
		if _, ok := seen[rule.MinQuantity]; ok {
			return nil, fmt.Errorf("%w: duplicate min_quantity %d", ErrVolumeDiscountSetInvalid, rule.MinQuantity)
		}
		seen[rule.MinQuantity] = struct{}{}
		ranges = append(ranges, models.BulkOrderConfig{
			MinQuantity:               rule.MinQuantity,
			MaxQuantity:               rule.MaxQuantity,
			AdditionalDiscountPerUnit: rule.AdditionalDiscountPerUnit,
		})
	}
	if err := pricing.ValidateVolumeSet(ranges); err != nil {
		return nil, newValidationError(err)
	}
	configs := make([]models.ConditionConfig, 0, len(rules))
	for i, rule := range rules {
		conditionConfig, err := models.NewBulkOrderConfig(rule.MinQuantity, rule.MaxQuantity, rule.AdditionalDiscountPerUnit)
		if err != nil {
			return nil, fieldValidationError(fmt.Sprintf("rules[%d]", i), pricing.RuleConditionConfig, err.Error())
		}
		if rule.PriceRange != nil {
			conditionConfig, err = conditionConfig.WithPriceRange(rule.PriceRange.MinPrice, rule.PriceRange.MaxPrice)
			if err != nil {
				return nil, fieldValidationError(fmt.Sprintf("rules[%d].price_range", i), pricing.RuleConditionConfig, err.Error())
			}
		}
		configs = append(configs, conditionConfig)
	}
	return configs, nil
}
