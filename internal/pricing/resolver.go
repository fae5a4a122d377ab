package pricing

import (
	"errors"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/duomart-next/internal/constants"
	"github.com/duomart-next/internal/models"

	"github.com/shopspring/decimal"
)

// ErrNoActiveStrategy 商品没有任何启用的策略
var ErrNoActiveStrategy = errors.New("no active pricing strategy")

// DefaultMaxBulkExtraPercent 批量额外折扣默认上限
var DefaultMaxBulkExtraPercent = decimal.NewFromInt(30)

// Conditions 价格解析的运行时条件
type Conditions struct {
	PaymentMethod  string
	DeliveryMethod string
	CustomerType   string
	Quantity       int
	At             time.Time
}

// Normalize 规范化条件：数量小于 1 按 1 处理，时间缺省为当前时间
func (c Conditions) Normalize(now time.Time) Conditions {
	c.PaymentMethod = strings.TrimSpace(c.PaymentMethod)
	c.DeliveryMethod = strings.TrimSpace(c.DeliveryMethod)
	c.CustomerType = strings.TrimSpace(c.CustomerType)
	if c.Quantity < 1 {
		c.Quantity = 1
	}
	if c.At.IsZero() {
		c.At = now
	}
	c.At = c.At.UTC()
	return c
}

// Options 解析参数
type Options struct {
	Scale               int32
	MaxBulkExtraPercent decimal.Decimal
}

// 选择方式
const (
	SelectionMatched         = "matched"
	SelectionFallbackPrimary = "fallback_primary"
	SelectionFallbackOldest  = "fallback_oldest"
)

// 解析过程的追踪键
const (
	TraceCandidates        = "candidates"
	TraceMatched           = "matched"
	TraceFallbackPrimary   = "fallback_primary"
	TraceFallbackOldest    = "fallback_oldest"
	TraceBasePrice         = "base_price"
	TraceAdjustment        = "adjustment"
	TraceBulkExtraDiscount = "bulk_extra_discount"
	TraceFloorClamped      = "floor_clamped"
	TraceFinal             = "final"
)

// TraceStep 解析过程中的一步，由 HTTP 层按语言渲染
type TraceStep struct {
	Key  string   `json:"key"`
	Args []string `json:"args,omitempty"`
}

// Resolution 解析结果
type Resolution struct {
	Strategy           models.PricingStrategy
	Matched            []models.PricingStrategy
	Selection          string
	Price              decimal.Decimal
	StrategyFinalPrice decimal.Decimal
	BulkExtraPercent   decimal.Decimal
	Trace              []TraceStep
}

// Resolve 按条件从策略集合中选出适用策略并计算成交单价；只读，不修改任何输入
func Resolve(strategies []models.PricingStrategy, conditions Conditions, opts Options) (Resolution, error) {
	conditions = conditions.Normalize(time.Now())
	active := make([]models.PricingStrategy, 0, len(strategies))
	for i := range strategies {
		if strategies[i].IsActive {
			active = append(active, strategies[i])
		}
	}
	if len(active) == 0 {
		return Resolution{}, ErrNoActiveStrategy
	}

	result := Resolution{BulkExtraPercent: decimal.Zero}
	result.Trace = append(result.Trace, TraceStep{Key: TraceCandidates, Args: []string{strconv.Itoa(len(active))}})

	matched := make([]models.PricingStrategy, 0, len(active))
	for i := range active {
		if Matches(&active[i], conditions) {
			matched = append(matched, active[i])
		}
	}
	sort.SliceStable(matched, func(i, j int) bool { return selectionLess(&matched[i], &matched[j]) })
	result.Matched = matched

	switch {
	case len(matched) > 0:
		result.Strategy = matched[0]
		result.Selection = SelectionMatched
		result.Trace = append(result.Trace, TraceStep{Key: TraceMatched, Args: []string{
			strategyLabel(&result.Strategy), strconv.Itoa(len(matched)),
		}})
	default:
		if primary := CurrentPrimary(active); primary != nil {
			result.Strategy = *primary
			result.Selection = SelectionFallbackPrimary
			result.Trace = append(result.Trace, TraceStep{Key: TraceFallbackPrimary, Args: []string{strategyLabel(primary)}})
		} else {
			oldest := &active[0]
			for i := 1; i < len(active); i++ {
				if oldestLess(&active[i], oldest) {
					oldest = &active[i]
				}
			}
			result.Strategy = *oldest
			result.Selection = SelectionFallbackOldest
			result.Trace = append(result.Trace, TraceStep{Key: TraceFallbackOldest, Args: []string{strategyLabel(oldest)}})
		}
	}

	chosen := &result.Strategy
	result.Trace = append(result.Trace, TraceStep{Key: TraceBasePrice, Args: []string{chosen.BasePriceAmount.String()}})
	if chosen.CustomAdjustmentPercent.Valid {
		result.Trace = append(result.Trace, TraceStep{Key: TraceAdjustment, Args: []string{
			chosen.CustomAdjustmentPercent.Decimal.String(), chosen.FinalPriceAmount.String(),
		}})
	}

	result.StrategyFinalPrice = chosen.FinalPriceAmount.Decimal
	price := result.StrategyFinalPrice
	if result.Selection == SelectionMatched && chosen.IsBulkOrder() {
		extra := BulkExtraPercent(*chosen.ConditionConfig.BulkOrder, conditions.Quantity, opts.MaxBulkExtraPercent)
		if extra.IsPositive() {
			result.BulkExtraPercent = extra
			price = price.Mul(hundred.Sub(extra)).Div(hundred).Round(opts.Scale)
			result.Trace = append(result.Trace, TraceStep{Key: TraceBulkExtraDiscount, Args: []string{
				extra.String(), strconv.Itoa(conditions.Quantity), price.StringFixed(opts.Scale),
			}})
			if floor := priceFloor(chosen); floor != nil {
				limit := decimal.Min(*floor, result.StrategyFinalPrice)
				if price.LessThan(limit) {
					price = limit
					result.Trace = append(result.Trace, TraceStep{Key: TraceFloorClamped, Args: []string{limit.StringFixed(opts.Scale)}})
				}
			}
		}
	}
	if price.IsNegative() {
		price = decimal.Zero
	}
	result.Price = price
	result.Trace = append(result.Trace, TraceStep{Key: TraceFinal, Args: []string{price.StringFixed(opts.Scale)}})
	return result, nil
}

// Matches 判断单个策略是否匹配运行时条件；无条件策略永不匹配，只作为兜底
func Matches(strategy *models.PricingStrategy, conditions Conditions) bool {
	if strategy == nil || strategy.ConditionType == "" {
		return false
	}
	switch strategy.ConditionCategory {
	case constants.ConditionCategoryPaymentSettlement:
		return conditions.PaymentMethod != "" && strategy.ConditionType == conditions.PaymentMethod
	case constants.ConditionCategoryDelivery:
		return conditions.DeliveryMethod != "" && strategy.ConditionType == conditions.DeliveryMethod
	case constants.ConditionCategoryCustomerType:
		return conditions.CustomerType != "" && strategy.ConditionType == conditions.CustomerType
	case constants.ConditionCategoryOrderCondition:
		quantity := conditions.Quantity
		if quantity < 1 {
			quantity = 1
		}
		return strategy.IsBulkOrder() && strategy.ConditionConfig.BulkOrder.Contains(quantity)
	case constants.ConditionCategorySeasonal:
		return strategy.IsSeasonal() && strategy.ConditionConfig.Seasonal.Contains(conditions.At)
	default:
		return false
	}
}

// BulkExtraPercent 批量额外折扣百分比：每超出起订量一件叠加 per_unit，受上限约束
func BulkExtraPercent(cfg models.BulkOrderConfig, quantity int, maxPercent decimal.Decimal) decimal.Decimal {
	if cfg.AdditionalDiscountPerUnit == nil || !cfg.AdditionalDiscountPerUnit.IsPositive() || !cfg.Contains(quantity) {
		return decimal.Zero
	}
	over := quantity - cfg.MinQuantity
	if over <= 0 {
		return decimal.Zero
	}
	extra := cfg.AdditionalDiscountPerUnit.Mul(decimal.NewFromInt(int64(over)))
	if maxPercent.IsPositive() && extra.GreaterThan(maxPercent) {
		extra = maxPercent
	}
	if extra.GreaterThan(hundred) {
		extra = hundred
	}
	return extra
}

func priceFloor(strategy *models.PricingStrategy) *decimal.Decimal {
	priceRange := strategy.ConditionConfig.PriceRange
	if priceRange == nil || priceRange.MinPrice == nil {
		return nil
	}
	floor := priceRange.MinPrice.Decimal
	return &floor
}

func strategyLabel(strategy *models.PricingStrategy) string {
	label := "#" + strconv.FormatUint(uint64(strategy.ID), 10)
	if strategy.Name != "" {
		label += " " + strategy.Name
	}
	if strategy.ConditionType != "" {
		label += " (" + strategy.ConditionType + ")"
	}
	return label
}
