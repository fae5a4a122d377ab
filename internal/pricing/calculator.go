// Package pricing 定价引擎的纯计算部分：价格计算、策略校验、条件解析、汇总与竞争分析。
// 本包不访问数据库，调用方负责加载策略并在事务中落库。
package pricing

import (
	"strings"

	"github.com/duomart-next/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

var (
	hundred            = decimal.NewFromInt(100)
	minAdjustmentValue = decimal.NewFromInt(-100)
)

// canonicalUnitPriceScale 标准单位单价保留位数（仅用于展示）
const canonicalUnitPriceScale int32 = 4

// CurrencyScale 返回币种最小货币单位对应的小数位，未知币种按 2 位处理
func CurrencyScale(code string) int32 {
	unit, err := currency.ParseISO(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return models.MoneyScale
	}
	scale, _ := currency.Standard.Rounding(unit)
	if int32(scale) > models.MoneyScale {
		return models.MoneyScale
	}
	return int32(scale)
}

// NormalizeCurrency 规范化 ISO 4217 币种代码
func NormalizeCurrency(code string) (string, bool) {
	unit, err := currency.ParseISO(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return "", false
	}
	return unit.String(), true
}

// FinalPrice 计算最终价格：base * (1 + pct/100)，按最小货币单位四舍五入；未设置调整时返回 base
func FinalPrice(base decimal.Decimal, adjustment decimal.NullDecimal, scale int32) decimal.Decimal {
	if !adjustment.Valid {
		return base
	}
	return base.Mul(hundred.Add(adjustment.Decimal)).Div(hundred).Round(scale)
}

// HasDiscount 调整百分比存在且为负即视为折扣
func HasDiscount(adjustment decimal.NullDecimal) bool {
	return adjustment.Valid && adjustment.Decimal.IsNegative()
}

// EffectiveBounds 根据可选的价格上下限计算有效价格区间
func EffectiveBounds(final decimal.Decimal, priceRange *models.PriceRangeConfig) (decimal.Decimal, decimal.Decimal) {
	minPrice, maxPrice := final, final
	if priceRange == nil {
		return minPrice, maxPrice
	}
	if priceRange.MinPrice != nil {
		minPrice = decimal.Min(final, priceRange.MinPrice.Decimal)
	}
	if priceRange.MaxPrice != nil {
		maxPrice = decimal.Max(final, priceRange.MaxPrice.Decimal)
	}
	return minPrice, maxPrice
}

// CanonicalUnitPrice 换算为商品标准单位的单价
func CanonicalUnitPrice(price, conversionRate decimal.Decimal) decimal.Decimal {
	if !conversionRate.IsPositive() {
		return price
	}
	return price.DivRound(conversionRate, canonicalUnitPriceScale)
}

// ApplyDerived 重新计算策略的派生字段，所有写入前必须调用
func ApplyDerived(strategy *models.PricingStrategy, scale int32) {
	if strategy == nil {
		return
	}
	final := FinalPrice(strategy.BasePriceAmount.Decimal, strategy.CustomAdjustmentPercent, scale)
	strategy.FinalPriceAmount = models.NewMoneyFromDecimal(final)
	strategy.HasDiscount = HasDiscount(strategy.CustomAdjustmentPercent)
	minPrice, maxPrice := EffectiveBounds(strategy.FinalPriceAmount.Decimal, strategy.ConditionConfig.PriceRange)
	strategy.MinEffectivePrice = models.NewMoneyFromDecimal(minPrice)
	strategy.MaxEffectivePrice = models.NewMoneyFromDecimal(maxPrice)
}

// Percent 构造可选百分比
func Percent(value float64) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.NewFromFloat(value))
}

// NoAdjustment 未设置调整百分比
func NoAdjustment() decimal.NullDecimal {
	return decimal.NullDecimal{}
}
