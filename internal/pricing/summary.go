package pricing

import (
	"github.com/duomart-next/internal/models"

	"github.com/shopspring/decimal"
)

// Summary 商品价格汇总（只统计启用的策略）
type Summary struct {
	BaseMin             decimal.Decimal
	BaseMax             decimal.Decimal
	CalculatedMin       decimal.Decimal
	CalculatedMax       decimal.Decimal
	HasAnyDiscount      bool
	BestDiscountPercent decimal.NullDecimal
	ActiveCount         int
}

// ComputeSummary 根据策略集合计算汇总；纯函数，与输入顺序无关，空集合返回零值
func ComputeSummary(strategies []models.PricingStrategy) Summary {
	summary := Summary{
		BaseMin:       decimal.Zero,
		BaseMax:       decimal.Zero,
		CalculatedMin: decimal.Zero,
		CalculatedMax: decimal.Zero,
	}
	for i := range strategies {
		s := &strategies[i]
		if !s.IsActive {
			continue
		}
		base := s.BasePriceAmount.Decimal
		final := s.FinalPriceAmount.Decimal
		if summary.ActiveCount == 0 {
			summary.BaseMin, summary.BaseMax = base, base
			summary.CalculatedMin, summary.CalculatedMax = final, final
		} else {
			summary.BaseMin = decimal.Min(summary.BaseMin, base)
			summary.BaseMax = decimal.Max(summary.BaseMax, base)
			summary.CalculatedMin = decimal.Min(summary.CalculatedMin, final)
			summary.CalculatedMax = decimal.Max(summary.CalculatedMax, final)
		}
		summary.ActiveCount++
		if s.HasDiscount {
			summary.HasAnyDiscount = true
			adjustment := s.CustomAdjustmentPercent.Decimal
			if !summary.BestDiscountPercent.Valid || adjustment.LessThan(summary.BestDiscountPercent.Decimal) {
				summary.BestDiscountPercent = decimal.NewNullDecimal(adjustment)
			}
		}
	}
	return summary
}

// ApplyTo 将汇总写入商品字段
func (s Summary) ApplyTo(product *models.Product) {
	if product == nil {
		return
	}
	product.BaseMinPrice = models.NewMoneyFromDecimal(s.BaseMin)
	product.BaseMaxPrice = models.NewMoneyFromDecimal(s.BaseMax)
	product.CalculatedMinPrice = models.NewMoneyFromDecimal(s.CalculatedMin)
	product.CalculatedMaxPrice = models.NewMoneyFromDecimal(s.CalculatedMax)
	product.HasAnyDiscount = s.HasAnyDiscount
	product.BestDiscountPercent = s.BestDiscountPercent
}
