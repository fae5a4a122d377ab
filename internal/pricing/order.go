package pricing

import (
	"github.com/duomart-next/internal/constants"
	"github.com/duomart-next/internal/models"
)

// 所有排序规则均为全序，与存储返回顺序无关。

// selectionLess 命中策略的优先级：调整百分比升序（未设置视为 0）、最终价升序、创建时间升序、ID 升序
func selectionLess(a, b *models.PricingStrategy) bool {
	if cmp := a.AdjustmentOrZero().Cmp(b.AdjustmentOrZero()); cmp != 0 {
		return cmp < 0
	}
	if cmp := a.FinalPriceAmount.Cmp(b.FinalPriceAmount.Decimal); cmp != 0 {
		return cmp < 0
	}
	return oldestLess(a, b)
}

// oldestLess 创建顺序：创建时间升序、ID 升序
func oldestLess(a, b *models.PricingStrategy) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.ID < b.ID
}

// promotionLess 主策略晋升顺序：条件分类排序升序、创建时间降序、ID 降序
func promotionLess(a, b *models.PricingStrategy) bool {
	orderA := constants.ConditionCategoryOrder(a.ConditionCategory)
	orderB := constants.ConditionCategoryOrder(b.ConditionCategory)
	if orderA != orderB {
		return orderA < orderB
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID > b.ID
}
