package pricing

import "github.com/duomart-next/internal/models"

// PromotionCandidate 主策略被删除或停用后，从剩余启用策略中选出继任者；excludeID 为被移除的策略
func PromotionCandidate(strategies []models.PricingStrategy, excludeID uint) *models.PricingStrategy {
	var best *models.PricingStrategy
	for i := range strategies {
		s := &strategies[i]
		if !s.IsActive || (excludeID != 0 && s.ID == excludeID) {
			continue
		}
		if best == nil || promotionLess(s, best) {
			best = s
		}
	}
	if best == nil {
		return nil
	}
	picked := *best
	return &picked
}

// CurrentPrimary 返回当前启用的主策略
func CurrentPrimary(strategies []models.PricingStrategy) *models.PricingStrategy {
	for i := range strategies {
		if strategies[i].IsActive && strategies[i].IsPrimary {
			picked := strategies[i]
			return &picked
		}
	}
	return nil
}

// CountActivePrimaries 统计启用的主策略数量
func CountActivePrimaries(strategies []models.PricingStrategy) int {
	count := 0
	for i := range strategies {
		if strategies[i].IsActive && strategies[i].IsPrimary {
			count++
		}
	}
	return count
}

// CountActive 统计启用的策略数量
func CountActive(strategies []models.PricingStrategy) int {
	count := 0
	for i := range strategies {
		if strategies[i].IsActive {
			count++
		}
	}
	return count
}
