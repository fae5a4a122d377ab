package service

import (
	"errors"
	"time"

	"github.com/duomart-next/internal/pricing"
	"github.com/duomart-next/internal/repository"

	"gorm.io/gorm"
)

// RecomputedSummary 重算后的价格汇总及新的定价版本
type RecomputedSummary struct {
	pricing.Summary
	Version int64
}

// PriceSummaryMaintainer 商品价格汇总维护
type PriceSummaryMaintainer struct {
	productRepo  repository.ProductRepository
	strategyRepo repository.PricingStrategyRepository
	now          func() time.Time
}

// NewPriceSummaryMaintainer 创建价格汇总维护器
func NewPriceSummaryMaintainer(productRepo repository.ProductRepository, strategyRepo repository.PricingStrategyRepository) *PriceSummaryMaintainer {
	return &PriceSummaryMaintainer{
		productRepo:  productRepo,
		strategyRepo: strategyRepo,
		now:          time.Now,
	}
}

// Recompute 在事务内按当前启用策略重算商品价格汇总并递增定价版本；每个变更事务只调用一次
func (m *PriceSummaryMaintainer) Recompute(tx *gorm.DB, productID uint) (RecomputedSummary, error) {
	strategies, err := m.strategyRepo.WithTx(tx).ListByProduct(productID, true)
	if err != nil {
		return RecomputedSummary{}, err
	}
	summary := pricing.ComputeSummary(strategies)
	version, err := m.productRepo.WithTx(tx).UpdatePriceSummary(productID, summary, m.now().UTC())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RecomputedSummary{}, ErrProductNotFound
		}
		return RecomputedSummary{}, err
	}
	return RecomputedSummary{Summary: summary, Version: version}, nil
}
