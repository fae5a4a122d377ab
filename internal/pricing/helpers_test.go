package pricing

import (
	"time"

	"github.com/duomart-next/internal/constants"
	"github.com/duomart-next/internal/models"

	"github.com/shopspring/decimal"
)

var baseTime = time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

type strategyOption func(*models.PricingStrategy)

func newStrategy(id uint, base int64, opts ...strategyOption) models.PricingStrategy {
	s := models.PricingStrategy{
		ID:              id,
		ProductID:       1,
		PriceUnit:       constants.DefaultPriceUnit,
		ConversionRate:  decimal.NewFromInt(1),
		BasePriceAmount: models.NewMoneyFromInt(base),
		ConditionConfig: models.NoConditionConfig(),
		IsActive:        true,
		CreatedAt:       baseTime.Add(time.Duration(id) * time.Minute),
	}
	for _, opt := range opts {
		opt(&s)
	}
	ApplyDerived(&s, models.MoneyScale)
	return s
}

func withPrimary() strategyOption {
	return func(s *models.PricingStrategy) { s.IsPrimary = true }
}

func inactive() strategyOption {
	return func(s *models.PricingStrategy) { s.IsActive = false }
}

func withAdjustment(pct float64) strategyOption {
	return func(s *models.PricingStrategy) { s.CustomAdjustmentPercent = Percent(pct) }
}

func withCreatedAt(at time.Time) strategyOption {
	return func(s *models.PricingStrategy) { s.CreatedAt = at }
}

func withCondition(conditionType string) strategyOption {
	return func(s *models.PricingStrategy) {
		category, _ := constants.CategoryOfConditionType(conditionType)
		s.ConditionCategory = category
		s.ConditionType = conditionType
	}
}

func withBulk(minQty int, maxQty *int, extraPerUnit *decimal.Decimal) strategyOption {
	return func(s *models.PricingStrategy) {
		cfg, err := models.NewBulkOrderConfig(minQty, maxQty, extraPerUnit)
		if err != nil {
			panic(err)
		}
		s.ConditionCategory = constants.ConditionCategoryOrderCondition
		s.ConditionType = constants.ConditionTypeBulkOrder
		s.ConditionConfig = cfg
	}
}

func withSeasonal(startsAt, endsAt time.Time) strategyOption {
	return func(s *models.PricingStrategy) {
		cfg, err := models.NewSeasonalConfig(startsAt, endsAt)
		if err != nil {
			panic(err)
		}
		s.ConditionCategory = constants.ConditionCategorySeasonal
		s.ConditionType = constants.ConditionTypeSeasonal
		s.ConditionConfig = cfg
	}
}

func withFloor(minPrice int64) strategyOption {
	return func(s *models.PricingStrategy) {
		floor := models.NewMoneyFromInt(minPrice)
		cfg, err := s.ConditionConfig.WithPriceRange(&floor, nil)
		if err != nil {
			panic(err)
		}
		s.ConditionConfig = cfg
	}
}

func intPtr(v int) *int { return &v }

func decPtr(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

func dec(v string) decimal.Decimal { return decimal.RequireFromString(v) }
