package pricing

import (
	"errors"
	"fmt"

	"github.com/duomart-next/internal/constants"
	"github.com/duomart-next/internal/models"
)

// ErrValidation 策略结构校验失败
var ErrValidation = errors.New("pricing strategy validation failed")

// ValidationError 校验失败详情，Rule 标识被违反的规则
type ValidationError struct {
	Field      string
	Rule       string
	Reason     string
	ConflictID uint
}

// 校验规则标识
const (
	RuleNegativeBasePrice    = "negative_base_price"
	RuleConversionRate       = "non_positive_conversion_rate"
	RuleAdjustmentBelowFloor = "adjustment_below_minus_100"
	RuleConditionCombination = "invalid_condition_combination"
	RuleConditionConfig      = "invalid_condition_config"
	RuleRangeOverlap         = "volume_range_overlap"
	RulePrimaryRequired      = "primary_cannot_be_cleared"
	RuleInactivePrimary      = "inactive_primary"
)

func (e *ValidationError) Error() string {
	if e.ConflictID > 0 {
		return fmt.Sprintf("%s: %s (conflicts with strategy #%d)", e.Field, e.Reason, e.ConflictID)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Unwrap 支持 errors.Is(err, ErrValidation)
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// Validate 校验候选策略：existing 为同商品的已存在策略（可包含候选自身的旧版本），无副作用
func Validate(existing []models.PricingStrategy, candidate models.PricingStrategy) error {
	if candidate.BasePriceAmount.IsNegative() {
		return &ValidationError{Field: "base_price_amount", Rule: RuleNegativeBasePrice, Reason: "base price must not be negative"}
	}
	if !candidate.ConversionRate.IsPositive() {
		return &ValidationError{Field: "conversion_rate", Rule: RuleConversionRate, Reason: "conversion rate must be greater than 0"}
	}
	if candidate.CustomAdjustmentPercent.Valid && candidate.CustomAdjustmentPercent.Decimal.LessThan(minAdjustmentValue) {
		return &ValidationError{Field: "custom_adjustment_percent", Rule: RuleAdjustmentBelowFloor, Reason: "adjustment must not be below -100%"}
	}
	if err := validateConditionCombination(candidate.ConditionCategory, candidate.ConditionType); err != nil {
		return err
	}
	if err := candidate.ConditionConfig.CheckFor(candidate.ConditionType); err != nil {
		return &ValidationError{Field: "condition_config", Rule: RuleConditionConfig, Reason: err.Error()}
	}
	if candidate.IsActive && candidate.IsBulkOrder() {
		for i := range existing {
			other := &existing[i]
			if candidate.ID != 0 && other.ID == candidate.ID {
				continue
			}
			if other.ProductID != candidate.ProductID || !other.IsActive || !other.IsBulkOrder() {
				continue
			}
			if candidate.ConditionConfig.BulkOrder.Overlaps(*other.ConditionConfig.BulkOrder) {
				return &ValidationError{
					Field: "condition_config.bulk_order",
					Rule:  RuleRangeOverlap,
					Reason: fmt.Sprintf("volume discount range %s overlaps with existing rule %s",
						candidate.ConditionConfig.BulkOrder.RangeLabel(),
						other.ConditionConfig.BulkOrder.RangeLabel()),
					ConflictID: other.ID,
				}
			}
		}
	}
	return nil
}

func validateConditionCombination(category, conditionType string) error {
	if conditionType == "" {
		if category != constants.ConditionCategoryNone {
			return &ValidationError{Field: "condition_type", Rule: RuleConditionCombination, Reason: "condition_type is required when condition_category is set"}
		}
		return nil
	}
	expected, ok := constants.CategoryOfConditionType(conditionType)
	if !ok {
		return &ValidationError{Field: "condition_type", Rule: RuleConditionCombination, Reason: fmt.Sprintf("unknown condition_type %q", conditionType)}
	}
	if category != expected {
		return &ValidationError{
			Field:  "condition_category",
			Rule:   RuleConditionCombination,
			Reason: fmt.Sprintf("condition_type %q belongs to category %q, got %q", conditionType, expected, category),
		}
	}
	return nil
}

// ValidateVolumeSet 成组校验批量折扣区间（两两不重叠），任一失败则整组拒绝
func ValidateVolumeSet(rules []models.BulkOrderConfig) error {
	for i := range rules {
		if _, err := models.NewBulkOrderConfig(rules[i].MinQuantity, rules[i].MaxQuantity, rules[i].AdditionalDiscountPerUnit); err != nil {
			return &ValidationError{Field: fmt.Sprintf("rules[%d]", i), Rule: RuleConditionConfig, Reason: err.Error()}
		}
	}
	for i := 0; i < len(rules); i++ {
		for j := i + 1; j < len(rules); j++ {
			if rules[i].Overlaps(rules[j]) {
				return &ValidationError{
					Field:  fmt.Sprintf("rules[%d]", j),
					Rule:   RuleRangeOverlap,
					Reason: fmt.Sprintf("volume discount range %s overlaps with rule %s", rules[j].RangeLabel(), rules[i].RangeLabel()),
				}
			}
		}
	}
	return nil
}
