package pricing

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/duomart-next/internal/constants"
	"github.com/duomart-next/internal/models"

	"github.com/shopspring/decimal"
)

func requireRule(t *testing.T, err error, rule string) *ValidationError {
	t.Helper()
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("want ErrValidation, got %v", err)
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("want *ValidationError, got %T", err)
	}
	if verr.Rule != rule {
		t.Fatalf("want rule %s got %s", rule, verr.Rule)
	}
	return verr
}

func mustValidate(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}

func TestValidateScalars(t *testing.T) {
	valid := newStrategy(0, 100)
	mustValidate(t, Validate(nil, valid))

	negative := valid
	negative.BasePriceAmount = models.NewMoneyFromInt(-1)
	requireRule(t, Validate(nil, negative), RuleNegativeBasePrice)

	zeroRate := valid
	zeroRate.ConversionRate = decimal.Zero
	requireRule(t, Validate(nil, zeroRate), RuleConversionRate)

	tooLow := valid
	tooLow.CustomAdjustmentPercent = Percent(-100.01)
	requireRule(t, Validate(nil, tooLow), RuleAdjustmentBelowFloor)

	boundary := valid
	boundary.CustomAdjustmentPercent = Percent(-100)
	mustValidate(t, Validate(nil, boundary))
}

func TestValidateConditionCombination(t *testing.T) {
	tests := []struct {
		name          string
		category      string
		conditionType string
		wantErr       bool
	}{
		{name: "unconditional", category: "", conditionType: "", wantErr: false},
		{name: "matching pair", category: constants.ConditionCategoryPaymentSettlement, conditionType: constants.ConditionTypeCashPayment, wantErr: false},
		{name: "category without type", category: constants.ConditionCategoryDelivery, conditionType: "", wantErr: true},
		{name: "foreign category", category: constants.ConditionCategoryDelivery, conditionType: constants.ConditionTypeVIP, wantErr: true},
		{name: "unknown type", category: constants.ConditionCategoryCustomerType, conditionType: "government", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStrategy(0, 100)
			s.ConditionCategory = tt.category
			s.ConditionType = tt.conditionType
			err := Validate(nil, s)
			if tt.wantErr {
				requireRule(t, err, RuleConditionCombination)
				return
			}
			mustValidate(t, err)
		})
	}
}

func TestValidateConditionConfigKind(t *testing.T) {
	s := newStrategy(0, 100, withCondition(constants.ConditionTypeBulkOrder))
	requireRule(t, Validate(nil, s), RuleConditionConfig)

	seasonal := newStrategy(0, 100, withSeasonal(baseTime, baseTime.Add(24*time.Hour)))
	seasonal.ConditionConfig.Seasonal.EndsAt = seasonal.ConditionConfig.Seasonal.StartsAt
	requireRule(t, Validate(nil, seasonal), RuleConditionConfig)
}

func TestValidateBulkOverlap(t *testing.T) {
	existing := []models.PricingStrategy{
		newStrategy(1, 100, withBulk(1, intPtr(10), nil)),
		newStrategy(2, 100, withBulk(11, intPtr(20), nil)),
	}

	overlapping := newStrategy(0, 100, withBulk(5, intPtr(15), nil))
	verr := requireRule(t, Validate(existing, overlapping), RuleRangeOverlap)
	if verr.ConflictID != 1 || !strings.Contains(verr.Error(), "#1") {
		t.Fatalf("conflict should name strategy 1: %v", verr)
	}

	disjoint := newStrategy(0, 100, withBulk(21, intPtr(30), nil))
	mustValidate(t, Validate(existing, disjoint))

	openEnded := newStrategy(0, 100, withBulk(25, nil, nil))
	mustValidate(t, Validate(existing, openEnded))
	withOpen := append(existing, newStrategy(3, 100, withBulk(25, nil, nil)))
	requireRule(t, Validate(withOpen, newStrategy(0, 100, withBulk(1000, intPtr(2000), nil))), RuleRangeOverlap)
}

func TestValidateBulkOverlapIgnoresSelfAndInactive(t *testing.T) {
	existing := []models.PricingStrategy{
		newStrategy(1, 100, withBulk(1, intPtr(10), nil)),
		newStrategy(2, 100, withBulk(11, intPtr(20), nil), inactive()),
	}

	self := newStrategy(1, 100, withBulk(1, intPtr(12), nil))
	// 自身旧区间与停用区间不参与比较
	mustValidate(t, Validate(existing, self))

	disabledCandidate := newStrategy(0, 100, withBulk(5, intPtr(8), nil), inactive())
	mustValidate(t, Validate(existing, disabledCandidate))
}

func TestValidateVolumeSet(t *testing.T) {
	ok := []models.BulkOrderConfig{
		{MinQuantity: 1, MaxQuantity: intPtr(10)},
		{MinQuantity: 11, MaxQuantity: intPtr(20)},
		{MinQuantity: 21},
	}
	mustValidate(t, ValidateVolumeSet(ok))

	overlapping := []models.BulkOrderConfig{
		{MinQuantity: 1, MaxQuantity: intPtr(10)},
		{MinQuantity: 10, MaxQuantity: intPtr(20)},
	}
	requireRule(t, ValidateVolumeSet(overlapping), RuleRangeOverlap)

	malformed := []models.BulkOrderConfig{{MinQuantity: 5, MaxQuantity: intPtr(5)}}
	requireRule(t, ValidateVolumeSet(malformed), RuleConditionConfig)
}
