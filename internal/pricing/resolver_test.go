package pricing

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/duomart-next/internal/constants"
	"github.com/duomart-next/internal/models"
)

var defaultOptions = Options{Scale: 2, MaxBulkExtraPercent: DefaultMaxBulkExtraPercent}

func traceKeys(steps []TraceStep) []string {
	keys := make([]string, 0, len(steps))
	for _, step := range steps {
		keys = append(keys, step.Key)
	}
	return keys
}

func hasTrace(steps []TraceStep, key string) bool {
	for _, step := range steps {
		if step.Key == key {
			return true
		}
	}
	return false
}

func mustResolve(t *testing.T, strategies []models.PricingStrategy, conditions Conditions) Resolution {
	t.Helper()
	result, err := Resolve(strategies, conditions, defaultOptions)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	return result
}

func TestResolveFallbackAndBulkMatch(t *testing.T) {
	strategies := []models.PricingStrategy{
		newStrategy(1, 1000, withPrimary()),
		newStrategy(2, 1000, withAdjustment(-10), withBulk(50, nil, nil)),
	}

	small := mustResolve(t, strategies, Conditions{Quantity: 10})
	if small.Strategy.ID != 1 || small.Selection != SelectionFallbackPrimary {
		t.Fatalf("qty 10 should fall back to primary: id=%d selection=%s", small.Strategy.ID, small.Selection)
	}
	if !small.Price.Equal(dec("1000")) || len(small.Matched) != 0 {
		t.Fatalf("qty 10 want 1000 without matches, got %s matched=%d", small.Price, len(small.Matched))
	}

	large := mustResolve(t, strategies, Conditions{Quantity: 60})
	if large.Strategy.ID != 2 || large.Selection != SelectionMatched {
		t.Fatalf("qty 60 should match bulk: id=%d selection=%s", large.Strategy.ID, large.Selection)
	}
	if !large.Price.Equal(dec("900")) {
		t.Fatalf("qty 60 want 900 got %s", large.Price)
	}
	if !hasTrace(large.Trace, TraceMatched) || large.Trace[len(large.Trace)-1].Key != TraceFinal {
		t.Fatalf("unexpected trace: %v", traceKeys(large.Trace))
	}
}

func TestResolveNoActiveStrategy(t *testing.T) {
	if _, err := Resolve([]models.PricingStrategy{newStrategy(1, 100, inactive())}, Conditions{}, defaultOptions); !errors.Is(err, ErrNoActiveStrategy) {
		t.Fatalf("want ErrNoActiveStrategy got %v", err)
	}
	if _, err := Resolve(nil, Conditions{}, defaultOptions); !errors.Is(err, ErrNoActiveStrategy) {
		t.Fatalf("want ErrNoActiveStrategy for empty set got %v", err)
	}
}

func TestResolveFallbackOldestWithoutPrimary(t *testing.T) {
	strategies := []models.PricingStrategy{
		newStrategy(3, 700),
		newStrategy(2, 900),
		newStrategy(5, 500, withCreatedAt(baseTime.Add(-time.Hour))),
	}
	result := mustResolve(t, strategies, Conditions{})
	if result.Strategy.ID != 5 || result.Selection != SelectionFallbackOldest {
		t.Fatalf("want oldest strategy 5, got id=%d selection=%s", result.Strategy.ID, result.Selection)
	}
}

func TestResolveSelectionOrder(t *testing.T) {
	created := baseTime
	strategies := []models.PricingStrategy{
		newStrategy(1, 1000, withPrimary()),
		newStrategy(2, 1000, withCondition(constants.ConditionTypeCashPayment), withAdjustment(-5)),
		newStrategy(3, 1000, withCondition(constants.ConditionTypeVIP), withAdjustment(-8)),
		newStrategy(4, 1000, withCondition(constants.ConditionTypeExpress), withAdjustment(3)),
	}
	conditions := Conditions{PaymentMethod: "cash_payment", CustomerType: "vip", DeliveryMethod: "express"}
	result := mustResolve(t, strategies, conditions)
	if result.Strategy.ID != 3 {
		t.Fatalf("largest discount should win, got %d", result.Strategy.ID)
	}
	matched := make([]uint, 0, len(result.Matched))
	for _, s := range result.Matched {
		matched = append(matched, s.ID)
	}
	if !reflect.DeepEqual(matched, []uint{3, 2, 4}) {
		t.Fatalf("want matched order [3 2 4] got %v", matched)
	}

	// 调整相同则按最终价，再按创建时间和 ID
	tied := []models.PricingStrategy{
		newStrategy(7, 900, withCondition(constants.ConditionTypeCardPayment), withCreatedAt(created)),
		newStrategy(6, 800, withCondition(constants.ConditionTypeCardPayment), withCreatedAt(created)),
		newStrategy(5, 800, withCondition(constants.ConditionTypeCardPayment), withCreatedAt(created)),
	}
	for _, order := range [][]int{{0, 1, 2}, {2, 1, 0}, {1, 2, 0}} {
		input := []models.PricingStrategy{tied[order[0]], tied[order[1]], tied[order[2]]}
		if got := mustResolve(t, input, Conditions{PaymentMethod: "card_payment"}); got.Strategy.ID != 5 {
			t.Fatalf("input order %v: want strategy 5 got %d", order, got.Strategy.ID)
		}
	}
}

func TestResolveUnconditionalNeverMatches(t *testing.T) {
	strategies := []models.PricingStrategy{
		newStrategy(1, 1000, withPrimary()),
		newStrategy(2, 500, withAdjustment(-50)),
	}
	if result := mustResolve(t, strategies, Conditions{PaymentMethod: "cash_payment"}); result.Strategy.ID != 1 {
		t.Fatalf("unconditional strategy must not match, got %d", result.Strategy.ID)
	}
}

func TestResolveSeasonalWindow(t *testing.T) {
	start := baseTime
	end := baseTime.Add(48 * time.Hour)
	strategies := []models.PricingStrategy{
		newStrategy(1, 1000, withPrimary()),
		newStrategy(2, 1000, withAdjustment(-20), withSeasonal(start, end)),
	}

	inside := mustResolve(t, strategies, Conditions{At: start.Add(time.Hour)})
	if inside.Strategy.ID != 2 || !inside.Price.Equal(dec("800")) {
		t.Fatalf("inside window want strategy 2 at 800, got %d at %s", inside.Strategy.ID, inside.Price)
	}
	// 窗口右开
	if atEnd := mustResolve(t, strategies, Conditions{At: end}); atEnd.Strategy.ID != 1 {
		t.Fatalf("window end should fall back to primary, got %d", atEnd.Strategy.ID)
	}
}

func TestResolveBulkExtraDiscount(t *testing.T) {
	strategies := []models.PricingStrategy{
		newStrategy(1, 1000, withPrimary()),
		newStrategy(2, 1000, withAdjustment(-10), withBulk(50, nil, decPtr("0.5"))),
	}
	tests := []struct {
		quantity int
		extra    string
		price    string
	}{
		{quantity: 60, extra: "5", price: "855"},
		{quantity: 500, extra: "30", price: "630"},
		{quantity: 50, extra: "0", price: "900"},
	}
	for _, tt := range tests {
		result := mustResolve(t, strategies, Conditions{Quantity: tt.quantity})
		if !result.StrategyFinalPrice.Equal(dec("900")) {
			t.Fatalf("qty %d: strategy final price want 900 got %s", tt.quantity, result.StrategyFinalPrice)
		}
		if !result.BulkExtraPercent.Equal(dec(tt.extra)) || !result.Price.Equal(dec(tt.price)) {
			t.Fatalf("qty %d: want extra %s price %s, got %s / %s", tt.quantity, tt.extra, tt.price, result.BulkExtraPercent, result.Price)
		}
		if tt.extra != "0" && !hasTrace(result.Trace, TraceBulkExtraDiscount) {
			t.Fatalf("qty %d: missing bulk extra trace: %v", tt.quantity, traceKeys(result.Trace))
		}
	}
}

func TestResolveBulkExtraDiscountFloor(t *testing.T) {
	strategies := []models.PricingStrategy{
		newStrategy(1, 1000, withPrimary()),
		newStrategy(2, 1000, withAdjustment(-10), withBulk(50, nil, decPtr("1")), withFloor(850)),
	}
	result := mustResolve(t, strategies, Conditions{Quantity: 80})
	if !result.Price.Equal(dec("850")) {
		t.Fatalf("want price clamped at 850, got %s", result.Price)
	}
	if !hasTrace(result.Trace, TraceFloorClamped) {
		t.Fatalf("missing floor trace: %v", traceKeys(result.Trace))
	}
}

func TestResolveQuantityBelowOne(t *testing.T) {
	strategies := []models.PricingStrategy{
		newStrategy(1, 1000, withPrimary()),
		newStrategy(2, 1000, withAdjustment(-10), withBulk(1, intPtr(9), nil)),
	}
	if result := mustResolve(t, strategies, Conditions{Quantity: 0}); result.Strategy.ID != 2 {
		t.Fatalf("quantity below one counts as one, got %d", result.Strategy.ID)
	}
}

func TestResolveDoesNotMutateInput(t *testing.T) {
	strategies := []models.PricingStrategy{
		newStrategy(2, 1000, withCondition(constants.ConditionTypeCashPayment)),
		newStrategy(1, 1000, withCondition(constants.ConditionTypeCashPayment), withAdjustment(-1)),
	}
	mustResolve(t, strategies, Conditions{PaymentMethod: "cash_payment"})
	if strategies[0].ID != 2 || strategies[1].ID != 1 {
		t.Fatalf("input slice was reordered: %d, %d", strategies[0].ID, strategies[1].ID)
	}
}

func TestRoundTripCreateThenResolve(t *testing.T) {
	created := newStrategy(9, 1299, withCondition(constants.ConditionTypeCorporate), withAdjustment(-7.5))
	strategies := []models.PricingStrategy{newStrategy(1, 1500, withPrimary()), created}
	result := mustResolve(t, strategies, Conditions{CustomerType: "corporate"})
	if !result.Price.Equal(created.FinalPriceAmount.Decimal) {
		t.Fatalf("want %s got %s", created.FinalPriceAmount, result.Price)
	}
}
