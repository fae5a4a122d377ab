package pricing

import (
	"reflect"
	"testing"

	"github.com/duomart-next/internal/models"
)

func TestComputeSummaryAggregateScenario(t *testing.T) {
	strategies := []models.PricingStrategy{
		newStrategy(1, 1000, withPrimary()),
		newStrategy(2, 1200),
		newStrategy(3, 1000, withAdjustment(-10)),
	}
	summary := ComputeSummary(strategies)
	if !summary.CalculatedMin.Equal(dec("900")) || !summary.CalculatedMax.Equal(dec("1200")) {
		t.Fatalf("want calculated 900..1200 got %s..%s", summary.CalculatedMin, summary.CalculatedMax)
	}
	if !summary.BaseMin.Equal(dec("1000")) || !summary.BaseMax.Equal(dec("1200")) {
		t.Fatalf("want base 1000..1200 got %s..%s", summary.BaseMin, summary.BaseMax)
	}
	if !summary.HasAnyDiscount || !summary.BestDiscountPercent.Valid || !summary.BestDiscountPercent.Decimal.Equal(dec("-10")) {
		t.Fatalf("want best discount -10: %+v", summary.BestDiscountPercent)
	}
	if summary.ActiveCount != 3 {
		t.Fatalf("want 3 active got %d", summary.ActiveCount)
	}
}

func TestComputeSummaryIgnoresInactiveAndIsOrderFree(t *testing.T) {
	a := newStrategy(1, 1000, withPrimary())
	b := newStrategy(2, 1000, withAdjustment(-25))
	c := newStrategy(3, 100, inactive())

	first := ComputeSummary([]models.PricingStrategy{a, b, c})
	second := ComputeSummary([]models.PricingStrategy{c, b, a})
	if first.ActiveCount != 2 {
		t.Fatalf("want 2 active got %d", first.ActiveCount)
	}
	if !first.BaseMin.Equal(dec("1000")) {
		t.Fatalf("inactive base price must be excluded, got %s", first.BaseMin)
	}
	if !first.CalculatedMin.Equal(second.CalculatedMin) || !first.BestDiscountPercent.Decimal.Equal(second.BestDiscountPercent.Decimal) {
		t.Fatalf("summary should not depend on order: %+v vs %+v", first, second)
	}
	if again := ComputeSummary([]models.PricingStrategy{a, b, c}); !reflect.DeepEqual(first, again) {
		t.Fatalf("summary should be idempotent: %+v vs %+v", first, again)
	}
}

func TestComputeSummaryEmpty(t *testing.T) {
	summary := ComputeSummary(nil)
	if !summary.CalculatedMin.IsZero() || !summary.CalculatedMax.IsZero() || summary.ActiveCount != 0 {
		t.Fatalf("empty set should reset to zero: %+v", summary)
	}
	if summary.HasAnyDiscount || summary.BestDiscountPercent.Valid {
		t.Fatalf("empty set has no discount: %+v", summary)
	}

	product := models.Product{HasAnyDiscount: true, BestDiscountPercent: Percent(-5)}
	summary.ApplyTo(&product)
	if product.HasAnyDiscount || product.BestDiscountPercent.Valid {
		t.Fatalf("apply should clear stale discount fields: %+v", product)
	}
}

func TestComputeSummaryMarkupIsNotDiscount(t *testing.T) {
	summary := ComputeSummary([]models.PricingStrategy{newStrategy(1, 100, withAdjustment(15))})
	if summary.HasAnyDiscount || summary.BestDiscountPercent.Valid {
		t.Fatalf("markup is not a discount: %+v", summary)
	}
	if !summary.CalculatedMax.Equal(dec("115")) {
		t.Fatalf("want max 115 got %s", summary.CalculatedMax)
	}
}
