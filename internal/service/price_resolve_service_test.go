package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/duomart-next/internal/constants"
	"github.com/duomart-next/internal/models"
	"github.com/duomart-next/internal/pricing"

	"github.com/shopspring/decimal"
)

func TestResolvePriceRoundTrip(t *testing.T) {
	f := newPricingFixture(t)
	ctx := context.Background()
	product := f.createProduct(t, "cement", 1000)
	bulk := f.createStrategy(t, product.ID, bulkInput("50+", 1000, 50, nil, -10))

	small, err := f.resolver.ResolvePrice(ctx, product.ID, pricing.Conditions{Quantity: 10})
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if small.Price.String() != "1000.00" || small.Selection != pricing.SelectionFallbackPrimary {
		t.Fatalf("qty 10 should fall back to primary 1000, got %s (%s)", small.Price, small.Selection)
	}

	large, err := f.resolver.ResolvePrice(ctx, product.ID, pricing.Conditions{Quantity: 60})
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if large.Price.String() != "900.00" || large.AppliedStrategyID != bulk.ID {
		t.Fatalf("qty 60 should use bulk strategy at 900, got %s via %d", large.Price, large.AppliedStrategyID)
	}
	if large.Currency != "CNY" || large.Breakdown.BasePrice.String() != "1000.00" {
		t.Fatalf("unexpected breakdown: %+v", large.Breakdown)
	}
	if len(large.Breakdown.Trace) == 0 || large.Breakdown.Trace[len(large.Breakdown.Trace)-1].Key != pricing.TraceFinal {
		t.Fatalf("trace should end with the final step: %+v", large.Breakdown.Trace)
	}
}

func TestResolvePricePrefersLargestDiscount(t *testing.T) {
	f := newPricingFixture(t)
	ctx := context.Background()
	product := f.createProduct(t, "paint", 1000)
	f.createStrategy(t, product.ID, conditionInput("card", constants.ConditionTypeCardPayment, 1000, -2))
	vip := f.createStrategy(t, product.ID, conditionInput("vip", constants.ConditionTypeVIP, 1000, -12))

	resolved, err := f.resolver.ResolvePrice(ctx, product.ID, pricing.Conditions{
		PaymentMethod: constants.ConditionTypeCardPayment,
		CustomerType:  constants.ConditionTypeVIP,
		Quantity:      1,
	})
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if resolved.AppliedStrategyID != vip.ID || resolved.Price.String() != "880.00" {
		t.Fatalf("expected vip strategy at 880, got %d at %s", resolved.AppliedStrategyID, resolved.Price)
	}
	if len(resolved.AppliedStrategies) != 2 || resolved.AppliedStrategies[0].ID != vip.ID {
		t.Fatalf("applied strategies should list the best match first: %+v", resolved.AppliedStrategies)
	}
}

func TestResolvePriceSeasonalWindow(t *testing.T) {
	f := newPricingFixture(t)
	ctx := context.Background()
	product := f.createProduct(t, "umbrella", 1000)
	starts := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	ends := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	f.createStrategy(t, product.ID, StrategyInput{
		ConditionType:           constants.ConditionTypeSeasonal,
		BasePriceAmount:         decimal.NewFromInt(1000),
		CustomAdjustmentPercent: decimal.NewNullDecimal(decimal.NewFromInt(-20)),
		Seasonal:                &models.SeasonalConfig{StartsAt: starts, EndsAt: ends},
	})

	inside, err := f.resolver.ResolvePrice(ctx, product.ID, pricing.Conditions{At: starts.Add(time.Hour)})
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if inside.Price.String() != "800.00" {
		t.Fatalf("inside window expected 800, got %s", inside.Price)
	}
	atEnd, err := f.resolver.ResolvePrice(ctx, product.ID, pricing.Conditions{At: ends})
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if atEnd.Price.String() != "1000.00" {
		t.Fatalf("window end is exclusive, expected 1000, got %s", atEnd.Price)
	}
}

func TestResolvePriceErrors(t *testing.T) {
	f := newPricingFixture(t)
	ctx := context.Background()

	if _, err := f.resolver.ResolvePrice(ctx, 9999, pricing.Conditions{}); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected product not found, got %v", err)
	}

	bare := &models.Product{
		CategoryID:    f.category.ID,
		Slug:          "bare",
		TitleJSON:     models.JSON{"en-US": "bare"},
		PriceCurrency: "CNY",
		IsActive:      true,
	}
	if err := f.productRepo.Create(bare); err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	_, err := f.resolver.ResolvePrice(ctx, bare.ID, pricing.Conditions{})
	if !errors.Is(err, ErrNoActivePricing) || !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected no active pricing, got %v", err)
	}
}
