package service

import (
	"context"
	"errors"
	"testing"

	"github.com/duomart-next/internal/constants"

	"github.com/shopspring/decimal"
)

func TestAnalyzeCompetitionAgainstPeers(t *testing.T) {
	f := newPricingFixture(t)
	ctx := context.Background()
	product := f.createProduct(t, "hammer", 1000)
	f.createProduct(t, "hammer-pro", 1100)
	f.createProduct(t, "hammer-max", 1200)
	f.createProduct(t, "sledge", 5000)

	result, err := f.competitive.Analyze(ctx, f.sellerActor(), product.ID, AnalyzeOptions{Locale: "en-US"})
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	if result.Analysis.PeerCount != 2 {
		t.Fatalf("expected 2 peers in band, got %d", result.Analysis.PeerCount)
	}
	if result.Analysis.MarketPosition != constants.MarketPositionLow {
		t.Fatalf("expected low position, got %s", result.Analysis.MarketPosition)
	}
	if len(result.Recommendations) == 0 || result.Recommendations[0].Code != constants.RecommendationRaisePrice {
		t.Fatalf("expected raise_price recommendation: %+v", result.Recommendations)
	}
}

func TestAnalyzeCompetitionNoPeers(t *testing.T) {
	f := newPricingFixture(t)
	product := f.createProduct(t, "lonely", 1000)

	result, err := f.competitive.Analyze(context.Background(), f.sellerActor(), product.ID, AnalyzeOptions{})
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	if result.Analysis.MarketPosition != constants.MarketPositionNoCompetition {
		t.Fatalf("expected no_competition, got %s", result.Analysis.MarketPosition)
	}
}

func TestAnalyzeCompetitionRejectsInput(t *testing.T) {
	f := newPricingFixture(t)
	ctx := context.Background()
	product := f.createProduct(t, "saw", 1000)

	band := decimal.NewFromInt(150)
	if _, err := f.competitive.Analyze(ctx, f.sellerActor(), product.ID, AnalyzeOptions{BandPercent: &band}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for band, got %v", err)
	}
	stranger := createTestUser(t, f.db, "stranger@example.com", "")
	if _, err := f.competitive.Analyze(ctx, UserActor(stranger.ID), product.ID, AnalyzeOptions{}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if _, err := f.competitive.Analyze(ctx, AdminActor(1), 9999, AnalyzeOptions{}); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected product not found, got %v", err)
	}
}

func TestAnalyzeCompetitionUsesPrimaryPrice(t *testing.T) {
	f := newPricingFixture(t)
	ctx := context.Background()
	product := f.createProduct(t, "cement", 1000)
	f.createStrategy(t, product.ID, bulkInput("bulk", 1000, 10, nil, -50))
	f.createProduct(t, "cement-a", 1000)
	f.createProduct(t, "cement-b", 1000)

	if got := f.reloadProduct(t, product.ID).CalculatedMinPrice.Decimal; !got.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("expected summary min 500, got %s", got)
	}
	result, err := f.competitive.Analyze(ctx, f.sellerActor(), product.ID, AnalyzeOptions{})
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	if !result.Analysis.ProductPrice.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("expected primary price 1000, got %s", result.Analysis.ProductPrice)
	}
	if result.Analysis.PeerCount != 2 {
		t.Fatalf("expected 2 peers, got %d", result.Analysis.PeerCount)
	}
	if result.Analysis.MarketPosition != constants.MarketPositionCompetitive {
		t.Fatalf("expected competitive position, got %s", result.Analysis.MarketPosition)
	}
}
