package pricing

import (
	"testing"

	"github.com/duomart-next/internal/models"

	"github.com/shopspring/decimal"
)

func TestFinalPrice(t *testing.T) {
	tests := []struct {
		name       string
		base       string
		adjustment decimal.NullDecimal
		scale      int32
		want       string
	}{
		{name: "discount", base: "1000", adjustment: Percent(-10), scale: 2, want: "900"},
		{name: "no adjustment", base: "1000", adjustment: NoAdjustment(), scale: 2, want: "1000"},
		{name: "markup", base: "1000", adjustment: Percent(20), scale: 2, want: "1200"},
		{name: "round half up", base: "9.99", adjustment: Percent(-15), scale: 2, want: "8.49"},
		{name: "zero decimal currency", base: "1234", adjustment: Percent(-12.5), scale: 0, want: "1080"},
		{name: "full discount", base: "88", adjustment: Percent(-100), scale: 2, want: "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FinalPrice(dec(tt.base), tt.adjustment, tt.scale)
			if !got.Equal(dec(tt.want)) {
				t.Fatalf("got %s want %s", got, tt.want)
			}
		})
	}
}

func TestHasDiscount(t *testing.T) {
	if !HasDiscount(Percent(-0.5)) {
		t.Fatalf("negative adjustment should be a discount")
	}
	for _, adj := range []decimal.NullDecimal{Percent(0), Percent(5), NoAdjustment()} {
		if HasDiscount(adj) {
			t.Fatalf("%v should not be a discount", adj)
		}
	}
}

func TestCurrencyScale(t *testing.T) {
	cases := map[string]int32{
		"CNY":            2,
		"usd":            2,
		"JPY":            0,
		"not-a-currency": 2,
	}
	for code, want := range cases {
		if got := CurrencyScale(code); got != want {
			t.Fatalf("CurrencyScale(%q) want %d got %d", code, want, got)
		}
	}
}

func TestNormalizeCurrency(t *testing.T) {
	if code, ok := NormalizeCurrency(" usd "); !ok || code != "USD" {
		t.Fatalf("want USD got %q ok=%v", code, ok)
	}
	if _, ok := NormalizeCurrency("XX1"); ok {
		t.Fatalf("XX1 should be rejected")
	}
}

func TestEffectiveBounds(t *testing.T) {
	final := dec("900")
	minPrice, maxPrice := EffectiveBounds(final, nil)
	if !minPrice.Equal(final) || !maxPrice.Equal(final) {
		t.Fatalf("without range bounds should equal final: %s..%s", minPrice, maxPrice)
	}

	floor := models.NewMoneyFromInt(800)
	ceiling := models.NewMoneyFromInt(950)
	minPrice, maxPrice = EffectiveBounds(final, &models.PriceRangeConfig{MinPrice: &floor, MaxPrice: &ceiling})
	if !minPrice.Equal(dec("800")) || !maxPrice.Equal(dec("950")) {
		t.Fatalf("want 800..950 got %s..%s", minPrice, maxPrice)
	}

	highFloor := models.NewMoneyFromInt(1000)
	minPrice, _ = EffectiveBounds(final, &models.PriceRangeConfig{MinPrice: &highFloor})
	if !minPrice.Equal(final) {
		t.Fatalf("floor above final keeps final, got %s", minPrice)
	}
}

func TestApplyDerived(t *testing.T) {
	s := newStrategy(1, 1000, withAdjustment(-10))
	if !s.FinalPriceAmount.Equal(dec("900")) || !s.HasDiscount {
		t.Fatalf("unexpected derived final: %s discount=%v", s.FinalPriceAmount, s.HasDiscount)
	}
	if !s.MinEffectivePrice.Equal(dec("900")) || !s.MaxEffectivePrice.Equal(dec("900")) {
		t.Fatalf("unexpected effective bounds: %s..%s", s.MinEffectivePrice, s.MaxEffectivePrice)
	}

	s.CustomAdjustmentPercent = NoAdjustment()
	ApplyDerived(&s, models.MoneyScale)
	if !s.FinalPriceAmount.Equal(dec("1000")) || s.HasDiscount {
		t.Fatalf("cleared adjustment should restore base: %s discount=%v", s.FinalPriceAmount, s.HasDiscount)
	}
}

func TestCanonicalUnitPrice(t *testing.T) {
	tests := []struct {
		price, rate, want string
	}{
		{"120", "12", "10"},
		{"10", "3", "3.3333"},
		{"10", "0", "10"},
	}
	for _, tt := range tests {
		if got := CanonicalUnitPrice(dec(tt.price), dec(tt.rate)); !got.Equal(dec(tt.want)) {
			t.Fatalf("CanonicalUnitPrice(%s, %s) want %s got %s", tt.price, tt.rate, tt.want, got)
		}
	}
}
