package cache

import (
	"context"
	"strings"
	"testing"
)

func TestConditionFingerprintStable(t *testing.T) {
	a := ConditionFingerprint("cash_payment", "", "vip", "10")
	b := ConditionFingerprint("cash_payment", "", "vip", "10")
	if a != b {
		t.Fatalf("fingerprint should be stable: %s vs %s", a, b)
	}
	if len(a) != 16 {
		t.Fatalf("fingerprint length want 16 got %d", len(a))
	}
	if ConditionFingerprint("cash_payment", "vip") == ConditionFingerprint("cash_paymentvip", "") {
		t.Fatalf("fingerprint should separate parts")
	}
}

func TestPriceCacheKeys(t *testing.T) {
	if key := resolvedPriceKey(7, 3, "abc"); key != "pricing:resolve:7:v3:abc" {
		t.Fatalf("unexpected resolve key: %s", key)
	}
	if key := pricingVersionKey(7); !strings.HasPrefix(key, "pricing:version:") {
		t.Fatalf("unexpected version key: %s", key)
	}
}

func TestPriceCacheDisabledIsNoop(t *testing.T) {
	UseClient(nil, "")
	ctx := context.Background()
	if _, hit, err := GetPricingVersion(ctx, 1); hit || err != nil {
		t.Fatalf("disabled cache should miss without error: hit=%v err=%v", hit, err)
	}
	if err := InvalidateProductPricing(ctx, 1, 2); err != nil {
		t.Fatalf("disabled invalidation should be noop: %v", err)
	}
	var dest map[string]interface{}
	if hit, err := GetResolvedPrice(ctx, 1, 1, "x", &dest); hit || err != nil {
		t.Fatalf("disabled resolve cache should miss: hit=%v err=%v", hit, err)
	}
}

func TestKeyUsesConfiguredPrefix(t *testing.T) {
	UseClient(nil, "shop")
	if got := Key("rate", "login"); got != "shop:rate:login" {
		t.Fatalf("unexpected key: %s", got)
	}
	if Enabled() || Client() != nil {
		t.Fatalf("nil client should leave cache disabled")
	}
	if err := Close(); err != nil {
		t.Fatalf("close disabled cache failed: %v", err)
	}
	if got := Key("x"); got != "dm:x" {
		t.Fatalf("default prefix expected after close, got %s", got)
	}
}
