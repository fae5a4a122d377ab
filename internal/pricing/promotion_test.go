package pricing

import (
	"testing"
	"time"

	"github.com/duomart-next/internal/constants"
	"github.com/duomart-next/internal/models"
)

func TestPromotionCandidateOrdering(t *testing.T) {
	strategies := []models.PricingStrategy{
		newStrategy(1, 1000, withPrimary()),
		newStrategy(2, 1000, withCondition(constants.ConditionTypeExpress)),
		newStrategy(3, 1000, withCondition(constants.ConditionTypeCashPayment)),
		newStrategy(4, 1000, withCondition(constants.ConditionTypeCardPayment)),
		newStrategy(5, 1000, withCondition(constants.ConditionTypeBankTransfer), inactive()),
	}
	// 分类优先级最高者中最近创建的
	if picked := PromotionCandidate(strategies, 1); picked == nil || picked.ID != 4 {
		t.Fatalf("want strategy 4, got %+v", picked)
	}
}

func TestPromotionCandidatePrefersUnconditional(t *testing.T) {
	strategies := []models.PricingStrategy{
		newStrategy(1, 1000, withPrimary(), withCondition(constants.ConditionTypeVIP)),
		newStrategy(2, 1000, withCondition(constants.ConditionTypeCashPayment)),
		newStrategy(3, 1000),
	}
	if picked := PromotionCandidate(strategies, 1); picked == nil || picked.ID != 3 {
		t.Fatalf("want strategy 3, got %+v", picked)
	}
}

func TestPromotionCandidateTieBreaksOnID(t *testing.T) {
	at := baseTime.Add(time.Hour)
	strategies := []models.PricingStrategy{
		newStrategy(8, 1000, withCreatedAt(at)),
		newStrategy(9, 1000, withCreatedAt(at)),
	}
	if picked := PromotionCandidate(strategies, 0); picked == nil || picked.ID != 9 {
		t.Fatalf("want strategy 9, got %+v", picked)
	}
}

func TestPromotionCandidateNone(t *testing.T) {
	strategies := []models.PricingStrategy{newStrategy(1, 1000, withPrimary())}
	if picked := PromotionCandidate(strategies, 1); picked != nil {
		t.Fatalf("want no candidate, got %+v", picked)
	}
}

func TestCurrentPrimaryAndCounts(t *testing.T) {
	strategies := []models.PricingStrategy{
		newStrategy(1, 1000),
		newStrategy(2, 1000, withPrimary()),
		newStrategy(3, 1000, withPrimary(), inactive()),
	}
	if primary := CurrentPrimary(strategies); primary == nil || primary.ID != 2 {
		t.Fatalf("want primary 2, got %+v", primary)
	}
	if got := CountActivePrimaries(strategies); got != 1 {
		t.Fatalf("want 1 active primary got %d", got)
	}
	if got := CountActive(strategies); got != 2 {
		t.Fatalf("want 2 active got %d", got)
	}
}
