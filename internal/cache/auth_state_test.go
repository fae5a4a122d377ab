package cache

import (
	"context"
	"testing"
	"time"

	"github.com/duomart-next/internal/models"
)

func TestBuildUserAuthStateCarriesCustomerType(t *testing.T) {
	cutoff := time.Unix(1700000000, 0)
	state := BuildUserAuthState(&models.User{
		ID:                 5,
		Status:             "active",
		CustomerType:       "wholesale",
		TokenVersion:       3,
		TokenInvalidBefore: &cutoff,
	})
	if state.CustomerType != "wholesale" || state.TokenInvalidBefore != cutoff.Unix() || state.TokenVersion != 3 {
		t.Fatalf("unexpected state: %+v", state)
	}
	if BuildUserAuthState(nil) != nil || BuildAdminAuthState(nil) != nil {
		t.Fatalf("nil models should produce nil state")
	}
	if admin := BuildAdminAuthState(&models.Admin{ID: 1, IsSuper: true}); admin.TokenInvalidBefore != 0 || !admin.IsSuper {
		t.Fatalf("unexpected admin state: %+v", admin)
	}
}

func TestAuthStateDisabledCacheMisses(t *testing.T) {
	UseClient(nil, "")
	ctx := context.Background()
	if err := SetUserAuthState(ctx, &UserAuthState{UserID: 1}); err != nil {
		t.Fatalf("disabled set should be noop: %v", err)
	}
	if state, hit, err := GetUserAuthState(ctx, 1); state != nil || hit || err != nil {
		t.Fatalf("disabled get should miss: state=%v hit=%v err=%v", state, hit, err)
	}
	if _, hit, _ := GetAdminAuthState(ctx, 0); hit {
		t.Fatalf("zero id should never hit")
	}
}
