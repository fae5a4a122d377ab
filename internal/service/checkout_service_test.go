package service

import (
	"context"
	"errors"
	"testing"

	"github.com/duomart-next/internal/constants"

	"gorm.io/gorm"
)

func TestCheckoutRecordsAppliedStrategy(t *testing.T) {
	f := newPricingFixture(t)
	ctx := context.Background()
	product := f.createProduct(t, "bricks", 1000)
	bulk := f.createStrategy(t, product.ID, bulkInput("50+", 1000, 50, nil, -10))
	buyer := createTestUser(t, f.db, "buyer@example.com", "")

	if err := f.cart.UpsertItem(UpsertCartItemInput{UserID: buyer.ID, ProductID: product.ID, Quantity: 0}); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected invalid quantity, got %v", err)
	}
	if err := f.cart.UpsertItem(UpsertCartItemInput{UserID: buyer.ID, ProductID: product.ID, Quantity: 60}); err != nil {
		t.Fatalf("upsert cart item failed: %v", err)
	}

	order, err := f.checkout.Checkout(ctx, CheckoutInput{UserID: buyer.ID})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if order.TotalAmount.String() != "54000.00" || order.Currency != "CNY" {
		t.Fatalf("unexpected order total: %s %s", order.TotalAmount, order.Currency)
	}
	if order.Status != constants.OrderStatusCreated {
		t.Fatalf("unexpected order status: %s", order.Status)
	}

	stored, err := f.checkout.GetOrder(buyer.ID, order.ID)
	if err != nil {
		t.Fatalf("get order failed: %v", err)
	}
	if len(stored.Items) != 1 || stored.Items[0].PricingStrategyID == nil || *stored.Items[0].PricingStrategyID != bulk.ID {
		t.Fatalf("order item should reference bulk strategy %d: %+v", bulk.ID, stored.Items)
	}

	if _, err := f.checkout.Checkout(ctx, CheckoutInput{UserID: buyer.ID}); !errors.Is(err, ErrCartEmpty) {
		t.Fatalf("cart should be cleared after checkout, got %v", err)
	}

	result, err := f.strategies.DeleteStrategy(ctx, f.sellerActor(), bulk.ID)
	if err != nil {
		t.Fatalf("delete referenced strategy failed: %v", err)
	}
	if !result.SoftDisabled {
		t.Fatalf("referenced strategy should be soft disabled")
	}
}

func TestCheckoutOrderIsolatedPerUser(t *testing.T) {
	f := newPricingFixture(t)
	ctx := context.Background()
	product := f.createProduct(t, "nails", 20)
	buyer := createTestUser(t, f.db, "a@example.com", "")
	other := createTestUser(t, f.db, "b@example.com", "")

	if err := f.cart.UpsertItem(UpsertCartItemInput{UserID: buyer.ID, ProductID: product.ID, Quantity: 3}); err != nil {
		t.Fatalf("upsert cart item failed: %v", err)
	}
	order, err := f.checkout.Checkout(ctx, CheckoutInput{UserID: buyer.ID})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if _, err := f.checkout.GetOrder(other.ID, order.ID); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("other user must not see the order, got %v", err)
	}
}

func TestCartUsesCustomerType(t *testing.T) {
	f := newPricingFixture(t)
	product := f.createProduct(t, "drill", 1000)
	vip := f.createStrategy(t, product.ID, conditionInput("vip", constants.ConditionTypeVIP, 1000, -15))
	buyer := createTestUser(t, f.db, "vip@example.com", constants.ConditionTypeVIP)

	if err := f.cart.UpsertItem(UpsertCartItemInput{UserID: buyer.ID, ProductID: product.ID, Quantity: 2}); err != nil {
		t.Fatalf("upsert cart item failed: %v", err)
	}
	view, err := f.cart.ListByUser(context.Background(), buyer.ID, CartPricingInput{})
	if err != nil {
		t.Fatalf("list cart failed: %v", err)
	}
	if len(view.Items) != 1 || view.Items[0].PricingStrategyID != vip.ID {
		t.Fatalf("vip customer should get vip strategy: %+v", view.Items)
	}
	if view.TotalAmount.String() != "1700.00" {
		t.Fatalf("expected total 1700, got %s", view.TotalAmount)
	}
}

func TestCheckoutRejectsStrategyRemovedAfterPricing(t *testing.T) {
	f := newPricingFixture(t)
	ctx := context.Background()
	product := f.createProduct(t, "gravel", 1000)
	bulk := f.createStrategy(t, product.ID, bulkInput("50+", 1000, 50, nil, -10))
	buyer := createTestUser(t, f.db, "buyer@example.com", "")
	if err := f.cart.UpsertItem(UpsertCartItemInput{UserID: buyer.ID, ProductID: product.ID, Quantity: 60}); err != nil {
		t.Fatalf("upsert cart item failed: %v", err)
	}

	view, err := f.cart.ListByUser(ctx, buyer.ID, CartPricingInput{})
	if err != nil {
		t.Fatalf("price cart failed: %v", err)
	}
	if len(view.Items) != 1 || view.Items[0].PricingStrategyID != bulk.ID {
		t.Fatalf("cart should be priced by the bulk strategy: %+v", view.Items)
	}
	if err := f.db.Transaction(func(tx *gorm.DB) error { return f.checkout.confirmPricing(tx, view.Items) }); err != nil {
		t.Fatalf("fresh pricing should be confirmed: %v", err)
	}

	result, err := f.strategies.DeleteStrategy(ctx, f.sellerActor(), bulk.ID)
	if err != nil || result.SoftDisabled {
		t.Fatalf("unreferenced strategy should be hard deleted: %+v %v", result, err)
	}
	err = f.db.Transaction(func(tx *gorm.DB) error { return f.checkout.confirmPricing(tx, view.Items) })
	if !errors.Is(err, ErrPricingChanged) {
		t.Fatalf("expected pricing changed, got %v", err)
	}

	stale := view.Items[0]
	stale.PricingStrategyID = f.listStrategies(t, product.ID)[0].ID
	err = f.db.Transaction(func(tx *gorm.DB) error { return f.checkout.confirmPricing(tx, []CartItemDetail{stale}) })
	if !errors.Is(err, ErrPricingChanged) {
		t.Fatalf("a bumped pricing version should be rejected, got %v", err)
	}
}
