package service

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"storefront-backend/internal/model"
	"storefront-backend/internal/repository"
)

func orderServiceFixture(t *testing.T) (OrderService, CheckoutService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	stripe := &fakeStripeClient{sessionID: "cs_test_1"}
	checkout := newCheckoutService(t, db, stripe)
	orders := NewOrderService(db, repository.NewOrderRepository(db), repository.NewPaymentRepository(db))
	return orders, checkout, db
}

func paidOrder(t *testing.T, checkout CheckoutService, db *gorm.DB) *model.Order {
	t.Helper()
	ctx := context.Background()

	if _, err := checkout.CreateCheckoutSession(ctx, checkoutRequest()); err != nil {
		t.Fatalf("create checkout session: %v", err)
	}
	if err := checkout.HandleWebhook(ctx, completedEvent("evt_1", "cs_test_1", 2250), "sig"); err != nil {
		t.Fatalf("handle webhook: %v", err)
	}

	var order model.Order
	if err := db.Where("session_id = ?", "cs_test_1").First(&order).Error; err != nil {
		t.Fatalf("find order: %v", err)
	}
	return &order
}

func TestGetOrder(t *testing.T) {
	orders, checkout, db := orderServiceFixture(t)
	order := paidOrder(t, checkout, db)

	detail, err := orders.GetOrder(context.Background(), order.ID)
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	if detail.Order.ID != order.ID {
		t.Errorf("order id = %q", detail.Order.ID)
	}
	if len(detail.Items) != 1 || detail.Items[0].Name != "Mug" {
		t.Errorf("items = %+v", detail.Items)
	}

	if _, err := orders.GetOrder(context.Background(), "no-such-order"); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("got %v, want ErrOrderNotFound", err)
	}
}

func TestGetPaymentByOrderID(t *testing.T) {
	orders, checkout, db := orderServiceFixture(t)
	order := paidOrder(t, checkout, db)

	payment, err := orders.GetPaymentByOrderID(context.Background(), order.ID)
	if err != nil {
		t.Fatalf("get payment: %v", err)
	}
	if payment.PaymentID != "cs_test_1" {
		t.Errorf("payment id = %q", payment.PaymentID)
	}

	if _, err := orders.GetPaymentByOrderID(context.Background(), "no-such-order"); !errors.Is(err, ErrPaymentNotFound) {
		t.Fatalf("got %v, want ErrPaymentNotFound", err)
	}
}

func TestDeleteOrderCascades(t *testing.T) {
	orders, checkout, db := orderServiceFixture(t)
	order := paidOrder(t, checkout, db)

	if err := orders.DeleteOrder(context.Background(), order.ID); err != nil {
		t.Fatalf("delete order: %v", err)
	}

	// Dependent rows go with the order, no orphans left behind.
	if n := countRows(t, db, &model.Order{}); n != 0 {
		t.Errorf("%d orders remain", n)
	}
	if n := countRows(t, db, &model.OrderItem{}); n != 0 {
		t.Errorf("%d order items remain", n)
	}
	if n := countRows(t, db, &model.Payment{}); n != 0 {
		t.Errorf("%d payments remain", n)
	}

	if err := orders.DeleteOrder(context.Background(), order.ID); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("got %v, want ErrOrderNotFound", err)
	}
}

func TestListOrders(t *testing.T) {
	orders, checkout, _ := orderServiceFixture(t)

	if _, err := checkout.CreateCheckoutSession(context.Background(), checkoutRequest()); err != nil {
		t.Fatalf("create checkout session: %v", err)
	}

	got, err := orders.ListOrders(context.Background())
	if err != nil {
		t.Fatalf("list orders: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d orders, want 1", len(got))
	}
}
