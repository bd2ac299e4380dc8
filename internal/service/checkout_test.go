package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"gorm.io/gorm"

	"storefront-backend/internal/client"
	"storefront-backend/internal/dto"
	"storefront-backend/internal/model"
	"storefront-backend/internal/repository"
)

func newCheckoutService(t *testing.T, db *gorm.DB, stripe client.StripeClient) CheckoutService {
	t.Helper()
	return NewCheckoutService(
		db,
		stripe,
		repository.NewOrderRepository(db),
		repository.NewPaymentRepository(db),
		repository.NewWebhookEventRepository(db),
	)
}

func checkoutRequest() *dto.CheckoutRequest {
	return &dto.CheckoutRequest{
		CartItems: []*dto.CartItem{
			{ProductID: 7, Name: "Mug", Price: 10, Quantity: 2, ImageURL: "/img/mug.png"},
		},
		UserEmail:          "buyer@example.com",
		ShippingCost:       5,
		DiscountPercentage: 10,
	}
}

func completedEvent(eventID, sessionID string, amountCents int64) []byte {
	payload, _ := json.Marshal(&model.StripeWebhookEvent{
		ID:   eventID,
		Type: "checkout.session.completed",
		Data: model.StripeEventData{
			Object: model.CheckoutSession{
				ID:                 sessionID,
				AmountTotal:        amountCents,
				Currency:           "usd",
				PaymentIntent:      "pi_123",
				PaymentStatus:      "paid",
				PaymentMethodTypes: []string{"card"},
			},
		},
	})
	return payload
}

func countRows(t *testing.T, db *gorm.DB, value interface{}) int64 {
	t.Helper()
	var count int64
	if err := db.Model(value).Count(&count).Error; err != nil {
		t.Fatalf("count rows: %v", err)
	}
	return count
}

func TestCreateCheckoutSession_PersistsPendingOrder(t *testing.T) {
	db := newTestDB(t)
	stripe := &fakeStripeClient{sessionID: "cs_test_1"}
	svc := newCheckoutService(t, db, stripe)

	resp, err := svc.CreateCheckoutSession(context.Background(), checkoutRequest())
	if err != nil {
		t.Fatalf("create checkout session: %v", err)
	}
	if resp.ID != "cs_test_1" {
		t.Errorf("session id = %q, want cs_test_1", resp.ID)
	}

	var order model.Order
	if err := db.Where("session_id = ?", "cs_test_1").First(&order).Error; err != nil {
		t.Fatalf("order not persisted: %v", err)
	}

	if order.Status != model.OrderStatusPending {
		t.Errorf("status = %q, want %q", order.Status, model.OrderStatusPending)
	}
	if order.Subtotal.String() != "20" {
		t.Errorf("subtotal = %s, want 20", order.Subtotal)
	}
	if order.TotalAmount.String() != "22.5" {
		t.Errorf("total = %s, want 22.5", order.TotalAmount)
	}
	if order.UserEmail != "buyer@example.com" {
		t.Errorf("user email = %q", order.UserEmail)
	}

	var items []model.OrderItem
	if err := db.Where("order_id = ?", order.ID).Find(&items).Error; err != nil {
		t.Fatalf("find order items: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("got %d order items, want 1", len(items))
	}
	if items[0].Name != "Mug" || items[0].Quantity != 2 {
		t.Errorf("unexpected item snapshot: %+v", items[0])
	}
}

func TestCreateCheckoutSession_EmptyCart(t *testing.T) {
	db := newTestDB(t)
	stripe := &fakeStripeClient{sessionID: "cs_test_1"}
	svc := newCheckoutService(t, db, stripe)

	req := checkoutRequest()
	req.CartItems = nil

	_, err := svc.CreateCheckoutSession(context.Background(), req)
	if !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("got %v, want ErrEmptyCart", err)
	}

	if stripe.createCalls != 0 {
		t.Errorf("stripe called %d times on empty cart", stripe.createCalls)
	}
	if n := countRows(t, db, &model.Order{}); n != 0 {
		t.Errorf("%d orders persisted on empty cart", n)
	}
}

func TestCreateCheckoutSession_StripeFailure(t *testing.T) {
	db := newTestDB(t)
	stripe := &fakeStripeClient{createErr: fmt.Errorf("stripe error 502: bad gateway")}
	svc := newCheckoutService(t, db, stripe)

	_, err := svc.CreateCheckoutSession(context.Background(), checkoutRequest())
	if err == nil {
		t.Fatal("expected error when session creation fails")
	}

	// The processor was called before any write, so a failure leaves
	// no orphaned Pending order behind.
	if n := countRows(t, db, &model.Order{}); n != 0 {
		t.Errorf("%d orders persisted after stripe failure", n)
	}
	if n := countRows(t, db, &model.OrderItem{}); n != 0 {
		t.Errorf("%d order items persisted after stripe failure", n)
	}
}

func TestHandleWebhook_CompletedSession(t *testing.T) {
	db := newTestDB(t)
	stripe := &fakeStripeClient{sessionID: "cs_test_1", receiptURL: "https://pay.example.com/receipt/1"}
	svc := newCheckoutService(t, db, stripe)

	if _, err := svc.CreateCheckoutSession(context.Background(), checkoutRequest()); err != nil {
		t.Fatalf("create checkout session: %v", err)
	}

	err := svc.HandleWebhook(context.Background(), completedEvent("evt_1", "cs_test_1", 2250), "sig")
	if err != nil {
		t.Fatalf("handle webhook: %v", err)
	}

	var order model.Order
	if err := db.Where("session_id = ?", "cs_test_1").First(&order).Error; err != nil {
		t.Fatalf("find order: %v", err)
	}
	if order.Status != model.OrderStatusPaid {
		t.Errorf("status = %q, want %q", order.Status, model.OrderStatusPaid)
	}

	var payment model.Payment
	if err := db.Where("payment_id = ?", "cs_test_1").First(&payment).Error; err != nil {
		t.Fatalf("payment not persisted: %v", err)
	}
	if payment.OrderID != order.ID {
		t.Errorf("payment order id = %q, want %q", payment.OrderID, order.ID)
	}
	if payment.Amount.String() != "22.5" {
		t.Errorf("payment amount = %s, want 22.5", payment.Amount)
	}
	if payment.Currency != "usd" || payment.Method != "card" {
		t.Errorf("unexpected payment: %+v", payment)
	}
	if payment.ReceiptURL != "https://pay.example.com/receipt/1" {
		t.Errorf("receipt url = %q", payment.ReceiptURL)
	}
}

func TestHandleWebhook_DuplicateDelivery(t *testing.T) {
	db := newTestDB(t)
	stripe := &fakeStripeClient{sessionID: "cs_test_1"}
	svc := newCheckoutService(t, db, stripe)

	if _, err := svc.CreateCheckoutSession(context.Background(), checkoutRequest()); err != nil {
		t.Fatalf("create checkout session: %v", err)
	}

	// Same event id redelivered.
	for i := 0; i < 2; i++ {
		if err := svc.HandleWebhook(context.Background(), completedEvent("evt_1", "cs_test_1", 2250), "sig"); err != nil {
			t.Fatalf("delivery %d: %v", i+1, err)
		}
	}

	// Same logical event under a fresh event id.
	if err := svc.HandleWebhook(context.Background(), completedEvent("evt_2", "cs_test_1", 2250), "sig"); err != nil {
		t.Fatalf("redelivery with new event id: %v", err)
	}

	if n := countRows(t, db, &model.Payment{}); n != 1 {
		t.Errorf("got %d payments, want exactly 1", n)
	}
}

func TestHandleWebhook_UnknownSession(t *testing.T) {
	db := newTestDB(t)
	stripe := &fakeStripeClient{}
	svc := newCheckoutService(t, db, stripe)

	err := svc.HandleWebhook(context.Background(), completedEvent("evt_1", "cs_missing", 999), "sig")
	if !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("got %v, want ErrOrderNotFound", err)
	}

	if n := countRows(t, db, &model.Payment{}); n != 0 {
		t.Errorf("%d payments persisted for unknown session", n)
	}
	if n := countRows(t, db, &model.WebhookEvent{}); n != 0 {
		t.Errorf("%d events marked processed for unknown session", n)
	}
}

func TestHandleWebhook_InvalidSignature(t *testing.T) {
	db := newTestDB(t)
	stripe := &fakeStripeClient{sessionID: "cs_test_1", eventErr: client.ErrInvalidSignature}
	svc := newCheckoutService(t, db, stripe)

	if _, err := svc.CreateCheckoutSession(context.Background(), checkoutRequest()); err != nil {
		t.Fatalf("create checkout session: %v", err)
	}

	err := svc.HandleWebhook(context.Background(), completedEvent("evt_1", "cs_test_1", 2250), "bad sig")
	if !errors.Is(err, client.ErrInvalidSignature) {
		t.Fatalf("got %v, want ErrInvalidSignature", err)
	}

	var order model.Order
	if err := db.Where("session_id = ?", "cs_test_1").First(&order).Error; err != nil {
		t.Fatalf("find order: %v", err)
	}
	if order.Status != model.OrderStatusPending {
		t.Errorf("order mutated on bad signature: status = %q", order.Status)
	}
	if n := countRows(t, db, &model.Payment{}); n != 0 {
		t.Errorf("%d payments persisted on bad signature", n)
	}
}

func TestHandleWebhook_UnhandledEventType(t *testing.T) {
	db := newTestDB(t)
	svc := newCheckoutService(t, db, &fakeStripeClient{})

	payload, _ := json.Marshal(&model.StripeWebhookEvent{
		ID:   "evt_1",
		Type: "invoice.paid",
	})

	if err := svc.HandleWebhook(context.Background(), payload, "sig"); err != nil {
		t.Fatalf("unhandled event type should be acknowledged: %v", err)
	}

	if n := countRows(t, db, &model.Payment{}); n != 0 {
		t.Errorf("%d payments persisted for unhandled event", n)
	}
}
