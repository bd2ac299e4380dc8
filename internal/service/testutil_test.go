package service

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"storefront-backend/internal/client"
	"storefront-backend/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// A named shared in-memory database so all pooled connections see
	// the same data.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	if err := db.AutoMigrate(
		&model.User{},
		&model.Role{},
		&model.Product{},
		&model.Coupon{},
		&model.Order{},
		&model.OrderItem{},
		&model.Payment{},
		&model.WebhookEvent{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	return db
}

// fakeStripeClient implements client.StripeClient without the network.
type fakeStripeClient struct {
	sessionID  string
	createErr  error
	eventErr   error
	receiptURL string
	receiptErr error

	createCalls  int
	receiptCalls int
}

func (f *fakeStripeClient) CreateCheckoutSession(_ context.Context, params *client.CheckoutSessionParams) (*model.CheckoutSession, error) {
	f.createCalls++
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &model.CheckoutSession{
		ID:  f.sessionID,
		URL: "https://checkout.example.com/" + f.sessionID,
	}, nil
}

func (f *fakeStripeClient) ConstructEvent(payload []byte, sigHeader string) (*model.StripeWebhookEvent, error) {
	if f.eventErr != nil {
		return nil, f.eventErr
	}
	var event model.StripeWebhookEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

func (f *fakeStripeClient) GetReceiptURL(_ context.Context, paymentIntentID string) (string, error) {
	f.receiptCalls++
	if f.receiptErr != nil {
		return "", f.receiptErr
	}
	return f.receiptURL, nil
}
