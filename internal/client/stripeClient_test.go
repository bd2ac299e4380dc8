package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"storefront-backend/internal/config"
)

func newTestClient(serverURL string) StripeClient {
	return NewStripeClient(&config.Stripe{
		BaseApiURL:    serverURL,
		SecretKey:     "sk_test",
		WebhookSecret: testWebhookSecret,
		SuccessURL:    "https://shop.example.com/success",
		CancelURL:     "https://shop.example.com/cancel",
	})
}

func TestCreateCheckoutSession_Request(t *testing.T) {
	var gotForm map[string]string
	var gotAuth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/checkout/sessions" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		gotForm = map[string]string{}
		for key := range r.PostForm {
			gotForm[key] = r.PostForm.Get(key)
		}
		json.NewEncoder(w).Encode(map[string]string{
			"id":  "cs_test_1",
			"url": "https://checkout.stripe.com/pay/cs_test_1",
		})
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	session, err := c.CreateCheckoutSession(context.Background(), &CheckoutSessionParams{
		Amount:    decimal.RequireFromString("22.5"),
		Currency:  "USD",
		OrderID:   "order-1",
		UserEmail: "buyer@example.com",
	})
	if err != nil {
		t.Fatalf("create checkout session: %v", err)
	}

	if session.ID != "cs_test_1" {
		t.Errorf("session id = %q", session.ID)
	}
	if gotAuth != "Bearer sk_test" {
		t.Errorf("authorization = %q", gotAuth)
	}
	if got := gotForm["line_items[0][price_data][unit_amount]"]; got != "2250" {
		t.Errorf("unit_amount = %q, want 2250", got)
	}
	if got := gotForm["line_items[0][price_data][currency]"]; got != "usd" {
		t.Errorf("currency = %q, want usd", got)
	}
	if got := gotForm["metadata[order_id]"]; got != "order-1" {
		t.Errorf("metadata order_id = %q", got)
	}
	if got := gotForm["success_url"]; got != "https://shop.example.com/success" {
		t.Errorf("success_url = %q", got)
	}
}

func TestCreateCheckoutSession_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"Invalid API Key"}}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	_, err := c.CreateCheckoutSession(context.Background(), &CheckoutSessionParams{
		Amount:   decimal.NewFromInt(10),
		Currency: "USD",
	})
	if err == nil {
		t.Fatal("expected error on 401 response")
	}
}

func TestGetReceiptURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/payment_intents/pi_1":
			json.NewEncoder(w).Encode(map[string]string{
				"id":            "pi_1",
				"status":        "succeeded",
				"latest_charge": "ch_1",
			})
		case "/v1/charges/ch_1":
			json.NewEncoder(w).Encode(map[string]string{
				"id":          "ch_1",
				"status":      "succeeded",
				"receipt_url": "https://pay.stripe.com/receipts/ch_1",
			})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	receiptURL, err := c.GetReceiptURL(context.Background(), "pi_1")
	if err != nil {
		t.Fatalf("get receipt url: %v", err)
	}
	if receiptURL != "https://pay.stripe.com/receipts/ch_1" {
		t.Errorf("receipt url = %q", receiptURL)
	}
}

func TestGetReceiptURL_NoCharge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"id": "pi_1", "status": "processing"})
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	if _, err := c.GetReceiptURL(context.Background(), "pi_1"); err == nil {
		t.Fatal("expected error when the intent has no charge")
	}
}
