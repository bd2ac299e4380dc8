package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"storefront-backend/internal/config"
	"storefront-backend/internal/model"
)

// StripeClient is the narrow port onto the payment processor so the
// checkout and webhook flows can be faked in tests.
type StripeClient interface {
	CreateCheckoutSession(ctx context.Context, params *CheckoutSessionParams) (*model.CheckoutSession, error)
	ConstructEvent(payload []byte, sigHeader string) (*model.StripeWebhookEvent, error)
	GetReceiptURL(ctx context.Context, paymentIntentID string) (string, error)
}

type CheckoutSessionParams struct {
	Amount    decimal.Decimal
	Currency  string
	OrderID   string
	UserEmail string
}

type stripeClientImpl struct {
	httpClient    *http.Client
	baseApiURL    string
	secretKey     string
	webhookSecret string
	successURL    string
	cancelURL     string
	tolerance     time.Duration
}

func NewStripeClient(stripeCfg *config.Stripe) StripeClient {
	return &stripeClientImpl{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseApiURL:    stripeCfg.BaseApiURL,
		secretKey:     stripeCfg.SecretKey,
		webhookSecret: stripeCfg.WebhookSecret,
		successURL:    stripeCfg.SuccessURL,
		cancelURL:     stripeCfg.CancelURL,
		tolerance:     signatureTolerance,
	}
}

func (c *stripeClientImpl) CreateCheckoutSession(ctx context.Context, params *CheckoutSessionParams) (*model.CheckoutSession, error) {
	cents := params.Amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()

	// The whole cart is charged as one line item, the per-product
	// breakdown lives in our own order_items table.
	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("payment_method_types[0]", "card")
	form.Set("line_items[0][price_data][currency]", strings.ToLower(params.Currency))
	form.Set("line_items[0][price_data][product_data][name]", "Total Cart Amount")
	form.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(cents, 10))
	form.Set("line_items[0][quantity]", "1")
	form.Set("metadata[order_id]", params.OrderID)
	form.Set("metadata[user_email]", params.UserEmail)
	form.Set("customer_email", params.UserEmail)
	form.Set("success_url", c.successURL)
	form.Set("cancel_url", c.cancelURL)

	var session model.CheckoutSession
	if err := c.postForm(ctx, "/v1/checkout/sessions", form, &session); err != nil {
		return nil, fmt.Errorf("create checkout session: %w", err)
	}

	return &session, nil
}

// GetReceiptURL follows the payment-intent → latest-charge chain to the
// hosted receipt.
func (c *stripeClientImpl) GetReceiptURL(ctx context.Context, paymentIntentID string) (string, error) {
	var intent model.PaymentIntent
	if err := c.get(ctx, "/v1/payment_intents/"+paymentIntentID, &intent); err != nil {
		return "", fmt.Errorf("retrieve payment intent: %w", err)
	}

	if intent.LatestCharge == "" {
		return "", fmt.Errorf("payment intent %s has no charge", paymentIntentID)
	}

	var charge model.Charge
	if err := c.get(ctx, "/v1/charges/"+intent.LatestCharge, &charge); err != nil {
		return "", fmt.Errorf("retrieve charge: %w", err)
	}

	return charge.ReceiptURL, nil
}

func (c *stripeClientImpl) postForm(ctx context.Context, path string, form url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseApiURL+path,
		strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("http new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return c.do(req, out)
}

func (c *stripeClientImpl) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseApiURL+path, nil)
	if err != nil {
		return fmt.Errorf("http new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)

	return c.do(req, out)
}

func (c *stripeClientImpl) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("stripe error %d: %s", resp.StatusCode, string(b))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode stripe response: %w", err)
	}

	return nil
}
