package model

// Wire types for the subset of the Stripe API this service touches.

type CheckoutSession struct {
	ID                 string   `json:"id"`
	URL                string   `json:"url"`
	AmountTotal        int64    `json:"amount_total"` // smallest currency unit
	Currency           string   `json:"currency"`
	PaymentIntent      string   `json:"payment_intent"`
	PaymentStatus      string   `json:"payment_status"`
	PaymentMethodTypes []string `json:"payment_method_types"`
}

type PaymentIntent struct {
	ID           string `json:"id"`
	Status       string `json:"status"`
	LatestCharge string `json:"latest_charge"`
}

type Charge struct {
	ID         string `json:"id"`
	Status     string `json:"status"`
	ReceiptURL string `json:"receipt_url"`
}

type StripeEventData struct {
	Object CheckoutSession `json:"object"`
}

type StripeWebhookEvent struct {
	ID      string          `json:"id"`
	Type    string          `json:"type"`
	Created int64           `json:"created"`
	Data    StripeEventData `json:"data"`
}
