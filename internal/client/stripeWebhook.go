package client

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"storefront-backend/internal/model"
)

const signatureTolerance = 5 * time.Minute

var (
	ErrInvalidSignature = fmt.Errorf("webhook signature verification failed")
	ErrStaleTimestamp   = fmt.Errorf("webhook timestamp outside tolerance")
)

// ConstructEvent verifies the Stripe-Signature header against the shared
// webhook secret and decodes the event payload. The payload is never
// trusted before the signature checks out.
func (c *stripeClientImpl) ConstructEvent(payload []byte, sigHeader string) (*model.StripeWebhookEvent, error) {
	timestamp, signatures, err := parseSignatureHeader(sigHeader)
	if err != nil {
		return nil, err
	}

	if time.Since(time.Unix(timestamp, 0)) > c.tolerance {
		return nil, ErrStaleTimestamp
	}

	expected := computeSignature(timestamp, payload, c.webhookSecret)
	verified := false
	for _, sig := range signatures {
		if hmac.Equal(sig, expected) {
			verified = true
			break
		}
	}
	if !verified {
		return nil, ErrInvalidSignature
	}

	var event model.StripeWebhookEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, fmt.Errorf("decode webhook payload: %w", err)
	}

	return &event, nil
}

// parseSignatureHeader splits a "t=<unix>,v1=<hex>[,v1=<hex>...]" header.
func parseSignatureHeader(header string) (int64, [][]byte, error) {
	var (
		timestamp  int64
		signatures [][]byte
	)

	if header == "" {
		return 0, nil, ErrInvalidSignature
	}

	for _, part := range strings.Split(header, ",") {
		key, value, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			return 0, nil, ErrInvalidSignature
		}

		switch key {
		case "t":
			ts, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return 0, nil, ErrInvalidSignature
			}
			timestamp = ts
		case "v1":
			sig, err := hex.DecodeString(value)
			if err != nil {
				continue
			}
			signatures = append(signatures, sig)
		}
	}

	if timestamp == 0 || len(signatures) == 0 {
		return 0, nil, ErrInvalidSignature
	}

	return timestamp, signatures, nil
}

// computeSignature is HMAC-SHA256 over "<timestamp>.<payload>".
func computeSignature(timestamp int64, payload []byte, secret string) []byte {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.", timestamp)
	mac.Write(payload)
	return mac.Sum(nil)
}
