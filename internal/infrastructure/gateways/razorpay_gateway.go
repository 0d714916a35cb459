package gateways

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"

	"artist-membership.backend/internal/domain/entities"
	domainerrors "artist-membership.backend/internal/domain/errors"
)

// RazorpayGateway implements the payment gateway against Razorpay's Orders
// API. Signature checks are done locally; only order creation hits the
// remote API.
type RazorpayGateway struct {
	client        *razorpay.Client
	keySecret     string
	webhookSecret string
}

// NewRazorpayGateway creates a gateway adapter from API credentials
func NewRazorpayGateway(keyID, keySecret, webhookSecret string) *RazorpayGateway {
	return &RazorpayGateway{
		client:        razorpay.NewClient(keyID, keySecret),
		keySecret:     keySecret,
		webhookSecret: webhookSecret,
	}
}

// CreateOrder creates a remote order for the amount in paise. The SDK has no
// context support, so the ctx parameter is accepted for interface parity only.
func (g *RazorpayGateway) CreateOrder(_ context.Context, amountMinor int64, currency, receipt string) (*entities.PaymentOrder, error) {
	data := map[string]interface{}{
		"amount":          amountMinor,
		"currency":        currency,
		"receipt":         receipt,
		"payment_capture": 1,
	}

	body, err := g.client.Order.Create(data, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domainerrors.ErrGatewayUnavailable, err)
	}

	orderID, _ := body["id"].(string)
	if orderID == "" {
		return nil, fmt.Errorf("%w: order response missing id", domainerrors.ErrGatewayUnavailable)
	}

	return &entities.PaymentOrder{
		OrderID:  orderID,
		Amount:   amountMinor,
		Currency: currency,
		Receipt:  receipt,
	}, nil
}

// VerifySignature checks the checkout callback signature:
// HMAC-SHA256 over "<orderID>|<paymentID>" with the key secret, hex encoded.
// An unconfigured secret rejects every callback rather than verifying under
// the empty key.
func (g *RazorpayGateway) VerifySignature(orderID, paymentID, signature string) bool {
	if g.keySecret == "" {
		return false
	}
	expected := hmacHex([]byte(orderID+"|"+paymentID), g.keySecret)
	return hmac.Equal([]byte(expected), []byte(signature))
}

// VerifyWebhookSignature checks the X-Razorpay-Signature header against the
// raw webhook body under the webhook secret. An unconfigured secret rejects
// every event: webhooks are the only path to failed and also complete
// memberships, so they must never verify under a guessable empty key.
func (g *RazorpayGateway) VerifyWebhookSignature(body []byte, signature string) bool {
	if g.webhookSecret == "" {
		return false
	}
	expected := hmacHex(body, g.webhookSecret)
	return hmac.Equal([]byte(expected), []byte(signature))
}

func hmacHex(message []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(message)
	return hex.EncodeToString(mac.Sum(nil))
}
