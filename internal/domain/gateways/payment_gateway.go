package gateways

import (
	"context"

	"artist-membership.backend/internal/domain/entities"
)

// PaymentGateway isolates the payment provider so it can be swapped
// without touching the registration flow.
type PaymentGateway interface {
	// CreateOrder creates a remote order for the given amount in minor
	// units. Failures surface as ErrGatewayUnavailable-wrapped errors.
	CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (*entities.PaymentOrder, error)

	// VerifySignature reports whether the provided signature matches the
	// HMAC-SHA256 of "<orderID>|<paymentID>" under the gateway secret.
	VerifySignature(orderID, paymentID, signature string) bool

	// VerifyWebhookSignature reports whether the raw webhook body matches
	// the signature header under the webhook secret.
	VerifyWebhookSignature(body []byte, signature string) bool
}
