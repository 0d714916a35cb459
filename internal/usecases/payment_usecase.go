package usecases

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"

	"artist-membership.backend/internal/domain/entities"
	domainerrors "artist-membership.backend/internal/domain/errors"
	"artist-membership.backend/internal/domain/gateways"
	"artist-membership.backend/internal/domain/repositories"
	"artist-membership.backend/pkg/logger"
	"artist-membership.backend/pkg/metrics"
)

// PaymentUsecase handles payment verification callbacks and gateway webhooks.
// These are the only paths that move a member out of pending.
type PaymentUsecase struct {
	memberRepo repositories.MemberRepository
	gateway    gateways.PaymentGateway
}

// NewPaymentUsecase creates a new payment usecase
func NewPaymentUsecase(memberRepo repositories.MemberRepository, gateway gateways.PaymentGateway) *PaymentUsecase {
	return &PaymentUsecase{memberRepo: memberRepo, gateway: gateway}
}

// VerifyPayment checks the checkout callback signature and, on success,
// transitions the member holding the order reference to completed. A
// signature mismatch mutates nothing; the member stays pending so the
// client can retry payment.
func (u *PaymentUsecase) VerifyPayment(ctx context.Context, input *entities.VerifyPaymentInput) (*entities.Member, error) {
	if !u.gateway.VerifySignature(input.OrderID, input.PaymentID, input.Signature) {
		metrics.VerificationsTotal.WithLabelValues("invalid_signature").Inc()
		logger.Warn(ctx, "payment signature mismatch", zap.String("order_id", input.OrderID))
		return nil, domainerrors.InvalidSignature("invalid payment signature")
	}

	member, err := u.memberRepo.UpdateStatusByOrderID(ctx, input.OrderID, entities.PaymentStatusCompleted)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			metrics.VerificationsTotal.WithLabelValues("unknown_order").Inc()
			return nil, domainerrors.NotFound("no member found for this order")
		}
		return nil, domainerrors.InternalError(err)
	}

	metrics.VerificationsTotal.WithLabelValues("verified").Inc()
	logger.Info(ctx, "payment verified",
		zap.String("order_id", input.OrderID),
		zap.Uint("member_id", member.ID),
	)
	return member, nil
}

// webhookEvent mirrors the relevant slice of the gateway webhook payload
type webhookEvent struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity struct {
				ID      string `json:"id"`
				OrderID string `json:"order_id"`
			} `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

// ProcessWebhook handles asynchronous payment events from the gateway.
// payment.captured completes the membership, payment.failed marks it failed;
// other events are acknowledged and skipped. Events for unknown orders are
// acknowledged so the gateway stops retrying.
func (u *PaymentUsecase) ProcessWebhook(ctx context.Context, body []byte, signature string) error {
	if !u.gateway.VerifyWebhookSignature(body, signature) {
		metrics.VerificationsTotal.WithLabelValues("invalid_webhook_signature").Inc()
		return domainerrors.InvalidSignature("invalid webhook signature")
	}

	var event webhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return domainerrors.BadRequest("malformed webhook payload")
	}

	var status entities.PaymentStatus
	switch event.Event {
	case "payment.captured":
		status = entities.PaymentStatusCompleted
	case "payment.failed":
		status = entities.PaymentStatusFailed
	default:
		logger.Debug(ctx, "ignoring webhook event", zap.String("event", event.Event))
		return nil
	}

	orderID := event.Payload.Payment.Entity.OrderID
	if orderID == "" {
		return domainerrors.BadRequest("webhook payload missing order id")
	}

	member, err := u.memberRepo.UpdateStatusByOrderID(ctx, orderID, status)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			logger.Warn(ctx, "webhook for unknown order", zap.String("order_id", orderID))
			return nil
		}
		return domainerrors.InternalError(err)
	}

	logger.Info(ctx, "webhook processed",
		zap.String("event", event.Event),
		zap.String("order_id", orderID),
		zap.Uint("member_id", member.ID),
	)
	return nil
}
