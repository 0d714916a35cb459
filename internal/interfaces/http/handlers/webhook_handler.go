package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domainerrors "artist-membership.backend/internal/domain/errors"
	"artist-membership.backend/internal/interfaces/http/response"
	"artist-membership.backend/internal/usecases"
)

const razorpaySignatureHeader = "X-Razorpay-Signature"

// WebhookHandler handles gateway webhook endpoints
type WebhookHandler struct {
	paymentUsecase *usecases.PaymentUsecase
}

// NewWebhookHandler creates a new webhook handler
func NewWebhookHandler(paymentUsecase *usecases.PaymentUsecase) *WebhookHandler {
	return &WebhookHandler{paymentUsecase: paymentUsecase}
}

// HandleRazorpayWebhook handles asynchronous payment events
// POST /api/webhooks/razorpay
func (h *WebhookHandler) HandleRazorpayWebhook(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil || len(body) == 0 {
		response.Error(c, domainerrors.BadRequest("empty webhook body"))
		return
	}

	signature := c.GetHeader(razorpaySignatureHeader)
	if signature == "" {
		response.Error(c, domainerrors.InvalidSignature("missing webhook signature"))
		return
	}

	if err := h.paymentUsecase.ProcessWebhook(c.Request.Context(), body, signature); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"received": true})
}
