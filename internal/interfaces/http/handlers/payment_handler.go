package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"artist-membership.backend/internal/domain/entities"
	domainerrors "artist-membership.backend/internal/domain/errors"
	"artist-membership.backend/internal/interfaces/http/response"
	"artist-membership.backend/internal/usecases"
)

// PaymentHandler handles payment verification endpoints
type PaymentHandler struct {
	paymentUsecase *usecases.PaymentUsecase
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentUsecase *usecases.PaymentUsecase) *PaymentHandler {
	return &PaymentHandler{paymentUsecase: paymentUsecase}
}

// VerifyPayment handles the checkout callback
// POST /api/payments/verify
func (h *PaymentHandler) VerifyPayment(c *gin.Context) {
	var input entities.VerifyPaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("missing payment details"))
		return
	}

	member, err := h.paymentUsecase.VerifyPayment(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"success": true,
		"message": "Payment verified successfully",
		"member":  member,
	})
}
