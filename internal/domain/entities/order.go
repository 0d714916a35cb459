package entities

// PaymentOrder is the opaque gateway order handle returned to the client
// for the checkout step. Amount is in minor units (paise).
type PaymentOrder struct {
	OrderID  string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt,omitempty"`
}

// VerifyPaymentInput carries the three fields delivered by the gateway
// checkout callback. Field names follow the gateway's wire format.
type VerifyPaymentInput struct {
	OrderID   string `json:"razorpay_order_id" binding:"required"`
	PaymentID string `json:"razorpay_payment_id" binding:"required"`
	Signature string `json:"razorpay_signature" binding:"required"`
}

// Quote is the server-computed price for a registration
type Quote struct {
	AmountPaise int64  `json:"amountPaise"`
	AmountINR   string `json:"amountInr"`
	CouponValid bool   `json:"couponValid"`
}
