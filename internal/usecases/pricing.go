package usecases

import (
	"fmt"

	"artist-membership.backend/internal/config"
	"artist-membership.backend/internal/domain/entities"
)

// PricingService computes the server-side membership fee. Client-supplied
// amounts are never consulted.
type PricingService struct {
	cfg config.MembershipConfig
}

// NewPricingService creates a pricing service from membership configuration
func NewPricingService(cfg config.MembershipConfig) *PricingService {
	return &PricingService{cfg: cfg}
}

// Quote returns the final price in paise for a category and coupon code.
// The coupon is compared exact-match against the configured code; the
// discount floors to the paisa via integer division.
func (s *PricingService) Quote(category entities.ArtistCategory, couponCode string) entities.Quote {
	base := s.cfg.PriceFor(category)
	amount := base
	valid := couponCode != "" && couponCode == s.cfg.CouponCode
	if valid {
		amount = base * (100 - s.cfg.CouponDiscountPercent) / 100
	}
	return entities.Quote{
		AmountPaise: amount,
		AmountINR:   FormatINR(amount),
		CouponValid: valid,
	}
}

// FormatINR renders paise as decimal rupees text, e.g. 45000 -> "450.00"
func FormatINR(paise int64) string {
	return fmt.Sprintf("%d.%02d", paise/100, paise%100)
}
