package entities

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/volatiletech/null/v8"
)

// PaymentStatus represents the payment state of a membership
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// ArtistCategory represents a professional category
type ArtistCategory string

const (
	CategoryArtist          ArtistCategory = "Artist"
	CategoryDirector        ArtistCategory = "Director"
	CategoryProducer        ArtistCategory = "Producer"
	CategoryWriter          ArtistCategory = "Writer"
	CategoryProduction      ArtistCategory = "Production"
	CategoryCinematographer ArtistCategory = "Cinematographer"
	CategorySinger          ArtistCategory = "Singer"
	CategoryMusicDirector   ArtistCategory = "Music Director"
)

// ArtistCategories lists all accepted categories
var ArtistCategories = []ArtistCategory{
	CategoryArtist,
	CategoryDirector,
	CategoryProducer,
	CategoryWriter,
	CategoryProduction,
	CategoryCinematographer,
	CategorySinger,
	CategoryMusicDirector,
}

// IsValid reports whether the category is one of the accepted values
func (c ArtistCategory) IsValid() bool {
	for _, v := range ArtistCategories {
		if c == v {
			return true
		}
	}
	return false
}

// BloodGroup represents a blood group printed on the membership card
type BloodGroup string

// BloodGroups lists all accepted blood groups
var BloodGroups = []BloodGroup{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}

// IsValid reports whether the blood group is one of the accepted values
func (b BloodGroup) IsValid() bool {
	for _, v := range BloodGroups {
		if b == v {
			return true
		}
	}
	return false
}

// Member represents a registered applicant
type Member struct {
	ID            uint           `json:"id"`
	Name          string         `json:"name"`
	Email         string         `json:"email"`
	Phone         string         `json:"phone"`
	BloodGroup    BloodGroup     `json:"bloodGroup"`
	Category      ArtistCategory `json:"category"`
	PhotoURL      string         `json:"photoUrl"`
	Address       string         `json:"address"`
	PaymentAmount string         `json:"paymentAmount"`
	PaymentStatus PaymentStatus  `json:"paymentStatus"`
	CardNumber    string         `json:"cardNumber"`
	OrderID       null.String    `json:"orderId,omitempty"`
	PaidAt        null.Time      `json:"paidAt,omitempty"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

// FormatCardNumber derives the printed card number from the store id.
// Format: <prefix><6-digit zero-padded id>, e.g. AMP000042.
func FormatCardNumber(prefix string, id uint) string {
	return fmt.Sprintf("%s%06d", prefix, id)
}

// RegisterMemberInput represents input for member registration
type RegisterMemberInput struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	BloodGroup string `json:"bloodGroup"`
	Category   string `json:"category"`
	PhotoURL   string `json:"photoUrl"`
	Address    string `json:"address"`
	CouponCode string `json:"couponCode,omitempty"`
}

// Normalize trims whitespace and canonicalizes fields in place
func (in *RegisterMemberInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Phone = strings.TrimSpace(in.Phone)
	in.Address = strings.TrimSpace(in.Address)
	in.CouponCode = strings.ToUpper(strings.TrimSpace(in.CouponCode))
}

// Validate checks the normalized input and returns per-field problems.
// It has no side effects; an empty map means the input is acceptable.
func (in *RegisterMemberInput) Validate() map[string]string {
	fields := map[string]string{}

	if in.Name == "" {
		fields["name"] = "name is required"
	}
	if in.Email == "" {
		fields["email"] = "email is required"
	} else if _, err := mail.ParseAddress(in.Email); err != nil {
		fields["email"] = "email is not a valid address"
	}
	if !isTenDigits(in.Phone) {
		fields["phone"] = "phone must be exactly 10 digits"
	}
	if !BloodGroup(in.BloodGroup).IsValid() {
		fields["bloodGroup"] = "unknown blood group"
	}
	if !ArtistCategory(in.Category).IsValid() {
		fields["category"] = "unknown artist category"
	}
	if in.PhotoURL == "" {
		fields["photoUrl"] = "photoUrl is required"
	}
	if len(in.Address) < 5 || len(in.Address) > 255 {
		fields["address"] = "address must be between 5 and 255 characters"
	}

	return fields
}

func isTenDigits(s string) bool {
	if len(s) != 10 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// UpdateAddressInput represents input for the address update endpoint
type UpdateAddressInput struct {
	Address string `json:"address" binding:"required,min=5,max=255"`
}

// RegisterMemberResponse mirrors the registration response envelope
type RegisterMemberResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Member  *Member       `json:"member"`
	Order   *PaymentOrder `json:"order,omitempty"`
}
