package entities

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func validInput() RegisterMemberInput {
	return RegisterMemberInput{
		Name:       "A",
		Email:      "a@x.com",
		Phone:      "9876543210",
		BloodGroup: "O+",
		Category:   "Artist",
		PhotoURL:   "data:image/png;base64,iVBORw0KGgo=",
		Address:    "12 Main St",
	}
}

func TestRegisterMemberInput_ValidPayload(t *testing.T) {
	in := validInput()
	in.Normalize()
	assert.Empty(t, in.Validate())
}

func TestRegisterMemberInput_Normalize(t *testing.T) {
	in := validInput()
	in.Name = "  A  "
	in.Email = " A@X.Com "
	in.CouponCode = " abinash10 "
	in.Normalize()

	assert.Equal(t, "A", in.Name)
	assert.Equal(t, "a@x.com", in.Email)
	assert.Equal(t, "ABINASH10", in.CouponCode)
}

func TestRegisterMemberInput_PhoneLength(t *testing.T) {
	for _, phone := range []string{"", "123", "12345678901", "987654321a"} {
		in := validInput()
		in.Phone = phone
		fields := in.Validate()
		assert.Contains(t, fields, "phone", "phone %q should be rejected", phone)
	}
}

func TestRegisterMemberInput_EnumFields(t *testing.T) {
	in := validInput()
	in.BloodGroup = "C+"
	fields := in.Validate()
	assert.Contains(t, fields, "bloodGroup")

	in = validInput()
	in.Category = "Astronaut"
	fields = in.Validate()
	assert.Contains(t, fields, "category")
}

func TestRegisterMemberInput_AddressBounds(t *testing.T) {
	in := validInput()
	in.Address = "1234"
	assert.Contains(t, in.Validate(), "address")

	in = validInput()
	in.Address = strings.Repeat("x", 256)
	assert.Contains(t, in.Validate(), "address")

	in = validInput()
	in.Address = strings.Repeat("x", 255)
	assert.NotContains(t, in.Validate(), "address")
}

func TestRegisterMemberInput_EmailAndRequiredFields(t *testing.T) {
	in := validInput()
	in.Email = "not-an-email"
	assert.Contains(t, in.Validate(), "email")

	in = RegisterMemberInput{}
	fields := in.Validate()
	for _, f := range []string{"name", "email", "phone", "bloodGroup", "category", "photoUrl", "address"} {
		assert.Contains(t, fields, f)
	}
}

func TestBloodGroupsAndCategories_Complete(t *testing.T) {
	assert.Len(t, BloodGroups, 8)
	assert.Len(t, ArtistCategories, 8)
	for _, bg := range BloodGroups {
		assert.True(t, bg.IsValid())
	}
	for _, cat := range ArtistCategories {
		assert.True(t, cat.IsValid())
	}
}

func TestFormatCardNumber(t *testing.T) {
	assert.Equal(t, "AMP000001", FormatCardNumber("AMP", 1))
	assert.Equal(t, "AMP000042", FormatCardNumber("AMP", 42))
	assert.Equal(t, "AMP1000000", FormatCardNumber("AMP", 1000000))
}
