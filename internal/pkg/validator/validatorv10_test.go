package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type otpRequest struct {
	ApplicationID string `validate:"required"`
	Purpose       string `validate:"required,otp_purpose"`
	Code          string `validate:"required,numeric_code,len=4"`
}

type contactRequest struct {
	PhoneNumber string `validate:"omitempty,phone"`
	Email       string `validate:"omitempty,email_loose"`
}

func TestV10Validator_Validate(t *testing.T) {
	v, err := NewV10Validator()
	require.NoError(t, err)

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, v.Validate(otpRequest{ApplicationID: "1", Purpose: "phone", Code: "0123"}))
		assert.NoError(t, v.Validate(contactRequest{PhoneNumber: "+1 (555) 123-4567", Email: "a@b.co"}))
		assert.NoError(t, v.Validate(contactRequest{}))
	})

	t.Run("custom rules report snake case fields", func(t *testing.T) {
		err := v.Validate(otpRequest{ApplicationID: "1", Purpose: "sms", Code: "12a4"})

		var verr V10ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "Purpose must be one of [phone email]", verr.Values()["purpose"])
		assert.Equal(t, "Code must contain only digits", verr.Values()["code"])
		assert.NotContains(t, verr.Values(), "application_id")
	})

	t.Run("phone and email", func(t *testing.T) {
		err := v.Validate(contactRequest{PhoneNumber: "555-12", Email: "not an@email"})

		var verr V10ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "PhoneNumber must be a valid phone number", verr["phone_number"])
		assert.Equal(t, "Email must be a valid email address", verr["email"])
	})
}

func TestPhoneRule(t *testing.T) {
	for in, want := range map[string]bool{
		"+15551234567":      true,
		"(555) 123-4567":    true,
		"555 12 45":         false,
		"+1 555 CALL NOW 1": false,
		"":                  false,
	} {
		assert.Equal(t, want, rePhone.MatchString(in), in)
	}
}
