package strcase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToLowerSnake(t *testing.T) {
	tests := map[string]string{
		"":               "",
		"Phone":          "phone",
		"ApplicationID":  "application_id",
		"LinkedinURL":    "linkedin_url",
		"HTTPServer":     "http_server",
		"Otp2Code":       "otp2_code",
		"already_snake":  "already_snake",
		"PhoneVerified":  "phone_verified",
		"IsProfileReady": "is_profile_ready",
	}

	for in, want := range tests {
		assert.Equal(t, want, ToLowerSnake(in), in)
	}
}
