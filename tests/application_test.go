//go:build integration

package tests

import (
	"bytes"
	"net/http"
	"testing"
)

func TestApplicationStart(t *testing.T) {

	// Act
	id := startApplication(t)
	app := getApplication(t, id)

	// Assert
	if app.Status != "draft" {
		t.Fatalf("expected draft status, got %q", app.Status)
	}
	if app.Progress.Video || app.Progress.Phone || app.Progress.Email {
		t.Fatalf("expected empty progress, got %+v", app.Progress)
	}
}

func TestApplicationNotFound(t *testing.T) {

	// Act
	status, body := doJSON(t, http.MethodGet, "/api/v1/applications/1", nil, "")

	// Assert
	if status != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", status)
	}
	if env := decodeError(t, body); env.Message != "Application not found" {
		t.Fatalf("unexpected message %q", env.Message)
	}
}

func TestApplicationCompletion(t *testing.T) {

	// Arrange
	id := startApplication(t)

	// Act
	status, body := doJSON(t, http.MethodGet, "/api/v1/applications/"+id+"/completion", nil, "")

	// Assert
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	var data application
	decodeSuccess(t, body, &data)
	if data.AllCompleted {
		t.Fatal("expected incomplete application")
	}
}

func TestApplicationPhoneOTP(t *testing.T) {

	t.Run("InvalidPhone", func(t *testing.T) {

		// Arrange
		id := startApplication(t)

		// Act
		status, _ := doJSON(t, http.MethodPatch, "/api/v1/applications/"+id+"/phone", map[string]string{"phone": "12"}, "")

		// Assert
		if status != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", status)
		}
	})

	t.Run("RequestWithoutPhone", func(t *testing.T) {

		// Arrange
		id := startApplication(t)

		// Act
		status, body := doJSON(t, http.MethodPost, "/api/v1/applications/"+id+"/phone/request-otp", nil, "")

		// Assert
		if status != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", status)
		}
		if env := decodeError(t, body); env.Message != "Please add a phone number first" {
			t.Fatalf("unexpected message %q", env.Message)
		}
	})

	t.Run("CooldownAfterRequest", func(t *testing.T) {

		// Arrange
		id := startApplication(t)
		addPhone(t, id, uniquePhone())

		// Act
		first, _ := doJSON(t, http.MethodPost, "/api/v1/applications/"+id+"/phone/request-otp", nil, "")
		second, _ := doJSON(t, http.MethodPost, "/api/v1/applications/"+id+"/phone/request-otp", nil, "")
		status, body := doJSON(t, http.MethodGet, "/api/v1/applications/"+id+"/otp/phone/resend", nil, "")

		// Assert
		if first != http.StatusOK {
			t.Fatalf("expected first request 200, got %d", first)
		}
		if second != http.StatusTooManyRequests {
			t.Fatalf("expected second request 429, got %d", second)
		}
		if status != http.StatusOK {
			t.Fatalf("expected resend status 200, got %d", status)
		}
		var data struct {
			Allowed     bool `json:"allowed"`
			WaitSeconds int  `json:"waitSeconds"`
		}
		decodeSuccess(t, body, &data)
		if data.Allowed || data.WaitSeconds <= 0 {
			t.Fatalf("expected resend blocked, got %+v", data)
		}
	})

	t.Run("WrongCode", func(t *testing.T) {

		// Arrange
		id := startApplication(t)
		addPhone(t, id, uniquePhone())
		doJSON(t, http.MethodPost, "/api/v1/applications/"+id+"/phone/request-otp", nil, "")

		// Act
		status, body := doJSON(t, http.MethodPost, "/api/v1/applications/"+id+"/phone/verify-otp", map[string]string{"otp": "000000"}, "")

		// Assert
		if status != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", status)
		}
		if env := decodeError(t, body); env.Message != "Invalid or expired OTP" {
			t.Fatalf("unexpected message %q", env.Message)
		}
		if app := getApplication(t, id); app.PhoneVerified {
			t.Fatal("expected phone to stay unverified")
		}
	})
}

func TestApplicationSubmitIncomplete(t *testing.T) {

	// Arrange
	id := startApplication(t)

	// Act
	status, body := doJSON(t, http.MethodPost, "/api/v1/applications/"+id+"/submit", nil, "")

	// Assert
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
	if env := decodeError(t, body); env.Message != "Please complete all application steps before submitting" {
		t.Fatalf("unexpected message %q", env.Message)
	}
}

func TestApplicationVideo(t *testing.T) {

	t.Run("UploadAndStream", func(t *testing.T) {

		// Arrange
		id := startApplication(t)
		content := bytes.Repeat([]byte("0123456789"), 100)

		// Act
		status, _ := doMultipart(t, "/api/v1/applications/"+id+"/video", "video", "intro.mp4", "video/mp4", content)
		full, fullBody := doRaw(t, http.MethodGet, "/api/v1/applications/"+id+"/video", nil)
		partial, partialBody := doRaw(t, http.MethodGet, "/api/v1/applications/"+id+"/video", map[string]string{"Range": "bytes=10-19"})

		// Assert
		if status != http.StatusOK {
			t.Fatalf("expected upload 200, got %d", status)
		}
		if full.StatusCode != http.StatusOK || !bytes.Equal(fullBody, content) {
			t.Fatalf("unexpected full stream: status=%d len=%d", full.StatusCode, len(fullBody))
		}
		if partial.StatusCode != http.StatusPartialContent {
			t.Fatalf("expected 206, got %d", partial.StatusCode)
		}
		if got := partial.Header.Get("Content-Range"); got != "bytes 10-19/1000" {
			t.Fatalf("unexpected content range %q", got)
		}
		if string(partialBody) != "0123456789" {
			t.Fatalf("unexpected partial body %q", partialBody)
		}
		if app := getApplication(t, id); !app.Progress.Video {
			t.Fatal("expected video progress")
		}
	})

	t.Run("RejectsNonVideo", func(t *testing.T) {

		// Arrange
		id := startApplication(t)

		// Act
		status, _ := doMultipart(t, "/api/v1/applications/"+id+"/video", "video", "notes.txt", "text/plain", []byte("hello"))

		// Assert
		if status < http.StatusBadRequest || status >= http.StatusInternalServerError {
			t.Fatalf("expected client error, got %d", status)
		}
	})

	t.Run("MissingVideo", func(t *testing.T) {

		// Arrange
		id := startApplication(t)

		// Act
		resp, _ := doRaw(t, http.MethodGet, "/api/v1/applications/"+id+"/video", nil)

		// Assert
		if resp.StatusCode != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", resp.StatusCode)
		}
	})
}

func TestApplicationEmail(t *testing.T) {

	// Arrange
	id := startApplication(t)
	email := uniqueEmail("applicant")

	// Act
	status, body := doJSON(t, http.MethodPatch, "/api/v1/applications/"+id+"/email", map[string]string{"email": email}, "")

	// Assert
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	var data struct {
		Email string `json:"email"`
	}
	decodeSuccess(t, body, &data)
	if data.Email != email {
		t.Fatalf("expected %q, got %q", email, data.Email)
	}
}
