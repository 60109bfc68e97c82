//go:build integration

package tests

import (
	"fmt"
	"net/http"
	"testing"
	"time"
)

type progress struct {
	Video bool `json:"video"`
	Phone bool `json:"phone"`
	Email bool `json:"email"`
}

type application struct {
	ApplicationID string   `json:"applicationId"`
	Progress      progress `json:"progress"`
	VideoUploaded bool     `json:"videoUploaded"`
	PhoneVerified bool     `json:"phoneVerified"`
	EmailVerified bool     `json:"emailVerified"`
	Status        string   `json:"status"`
	AllCompleted  bool     `json:"allCompleted"`
}

func startApplication(t *testing.T) string {
	t.Helper()

	status, body := doJSON(t, http.MethodPost, "/api/v1/applications", nil, "")
	if status != http.StatusCreated {
		errEnv := decodeError(t, body)
		t.Fatalf("start application failed: status=%d message=%q", status, errEnv.Message)
	}

	var data application
	decodeSuccess(t, body, &data)
	if data.ApplicationID == "" {
		t.Fatal("missing application id")
	}

	return data.ApplicationID
}

func getApplication(t *testing.T, id string) application {
	t.Helper()

	status, body := doJSON(t, http.MethodGet, "/api/v1/applications/"+id, nil, "")
	if status != http.StatusOK {
		errEnv := decodeError(t, body)
		t.Fatalf("get application failed: status=%d message=%q", status, errEnv.Message)
	}

	var data application
	decodeSuccess(t, body, &data)

	return data
}

func addPhone(t *testing.T, id, phone string) {
	t.Helper()

	status, body := doJSON(t, http.MethodPatch, "/api/v1/applications/"+id+"/phone", map[string]string{"phone": phone}, "")
	if status != http.StatusOK {
		errEnv := decodeError(t, body)
		t.Fatalf("add phone failed: status=%d message=%q", status, errEnv.Message)
	}
}

// uniquePhone returns a 12 digit number so runs do not collide on cooldowns.
func uniquePhone() string {
	return fmt.Sprintf("+62%010d", time.Now().UnixNano()%10_000_000_000)
}

func uniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%d@example.com", prefix, time.Now().UnixNano())
}
