//go:build integration

package tests

import (
	"net/http"
	"testing"
)

func TestProtectedEndpointsRequireToken(t *testing.T) {
	cases := []struct {
		name   string
		method string
		path   string
	}{
		{name: "ListContacts", method: http.MethodGet, path: "/api/v1/contacts"},
		{name: "CreateContact", method: http.MethodPost, path: "/api/v1/contacts"},
		{name: "ListNotifications", method: http.MethodGet, path: "/api/v1/notifications"},
		{name: "ReadAllNotifications", method: http.MethodPost, path: "/api/v1/notifications/read-all"},
		{name: "UpdateProfile", method: http.MethodPatch, path: "/api/v1/applications/1/profile"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {

			// Act
			status, _ := doJSON(t, tc.method, tc.path, nil, "")

			// Assert
			if status != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", status)
			}
		})
	}

	t.Run("InvalidToken", func(t *testing.T) {

		// Act
		status, _ := doJSON(t, http.MethodGet, "/api/v1/contacts", nil, "not-a-token")

		// Assert
		if status != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", status)
		}
	})
}
