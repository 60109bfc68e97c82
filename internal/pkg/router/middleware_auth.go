package router

import (
	"net/http"
	"strings"

	"github.com/shandysiswandi/ambassador/internal/pkg/jwt"
)

// middlewareAuthentication requires a valid bearer token on every route not in
// public. On public routes a valid token is still attached when present.
func middlewareAuthentication(verifier jwt.JWT, public map[string]map[string]struct{}) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, isPublic := public[r.Method][matchedRoutePath(r)]

			token, ok := bearerToken(r)
			if !ok {
				if isPublic {
					next.ServeHTTP(w, r)
					return
				}
				writeJSON(w, errorResponse{Message: "Authentication required"}, http.StatusUnauthorized)
				return
			}

			claims, err := verifier.Verify(token)
			if err != nil {
				if isPublic {
					next.ServeHTTP(w, r)
					return
				}
				writeJSON(w, errorResponse{Message: "Invalid or expired token"}, http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(jwt.SetAuth(r.Context(), claims)))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(r.Header.Get("Authorization")), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)
	return token, token != ""
}
