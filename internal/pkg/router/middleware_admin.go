package router

import (
	"crypto/subtle"
	"net/http"

	"github.com/shandysiswandi/ambassador/internal/pkg/config"
)

// HeaderAdminKey carries the shared key of back-office routes.
const HeaderAdminKey = "X-Admin-Key"

// middlewareAdmin lets a request through only when it carries app.admin_key.
// An empty key turns every back-office route off.
func middlewareAdmin(cfg config.Config) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			want := ""
			if cfg != nil {
				want = cfg.GetString("app.admin_key")
			}
			if want == "" {
				writeJSON(w, errorResponse{Message: "Admin access disabled"}, http.StatusForbidden)
				return
			}

			got := r.Header.Get(HeaderAdminKey)
			if subtle.ConstantTimeCompare([]byte(got), []byte(want)) != 1 {
				writeJSON(w, errorResponse{Message: "Admin key required"}, http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// Admin registers a back-office endpoint. It is authenticated by
// HeaderAdminKey instead of a bearer token.
func (r *Router) Admin(method, path string, h Handler) {
	if r.public[method] == nil {
		r.public[method] = make(map[string]struct{})
	}
	r.public[method][path] = struct{}{}

	r.endpoint(method, path, h, middlewareAdmin(r.cfg))
}
