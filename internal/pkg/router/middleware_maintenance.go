package router

import (
	"net/http"

	"github.com/shandysiswandi/ambassador/internal/pkg/config"
)

// middlewareMaintenance answers 503 on routes listed in
// app.maintenance.endpoints ("*" blocks everything). The list is re-read on
// every request so a config reload takes effect immediately.
func middlewareMaintenance(cfg config.Config) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg != nil && underMaintenance(cfg.GetArray("app.maintenance.endpoints"), matchedRoutePath(r)) {
				writeJSON(w, errorResponse{Message: "service is under maintenance"}, http.StatusServiceUnavailable)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func underMaintenance(endpoints []string, route string) bool {
	for _, e := range endpoints {
		if e == "*" || e == route {
			return route != "/health"
		}
	}
	return false
}
