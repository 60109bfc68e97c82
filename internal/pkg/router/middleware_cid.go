package router

import (
	"net/http"
	"strings"

	"github.com/shandysiswandi/ambassador/internal/pkg/instrument"
	"github.com/shandysiswandi/ambassador/internal/pkg/uid"
)

const (
	// HeaderCorrelationID carries the request correlation id in and out.
	HeaderCorrelationID = "X-Correlation-ID"
	// HeaderRequestID is accepted as a fallback from proxies.
	HeaderRequestID = "X-Request-ID"

	maxCorrelationIDLen = 128
)

func middlewareCorrelationID(gen uid.StringID) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cid := firstCorrelationID(r.Header.Get(HeaderCorrelationID), r.Header.Get(HeaderRequestID))
			if cid == "" && gen != nil {
				cid = gen.Generate()
			}

			if cid != "" {
				w.Header().Set(HeaderCorrelationID, cid)
				r = r.WithContext(instrument.SetCorrelationID(r.Context(), cid))
			}

			next.ServeHTTP(w, r)
		})
	}
}

// firstCorrelationID returns the first usable candidate. Values with line
// breaks are dropped to keep them out of response headers.
func firstCorrelationID(candidates ...string) string {
	for _, v := range candidates {
		if strings.ContainsAny(v, "\r\n") {
			continue
		}
		if v = strings.TrimSpace(v); v == "" {
			continue
		}
		if len(v) > maxCorrelationIDLen {
			v = v[:maxCorrelationIDLen]
		}
		return v
	}
	return ""
}
