package router

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/julienschmidt/httprouter"
	"github.com/shandysiswandi/ambassador/internal/pkg/config"
	"github.com/shandysiswandi/ambassador/internal/pkg/instrument"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

func matchedRoutePath(r *http.Request) string {
	if p := httprouter.ParamsFromContext(r.Context()).MatchedRoutePath(); p != "" {
		return p
	}
	return r.URL.Path
}

func middlewareObservability(cfg config.Config, ins instrument.Instrumentation) Middleware {
	var extra []string
	if cfg != nil {
		extra = cfg.GetArray("instrument.log_mask_fields")
	}
	masker := instrument.NewMasker(extra...)

	tracer := ins.Tracer("http.server")
	meter := ins.Meter("http.server")

	requests, err := meter.Int64Counter("http.server.requests", metric.WithDescription("Number of HTTP requests received"))
	if err != nil {
		slog.Error("failed to create http request counter", "error", err)
	}
	duration, err := meter.Float64Histogram("http.server.duration", metric.WithDescription("HTTP request duration in milliseconds"), metric.WithUnit("ms"))
	if err != nil {
		slog.Error("failed to create http duration histogram", "error", err)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route := matchedRoutePath(r)
			start := time.Now()

			ctx, span := tracer.Start(r.Context(), r.Method+" "+route,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					semconv.HTTPRequestMethodKey.String(r.Method),
					semconv.HTTPRouteKey.String(route),
					semconv.ServerAddressKey.String(r.Host),
					semconv.UserAgentOriginal(r.UserAgent()),
				),
			)
			defer span.End()

			slog.InfoContext(ctx, "request received",
				"method", r.Method,
				"path", route,
				"uri", r.RequestURI,
				"headers", masker.Header(r.Header),
				"body", requestBody(r, masker),
			)

			rec := &responseRecorder{ResponseWriter: w}
			next.ServeHTTP(rec, r.WithContext(ctx))

			status := rec.statusCode()
			elapsed := time.Since(start)
			attrs := metric.WithAttributes(
				semconv.HTTPRequestMethodKey.String(r.Method),
				semconv.HTTPRouteKey.String(route),
				semconv.HTTPResponseStatusCodeKey.Int(status),
			)

			span.SetAttributes(
				semconv.HTTPResponseStatusCodeKey.Int(status),
				attribute.Int("http.response_content_length", rec.bytes),
			)
			if rec.err != nil {
				span.RecordError(rec.err)
			}
			if status >= http.StatusInternalServerError {
				span.SetStatus(codes.Error, http.StatusText(status))
			}

			if requests != nil {
				requests.Add(ctx, 1, attrs)
			}
			if duration != nil {
				duration.Record(ctx, float64(elapsed.Milliseconds()), attrs)
			}

			slog.InfoContext(ctx, "response sent",
				"method", r.Method,
				"path", route,
				"status", status,
				"bytes", rec.bytes,
				"latency_ms", elapsed.Milliseconds(),
				"body", responseBody(rec, masker),
			)
		})
	}
}

// requestBody peeks at most maxLoggedBodyBytes of a non-multipart body and
// puts the bytes back for the handler.
func requestBody(r *http.Request, m instrument.Masker) any {
	ct := strings.ToLower(r.Header.Get("Content-Type"))
	if r.Body == nil || r.Body == http.NoBody || strings.HasPrefix(ct, "multipart/") {
		return nil
	}

	//nolint:errcheck // logging only
	head, _ := io.ReadAll(io.LimitReader(r.Body, maxLoggedBodyBytes))
	r.Body = struct {
		io.Reader
		io.Closer
	}{io.MultiReader(bytes.NewReader(head), r.Body), r.Body}

	return describeBody(ct, head, m)
}

func responseBody(rec *responseRecorder, m instrument.Masker) any {
	if rec.body.Len() == 0 {
		if rec.bytes > 0 {
			return "<stream omitted>"
		}
		return nil
	}

	body := describeBody(rec.Header().Get("Content-Type"), rec.body.Bytes(), m)
	if rec.truncated {
		return map[string]any{"body": body, "truncated": true}
	}
	return body
}

func describeBody(contentType string, body []byte, m instrument.Masker) any {
	if len(body) == 0 {
		return nil
	}

	var v any
	if err := json.Unmarshal(body, &v); err == nil {
		return m.Data(v)
	}

	if strings.HasPrefix(strings.ToLower(contentType), "application/x-www-form-urlencoded") {
		if values, err := url.ParseQuery(string(body)); err == nil {
			form := make(map[string]any, len(values))
			for k, vs := range values {
				form[k] = strings.Join(vs, ",")
			}
			return m.Data(form)
		}
	}

	if !utf8.Valid(body) {
		return "<binary body omitted>"
	}
	return string(body)
}
