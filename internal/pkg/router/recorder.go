package router

import (
	"bufio"
	"bytes"
	"errors"
	"net"
	"net/http"
	"strings"
)

const maxLoggedBodyBytes = 32 * 1024

var errHijackUnsupported = errors.New("router: hijack not supported")

// responseRecorder tracks status, size and, for JSON responses, the first
// maxLoggedBodyBytes of the body. Streamed media is counted but not copied.
type responseRecorder struct {
	http.ResponseWriter
	status    int
	bytes     int
	body      bytes.Buffer
	truncated bool
	captured  *bool
	err       error
}

func (w *responseRecorder) WriteHeader(code int) {
	if w.status == 0 {
		w.status = code
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *responseRecorder) Write(p []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}

	if w.capture() {
		room := maxLoggedBodyBytes - w.body.Len()
		switch {
		case room <= 0:
			w.truncated = w.truncated || len(p) > 0
		case len(p) > room:
			w.body.Write(p[:room])
			w.truncated = true
		default:
			w.body.Write(p)
		}
	}

	n, err := w.ResponseWriter.Write(p)
	w.bytes += n
	return n, err
}

func (w *responseRecorder) capture() bool {
	if w.captured == nil {
		ct := strings.ToLower(w.Header().Get("Content-Type"))
		ok := ct == "" || strings.HasPrefix(ct, "application/json") || strings.HasPrefix(ct, "text/")
		w.captured = &ok
	}
	return *w.captured
}

// SetError lets the handler adapter hand the error to the access log.
func (w *responseRecorder) SetError(err error) {
	w.err = err
}

func (w *responseRecorder) statusCode() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}

func (w *responseRecorder) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (w *responseRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errHijackUnsupported
	}
	return h.Hijack()
}

// Unwrap exposes the underlying writer to http.ResponseController.
func (w *responseRecorder) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
