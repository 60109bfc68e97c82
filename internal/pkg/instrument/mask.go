package instrument

import (
	"net/http"
	"strings"
)

const masked = "***"

// Masker redacts sensitive keys from structured data before it is logged.
// Keys match case-insensitively and always include the default fields.
type Masker struct {
	keys map[string]struct{}
}

// NewMasker builds a Masker for the default fields plus extra.
func NewMasker(extra ...string) Masker {
	return Masker{keys: buildMaskKeys(append(extra, defaultMaskFields...))}
}

// Data returns v with every matching object key replaced by "***".
func (m Masker) Data(v any) any {
	return maskData(v, m.keys)
}

// Header returns a copy of h with matching headers replaced by "***".
func (m Masker) Header(h http.Header) http.Header {
	out := h.Clone()
	for k := range out {
		if m.Has(k) {
			out.Set(k, masked)
		}
	}
	return out
}

// Has reports whether key is masked.
func (m Masker) Has(key string) bool {
	_, ok := m.keys[strings.ToLower(key)]
	return ok
}

func buildMaskKeys(fields []string) map[string]struct{} {
	keys := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(strings.ToLower(f)); f != "" {
			keys[f] = struct{}{}
		}
	}
	return keys
}

func maskData(v any, keys map[string]struct{}) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, v2 := range val {
			if _, hit := keys[strings.ToLower(k)]; hit {
				out[k] = masked
				continue
			}
			out[k] = maskData(v2, keys)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, v2 := range val {
			out[i] = maskData(v2, keys)
		}
		return out
	default:
		return v
	}
}
