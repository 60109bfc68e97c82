package router

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/julienschmidt/httprouter"
	"github.com/shandysiswandi/ambassador/internal/pkg/goerror"
	"github.com/shandysiswandi/ambassador/internal/pkg/jwt"
)

// maxJSONBody caps JSON request bodies.
const maxJSONBody = 1 << 20

// Request wraps http.Request with helpers for inbound handlers.
type Request struct {
	*http.Request
}

// GetParam returns a path parameter stored by httprouter.
func (r *Request) GetParam(key string) string {
	return httprouter.ParamsFromContext(r.Context()).ByName(key)
}

// GetParamInt64 returns a path parameter parsed as int64.
func (r *Request) GetParamInt64(key string) (int64, error) {
	value, err := strconv.ParseInt(r.GetParam(key), 10, 64)
	if err != nil {
		return 0, goerror.NewInvalidFormat("Invalid path parameter " + key)
	}
	return value, nil
}

// GetQuery returns a trimmed query value.
func (r *Request) GetQuery(key string) string {
	return strings.TrimSpace(r.URL.Query().Get(key))
}

// GetQueryInt returns a query value as int, or def when it is absent.
func (r *Request) GetQueryInt(key string, def int) (int, error) {
	raw := r.GetQuery(key)
	if raw == "" {
		return def, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, goerror.NewInvalidFormat("Invalid query " + key)
	}

	return v, nil
}

// GetQueryInt64 is GetQueryInt for identifiers.
func (r *Request) GetQueryInt64(key string, def int64) (int64, error) {
	raw := r.GetQuery(key)
	if raw == "" {
		return def, nil
	}

	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, goerror.NewInvalidFormat("Invalid query " + key)
	}

	return v, nil
}

// Auth returns the bearer token claims, or nil on public endpoints.
func (r *Request) Auth() *jwt.Claims {
	return jwt.GetAuth(r.Context())
}

// DecodeBody decodes a single JSON object into dst, rejecting unknown fields.
func (r *Request) DecodeBody(dst any) error {
	if r == nil || r.Body == nil {
		return goerror.NewInvalidFormat()
	}

	dec := json.NewDecoder(io.LimitReader(r.Body, maxJSONBody))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return goerror.NewInvalidFormat()
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return goerror.NewInvalidFormat()
	}

	return nil
}

// UploadedFile is a multipart file part read as a stream.
type UploadedFile struct {
	io.ReadCloser
	Filename    string
	ContentType string
}

// StreamSingleFile returns the first multipart part named name without
// buffering the upload. The caller must close it.
func (r *Request) StreamSingleFile(name string) (*UploadedFile, error) {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mt != "multipart/form-data" {
		return nil, goerror.NewInvalidFormat("Invalid request content-type")
	}

	mr, err := r.MultipartReader()
	if err != nil {
		return nil, goerror.NewInvalidFormat()
	}

	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			return nil, goerror.NewInvalidFormat("No " + name + " file uploaded")
		}
		if err != nil {
			return nil, goerror.NewInvalidFormat()
		}

		if part.FormName() == name && part.FileName() != "" {
			return &UploadedFile{
				ReadCloser:  part,
				Filename:    part.FileName(),
				ContentType: part.Header.Get("Content-Type"),
			}, nil
		}

		_, errCopy := io.Copy(io.Discard, part)
		errClose := part.Close()
		if err := errors.Join(errCopy, errClose); err != nil {
			return nil, goerror.NewInvalidFormat(err.Error())
		}
	}
}
