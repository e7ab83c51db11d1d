package handlers

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/go-chi/chi/v5"

	"codecrew/models"
	"codecrew/uploads"
)

const (
	maxJSONBody = 1 << 20
	// Room for the non-file fields of a multipart body.
	multipartOverhead = 1 << 20
	multipartMemory   = 8 << 20
)

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return models.NewValidationError("Request body too large")
		}
		return models.NewValidationError("Invalid request body")
	}
	return nil
}

func isMultipart(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "multipart/form-data"
}

// parseMultipart reads a multipart body whose only file is governed by
// policy and returns that file when present.
func parseMultipart(w http.ResponseWriter, r *http.Request, policy uploads.Policy) (*uploads.File, error) {
	r.Body = http.MaxBytesReader(w, r.Body, policy.MaxSize+multipartOverhead)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, models.NewUnsupportedMediaError("File too large (max " + humanize.IBytes(uint64(policy.MaxSize)) + ")") //nolint:gosec
		}
		return nil, models.NewValidationError("Invalid multipart body")
	}
	return policy.FromRequest(r)
}

// form reads typed fields from a parsed multipart form. Absent fields come
// back as nil so they can feed patches.
type form struct {
	r   *http.Request
	err error
}

func (f *form) str(key string) *string {
	if f.r.MultipartForm == nil {
		return nil
	}
	values, ok := f.r.MultipartForm.Value[key]
	if !ok || len(values) == 0 {
		return nil
	}
	v := values[0]
	return &v
}

func (f *form) value(key string) string {
	if v := f.str(key); v != nil {
		return *v
	}
	return ""
}

func (f *form) id(key string) *uint {
	v := f.str(key)
	if v == nil || strings.TrimSpace(*v) == "" {
		return nil
	}
	n, err := strconv.ParseUint(strings.TrimSpace(*v), 10, 32)
	if err != nil || n == 0 {
		f.fail(models.NewValidationError("%s must be a positive integer", key))
		return nil
	}
	id := uint(n)
	return &id
}

func (f *form) flag(key string) *bool {
	v := f.str(key)
	if v == nil {
		return nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(*v))
	if err != nil {
		f.fail(models.NewValidationError("%s must be true or false", key))
		return nil
	}
	return &b
}

func (f *form) list(key string) *models.StringList {
	v := f.str(key)
	if v == nil {
		return nil
	}
	l := models.ParseStringList(*v)
	return &l
}

func (f *form) fail(err error) {
	if f.err == nil {
		f.err = err
	}
}

// pathID parses a numeric URL parameter. Anything else is reported as the
// named resource not existing.
func pathID(r *http.Request, param, resource string) (uint, error) {
	n, err := strconv.ParseUint(chi.URLParam(r, param), 10, 32)
	if err != nil || n == 0 {
		return 0, models.NewNotFoundError(resource)
	}
	return uint(n), nil
}

// queryInt parses an optional positive integer query parameter.
func queryInt(r *http.Request, key string, def int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, models.NewValidationError("%s must be a positive integer", key)
	}
	return n, nil
}
