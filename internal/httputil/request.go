package httputil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/VasupriyaPatnaik/AI-Redliner/internal/config"
	"github.com/VasupriyaPatnaik/AI-Redliner/internal/domain"
)

// multipartOverhead leaves room for form fields and boundaries around a
// maximum-size file.
const multipartOverhead = 1 << 20

// ParseJSON decodes JSON from the request body into the given destination.
func ParseJSON(w http.ResponseWriter, r *http.Request, dest interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, config.MaxUploadBytes)

	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	return nil
}

// FormFile is one file read from a multipart request.
type FormFile struct {
	Filename    string
	ContentType string
	Size        int64
	Data        []byte
}

// ReadFormFile reads the named file field of a multipart request.
// Oversized bodies and files fail with domain.ErrTooLarge.
func ReadFormFile(w http.ResponseWriter, r *http.Request, field string) (*FormFile, error) {
	r.Body = http.MaxBytesReader(w, r.Body, config.MaxUploadBytes+multipartOverhead)

	if err := r.ParseMultipartForm(config.MaxUploadBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, fmt.Errorf("%w: request body exceeds the %dMB limit", domain.ErrTooLarge, config.MaxUploadBytes>>20)
		}
		return nil, fmt.Errorf("%w: failed to parse multipart form", domain.ErrValidation)
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		return nil, fmt.Errorf("%w: %s is required", domain.ErrValidation, field)
	}
	defer file.Close()

	if header.Size > config.MaxUploadBytes {
		return nil, fmt.Errorf("%w: %d bytes exceeds the %dMB limit", domain.ErrTooLarge, header.Size, config.MaxUploadBytes>>20)
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read uploaded file: %w", err)
	}

	return &FormFile{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Data:        data,
	}, nil
}
