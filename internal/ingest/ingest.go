// Package ingest turns uploaded files into plain text before they are
// submitted for analysis.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"path/filepath"
	"strings"

	"github.com/VasupriyaPatnaik/AI-Redliner/internal/config"
	"github.com/VasupriyaPatnaik/AI-Redliner/internal/domain"
)

const (
	MIMETypePDF  = "application/pdf"
	MIMETypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

var (
	// ErrUnsupportedType is returned for anything that is not a PDF or Word file.
	ErrUnsupportedType = fmt.Errorf("%w: only PDF and DOCX are supported", domain.ErrUnsupportedMedia)

	// ErrFileTooLarge is returned by the size gate, before extraction starts.
	ErrFileTooLarge = domain.ErrTooLarge

	// ErrExtraction wraps any failure to read text out of a supported file.
	ErrExtraction = fmt.Errorf("failed to process file: %w", domain.ErrUnprocessable)
)

// File is an uploaded blob with its declared type.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Extractor pulls plain text out of one family of file formats.
// Implementations must be stateless and safe for concurrent use.
type Extractor interface {
	Extract(ctx context.Context, data []byte) (string, error)

	// MIMETypes returns the declared content types this extractor handles.
	MIMETypes() []string

	// Extensions returns file extensions (with leading dot) this extractor handles.
	Extensions() []string

	// Name returns the extractor name for logging.
	Name() string
}

// CheckSize rejects files above the upload ceiling.
func CheckSize(size int64) error {
	if size > config.MaxUploadBytes {
		return fmt.Errorf("%w: %d bytes exceeds the %dMB limit", ErrFileTooLarge, size, config.MaxUploadBytes>>20)
	}
	return nil
}

// DisplayName strips the final extension from a file name ("MSA.pdf" -> "MSA").
func DisplayName(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ContentTypeFor guesses a MIME type from the file extension.
func ContentTypeFor(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return MIMETypePDF
	case ".docx":
		return MIMETypeDOCX
	case ".doc":
		return "application/msword"
	}
	return mime.TypeByExtension(filepath.Ext(filename))
}

// mediaType normalizes a Content-Type header value ("application/pdf; x=y" -> "application/pdf").
func mediaType(contentType string) string {
	if contentType == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	return mt
}

// isCanceled reports whether err came from the caller giving up.
func isCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
