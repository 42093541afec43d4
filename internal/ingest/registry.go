package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
)

// Registry routes files to extractors by declared MIME type, then by extension.
//
// Thread-safe for concurrent access.
type Registry struct {
	mu          sync.RWMutex
	byMIMEType  map[string]Extractor
	byExtension map[string]Extractor
	logger      *slog.Logger
}

// NewRegistry creates a registry with the PDF and DOCX extractors pre-registered.
func NewRegistry(logger *slog.Logger) *Registry {
	r := &Registry{
		byMIMEType:  make(map[string]Extractor),
		byExtension: make(map[string]Extractor),
		logger:      logger,
	}

	r.Register(NewPDFExtractor())
	r.Register(NewDOCXExtractor())

	return r
}

// Register adds an extractor for its MIME types and extensions.
// Extensions are normalized to lowercase with a leading dot.
func (r *Registry) Register(extractor Extractor) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, mt := range extractor.MIMETypes() {
		r.byMIMEType[strings.ToLower(mt)] = extractor
	}
	for _, ext := range extractor.Extensions() {
		ext = strings.ToLower(ext)
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		r.byExtension[ext] = extractor
	}
}

// Resolve returns the extractor for a file, or nil if the type is unsupported.
func (r *Registry) Resolve(filename, contentType string) Extractor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if extractor, ok := r.byMIMEType[mediaType(contentType)]; ok {
		return extractor
	}
	return r.byExtension[strings.ToLower(filepath.Ext(filename))]
}

// Supports reports whether Extract would accept the file.
func (r *Registry) Supports(filename, contentType string) bool {
	return r.Resolve(filename, contentType) != nil
}

// Extract produces plain text for a file.
//
// Unsupported types fail with ErrUnsupportedType; unreadable or corrupt input
// fails with ErrExtraction wrapping the cause.
func (r *Registry) Extract(ctx context.Context, file File) (string, error) {
	extractor := r.Resolve(file.Name, file.ContentType)
	if extractor == nil {
		r.logger.Debug("unsupported file type",
			"filename", file.Name,
			"content_type", file.ContentType,
		)
		return "", ErrUnsupportedType
	}

	text, err := extractor.Extract(ctx, file.Data)
	if err != nil {
		if isCanceled(err) {
			return "", err
		}
		r.logger.Warn("text extraction failed",
			"filename", file.Name,
			"extractor", extractor.Name(),
			"error", err,
		)
		return "", fmt.Errorf("%w: %w", ErrExtraction, err)
	}

	r.logger.Debug("text extracted",
		"filename", file.Name,
		"extractor", extractor.Name(),
		"chars", len(text),
	)

	return text, nil
}
