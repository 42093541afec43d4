package workspace

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/VasupriyaPatnaik/AI-Redliner/internal/ingest"
)

// UploadForm is the shared state of the document and playbook upload forms.
// PlaybookID is only used by the documents form.
type UploadForm struct {
	Name       string
	Content    string
	PlaybookID string
}

// Clear empties every field.
func (f *UploadForm) Clear() {
	*f = UploadForm{}
}

// Blank reports whether nothing has been entered.
func (f *UploadForm) Blank() bool {
	return *f == UploadForm{}
}

// loadFile extracts file into the form, taking the name from the file name.
// On failure the form is unchanged.
func (f *UploadForm) loadFile(ctx context.Context, extractor Extractor, file ingest.File, logger *slog.Logger) error {
	if err := ingest.CheckSize(int64(len(file.Data))); err != nil {
		return &FormError{Kind: KindValidation, Message: "File size exceeds 10MB limit.", Err: err}
	}

	text, err := extractor.Extract(ctx, file)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		logger.Warn("file extraction failed", "file", file.Name, "error", err)
		if errors.Is(err, ingest.ErrUnsupportedType) {
			return &FormError{Kind: KindExtraction, Message: "Unsupported file type. Please upload .pdf or .docx", Err: err}
		}
		return &FormError{Kind: KindExtraction, Message: "Failed to process file. Only PDF and DOCX are supported.", Err: err}
	}

	f.Name = ingest.DisplayName(file.Name)
	f.Content = text
	return nil
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
