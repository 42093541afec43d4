package ingest

import (
	"bytes"
	"context"
	"fmt"

	"code.sajari.com/docconv/v2"
)

// DOCXExtractor returns the raw text of a Word document as docconv reports it.
type DOCXExtractor struct{}

// NewDOCXExtractor creates a new Word extractor.
func NewDOCXExtractor() *DOCXExtractor {
	return &DOCXExtractor{}
}

func (e *DOCXExtractor) Extract(ctx context.Context, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	text, _, err := docconv.ConvertDocx(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("convert docx: %w", err)
	}
	return text, nil
}

func (e *DOCXExtractor) MIMETypes() []string {
	return []string{MIMETypeDOCX, "application/msword"}
}

func (e *DOCXExtractor) Extensions() []string {
	return []string{".docx", ".doc"}
}

func (e *DOCXExtractor) Name() string {
	return "docx"
}
