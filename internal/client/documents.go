package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/VasupriyaPatnaik/AI-Redliner/internal/domain/models"
	"github.com/VasupriyaPatnaik/AI-Redliner/internal/domain/services"
)

// ListDocuments returns every document, newest first.
func (c *Client) ListDocuments(ctx context.Context) ([]models.Document, error) {
	var docs []models.Document
	if err := c.doJSON(ctx, http.MethodGet, "/documents", nil, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// CreateDocument stores a document whose text has already been extracted.
func (c *Client) CreateDocument(ctx context.Context, req *services.CreateDocumentRequest) (*models.Document, error) {
	var doc models.Document
	if err := c.doJSON(ctx, http.MethodPost, "/documents", req, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// UploadDocument sends a PDF or Word file for server-side extraction.
func (c *Client) UploadDocument(ctx context.Context, filename, contentType string, data []byte, playbookID string) (*models.Document, error) {
	var doc models.Document
	err := c.doMultipart(ctx, "/documents/upload",
		upload{Filename: filename, ContentType: contentType, Data: data},
		map[string]string{"playbook_id": playbookID},
		&doc,
	)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// GetDocument fetches one document.
func (c *Client) GetDocument(ctx context.Context, id string) (*models.Document, error) {
	var doc models.Document
	if err := c.doJSON(ctx, http.MethodGet, "/documents/"+url.PathEscape(id), nil, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// DeleteDocument removes a document and its reviews.
func (c *Client) DeleteDocument(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/documents/"+url.PathEscape(id), nil, nil)
}
