package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/VasupriyaPatnaik/AI-Redliner/internal/domain/models"
	"github.com/VasupriyaPatnaik/AI-Redliner/internal/domain/services"
)

// ListPlaybooks returns every playbook.
func (c *Client) ListPlaybooks(ctx context.Context) ([]models.Playbook, error) {
	var playbooks []models.Playbook
	if err := c.doJSON(ctx, http.MethodGet, "/playbooks", nil, &playbooks); err != nil {
		return nil, err
	}
	return playbooks, nil
}

// CreatePlaybook stores a new playbook.
func (c *Client) CreatePlaybook(ctx context.Context, req *services.CreatePlaybookRequest) (*models.Playbook, error) {
	var playbook models.Playbook
	if err := c.doJSON(ctx, http.MethodPost, "/playbooks", req, &playbook); err != nil {
		return nil, err
	}
	return &playbook, nil
}

// UploadPlaybook sends a file whose text becomes the playbook content.
// An empty name lets the server derive it from the filename.
func (c *Client) UploadPlaybook(ctx context.Context, filename, contentType string, data []byte, name string) (*models.Playbook, error) {
	var playbook models.Playbook
	err := c.doMultipart(ctx, "/playbooks/upload",
		upload{Filename: filename, ContentType: contentType, Data: data},
		map[string]string{"name": name},
		&playbook,
	)
	if err != nil {
		return nil, err
	}
	return &playbook, nil
}

// GetPlaybook fetches one playbook.
func (c *Client) GetPlaybook(ctx context.Context, id string) (*models.Playbook, error) {
	var playbook models.Playbook
	if err := c.doJSON(ctx, http.MethodGet, "/playbooks/"+url.PathEscape(id), nil, &playbook); err != nil {
		return nil, err
	}
	return &playbook, nil
}

// UpdatePlaybook replaces a playbook's name and content.
func (c *Client) UpdatePlaybook(ctx context.Context, id string, req *services.UpdatePlaybookRequest) (*models.Playbook, error) {
	var playbook models.Playbook
	if err := c.doJSON(ctx, http.MethodPut, "/playbooks/"+url.PathEscape(id), req, &playbook); err != nil {
		return nil, err
	}
	return &playbook, nil
}

// DeletePlaybook removes a playbook. Documents keep their reference to it.
func (c *Client) DeletePlaybook(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/playbooks/"+url.PathEscape(id), nil, nil)
}
