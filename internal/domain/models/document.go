package models

import (
	"time"
)

// DocumentStatus is the processing state reported by the backend.
type DocumentStatus string

const (
	DocumentStatusProcessing DocumentStatus = "processing"
	DocumentStatusProcessed  DocumentStatus = "processed"
	DocumentStatusFailed     DocumentStatus = "failed"
)

// Valid reports whether s is one of the known statuses.
func (s DocumentStatus) Valid() bool {
	switch s {
	case DocumentStatusProcessing, DocumentStatusProcessed, DocumentStatusFailed:
		return true
	}
	return false
}

type Document struct {
	ID         string         `json:"id" db:"id"`
	PlaybookID string         `json:"playbook_id" db:"playbook_id"` // Soft reference, may dangle after playbook deletion
	Name       string         `json:"name" db:"name"`
	Content    string         `json:"content" db:"content"` // Extracted plain text
	Status     DocumentStatus `json:"status" db:"status"`
	FileURL    string         `json:"file_url,omitempty" db:"file_url"`
	CreatedAt  time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at" db:"updated_at"`
}
