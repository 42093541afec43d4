package domain

import "errors"

// Sentinel errors, matched with errors.Is by the HTTP layer.
var (
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("already exists")
	ErrValidation       = errors.New("validation failed")
	ErrUnsupportedMedia = errors.New("unsupported file type")
	ErrTooLarge         = errors.New("file too large")
	ErrUnprocessable    = errors.New("unprocessable content")
)

// ConflictError names the record a create or rename collided with.
type ConflictError struct {
	Message      string
	ResourceType string // playbook, document, review
	ResourceID   string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// Is makes errors.Is(err, ErrConflict) hold.
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}
