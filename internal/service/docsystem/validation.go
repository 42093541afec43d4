package docsystem

import (
	"errors"
	"strings"
)

// notBlank rejects whitespace-only strings, which validation.Required lets through.
func notBlank(value interface{}) error {
	s, _ := value.(string)
	if strings.TrimSpace(s) == "" {
		return errors.New("cannot be blank")
	}
	return nil
}
