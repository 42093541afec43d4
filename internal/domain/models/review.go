package models

import (
	"strings"
	"time"
)

// Review is the outcome of analysing a document against its playbook.
type Review struct {
	ID          string    `json:"id" db:"id"`
	DocumentID  string    `json:"document_id" db:"document_id"`
	Conflicts   string    `json:"conflicts" db:"conflicts"`
	Gaps        string    `json:"gaps" db:"gaps"`
	Irrelevant  string    `json:"irrelevant" db:"irrelevant"`
	Corrections *string   `json:"corrections,omitempty" db:"corrections"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// RedlineType classifies a single finding.
type RedlineType string

const (
	RedlineConflict   RedlineType = "conflict"
	RedlineGap        RedlineType = "gap"
	RedlineIrrelevant RedlineType = "irrelevant"
)

// RedlineTypes lists the finding types in display order.
var RedlineTypes = []RedlineType{RedlineConflict, RedlineGap, RedlineIrrelevant}

// Redline is one flagged line of a review.
type Redline struct {
	Type RedlineType `json:"type"`
	Text string      `json:"text"`
}

// Redlines flattens the review sections into one finding per non-empty line,
// conflicts first, then gaps, then irrelevant content.
func (r *Review) Redlines() []Redline {
	redlines := []Redline{}
	redlines = appendLines(redlines, RedlineConflict, r.Conflicts)
	redlines = appendLines(redlines, RedlineGap, r.Gaps)
	redlines = appendLines(redlines, RedlineIrrelevant, r.Irrelevant)
	return redlines
}

func appendLines(dst []Redline, typ RedlineType, section string) []Redline {
	for _, line := range strings.Split(section, "\n") {
		if line == "" {
			continue
		}
		dst = append(dst, Redline{Type: typ, Text: line})
	}
	return dst
}
