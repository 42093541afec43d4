// Package listing filters and paginates in-memory record lists for display.
package listing

import (
	"strings"

	"github.com/VasupriyaPatnaik/AI-Redliner/internal/domain/models"
)

// Page is one window of a filtered list.
type Page[T any] struct {
	Items      []T
	Page       int // 1-based, clamped into range
	TotalPages int
	TotalItems int // after filtering
}

// HasPrev reports whether a previous page exists.
func (p Page[T]) HasPrev() bool { return p.Page > 1 }

// HasNext reports whether a following page exists.
func (p Page[T]) HasNext() bool { return p.Page < p.TotalPages }

// Filter keeps the items whose key contains term, case-insensitively.
// An empty term keeps everything. Order is preserved.
func Filter[T any](items []T, term string, key func(T) string) []T {
	if term == "" {
		return items
	}
	needle := strings.ToLower(term)
	out := make([]T, 0, len(items))
	for _, item := range items {
		if strings.Contains(strings.ToLower(key(item)), needle) {
			out = append(out, item)
		}
	}
	return out
}

// Paginate returns the requested page of items. The page number is clamped
// to [1, max(1, TotalPages)]; a non-positive pageSize means one page.
func Paginate[T any](items []T, page, pageSize int) Page[T] {
	total := len(items)
	if pageSize <= 0 {
		pageSize = max(total, 1)
	}

	totalPages := (total + pageSize - 1) / pageSize
	page = min(max(page, 1), max(totalPages, 1))

	start := min((page-1)*pageSize, total)
	end := min(page*pageSize, total)

	return Page[T]{
		Items:      items[start:end],
		Page:       page,
		TotalPages: totalPages,
		TotalItems: total,
	}
}

// View filters then paginates.
func View[T any](items []T, term string, page, pageSize int, key func(T) string) Page[T] {
	return Paginate(Filter(items, term, key), page, pageSize)
}

// DocumentKey searches documents by name.
func DocumentKey(d models.Document) string { return d.Name }

// PlaybookKey searches playbooks by name.
func PlaybookKey(p models.Playbook) string { return p.Name }

// ReviewKey searches a review by its document name and all finding text.
func ReviewKey(documentName func(id string) string) func(models.Review) string {
	return func(r models.Review) string {
		return strings.Join([]string{documentName(r.DocumentID), r.Conflicts, r.Gaps, r.Irrelevant}, " ")
	}
}
