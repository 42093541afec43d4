package listing

import (
	"fmt"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/VasupriyaPatnaik/AI-Redliner/internal/domain/models"
)

func names(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("Doc %02d", i+1)
	}
	return out
}

func identity(s string) string { return s }

func TestPaginate(t *testing.T) {
	items := names(12)

	tests := []struct {
		name          string
		page          int
		wantPage      int
		wantItems     []string
		wantTotalPage int
	}{
		{"first page", 1, 1, items[0:5], 3},
		{"last partial page", 3, 3, items[10:12], 3},
		{"page zero clamps to first", 0, 1, items[0:5], 3},
		{"negative clamps to first", -4, 1, items[0:5], 3},
		{"past the end clamps to last", 99, 3, items[10:12], 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Paginate(items, tt.page, 5)
			if got.Page != tt.wantPage || got.TotalPages != tt.wantTotalPage || got.TotalItems != 12 {
				t.Errorf("got page %d/%d of %d", got.Page, got.TotalPages, got.TotalItems)
			}
			if diff := cmp.Diff(tt.wantItems, got.Items); diff != "" {
				t.Errorf("Items mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPaginate_Empty(t *testing.T) {
	got := Paginate([]string{}, 3, 5)
	if got.Page != 1 || got.TotalPages != 0 || len(got.Items) != 0 {
		t.Errorf("empty list: %+v", got)
	}
	if got.HasPrev() || got.HasNext() {
		t.Error("empty list should have no navigation")
	}
}

func TestPaginate_PagesConcatenateToWholeList(t *testing.T) {
	for _, n := range []int{0, 1, 4, 5, 6, 10, 23} {
		items := names(n)
		first := Paginate(items, 1, 5)

		var all []string
		for p := 1; p <= first.TotalPages; p++ {
			all = append(all, Paginate(items, p, 5).Items...)
		}
		if !slices.Equal(all, items) {
			t.Errorf("n=%d: concatenated pages = %v", n, all)
		}
	}
}

func TestFilter(t *testing.T) {
	items := []string{"Vendor MSA", "NDA - Acme", "msa renewal", "Lease"}

	tests := []struct {
		term string
		want []string
	}{
		{"", items},
		{"msa", []string{"Vendor MSA", "msa renewal"}},
		{"ACME", []string{"NDA - Acme"}},
		{"zzz", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			got := Filter(items, tt.term, identity)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Filter(%q) mismatch (-want +got):\n%s", tt.term, diff)
			}
			if again := Filter(got, tt.term, identity); !slices.Equal(again, got) {
				t.Errorf("Filter is not idempotent for %q", tt.term)
			}
		})
	}
}

func TestView_FilterResetsPaging(t *testing.T) {
	items := append(names(9), "Special Contract")
	got := View(items, "special", 2, 5, identity)

	if got.Page != 1 || got.TotalPages != 1 {
		t.Errorf("page %d/%d, want 1/1", got.Page, got.TotalPages)
	}
	if diff := cmp.Diff([]string{"Special Contract"}, got.Items); diff != "" {
		t.Errorf("Items mismatch (-want +got):\n%s", diff)
	}
}

func TestReviewKey(t *testing.T) {
	docNames := map[string]string{"d1": "Vendor MSA"}
	key := ReviewKey(func(id string) string { return docNames[id] })

	reviews := []models.Review{
		{ID: "r1", DocumentID: "d1", Gaps: "No liability cap"},
		{ID: "r2", DocumentID: "d2", Conflicts: "Notice period"},
	}

	if got := Filter(reviews, "vendor", key); len(got) != 1 || got[0].ID != "r1" {
		t.Errorf("search by document name: %+v", got)
	}
	if got := Filter(reviews, "NOTICE", key); len(got) != 1 || got[0].ID != "r2" {
		t.Errorf("search by finding text: %+v", got)
	}
}
