package workspace

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"slices"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/VasupriyaPatnaik/AI-Redliner/internal/client"
	"github.com/VasupriyaPatnaik/AI-Redliner/internal/config"
	"github.com/VasupriyaPatnaik/AI-Redliner/internal/domain/models"
	"github.com/VasupriyaPatnaik/AI-Redliner/internal/ingest"
)

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newDocumentsPage(t *testing.T, api *fakeBackend) *DocumentsPage {
	t.Helper()
	p := NewDocumentsPage(api, &fakeExtractor{texts: map[string]string{"MSA.pdf": "Master services agreement"}}, testLogger())
	p.now = func() time.Time { return fixedNow }
	if err := p.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return p
}

func assertFormError(t *testing.T, err error, kind FormErrorKind, message string) {
	t.Helper()
	var fe *FormError
	if !errors.As(err, &fe) {
		t.Fatalf("error = %v, want *FormError", err)
	}
	if fe.Kind != kind || fe.Message != message {
		t.Errorf("FormError = {%s %q}, want {%s %q}", fe.Kind, fe.Message, kind, message)
	}
}

func documentIDs(entries []Entry[models.Document]) []string {
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.Item.ID
	}
	return ids
}

func TestDocumentsPage_SubmitPrependsPending(t *testing.T) {
	api := newFakeBackend()
	api.documents = []models.Document{{ID: "old", Name: "Old", Status: models.DocumentStatusProcessed}}
	p := newDocumentsPage(t, api)

	if err := p.SelectFile(context.Background(), ingest.File{Name: "MSA.pdf", Data: []byte("%PDF")}); err != nil {
		t.Fatalf("SelectFile() error = %v", err)
	}
	if p.Form.Name != "MSA" || p.Form.Content != "Master services agreement" {
		t.Fatalf("form after SelectFile = %+v", p.Form)
	}
	p.Form.PlaybookID = "pb-1"

	nav, err := p.Submit(context.Background())
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	entries := p.Entries()
	if diff := cmp.Diff([]string{"doc-1", "old"}, documentIDs(entries)); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
	first := entries[0]
	if first.State != Pending || first.Item.Status != models.DocumentStatusProcessing || !first.Item.CreatedAt.Equal(fixedNow) {
		t.Errorf("new entry = %+v", first)
	}
	if nav.Route != "/analysis/doc-1" {
		t.Errorf("Route = %q", nav.Route)
	}
	if !p.Form.Blank() {
		t.Errorf("form not cleared: %+v", p.Form)
	}
}

func TestDocumentsPage_SubmitIsNotIdempotent(t *testing.T) {
	api := newFakeBackend()
	p := newDocumentsPage(t, api)

	for range 2 {
		p.Form = UploadForm{Name: "NDA", Content: "text", PlaybookID: "pb-1"}
		if _, err := p.Submit(context.Background()); err != nil {
			t.Fatalf("Submit() error = %v", err)
		}
	}
	if got := len(p.Entries()); got != 2 {
		t.Errorf("entries = %d, want 2", got)
	}
}

func TestDocumentsPage_SubmitFailures(t *testing.T) {
	tests := []struct {
		name      string
		form      UploadForm
		setup     func(*fakeBackend)
		wantKind  FormErrorKind
		wantMsg   string
		wantCalls bool
	}{
		{
			name:     "no playbook",
			form:     UploadForm{Name: "NDA", Content: "text"},
			wantKind: KindValidation,
			wantMsg:  "Please select a playbook",
		},
		{
			name:     "no content",
			form:     UploadForm{Name: "NDA", Content: "  ", PlaybookID: "pb-1"},
			wantKind: KindValidation,
			wantMsg:  "Please upload a valid document",
		},
		{
			name:      "network failure",
			form:      UploadForm{Name: "NDA", Content: "text", PlaybookID: "pb-1"},
			setup:     func(f *fakeBackend) { f.failCreate = errOffline },
			wantKind:  KindNetwork,
			wantMsg:   "Failed to upload document. Please try again.",
			wantCalls: true,
		},
		{
			name:      "response without id",
			form:      UploadForm{Name: "NDA", Content: "text", PlaybookID: "pb-1"},
			setup:     func(f *fakeBackend) { f.createNoIDs = true },
			wantKind:  KindNetwork,
			wantMsg:   "Upload failed: Invalid response from server",
			wantCalls: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newFakeBackend()
			p := newDocumentsPage(t, api)
			if tt.setup != nil {
				tt.setup(api)
			}
			api.calls = nil
			p.Form = tt.form

			nav, err := p.Submit(context.Background())
			assertFormError(t, err, tt.wantKind, tt.wantMsg)

			if nav != (Navigation{}) {
				t.Errorf("navigation on failure: %+v", nav)
			}
			if p.Form != tt.form {
				t.Errorf("form changed on failure: %+v", p.Form)
			}
			if len(p.Entries()) != 0 {
				t.Errorf("list changed on failure: %+v", p.Entries())
			}
			if made := slices.Contains(api.calls, "CreateDocument"); made != tt.wantCalls {
				t.Errorf("CreateDocument called = %v, want %v", made, tt.wantCalls)
			}
		})
	}
}

func TestDocumentsPage_SelectFileErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    ingest.File
		kind    FormErrorKind
		message string
	}{
		{"oversized", ingest.File{Name: "big.pdf", Data: make([]byte, config.MaxUploadBytes+1)}, KindValidation, "File size exceeds 10MB limit."},
		{"unsupported", ingest.File{Name: "notes.txt", Data: []byte("x")}, KindExtraction, "Unsupported file type. Please upload .pdf or .docx"},
		{"corrupt", ingest.File{Name: "broken.pdf", Data: []byte("x")}, KindExtraction, "Failed to process file. Only PDF and DOCX are supported."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newDocumentsPage(t, newFakeBackend())
			p.Form.PlaybookID = "pb-1"

			assertFormError(t, p.SelectFile(context.Background(), tt.file), tt.kind, tt.message)
			if p.Form != (UploadForm{PlaybookID: "pb-1"}) {
				t.Errorf("form changed on failure: %+v", p.Form)
			}
		})
	}
}

func TestDocumentsPage_RefreshReconciles(t *testing.T) {
	api := newFakeBackend()
	p := newDocumentsPage(t, api)

	p.Form = UploadForm{Name: "Kept", Content: "text", PlaybookID: "pb-1"}
	if _, err := p.Submit(context.Background()); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	p.Form = UploadForm{Name: "Lost", Content: "text", PlaybookID: "pb-1"}
	if _, err := p.Submit(context.Background()); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	// The server lost doc-2 and renamed doc-1.
	api.documents = []models.Document{{ID: "doc-1", Name: "Kept (server)", Status: models.DocumentStatusProcessed}}

	if err := p.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}

	got := p.Entries()
	want := []struct {
		id    string
		name  string
		state RecordState
	}{
		{"doc-2", "Lost", Failed},
		{"doc-1", "Kept (server)", Confirmed},
	}
	if len(got) != len(want) {
		t.Fatalf("entries = %+v", got)
	}
	for i, w := range want {
		if got[i].Item.ID != w.id || got[i].Item.Name != w.name || got[i].State != w.state {
			t.Errorf("entry %d = {%s %s %s}, want {%s %s %s}", i, got[i].Item.ID, got[i].Item.Name, got[i].State, w.id, w.name, w.state)
		}
	}

	if err := p.Dismiss("doc-1"); !errors.Is(err, ErrNoSuchRecord) {
		t.Errorf("Dismiss(confirmed) error = %v", err)
	}
	if err := p.Dismiss("doc-2"); err != nil {
		t.Fatalf("Dismiss() error = %v", err)
	}
	if diff := cmp.Diff([]string{"doc-1"}, documentIDs(p.Entries())); diff != "" {
		t.Errorf("after dismiss (-want +got):\n%s", diff)
	}
}

func TestDocumentsPage_Delete(t *testing.T) {
	api := newFakeBackend()
	api.documents = []models.Document{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	p := newDocumentsPage(t, api)

	if err := p.Delete(context.Background(), "b"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if diff := cmp.Diff([]string{"a", "c"}, documentIDs(p.Entries())); diff != "" {
		t.Errorf("after delete (-want +got):\n%s", diff)
	}

	api.failDelete = errOffline
	assertFormError(t, p.Delete(context.Background(), "a"), KindNetwork, "Failed to delete document. Please try again.")
	if len(p.Entries()) != 2 {
		t.Errorf("failed delete changed the list: %v", documentIDs(p.Entries()))
	}
}

func TestDocumentsPage_LoadNormalizes(t *testing.T) {
	api := newFakeBackend()
	api.documents = []models.Document{{ID: "a", Name: "Legacy"}}
	api.playbooks = []models.Playbook{{ID: "pb-1", Name: "MSA"}}
	p := newDocumentsPage(t, api)

	doc := p.Entries()[0].Item
	if doc.Status != models.DocumentStatusProcessing || !doc.CreatedAt.Equal(fixedNow) {
		t.Errorf("normalized document = %+v", doc)
	}
	if len(p.Playbooks()) != 1 {
		t.Errorf("Playbooks() = %+v", p.Playbooks())
	}
}

func TestDocumentsPage_ViewSearchResetsPage(t *testing.T) {
	api := newFakeBackend()
	for _, name := range []string{"Alpha", "Beta", "Gamma", "Delta", "Epsilon", "Zeta", "Eta"} {
		api.documents = append(api.documents, models.Document{ID: name, Name: name})
	}
	p := newDocumentsPage(t, api)

	p.Page = 2
	if v := p.View(); v.Page != 2 || len(v.Items) != 2 || v.TotalPages != 2 {
		t.Fatalf("page 2 view = %+v", v)
	}

	p.SetSearch("ETA")
	v := p.View()
	if p.Page != 1 || v.TotalItems != 3 {
		t.Errorf("search view = page %d, %d items", p.Page, v.TotalItems)
	}
}

func newPlaybooksPage(t *testing.T, api *fakeBackend) *PlaybooksPage {
	t.Helper()
	p := NewPlaybooksPage(api, &fakeExtractor{texts: map[string]string{"DPA.docx": "Data processing rules"}}, testLogger())
	if err := p.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return p
}

func TestPlaybooksPage_Submit(t *testing.T) {
	api := newFakeBackend()
	api.playbooks = []models.Playbook{{ID: "pb-0", Name: "Vendor MSA"}}
	p := newPlaybooksPage(t, api)

	p.Form.Name = "Data Processing"
	if err := p.SelectFile(context.Background(), ingest.File{Name: "DPA.docx"}); err != nil {
		t.Fatalf("SelectFile() error = %v", err)
	}
	if p.Form.Name != "Data Processing" {
		t.Errorf("typed name overwritten: %q", p.Form.Name)
	}

	if err := p.Submit(context.Background()); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	entries := p.Entries()
	if len(entries) != 2 || entries[1].Item.Name != "Data Processing" || entries[1].State != Pending {
		t.Errorf("entries = %+v", entries)
	}
	if !p.Form.Blank() {
		t.Errorf("form not cleared: %+v", p.Form)
	}
}

func TestPlaybooksPage_SubmitRejectsDuplicateLocally(t *testing.T) {
	api := newFakeBackend()
	api.playbooks = []models.Playbook{{ID: "pb-0", Name: "Vendor MSA"}}
	p := newPlaybooksPage(t, api)
	api.calls = nil

	p.Form = UploadForm{Name: "vendor msa", Content: "rules"}
	assertFormError(t, p.Submit(context.Background()), KindValidation, "A playbook with this name already exists")

	if len(api.calls) != 0 {
		t.Errorf("network calls made: %v", api.calls)
	}
	if p.Form.Name != "vendor msa" {
		t.Error("form changed on failure")
	}

	p.Form = UploadForm{Name: "  ", Content: "rules"}
	assertFormError(t, p.Submit(context.Background()), KindValidation, "Playbook name and content are required")
}

func TestPlaybooksPage_SubmitNetworkError(t *testing.T) {
	api := newFakeBackend()
	p := newPlaybooksPage(t, api)
	api.failCreate = &client.APIError{Status: http.StatusConflict, Detail: "A playbook with the name \"X\" already exists."}

	p.Form = UploadForm{Name: "X", Content: "rules"}
	err := p.Submit(context.Background())

	var fe *FormError
	if !errors.As(err, &fe) || fe.Kind != KindNetwork {
		t.Fatalf("error = %v", err)
	}
	if client.StatusOf(err) != http.StatusConflict {
		t.Errorf("cause not preserved: %v", err)
	}
	if len(p.Entries()) != 0 {
		t.Error("list changed on failure")
	}
}

func TestPlaybooksPage_SubmitEmptyResponse(t *testing.T) {
	api := newFakeBackend()
	p := newPlaybooksPage(t, api)
	api.createNoIDs = true

	form := UploadForm{Name: "Security Addendum", Content: "rules"}
	p.Form = form
	assertFormError(t, p.Submit(context.Background()), KindNetwork, "Upload failed: Invalid response from server")

	if len(p.Entries()) != 0 {
		t.Errorf("entry without id added: %+v", p.Entries())
	}
	if p.Form != form {
		t.Errorf("form changed on failure: %+v", p.Form)
	}
}

func TestPlaybooksPage_UpdateDeleteDownload(t *testing.T) {
	api := newFakeBackend()
	api.playbooks = []models.Playbook{
		{ID: "pb-a", Name: "A", Content: "alpha"},
		{ID: "pb-b", Name: "B", Content: "beta"},
	}
	p := newPlaybooksPage(t, api)
	ctx := context.Background()

	assertFormError(t, p.Update(ctx, "pb-a", "b", "x"), KindValidation, "A playbook with this name already exists")

	if err := p.Update(ctx, "pb-a", "A2", "alpha v2"); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if got := p.Entries()[0].Item; got.Name != "A2" || got.Content != "alpha v2" {
		t.Errorf("updated entry = %+v", got)
	}

	var buf bytes.Buffer
	name, err := p.Download("pb-a", &buf)
	if err != nil {
		t.Fatalf("Download() error = %v", err)
	}
	if name != "A2.txt" || buf.String() != "alpha v2" {
		t.Errorf("Download() = %q, %q", name, buf.String())
	}
	if _, err := p.Download("missing", &buf); !errors.Is(err, ErrNoSuchRecord) {
		t.Errorf("Download(missing) error = %v", err)
	}

	api.failUpdate = errOffline
	assertFormError(t, p.Update(ctx, "pb-b", "B2", "x"), KindNetwork, "Update failed")

	if err := p.Delete(ctx, "pb-a"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if got := p.Entries(); len(got) != 1 || got[0].Item.ID != "pb-b" {
		t.Errorf("after delete = %+v", got)
	}
}

func TestReviewsPage(t *testing.T) {
	api := newFakeBackend()
	api.documents = []models.Document{{ID: "d1", Name: "Vendor MSA"}, {ID: "d2", Name: "Lease"}}
	api.reviews = []models.Review{
		{ID: "r1", DocumentID: "d1", Gaps: "No cap"},
		{ID: "r2", DocumentID: "d2", Conflicts: "Notice period"},
		{ID: "r3", DocumentID: "gone", Irrelevant: "Appendix"},
	}

	p := NewReviewsPage(api, testLogger())
	if err := p.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	p.SetSearch("vendor")
	if v := p.View(); len(v.Items) != 1 || v.Items[0].ID != "r1" {
		t.Errorf("search by document name = %+v", v.Items)
	}
	p.SetSearch("   ")
	if v := p.View(); v.TotalItems != 3 {
		t.Errorf("blank search = %d items", v.TotalItems)
	}
	if p.DocumentName("gone") != "" {
		t.Error("deleted document should have no name")
	}
	if _, ok := p.Document("d2"); !ok {
		t.Error("Document(d2) missing")
	}

	api.failList = errOffline
	fresh := NewReviewsPage(api, testLogger())
	assertFormError(t, fresh.Load(context.Background()), KindNetwork, "Failed to load reviews.")
}

func TestAnalysisView_Load(t *testing.T) {
	existing := &models.Review{ID: "r1", DocumentID: "d1", Conflicts: "A\n\nB", Irrelevant: "C"}

	tests := []struct {
		name      string
		setup     func(*fakeBackend)
		wantCalls []string
		wantMsg   string
		wantCount int
	}{
		{
			name:      "existing analysis",
			setup:     func(f *fakeBackend) { f.analyses["d1"] = existing },
			wantCalls: []string{"GetAnalysis"},
			wantCount: 3,
		},
		{
			name:      "runs analysis on first view",
			wantCalls: []string{"GetAnalysis", "Analyze", "GetAnalysis"},
			wantCount: 3,
		},
		{
			name:      "deleted playbook surfaces server detail",
			setup:     func(f *fakeBackend) { f.analyzeErr = notFound("playbook pb-9 for document d1: not found") },
			wantCalls: []string{"GetAnalysis", "Analyze"},
			wantMsg:   "playbook pb-9 for document d1: not found",
		},
		{
			name:      "analysis error",
			setup:     func(f *fakeBackend) { f.analyzeErr = &client.APIError{Status: 500, Detail: "boom"} },
			wantCalls: []string{"GetAnalysis", "Analyze"},
			wantMsg:   "Analysis failed. Please try again.",
		},
		{
			name:      "network failure during analysis",
			setup:     func(f *fakeBackend) { f.analyzeErr = errOffline },
			wantCalls: []string{"GetAnalysis", "Analyze"},
			wantMsg:   "Analysis failed. Please try again.",
		},
		{
			name:      "second fetch fails",
			setup:     func(f *fakeBackend) { f.getErrs = []error{notFound(""), errOffline} },
			wantCalls: []string{"GetAnalysis", "Analyze", "GetAnalysis"},
			wantMsg:   "Analysis failed. Please try again.",
		},
		{
			name:      "first fetch fails with other error",
			setup:     func(f *fakeBackend) { f.getErrs = []error{&client.APIError{Status: 500}} },
			wantCalls: []string{"GetAnalysis"},
			wantMsg:   "Analysis not found.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newFakeBackend()
			if tt.setup != nil {
				tt.setup(api)
			}

			result, err := NewAnalysisView(api, testLogger()).Load(context.Background(), "d1")

			if diff := cmp.Diff(tt.wantCalls, api.calls); diff != "" {
				t.Errorf("calls mismatch (-want +got):\n%s", diff)
			}
			if tt.wantMsg != "" {
				assertFormError(t, err, KindNetwork, tt.wantMsg)
				return
			}
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if len(result.Redlines) != tt.wantCount {
				t.Errorf("redlines = %+v", result.Redlines)
			}
		})
	}
}

func TestAnalysisView_CancelDiscardsLateResponse(t *testing.T) {
	api := newFakeBackend()
	ctx, cancel := context.WithCancel(context.Background())
	api.onAnalyze = cancel

	result, err := NewAnalysisView(api, testLogger()).Load(ctx, "d1")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
	if result != nil {
		t.Errorf("late result delivered: %+v", result)
	}
	if slices.Equal(api.calls, []string{"GetAnalysis", "Analyze", "GetAnalysis"}) {
		t.Error("fetched again after cancellation")
	}
}

func TestAnalysisResult_FilterAndCounts(t *testing.T) {
	result := newAnalysisResult(&models.Review{
		Conflicts:  "Cap missing\nNotice 10 days",
		Gaps:       "No governing law",
		Irrelevant: "",
	})

	if got := len(result.Filter("all")); got != 3 {
		t.Errorf("Filter(all) = %d", got)
	}
	want := []models.Redline{{Type: models.RedlineGap, Text: "No governing law"}}
	if diff := cmp.Diff(want, result.Filter(models.RedlineGap)); diff != "" {
		t.Errorf("Filter(gap) mismatch (-want +got):\n%s", diff)
	}
	if got := result.Filter(models.RedlineIrrelevant); len(got) != 0 {
		t.Errorf("Filter(irrelevant) = %+v", got)
	}

	wantCounts := map[models.RedlineType]int{
		models.RedlineConflict:   2,
		models.RedlineGap:        1,
		models.RedlineIrrelevant: 0,
	}
	if diff := cmp.Diff(wantCounts, result.Counts()); diff != "" {
		t.Errorf("Counts() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadStats(t *testing.T) {
	api := newFakeBackend()
	api.documents = []models.Document{
		{ID: "a", Status: models.DocumentStatusProcessed},
		{ID: "b", Status: models.DocumentStatusProcessing},
		{ID: "c", Status: models.DocumentStatusFailed},
		{ID: "d", Status: models.DocumentStatusProcessed},
	}
	api.playbooks = []models.Playbook{{ID: "pb"}}
	api.reviews = []models.Review{
		{Conflicts: "x\ny", Gaps: "z"},
		{Irrelevant: "w"},
	}

	got, err := LoadStats(context.Background(), api)
	if err != nil {
		t.Fatalf("LoadStats() error = %v", err)
	}
	want := Stats{
		Documents: 4, Processing: 1, Processed: 2, Failed: 1,
		Playbooks: 1, Reviews: 2,
		Conflicts: 2, Gaps: 1, Irrelevant: 1,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("LoadStats() mismatch (-want +got):\n%s", diff)
	}

	api.failList = errOffline
	if _, err := LoadStats(context.Background(), api); !errors.Is(err, errOffline) {
		t.Errorf("error = %v, want wrapped errOffline", err)
	}
}
