package handler

import "net/http"

// Handlers groups every HTTP handler the server exposes.
type Handlers struct {
	Documents *DocumentHandler
	Playbooks *PlaybookHandler
	Reviews   *ReviewHandler
}

// RegisterRoutes wires the REST surface onto mux.
func RegisterRoutes(mux *http.ServeMux, h Handlers) {
	mux.HandleFunc("GET /", Root)
	mux.HandleFunc("GET /health", HealthCheck)

	mux.HandleFunc("GET /documents", h.Documents.ListDocuments)
	mux.HandleFunc("POST /documents", h.Documents.CreateDocument)
	mux.HandleFunc("POST /documents/upload", h.Documents.UploadDocument)
	mux.HandleFunc("GET /documents/{id}", h.Documents.GetDocument)
	mux.HandleFunc("DELETE /documents/{id}", h.Documents.DeleteDocument)

	mux.HandleFunc("GET /playbooks", h.Playbooks.ListPlaybooks)
	mux.HandleFunc("POST /playbooks", h.Playbooks.CreatePlaybook)
	mux.HandleFunc("POST /playbooks/upload", h.Playbooks.UploadPlaybook)
	mux.HandleFunc("GET /playbooks/{id}", h.Playbooks.GetPlaybook)
	mux.HandleFunc("PUT /playbooks/{id}", h.Playbooks.UpdatePlaybook)
	mux.HandleFunc("DELETE /playbooks/{id}", h.Playbooks.DeletePlaybook)

	mux.HandleFunc("GET /reviews", h.Reviews.ListReviews)
	mux.HandleFunc("POST /reviews", h.Reviews.CreateReview)
	mux.HandleFunc("PATCH /reviews/{id}", h.Reviews.UpdateCorrections)

	mux.HandleFunc("GET /analyze/{id}", h.Reviews.GetAnalysis)
	mux.HandleFunc("POST /analyze/{id}", h.Reviews.Analyze)
}
