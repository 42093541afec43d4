package handler

import (
	"net/http"
	"time"

	"github.com/VasupriyaPatnaik/AI-Redliner/internal/httputil"
)

// Root reports that the backend is up
// GET /
func Root(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		httputil.RespondError(w, http.StatusNotFound, "route not found")
		return
	}
	httputil.RespondJSON(w, http.StatusOK, map[string]string{
		"message": "AI Redliner backend is running",
	})
}

// HealthCheck returns service health
// GET /health
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
