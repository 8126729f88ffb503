package web

import (
	"net/http"

	"github.com/a-h/templ"

	"github.com/louisbranch/tempo/internal/auth/grant"
	"github.com/louisbranch/tempo/internal/timer/service"
)

// NewHandler builds the HTTP handler for the web server.
func NewHandler(svc *service.Service, grants grant.Config) http.Handler {
	api := &apiHandler{service: svc}

	mux := http.NewServeMux()
	mux.Handle("GET /{$}", templ.Handler(landingPage()))
	mux.HandleFunc("GET /health", handleHealth)

	mux.HandleFunc("GET /api/v1/timers", api.handleListTimers)
	mux.HandleFunc("POST /api/v1/timers", api.handleCreateTimer)
	mux.HandleFunc("GET /api/v1/timers/{id}", api.handleGetTimer)
	mux.HandleFunc("PATCH /api/v1/timers/{id}", api.handleUpdateTimer)
	mux.HandleFunc("DELETE /api/v1/timers/{id}", api.handleDeleteTimer)
	mux.HandleFunc("POST /api/v1/timers/{id}/steps", api.handleAddStep)
	mux.HandleFunc("DELETE /api/v1/timers/{id}/steps/{stepID}", api.handleRemoveStep)
	mux.HandleFunc("GET /api/v1/import-export/timers/{id}/export", api.handleExportTimer)
	mux.HandleFunc("POST /api/v1/import-export/timers/import", api.handleImportBatch)

	root := http.NewServeMux()
	root.Handle("/api/", requireGrant(grants, mux))
	root.Handle("/", mux)
	return root
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
