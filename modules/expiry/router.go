package expiry

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// runResponse is the invocation result contract. Success is always true on
// normal completion; degraded runs surface only through the counters.
type runResponse struct {
	Success   bool   `json:"success"`
	Warned    int    `json:"warned"`
	Expired   int    `json:"expired"`
	Errors    int    `json:"errors"`
	Timestamp string `json:"timestamp"`
}

// NewRouter mounts the module's HTTP surface: POST /run triggers one full
// pass, GET /health reports store connectivity. The healthcheck may be nil.
func NewRouter(svc *Service, healthcheck func(context.Context) error) http.Handler {
	r := chi.NewRouter()

	r.Post("/run", func(w http.ResponseWriter, req *http.Request) {
		summary := svc.Run(req.Context())
		writeJSON(w, http.StatusOK, runResponse{
			Success:   true,
			Warned:    summary.Warned,
			Expired:   summary.Expired,
			Errors:    summary.Errors,
			Timestamp: summary.Timestamp.Format(time.RFC3339),
		})
	})

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		if healthcheck != nil {
			if err := healthcheck(req.Context()); err != nil {
				writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
