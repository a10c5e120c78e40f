package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/hamed0406/dbkeepalive/internal/domain"
	"github.com/hamed0406/dbkeepalive/internal/history"
	"github.com/hamed0406/dbkeepalive/internal/httpapi/middleware"
	"github.com/hamed0406/dbkeepalive/internal/runner"
)

type Server struct {
	Logger  *zap.Logger
	Runner  *runner.Runner
	History *history.Log
}

func NewServer(l *zap.Logger, r *runner.Runner, h *history.Log) *Server {
	return &Server{Logger: l, Runner: r, History: h}
}

// Router builds the HTTP surface: /health and /status for observers,
// everything else triggers a manual run. The status page is meant to be
// embedded in dashboards, hence the allow-all CORS.
func (s *Server) Router(triggerRPM, triggerBurst int) http.Handler {
	r := chi.NewRouter()
	r.Use(cors.AllowAll().Handler)

	r.Get("/health", s.handleHealth)
	r.Get("/status", s.handleStatus)

	trigger := middleware.RateLimit(triggerRPM, triggerBurst)(http.HandlerFunc(s.handleTrigger))
	r.Get("/", trigger.ServeHTTP)
	r.NotFound(trigger.ServeHTTP)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	// absent and unreadable both render as no_data
	log, _ := s.History.Read(r.Context())
	code, body := renderStatus(log)
	writeJSON(w, code, body)
}

// handleTrigger runs one batch on demand and returns its summary. 207
// signals a run that completed with failures (or found nothing to ping)
// so cron services watching this route surface the problem.
func (s *Server) handleTrigger(w http.ResponseWriter, r *http.Request) {
	summary := s.Runner.RunOnce(r.Context(), domain.TriggerManual)

	code := http.StatusOK
	if !summary.Success {
		code = http.StatusMultiStatus
	}
	writeJSON(w, code, summary)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
