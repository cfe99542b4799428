package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"sports-scoreboard/internal/logging"
	"sports-scoreboard/internal/manager"
)

// Introspector is the slice of the plugin surface the status endpoints need.
type Introspector interface {
	GetInfo() map[string]any
	Health() map[string]manager.Status
}

// Handler serves the scoreboard's health and status routes.
type Handler struct {
	source Introspector
	logger *slog.Logger
}

// NewHandler constructs a Handler over the plugin's introspection surface.
func NewHandler(source Introspector, logger *slog.Logger) *Handler {
	return &Handler{source: source, logger: logger}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/healthz":
		h.Healthz(w, r)
	case "/status":
		h.Status(w, r)
	default:
		writeError(w, r, http.StatusNotFound, "not found", h.logger)
	}
}

// Healthz reports 200 when at least one manager has a fresh fetch and 503
// when every manager is failing, so a supervisor can restart a dead feed.
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	health := h.source.Health()
	ready := len(health) == 0
	for _, s := range health {
		if s.IsReady() {
			ready = true
			break
		}
	}

	status := http.StatusOK
	state := "ok"
	if !ready {
		status = http.StatusServiceUnavailable
		state = "degraded"
	}
	writeJSON(w, status, map[string]any{
		"status":   state,
		"managers": health,
	}, h.logger)
}

// Status dumps the plugin's diagnostic snapshot.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, h.source.GetInfo(), h.logger)
}

func writeJSON(w http.ResponseWriter, status int, payload any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.Error(logger, "failed to encode response", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string, logger *slog.Logger) {
	body := map[string]string{"error": message}
	if reqID := requestIDFromContext(r.Context()); reqID != "" {
		body["requestId"] = reqID
	}
	writeJSON(w, status, body, logger)
}
