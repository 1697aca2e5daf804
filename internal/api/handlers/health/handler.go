package health

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
)

const defaultCheckTimeout = 2 * time.Second

type Handler struct {
	checks  map[string]Pinger
	timeout time.Duration
	logger  Logger
}

// NewHandler создает handler проверок; checks - именованные зависимости для readiness
func NewHandler(checks map[string]Pinger, logger Logger) *Handler {
	return &Handler{
		checks:  checks,
		timeout: defaultCheckTimeout,
		logger:  logger,
	}
}

// Live GET /healthz
func (h *Handler) Live(w http.ResponseWriter, _ *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, StatusResponse{Status: statusOK})
}

// Ready GET /readyz
// 503, если хотя бы одна зависимость недоступна
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	resp := StatusResponse{Status: statusOK, Checks: make(map[string]string, len(names))}
	for _, name := range names {
		if err := h.checks[name].PingContext(ctx); err != nil {
			h.logger.Warn("GET /readyz - %s is not ready: %v", name, err)
			resp.Status = statusFail
			resp.Checks[name] = statusFail
			continue
		}
		resp.Checks[name] = statusOK
	}

	code := http.StatusOK
	if resp.Status != statusOK {
		code = http.StatusServiceUnavailable
	}
	handlers.RespondJSON(w, code, resp)
}
