package invalidate_cache

import (
	"net/http"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
)

const msgInvalidRequestBody = "некорректное тело запроса: ожидаются before и after в формате {professionalId, serviceId, start}"

type Handler struct {
	useCase InvalidateCacheUseCase
	logger  Logger
}

func NewHandler(useCase InvalidateCacheUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /internal/v1/availability-cache/invalidate
// Вызывается писателями записей и блокировок после успешного изменения
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req InvalidateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /availability-cache/invalidate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		h.logger.Error("POST /availability-cache/invalidate - Failed to invalidate: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /availability-cache/invalidate - Deleted %d key(s)", len(result.Deleted))
	handlers.RespondNoContent(w)
}
