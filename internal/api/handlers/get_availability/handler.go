package get_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	getAvailability "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_availability"
)

const (
	msgInvalidArguments     = "параметры date (YYYY-MM-DD), professionalId и serviceId обязательны"
	msgProfessionalNotFound = "специалист не найден"
	msgServiceNotFound      = "услуга не найдена"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability
// Query params: date (required, YYYY-MM-DD), professionalId (required), serviceId (required)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	useCaseReq := ToUseCaseRequest(r.URL.Query())

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /availability - Invalid arguments: %v", err)
			handlers.RespondBadRequest(w, msgInvalidArguments)

		case errors.Is(err, getAvailability.ErrProfessionalNotFound):
			h.logger.Warn("GET /availability - Professional not found: professional_id=%s", useCaseReq.ProfessionalID)
			handlers.RespondNotFound(w, msgProfessionalNotFound)

		case errors.Is(err, getAvailability.ErrServiceNotFound):
			h.logger.Warn("GET /availability - Service not found: service_id=%s", useCaseReq.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		default:
			h.logger.Error("GET /availability - Failed to get availability: professional_id=%s, service_id=%s, date=%s, error=%v",
				useCaseReq.ProfessionalID, useCaseReq.ServiceID, useCaseReq.Date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /availability - Slots retrieved: professional_id=%s, service_id=%s, date=%s, slots_count=%d, cached=%t",
		result.ProfessionalID, result.ServiceID, result.Date, len(result.Slots), result.FromCache)
	handlers.RespondJSON(w, http.StatusOK, response)
}
