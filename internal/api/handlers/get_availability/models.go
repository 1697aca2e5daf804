package get_availability

import (
	"net/url"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	getAvailability "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Date           string   `json:"date"`
	ProfessionalID string   `json:"professionalId"`
	ServiceID      string   `json:"serviceId"`
	Slots          []string `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	return &AvailabilityResponse{
		Date:           resp.Date,
		ProfessionalID: resp.ProfessionalID,
		ServiceID:      resp.ServiceID,
		Slots:          domain.FormatSlots(resp.Slots),
	}
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(query url.Values) *getAvailability.Request {
	return &getAvailability.Request{
		Date:           query.Get("date"),
		ProfessionalID: query.Get("professionalId"),
		ServiceID:      query.Get("serviceId"),
	}
}
