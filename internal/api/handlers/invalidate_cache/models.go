package invalidate_cache

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	invalidateCache "github.com/m04kA/SMC-AvailabilityService/internal/usecase/invalidate_cache"
)

// InvalidateRequest HTTP request model
// Писатель записей или блокировок отправляет состояние до и после изменения
type InvalidateRequest struct {
	Before *Snapshot `json:"before"`
	After  *Snapshot `json:"after"`
}

// Snapshot состояние записи или блокировки
type Snapshot struct {
	ProfessionalID string     `json:"professionalId"`
	ServiceID      string     `json:"serviceId"`
	Start          *time.Time `json:"start"`
}

func (s *Snapshot) toDomain() *domain.WriteSnapshot {
	if s == nil {
		return nil
	}
	return &domain.WriteSnapshot{
		ProfessionalID: s.ProfessionalID,
		ServiceID:      s.ServiceID,
		Start:          s.Start,
	}
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *InvalidateRequest) ToUseCaseRequest() *invalidateCache.Request {
	return &invalidateCache.Request{
		Before: r.Before.toDomain(),
		After:  r.After.toDomain(),
		Source: invalidateCache.SourceHTTP,
	}
}
