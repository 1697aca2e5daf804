package write_events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	invalidateCache "github.com/m04kA/SMC-AvailabilityService/internal/usecase/invalidate_cache"
)

// Сущности, изменения которых влияют на доступность
const (
	EntityAppointment = "appointment"
	EntityTimeBlock   = "timeBlock"
)

// Операции записи
const (
	OperationCreate = "create"
	OperationUpdate = "update"
	OperationDelete = "delete"
)

// WriteEvent событие успешной записи, публикуемое писателями записей и блокировок
type WriteEvent struct {
	EventID   string    `json:"eventId"`
	Entity    string    `json:"entity"`
	Operation string    `json:"operation"`
	Before    *Snapshot `json:"before"`
	After     *Snapshot `json:"after"`
}

// Snapshot состояние сущности до или после записи
type Snapshot struct {
	ProfessionalID string     `json:"professionalId"`
	ServiceID      string     `json:"serviceId"`
	Start          *time.Time `json:"start"`
}

func decodeEvent(payload []byte) (*WriteEvent, error) {
	var event WriteEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrMalformedEvent, err)
	}

	switch event.Entity {
	case EntityAppointment, EntityTimeBlock:
	default:
		return nil, fmt.Errorf("%w: unknown entity %q", ErrMalformedEvent, event.Entity)
	}

	switch event.Operation {
	case OperationCreate, OperationUpdate, OperationDelete:
	default:
		return nil, fmt.Errorf("%w: unknown operation %q", ErrMalformedEvent, event.Operation)
	}

	return &event, nil
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

// ToUseCaseRequest конвертирует событие в запрос инвалидации
func (e *WriteEvent) ToUseCaseRequest() *invalidateCache.Request {
	return &invalidateCache.Request{
		Before: e.Before.toDomain(),
		After:  e.After.toDomain(),
		Source: invalidateCache.SourceKafka,
	}
}
