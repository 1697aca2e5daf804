package providerdirectory

import (
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// Professional модель специалиста из каталога
type Professional struct {
	ID           string                 `json:"id"`
	Timezone     *string                `json:"timezone"`
	SlotStep     *int                   `json:"slotStep"`
	WorkSchedule map[string]DaySchedule `json:"workSchedule"`
}

// DaySchedule расписание дня в ответе каталога
type DaySchedule struct {
	IsActive  bool `json:"isActive"`
	WorkHours struct {
		Start types.TimeString `json:"start"`
		End   types.TimeString `json:"end"`
	} `json:"workHours"`
	Breaks []struct {
		Start types.TimeString `json:"start"`
		End   types.TimeString `json:"end"`
	} `json:"breaks"`
}

// Service модель услуги из каталога
type Service struct {
	ID             string `json:"id"`
	ProfessionalID string `json:"professionalId"`
	Duration       int    `json:"duration"`
	SlotStep       *int   `json:"slotStep"`
}

// ErrorResponse модель ошибки от каталога
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ToDomain преобразует ответ каталога в доменную модель специалиста
func (p *Professional) ToDomain() *domain.Professional {
	schedule := make(domain.WeeklySchedule, len(p.WorkSchedule))
	for day, ds := range p.WorkSchedule {
		breaks := make([]domain.Break, 0, len(ds.Breaks))
		for _, b := range ds.Breaks {
			breaks = append(breaks, domain.Break{Start: b.Start, End: b.End})
		}
		schedule[day] = domain.DaySchedule{
			IsActive: ds.IsActive,
			WorkHours: domain.WorkHours{
				Start: ds.WorkHours.Start,
				End:   ds.WorkHours.End,
			},
			Breaks: breaks,
		}
	}

	return &domain.Professional{
		ID:              p.ID,
		Timezone:        p.Timezone,
		SlotStepMinutes: p.SlotStep,
		WorkSchedule:    schedule,
	}
}

// ToDomain преобразует ответ каталога в доменную модель услуги
func (s *Service) ToDomain() *domain.Service {
	return &domain.Service{
		ID:              s.ID,
		ProfessionalID:  s.ProfessionalID,
		DurationMinutes: s.Duration,
		SlotStepMinutes: s.SlotStep,
	}
}
