package domain

import "github.com/m04kA/SMC-AvailabilityService/pkg/ptr"

// Professional специалист (провайдер услуг) с недельным расписанием
type Professional struct {
	ID              string
	Timezone        *string // имя зоны IANA, nil или "" = UTC
	SlotStepMinutes *int
	WorkSchedule    WeeklySchedule
}

// TimezoneName имя часового пояса специалиста, "" означает UTC
func (p *Professional) TimezoneName() string {
	return ptr.Deref(p.Timezone, "")
}

// Service услуга из каталога специалиста
type Service struct {
	ID              string
	ProfessionalID  string
	DurationMinutes int
	SlotStepMinutes *int
}

// EffectiveSlotStep шаг сетки слотов по иерархии:
// 1. Шаг услуги
// 2. Шаг специалиста
// 3. DefaultSlotStepMinutes
// Неположительные значения считаются незаданными
func EffectiveSlotStep(service *Service, professional *Professional) int {
	if service != nil && service.SlotStepMinutes != nil && *service.SlotStepMinutes > 0 {
		return *service.SlotStepMinutes
	}
	if professional != nil && professional.SlotStepMinutes != nil && *professional.SlotStepMinutes > 0 {
		return *professional.SlotStepMinutes
	}
	return DefaultSlotStepMinutes
}
