package get_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/integrations/providerdirectory"
	"github.com/m04kA/SMC-AvailabilityService/pkg/civiltime"
)

// resolvedSchedule расписание специалиста на конкретную дату
type resolvedSchedule struct {
	Day      civiltime.Day      // границы дня в зоне специалиста, UTC
	Schedule domain.DaySchedule // шаблон дня; пустой, если Closed
	Closed   bool
	SlotStep time.Duration
	Duration time.Duration
	IsToday  bool
}

// resolveSchedule определяет рабочее расписание специалиста на дату запроса
// Специалист и услуга запрашиваются параллельно
func (uc *UseCase) resolveSchedule(ctx context.Context, req *Request, now time.Time) (*resolvedSchedule, error) {
	// 1. Получаем специалиста и услугу
	// Ошибки собираются от обоих запросов: NotFound важнее Internal
	var (
		professional    *domain.Professional
		service         *domain.Service
		professionalErr error
		serviceErr      error
	)

	var g errgroup.Group
	g.Go(func() error {
		professional, professionalErr = uc.directory.GetProfessional(ctx, req.ProfessionalID)
		return nil
	})
	g.Go(func() error {
		service, serviceErr = uc.directory.GetService(ctx, req.ServiceID)
		return nil
	})
	_ = g.Wait()

	switch {
	case errors.Is(professionalErr, providerdirectory.ErrProfessionalNotFound):
		return nil, ErrProfessionalNotFound
	case errors.Is(serviceErr, providerdirectory.ErrServiceNotFound):
		return nil, ErrServiceNotFound
	case professionalErr != nil:
		return nil, fmt.Errorf("%w: resolveSchedule - get professional id=%s: %v", ErrInternal, req.ProfessionalID, professionalErr)
	case serviceErr != nil:
		return nil, fmt.Errorf("%w: resolveSchedule - get service id=%s: %v", ErrInternal, req.ServiceID, serviceErr)
	case professional == nil || service == nil:
		return nil, fmt.Errorf("%w: resolveSchedule - empty directory response", ErrInternal)
	}

	if service.DurationMinutes <= 0 {
		return nil, fmt.Errorf("%w: resolveSchedule - service id=%s has non-positive duration %d",
			ErrInternal, service.ID, service.DurationMinutes)
	}

	// 2. Границы дня и день недели в часовом поясе специалиста
	loc, err := civiltime.LoadZone(professional.TimezoneName())
	if err != nil {
		return nil, fmt.Errorf("%w: resolveSchedule - professional id=%s: %v", ErrInternal, professional.ID, err)
	}

	day, err := civiltime.ParseDay(req.Date, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	resolved := &resolvedSchedule{
		Day:      day,
		SlotStep: time.Duration(domain.EffectiveSlotStep(service, professional)) * time.Minute,
		Duration: time.Duration(service.DurationMinutes) * time.Minute,
		IsToday:  civiltime.Today(now, loc) == day.Date,
	}

	// 3. Расписание дня; отсутствующий или неактивный день - выходной
	schedule, ok := professional.WorkSchedule.ForWeekday(day.Weekday())
	if !ok {
		resolved.Closed = true
		return resolved, nil
	}

	if schedule.WorkHours.Start.IsZero() || schedule.WorkHours.End.IsZero() {
		uc.logger.Warn("GetAvailability: professional id=%s has active %s without work hours, treating as closed",
			professional.ID, domain.WeekdayKey(day.Weekday()))
		resolved.Closed = true
		return resolved, nil
	}

	resolved.Schedule = schedule
	return resolved, nil
}
