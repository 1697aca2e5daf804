package get_availability

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// collectBusyIntervals собирает все интервалы, блокирующие слоты в течение дня:
// неотменённые записи, ручные блокировки и перерывы из расписания
// Результат отсортирован по возрастанию начала
func (uc *UseCase) collectBusyIntervals(ctx context.Context, professionalID string, rs *resolvedSchedule) ([]domain.Interval, error) {
	filter := domain.RangeFilter{
		ProfessionalID: professionalID,
		From:           rs.Day.Start,
		To:             rs.Day.End,
	}

	var (
		appointments []*domain.Appointment
		blocks       []*domain.TimeBlock
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		appointments, err = uc.appointments.ListBlocking(gctx, filter)
		if err != nil {
			return fmt.Errorf("%w: collectBusyIntervals - list appointments: %v", ErrInternal, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		blocks, err = uc.timeBlocks.ListInRange(gctx, filter)
		if err != nil {
			return fmt.Errorf("%w: collectBusyIntervals - list time blocks: %v", ErrInternal, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	busy := make([]domain.Interval, 0, len(appointments)+len(blocks)+len(rs.Schedule.Breaks))

	for _, a := range appointments {
		if !a.Blocks() {
			continue
		}
		busy = appendValid(busy, a.Interval())
	}
	for _, b := range blocks {
		busy = appendValid(busy, b.Interval())
	}
	for _, br := range rs.Schedule.Breaks {
		busy = appendValid(busy, domain.Interval{
			Start: rs.Day.At(br.Start.Offset()),
			End:   rs.Day.At(br.End.Offset()),
		})
	}

	domain.SortIntervals(busy)
	return busy, nil
}

// appendValid добавляет интервал, пропуская пустые и перевёрнутые
func appendValid(dst []domain.Interval, i domain.Interval) []domain.Interval {
	valid, err := domain.NewInterval(i.Start, i.End)
	if err != nil {
		return dst
	}
	return append(dst, valid)
}
