package get_availability

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// slotSweep параметры генерации слотов
type slotSweep struct {
	WorkStart time.Time
	WorkEnd   time.Time
	Step      time.Duration
	Duration  time.Duration
	Busy      []domain.Interval // отсортированы по возрастанию Start
	Now       time.Time
	IsToday   bool
}

// generateSlots проходит рабочее окно с шагом Step и возвращает начала слотов
// длительностью Duration, не пересекающихся с занятыми интервалами
//
// Слот, выходящий за WorkEnd хотя бы на мгновение, не выдаётся.
// Для сегодняшней даты выдаются только слоты, начинающиеся строго после Now.
//
// Индекс lag отстаёт от курсора: интервалы с End <= cursor больше не могут
// пересечься ни с одним следующим слотом и пропускаются навсегда, а просмотр
// вперёд останавливается на первом интервале с Start >= конца слота.
// Суммарная работа по интервалам за весь проход линейна.
func generateSlots(s slotSweep) []time.Time {
	slots := make([]time.Time, 0)
	if s.Step <= 0 || s.Duration <= 0 {
		return slots
	}

	lag := 0
	for cursor := s.WorkStart; !cursor.Add(s.Duration).After(s.WorkEnd); cursor = cursor.Add(s.Step) {
		slot := domain.Interval{Start: cursor, End: cursor.Add(s.Duration)}

		for lag < len(s.Busy) && !s.Busy[lag].End.After(cursor) {
			lag++
		}

		if overlapsAny(slot, s.Busy[lag:]) {
			continue
		}

		if s.IsToday && !cursor.After(s.Now) {
			continue
		}

		slots = append(slots, cursor)
	}

	return slots
}

// overlapsAny проверяет пересечение слота с отсортированными интервалами
func overlapsAny(slot domain.Interval, busy []domain.Interval) bool {
	for _, b := range busy {
		if !b.Start.Before(slot.End) {
			return false
		}
		if slot.Overlaps(b) {
			return true
		}
	}
	return false
}
