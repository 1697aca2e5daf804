package domain

import (
	"errors"
	"sort"
	"time"
)

// ErrInvalidInterval интервал с началом не раньше конца
var ErrInvalidInterval = errors.New("domain: interval start must be before end")

// Interval полуоткрытый интервал времени [Start, End)
// Оба конца - абсолютные моменты времени, сравнение без учёта часового пояса
type Interval struct {
	Start time.Time
	End   time.Time
}

// NewInterval создает интервал, проверяя что Start < End
func NewInterval(start, end time.Time) (Interval, error) {
	if !start.Before(end) {
		return Interval{}, ErrInvalidInterval
	}
	return Interval{Start: start, End: end}, nil
}

// Overlaps true, если интервалы пересекаются
// Интервал, заканчивающийся ровно в момент начала другого, не пересекается с ним
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

// Duration длительность интервала
func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// SortIntervals сортирует интервалы по возрастанию начала (стабильно)
func SortIntervals(intervals []Interval) {
	sort.SliceStable(intervals, func(a, b int) bool {
		return intervals[a].Start.Before(intervals[b].Start)
	})
}
