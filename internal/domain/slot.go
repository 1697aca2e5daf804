package domain

import "time"

// FormatSlot строковое представление начала слота (ISO-8601, UTC, миллисекунды)
func FormatSlot(t time.Time) string {
	return t.UTC().Format(SlotFormat)
}

// FormatSlots форматирует последовательность слотов, сохраняя порядок
func FormatSlots(slots []time.Time) []string {
	result := make([]string, 0, len(slots))
	for _, s := range slots {
		result = append(result, FormatSlot(s))
	}
	return result
}
