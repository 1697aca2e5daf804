package domain

import "time"

// Значения по умолчанию
const (
	DefaultSlotStepMinutes = 15
	CacheRetention         = 24 * time.Hour
)

// Форматы времени
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
	SlotFormat = "2006-01-02T15:04:05.000Z07:00"
)

// Weekdays ключи недельного расписания в порядке с понедельника
var Weekdays = []string{
	"lunes",
	"martes",
	"miércoles",
	"jueves",
	"viernes",
	"sábado",
	"domingo",
}
