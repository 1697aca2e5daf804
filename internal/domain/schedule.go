package domain

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// WeeklySchedule недельный шаблон расписания специалиста
// Ключ - название дня недели по-испански в нижнем регистре: "lunes" ... "domingo"
// Английские ключи ("monday" ... "sunday") принимаются как запасной вариант
type WeeklySchedule map[string]DaySchedule

// DaySchedule расписание одного дня недели
type DaySchedule struct {
	IsActive  bool      `json:"isActive"`
	WorkHours WorkHours `json:"workHours"`
	Breaks    []Break   `json:"breaks"`
}

// WorkHours рабочее окно дня в локальном времени специалиста
type WorkHours struct {
	Start types.TimeString `json:"start"`
	End   types.TimeString `json:"end"`
}

// Break перерыв внутри рабочего дня в локальном времени специалиста
type Break struct {
	Start types.TimeString `json:"start"`
	End   types.TimeString `json:"end"`
}

// weekdayKeys ключи расписания в порядке time.Weekday (с воскресенья)
var weekdayKeys = [...]string{"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado"}

// WeekdayKey ключ расписания для дня недели
func WeekdayKey(d time.Weekday) string {
	if d < time.Sunday || d > time.Saturday {
		return ""
	}
	return weekdayKeys[d]
}

// ForWeekday возвращает расписание дня и признак того, что день рабочий
// Отсутствующий или неактивный день считается выходным.
// Испанский ключ имеет приоритет над английским
func (w WeeklySchedule) ForWeekday(d time.Weekday) (DaySchedule, bool) {
	day, ok := w[WeekdayKey(d)]
	if !ok {
		day, ok = w[strings.ToLower(d.String())]
	}
	if !ok || !day.IsActive {
		return DaySchedule{}, false
	}
	return day, true
}
