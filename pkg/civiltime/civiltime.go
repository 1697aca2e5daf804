// Package civiltime переводит гражданское время (дата и время суток в часовом поясе
// провайдера) в абсолютные моменты и обратно.
//
// Все вычисления границ дня и дня недели проходят через этот пакет, чтобы
// остальной код сравнивал только time.Time в UTC.
package civiltime

import (
	"errors"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"
)

// DateFormat формат календарной даты
const DateFormat = "2006-01-02"

var (
	// ErrInvalidZone возвращается для неизвестного имени часового пояса IANA
	ErrInvalidZone = errors.New("civiltime: invalid time zone")

	// ErrInvalidDate возвращается для даты не в формате YYYY-MM-DD
	ErrInvalidDate = errors.New("civiltime: invalid date")
)

// LoadZone возвращает часовой пояс по имени IANA
// Пустое имя означает UTC
func LoadZone(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidZone, name, err)
	}
	return loc, nil
}

// Day календарный день в конкретном часовом поясе
type Day struct {
	Date     string         // YYYY-MM-DD
	Location *time.Location // часовой пояс, в котором интерпретируется дата
	Start    time.Time      // локальная полночь этого дня (UTC)
	End      time.Time      // локальная полночь следующего дня (UTC)
}

// ParseDay интерпретирует дату YYYY-MM-DD в часовом поясе loc
// Границы дня учитывают переходы на летнее время: длина дня может быть 23 или 25 часов
func ParseDay(date string, loc *time.Location) (Day, error) {
	if loc == nil {
		loc = time.UTC
	}

	midnight, err := time.ParseInLocation(DateFormat, date, loc)
	if err != nil {
		return Day{}, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}

	next := time.Date(midnight.Year(), midnight.Month(), midnight.Day()+1, 0, 0, 0, 0, loc)

	return Day{
		Date:     midnight.Format(DateFormat),
		Location: loc,
		Start:    midnight.UTC(),
		End:      next.UTC(),
	}, nil
}

// Weekday день недели даты, как он наблюдается в часовом поясе дня
func (d Day) Weekday() time.Weekday {
	return d.Start.In(d.Location).Weekday()
}

// At возвращает момент, отстоящий от начала дня на offset
// Смещение добавляется к абсолютному моменту полуночи, а не к показаниям часов
func (d Day) At(offset time.Duration) time.Time {
	return d.Start.Add(offset)
}

// Today возвращает текущую дату YYYY-MM-DD в часовом поясе loc
func Today(now time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return now.In(loc).Format(DateFormat)
}

// UTCDate возвращает календарную дату момента t в UTC
func UTCDate(t time.Time) string {
	return t.UTC().Format(DateFormat)
}
