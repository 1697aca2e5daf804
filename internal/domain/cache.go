package domain

import (
	"fmt"
	"time"
)

// CacheKey ключ кэша доступности: специалист, услуга и календарная дата
type CacheKey struct {
	ProfessionalID string
	ServiceID      string
	Date           string // YYYY-MM-DD
}

// String строковое представление ключа "<professionalId>_<serviceId>_<date>"
func (k CacheKey) String() string {
	return fmt.Sprintf("%s_%s_%s", k.ProfessionalID, k.ServiceID, k.Date)
}

// CacheEntry сохранённый результат расчёта доступности
type CacheEntry struct {
	Slots     []time.Time `json:"slots"`
	CreatedAt time.Time   `json:"createdAt"`
}

// IsExpired true, если запись старше retention на момент now
func (e *CacheEntry) IsExpired(now time.Time, retention time.Duration) bool {
	return now.Sub(e.CreatedAt) > retention
}

// WriteSnapshot состояние записи или блокировки до или после изменения
// Поля могут отсутствовать: такой снимок не приводит к инвалидации
type WriteSnapshot struct {
	ProfessionalID string     `json:"professionalId"`
	ServiceID      string     `json:"serviceId"`
	Start          *time.Time `json:"start"`
}

// IsComplete true, если снимок содержит все поля для построения ключа
func (s *WriteSnapshot) IsComplete() bool {
	return s != nil && s.ProfessionalID != "" && s.ServiceID != "" && s.Start != nil
}

// CacheKey ключ, который затрагивает снимок
// Дата берётся как календарная дата Start в UTC, без пересчёта в зону специалиста
func (s *WriteSnapshot) CacheKey() CacheKey {
	return CacheKey{
		ProfessionalID: s.ProfessionalID,
		ServiceID:      s.ServiceID,
		Date:           s.Start.UTC().Format(DateFormat),
	}
}
