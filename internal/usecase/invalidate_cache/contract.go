package invalidate_cache

import (
	"context"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// CacheStore интерфейс удаления записей кэша доступности
type CacheStore interface {
	// Delete удаляет запись; отсутствие записи не является ошибкой
	Delete(ctx context.Context, key domain.CacheKey) error
}

// Metrics интерфейс метрик инвалидации
type Metrics interface {
	ObserveInvalidation(source string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type nopMetrics struct{}

func (nopMetrics) ObserveInvalidation(string) {}
