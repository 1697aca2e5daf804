package get_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// ProviderDirectory интерфейс каталога специалистов и услуг
type ProviderDirectory interface {
	GetProfessional(ctx context.Context, professionalID string) (*domain.Professional, error)
	GetService(ctx context.Context, serviceID string) (*domain.Service, error)
}

// AppointmentStore интерфейс хранилища записей
type AppointmentStore interface {
	// ListBlocking возвращает неотменённые записи специалиста с началом в окне фильтра
	ListBlocking(ctx context.Context, filter domain.RangeFilter) ([]*domain.Appointment, error)
}

// TimeBlockStore интерфейс хранилища ручных блокировок
type TimeBlockStore interface {
	ListInRange(ctx context.Context, filter domain.RangeFilter) ([]*domain.TimeBlock, error)
}

// CacheStore интерфейс хранилища кэша доступности
type CacheStore interface {
	Get(ctx context.Context, key domain.CacheKey) (*domain.CacheEntry, bool, error)
	Set(ctx context.Context, key domain.CacheKey, entry *domain.CacheEntry) error
}

// Metrics интерфейс метрик кэша и генерации слотов
type Metrics interface {
	ObserveCacheLookup(result string)
	ObserveCacheWriteError(driver string)
	ObserveSlotsGenerated(count int)
}

type nopMetrics struct{}

func (nopMetrics) ObserveCacheLookup(string)     {}
func (nopMetrics) ObserveCacheWriteError(string) {}
func (nopMetrics) ObserveSlotsGenerated(int)     {}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
