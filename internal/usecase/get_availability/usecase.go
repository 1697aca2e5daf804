package get_availability

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/metrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/tracing"
)

const tracerName = "usecase/get_availability"

// UseCase use case для расчёта доступных слотов на дату
type UseCase struct {
	directory    ProviderDirectory
	appointments AppointmentStore
	timeBlocks   TimeBlockStore
	cache        CacheStore
	cacheDriver  string
	metrics      Metrics
	timeProvider TimeProvider
	tracer       trace.Tracer
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	directory ProviderDirectory,
	appointments AppointmentStore,
	timeBlocks TimeBlockStore,
	cache CacheStore,
	cacheDriver string,
	m Metrics,
	logger Logger,
) *UseCase {
	if m == nil {
		m = nopMetrics{}
	}
	return &UseCase{
		directory:    directory,
		appointments: appointments,
		timeBlocks:   timeBlocks,
		cache:        cache,
		cacheDriver:  cacheDriver,
		metrics:      m,
		timeProvider: &RealTimeProvider{},
		tracer:       tracing.Tracer(tracerName),
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник текущего времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute возвращает доступные слоты специалиста для услуги на дату
//
// Для даты, не равной сегодняшней в зоне специалиста, результат читается из кэша
// и записывается в него после расчёта. Сегодняшняя дата всегда рассчитывается заново.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (resp *Response, err error) {
	ctx, span := uc.tracer.Start(ctx, "GetAvailability")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	span.SetAttributes(
		attribute.String("availability.professional_id", req.ProfessionalID),
		attribute.String("availability.service_id", req.ServiceID),
		attribute.String("availability.date", req.Date),
	)

	uc.logger.Info("GetAvailability: professional=%s, service=%s, date=%s",
		req.ProfessionalID, req.ServiceID, req.Date)

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Расписание специалиста на дату
	rs, err := uc.resolveSchedule(ctx, req, now)
	if err != nil {
		uc.logResolveError(req, err)
		return nil, err
	}

	resp = &Response{
		Date:           req.Date,
		ProfessionalID: req.ProfessionalID,
		ServiceID:      req.ServiceID,
		Slots:          []time.Time{},
	}

	// 4. Выходной день: пустой результат без дальнейшей работы
	if rs.Closed {
		uc.logger.Info("GetAvailability: professional=%s is not working on %s", req.ProfessionalID, req.Date)
		return resp, nil
	}

	key := domain.CacheKey{ProfessionalID: req.ProfessionalID, ServiceID: req.ServiceID, Date: req.Date}

	// 5. Кэш используется только для дат, отличных от сегодняшней
	if rs.IsToday {
		uc.metrics.ObserveCacheLookup(metrics.CacheBypass)
	} else if entry := uc.lookupCache(ctx, key); entry != nil {
		span.SetAttributes(attribute.Bool("availability.cache_hit", true))
		resp.Slots = entry.Slots
		resp.FromCache = true
		return resp, nil
	}

	// 6. Занятые интервалы дня
	busy, err := uc.collectBusyIntervals(ctx, req.ProfessionalID, rs)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to collect busy intervals: %v", err)
		return nil, err
	}

	// 7. Генерируем слоты
	resp.Slots = generateSlots(slotSweep{
		WorkStart: rs.Day.At(rs.Schedule.WorkHours.Start.Offset()),
		WorkEnd:   rs.Day.At(rs.Schedule.WorkHours.End.Offset()),
		Step:      rs.SlotStep,
		Duration:  rs.Duration,
		Busy:      busy,
		Now:       now,
		IsToday:   rs.IsToday,
	})
	uc.metrics.ObserveSlotsGenerated(len(resp.Slots))

	uc.logger.Info("GetAvailability: generated %d slots for professional=%s, service=%s, date=%s (busy=%d, today=%t)",
		len(resp.Slots), req.ProfessionalID, req.ServiceID, req.Date, len(busy), rs.IsToday)

	// 8. Сохраняем результат в кэш; ошибка записи не влияет на ответ
	if !rs.IsToday {
		uc.storeCache(ctx, key, resp.Slots, now)
	}

	return resp, nil
}

// lookupCache возвращает запись кэша или nil при промахе
// Ошибка чтения логируется и считается промахом
func (uc *UseCase) lookupCache(ctx context.Context, key domain.CacheKey) *domain.CacheEntry {
	entry, found, err := uc.cache.Get(ctx, key)
	switch {
	case err != nil:
		uc.metrics.ObserveCacheLookup(metrics.CacheError)
		uc.logger.Warn("GetAvailability: cache read failed for key=%s, recomputing: %v", key, err)
		return nil
	case !found:
		uc.metrics.ObserveCacheLookup(metrics.CacheMiss)
		return nil
	default:
		uc.metrics.ObserveCacheLookup(metrics.CacheHit)
		uc.logger.Info("GetAvailability: cache hit for key=%s (%d slots)", key, len(entry.Slots))
		return entry
	}
}

func (uc *UseCase) storeCache(ctx context.Context, key domain.CacheKey, slots []time.Time, now time.Time) {
	entry := &domain.CacheEntry{Slots: slots, CreatedAt: now.UTC()}
	if err := uc.cache.Set(ctx, key, entry); err != nil {
		uc.metrics.ObserveCacheWriteError(uc.cacheDriver)
		uc.logger.Error("GetAvailability: failed to write cache for key=%s: %v", key, err)
	}
}

func (uc *UseCase) logResolveError(req *Request, err error) {
	switch {
	case errors.Is(err, ErrProfessionalNotFound):
		uc.logger.Warn("GetAvailability: professional id=%s not found", req.ProfessionalID)
	case errors.Is(err, ErrServiceNotFound):
		uc.logger.Warn("GetAvailability: service id=%s not found", req.ServiceID)
	case errors.Is(err, ErrInvalidInput):
		uc.logger.Warn("GetAvailability: %v", err)
	default:
		uc.logger.Error("GetAvailability: failed to resolve schedule: %v", err)
	}
}
