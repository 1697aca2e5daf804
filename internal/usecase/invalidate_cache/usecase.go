package invalidate_cache

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// UseCase инвалидация кэша доступности по событию записи
type UseCase struct {
	cache   CacheStore
	metrics Metrics
	logger  Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(cache CacheStore, m Metrics, logger Logger) *UseCase {
	if m == nil {
		m = nopMetrics{}
	}
	return &UseCase{cache: cache, metrics: m, logger: logger}
}

// Execute удаляет записи кэша, затронутые изменением
//
// Для каждого снимка с professionalId, serviceId и start удаляется ключ
// (professionalId, serviceId, UTC-дата start). Дата не пересчитывается в зону
// специалиста, поэтому для поздних вечерних записей в западных зонах ключ
// может указывать на следующий день относительно расписания.
// Одинаковые ключи удаляются один раз. Повторная доставка события безопасна.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: request is required", ErrInvalidInput)
	}

	// 1. Собираем ключи из снимков "до" и "после"
	keys := affectedKeys(req.Before, req.After)
	if len(keys) == 0 {
		uc.logger.Info("InvalidateCache: no complete snapshot in event (source=%s), nothing to delete", req.Source)
		return &Response{Deleted: []domain.CacheKey{}}, nil
	}

	// 2. Удаляем записи кэша
	resp := &Response{Deleted: make([]domain.CacheKey, 0, len(keys))}
	for _, key := range keys {
		if err := uc.cache.Delete(ctx, key); err != nil {
			uc.logger.Error("InvalidateCache: failed to delete key=%s: %v", key, err)
			return nil, fmt.Errorf("%w: failed to delete key=%s: %v", ErrInternal, key, err)
		}
		uc.metrics.ObserveInvalidation(req.Source)
		resp.Deleted = append(resp.Deleted, key)
	}

	uc.logger.Info("InvalidateCache: deleted %d key(s) %v (source=%s)", len(resp.Deleted), resp.Deleted, req.Source)
	return resp, nil
}

// affectedKeys возвращает уникальные ключи кэша для полных снимков в порядке "до", "после"
func affectedKeys(snapshots ...*domain.WriteSnapshot) []domain.CacheKey {
	keys := make([]domain.CacheKey, 0, len(snapshots))
	seen := make(map[domain.CacheKey]struct{}, len(snapshots))

	for _, s := range snapshots {
		if !s.IsComplete() {
			continue
		}
		key := s.CacheKey()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}

	return keys
}
