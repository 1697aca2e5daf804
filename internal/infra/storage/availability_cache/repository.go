package availability_cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/psqlbuilder"
)

const tableName = "availability_cache"

// Repository хранилище кэша доступности в PostgreSQL
// Ключ - строка "<professionalId>_<serviceId>_<date>", слоты хранятся в JSONB
type Repository struct {
	db        DBExecutor
	retention time.Duration
	now       func() time.Time
}

// NewRepository создает хранилище кэша
// Записи старше retention считаются отсутствующими до их удаления внешней очисткой
func NewRepository(db DBExecutor, retention time.Duration) *Repository {
	if retention <= 0 {
		retention = domain.CacheRetention
	}
	return &Repository{db: db, retention: retention, now: time.Now}
}

// Get возвращает запись кэша и признак её наличия
func (r *Repository) Get(ctx context.Context, key domain.CacheKey) (*domain.CacheEntry, bool, error) {
	query, args, err := psqlbuilder.Select("slots", "created_at").
		From(tableName).
		Where(squirrel.Eq{"cache_key": key.String()}).
		ToSql()
	if err != nil {
		return nil, false, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var (
		raw   []byte
		entry domain.CacheEntry
	)
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&raw, &entry.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: Get - scan entry: %v", ErrScanRow, err)
	}

	if err := json.Unmarshal(raw, &entry.Slots); err != nil {
		return nil, false, fmt.Errorf("%w: Get - decode slots: %v", ErrScanRow, err)
	}

	if entry.IsExpired(r.now(), r.retention) {
		return nil, false, nil
	}

	return &entry, true, nil
}

// Set сохраняет запись, перезаписывая существующую с тем же ключом
func (r *Repository) Set(ctx context.Context, key domain.CacheKey, entry *domain.CacheEntry) error {
	slots := entry.Slots
	if slots == nil {
		slots = []time.Time{}
	}
	raw, err := json.Marshal(slots)
	if err != nil {
		return fmt.Errorf("%w: Set - marshal slots: %v", ErrEncode, err)
	}

	query, args, err := psqlbuilder.Insert(tableName).
		Columns("cache_key", "professional_id", "service_id", "date", "slots", "created_at").
		Values(key.String(), key.ProfessionalID, key.ServiceID, key.Date, raw, entry.CreatedAt).
		Suffix("ON CONFLICT (cache_key) DO UPDATE SET slots = EXCLUDED.slots, created_at = EXCLUDED.created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Set - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Set - execute upsert: %v", ErrExecQuery, err)
	}
	return nil
}

// Delete удаляет запись по ключу
// Удаление отсутствующего ключа не является ошибкой
func (r *Repository) Delete(ctx context.Context, key domain.CacheKey) error {
	query, args, err := psqlbuilder.Delete(tableName).
		Where(squirrel.Eq{"cache_key": key.String()}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}
	return nil
}
