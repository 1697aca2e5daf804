package availability

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

const defaultPrefix = "availability:"

// Cache хранилище кэша доступности в Redis
// Значение - JSON записи, TTL ключа равен окну хранения (retention),
// поэтому устаревшие записи удаляет сам Redis
type Cache struct {
	rdb       redis.UniversalClient
	prefix    string
	retention time.Duration
}

// NewCache создает хранилище кэша поверх клиента Redis
func NewCache(rdb redis.UniversalClient, prefix string, retention time.Duration) *Cache {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = defaultPrefix
	}
	if retention <= 0 {
		retention = domain.CacheRetention
	}
	return &Cache{rdb: rdb, prefix: prefix, retention: retention}
}

func (c *Cache) redisKey(key domain.CacheKey) string {
	return c.prefix + key.String()
}

// Get возвращает запись кэша и признак её наличия
func (c *Cache) Get(ctx context.Context, key domain.CacheKey) (*domain.CacheEntry, bool, error) {
	raw, err := c.rdb.Get(ctx, c.redisKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: Get - key=%s: %v", ErrRead, key, err)
	}

	var entry domain.CacheEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, false, fmt.Errorf("%w: Get - key=%s: %v", ErrDecode, key, err)
	}
	if entry.Slots == nil {
		entry.Slots = []time.Time{}
	}

	return &entry, true, nil
}

// Set сохраняет запись, перезаписывая существующую (last write wins)
func (c *Cache) Set(ctx context.Context, key domain.CacheKey, entry *domain.CacheEntry) error {
	raw, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("%w: Set - marshal key=%s: %v", ErrWrite, key, err)
	}

	if err := c.rdb.Set(ctx, c.redisKey(key), raw, c.retention).Err(); err != nil {
		return fmt.Errorf("%w: Set - key=%s: %v", ErrWrite, key, err)
	}
	return nil
}

// Delete удаляет ключ; отсутствие ключа не является ошибкой
func (c *Cache) Delete(ctx context.Context, key domain.CacheKey) error {
	if err := c.rdb.Del(ctx, c.redisKey(key)).Err(); err != nil {
		return fmt.Errorf("%w: Delete - key=%s: %v", ErrDelete, key, err)
	}
	return nil
}

// Ping проверяет доступность Redis (readiness)
func (c *Cache) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}
