package invalidate_cache

import (
	"context"

	invalidateCache "github.com/m04kA/SMC-AvailabilityService/internal/usecase/invalidate_cache"
)

type InvalidateCacheUseCase interface {
	Execute(ctx context.Context, req *invalidateCache.Request) (*invalidateCache.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
