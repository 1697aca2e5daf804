package write_events

import (
	"context"

	"github.com/segmentio/kafka-go"

	invalidateCache "github.com/m04kA/SMC-AvailabilityService/internal/usecase/invalidate_cache"
)

// Invalidator сбрасывает кэш доступности по снимкам "до" и "после"
type Invalidator interface {
	Execute(ctx context.Context, req *invalidateCache.Request) (*invalidateCache.Response, error)
}

// MessageReader часть kafka.Reader, используемая консьюмером
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
