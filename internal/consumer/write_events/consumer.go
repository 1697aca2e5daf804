package write_events

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/m04kA/SMC-AvailabilityService/pkg/tracing"
)

const (
	defaultRetryDelay = time.Second
	maxRetryDelay     = 30 * time.Second
)

// Config параметры подключения к Kafka
type Config struct {
	Brokers []string
	GroupID string
	Topic   string
}

// Consumer читает события записи и инвалидирует кэш доступности
//
// Offset коммитится только после успешной инвалидации, поэтому доставка
// at-least-once. Нераспознаваемые сообщения логируются и коммитятся,
// чтобы не блокировать партицию.
type Consumer struct {
	reader      MessageReader
	invalidator Invalidator
	logger      Logger
	tracer      trace.Tracer
	retryDelay  time.Duration
}

// NewConsumer создает консьюмер с kafka.Reader в составе consumer group
func NewConsumer(cfg Config, invalidator Invalidator, logger Logger) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Brokers,
		GroupID:  cfg.GroupID,
		Topic:    cfg.Topic,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
	return newConsumer(reader, invalidator, logger)
}

func newConsumer(reader MessageReader, invalidator Invalidator, logger Logger) *Consumer {
	return &Consumer{
		reader:      reader,
		invalidator: invalidator,
		logger:      logger,
		tracer:      tracing.Tracer("write_events"),
		retryDelay:  defaultRetryDelay,
	}
}

// Run обрабатывает сообщения до отмены контекста
func (c *Consumer) Run(ctx context.Context) error {
	defer func() {
		if err := c.reader.Close(); err != nil {
			c.logger.Warn("WriteEvents: failed to close reader: %v", err)
		}
	}()

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			c.logger.Error("WriteEvents: fetch failed: %v", err)
			if !c.sleep(ctx, c.retryDelay) {
				return nil
			}
			continue
		}

		if !c.process(ctx, msg) {
			return nil
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			c.logger.Error("WriteEvents: commit failed (partition=%d offset=%d): %v", msg.Partition, msg.Offset, err)
		}
	}
}

// process повторяет обработку сообщения до успеха
// Возвращает false, если контекст отменен до успешной обработки
func (c *Consumer) process(ctx context.Context, msg kafka.Message) bool {
	delay := c.retryDelay
	for {
		err := c.handleMessage(ctx, msg)
		switch {
		case err == nil:
			return true
		case errors.Is(err, ErrMalformedEvent):
			c.logger.Warn("WriteEvents: skipping malformed message (partition=%d offset=%d): %v", msg.Partition, msg.Offset, err)
			return true
		}

		c.logger.Error("WriteEvents: handling failed (partition=%d offset=%d), retry in %s: %v", msg.Partition, msg.Offset, delay, err)
		if !c.sleep(ctx, delay) {
			return false
		}
		delay *= 2
		if delay > maxRetryDelay {
			delay = maxRetryDelay
		}
	}
}

// handleMessage разбирает событие и вызывает инвалидацию в span с родительским контекстом из заголовков
func (c *Consumer) handleMessage(ctx context.Context, msg kafka.Message) error {
	ctx = tracing.ContextWithHeaders(ctx, headersMap(msg.Headers))
	ctx, span := c.tracer.Start(ctx, "write_events.consume",
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.destination", msg.Topic),
			attribute.Int("messaging.kafka.partition", msg.Partition),
			attribute.Int64("messaging.kafka.offset", msg.Offset),
		),
	)
	defer span.End()

	event, err := decodeEvent(msg.Value)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "malformed event")
		return err
	}
	span.SetAttributes(
		attribute.String("event.id", event.EventID),
		attribute.String("event.entity", event.Entity),
		attribute.String("event.operation", event.Operation),
	)

	resp, err := c.invalidator.Execute(ctx, event.ToUseCaseRequest())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalidate failed")
		return fmt.Errorf("%w: event=%s: %v", ErrInvalidate, event.EventID, err)
	}

	c.logger.Info("WriteEvents: event=%s %s %s invalidated %d key(s)",
		event.EventID, event.Entity, event.Operation, len(resp.Deleted))
	return nil
}

func (c *Consumer) sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func headersMap(headers []kafka.Header) map[string]string {
	if len(headers) == 0 {
		return nil
	}
	m := make(map[string]string, len(headers))
	for _, h := range headers {
		m[h.Key] = string(h.Value)
	}
	return m
}
