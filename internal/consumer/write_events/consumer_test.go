package write_events

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	invalidateCache "github.com/m04kA/SMC-AvailabilityService/internal/usecase/invalidate_cache"
	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"
)

type invalidatorMock struct {
	mock.Mock
}

func (m *invalidatorMock) Execute(ctx context.Context, req *invalidateCache.Request) (*invalidateCache.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*invalidateCache.Response)
	return resp, args.Error(1)
}

// fakeReader отдает сообщения по очереди, затем блокируется до отмены контекста
type fakeReader struct {
	mu        sync.Mutex
	messages  []kafka.Message
	committed []int64
	closed    bool
	drained   chan struct{}
}

func newFakeReader(msgs ...kafka.Message) *fakeReader {
	return &fakeReader{messages: msgs, drained: make(chan struct{})}
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	r.mu.Lock()
	if len(r.messages) > 0 {
		msg := r.messages[0]
		r.messages = r.messages[1:]
		r.mu.Unlock()
		return msg, nil
	}
	r.mu.Unlock()

	<-ctx.Done()
	return kafka.Message{}, ctx.Err()
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range msgs {
		r.committed = append(r.committed, m.Offset)
	}
	if len(r.messages) == 0 {
		select {
		case <-r.drained:
		default:
			close(r.drained)
		}
	}
	return nil
}

func (r *fakeReader) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}

func (r *fakeReader) committedOffsets() []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int64(nil), r.committed...)
}

const validEvent = `{
	"eventId": "evt-1",
	"entity": "appointment",
	"operation": "update",
	"before": {"professionalId": "pro-1", "serviceId": "svc-1", "start": "2024-01-02T10:00:00Z"},
	"after":  {"professionalId": "pro-1", "serviceId": "svc-1", "start": "2024-01-03T10:00:00Z"}
}`

func message(offset int64, value string) kafka.Message {
	return kafka.Message{Topic: "availability.write-events", Offset: offset, Value: []byte(value)}
}

func runUntilDrained(t *testing.T, c *Consumer, reader *fakeReader) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()

	select {
	case <-reader.drained:
	case <-time.After(2 * time.Second):
		t.Fatal("messages were not committed in time")
	}
	cancel()
	require.NoError(t, <-done)
}

func TestHandleMessage_ConvertsEvent(t *testing.T) {
	inv := &invalidatorMock{}
	inv.On("Execute", mock.Anything, mock.MatchedBy(func(req *invalidateCache.Request) bool {
		return req.Source == invalidateCache.SourceKafka &&
			req.Before.CacheKey() == domain.CacheKey{ProfessionalID: "pro-1", ServiceID: "svc-1", Date: "2024-01-02"} &&
			req.After.CacheKey() == domain.CacheKey{ProfessionalID: "pro-1", ServiceID: "svc-1", Date: "2024-01-03"}
	})).Return(&invalidateCache.Response{}, nil).Once()

	c := newConsumer(newFakeReader(), inv, logger.NewNop())
	msg := message(1, validEvent)
	msg.Headers = []kafka.Header{{Key: "traceparent", Value: []byte("00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01")}}

	require.NoError(t, c.handleMessage(context.Background(), msg))
	inv.AssertExpectations(t)
}

func TestHandleMessage_Malformed(t *testing.T) {
	c := newConsumer(newFakeReader(), &invalidatorMock{}, logger.NewNop())

	cases := map[string]string{
		"not json":          `{"eventId":`,
		"unknown entity":    `{"eventId":"e","entity":"invoice","operation":"create"}`,
		"unknown operation": `{"eventId":"e","entity":"timeBlock","operation":"upsert"}`,
		"bad start":         `{"eventId":"e","entity":"timeBlock","operation":"create","after":{"start":"tomorrow"}}`,
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			err := c.handleMessage(context.Background(), message(1, payload))
			assert.ErrorIs(t, err, ErrMalformedEvent)
		})
	}
}

func TestHandleMessage_InvalidatorFailure(t *testing.T) {
	inv := &invalidatorMock{}
	inv.On("Execute", mock.Anything, mock.Anything).Return(nil, errors.New("redis down"))

	c := newConsumer(newFakeReader(), inv, logger.NewNop())
	err := c.handleMessage(context.Background(), message(1, validEvent))

	assert.ErrorIs(t, err, ErrInvalidate)
	assert.NotErrorIs(t, err, ErrMalformedEvent)
}

func TestRun_CommitsHandledAndMalformed(t *testing.T) {
	inv := &invalidatorMock{}
	inv.On("Execute", mock.Anything, mock.Anything).Return(&invalidateCache.Response{}, nil)

	reader := newFakeReader(message(10, validEvent), message(11, `garbage`), message(12, validEvent))
	c := newConsumer(reader, inv, logger.NewNop())

	runUntilDrained(t, c, reader)

	assert.Equal(t, []int64{10, 11, 12}, reader.committedOffsets())
	inv.AssertNumberOfCalls(t, "Execute", 2)
	assert.True(t, reader.closed)
}

func TestRun_RetriesBeforeCommit(t *testing.T) {
	inv := &invalidatorMock{}
	inv.On("Execute", mock.Anything, mock.Anything).Return(nil, errors.New("redis down")).Twice()
	inv.On("Execute", mock.Anything, mock.Anything).Return(&invalidateCache.Response{}, nil).Once()

	reader := newFakeReader(message(7, validEvent))
	c := newConsumer(reader, inv, logger.NewNop())
	c.retryDelay = time.Millisecond

	runUntilDrained(t, c, reader)

	assert.Equal(t, []int64{7}, reader.committedOffsets())
	inv.AssertNumberOfCalls(t, "Execute", 3)
}

func TestRun_NoCommitWhenStoppedDuringRetry(t *testing.T) {
	inv := &invalidatorMock{}
	inv.On("Execute", mock.Anything, mock.Anything).Return(nil, errors.New("redis down"))

	reader := newFakeReader(message(3, validEvent))
	c := newConsumer(reader, inv, logger.NewNop())
	c.retryDelay = 5 * time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	require.NoError(t, c.Run(ctx))
	assert.Empty(t, reader.committedOffsets())
}
