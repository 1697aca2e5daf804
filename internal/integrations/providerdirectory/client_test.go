package providerdirectory

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", 2*time.Second, logger.NewNop())
}

func TestClient_GetProfessional(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/internal/professionals/pro-1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "pro-1",
			"timeZone": "America/Los_Angeles",
			"slotStep": 20,
			"workSchedule": {
				"lunes": {
					"isActive": true,
					"workHours": {"start": "09:00", "end": "17:00"},
					"breaks": [{"start": "12:00", "end": "13:00"}]
				},
				"domingo": {"isActive": false, "workHours": {"start": "", "end": ""}, "breaks": []}
			}
		}`))
	})

	got, err := client.GetProfessional(context.Background(), "pro-1")
	require.NoError(t, err)

	assert.Equal(t, "pro-1", got.ID)
	assert.Equal(t, "America/Los_Angeles", got.TimezoneName())
	require.NotNil(t, got.SlotStepMinutes)
	assert.Equal(t, 20, *got.SlotStepMinutes)

	monday, ok := got.WorkSchedule.ForWeekday(time.Monday)
	require.True(t, ok)
	assert.Equal(t, 9*60, monday.WorkHours.Start.Minutes())
	assert.Equal(t, 17*60, monday.WorkHours.End.Minutes())
	require.Len(t, monday.Breaks, 1)
	assert.Equal(t, "12:00", monday.Breaks[0].Start.String())

	_, ok = got.WorkSchedule.ForWeekday(time.Sunday)
	assert.False(t, ok)
}

func TestClient_GetProfessional_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.GetProfessional(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrProfessionalNotFound)
}

func TestClient_GetService(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/internal/services/svc-1", r.URL.Path)
		_, _ = w.Write([]byte(`{"id":"svc-1","professionalId":"pro-1","duration":45}`))
	})

	got, err := client.GetService(context.Background(), "svc-1")
	require.NoError(t, err)
	assert.Equal(t, 45, got.DurationMinutes)
	assert.Equal(t, "pro-1", got.ProfessionalID)
	assert.Nil(t, got.SlotStepMinutes)
}

func TestClient_GetService_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.GetService(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestClient_UnexpectedStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream down"))
	})

	_, err := client.GetService(context.Background(), "svc-1")
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestClient_MalformedSchedule(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"pro-1","workSchedule":{"monday":{"isActive":true,"workHours":{"start":"9am","end":"17:00"}}}}`))
	})

	_, err := client.GetProfessional(context.Background(), "pro-1")
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestClient_Unreachable(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", 500*time.Millisecond, logger.NewNop())

	_, err := client.GetProfessional(context.Background(), "pro-1")
	assert.ErrorIs(t, err, ErrInternal)
}
