package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		minutes int
		wantErr bool
	}{
		{name: "morning", input: "09:00", minutes: 540},
		{name: "with minutes", input: "13:45", minutes: 825},
		{name: "midnight", input: "00:00", minutes: 0},
		{name: "end of day", input: "24:00", minutes: 1440},
		{name: "single digit hour", input: "9:30", minutes: 570},
		{name: "past end of day", input: "24:30", wantErr: true},
		{name: "bad minutes", input: "10:60", wantErr: true},
		{name: "one digit minutes", input: "10:5", wantErr: true},
		{name: "garbage", input: "ten", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.minutes, got.Minutes())
		})
	}
}

func TestTimeString_Compare(t *testing.T) {
	nine := MustTimeString("09:00")
	noon := MustTimeString("12:00")

	assert.True(t, nine.IsBefore(noon))
	assert.False(t, noon.IsBefore(nine))
	assert.True(t, noon.IsAfter(nine))
	assert.False(t, nine.IsAfter(nine))
	assert.Equal(t, "09:00", nine.String())
}

func TestTimeString_JSON(t *testing.T) {
	var payload struct {
		Start TimeString `json:"start"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"start":"08:15"}`), &payload))
	assert.Equal(t, 495, payload.Start.Minutes())

	out, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"start":"08:15"}`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`{"start":"8h"}`), &payload))
}
