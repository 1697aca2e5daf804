package civiltime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadZone(t *testing.T) {
	loc, err := LoadZone("")
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)

	loc, err = LoadZone("America/Los_Angeles")
	require.NoError(t, err)
	assert.Equal(t, "America/Los_Angeles", loc.String())

	_, err = LoadZone("Mars/Olympus_Mons")
	assert.ErrorIs(t, err, ErrInvalidZone)
}

func TestParseDay_UTC(t *testing.T) {
	day, err := ParseDay("2024-01-01", time.UTC)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), day.Start)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), day.End)
	assert.Equal(t, time.Monday, day.Weekday())
	assert.Equal(t, time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC), day.At(9*time.Hour+30*time.Minute))
}

func TestParseDay_ProviderZone(t *testing.T) {
	loc, err := LoadZone("America/Los_Angeles")
	require.NoError(t, err)

	day, err := ParseDay("2024-01-01", loc)
	require.NoError(t, err)

	// PST = UTC-8
	assert.Equal(t, time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC), day.Start)
	assert.Equal(t, time.Date(2024, 1, 2, 8, 0, 0, 0, time.UTC), day.End)
	assert.Equal(t, time.Monday, day.Weekday())
}

func TestParseDay_DaylightSavingTransition(t *testing.T) {
	loc, err := LoadZone("America/Los_Angeles")
	require.NoError(t, err)

	// 10 марта 2024 переход на летнее время: день длится 23 часа
	day, err := ParseDay("2024-03-10", loc)
	require.NoError(t, err)
	assert.Equal(t, 23*time.Hour, day.End.Sub(day.Start))
	assert.Equal(t, time.Sunday, day.Weekday())
}

func TestParseDay_InvalidDate(t *testing.T) {
	_, err := ParseDay("2024-13-01", time.UTC)
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = ParseDay("01/02/2024", time.UTC)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestToday(t *testing.T) {
	loc, err := LoadZone("Asia/Tokyo")
	require.NoError(t, err)

	// 20:00 UTC 1 января = 05:00 2 января в Токио
	now := time.Date(2024, 1, 1, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-01-02", Today(now, loc))
	assert.Equal(t, "2024-01-01", Today(now, nil))
}

func TestUTCDate(t *testing.T) {
	loc, err := LoadZone("America/New_York")
	require.NoError(t, err)

	// 21:00 в Нью-Йорке 1 января = 02:00 UTC 2 января
	local := time.Date(2024, 1, 1, 21, 0, 0, 0, loc)
	assert.Equal(t, "2024-01-02", UTCDate(local))
}
