package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hour, minute int) time.Time {
	return time.Date(2024, 1, 1, hour, minute, 0, 0, time.UTC)
}

func TestNewInterval(t *testing.T) {
	i, err := NewInterval(at(9, 0), at(9, 30))
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, i.Duration())

	_, err = NewInterval(at(9, 30), at(9, 30))
	assert.ErrorIs(t, err, ErrInvalidInterval)

	_, err = NewInterval(at(10, 0), at(9, 0))
	assert.ErrorIs(t, err, ErrInvalidInterval)
}

func TestInterval_Overlaps(t *testing.T) {
	base := Interval{Start: at(10, 0), End: at(10, 30)}

	tests := []struct {
		name  string
		other Interval
		want  bool
	}{
		{"ends exactly at start", Interval{Start: at(9, 30), End: at(10, 0)}, false},
		{"starts exactly at end", Interval{Start: at(10, 30), End: at(11, 0)}, false},
		{"overlaps start", Interval{Start: at(9, 45), End: at(10, 15)}, true},
		{"overlaps end", Interval{Start: at(10, 15), End: at(10, 45)}, true},
		{"contained", Interval{Start: at(10, 5), End: at(10, 10)}, true},
		{"contains", Interval{Start: at(9, 0), End: at(11, 0)}, true},
		{"identical", base, true},
		{"far before", Interval{Start: at(8, 0), End: at(8, 30)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Overlaps(tt.other))
			assert.Equal(t, tt.want, tt.other.Overlaps(base))
		})
	}
}

func TestInterval_OverlapsAcrossZones(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Moscow")
	require.NoError(t, err)

	// 13:00 MSK = 10:00 UTC
	utc := Interval{Start: at(10, 0), End: at(10, 30)}
	local := Interval{
		Start: time.Date(2024, 1, 1, 13, 15, 0, 0, loc),
		End:   time.Date(2024, 1, 1, 13, 45, 0, 0, loc),
	}
	assert.True(t, utc.Overlaps(local))
}

func TestSortIntervals(t *testing.T) {
	intervals := []Interval{
		{Start: at(12, 0), End: at(13, 0)},
		{Start: at(9, 0), End: at(9, 30)},
		{Start: at(10, 0), End: at(10, 15)},
	}
	SortIntervals(intervals)

	assert.Equal(t, at(9, 0), intervals[0].Start)
	assert.Equal(t, at(10, 0), intervals[1].Start)
	assert.Equal(t, at(12, 0), intervals[2].Start)
}
