package get_availability

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

func utc(hour, minute int) time.Time {
	return time.Date(2024, 1, 1, hour, minute, 0, 0, time.UTC)
}

func clock(slots []time.Time) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.UTC().Format(domain.TimeFormat))
	}
	return out
}

func baseSweep() slotSweep {
	return slotSweep{
		WorkStart: utc(9, 0),
		WorkEnd:   utc(12, 0),
		Step:      15 * time.Minute,
		Duration:  30 * time.Minute,
	}
}

func TestGenerateSlots_NoBusyIntervals(t *testing.T) {
	got := generateSlots(baseSweep())

	assert.Equal(t, []string{
		"09:00", "09:15", "09:30", "09:45", "10:00", "10:15",
		"10:30", "10:45", "11:00", "11:15", "11:30",
	}, clock(got))
}

func TestGenerateSlots_AppointmentBlocksOverlappingSlots(t *testing.T) {
	s := baseSweep()
	s.Busy = []domain.Interval{{Start: utc(10, 0), End: utc(10, 30)}}

	got := generateSlots(s)

	assert.Equal(t, []string{
		"09:00", "09:15", "09:30", "10:30", "10:45", "11:00", "11:15", "11:30",
	}, clock(got))
}

func TestGenerateSlots_SameDayOnlyStrictlyAfterNow(t *testing.T) {
	s := baseSweep()
	s.IsToday = true
	s.Now = utc(10, 5)

	got := generateSlots(s)

	assert.Equal(t, []string{"10:15", "10:30", "10:45", "11:00", "11:15", "11:30"}, clock(got))
}

func TestGenerateSlots_SameDaySlotAtNowIsExcluded(t *testing.T) {
	s := baseSweep()
	s.IsToday = true
	s.Now = utc(10, 0)

	got := generateSlots(s)

	assert.Equal(t, "10:15", clock(got)[0])
}

func TestGenerateSlots_FutureDayIgnoresNow(t *testing.T) {
	s := baseSweep()
	s.Now = utc(11, 0)

	assert.Len(t, generateSlots(s), 11)
}

func TestGenerateSlots_NoPartialSlotAtWorkEnd(t *testing.T) {
	s := baseSweep()
	s.WorkEnd = utc(9, 59)

	assert.Equal(t, []string{"09:00", "09:15"}, clock(generateSlots(s)))
}

func TestGenerateSlots_WindowShorterThanDuration(t *testing.T) {
	s := baseSweep()
	s.WorkEnd = utc(9, 20)

	assert.Empty(t, generateSlots(s))
}

func TestGenerateSlots_LongIntervalSpanningSeveralSlots(t *testing.T) {
	s := baseSweep()
	s.Busy = []domain.Interval{
		{Start: utc(9, 0), End: utc(11, 0)},
		{Start: utc(9, 10), End: utc(9, 20)},
	}

	assert.Equal(t, []string{"11:00", "11:15", "11:30"}, clock(generateSlots(s)))
}

func TestGenerateSlots_AdjacentIntervalsDoNotOverlap(t *testing.T) {
	s := baseSweep()
	s.Busy = []domain.Interval{
		{Start: utc(8, 0), End: utc(9, 0)},
		{Start: utc(12, 0), End: utc(13, 0)},
	}

	assert.Len(t, generateSlots(s), 11)
}

// Результат прохода с отстающим индексом совпадает с полным перебором
func TestGenerateSlots_MatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for iteration := 0; iteration < 200; iteration++ {
		s := slotSweep{
			WorkStart: utc(8, 0),
			WorkEnd:   utc(18, 0),
			Step:      time.Duration(5+rng.Intn(4)*5) * time.Minute,
			Duration:  time.Duration(10+rng.Intn(6)*10) * time.Minute,
			Now:       utc(8+rng.Intn(10), rng.Intn(60)),
			IsToday:   rng.Intn(2) == 0,
		}

		n := rng.Intn(8)
		for i := 0; i < n; i++ {
			start := utc(7+rng.Intn(12), rng.Intn(60))
			end := start.Add(time.Duration(1+rng.Intn(180)) * time.Minute)
			s.Busy = append(s.Busy, domain.Interval{Start: start, End: end})
		}
		domain.SortIntervals(s.Busy)

		assert.Equal(t, bruteForceSlots(s), generateSlots(s), "iteration %d", iteration)
	}
}

func bruteForceSlots(s slotSweep) []time.Time {
	slots := make([]time.Time, 0)
	for cursor := s.WorkStart; !cursor.Add(s.Duration).After(s.WorkEnd); cursor = cursor.Add(s.Step) {
		slot := domain.Interval{Start: cursor, End: cursor.Add(s.Duration)}
		free := true
		for _, b := range s.Busy {
			if slot.Overlaps(b) {
				free = false
				break
			}
		}
		if free && (!s.IsToday || cursor.After(s.Now)) {
			slots = append(slots, cursor)
		}
	}
	return slots
}
