package daykey

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClock_Key(t *testing.T) {
	clock, err := New("")
	assert.NoError(t, err)

	ts := time.Date(2026, 3, 10, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, "2026-03-10", clock.Key(ts))
	assert.Equal(t, "2026-03-09", clock.Yesterday(ts))
	assert.Equal(t, "2026-03", clock.MonthKey(ts))
}

func TestClock_ZoneShiftsTheDayBoundary(t *testing.T) {
	clock, err := New("America/New_York")
	assert.NoError(t, err)

	// 03:00 UTC is still the previous evening in New York.
	ts := time.Date(2026, 3, 10, 3, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026-03-09", clock.Key(ts))
}

func TestClock_BadZone(t *testing.T) {
	_, err := New("Not/AZone")
	assert.Error(t, err)
}

func TestClock_DayBounds(t *testing.T) {
	clock, err := New("")
	assert.NoError(t, err)

	ts := time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)
	start := clock.StartOfDay(ts)
	end := clock.EndOfDay(ts)

	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, "2026-03-10", clock.Key(end))
	assert.Equal(t, "2026-03-11", clock.Key(end.Add(time.Nanosecond)))
}

func TestClock_Remaining(t *testing.T) {
	clock, err := New("")
	assert.NoError(t, err)

	ts := time.Date(2026, 3, 10, 23, 0, 0, 0, time.UTC)
	remaining := clock.Remaining(ts)
	assert.Equal(t, time.Hour-time.Nanosecond, remaining)

	// Closed at the last representable instant of the day.
	assert.Equal(t, time.Duration(0), clock.Remaining(clock.EndOfDay(ts)))
}
