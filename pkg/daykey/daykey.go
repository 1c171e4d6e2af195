// Package daykey maps timestamps to the calendar-day identifiers that scope
// the daily challenge, the leaderboard and streak credit. All day math goes
// through a single Clock so every caller agrees on where midnight is.
package daykey

import (
	"time"
)

// Layout is the wire format of a day identifier.
const Layout = "2006-01-02"

type Clock struct {
	loc *time.Location
}

// New returns a Clock fixed to the given zone. An empty name means UTC.
func New(zone string) (*Clock, error) {
	if zone == "" {
		return &Clock{loc: time.UTC}, nil
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, err
	}
	return &Clock{loc: loc}, nil
}

// Key returns the day identifier for t.
func (c *Clock) Key(t time.Time) string {
	return t.In(c.loc).Format(Layout)
}

// Yesterday returns the day identifier of the day before t.
func (c *Clock) Yesterday(t time.Time) string {
	return c.Key(t.In(c.loc).AddDate(0, 0, -1))
}

// StartOfDay returns midnight of t's day in the clock's zone.
func (c *Clock) StartOfDay(t time.Time) time.Time {
	lt := t.In(c.loc)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, c.loc)
}

// EndOfDay returns the last representable instant of t's day.
func (c *Clock) EndOfDay(t time.Time) time.Time {
	return c.StartOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// Remaining returns how long the current day challenge stays open.
func (c *Clock) Remaining(t time.Time) time.Duration {
	d := c.EndOfDay(t).Sub(t)
	if d < 0 {
		return 0
	}
	return d
}

// MonthKey returns the "2006-01" identifier used for monthly line grants.
func (c *Clock) MonthKey(t time.Time) string {
	return t.In(c.loc).Format("2006-01")
}
