package core

import (
	"bytes"
	"time"
)

const dayLayout = "2006-01-02"

// Day is a calendar date with no time-of-day component. All period filtering
// compares Days, so an expense entered with a full timestamp and one entered
// with a bare date key land on the same calendar day.
type Day struct {
	time.Time
}

// NewDay builds a Day from year, month and day of month.
func NewDay(year int, month time.Month, day int) Day {
	return Day{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current local calendar day.
func Today() Day {
	now := time.Now()
	return NewDay(now.Year(), now.Month(), now.Day())
}

// DayOf truncates an arbitrary timestamp to its calendar day.
func DayOf(t time.Time) Day {
	return NewDay(t.Year(), t.Month(), t.Day())
}

// ParseDay accepts either a bare YYYY-MM-DD key or a full RFC3339 timestamp
// and normalizes both to a calendar day. Entry points historically produced
// both shapes; this is the single place where they converge.
func ParseDay(s string) (Day, error) {
	if t, err := time.Parse(dayLayout, s); err == nil {
		return DayOf(t), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return DayOf(t), nil
	}
	return Day{}, ErrInvalidDate
}

// Key returns the canonical YYYY-MM-DD form.
func (d Day) Key() string {
	return d.Format(dayLayout)
}

// Before reports whether d falls on an earlier calendar day than other.
func (d Day) Before(other Day) bool {
	return d.Time.Before(other.Time)
}

// After reports whether d falls on a later calendar day than other.
func (d Day) After(other Day) bool {
	return d.Time.After(other.Time)
}

// In reports whether d falls within [start, end], inclusive on both ends.
// A zero Day never matches any range.
func (d Day) In(start, end Day) bool {
	if d.IsZero() {
		return false
	}
	return !d.Before(start) && !d.After(end)
}

// MarshalJSON encodes the day as its YYYY-MM-DD key. A zero Day encodes as
// an empty string.
func (d Day) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(`"` + d.Key() + `"`), nil
}

// UnmarshalJSON decodes a day key or RFC3339 timestamp. Unparseable values
// decode to the zero Day rather than failing: such expenses stay in the
// ledger but are excluded from period-filtered results.
func (d *Day) UnmarshalJSON(data []byte) error {
	d.Time = time.Time{}
	data = bytes.TrimSpace(data)
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return nil
	}
	s := string(data[1 : len(data)-1])
	if s == "" {
		return nil
	}
	if parsed, err := ParseDay(s); err == nil {
		d.Time = parsed.Time
	}
	return nil
}
