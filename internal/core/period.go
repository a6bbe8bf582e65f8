package core

import (
	"strings"
	"time"
)

// Period names a calendar range used to filter expenses for reporting.
type Period string

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

// ParsePeriod normalizes a period keyword. The second return value is false
// for anything unrecognized; callers treat that as "no filter", not as an
// error.
func ParsePeriod(s string) (Period, bool) {
	switch Period(strings.ToLower(strings.TrimSpace(s))) {
	case PeriodDay:
		return PeriodDay, true
	case PeriodWeek:
		return PeriodWeek, true
	case PeriodMonth:
		return PeriodMonth, true
	case PeriodYear:
		return PeriodYear, true
	}
	return "", false
}

// Range computes the inclusive calendar range anchored at ref.
// Weeks are ISO weeks: Monday through Sunday, so a Sunday reference is the
// last day of its week, not the first of the next.
func (p Period) Range(ref Day) (start, end Day, ok bool) {
	if ref.IsZero() {
		ref = Today()
	}
	switch p {
	case PeriodDay:
		return ref, ref, true
	case PeriodWeek:
		wd := int(ref.Weekday())
		if wd == 0 {
			wd = 7
		}
		monday := DayOf(ref.AddDate(0, 0, 1-wd))
		sunday := DayOf(monday.AddDate(0, 0, 6))
		return monday, sunday, true
	case PeriodMonth:
		first := NewDay(ref.Year(), ref.Month(), 1)
		last := DayOf(first.AddDate(0, 1, -1))
		return first, last, true
	case PeriodYear:
		return NewDay(ref.Year(), time.January, 1), NewDay(ref.Year(), time.December, 31), true
	}
	return Day{}, Day{}, false
}

// FilterByPeriod returns the expenses whose date falls within the period's
// range around ref (today when ref is zero). An unrecognized or empty
// period returns a copy of the full input: the caller treats "no filter"
// as valid. Expenses without a parseable date never match a filtered range.
func FilterByPeriod(expenses []Expense, period Period, ref Day) []Expense {
	start, end, ok := period.Range(ref)
	if !ok {
		return append([]Expense(nil), expenses...)
	}
	out := make([]Expense, 0, len(expenses))
	for _, e := range expenses {
		if e.Date.In(start, end) {
			out = append(out, e)
		}
	}
	return out
}
