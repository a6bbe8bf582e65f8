package core

import (
	"testing"
	"time"
)

func expenseOn(key string) Expense {
	d, _ := ParseDay(key)
	return Expense{ID: NewID(), Store: "Conad", Date: d, Total: Money{Cents: 100}}
}

func TestParsePeriod(t *testing.T) {
	cases := []struct {
		in  string
		out Period
		ok  bool
	}{
		{"day", PeriodDay, true},
		{"WEEK", PeriodWeek, true},
		{" Month ", PeriodMonth, true},
		{"year", PeriodYear, true},
		{"decade", "", false},
		{"", "", false},
	}
	for i, tc := range cases {
		got, ok := ParsePeriod(tc.in)
		if ok != tc.ok || got != tc.out {
			t.Fatalf("case %d: got (%q,%v), want (%q,%v)", i, got, ok, tc.out, tc.ok)
		}
	}
}

func TestPeriodRange(t *testing.T) {
	ref := NewDay(2024, time.February, 1) // a Thursday
	cases := []struct {
		p          Period
		start, end string
	}{
		{PeriodDay, "2024-02-01", "2024-02-01"},
		{PeriodWeek, "2024-01-29", "2024-02-04"}, // Monday through Sunday
		{PeriodMonth, "2024-02-01", "2024-02-29"},
		{PeriodYear, "2024-01-01", "2024-12-31"},
	}
	for i, tc := range cases {
		start, end, ok := tc.p.Range(ref)
		if !ok {
			t.Fatalf("case %d: expected ok", i)
		}
		if start.Key() != tc.start || end.Key() != tc.end {
			t.Fatalf("case %d: got [%s, %s], want [%s, %s]", i, start.Key(), end.Key(), tc.start, tc.end)
		}
	}
}

func TestPeriodRangeSundayReference(t *testing.T) {
	// A Sunday is the last day of its ISO week, not the first of the next.
	start, end, ok := PeriodWeek.Range(NewDay(2024, time.February, 4))
	if !ok {
		t.Fatal("expected ok")
	}
	if start.Key() != "2024-01-29" || end.Key() != "2024-02-04" {
		t.Fatalf("got [%s, %s], want [2024-01-29, 2024-02-04]", start.Key(), end.Key())
	}
}

func TestFilterByPeriodWeekBoundaries(t *testing.T) {
	expenses := []Expense{
		expenseOn("2024-01-29"), // Monday of the reference week
		expenseOn("2024-02-04"), // Sunday of the reference week
		expenseOn("2024-02-05"), // Monday of the next week
	}
	got := FilterByPeriod(expenses, PeriodWeek, NewDay(2024, time.February, 1))
	if len(got) != 2 {
		t.Fatalf("expected 2 expenses, got %d", len(got))
	}
	if got[0].Date.Key() != "2024-01-29" || got[1].Date.Key() != "2024-02-04" {
		t.Fatalf("wrong expenses matched: %s, %s", got[0].Date.Key(), got[1].Date.Key())
	}
}

func TestFilterByPeriodUnknownReturnsAll(t *testing.T) {
	expenses := []Expense{expenseOn("2024-01-01"), expenseOn("2030-12-31")}
	got := FilterByPeriod(expenses, "", Day{})
	if len(got) != len(expenses) {
		t.Fatalf("expected full sequence, got %d of %d", len(got), len(expenses))
	}
	// The result is a copy the caller may mutate freely.
	got[0].Store = "changed"
	if expenses[0].Store != "Conad" {
		t.Fatal("filter result aliases the input slice")
	}
}

func TestFilterByPeriodExcludesUndated(t *testing.T) {
	expenses := []Expense{
		expenseOn("2024-02-01"),
		{ID: NewID(), Store: "Lidl", Total: Money{Cents: 100}}, // zero date
	}
	got := FilterByPeriod(expenses, PeriodYear, NewDay(2024, time.June, 15))
	if len(got) != 1 || got[0].Store != "Conad" {
		t.Fatalf("undated expense should be excluded, got %d results", len(got))
	}
}
