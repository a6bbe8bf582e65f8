package tracker

import (
	"context"
	"testing"
	"time"

	"spesa/internal/core"
)

func TestArchiveMinPriceOnlyDrops(t *testing.T) {
	tr, _, _ := newTestTracker(t)
	ctx := context.Background()

	times := []time.Time{
		time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 3, 10, 0, 0, 0, time.UTC),
	}
	idx := 0
	tr.Archive.now = func() time.Time {
		ts := times[idx]
		idx++
		return ts
	}

	prices := []int64{350, 200, 280}
	for _, cents := range prices {
		tr.Archive.RecordObservation(ctx, "Latte", core.Money{Cents: cents})
	}

	entry, ok := tr.Archive.Lookup("latte")
	if !ok {
		t.Fatal("expected reference entry for latte")
	}
	if entry.MinPrice.Cents != 200 {
		t.Fatalf("min price = %d, want 200", entry.MinPrice.Cents)
	}
	if !entry.LastSeen.Equal(times[2]) {
		t.Fatalf("last seen = %v, want %v", entry.LastSeen, times[2])
	}
}

func TestArchiveIgnoresInvalidObservations(t *testing.T) {
	tr, _, _ := newTestTracker(t)
	ctx := context.Background()

	tr.Archive.RecordObservation(ctx, "   ", core.Money{Cents: 100})
	tr.Archive.RecordObservation(ctx, "Pane", core.Money{Cents: 0})
	tr.Archive.RecordObservation(ctx, "Pane", core.Money{Cents: -50})

	if n := tr.Archive.Len(); n != 0 {
		t.Fatalf("archive size = %d, want 0", n)
	}
}

func TestArchiveLookupNormalizesName(t *testing.T) {
	tr, _, _ := newTestTracker(t)
	tr.Archive.RecordObservation(context.Background(), " Pasta Barilla ", core.Money{Cents: 129})

	for _, name := range []string{"pasta barilla", "PASTA BARILLA", "  Pasta Barilla"} {
		if _, ok := tr.Archive.Lookup(name); !ok {
			t.Fatalf("lookup %q: entry not found", name)
		}
	}
}

func TestCompareToReference(t *testing.T) {
	tr, _, _ := newTestTracker(t)
	ctx := context.Background()
	tr.Archive.RecordObservation(ctx, "Uova", core.Money{Cents: 200})

	cases := []struct {
		current int64
		want    float64
	}{
		{250, 25},
		{200, 0},
		{150, -25},
	}
	for i, tc := range cases {
		cmp, ok := tr.Archive.CompareToReference("uova", core.Money{Cents: tc.current})
		if !ok {
			t.Fatalf("case %d: expected a comparison", i)
		}
		if cmp.ReferencePrice.Cents != 200 {
			t.Fatalf("case %d: reference = %d, want 200", i, cmp.ReferencePrice.Cents)
		}
		if cmp.PercentDifference != tc.want {
			t.Fatalf("case %d: percent = %v, want %v", i, cmp.PercentDifference, tc.want)
		}
	}

	if _, ok := tr.Archive.CompareToReference("sconosciuto", core.Money{Cents: 100}); ok {
		t.Fatal("expected no comparison for unknown product")
	}
	if _, ok := tr.Archive.CompareToReference("uova", core.Money{}); ok {
		t.Fatal("expected no comparison for non-positive current price")
	}
}
