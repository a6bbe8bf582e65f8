package core

import (
	"testing"
	"time"
)

func TestComputeStatsEmpty(t *testing.T) {
	stats := ComputeStats(nil)
	if stats.Total.Cents != 0 || stats.Count != 0 || stats.AvgPerExpense != 0 {
		t.Fatalf("expected zero totals, got %+v", stats)
	}
	if stats.Max.Amount.Cents != 0 || stats.Max.Store != "" {
		t.Fatalf("expected zero max, got %+v", stats.Max)
	}
	if stats.Min.Amount.Cents != 0 || stats.Min.Store != "" {
		t.Fatalf("expected zero min, got %+v", stats.Min)
	}
	if stats.StoreStats == nil || len(stats.StoreStats) != 0 {
		t.Fatalf("expected empty store stats, got %v", stats.StoreStats)
	}
	if stats.CategoryStats == nil || len(stats.CategoryStats) != 0 {
		t.Fatalf("expected empty category stats, got %v", stats.CategoryStats)
	}
}

func TestComputeStatsEndToEnd(t *testing.T) {
	a := Expense{
		ID: "a", Store: "Conad", Date: NewDay(2024, time.March, 1),
		Products: []LineItem{
			{Category: "Frutta", Name: "Mele", Price: Money{Cents: 350}},
			{Category: "Latticini", Name: "Latte", Price: Money{Cents: 700}},
		},
		Total: Money{Cents: 1050},
	}
	b := Expense{
		ID: "b", Store: "Lidl", Date: NewDay(2024, time.March, 2),
		Products: []LineItem{
			{Category: "Frutta", Name: "Pere", Price: Money{Cents: 425}},
		},
		Total: Money{Cents: 425},
	}

	stats := ComputeStats([]Expense{a, b})
	if stats.Total.Cents != 1475 {
		t.Fatalf("expected total 1475, got %d", stats.Total.Cents)
	}
	if stats.Count != 2 {
		t.Fatalf("expected count 2, got %d", stats.Count)
	}
	if stats.Max.Amount.Cents != 1050 || stats.Max.Store != "Conad" {
		t.Fatalf("wrong max: %+v", stats.Max)
	}
	if stats.Min.Amount.Cents != 425 || stats.Min.Store != "Lidl" {
		t.Fatalf("wrong min: %+v", stats.Min)
	}
	if stats.AvgPerExpense != 7.375 {
		t.Fatalf("expected avg 7.375, got %v", stats.AvgPerExpense)
	}

	if ss := stats.StoreStats["Conad"]; ss.Count != 1 || ss.Total.Cents != 1050 {
		t.Fatalf("wrong Conad stats: %+v", ss)
	}
	if cs := stats.CategoryStats["Frutta"]; cs.Count != 2 || cs.Total.Cents != 775 {
		t.Fatalf("wrong Frutta stats: %+v", cs)
	}
	if cs := stats.CategoryStats["Latticini"]; cs.Count != 1 || cs.Total.Cents != 700 {
		t.Fatalf("wrong Latticini stats: %+v", cs)
	}
}

func TestComputeStatsTieBreak(t *testing.T) {
	first := Expense{ID: "1", Store: "Coop", Total: Money{Cents: 500}}
	second := Expense{ID: "2", Store: "Pam", Total: Money{Cents: 500}}

	stats := ComputeStats([]Expense{first, second})
	if stats.Max.Store != "Coop" {
		t.Fatalf("max tie should report the earlier entry, got %q", stats.Max.Store)
	}
	if stats.Min.Store != "Coop" {
		t.Fatalf("min tie should report the earlier entry, got %q", stats.Min.Store)
	}
}

func TestComputeStatsUncategorizedProducts(t *testing.T) {
	e := Expense{
		ID: "1", Store: "Conad", Total: Money{Cents: 100},
		Products: []LineItem{{Name: "boh", Price: Money{Cents: 100}}},
	}
	stats := ComputeStats([]Expense{e})
	if cs := stats.CategoryStats[DefaultCategory]; cs.Count != 1 || cs.Total.Cents != 100 {
		t.Fatalf("expected uncategorized product under %q, got %+v", DefaultCategory, stats.CategoryStats)
	}
}
