package tracker

import (
	"context"
	"encoding/json"
	"testing"

	"spesa/internal/core"
	"spesa/internal/storage"
)

func TestLedgerAddComputesTotal(t *testing.T) {
	ctx := context.Background()
	tr, _, _ := newTestTracker(t)

	expense, err := tr.Ledger.Add(ctx, "Conad", mustDay(t, "2024-03-01"), []core.LineItem{
		{Name: "Mele", Price: core.Money{Cents: 350}},
		{Name: "Pane", Price: core.Money{Cents: 0}},    // malformed price was coerced upstream
		{Name: "Latte", Price: core.Money{Cents: 700}}, // still counted
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if expense.Total.Cents != 1050 {
		t.Fatalf("expected total 1050, got %d", expense.Total.Cents)
	}
	var sum int64
	for _, p := range expense.Products {
		sum += p.Price.Cents
	}
	if expense.Total.Cents != sum {
		t.Fatalf("total %d does not equal product sum %d", expense.Total.Cents, sum)
	}
	if expense.ID == "" || expense.CreatedAt.IsZero() {
		t.Fatalf("expected id and createdAt assigned: %+v", expense)
	}
}

func TestLedgerAddRejections(t *testing.T) {
	ctx := context.Background()
	tr, _, _ := newTestTracker(t)
	date := mustDay(t, "2024-01-01")
	products := []core.LineItem{{Name: "x", Price: core.Money{Cents: 100}}}

	cases := []struct {
		name     string
		store    string
		date     core.Day
		products []core.LineItem
	}{
		{"empty store", "", date, products},
		{"zero date", "Lidl", core.Day{}, products},
		{"no products", "Lidl", date, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tr.Ledger.Add(ctx, tc.store, tc.date, tc.products)
			if err == nil {
				t.Fatal("expected error")
			}
			if !core.IsValidation(err) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
	if tr.Ledger.Len() != 0 {
		t.Fatalf("rejected adds must not grow the ledger, got %d", tr.Ledger.Len())
	}
}

func TestLedgerAddCopiesProducts(t *testing.T) {
	ctx := context.Background()
	tr, _, _ := newTestTracker(t)

	products := []core.LineItem{{Name: "Mele", Price: core.Money{Cents: 100}}}
	expense, err := tr.Ledger.Add(ctx, "Conad", mustDay(t, "2024-03-01"), products)
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	// Mutating the caller's slice must not reach the stored expense.
	products[0].Name = "changed"
	stored, _ := tr.Ledger.FindByID(expense.ID)
	if stored.Products[0].Name != "Mele" {
		t.Fatalf("stored expense aliases caller products: %q", stored.Products[0].Name)
	}
}

func TestLedgerAddAutoRegistersStore(t *testing.T) {
	ctx := context.Background()
	tr, _, _ := newTestTracker(t)

	if tr.Registry.Contains("Alimentari Rossi") {
		t.Fatal("test store should not be seeded")
	}
	if _, err := tr.Ledger.Add(ctx, "Alimentari Rossi", mustDay(t, "2024-03-01"), []core.LineItem{
		{Name: "Uova", Price: core.Money{Cents: 280}},
	}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if !tr.Registry.Contains("Alimentari Rossi") {
		t.Fatal("unknown store should be auto-registered")
	}
}

func TestLedgerAddFeedsArchive(t *testing.T) {
	ctx := context.Background()
	tr, _, _ := newTestTracker(t)

	if _, err := tr.Ledger.Add(ctx, "Conad", mustDay(t, "2024-03-01"), []core.LineItem{
		{Name: " Latte ", Price: core.Money{Cents: 150}},
		{Name: "Gratis", Price: core.Money{Cents: 0}}, // not a valid observation
	}); err != nil {
		t.Fatalf("add: %v", err)
	}

	entry, ok := tr.Archive.Lookup("latte")
	if !ok {
		t.Fatal("expected archive entry for latte")
	}
	if entry.MinPrice.Cents != 150 {
		t.Fatalf("expected minPrice 150, got %d", entry.MinPrice.Cents)
	}
	if _, ok := tr.Archive.Lookup("gratis"); ok {
		t.Fatal("zero-price product must not create a reference entry")
	}
}

func TestLedgerRemove(t *testing.T) {
	ctx := context.Background()
	tr, _, _ := newTestTracker(t)

	expense, err := tr.Ledger.Add(ctx, "Conad", mustDay(t, "2024-03-01"), []core.LineItem{
		{Name: "Mele", Price: core.Money{Cents: 100}},
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	if tr.Ledger.Remove(ctx, "no-such-id") {
		t.Fatal("removing an unknown id should report false")
	}
	if !tr.Ledger.Remove(ctx, expense.ID) {
		t.Fatal("removing an existing id should report true")
	}
	if tr.Ledger.Len() != 0 {
		t.Fatalf("expected empty ledger, got %d", tr.Ledger.Len())
	}
	if tr.Ledger.Remove(ctx, expense.ID) {
		t.Fatal("ids are never reused; second removal should report false")
	}
}

func TestLedgerReplaceProducts(t *testing.T) {
	ctx := context.Background()
	tr, _, _ := newTestTracker(t)

	expense, err := tr.Ledger.Add(ctx, "Conad", mustDay(t, "2024-03-01"), []core.LineItem{
		{Name: "Mele", Price: core.Money{Cents: 100}},
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	archiveBefore := tr.Archive.Len()

	ok := tr.Ledger.ReplaceProducts(ctx, expense.ID, []core.LineItem{
		{Name: "Pere", Price: core.Money{Cents: 300}},
		{Name: "Kiwi", Price: core.Money{Cents: 250}},
	})
	if !ok {
		t.Fatal("replace should succeed")
	}

	updated, _ := tr.Ledger.FindByID(expense.ID)
	if updated.Total.Cents != 550 {
		t.Fatalf("expected recomputed total 550, got %d", updated.Total.Cents)
	}
	if len(updated.Products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(updated.Products))
	}
	if tr.Archive.Len() != archiveBefore {
		t.Fatal("replacing products must not touch the price reference archive")
	}
	if tr.Ledger.ReplaceProducts(ctx, "no-such-id", nil) {
		t.Fatal("replacing an unknown id should report false")
	}
}

func TestLedgerClearPersistsEmptySlot(t *testing.T) {
	ctx := context.Background()
	tr, store, _ := newTestTracker(t)

	if _, err := tr.Ledger.Add(ctx, "Conad", mustDay(t, "2024-03-01"), []core.LineItem{
		{Name: "Mele", Price: core.Money{Cents: 100}},
	}); err != nil {
		t.Fatalf("add: %v", err)
	}
	tr.Ledger.Clear(ctx)

	raw, err := store.Load(ctx, storage.SlotExpenses)
	if err != nil {
		t.Fatalf("load slot: %v", err)
	}
	var expenses []core.Expense
	if err := json.Unmarshal(raw, &expenses); err != nil {
		t.Fatalf("decode slot: %v", err)
	}
	if len(expenses) != 0 {
		t.Fatalf("expected persisted empty ledger, got %d entries", len(expenses))
	}
}
