package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"spesa/internal/log"
)

func testLogger() *log.Logger {
	return log.New(log.Config{Component: log.ComponentStorage})
}

func TestFileStoreRoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	ctx := context.Background()

	if _, err := store.Load(ctx, SlotExpenses); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	payload := []byte(`[{"id":"a","total":10.50}]`)
	if err := store.Save(ctx, SlotExpenses, payload); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := store.Load(ctx, SlotExpenses)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(got) != string(payload) {
		t.Fatalf("round trip mismatch: %s", got)
	}

	// overwrite replaces the whole slot
	if err := store.Save(ctx, SlotExpenses, []byte(`[]`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, err = store.Load(ctx, SlotExpenses)
	if err != nil || string(got) != `[]` {
		t.Fatalf("expected [], got %s (err=%v)", got, err)
	}
}

func TestMemoryStoreIsolation(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	data := []byte(`["Conad"]`)
	if err := store.Save(ctx, SlotStores, data); err != nil {
		t.Fatalf("save: %v", err)
	}
	data[2] = 'X' // mutating the caller's buffer must not reach the store

	got, err := store.Load(ctx, SlotStores)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(got) != `["Conad"]` {
		t.Fatalf("store aliases caller buffer: %s", got)
	}
}

func TestLoadJSONFailSoft(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	ctx := context.Background()
	logger := testLogger()

	// missing slot: default untouched, no panic
	var stores []string
	if ok := LoadJSON(ctx, store, SlotStores, &stores, logger); ok {
		t.Fatal("expected false for missing slot")
	}
	if stores != nil {
		t.Fatalf("default should be untouched, got %v", stores)
	}

	// corrupt slot: same fail-soft behavior
	if err := os.WriteFile(filepath.Join(dir, SlotStores+".json"), []byte(`{not json`), 0644); err != nil {
		t.Fatalf("write corrupt slot: %v", err)
	}
	if ok := LoadJSON(ctx, store, SlotStores, &stores, logger); ok {
		t.Fatal("expected false for corrupt slot")
	}

	// valid slot decodes
	if err := os.WriteFile(filepath.Join(dir, SlotStores+".json"), []byte(`["Lidl","Coop"]`), 0644); err != nil {
		t.Fatalf("write slot: %v", err)
	}
	if ok := LoadJSON(ctx, store, SlotStores, &stores, logger); !ok {
		t.Fatal("expected true for valid slot")
	}
	if len(stores) != 2 || stores[0] != "Lidl" {
		t.Fatalf("unexpected decode result: %v", stores)
	}
}

func TestSaveJSON(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	logger := testLogger()

	if ok := SaveJSON(ctx, store, SlotStores, []string{"Conad"}, logger); !ok {
		t.Fatal("expected save to succeed")
	}
	raw, err := store.Load(ctx, SlotStores)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(raw) != `["Conad"]` {
		t.Fatalf("unexpected payload: %s", raw)
	}
}
