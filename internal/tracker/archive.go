package tracker

import (
	"context"
	"strings"
	"sync"
	"time"

	"spesa/internal/core"
	"spesa/internal/log"
	"spesa/internal/storage"
)

// ReferenceEntry is the historical record for one normalized product name.
// MinPrice only ever goes down; LastSeen moves on every observation.
type ReferenceEntry struct {
	MinPrice core.Money `json:"minPrice"`
	LastSeen time.Time  `json:"lastSeen"`
}

// Comparison relates a current price to the historical minimum. A positive
// PercentDifference means the product is currently more expensive than the
// cheapest it has ever been seen at.
type Comparison struct {
	ReferencePrice    core.Money `json:"referencePrice"`
	PercentDifference float64    `json:"percentDifference"`
}

// Archive tracks the minimum observed price per product name. It owns the
// productsReference slot. Entries are never deleted by normal operation.
type Archive struct {
	mu      sync.Mutex
	entries map[string]ReferenceEntry

	store  storage.SlotStore
	events *events
	logger *log.Logger
	now    func() time.Time
}

func newArchive(ctx context.Context, store storage.SlotStore, ev *events, logger *log.Logger) *Archive {
	a := &Archive{
		store:  store,
		events: ev,
		logger: logger,
		now:    time.Now,
	}
	a.load(ctx)
	return a
}

func (a *Archive) load(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()
	entries := make(map[string]ReferenceEntry)
	storage.LoadJSON(ctx, a.store, storage.SlotReference, &entries, a.logger)
	a.entries = entries
}

// Reload replaces the in-memory map with whatever the slot now holds.
func (a *Archive) Reload(ctx context.Context) {
	a.load(ctx)
}

// referenceKey normalizes a product name for archive lookup.
func referenceKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// RecordObservation notes that a product was bought at a price. Blank names
// and non-positive prices are silently ignored. The minimum price is only
// lowered, never raised; the last-seen timestamp refreshes on every valid
// observation either way.
func (a *Archive) RecordObservation(ctx context.Context, productName string, price core.Money) {
	key := referenceKey(productName)
	if key == "" || !price.IsPositive() {
		return
	}

	a.mu.Lock()
	entry, exists := a.entries[key]
	if !exists || price.Cents < entry.MinPrice.Cents {
		entry.MinPrice = price
	}
	entry.LastSeen = a.now()
	a.entries[key] = entry
	snapshot := a.snapshotLocked()
	a.mu.Unlock()

	a.persist(ctx, snapshot)
	a.logger.Debug("Recorded price observation",
		log.FieldProduct, key,
		log.FieldAmount, price.Cents,
		log.FieldOperation, log.OpObserve)
}

// Lookup returns the reference entry for a product name, if any.
func (a *Archive) Lookup(productName string) (ReferenceEntry, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	entry, ok := a.entries[referenceKey(productName)]
	return entry, ok
}

// CompareToReference relates a current price to the recorded minimum.
// Absent when there is no entry or either price is non-positive.
func (a *Archive) CompareToReference(productName string, current core.Money) (Comparison, bool) {
	entry, ok := a.Lookup(productName)
	if !ok || !entry.MinPrice.IsPositive() || !current.IsPositive() {
		return Comparison{}, false
	}
	diff := float64(current.Cents-entry.MinPrice.Cents) / float64(entry.MinPrice.Cents) * 100
	return Comparison{ReferencePrice: entry.MinPrice, PercentDifference: diff}, true
}

// Len reports the number of tracked products.
func (a *Archive) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.entries)
}

// snapshotLocked must be called with the lock held.
func (a *Archive) snapshotLocked() map[string]ReferenceEntry {
	out := make(map[string]ReferenceEntry, len(a.entries))
	for k, v := range a.entries {
		out[k] = v
	}
	return out
}

func (a *Archive) persist(ctx context.Context, snapshot map[string]ReferenceEntry) {
	if storage.SaveJSON(ctx, a.store, storage.SlotReference, snapshot, a.logger) {
		a.events.saved(ctx, storage.SlotReference)
	}
}
