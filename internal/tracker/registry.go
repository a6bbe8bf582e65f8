package tracker

import (
	"context"
	"strings"
	"sync"

	"spesa/internal/log"
	"spesa/internal/storage"
)

// defaultStores seeds an empty registry with the usual suspects.
var defaultStores = []string{
	"Conad", "Coop", "Esselunga", "Eurospin",
	"Carrefour", "Lidl", "MD", "Pam", "Simply", "Iper",
}

// Registry manages the known store names: trimmed, non-empty, unique
// case-insensitively. It owns the stores slot.
type Registry struct {
	mu     sync.Mutex
	stores []string

	store  storage.SlotStore
	events *events
	logger *log.Logger
}

func newRegistry(ctx context.Context, store storage.SlotStore, ev *events, logger *log.Logger) *Registry {
	r := &Registry{store: store, events: ev, logger: logger}
	r.load(ctx)
	r.EnsureDefaults(ctx)
	return r
}

func (r *Registry) load(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var stores []string
	storage.LoadJSON(ctx, r.store, storage.SlotStores, &stores, r.logger)
	r.stores = normalizeStores(stores)
}

// Reload replaces the in-memory list with whatever the slot now holds.
func (r *Registry) Reload(ctx context.Context) {
	r.load(ctx)
}

// List returns a copy, safe for the caller to mutate.
func (r *Registry) List() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.stores...)
}

// Contains matches case-insensitively.
func (r *Registry) Contains(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.indexOf(name) >= 0
}

// Add registers a store name. Rejects blank input and case-insensitive
// duplicates; reports whether the registry changed.
func (r *Registry) Add(ctx context.Context, name string) bool {
	clean := strings.TrimSpace(name)
	if clean == "" {
		return false
	}

	r.mu.Lock()
	if r.indexOf(clean) >= 0 {
		r.mu.Unlock()
		return false
	}
	r.stores = append(r.stores, clean)
	snapshot := r.snapshotLocked()
	r.mu.Unlock()

	r.persist(ctx, snapshot)
	r.logger.InfoContext(ctx, "Store added",
		log.FieldStore, clean, log.FieldOperation, log.OpAdd)
	return true
}

// Remove drops a store by case-insensitive match.
func (r *Registry) Remove(ctx context.Context, name string) bool {
	r.mu.Lock()
	idx := r.indexOf(name)
	if idx < 0 {
		r.mu.Unlock()
		return false
	}
	removed := r.stores[idx]
	r.stores = append(r.stores[:idx], r.stores[idx+1:]...)
	snapshot := r.snapshotLocked()
	r.mu.Unlock()

	r.persist(ctx, snapshot)
	r.logger.InfoContext(ctx, "Store removed",
		log.FieldStore, removed, log.FieldOperation, log.OpRemove)
	return true
}

// Rename changes a store's name in place. Fails when the old name is
// unknown, the new name is blank, or the new name collides with a
// different existing entry.
func (r *Registry) Rename(ctx context.Context, oldName, newName string) bool {
	clean := strings.TrimSpace(newName)
	if clean == "" {
		return false
	}

	r.mu.Lock()
	idx := r.indexOf(oldName)
	if idx < 0 {
		r.mu.Unlock()
		return false
	}
	for i, s := range r.stores {
		if i != idx && strings.EqualFold(s, clean) {
			r.mu.Unlock()
			return false
		}
	}
	r.stores[idx] = clean
	snapshot := r.snapshotLocked()
	r.mu.Unlock()

	r.persist(ctx, snapshot)
	r.logger.InfoContext(ctx, "Store renamed",
		log.FieldStore, clean, log.FieldOperation, log.OpRename)
	return true
}

// EnsureDefaults seeds the fixed default list, but only when the registry
// is currently empty.
func (r *Registry) EnsureDefaults(ctx context.Context) {
	r.mu.Lock()
	if len(r.stores) > 0 {
		r.mu.Unlock()
		return
	}
	r.stores = append([]string(nil), defaultStores...)
	snapshot := r.snapshotLocked()
	r.mu.Unlock()

	r.persist(ctx, snapshot)
	r.logger.InfoContext(ctx, "Seeded default stores", "count", len(defaultStores))
}

// indexOf must be called with the lock held.
func (r *Registry) indexOf(name string) int {
	clean := strings.TrimSpace(name)
	for i, s := range r.stores {
		if strings.EqualFold(s, clean) {
			return i
		}
	}
	return -1
}

// snapshotLocked normalizes the backing list in place and returns a copy
// for persisting. Must be called with the lock held.
func (r *Registry) snapshotLocked() []string {
	r.stores = normalizeStores(r.stores)
	return append([]string(nil), r.stores...)
}

func (r *Registry) persist(ctx context.Context, snapshot []string) {
	if storage.SaveJSON(ctx, r.store, storage.SlotStores, snapshot, r.logger) {
		r.events.saved(ctx, storage.SlotStores)
	}
}

// normalizeStores trims every entry, drops empties and de-duplicates
// case-insensitively keeping the first occurrence.
func normalizeStores(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		key := strings.ToLower(s)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}
	return out
}
