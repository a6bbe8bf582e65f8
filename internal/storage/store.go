// Package storage persists the tracker's state as named JSON slots. Each
// slot is owned for writes by exactly one component; other components only
// ever read snapshots of it.
package storage

import (
	"context"
	"encoding/json"
	"errors"

	"spesa/internal/log"
)

// Slot names of the persisted state.
const (
	SlotExpenses  = "expenses"
	SlotStores    = "stores"
	SlotReference = "productsReference"
)

// ErrNotFound is returned by Load when a slot has never been written.
var ErrNotFound = errors.New("slot not found")

// SlotStore reads and writes raw slot payloads.
type SlotStore interface {
	Load(ctx context.Context, slot string) ([]byte, error)
	Save(ctx context.Context, slot string, data []byte) error
	Close() error
}

// LoadJSON reads a slot and decodes it into v. It fails soft: a missing
// slot leaves v untouched, a read or decode failure is logged and likewise
// leaves v at its empty default. The return value reports whether the slot
// was actually decoded.
func LoadJSON(ctx context.Context, store SlotStore, slot string, v any, logger *log.Logger) bool {
	raw, err := store.Load(ctx, slot)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			logger.WarnContext(ctx, "Slot read failed, falling back to empty default",
				log.FieldSlot, slot, log.FieldError, err)
		}
		return false
	}
	if err := json.Unmarshal(raw, v); err != nil {
		logger.WarnContext(ctx, "Slot holds malformed JSON, falling back to empty default",
			log.FieldSlot, slot, log.FieldError, err)
		return false
	}
	return true
}

// SaveJSON encodes v and writes the slot. Durability is best-effort: a
// failure is logged and reported, never raised, so the in-memory state
// stays usable for the current session.
func SaveJSON(ctx context.Context, store SlotStore, slot string, v any, logger *log.Logger) bool {
	raw, err := json.Marshal(v)
	if err != nil {
		logger.ErrorContext(ctx, "Slot encode failed",
			log.FieldSlot, slot, log.FieldError, err)
		return false
	}
	if err := store.Save(ctx, slot, raw); err != nil {
		logger.ErrorContext(ctx, "Slot write failed, in-memory state not durably saved",
			log.FieldSlot, slot, log.FieldError, err)
		return false
	}
	return true
}
