// Package tracker wires the stateful components of the expense tracker:
// the ledger of completed purchases, the store registry, the price
// reference archive and the transient cart. One Tracker instance is
// constructed at process start and handed to whatever surface needs it.
package tracker

import (
	"context"

	"github.com/google/uuid"

	"spesa/internal/log"
	"spesa/internal/notify"
	"spesa/internal/storage"
)

// events routes change signals. Saves fan out both in-process and, when a
// broadcaster is wired, to other instances sharing the storage. Reloads
// triggered by an external change fan out in-process only: re-broadcasting
// them would bounce the same notification between instances forever.
type events struct {
	bus       *notify.Bus
	broadcast func(ctx context.Context, slot string)
}

func (e *events) saved(ctx context.Context, slot string) {
	e.bus.Publish(slot)
	if e.broadcast != nil {
		e.broadcast(ctx, slot)
	}
}

func (e *events) reloaded(slot string) {
	e.bus.Publish(slot)
}

// Tracker bundles the components sharing one slot store.
type Tracker struct {
	Ledger   *Ledger
	Registry *Registry
	Archive  *Archive
	Cart     *Cart

	origin string
	events *events
	logger *log.Logger
}

// New loads all persisted state and seeds the store registry defaults when
// the registry slot is empty.
func New(ctx context.Context, store storage.SlotStore, bus *notify.Bus, logger *log.Logger) *Tracker {
	ev := &events{bus: bus}

	registry := newRegistry(ctx, store, ev, logger.WithComponent(log.ComponentRegistry))
	archive := newArchive(ctx, store, ev, logger.WithComponent(log.ComponentArchive))
	ledger := newLedger(ctx, store, ev, registry, archive, logger.WithComponent(log.ComponentLedger))
	cart := newCart(ledger, archive, ev, logger.WithComponent(log.ComponentCart))

	return &Tracker{
		Ledger:   ledger,
		Registry: registry,
		Archive:  archive,
		Cart:     cart,
		origin:   uuid.NewString(),
		events:   ev,
		logger:   logger,
	}
}

// Origin identifies this instance in cross-instance notifications.
func (t *Tracker) Origin() string {
	return t.origin
}

// SetBroadcast wires the cross-instance notifier invoked after every local
// save. Call before the instance starts mutating state.
func (t *Tracker) SetBroadcast(fn func(ctx context.Context, slot string)) {
	t.events.broadcast = fn
}

// HandleSlotChanged reacts to a slot-change notification from another
// instance: reload the in-memory copy of that slot and notify local
// observers. The model is last-write-wins; nothing is merged.
func (t *Tracker) HandleSlotChanged(ctx context.Context, slot, origin string) error {
	if origin == t.origin {
		return nil
	}

	switch slot {
	case storage.SlotExpenses:
		t.Ledger.Reload(ctx)
	case storage.SlotStores:
		t.Registry.Reload(ctx)
	case storage.SlotReference:
		t.Archive.Reload(ctx)
	default:
		t.logger.WarnContext(ctx, "Ignoring change for unknown slot",
			log.FieldSlot, slot, log.FieldOrigin, origin)
		return nil
	}

	t.logger.InfoContext(ctx, "Reloaded slot after external change",
		log.FieldSlot, slot, log.FieldOrigin, origin)
	t.events.reloaded(slot)
	return nil
}
