// Package notify carries slot-change signals from the owning components to
// in-process observers, so view collaborators can re-render without polling.
package notify

import "sync"

// Handler receives the name of the slot that changed.
type Handler func(slot string)

// Bus is a synchronous in-process fan-out. Delivery happens within the
// mutation's own logical turn, in subscription order.
type Bus struct {
	mu   sync.RWMutex
	subs []Handler
}

func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers an observer for every slot change. There is no
// unsubscribe; observers live as long as the process.
func (b *Bus) Subscribe(h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs = append(b.subs, h)
}

// Publish notifies every observer that the named slot changed.
func (b *Bus) Publish(slot string) {
	b.mu.RLock()
	subs := make([]Handler, len(b.subs))
	copy(subs, b.subs)
	b.mu.RUnlock()

	for _, h := range subs {
		h(slot)
	}
}
