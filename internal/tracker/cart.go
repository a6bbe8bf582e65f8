package tracker

import (
	"context"
	"errors"
	"sync"

	"spesa/internal/core"
	"spesa/internal/log"
)

// TopicCart is published on the in-process bus whenever the cart changes.
// The cart is transient and never persisted, so this is not a storage slot.
const TopicCart = "cart"

// CartItem is a line item in the working buffer, annotated with a price
// comparison against the reference archive when one exists.
type CartItem struct {
	core.LineItem
	PriceComparison *Comparison `json:"priceComparison,omitempty"`
}

// Cart is the transient buffer of line items being assembled before they
// are committed to the ledger as one expense. It starts empty per session
// and is cleared on a successful checkout or an explicit clear.
type Cart struct {
	mu    sync.Mutex
	items []CartItem

	pendingStore string
	pendingDate  core.Day

	ledger  *Ledger
	archive *Archive
	events  *events
	logger  *log.Logger
}

func newCart(ledger *Ledger, archive *Archive, ev *events, logger *log.Logger) *Cart {
	return &Cart{ledger: ledger, archive: archive, events: ev, logger: logger}
}

// AddItem normalizes a product and appends it to the cart. Unlike the
// ledger's lenient batch handling, the cart is strict: an item must carry
// a positive price to be accepted at all.
func (c *Cart) AddItem(ctx context.Context, item core.LineItem) (CartItem, error) {
	if !item.Price.IsPositive() {
		return CartItem{}, core.ErrItemNoPrice
	}
	entry := CartItem{LineItem: core.NormalizeLineItem(item)}
	if cmp, ok := c.archive.CompareToReference(entry.Name, entry.Price); ok {
		entry.PriceComparison = &cmp
	}

	c.mu.Lock()
	c.items = append(c.items, entry)
	c.mu.Unlock()

	c.events.bus.Publish(TopicCart)
	c.logger.Debug("Product added to cart",
		log.FieldProduct, entry.Name, log.FieldAmount, entry.Price.Cents)
	return entry, nil
}

// ErrItemNotFound reports that no cart entry carries the requested id.
var ErrItemNotFound = errors.New("cart item not found")

// UpdateItem replaces the fields of an uncommitted cart entry, keeping its
// id. The replacement must carry a positive price, like any cart entry;
// a missing price and a missing entry are distinct failures.
func (c *Cart) UpdateItem(id string, item core.LineItem) (CartItem, error) {
	if !item.Price.IsPositive() {
		return CartItem{}, core.ErrItemNoPrice
	}
	item.ID = id
	entry := CartItem{LineItem: core.NormalizeLineItem(item)}
	if cmp, ok := c.archive.CompareToReference(entry.Name, entry.Price); ok {
		entry.PriceComparison = &cmp
	}

	c.mu.Lock()
	found := false
	for i := range c.items {
		if c.items[i].ID == id {
			c.items[i] = entry
			found = true
			break
		}
	}
	c.mu.Unlock()

	if !found {
		return CartItem{}, ErrItemNotFound
	}
	c.events.bus.Publish(TopicCart)
	return entry, nil
}

// RemoveItem drops a cart entry by id.
func (c *Cart) RemoveItem(id string) bool {
	c.mu.Lock()
	idx := -1
	for i := range c.items {
		if c.items[i].ID == id {
			idx = i
			break
		}
	}
	if idx >= 0 {
		c.items = append(c.items[:idx], c.items[idx+1:]...)
	}
	c.mu.Unlock()

	if idx < 0 {
		return false
	}
	c.events.bus.Publish(TopicCart)
	return true
}

// Clear empties the cart and forgets the pending store/date selection.
func (c *Cart) Clear() {
	c.mu.Lock()
	c.items = nil
	c.pendingStore = ""
	c.pendingDate = core.Day{}
	c.mu.Unlock()

	c.events.bus.Publish(TopicCart)
}

// SetPending remembers the store/date selection to use at checkout.
func (c *Cart) SetPending(store string, date core.Day) {
	c.mu.Lock()
	c.pendingStore = store
	c.pendingDate = date
	c.mu.Unlock()
}

// Items returns a copy of the cart's contents.
func (c *Cart) Items() []CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]CartItem, len(c.items))
	copy(out, c.items)
	return out
}

// Total sums the prices currently in the cart.
func (c *Cart) Total() core.Money {
	c.mu.Lock()
	defer c.mu.Unlock()
	var cents int64
	for _, it := range c.items {
		cents += it.Price.Cents
	}
	return core.Money{Cents: cents}
}

// Checkout commits the cart's contents to the ledger as one expense and
// removes the committed items on success. Empty store or zero date fall
// back to the pending selection. A failed checkout leaves the cart
// untouched so the user can correct the input and retry.
func (c *Cart) Checkout(ctx context.Context, store string, date core.Day) (core.Expense, error) {
	c.mu.Lock()
	if store == "" {
		store = c.pendingStore
	}
	if date.IsZero() {
		date = c.pendingDate
	}
	products := make([]core.LineItem, len(c.items))
	committed := make(map[string]struct{}, len(c.items))
	for i, it := range c.items {
		products[i] = it.LineItem
		committed[it.ID] = struct{}{}
	}
	c.mu.Unlock()

	if len(products) == 0 {
		return core.Expense{}, core.ErrEmptyCart
	}

	expense, err := c.ledger.Add(ctx, store, date, products)
	if err != nil {
		return core.Expense{}, err
	}

	// Drop only the snapshot that went into the expense. Items added while
	// the commit was in flight stay in the cart.
	c.mu.Lock()
	remaining := c.items[:0]
	for _, it := range c.items {
		if _, ok := committed[it.ID]; !ok {
			remaining = append(remaining, it)
		}
	}
	c.items = remaining
	c.pendingStore = ""
	c.pendingDate = core.Day{}
	c.mu.Unlock()
	c.events.bus.Publish(TopicCart)
	c.logger.InfoContext(ctx, "Cart checked out",
		log.FieldExpenseID, expense.ID,
		log.FieldStore, expense.Store,
		log.FieldAmount, expense.Total.Cents,
		log.FieldOperation, log.OpCheckout)
	return expense, nil
}
