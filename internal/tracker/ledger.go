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

// Ledger is the CRUD store of completed purchases. It owns the expenses
// slot, computes totals, assigns ids, feeds the price reference archive
// and auto-registers unknown store names.
type Ledger struct {
	mu       sync.Mutex
	expenses []core.Expense

	store    storage.SlotStore
	events   *events
	registry *Registry
	archive  *Archive
	logger   *log.Logger
	now      func() time.Time
}

func newLedger(ctx context.Context, store storage.SlotStore, ev *events, registry *Registry, archive *Archive, logger *log.Logger) *Ledger {
	l := &Ledger{
		store:    store,
		events:   ev,
		registry: registry,
		archive:  archive,
		logger:   logger,
		now:      time.Now,
	}
	l.load(ctx)
	return l
}

func (l *Ledger) load(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var expenses []core.Expense
	storage.LoadJSON(ctx, l.store, storage.SlotExpenses, &expenses, l.logger)
	l.expenses = expenses
}

// Reload replaces the in-memory list with whatever the slot now holds.
func (l *Ledger) Reload(ctx context.Context) {
	l.load(ctx)
}

// Add records a completed purchase. Store, date and a non-empty product
// list are required; individual malformed products are coerced (price 0,
// default category) rather than failing the batch. The stored expense owns
// copies of the products, so later caller mutation cannot reach it.
func (l *Ledger) Add(ctx context.Context, store string, date core.Day, products []core.LineItem) (core.Expense, error) {
	if err := core.ValidateNewExpense(store, date, products); err != nil {
		return core.Expense{}, err
	}

	expense := core.Expense{
		ID:        core.NewID(),
		Store:     strings.TrimSpace(store),
		Date:      date,
		Products:  core.CopyProducts(products),
		CreatedAt: l.now(),
	}
	expense.Total = core.SumProducts(expense.Products)

	l.mu.Lock()
	l.expenses = append(l.expenses, expense)
	snapshot := l.snapshotLocked()
	l.mu.Unlock()

	l.persist(ctx, snapshot)

	// The tracker tolerates stores the registry has never heard of.
	if l.registry.Add(ctx, expense.Store) {
		l.logger.InfoContext(ctx, "Auto-registered unknown store",
			log.FieldStore, expense.Store)
	}
	for _, p := range expense.Products {
		l.archive.RecordObservation(ctx, p.Name, p.Price)
	}

	l.logger.InfoContext(ctx, "Expense recorded",
		log.FieldExpenseID, expense.ID,
		log.FieldStore, expense.Store,
		log.FieldAmount, expense.Total.Cents,
		"products", len(expense.Products),
		log.FieldOperation, log.OpAdd)

	return expense, nil
}

// Remove deletes an expense by id; persists only when something was
// actually removed.
func (l *Ledger) Remove(ctx context.Context, id string) bool {
	l.mu.Lock()
	idx := -1
	for i, e := range l.expenses {
		if e.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		l.mu.Unlock()
		return false
	}
	l.expenses = append(l.expenses[:idx], l.expenses[idx+1:]...)
	snapshot := l.snapshotLocked()
	l.mu.Unlock()

	l.persist(ctx, snapshot)
	l.logger.InfoContext(ctx, "Expense removed",
		log.FieldExpenseID, id, log.FieldOperation, log.OpRemove)
	return true
}

// Clear empties the whole ledger.
func (l *Ledger) Clear(ctx context.Context) {
	l.mu.Lock()
	l.expenses = nil
	l.mu.Unlock()

	l.persist(ctx, []core.Expense{})
	l.logger.InfoContext(ctx, "Ledger cleared", log.FieldOperation, log.OpClear)
}

// FindByID returns a copy of the expense with the given id.
func (l *Ledger) FindByID(id string) (core.Expense, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range l.expenses {
		if e.ID == id {
			return copyExpense(e), true
		}
	}
	return core.Expense{}, false
}

// ReplaceProducts swaps an expense's product list and recomputes its total.
// The price reference archive is deliberately not touched: it records what
// was observed at purchase time, not later corrections.
func (l *Ledger) ReplaceProducts(ctx context.Context, id string, products []core.LineItem) bool {
	l.mu.Lock()
	idx := -1
	for i, e := range l.expenses {
		if e.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		l.mu.Unlock()
		return false
	}
	l.expenses[idx].Products = core.CopyProducts(products)
	l.expenses[idx].Total = core.SumProducts(l.expenses[idx].Products)
	snapshot := l.snapshotLocked()
	l.mu.Unlock()

	l.persist(ctx, snapshot)
	l.logger.InfoContext(ctx, "Expense products replaced",
		log.FieldExpenseID, id, log.FieldOperation, log.OpReplace)
	return true
}

// Expenses returns a snapshot of the full ledger in insertion order.
func (l *Ledger) Expenses() []core.Expense {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshotLocked()
}

// Len reports the number of recorded expenses.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.expenses)
}

// snapshotLocked deep-copies the ledger. Must be called with the lock held.
func (l *Ledger) snapshotLocked() []core.Expense {
	out := make([]core.Expense, len(l.expenses))
	for i, e := range l.expenses {
		out[i] = copyExpense(e)
	}
	return out
}

func copyExpense(e core.Expense) core.Expense {
	products := make([]core.LineItem, len(e.Products))
	copy(products, e.Products)
	for i := range products {
		if products[i].PricePerKg != nil {
			kg := *products[i].PricePerKg
			products[i].PricePerKg = &kg
		}
	}
	e.Products = products
	return e
}

func (l *Ledger) persist(ctx context.Context, snapshot []core.Expense) {
	if storage.SaveJSON(ctx, l.store, storage.SlotExpenses, snapshot, l.logger) {
		l.events.saved(ctx, storage.SlotExpenses)
	}
}
