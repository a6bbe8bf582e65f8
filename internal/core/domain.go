package core

import (
	"errors"
	"strings"
	"time"
)

// DefaultCategory is assigned to line items that arrive without one.
const DefaultCategory = "Altro"

type (
	// LineItem is a single purchased product within one expense.
	LineItem struct {
		ID         string `json:"id"`
		Category   string `json:"category"`
		Name       string `json:"name"`
		Price      Money  `json:"price"`
		PricePerKg *Money `json:"pricePerKg,omitempty"`
		Notes      string `json:"notes,omitempty"`
	}

	// Expense is one completed purchase event. Total is derived: it always
	// equals the sum of the product prices at the time the products were
	// last set.
	Expense struct {
		ID        string     `json:"id"`
		Store     string     `json:"store"`
		Date      Day        `json:"date"`
		Products  []LineItem `json:"products"`
		Total     Money      `json:"total"`
		CreatedAt time.Time  `json:"createdAt"`
	}
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidDate   = errors.New("invalid date")
)

// ValidationError reports a missing or malformed required field on a
// mutation. It names the field so callers can prompt for a correction.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

var (
	ErrEmptyStore  = &ValidationError{Field: "store", Message: "store is required"}
	ErrEmptyDate   = &ValidationError{Field: "date", Message: "date is missing or not a valid calendar day"}
	ErrNoProducts  = &ValidationError{Field: "products", Message: "at least one product is required"}
	ErrEmptyCart   = &ValidationError{Field: "cart", Message: "cart is empty"}
	ErrItemNoPrice = &ValidationError{Field: "price", Message: "price must be a positive amount"}
)

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// NormalizeLineItem maps the loosely shaped product tuples accepted at the
// outer boundary onto the one canonical LineItem shape: trimmed name and
// notes, category defaulted, negative price clamped to zero, id assigned
// when absent. A malformed item is coerced, never rejected.
func NormalizeLineItem(li LineItem) LineItem {
	li.Name = strings.TrimSpace(li.Name)
	li.Notes = strings.TrimSpace(li.Notes)
	li.Category = strings.TrimSpace(li.Category)
	if li.Category == "" {
		li.Category = DefaultCategory
	}
	if li.Price.Cents < 0 {
		li.Price = Money{}
	}
	if li.PricePerKg != nil && li.PricePerKg.Cents <= 0 {
		li.PricePerKg = nil
	}
	if li.ID == "" {
		li.ID = NewID()
	}
	return li
}

// CopyProducts normalizes and deep-copies a product list so that a stored
// expense never aliases caller-owned items.
func CopyProducts(products []LineItem) []LineItem {
	out := make([]LineItem, 0, len(products))
	for _, p := range products {
		p = NormalizeLineItem(p)
		if p.PricePerKg != nil {
			kg := *p.PricePerKg
			p.PricePerKg = &kg
		}
		out = append(out, p)
	}
	return out
}

// SumProducts computes the total of a product list. Items whose price was
// coerced to zero simply contribute nothing.
func SumProducts(products []LineItem) Money {
	var cents int64
	for _, p := range products {
		cents += p.Price.Cents
	}
	return Money{Cents: cents}
}

// ValidateNewExpense checks the batch-level requirements for recording an
// expense. Item-level problems are not checked here: they are coerced by
// NormalizeLineItem instead.
func ValidateNewExpense(store string, date Day, products []LineItem) error {
	if strings.TrimSpace(store) == "" {
		return ErrEmptyStore
	}
	if date.IsZero() {
		return ErrEmptyDate
	}
	if len(products) == 0 {
		return ErrNoProducts
	}
	return nil
}
