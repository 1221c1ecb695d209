package cart

import (
	"context"
	"strconv"
	"strings"
)

// EditBuffer holds quantity text the user is still typing. While a code has
// an entry, its raw text is what gets displayed instead of the committed
// quantity, so states like an empty field survive until focus leaves it.
type EditBuffer struct {
	store   *Store
	entries map[string]string
}

// NewEditBuffer creates a buffer committing into store.
func NewEditBuffer(store *Store) *EditBuffer {
	return &EditBuffer{
		store:   store,
		entries: make(map[string]string),
	}
}

// Type records raw as the in-progress value for code. Text that parses as
// an integer is committed right away, negative values as zero.
func (b *EditBuffer) Type(ctx context.Context, code, raw string) {
	if !b.store.Contains(code) {
		return
	}
	b.entries[code] = raw
	if n, ok := parseQuantity(raw); ok {
		b.store.SetQuantity(ctx, code, n)
	}
}

// Blur ends the edit for code. Empty or unparsable text sets the quantity to
// zero. The entry is cleared either way.
func (b *EditBuffer) Blur(ctx context.Context, code string) {
	raw, ok := b.entries[code]
	if !ok {
		return
	}
	delete(b.entries, code)

	if _, valid := parseQuantity(raw); !valid {
		b.store.SetQuantity(ctx, code, 0)
	}
}

// Abandon drops the entry for code without committing anything.
func (b *EditBuffer) Abandon(code string) {
	delete(b.entries, code)
}

// Reset drops every entry.
func (b *EditBuffer) Reset() {
	clear(b.entries)
}

// Editing reports whether code has an entry.
func (b *EditBuffer) Editing(code string) bool {
	_, ok := b.entries[code]
	return ok
}

// Value returns the raw text for code.
func (b *EditBuffer) Value(code string) (string, bool) {
	raw, ok := b.entries[code]
	return raw, ok
}

// Display is the text to show in the quantity field for code.
func (b *EditBuffer) Display(code string, committed int) string {
	if raw, ok := b.entries[code]; ok {
		return raw
	}
	return strconv.Itoa(committed)
}

func parseQuantity(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return max(0, n), true
}
