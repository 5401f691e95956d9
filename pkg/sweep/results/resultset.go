// Package results holds the discovered artifact directories, the selection
// cursor over them and the deletion operations that keep both consistent.
package results

import (
	"errors"
	"fmt"
)

// ErrIndexOutOfRange is returned when an index does not address an item.
var ErrIndexOutOfRange = errors.New("index out of range")

// ResultSet is an ordered list of artifact directory paths.
// Order is discovery order; removal shifts later items down by one.
type ResultSet struct {
	items []string
}

// NewResultSet creates a set holding a copy of paths.
func NewResultSet(paths []string) *ResultSet {
	items := make([]string, len(paths))
	copy(items, paths)
	return &ResultSet{items: items}
}

// Len returns the number of items.
func (r *ResultSet) Len() int {
	return len(r.items)
}

// Get returns the item at i.
func (r *ResultSet) Get(i int) (string, bool) {
	if i < 0 || i >= len(r.items) {
		return "", false
	}
	return r.items[i], true
}

// Items returns a copy of all items.
func (r *ResultSet) Items() []string {
	out := make([]string, len(r.items))
	copy(out, r.items)
	return out
}

// Remove deletes the item at i. The set is left untouched when i is out of
// range.
func (r *ResultSet) Remove(i int) error {
	if i < 0 || i >= len(r.items) {
		return fmt.Errorf("remove %d of %d: %w", i, len(r.items), ErrIndexOutOfRange)
	}
	r.items = append(r.items[:i], r.items[i+1:]...)
	return nil
}

// Clear removes all items.
func (r *ResultSet) Clear() {
	r.items = r.items[:0]
}

// retain keeps only the items for which keep returns true, preserving order.
func (r *ResultSet) retain(keep func(string) bool) {
	kept := r.items[:0]
	for _, item := range r.items {
		if keep(item) {
			kept = append(kept, item)
		}
	}
	r.items = kept
}
