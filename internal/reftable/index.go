// Package reftable builds the lookup tables the pricing engine reads: the
// procedure-code table and the agreement fee schedules.
package reftable

import "github.com/gyeh/anestrev/internal/normalize"

// Index is an insertion-ordered mapping from a text key to a value.
// Setting an existing key overwrites the value but keeps its original
// position, so a fold over rows resolves duplicates last-write-wins.
type Index[V any] struct {
	keys       []string
	values     map[string]V
	duplicates int
}

// NewIndex returns an empty Index.
func NewIndex[V any]() *Index[V] {
	return &Index[V]{values: make(map[string]V)}
}

// Key is the canonical form of a lookup key. Both the fold and every
// lookup go through it.
func Key(s string) string {
	return normalize.NormalizeKey(s)
}

// Set adds or overwrites key. It reports whether an earlier value was replaced.
func (x *Index[V]) Set(key string, v V) bool {
	_, exists := x.values[key]
	if exists {
		x.duplicates++
	} else {
		x.keys = append(x.keys, key)
	}
	x.values[key] = v
	return exists
}

// Get looks key up after canonicalizing it.
func (x *Index[V]) Get(key string) (V, bool) {
	if x == nil {
		var zero V
		return zero, false
	}
	v, ok := x.values[Key(key)]
	return v, ok
}

// Len returns the number of distinct keys.
func (x *Index[V]) Len() int {
	if x == nil {
		return 0
	}
	return len(x.keys)
}

// Keys returns the keys in first-insertion order.
func (x *Index[V]) Keys() []string {
	if x == nil {
		return nil
	}
	out := make([]string, len(x.keys))
	copy(out, x.keys)
	return out
}

// Duplicates counts the rows that overwrote an earlier row with the same key.
func (x *Index[V]) Duplicates() int {
	if x == nil {
		return 0
	}
	return x.duplicates
}

// Range iterates in insertion order until fn returns false.
func (x *Index[V]) Range(fn func(key string, v V) bool) {
	if x == nil {
		return
	}
	for _, k := range x.keys {
		if !fn(k, x.values[k]) {
			return
		}
	}
}

// Fold reduces n rows into an Index. key returns the raw key of row i;
// blank keys are skipped. val builds the value for row i.
func Fold[V any](n int, key func(i int) string, val func(i int, key string) V) *Index[V] {
	x := NewIndex[V]()
	for i := 0; i < n; i++ {
		k := Key(key(i))
		if k == "" {
			continue
		}
		x.Set(k, val(i, k))
	}
	return x
}
