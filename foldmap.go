package collections

import (
	"sort"
	"strings"
)

// FoldMap is a case-insensitive string-keyed mapping node. Keys are folded
// to lower case on every operation, so "Name", "NAME" and "name" address the
// same entry. FoldMap satisfies Mapper and is therefore traversable by path
// operations like any plain mapping.
type FoldMap struct {
	store map[string]any
}

// NewFoldMap creates an empty case-insensitive mapping.
func NewFoldMap() *FoldMap {
	return &FoldMap{store: map[string]any{}}
}

// NewFoldMapFrom creates a case-insensitive mapping seeded from src. When
// src keys collide after folding, the surviving value is unspecified.
func NewFoldMapFrom(src map[string]any) *FoldMap {
	fm := NewFoldMap()
	for k, v := range src {
		fm.Set(k, v)
	}
	return fm
}

func foldKey(key string) string {
	return strings.ToLower(key)
}

// Has reports whether key is present, ignoring case.
func (f *FoldMap) Has(key string) bool {
	_, ok := f.store[foldKey(key)]
	return ok
}

// Get returns the value stored under key, ignoring case.
func (f *FoldMap) Get(key string) (any, bool) {
	v, ok := f.store[foldKey(key)]
	return v, ok
}

// Set stores value under the folded form of key.
func (f *FoldMap) Set(key string, value any) {
	f.store[foldKey(key)] = value
}

// Delete removes key, ignoring case, and reports whether it was present.
func (f *FoldMap) Delete(key string) bool {
	folded := foldKey(key)
	_, ok := f.store[folded]
	if ok {
		delete(f.store, folded)
	}
	return ok
}

// Keys returns the folded key set.
func (f *FoldMap) Keys() []string {
	keys := make([]string, 0, len(f.store))
	for k := range f.store {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of entries.
func (f *FoldMap) Len() int {
	return len(f.store)
}

// Update merges src into the mapping, folding each key.
func (f *FoldMap) Update(src map[string]any) {
	for k, v := range src {
		f.Set(k, v)
	}
}

// Copy returns a deep copy of the mapping.
func (f *FoldMap) Copy() *FoldMap {
	return &FoldMap{store: deepCopyMap(f.store)}
}
