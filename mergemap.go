package collections

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// MergeMap combines an ordered sequence of mapping-like layers into one
// logical view. Lower layer index means higher precedence. Reads merge on
// every access, so mutations made to an underlying layer after construction
// stay visible through the view.
//
// Merge rules for a key present in more than one layer:
//   - all candidates mapping nodes: a fresh MergeMap over exactly those
//     candidates, preserving precedence order (nested structure keeps
//     merging lazily, field by field).
//   - all candidates slices: ordered union with de-duplication, first-seen
//     order preserved across layers in precedence order.
//   - anything else (mixed or scalar types): the highest-precedence
//     candidate wins outright.
//
// MergeMap satisfies Mapper, so a MergeMap stored inside a Context is
// traversed by path operations like any other mapping node.
type MergeMap struct {
	layers []Mapper
}

// NewMergeMap builds a merge view over the given layers in precedence order
// (index 0 wins ties). Layers are shared, not copied. Layers must be
// mapping-like (map[string]any or any Mapper); other values are ignored.
func NewMergeMap(layers ...any) *MergeMap {
	mm := &MergeMap{layers: make([]Mapper, 0, len(layers))}
	for _, layer := range layers {
		if node, ok := asMapper(layer); ok {
			mm.layers = append(mm.layers, node)
		}
	}
	return mm
}

// Layers returns the number of underlying layers.
func (m *MergeMap) Layers() int {
	return len(m.layers)
}

// Has reports whether any layer contains key.
func (m *MergeMap) Has(key string) bool {
	for _, layer := range m.layers {
		if layer.Has(key) {
			return true
		}
	}
	return false
}

// Get returns the merged value for key per the merge rules, and whether any
// layer contained it.
func (m *MergeMap) Get(key string) (any, bool) {
	var candidates []any
	for _, layer := range m.layers {
		if v, ok := layer.Get(key); ok {
			candidates = append(candidates, v)
		}
	}
	switch len(candidates) {
	case 0:
		return nil, false
	case 1:
		return candidates[0], true
	}
	return mergeCandidates(candidates), true
}

// Set stores value under key in the highest-precedence layer, creating it
// as an empty mapping if the view currently has no layers. Lower layers are
// never written.
func (m *MergeMap) Set(key string, value any) {
	if len(m.layers) == 0 {
		m.layers = append(m.layers, mapNode(map[string]any{}))
	}
	m.layers[0].Set(key, value)
}

// Delete removes key from every layer that currently contains it and
// reports whether any layer did.
func (m *MergeMap) Delete(key string) bool {
	found := false
	for _, layer := range m.layers {
		if layer.Delete(key) {
			found = true
		}
	}
	return found
}

// Keys returns the union of all layers' current key sets, recomputed on
// every call.
func (m *MergeMap) Keys() []string {
	set := map[string]struct{}{}
	for _, layer := range m.layers {
		for _, k := range layer.Keys() {
			set[k] = struct{}{}
		}
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of distinct keys across all layers.
func (m *MergeMap) Len() int {
	return len(m.Keys())
}

// Clear drops every layer from the view. The underlying mappings themselves
// are untouched.
func (m *MergeMap) Clear() {
	m.layers = nil
}

// Copy returns a new MergeMap whose layers are deep copies of this view's
// layers. Mutating the copy never affects the original or vice versa.
func (m *MergeMap) Copy() *MergeMap {
	layers := make([]Mapper, len(m.layers))
	for i, layer := range m.layers {
		layers[i] = copyLayer(layer)
	}
	return &MergeMap{layers: layers}
}

// NewChild returns a new MergeMap with child prepended as a fresh
// highest-precedence layer ahead of deep copies of the existing layers. A
// nil child starts an empty overlay. The receiver is left unmodified.
func (m *MergeMap) NewChild(child map[string]any) *MergeMap {
	if child == nil {
		child = map[string]any{}
	}
	layers := make([]Mapper, 0, len(m.layers)+1)
	layers = append(layers, mapNode(child))
	for _, layer := range m.layers {
		layers = append(layers, copyLayer(layer))
	}
	return &MergeMap{layers: layers}
}

// Flatten materializes the fully-merged view as a plain nested mapping,
// resolving every key and recursively flattening nested merge views.
func (m *MergeMap) Flatten() map[string]any {
	flat := map[string]any{}
	for _, key := range m.Keys() {
		v, _ := m.Get(key)
		if nested, ok := v.(*MergeMap); ok {
			v = nested.Flatten()
		}
		flat[key] = v
	}
	return flat
}

func (m *MergeMap) String() string {
	reprs := make([]string, len(m.layers))
	for i, layer := range m.layers {
		reprs[i] = fmt.Sprintf("%v", layer)
	}
	return "MergeMap(" + strings.Join(reprs, ", ") + ")"
}

//------------------------------------------------------------------------------
// MERGE RULES
//------------------------------------------------------------------------------

func mergeCandidates(candidates []any) any {
	if allMappings(candidates) {
		return NewMergeMap(candidates...)
	}
	if allSlices(candidates) {
		return mergeSlices(candidates)
	}
	return candidates[0]
}

func allMappings(candidates []any) bool {
	for _, c := range candidates {
		if _, ok := asMapper(c); !ok {
			return false
		}
	}
	return true
}

func allSlices(candidates []any) bool {
	for _, c := range candidates {
		if !isSlice(c) {
			return false
		}
	}
	return true
}

func isSlice(v any) bool {
	if v == nil {
		return false
	}
	if _, ok := asMapper(v); ok {
		return false
	}
	return reflect.TypeOf(v).Kind() == reflect.Slice
}

// mergeSlices unions the candidate slices in precedence order, keeping each
// element the first time its canonical key is seen. The result is a flat
// []any regardless of the candidates' element types.
func mergeSlices(candidates []any) []any {
	merged := []any{}
	seen := map[string]struct{}{}
	for _, cand := range candidates {
		rv := reflect.ValueOf(cand)
		for i := 0; i < rv.Len(); i++ {
			el := rv.Index(i).Interface()
			ck := canonicalKey(el)
			if _, dup := seen[ck]; dup {
				continue
			}
			seen[ck] = struct{}{}
			merged = append(merged, el)
		}
	}
	return merged
}

// canonicalKey derives a stable comparison key for de-duplication. Mapping
// and slice elements serialize to an order-independent canonical string;
// scalars are keyed by dynamic type and value so 1 and "1" stay distinct.
func canonicalKey(v any) string {
	if node, ok := asMapper(v); ok {
		keys := node.Keys()
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			kv, _ := node.Get(k)
			parts = append(parts, fmt.Sprintf("%q:%s", k, canonicalKey(kv)))
		}
		return "m{" + strings.Join(parts, ",") + "}"
	}
	if isSlice(v) {
		rv := reflect.ValueOf(v)
		parts := make([]string, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			parts = append(parts, canonicalKey(rv.Index(i).Interface()))
		}
		sort.Strings(parts)
		return "l[" + strings.Join(parts, ",") + "]"
	}
	return fmt.Sprintf("%T:%v", v, v)
}

//------------------------------------------------------------------------------
// LAYER COPYING
//------------------------------------------------------------------------------

func copyLayer(layer Mapper) Mapper {
	switch n := layer.(type) {
	case mapNode:
		return mapNode(deepCopyMap(n))
	case *MergeMap:
		return n.Copy()
	case *FoldMap:
		return n.Copy()
	}
	// Unknown Mapper implementations are rebuilt into a plain mapping.
	dup := map[string]any{}
	for _, k := range layer.Keys() {
		v, _ := layer.Get(k)
		dup[k] = deepCopyValue(v)
	}
	return mapNode(dup)
}

func deepCopyMap(src map[string]any) map[string]any {
	dup := make(map[string]any, len(src))
	for k, v := range src {
		dup[k] = deepCopyValue(v)
	}
	return dup
}

func deepCopyValue(v any) any {
	switch n := v.(type) {
	case map[string]any:
		return deepCopyMap(n)
	case []any:
		dup := make([]any, len(n))
		for i, el := range n {
			dup[i] = deepCopyValue(el)
		}
		return dup
	case *MergeMap:
		return n.Copy()
	case *FoldMap:
		return n.Copy()
	}
	return v
}
