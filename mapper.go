package collections

import "sort"

// Mapper is the capability shared by every traversable mapping node. Plain
// map[string]any values, MergeMap and FoldMap all satisfy it, so the path
// walk code never needs to enumerate concrete node types.
type Mapper interface {
	// Has reports whether key is present in the node.
	Has(key string) bool
	// Get returns the value stored under key and whether it was present.
	Get(key string) (any, bool)
	// Set stores value under key, replacing any prior value.
	Set(key string, value any)
	// Delete removes key and reports whether it was present.
	Delete(key string) bool
	// Keys returns the node's current key set.
	Keys() []string
}

// mapNode adapts a plain map[string]any to the Mapper capability. The
// adapter holds the map by reference, so mutations through the adapter are
// visible to every other holder of the same map.
type mapNode map[string]any

func (m mapNode) Has(key string) bool {
	_, ok := m[key]
	return ok
}

func (m mapNode) Get(key string) (any, bool) {
	v, ok := m[key]
	return v, ok
}

func (m mapNode) Set(key string, value any) {
	m[key] = value
}

func (m mapNode) Delete(key string) bool {
	_, ok := m[key]
	if ok {
		delete(m, key)
	}
	return ok
}

func (m mapNode) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// asMapper reports whether v is a mapping node and, if so, returns it as one.
// Cursors unwrap to the node they point at, so a cursor stored as a value
// traverses like the mapping it views.
func asMapper(v any) (Mapper, bool) {
	switch n := v.(type) {
	case map[string]any:
		return mapNode(n), true
	case *Cursor:
		return n.node, true
	case Mapper:
		return n, true
	}
	return nil, false
}
