// Package collections provides a hierarchical, path-addressed context store
// for configuration and runtime state, along with a layered MergeMap that
// combines several mappings into one logical view with deterministic
// precedence and shadowing rules.
//
// Values are stored under filesystem-style paths:
//
//	ctx := collections.NewContext()
//	ctx.Insert("/configuration/runtime/logging/levels/console", "DEBUG")
//	level, err := ctx.Lookup("/configuration/runtime/logging/levels/console")
//
// Looking up a path whose value is itself a mapping returns a *Cursor, a
// shared (non-copying) view that supports the same path operations relative
// to that node.
package collections

import (
	"errors"
	"fmt"
	"regexp"
	"weak"
)

// Error kinds surfaced by path operations.
var (
	// ErrInvalidPath reports a path string that fails segment-syntax
	// validation, or an empty segment sequence.
	ErrInvalidPath = errors.New("invalid path")

	// ErrMissingPath reports a path whose intermediate or final segment is
	// absent and no default applies.
	ErrMissingPath = errors.New("missing path")

	// ErrBrokenPath reports an intermediate segment that resolved to a
	// non-mapping value, making the remaining segments untraversable.
	ErrBrokenPath = errors.New("broken path")
)

//------------------------------------------------------------------------------
// WALK ENGINE
//------------------------------------------------------------------------------

// The walk helpers implement the path navigation shared by Context and
// Cursor: one segment per level, recursing through any value that satisfies
// the Mapper capability.

func walkExists(node Mapper, parts []string) bool {
	if len(parts) == 0 {
		return false
	}
	v, ok := node.Get(parts[0])
	if !ok {
		return false
	}
	if len(parts) == 1 {
		return true
	}
	child, ok := asMapper(v)
	if !ok {
		return false
	}
	return walkExists(child, parts[1:])
}

func walkInsert(node Mapper, path string, parts []string, value any) error {
	if len(parts) == 0 {
		return fmt.Errorf("%w: %q", ErrInvalidPath, path)
	}
	head := parts[0]
	if len(parts) == 1 {
		node.Set(head, value)
		return nil
	}
	v, ok := node.Get(head)
	if !ok {
		next := map[string]any{}
		node.Set(head, next)
		return walkInsert(mapNode(next), path, parts[1:], value)
	}
	child, ok := asMapper(v)
	if !ok {
		return fmt.Errorf("%w: segment %q of %q is not a mapping", ErrBrokenPath, head, path)
	}
	return walkInsert(child, path, parts[1:], value)
}

// walkLookup resolves parts against node. A non-nil def auto-vivifies missing
// intermediate levels and is stored at the final segment. A resolved mapping
// leaf is wrapped in a cursor recorded at path, back-linked to root.
func walkLookup(node Mapper, path string, parts []string, def any, root weak.Pointer[Context]) (any, error) {
	if len(parts) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPath, path)
	}
	head := parts[0]
	v, ok := node.Get(head)
	if ok {
		if len(parts) > 1 {
			child, ok := asMapper(v)
			if !ok {
				return nil, fmt.Errorf("%w: segment %q of %q is not a mapping", ErrBrokenPath, head, path)
			}
			return walkLookup(child, path, parts[1:], def, root)
		}
		if child, ok := asMapper(v); ok {
			return &Cursor{value: v, node: child, path: path, root: root}, nil
		}
		return v, nil
	}
	if def != nil {
		if len(parts) > 1 {
			next := map[string]any{}
			node.Set(head, next)
			return walkLookup(mapNode(next), path, parts[1:], def, root)
		}
		node.Set(head, def)
		if child, ok := asMapper(def); ok {
			return &Cursor{value: def, node: child, path: path, root: root}, nil
		}
		return def, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrMissingPath, path)
}

func walkRemove(node Mapper, path string, parts []string) (any, error) {
	if len(parts) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPath, path)
	}
	head := parts[0]
	v, ok := node.Get(head)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingPath, path)
	}
	if len(parts) > 1 {
		child, ok := asMapper(v)
		if !ok {
			return nil, fmt.Errorf("%w: segment %q of %q is not a mapping", ErrBrokenPath, head, path)
		}
		return walkRemove(child, path, parts[1:])
	}
	node.Delete(head)
	return v, nil
}

//------------------------------------------------------------------------------
// CONTEXT
//------------------------------------------------------------------------------

// Context is the root of a path-addressed store. It owns its backing mapping,
// which is created empty at construction and mutated in place by Insert and
// Remove. A Context is not safe for concurrent mutation without external
// synchronization.
type Context struct {
	store map[string]any
}

// NewContext creates an empty context store.
func NewContext() *Context {
	return &Context{store: map[string]any{}}
}

// Exists reports whether a value of any type is stored at path. It never
// mutates the store and returns false for malformed paths.
func (c *Context) Exists(path string) bool {
	parts, err := SplitPath(path)
	if err != nil {
		return false
	}
	return walkExists(mapNode(c.store), parts)
}

// ExistsParts is Exists for a pre-split segment sequence.
func (c *Context) ExistsParts(parts []string) bool {
	return walkExists(mapNode(c.store), parts)
}

// Insert stores value at path, creating empty intermediate mapping nodes as
// needed and overwriting any prior value at the final segment.
func (c *Context) Insert(path string, value any) error {
	parts, err := SplitPath(path)
	if err != nil {
		return err
	}
	return walkInsert(mapNode(c.store), path, parts, value)
}

// InsertParts is Insert for a pre-split segment sequence.
func (c *Context) InsertParts(parts []string, value any) error {
	return walkInsert(mapNode(c.store), JoinPath(parts...), parts, value)
}

// Lookup returns the value stored at path. A resolved mapping node is wrapped
// in a *Cursor; any other value is returned as stored. Absence reports
// ErrMissingPath, and a scalar found at a non-final segment reports
// ErrBrokenPath.
func (c *Context) Lookup(path string) (any, error) {
	parts, err := SplitPath(path)
	if err != nil {
		return nil, err
	}
	return walkLookup(mapNode(c.store), path, parts, nil, weak.Make(c))
}

// LookupParts is Lookup for a pre-split segment sequence.
func (c *Context) LookupParts(parts []string) (any, error) {
	return walkLookup(mapNode(c.store), JoinPath(parts...), parts, nil, weak.Make(c))
}

// LookupDefault is Lookup with auto-vivification: if any segment of path is
// absent, missing intermediate mapping nodes are created, def is stored at
// the final segment, and the stored value is returned. A nil def behaves
// like plain Lookup.
func (c *Context) LookupDefault(path string, def any) (any, error) {
	parts, err := SplitPath(path)
	if err != nil {
		return nil, err
	}
	return walkLookup(mapNode(c.store), path, parts, def, weak.Make(c))
}

// LookupDefaultParts is LookupDefault for a pre-split segment sequence.
func (c *Context) LookupDefaultParts(parts []string, def any) (any, error) {
	return walkLookup(mapNode(c.store), JoinPath(parts...), parts, def, weak.Make(c))
}

// Fetch is a lenient Lookup that swallows lookup failures and returns nil in
// their place. Use Lookup when the failure kind matters.
func (c *Context) Fetch(path string) any {
	v, err := c.Lookup(path)
	if err != nil {
		return nil
	}
	return v
}

// Remove deletes the value at path and returns it. Absence of any segment
// reports ErrMissingPath.
func (c *Context) Remove(path string) (any, error) {
	parts, err := SplitPath(path)
	if err != nil {
		return nil, err
	}
	return walkRemove(mapNode(c.store), path, parts)
}

// RemoveParts is Remove for a pre-split segment sequence.
func (c *Context) RemoveParts(parts []string) (any, error) {
	return walkRemove(mapNode(c.store), JoinPath(parts...), parts)
}

// Discard removes the value at path if present and returns it. A missing or
// untraversable path is a silent no-op returning nil.
func (c *Context) Discard(path string) any {
	v, err := c.Remove(path)
	if err != nil {
		return nil
	}
	return v
}

// Has reports whether key is present at the root level of the store.
func (c *Context) Has(key string) bool {
	_, ok := c.store[key]
	return ok
}

// Get is single-key sugar over Lookup: it resolves key at the root level,
// wrapping a mapping value in a cursor.
func (c *Context) Get(key string) (any, error) {
	return c.LookupParts([]string{key})
}

// Set is single-key sugar over Insert at the root level.
func (c *Context) Set(key string, value any) {
	c.store[key] = value
}

// FillTemplate interpolates the store's root-level key/value pairs (one
// level, not recursive) into a percent-style template string.
func (c *Context) FillTemplate(template string) (string, error) {
	return fillTemplate(template, mapNode(c.store))
}

//------------------------------------------------------------------------------
// CURSOR
//------------------------------------------------------------------------------

// Cursor is a lightweight view over a mapping node reached during a lookup.
// The node is shared with the originating store, not copied: mutations made
// through the cursor are visible through the store and vice versa. The back
// reference to the root context is weak, so holding a cursor never keeps a
// dropped store alive.
type Cursor struct {
	value any
	node  Mapper
	path  string
	root  weak.Pointer[Context]
}

// Value returns the underlying mapping node the cursor points at.
func (cu *Cursor) Value() any {
	return cu.value
}

// Path returns the store path at which the cursor's node was found.
func (cu *Cursor) Path() string {
	return cu.path
}

// Root returns the context the cursor was created from, or nil if the cursor
// was detached or the context has been collected.
func (cu *Cursor) Root() *Context {
	return cu.root.Value()
}

// subPath anchors a cursor-relative path at the cursor's own location so
// errors and nested cursors report absolute paths.
func (cu *Cursor) subPath(path string) string {
	return cu.path + path
}

// Exists reports whether a value is stored at path relative to the cursor.
func (cu *Cursor) Exists(path string) bool {
	parts, err := SplitPath(path)
	if err != nil {
		return false
	}
	return walkExists(cu.node, parts)
}

// ExistsParts is Exists for a pre-split segment sequence.
func (cu *Cursor) ExistsParts(parts []string) bool {
	return walkExists(cu.node, parts)
}

// Insert stores value at path relative to the cursor.
func (cu *Cursor) Insert(path string, value any) error {
	parts, err := SplitPath(path)
	if err != nil {
		return err
	}
	return walkInsert(cu.node, cu.subPath(path), parts, value)
}

// InsertParts is Insert for a pre-split segment sequence.
func (cu *Cursor) InsertParts(parts []string, value any) error {
	return walkInsert(cu.node, cu.subPath(JoinPath(parts...)), parts, value)
}

// Lookup resolves path relative to the cursor, with the same semantics as
// Context.Lookup.
func (cu *Cursor) Lookup(path string) (any, error) {
	parts, err := SplitPath(path)
	if err != nil {
		return nil, err
	}
	return walkLookup(cu.node, cu.subPath(path), parts, nil, cu.root)
}

// LookupParts is Lookup for a pre-split segment sequence.
func (cu *Cursor) LookupParts(parts []string) (any, error) {
	return walkLookup(cu.node, cu.subPath(JoinPath(parts...)), parts, nil, cu.root)
}

// LookupDefault resolves path relative to the cursor, auto-vivifying with
// def as Context.LookupDefault does.
func (cu *Cursor) LookupDefault(path string, def any) (any, error) {
	parts, err := SplitPath(path)
	if err != nil {
		return nil, err
	}
	return walkLookup(cu.node, cu.subPath(path), parts, def, cu.root)
}

// Fetch is a lenient Lookup that swallows lookup failures and returns nil.
func (cu *Cursor) Fetch(path string) any {
	v, err := cu.Lookup(path)
	if err != nil {
		return nil
	}
	return v
}

// Remove deletes the value at path relative to the cursor and returns it.
func (cu *Cursor) Remove(path string) (any, error) {
	parts, err := SplitPath(path)
	if err != nil {
		return nil, err
	}
	return walkRemove(cu.node, cu.subPath(path), parts)
}

// RemoveParts is Remove for a pre-split segment sequence.
func (cu *Cursor) RemoveParts(parts []string) (any, error) {
	return walkRemove(cu.node, cu.subPath(JoinPath(parts...)), parts)
}

// Discard removes the value at path if present; missing paths are a no-op.
func (cu *Cursor) Discard(path string) any {
	v, err := cu.Remove(path)
	if err != nil {
		return nil
	}
	return v
}

// Has reports whether key is present directly in the cursor's node.
func (cu *Cursor) Has(key string) bool {
	return cu.node.Has(key)
}

// Get is single-key sugar over Lookup relative to the cursor.
func (cu *Cursor) Get(key string) (any, error) {
	return cu.LookupParts([]string{key})
}

// Set is single-key sugar over Insert relative to the cursor.
func (cu *Cursor) Set(key string, value any) {
	cu.node.Set(key, value)
}

// FillTemplate interpolates the cursor node's own key/value pairs (one
// level, not recursive) into a percent-style template string.
func (cu *Cursor) FillTemplate(template string) (string, error) {
	return fillTemplate(template, cu.node)
}

//------------------------------------------------------------------------------
// TEMPLATES
//------------------------------------------------------------------------------

// Template fields use percent-dict syntax: %(name)s substitutes the value
// stored under "name" formatted with verb 's'. "%%" is a literal percent.
var reTemplateField = regexp.MustCompile(`%(%|\(([-a-zA-Z0-9_]+)\)([a-zA-Z]))`)

func fillTemplate(template string, node Mapper) (string, error) {
	var missing string
	filled := reTemplateField.ReplaceAllStringFunc(template, func(tok string) string {
		if tok == "%%" {
			return "%"
		}
		sub := reTemplateField.FindStringSubmatch(tok)
		name, verb := sub[2], sub[3]
		v, ok := node.Get(name)
		if !ok {
			if missing == "" {
				missing = name
			}
			return tok
		}
		if verb == "s" {
			// Percent-dict templates use 's' for generic stringification,
			// which fmt spells '%v'.
			verb = "v"
		}
		return fmt.Sprintf("%"+verb, v)
	})
	if missing != "" {
		return "", fmt.Errorf("%w: no value for template field %q", ErrMissingPath, missing)
	}
	return filled, nil
}
