package collections

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// ErrInvalidDocument reports JSON input that cannot back a context store.
var ErrInvalidDocument = errors.New("invalid json document")

// FromJSON parses a JSON object into a new context store. Object members
// become nested mapping nodes, arrays become []any leaves.
func FromJSON(data []byte) (*Context, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: malformed json", ErrInvalidDocument)
	}
	parsed := gjson.ParseBytes(data)
	if !parsed.IsObject() {
		return nil, fmt.Errorf("%w: top-level value must be an object", ErrInvalidDocument)
	}
	ctx := NewContext()
	ctx.store = parsed.Value().(map[string]any)
	return ctx, nil
}

// ImportJSON parses data and grafts the resulting value into the store at
// path, overwriting any prior value there.
func (c *Context) ImportJSON(path string, data []byte) error {
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("%w: malformed json", ErrInvalidDocument)
	}
	return c.Insert(path, gjson.ParseBytes(data).Value())
}

// ToJSON serializes the store to compact JSON. The document is assembled by
// writing each leaf through an sjson path-set, so mapping nodes of any
// recognized kind (plain maps, MergeMap views, FoldMap nodes, cursors)
// serialize uniformly; MergeMap leaves are flattened first. Keys are emitted
// in sorted order, making the output deterministic.
func (c *Context) ToJSON() ([]byte, error) {
	return exportNode(mapNode(c.store), []byte(`{}`), nil)
}

// ToJSONIndent is ToJSON with human-readable formatting.
func (c *Context) ToJSONIndent() ([]byte, error) {
	out, err := c.ToJSON()
	if err != nil {
		return nil, err
	}
	return pretty.Pretty(out), nil
}

func exportNode(node Mapper, out []byte, prefix []string) ([]byte, error) {
	if flat, ok := node.(*MergeMap); ok {
		node = mapNode(flat.Flatten())
	}
	keys := node.Keys()
	if len(keys) == 0 && len(prefix) > 0 {
		return sjson.SetRawBytes(out, joinDotted(prefix), []byte(`{}`))
	}

	var err error
	for _, key := range keys {
		v, _ := node.Get(key)
		dotted := make([]string, len(prefix), len(prefix)+1)
		copy(dotted, prefix)
		dotted = append(dotted, escapeSegment(key))
		if child, ok := asMapper(v); ok {
			out, err = exportNode(child, out, dotted)
		} else {
			out, err = sjson.SetBytes(out, joinDotted(dotted), v)
		}
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func joinDotted(parts []string) string {
	return strings.Join(parts, ".")
}

// escapeSegment escapes characters that carry special meaning in gjson and
// sjson paths so arbitrary store keys are treated as literal object members.
func escapeSegment(seg string) string {
	needsEscape := false
	for i := 0; i < len(seg); i++ {
		if isPathSpecial(seg[i]) {
			needsEscape = true
			break
		}
	}
	if !needsEscape {
		return seg
	}

	var b strings.Builder
	b.Grow(len(seg) * 2)
	for i := 0; i < len(seg); i++ {
		if isPathSpecial(seg[i]) {
			b.WriteByte('\\')
		}
		b.WriteByte(seg[i])
	}
	return b.String()
}

func isPathSpecial(c byte) bool {
	switch c {
	case '\\', '.', ':', '|', '@', '*', '?', '#':
		return true
	}
	return false
}
