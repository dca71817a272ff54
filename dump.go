package collections

import "github.com/davecgh/go-spew/spew"

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	SortKeys:                true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
}

// Dump renders the store's full contents for debugging.
func (c *Context) Dump() string {
	return dumpConfig.Sdump(c.store)
}

// Dump renders the cursor's node for debugging.
func (cu *Cursor) Dump() string {
	return dumpConfig.Sdump(cu.value)
}

// Dump renders the fully-merged view for debugging.
func (m *MergeMap) Dump() string {
	return dumpConfig.Sdump(m.Flatten())
}
