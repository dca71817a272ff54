package collections

import "fmt"

func ExampleContext() {
	ctx := NewContext()

	// Intermediate mapping nodes are created on demand.
	ctx.Insert("/configuration/runtime/logging/levels/console", "DEBUG")

	fmt.Println(ctx.Fetch("/configuration/runtime/logging/levels/console"))
	fmt.Println(ctx.Exists("/configuration/runtime/logging"))

	ctx.Remove("/configuration/runtime/logging/levels/console")
	fmt.Println(ctx.Exists("/configuration/runtime/logging/levels/console"))

	// Output:
	// DEBUG
	// true
	// false
}

func ExampleContext_lookupDefault() {
	ctx := NewContext()

	val, _ := ctx.LookupDefault("/environment/job/label", "adhoc")
	fmt.Println(val)

	// The default was stored, so it persists for later lookups.
	fmt.Println(ctx.Fetch("/environment/job/label"))

	// Output:
	// adhoc
	// adhoc
}

func ExampleCursor() {
	ctx := NewContext()
	ctx.Insert("/environment/build/name", "nightly")
	ctx.Insert("/environment/build/flavor", "release")

	// Looking up a mapping node returns a cursor bound to it.
	build := ctx.Fetch("/environment/build").(*Cursor)
	fmt.Println(build.Path())
	fmt.Println(build.Fetch("/flavor"))

	// The cursor shares storage with the store.
	build.Insert("/branch", "main")
	fmt.Println(ctx.Fetch("/environment/build/branch"))

	filled, _ := build.FillTemplate("%(name)s-%(flavor)s")
	fmt.Println(filled)

	// Output:
	// /environment/build
	// release
	// main
	// nightly-release
}

func ExampleMergeMap() {
	overrides := map[string]any{
		"levels": map[string]any{"console": "DEBUG"},
	}
	defaults := map[string]any{
		"levels":  map[string]any{"console": "INFO", "logfile": "WARNING"},
		"logname": "testrun.log",
	}

	mm := NewMergeMap(overrides, defaults)

	levels, _ := mm.Get("levels")
	console, _ := levels.(*MergeMap).Get("console")
	logfile, _ := levels.(*MergeMap).Get("logfile")
	logname, _ := mm.Get("logname")

	fmt.Println(console)
	fmt.Println(logfile)
	fmt.Println(logname)

	// Output:
	// DEBUG
	// WARNING
	// testrun.log
}

func ExampleMergeMap_listUnion() {
	mm := NewMergeMap(
		map[string]any{"skip": []any{"a", "b", "c"}},
		map[string]any{"skip": []any{"c", "d", "e"}},
	)

	merged, _ := mm.Get("skip")
	fmt.Println(merged)

	// Output:
	// [a b c d e]
}
