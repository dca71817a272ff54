package collections

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestFromJSON(t *testing.T) {
	doc := []byte(`{
		"configuration": {
			"runtime": {
				"logging": {"levels": {"console": "DEBUG"}},
				"timetravel": false
			}
		},
		"tags": ["smoke", "nightly"]
	}`)

	ctx, err := FromJSON(doc)
	require.NoError(t, err)

	assert.Equal(t, "DEBUG", ctx.Fetch("/configuration/runtime/logging/levels/console"))
	assert.Equal(t, false, ctx.Fetch("/configuration/runtime/timetravel"))
	assert.Equal(t, []any{"smoke", "nightly"}, ctx.Fetch("/tags"))

	cur, err := ctx.Lookup("/configuration/runtime")
	require.NoError(t, err)
	require.IsType(t, &Cursor{}, cur)
}

func TestFromJSONRejectsBadInput(t *testing.T) {
	_, err := FromJSON([]byte(`{"broken":`))
	assert.ErrorIs(t, err, ErrInvalidDocument)

	_, err = FromJSON([]byte(`[1, 2, 3]`))
	assert.ErrorIs(t, err, ErrInvalidDocument)

	_, err = FromJSON([]byte(`"scalar"`))
	assert.ErrorIs(t, err, ErrInvalidDocument)
}

func TestImportJSON(t *testing.T) {
	ctx := NewContext()
	require.NoError(t, ctx.Insert("/environment/runid", "r-100"))

	err := ctx.ImportJSON("/configuration/landscape", []byte(`{"pod": {"size": 4}}`))
	require.NoError(t, err)

	assert.Equal(t, float64(4), ctx.Fetch("/configuration/landscape/pod/size"))
	assert.Equal(t, "r-100", ctx.Fetch("/environment/runid"))

	err = ctx.ImportJSON("/configuration/landscape", []byte(`{"bad":`))
	assert.ErrorIs(t, err, ErrInvalidDocument)
}

func TestToJSON(t *testing.T) {
	ctx := NewContext()
	ctx.Insert("/environment/job/name", "nightly")
	ctx.Insert("/environment/job/id", 1375)
	ctx.Insert("/configuration/runtime/skip-devices", []any{"dev-1", "dev-2"})

	out, err := ctx.ToJSON()
	require.NoError(t, err)

	assert.Equal(t, "nightly", gjson.GetBytes(out, "environment.job.name").String())
	assert.Equal(t, int64(1375), gjson.GetBytes(out, "environment.job.id").Int())
	assert.Equal(t, "dev-2", gjson.GetBytes(out, "configuration.runtime.skip-devices.1").String())
}

func TestToJSONEmptyStore(t *testing.T) {
	ctx := NewContext()
	out, err := ctx.ToJSON()
	require.NoError(t, err)
	assert.Equal(t, "{}", string(out))
}

func TestToJSONEmptyMappingNode(t *testing.T) {
	ctx := NewContext()
	ctx.Insert("/a", map[string]any{})

	out, err := ctx.ToJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"a":{}}`, string(out))
}

func TestToJSONFlattensMergeMap(t *testing.T) {
	ctx := NewContext()
	overlay := map[string]any{"console": "DEBUG"}
	base := map[string]any{"console": "INFO", "logfile": "WARNING"}
	ctx.Insert("/logging/levels", NewMergeMap(overlay, base))

	out, err := ctx.ToJSON()
	require.NoError(t, err)

	assert.Equal(t, "DEBUG", gjson.GetBytes(out, "logging.levels.console").String())
	assert.Equal(t, "WARNING", gjson.GetBytes(out, "logging.levels.logfile").String())
}

func TestToJSONFoldMapNode(t *testing.T) {
	ctx := NewContext()
	ctx.Insert("/host", NewFoldMapFrom(map[string]any{"Name": "unit-07"}))

	out, err := ctx.ToJSON()
	require.NoError(t, err)
	assert.Equal(t, "unit-07", gjson.GetBytes(out, "host.name").String())
}

func TestToJSONEscapesSpecialKeys(t *testing.T) {
	ctx := NewContext()
	// Keys with path metacharacters can only arrive through direct node
	// mutation, never through validated path strings.
	ctx.Set("dotted", map[string]any{"a.b": 1})

	out, err := ctx.ToJSON()
	require.NoError(t, err)
	assert.Equal(t, int64(1), gjson.GetBytes(out, `dotted.a\.b`).Int())
}

func TestToJSONIndent(t *testing.T) {
	ctx := NewContext()
	ctx.Insert("/a/b", 1)

	out, err := ctx.ToJSONIndent()
	require.NoError(t, err)
	assert.True(t, bytes.Contains(out, []byte("\n")))
	assert.Equal(t, int64(1), gjson.GetBytes(out, "a.b").Int())
}

func TestJSONRoundTrip(t *testing.T) {
	doc := []byte(`{"a":{"b":{"c":"blah"},"n":3.5},"list":[1,2,3]}`)

	ctx, err := FromJSON(doc)
	require.NoError(t, err)

	out, err := ctx.ToJSON()
	require.NoError(t, err)

	back, err := FromJSON(out)
	require.NoError(t, err)

	assert.Equal(t, "blah", back.Fetch("/a/b/c"))
	assert.Equal(t, 3.5, back.Fetch("/a/n"))
	assert.Equal(t, []any{float64(1), float64(2), float64(3)}, back.Fetch("/list"))
}
