package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentic-research/nest/plugin"
	"github.com/agentic-research/nest/plugin/codecs"
	"github.com/agentic-research/nest/units"
)

func codecRegistry(t *testing.T) *plugin.Registry {
	t.Helper()
	r := plugin.NewRegistry()
	require.NoError(t, codecs.RegisterAll(r))
	return r
}

func TestPPrintAlignsAndNests(t *testing.T) {
	d := map[string]any{
		"a": map[string]any{
			"b": map[string]any{
				"c":  []any{int64(1), int64(2)},
				"de": []any{int64(4), int64(5), int64(6)},
			},
		},
	}
	var buf bytes.Buffer
	require.NoError(t, PPrint(&buf, d, PPrintOptions{Depth: -1}))
	assert.Equal(t, "a: \n  b: \n    c:  [1,2]\n    de: [4,5,6]\n", buf.String())
}

func TestPPrintDepthLimit(t *testing.T) {
	d := map[string]any{
		"a": map[string]any{"b": map[string]any{"c": int64(1)}},
	}
	var buf bytes.Buffer
	require.NoError(t, PPrint(&buf, d, PPrintOptions{Depth: 2}))
	assert.Equal(t, "a: \n  b: {...}\n", buf.String())
}

func TestPPrintNoValues(t *testing.T) {
	d := map[string]any{"a": int64(1)}
	var buf bytes.Buffer
	require.NoError(t, PPrint(&buf, d, PPrintOptions{NoValues: true}))
	assert.Equal(t, "a: \n", buf.String())
}

func TestPPrintWraps(t *testing.T) {
	d := map[string]any{"k": "aa bb cc dd"}
	var buf bytes.Buffer
	require.NoError(t, PPrint(&buf, d, PPrintOptions{MaxWidth: 9}))
	assert.Equal(t, "k: aa bb \n   cc dd\n", buf.String())
}

func TestPPrintScalarRoot(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PPrint(&buf, int64(7), PPrintOptions{}))
	assert.Equal(t, "7\n", buf.String())
}

func TestPPrintRendersQuantities(t *testing.T) {
	d := map[string]any{
		"volume": units.Quantity{Magnitude: 1.5, Units: "nm^3"},
	}
	var buf bytes.Buffer
	require.NoError(t, PPrint(&buf, d, PPrintOptions{Registry: codecRegistry(t)}))
	assert.Equal(t, "volume: 1.5 nm^3\n", buf.String())
}

func TestToJSON(t *testing.T) {
	d := map[string]any{
		"b": int64(2),
		"a": map[string]any{"x": "y"},
	}
	var buf bytes.Buffer
	require.NoError(t, ToJSON(&buf, d, JSONOptions{}))
	assert.JSONEq(t, `{"a":{"x":"y"},"b":2}`, buf.String())
}

func TestToJSONEncodesTypedLeaves(t *testing.T) {
	d := map[string]any{
		"volume": units.Quantity{Magnitude: 1.5, Units: "nm^3"},
	}
	var buf bytes.Buffer
	require.NoError(t, ToJSON(&buf, d, JSONOptions{Registry: codecRegistry(t)}))
	assert.JSONEq(t,
		`{"volume": {"_quantity_": {"magnitude": 1.5, "units": "nm^3"}}}`,
		buf.String())
}

func TestToJSONIndent(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ToJSON(&buf, map[string]any{"a": int64(1)}, JSONOptions{Indent: 2}))
	assert.Equal(t, "{\n  \"a\": 1\n}\n", buf.String())
}

func TestHTMLTree(t *testing.T) {
	d := map[string]any{
		"a": map[string]any{"b": int64(1)},
		"c": "<tag>",
	}
	out := HTMLTree(d, HTMLOptions{Registry: plugin.NewRegistry()})
	assert.Contains(t, out, "nest-tree")
	assert.Contains(t, out, "<details")
	assert.Contains(t, out, "&lt;tag&gt;")
	assert.NotContains(t, out, "<tag>")

	// Distinct container ids across calls.
	other := HTMLTree(d, HTMLOptions{Registry: plugin.NewRegistry()})
	idOf := func(s string) string {
		start := strings.Index(s, "id=\"") + 4
		return s[start : start+36]
	}
	assert.NotEqual(t, idOf(out), idOf(other))
}
