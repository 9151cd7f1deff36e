package edict

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterKeysExact(t *testing.T) {
	out, err := FilterKeys(sample(), []string{"e"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"c": map[string]any{"e": "hello"},
	}, out)
}

func TestFilterKeysRetainsSubtree(t *testing.T) {
	out, err := FilterKeys(sample(), []string{"d"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"c": map[string]any{
			"d": map[string]any{"f": []any{float64(1), float64(2)}},
		},
	}, out)
}

func TestFilterKeysWildcards(t *testing.T) {
	in := map[string]any{
		"alpha": float64(1),
		"beta":  float64(2),
		"nested": map[string]any{
			"alps": float64(3),
		},
	}
	out, err := FilterKeys(in, []string{"al*"}, Wildcards())
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"alpha":  float64(1),
		"nested": map[string]any{"alps": float64(3)},
	}, out)

	// The star matches everything, so nothing is pruned.
	out, err = FilterKeys(in, []string{"*"}, Wildcards())
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestFilterKeysRegex(t *testing.T) {
	in := map[string]any{"k1": float64(1), "k2": float64(2), "other": float64(3)}
	out, err := FilterKeys(in, []string{`k\d`}, Regex())
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"k1": float64(1), "k2": float64(2)}, out)
}

func TestFilterKeysBadRegex(t *testing.T) {
	_, err := FilterKeys(sample(), []string{"("}, Regex())
	require.Error(t, err)
}

func TestFilterKeysKeepSiblings(t *testing.T) {
	out, err := FilterKeys(sample(), []string{"e"}, KeepSiblings())
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"c": map[string]any{
			"d": map[string]any{"f": []any{float64(1), float64(2)}},
			"e": "hello",
		},
	}, out)
}

func TestFilterKeysNoMatchPrunesAll(t *testing.T) {
	out, err := FilterKeys(sample(), []string{"missing"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{}, out)
}

func TestFilterKeysRecursesIntoLists(t *testing.T) {
	in := map[string]any{
		"items": []any{
			map[string]any{"name": "a", "size": float64(1)},
			map[string]any{"size": float64(2)},
		},
	}
	out, err := FilterKeys(in, []string{"name"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"items": []any{map[string]any{"name": "a"}},
	}, out)
}

func TestFilterKeyVals(t *testing.T) {
	in := map[string]any{
		"a": map[string]any{"n": float64(5), "m": float64(1)},
		"b": map[string]any{"n": float64(2)},
	}
	big := func(_ string, v any) bool {
		f, ok := v.(float64)
		return ok && f > 3
	}
	named := func(k string, _ any) bool { return k == "n" }

	out, err := FilterKeyVals(in, []Condition{big, named}, LogicAnd)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": map[string]any{"n": float64(5)}}, out)

	out, err = FilterKeyVals(in, []Condition{big, named}, LogicOr)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"a": map[string]any{"n": float64(5)},
		"b": map[string]any{"n": float64(2)},
	}, out)
}

func TestFilterValues(t *testing.T) {
	out, err := FilterValues(sample(), []any{"hello"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"c": map[string]any{"e": "hello"}}, out)
}

func TestFilterPaths(t *testing.T) {
	out, err := FilterPaths(sample(), [][]string{{"c", "e"}})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"c": map[string]any{"e": "hello"}}, out)

	out, err = FilterPaths(sample(), [][]string{{"e", "c"}})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"c": map[string]any{"e": "hello"}}, out)
}

func TestRemoveKeys(t *testing.T) {
	out, err := RemoveKeys(sample(), []string{"d"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"a": float64(1),
		"c": map[string]any{
			"f": []any{float64(1), float64(2)},
			"e": "hello",
		},
	}, out)
}

func TestRemoveKeysCollision(t *testing.T) {
	in := map[string]any{
		"a": map[string]any{"x": float64(1)},
		"b": map[string]any{"x": float64(2)},
	}
	_, err := RemoveKeys(in, []string{"a", "b"})
	require.Error(t, err)
}

func TestRemovePaths(t *testing.T) {
	out := RemovePaths(sample(), []string{"d"})
	assert.Equal(t, map[string]any{
		"a": float64(1),
		"c": map[string]any{"e": "hello"},
	}, out)
}

func TestRenameKeys(t *testing.T) {
	out := RenameKeys(sample(), map[string]string{"e": "greeting"})
	assert.Equal(t, map[string]any{
		"a": float64(1),
		"c": map[string]any{
			"d":        map[string]any{"f": []any{float64(1), float64(2)}},
			"greeting": "hello",
		},
	}, out)
}
