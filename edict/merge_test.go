package edict

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeDisjoint(t *testing.T) {
	out, err := Merge([]any{
		map[string]any{"a": float64(1)},
		map[string]any{"b": map[string]any{"c": float64(2)}},
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"a": float64(1),
		"b": map[string]any{"c": float64(2)},
	}, out)
}

func TestMergeIdenticalUnifies(t *testing.T) {
	a := sample()
	out, err := Merge([]any{a, sample()})
	require.NoError(t, err)
	assert.Equal(t, a, out)
}

func TestMergeConflict(t *testing.T) {
	_, err := Merge([]any{
		map[string]any{"a": map[string]any{"b": float64(1)}},
		map[string]any{"a": map[string]any{"b": float64(2)}},
	})
	var conflict *MergeConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "a.b", conflict.Path)
	assert.Equal(t, float64(1), conflict.Old)
	assert.Equal(t, float64(2), conflict.New)
}

func TestMergeOverwrite(t *testing.T) {
	out, err := Merge([]any{
		map[string]any{"a": float64(1)},
		map[string]any{"a": float64(2)},
	}, Overwrite())
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": float64(2)}, out)
}

func TestMergeAppendKeys(t *testing.T) {
	out, err := Merge([]any{
		map[string]any{"a": float64(1)},
		map[string]any{"a": float64(2)},
		map[string]any{"a": float64(1)},
	}, AppendKeys())
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": []any{float64(1), float64(2)}}, out)
}

func TestMergeAppendKeysConcatenatesLists(t *testing.T) {
	out, err := Merge([]any{
		map[string]any{"a": []any{float64(1)}},
		map[string]any{"a": []any{float64(2), float64(3)}},
	}, AppendKeys())
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": []any{float64(1), float64(2), float64(3)}}, out)
}

func TestMergeListOfDicts(t *testing.T) {
	out, err := Merge([]any{
		map[string]any{"a": []any{
			map[string]any{"x": float64(1)},
		}},
		map[string]any{"a": []any{
			map[string]any{"y": float64(2)},
			map[string]any{"x": float64(1)},
		}},
	}, ListOfDicts())
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": []any{
		map[string]any{"x": float64(1)},
		map[string]any{"y": float64(2)},
	}}, out)
}

func TestMergeDoesNotMutateSources(t *testing.T) {
	a := map[string]any{"a": float64(1)}
	b := map[string]any{"b": float64(2)}
	out, err := Merge([]any{a, b})
	require.NoError(t, err)
	out.(map[string]any)["a"] = float64(9)
	assert.Equal(t, float64(1), a["a"])
}
