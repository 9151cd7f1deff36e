package tests

import (
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentic-research/nest/edict"
	"github.com/agentic-research/nest/plugin"
	"github.com/agentic-research/nest/plugin/codecs"
	"github.com/agentic-research/nest/plugin/parsers"
	"github.com/agentic-research/nest/tree"
	"github.com/agentic-research/nest/units"
)

// fixture bundles the shared state for the end-to-end tests: an
// in-memory directory of mixed-format files and a lazy tree over it
// with the full parser and codec stack registered.
type fixture struct {
	fs   billy.Filesystem
	reg  *plugin.Registry
	tree *tree.Tree
}

func write(t *testing.T, fs billy.Filesystem, name, content string) {
	t.Helper()
	f, err := fs.Create(name)
	require.NoError(t, err)
	_, err = f.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, f.Close())
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	fs := memfs.New()
	write(t, fs, "file1.json", `{"key1": [1, 2, 3], "key2": {"key3": 4}}`)
	write(t, fs, "cell.json",
		`{"volume": {"_quantity_": {"magnitude": 924.62752781, "units": "angstrom^3"}}}`)
	write(t, fs, "runs/run1.keypair", "energy = 1.5\n")
	write(t, fs, "runs/run2.yaml", "energy: 2.5\n")
	write(t, fs, "meta.literal.csv", "si,14\nge,32\n")

	reg := plugin.NewRegistry()
	require.NoError(t, parsers.RegisterAll(reg))
	require.NoError(t, codecs.RegisterAll(reg))

	tr, err := tree.New(tree.NewFSPath(fs, ".", true), tree.WithRegistry(reg))
	require.NoError(t, err)
	return &fixture{fs: fs, reg: reg, tree: tr}
}

func TestTreeFlattensWithSlashSeparator(t *testing.T) {
	fx := newFixture(t)

	d, err := fx.tree.Get("file1.json")
	require.NoError(t, err)
	flat, err := edict.Flatten(map[string]any{"file1.json": d}, edict.Sep("/"))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"file1.json/key1":      []any{int64(1), int64(2), int64(3)},
		"file1.json/key2/key3": int64(4),
	}, flat)
}

func TestWholeTreeRoundTrip(t *testing.T) {
	fx := newFixture(t)

	d, err := fx.tree.ToDict(false)
	require.NoError(t, err)
	flat, err := edict.Flatten(d, edict.Sep("/"))
	require.NoError(t, err)
	back, err := edict.Unflatten(flat, edict.Sep("/"))
	require.NoError(t, err)
	assert.Equal(t, d, back)
}

func TestQuantityLeavesSurviveLoadAndConvert(t *testing.T) {
	fx := newFixture(t)

	// The JSON codec revives the signature mapping into a Quantity.
	v, err := fx.tree.Get("cell.json", "volume")
	require.NoError(t, err)
	q, ok := v.(units.Quantity)
	require.True(t, ok)
	assert.Equal(t, "angstrom^3", q.Units)

	// Applying a schema converts it in place of the bare leaf.
	d, err := fx.tree.Get("cell.json")
	require.NoError(t, err)
	out, err := units.ApplyUnitSchema(d, map[string]any{"volume": "nm^3"},
		units.NewEngine(), units.SchemaOptions{})
	require.NoError(t, err)
	conv := out.(map[string]any)["volume"].(units.Quantity)
	assert.Equal(t, "nm^3", conv.Units)
	assert.InDelta(t, 0.92462752781, conv.Magnitude.(float64), 1e-9)
}

func TestMixedFormatsMaterialize(t *testing.T) {
	fx := newFixture(t)

	e1, err := fx.tree.Get("runs", "run1.keypair", "energy")
	require.NoError(t, err)
	assert.Equal(t, 1.5, e1)

	e2, err := fx.tree.Get("runs", "run2.yaml", "energy")
	require.NoError(t, err)
	assert.Equal(t, 2.5, e2)

	rows, err := fx.tree.Get("meta.literal.csv")
	require.NoError(t, err)
	assert.Equal(t, []any{
		[]any{"si", int64(14)},
		[]any{"ge", int64(32)},
	}, rows)
}

func TestMergeAcrossFormats(t *testing.T) {
	fx := newFixture(t)

	runs, err := fx.tree.Get("runs")
	require.NoError(t, err)
	d, err := runs.(*tree.Tree).ToDict(false)
	require.NoError(t, err)

	merged, err := edict.Merge([]any{
		d.(map[string]any)["run1.keypair"],
		d.(map[string]any)["run2.yaml"],
	}, edict.AppendKeys())
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"energy": []any{1.5, 2.5}}, merged)
}

func TestCollectPolicyKeepsTreeUsable(t *testing.T) {
	fs := memfs.New()
	write(t, fs, "bad.json", "{ nope")
	write(t, fs, "good.json", `{"v": 1}`)

	reg := plugin.NewRegistry()
	require.NoError(t, parsers.RegisterAll(reg))

	tr, err := tree.New(tree.NewFSPath(fs, ".", true),
		tree.WithRegistry(reg), tree.WithParseErrors(tree.ParseErrorsCollect))
	require.NoError(t, err)

	d, err := tr.ToDict(false)
	require.NoError(t, err)
	m := d.(map[string]any)
	_, isMarker := m["bad.json"].(*tree.ParseError)
	assert.True(t, isMarker)
	assert.Equal(t, map[string]any{"v": int64(1)}, m["good.json"])
	require.Len(t, tr.Errs(), 1)
}
