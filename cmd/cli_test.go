package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentic-research/nest/edict"
)

func writeFixture(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func fixtureDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFixture(t, dir, "file1.json", `{"key1": [1, 2, 3], "key2": {"key3": 4}}`)
	writeFixture(t, dir, "sub/notes.keypair", "a = 1\n")
	return dir
}

// resetFlags restores the package-level flag variables, which otherwise
// persist between Execute calls.
func resetFlags() {
	configPath, verbose = "", false
	sepFlag, ignoreFlags, parsePolicy = edict.DefaultSep, nil, "raise"
	showDepth, showWidth, showNoValues, showJSON, showIndent = -1, 80, false, false, 2
	showPath = ""
	flattenListOfDicts, flattenJSON = false, false
	mergeOverwrite, mergeAppendKeys, mergeListDicts, mergeOutput = false, false, false, ""
	diffRtol, diffAtol = 0, 0
	filterKeys, filterWildcards, filterRegex, filterSiblings = nil, false, false, false
	convertSchema, convertWildcards, convertSplit = "", false, false
	htmlOutput, htmlDepth = "", 1
	clearChanged := func(f *pflag.Flag) { f.Changed = false }
	rootCmd.PersistentFlags().VisitAll(clearChanged)
	for _, c := range rootCmd.Commands() {
		c.Flags().VisitAll(clearChanged)
	}
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestKeysCommand(t *testing.T) {
	dir := fixtureDir(t)
	out, err := runCLI(t, "keys", dir)
	require.NoError(t, err)
	assert.Equal(t, "file1.json\nsub\n", out)
}

func TestKeysCommandDescends(t *testing.T) {
	dir := fixtureDir(t)
	out, err := runCLI(t, "keys", dir, "file1.json", "key2")
	require.NoError(t, err)
	assert.Equal(t, "key3\n", out)
}

func TestShowCommand(t *testing.T) {
	dir := fixtureDir(t)
	out, err := runCLI(t, "show", dir, "file1.json")
	require.NoError(t, err)
	assert.Contains(t, out, "key1:")
	assert.Contains(t, out, "[1,2,3]")
}

func TestShowCommandJSONPath(t *testing.T) {
	dir := fixtureDir(t)
	out, err := runCLI(t, "show", dir, "file1.json", "--path", "$.key2.key3", "--json")
	require.NoError(t, err)
	assert.JSONEq(t, `4`, out)
}

func TestFlattenCommandCustomSep(t *testing.T) {
	dir := fixtureDir(t)
	out, err := runCLI(t, "flatten", "--sep", "/", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "file1.json/key1")
	assert.Contains(t, out, "file1.json/key2/key3")
	assert.Contains(t, out, "sub/notes.keypair/a")
}

func TestDiffCommand(t *testing.T) {
	dirA := t.TempDir()
	dirB := t.TempDir()
	writeFixture(t, dirA, "d.json", `{"v": 1.0, "only_a": true}`)
	writeFixture(t, dirB, "d.json", `{"v": 2.0}`)

	out, err := runCLI(t, "diff", "--sep", "/", dirA, dirB)
	require.Error(t, err)
	assert.Contains(t, out, "~ d.json/v: 1 -> 2")
	assert.Contains(t, out, "- d.json/only_a: true")
}

func TestDiffCommandEqualWithinTolerance(t *testing.T) {
	dirA := t.TempDir()
	dirB := t.TempDir()
	writeFixture(t, dirA, "d.json", `{"v": 1.0}`)
	writeFixture(t, dirB, "d.json", `{"v": 1.000000001}`)

	_, err := runCLI(t, "diff", "--rtol", "1e-6", dirA, dirB)
	require.NoError(t, err)
}

func TestMergeCommand(t *testing.T) {
	dirA := t.TempDir()
	dirB := t.TempDir()
	writeFixture(t, dirA, "a.json", `{"x": 1}`)
	writeFixture(t, dirB, "b.json", `{"y": 2}`)

	out, err := runCLI(t, "merge", dirA, dirB)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a.json": {"x": 1}, "b.json": {"y": 2}}`, out)
}

func TestFilterCommand(t *testing.T) {
	dir := fixtureDir(t)
	out, err := runCLI(t, "filter", dir, "--keys", "key3")
	require.NoError(t, err)
	assert.JSONEq(t, `{"file1.json": {"key2": {"key3": 4}}}`, out)
}

func TestConvertCommand(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "data.json", `{"volume": 924.62752781}`)
	schema := filepath.Join(dir, "schema.json")
	// The schema sits inside the data dir; point at the file directly.
	writeFixture(t, dir, "schema.json", `{"volume": "angstrom^3"}`)

	out, err := runCLI(t, "convert", filepath.Join(dir, "data.json"), "--schema", schema)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"volume": {"_quantity_": {"magnitude": 924.62752781, "units": "angstrom^3"}}}`,
		out)
}

func TestHTMLCommand(t *testing.T) {
	dir := fixtureDir(t)
	outFile := filepath.Join(t.TempDir(), "tree.html")
	_, err := runCLI(t, "html", dir, "-o", outFile)
	require.NoError(t, err)
	content, err := os.ReadFile(outFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), "nest-tree")
}

func TestConfigFile(t *testing.T) {
	dir := fixtureDir(t)
	cfg := filepath.Join(t.TempDir(), "nest.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("sep: \"/\"\n"), 0o644))

	out, err := runCLI(t, "flatten", "--config", cfg, dir)
	require.NoError(t, err)
	assert.Contains(t, out, "file1.json/key1")
}
