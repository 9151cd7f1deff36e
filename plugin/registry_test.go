package plugin

import (
	"io"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubParser struct {
	name    string
	pattern string
}

func (p stubParser) Name() string        { return p.name }
func (p stubParser) FilePattern() string { return p.pattern }
func (p stubParser) Parse(r io.Reader, _ Options) (any, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return map[string]any{p.name: strings.TrimSpace(string(b))}, nil
}

type stubDecoder struct {
	name string
	sig  []string
}

func (d stubDecoder) Name() string            { return d.name }
func (d stubDecoder) DictSignature() []string { return d.sig }
func (d stubDecoder) Decode(format string, m map[string]any) (any, error) {
	if format != "json" {
		return nil, &UnsupportedFormatError{Plugin: d.name, Format: format}
	}
	return m[d.sig[0]], nil
}

type stubEncoder struct{}

func (stubEncoder) Name() string       { return "int-encoder" }
func (stubEncoder) Type() reflect.Type { return reflect.TypeOf(int(0)) }
func (stubEncoder) Encode(format string, v any) (any, error) {
	return map[string]any{"_int_": v}, nil
}

func TestRegisterDuplicateName(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.RegisterParser(stubParser{name: "a", pattern: "*.a"}))
	err := r.RegisterParser(stubParser{name: "a", pattern: "*.b"})
	var dup *DuplicateNameError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "a", dup.Name)
	assert.Equal(t, CategoryParser, dup.Category)
}

func TestResolveParserLongestPatternWins(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.RegisterParser(stubParser{name: "csv", pattern: "*.csv"}))
	require.NoError(t, r.RegisterParser(stubParser{name: "literal", pattern: "*.literal.csv"}))

	p, err := r.ResolveParser("data.literal.csv")
	require.NoError(t, err)
	assert.Equal(t, "literal", p.Name())

	p, err = r.ResolveParser("data.csv")
	require.NoError(t, err)
	assert.Equal(t, "csv", p.Name())
}

func TestResolveParserTieGoesToEarliest(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.RegisterParser(stubParser{name: "first", pattern: "*.csv"}))
	require.NoError(t, r.RegisterParser(stubParser{name: "later", pattern: "*.xsv"}))

	p, err := r.ResolveParser("a.csv")
	require.NoError(t, err)
	assert.Equal(t, "first", p.Name())
}

func TestResolveParserNoMatch(t *testing.T) {
	r := NewRegistry()
	_, err := r.ResolveParser("file.unknown")
	var noParser *NoParserError
	require.ErrorAs(t, err, &noParser)
	assert.Equal(t, "file.unknown", noParser.File)
}

func TestUnregisterAll(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.RegisterParser(stubParser{name: "a", pattern: "*.a"}))
	require.NoError(t, r.RegisterDecoder(stubDecoder{name: "d", sig: []string{"_d_"}}))

	r.UnregisterAll(CategoryParser)
	assert.Empty(t, r.Parsers())
	assert.NotNil(t, r.ResolveDecoder(map[string]any{"_d_": 1}, false))

	r.UnregisterAll()
	assert.Nil(t, r.ResolveDecoder(map[string]any{"_d_": 1}, false))
}

func TestResolveDecoder(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.RegisterDecoder(stubDecoder{name: "d", sig: []string{"_d_"}}))

	assert.NotNil(t, r.ResolveDecoder(map[string]any{"_d_": 1}, false))
	// Extra keys only allowed when requested.
	assert.Nil(t, r.ResolveDecoder(map[string]any{"_d_": 1, "x": 2}, false))
	assert.NotNil(t, r.ResolveDecoder(map[string]any{"_d_": 1, "x": 2}, true))
}

func TestResolveDecoderAmbiguousIsNil(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.RegisterDecoder(stubDecoder{name: "d1", sig: []string{"_d_"}}))
	require.NoError(t, r.RegisterDecoder(stubDecoder{name: "d2", sig: []string{"_d_"}}))
	assert.Nil(t, r.ResolveDecoder(map[string]any{"_d_": 1}, false))
}

func TestDecodePassThrough(t *testing.T) {
	r := NewRegistry()
	m := map[string]any{"plain": 1}
	out, err := r.Decode("json", m, false)
	require.NoError(t, err)
	assert.Equal(t, m, out)
}

func TestDecodeDispatch(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.RegisterDecoder(stubDecoder{name: "d", sig: []string{"_d_"}}))

	out, err := r.Decode("json", map[string]any{"_d_": 42}, false)
	require.NoError(t, err)
	assert.Equal(t, 42, out)

	_, err = r.Decode("str", map[string]any{"_d_": 42}, false)
	var unsupported *UnsupportedFormatError
	require.ErrorAs(t, err, &unsupported)
}

func TestEncode(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.RegisterEncoder(stubEncoder{}))

	out, err := r.Encode("json", 7)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"_int_": 7}, out)

	// No encoder for the type: the value passes through.
	out, err = r.Encode("json", "text")
	require.NoError(t, err)
	assert.Equal(t, "text", out)
}

func TestParseFile(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.RegisterParser(stubParser{name: "txt", pattern: "*.txt"}))

	out, err := r.ParseFile("notes.txt", strings.NewReader("hello\n"), nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"txt": "hello"}, out)
}
