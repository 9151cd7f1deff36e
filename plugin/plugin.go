// Package plugin holds the extension points for reading file formats and
// for round-tripping non-JSON-native values through mappings.
//
// Three plugin categories exist. Parsers turn a file's bytes into a
// nested structure and are matched to files by glob pattern, most
// specific pattern first. Decoders recognise mappings carrying a
// signature key set (for example {"_quantity_": ...}) and revive them
// into typed values. Encoders do the reverse for a concrete Go type,
// with per-format output ("json", "str", ...).
package plugin

import (
	"fmt"
	"io"
	"reflect"
)

// Category names a plugin kind inside a Registry.
type Category string

const (
	CategoryParser  Category = "parsers"
	CategoryDecoder Category = "decoders"
	CategoryEncoder Category = "encoders"
)

// Options passes free-form parameters through to a parser, such as CSV
// delimiters. Parsers ignore keys they do not understand.
type Options map[string]any

// Parser reads one file format into a nested structure
// (map[string]any | []any | scalars).
type Parser interface {
	// Name identifies the plugin uniquely within its category.
	Name() string
	// FilePattern is the glob a file name must match, e.g. "*.json" or
	// "*.literal.csv". Longer patterns beat shorter ones when several
	// match.
	FilePattern() string
	Parse(r io.Reader, opts Options) (any, error)
}

// Decoder revives mappings that carry its signature keys into a typed
// value. Decode receives the wire format the mapping came from and may
// reject formats it does not support with *UnsupportedFormatError.
type Decoder interface {
	Name() string
	// DictSignature lists the keys whose presence marks an encoded value.
	DictSignature() []string
	Decode(format string, m map[string]any) (any, error)
}

// Encoder serialises values of exactly Type() into format-specific
// representations.
type Encoder interface {
	Name() string
	Type() reflect.Type
	Encode(format string, v any) (any, error)
}

// DuplicateNameError reports a second registration under a name already
// taken in the category.
type DuplicateNameError struct {
	Name     string
	Category Category
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("plugin %q already registered in category %s", e.Name, e.Category)
}

// NoParserError reports a file name no registered parser pattern
// matches.
type NoParserError struct {
	File string
}

func (e *NoParserError) Error() string {
	return fmt.Sprintf("no parser plugin matches file %q", e.File)
}

// UnsupportedFormatError reports an Encode or Decode dispatch to a
// format the plugin does not implement.
type UnsupportedFormatError struct {
	Plugin string
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("plugin %q does not support format %q", e.Plugin, e.Format)
}
