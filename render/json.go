package render

import (
	"io"

	gojson "github.com/goccy/go-json"

	"github.com/agentic-research/nest/plugin"
)

// JSONOptions controls ToJSON.
type JSONOptions struct {
	// Indent is the number of spaces per level; 0 writes compact output.
	Indent int
	// Registry supplies the "json" encoders that turn typed leaves into
	// signature mappings (default plugin.Default).
	Registry *plugin.Registry
}

// ToJSON serialises a nested structure as JSON. Typed leaves with a
// registered encoder are replaced by their signature mappings first, so
// the output can be parsed back losslessly. Mapping keys are emitted in
// sorted order.
func ToJSON(w io.Writer, d any, opts JSONOptions) error {
	reg := opts.Registry
	if reg == nil {
		reg = plugin.Default()
	}
	encoded, err := preEncode(reg, d)
	if err != nil {
		return err
	}
	enc := gojson.NewEncoder(w)
	if opts.Indent > 0 {
		indent := make([]byte, opts.Indent)
		for i := range indent {
			indent[i] = ' '
		}
		enc.SetIndent("", string(indent))
	}
	return enc.Encode(encoded)
}

// preEncode rewrites typed leaves through their "json" encoders, top
// down, so freshly encoded payloads are traversed too.
func preEncode(reg *plugin.Registry, v any) (any, error) {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, child := range t {
			enc, err := preEncode(reg, child)
			if err != nil {
				return nil, err
			}
			out[k] = enc
		}
		return out, nil
	case []any:
		out := make([]any, len(t))
		for i, child := range t {
			enc, err := preEncode(reg, child)
			if err != nil {
				return nil, err
			}
			out[i] = enc
		}
		return out, nil
	case nil, bool, string, int, int64, float64:
		return v, nil
	default:
		enc, err := reg.Encode("json", v)
		if err != nil {
			return nil, err
		}
		if _, same := enc.(map[string]any); same {
			return preEncode(reg, enc)
		}
		return enc, nil
	}
}
