// Package parsers provides the builtin file-format parser plugins:
// JSON, YAML, HCL, CSV (raw and literal-coerced), key-pair text and
// SQLite databases.
package parsers

import (
	"strings"

	"github.com/spf13/cast"

	"github.com/agentic-research/nest/plugin"
)

// RegisterAll registers every builtin parser on r.
func RegisterAll(r *plugin.Registry) error {
	all := []plugin.Parser{
		&JSON{Registry: r},
		&YAML{name: "yaml", pattern: "*.yaml"},
		&YAML{name: "yml", pattern: "*.yml"},
		&HCL{},
		&CSV{},
		&CSVLiteral{},
		&KeyPair{},
		&SQLite{},
	}
	for _, p := range all {
		if err := r.RegisterParser(p); err != nil {
			return err
		}
	}
	return nil
}

// decodeTree applies registry decoders bottom-up over a freshly parsed
// structure, reviving signature mappings into typed values.
func decodeTree(r *plugin.Registry, format string, v any) (any, error) {
	switch t := v.(type) {
	case map[string]any:
		for k, child := range t {
			dec, err := decodeTree(r, format, child)
			if err != nil {
				return nil, err
			}
			t[k] = dec
		}
		return r.Decode(format, t, false)
	case []any:
		for i, child := range t {
			dec, err := decodeTree(r, format, child)
			if err != nil {
				return nil, err
			}
			t[i] = dec
		}
		return t, nil
	default:
		return v, nil
	}
}

// coerceScalar turns a raw text token into int64, float64, bool or a
// quote-stripped string, in that order of preference.
func coerceScalar(tok string) any {
	tok = strings.TrimSpace(tok)
	if i, err := cast.ToInt64E(tok); err == nil {
		return i
	}
	if f, err := cast.ToFloat64E(tok); err == nil {
		return f
	}
	switch tok {
	case "true", "True":
		return true
	case "false", "False":
		return false
	}
	if len(tok) >= 2 {
		if (tok[0] == '"' && tok[len(tok)-1] == '"') || (tok[0] == '\'' && tok[len(tok)-1] == '\'') {
			return tok[1 : len(tok)-1]
		}
	}
	return tok
}
