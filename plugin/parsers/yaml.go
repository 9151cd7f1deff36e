package parsers

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/agentic-research/nest/plugin"
)

// YAML parses YAML documents. It is registered twice, once per common
// extension (*.yaml and *.yml).
type YAML struct {
	name    string
	pattern string
}

func (p *YAML) Name() string        { return p.name }
func (p *YAML) FilePattern() string { return p.pattern }

func (p *YAML) Parse(r io.Reader, _ plugin.Options) (any, error) {
	var out any
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&out); err != nil {
		if err == io.EOF {
			return map[string]any{}, nil
		}
		return nil, err
	}
	return normalizeYAML(out), nil
}

// normalizeYAML rewrites yaml.v3 output so mappings are map[string]any
// all the way down. Non-string keys are stringified.
func normalizeYAML(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, child := range t {
			t[k] = normalizeYAML(child)
		}
		return t
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, child := range t {
			out[fmt.Sprint(k)] = normalizeYAML(child)
		}
		return out
	case []any:
		for i, child := range t {
			t[i] = normalizeYAML(child)
		}
		return t
	default:
		return v
	}
}
