package parsers

import (
	"io"

	"github.com/ohler55/ojg/oj"

	"github.com/agentic-research/nest/plugin"
)

// JSON parses *.json files. When attached to a registry it runs the
// registered decoders over every parsed mapping, so signature objects
// come back as typed values.
type JSON struct {
	Registry *plugin.Registry
}

func (p *JSON) Name() string        { return "json" }
func (p *JSON) FilePattern() string { return "*.json" }

func (p *JSON) Parse(r io.Reader, _ plugin.Options) (any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	val, err := oj.Parse(data)
	if err != nil {
		return nil, err
	}
	if p.Registry == nil {
		return val, nil
	}
	return decodeTree(p.Registry, "json", val)
}
