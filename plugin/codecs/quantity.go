package codecs

import (
	"fmt"
	"reflect"

	"github.com/agentic-research/nest/plugin"
	"github.com/agentic-research/nest/units"
)

const quantityKey = "_quantity_"

// QuantityCodec round-trips units.Quantity values.
type QuantityCodec struct{}

func (c *QuantityCodec) Name() string            { return "quantity" }
func (c *QuantityCodec) Type() reflect.Type      { return reflect.TypeOf(units.Quantity{}) }
func (c *QuantityCodec) DictSignature() []string { return []string{quantityKey} }

func (c *QuantityCodec) Encode(format string, v any) (any, error) {
	q, ok := v.(units.Quantity)
	if !ok {
		return nil, fmt.Errorf("quantity codec: unexpected type %T", v)
	}
	switch format {
	case "json":
		return map[string]any{
			quantityKey: map[string]any{
				"magnitude": q.Magnitude,
				"units":     q.Units,
			},
		}, nil
	case "str":
		return q.String(), nil
	default:
		return nil, &plugin.UnsupportedFormatError{Plugin: c.Name(), Format: format}
	}
}

func (c *QuantityCodec) Decode(format string, m map[string]any) (any, error) {
	if format != "json" {
		return nil, &plugin.UnsupportedFormatError{Plugin: c.Name(), Format: format}
	}
	inner, ok := m[quantityKey].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("quantity codec: malformed payload %v", m[quantityKey])
	}
	u, ok := inner["units"].(string)
	if !ok {
		return nil, fmt.Errorf("quantity codec: units missing in %v", inner)
	}
	return units.Quantity{Magnitude: inner["magnitude"], Units: u}, nil
}
