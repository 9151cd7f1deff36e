package codecs

import (
	"fmt"
	"math/big"
	"reflect"

	"github.com/agentic-research/nest/plugin"
)

const rationalKey = "_rational_"

// RationalCodec round-trips *big.Rat values as [numerator, denominator]
// pairs.
type RationalCodec struct{}

func (c *RationalCodec) Name() string            { return "rational" }
func (c *RationalCodec) Type() reflect.Type      { return reflect.TypeOf((*big.Rat)(nil)) }
func (c *RationalCodec) DictSignature() []string { return []string{rationalKey} }

func (c *RationalCodec) Encode(format string, v any) (any, error) {
	r, ok := v.(*big.Rat)
	if !ok {
		return nil, fmt.Errorf("rational codec: unexpected type %T", v)
	}
	switch format {
	case "json":
		return map[string]any{
			rationalKey: []any{r.Num().Int64(), r.Denom().Int64()},
		}, nil
	case "str":
		return r.RatString(), nil
	default:
		return nil, &plugin.UnsupportedFormatError{Plugin: c.Name(), Format: format}
	}
}

func (c *RationalCodec) Decode(format string, m map[string]any) (any, error) {
	if format != "json" {
		return nil, &plugin.UnsupportedFormatError{Plugin: c.Name(), Format: format}
	}
	pair, ok := m[rationalKey].([]any)
	if !ok || len(pair) != 2 {
		return nil, fmt.Errorf("rational codec: malformed payload %v", m[rationalKey])
	}
	num, okN := toInt64(pair[0])
	den, okD := toInt64(pair[1])
	if !okN || !okD || den == 0 {
		return nil, fmt.Errorf("rational codec: bad pair %v", pair)
	}
	return big.NewRat(num, den), nil
}

func toInt64(v any) (int64, bool) {
	switch t := v.(type) {
	case int64:
		return t, true
	case int:
		return int64(t), true
	case float64:
		return int64(t), t == float64(int64(t))
	default:
		return 0, false
	}
}
