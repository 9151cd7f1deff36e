package codecs

import (
	"fmt"
	"reflect"
	"time"

	"github.com/agentic-research/nest/plugin"
)

const timeKey = "_datetime_"

// TimeCodec round-trips time.Time values as RFC3339Nano strings.
type TimeCodec struct{}

func (c *TimeCodec) Name() string            { return "datetime" }
func (c *TimeCodec) Type() reflect.Type      { return reflect.TypeOf(time.Time{}) }
func (c *TimeCodec) DictSignature() []string { return []string{timeKey} }

func (c *TimeCodec) Encode(format string, v any) (any, error) {
	ts, ok := v.(time.Time)
	if !ok {
		return nil, fmt.Errorf("datetime codec: unexpected type %T", v)
	}
	switch format {
	case "json":
		return map[string]any{timeKey: ts.Format(time.RFC3339Nano)}, nil
	case "str":
		return ts.Format(time.RFC3339Nano), nil
	default:
		return nil, &plugin.UnsupportedFormatError{Plugin: c.Name(), Format: format}
	}
}

func (c *TimeCodec) Decode(format string, m map[string]any) (any, error) {
	if format != "json" {
		return nil, &plugin.UnsupportedFormatError{Plugin: c.Name(), Format: format}
	}
	s, ok := m[timeKey].(string)
	if !ok {
		return nil, fmt.Errorf("datetime codec: malformed payload %v", m[timeKey])
	}
	ts, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return nil, err
	}
	return ts, nil
}
