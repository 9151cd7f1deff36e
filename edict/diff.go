package edict

import (
	"reflect"
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// Change records one differing leaf between two structures. InA/InB say
// whether the key-path existed on each side; A and B carry the values
// where present.
type Change struct {
	A   any
	B   any
	InA bool
	InB bool
}

// Diff compares two nested structures leaf by leaf and returns a nested
// mapping with a Change at every key-path where they disagree. Numeric
// leaves (and slices of numerics) equal within the configured relative
// and absolute tolerances are treated as equal; integers compare against
// floats by value. An empty result means the structures match.
func Diff(a, b any, opts ...Option) (map[string]any, error) {
	cfg := newConfig(opts)
	flatA, err := Flatten(a, opts...)
	if err != nil {
		return nil, err
	}
	flatB, err := Flatten(b, opts...)
	if err != nil {
		return nil, err
	}

	changes := make(map[string]any)
	for key, va := range flatA {
		vb, ok := flatB[key]
		if !ok {
			changes[key] = Change{A: va, InA: true}
			continue
		}
		if !leafEqual(va, vb, cfg.rtol, cfg.atol) {
			changes[key] = Change{A: va, B: vb, InA: true, InB: true}
		}
	}
	for key, vb := range flatB {
		if _, ok := flatA[key]; !ok {
			changes[key] = Change{B: vb, InB: true}
		}
	}
	if len(changes) == 0 {
		return map[string]any{}, nil
	}
	// Nest the flat change set back into the shape of the inputs. Change
	// leaves never collide with branch prefixes on the same side, but a
	// path can be a leaf in one input and a branch in the other; keep the
	// flat key for those.
	nested, err := Unflatten(changes, opts...)
	if err == nil {
		if m, ok := nested.(map[string]any); ok {
			return m, nil
		}
	}
	return changes, nil
}

func leafEqual(a, b any, rtol, atol float64) bool {
	if fa, ok := toFloat(a); ok {
		if fb, ok := toFloat(b); ok {
			if rtol == 0 && atol == 0 {
				return fa == fb
			}
			return cmp.Equal(fa, fb, cmpopts.EquateApprox(rtol, atol))
		}
		return false
	}
	if sa, ok := toFloats(a); ok {
		if sb, ok := toFloats(b); ok {
			if rtol == 0 && atol == 0 {
				return cmp.Equal(sa, sb)
			}
			return cmp.Equal(sa, sb, cmpopts.EquateApprox(rtol, atol))
		}
	}
	if sa, ok := a.(string); ok {
		sb, ok := b.(string)
		return ok && strings.Compare(sa, sb) == 0
	}
	// Leaves may be opaque decoded values (*big.Rat, time.Time, parse-error
	// markers) whose unexported fields go-cmp refuses to walk.
	return reflect.DeepEqual(a, b)
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case int32:
		return float64(t), true
	case uint64:
		return float64(t), true
	default:
		return 0, false
	}
}

func toFloats(v any) ([]float64, bool) {
	s, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]float64, len(s))
	for i, el := range s {
		f, ok := toFloat(el)
		if !ok {
			return nil, false
		}
		out[i] = f
	}
	return out, true
}
