package edict

import (
	"sort"
	"strings"

	"github.com/agentic-research/nest/internal/natsort"
)

// Flatten converts a nested structure into a flat mapping from
// separator-joined key-path to leaf value. A value is a leaf when it is
// not a mapping, is an empty mapping, or — with ListOfDicts — a sequence
// of single-key mappings, in which case each element's key becomes a
// path segment.
//
// The joined keys are in bijection with the leaves of the input: a key
// that already contains the separator, or two traversal paths producing
// the same joined key, yield a *CollisionError rather than a silent
// overwrite.
func Flatten(d any, opts ...Option) (map[string]any, error) {
	cfg := newConfig(opts)
	out := make(map[string]any)
	if err := flattenInto(out, nil, d, &cfg); err != nil {
		return nil, err
	}
	return out, nil
}

func flattenInto(out map[string]any, prefix []string, v any, cfg *config) error {
	switch t := v.(type) {
	case map[string]any:
		if len(t) == 0 {
			return putFlat(out, prefix, t, cfg)
		}
		for _, k := range sortedKeys(t) {
			if strings.Contains(k, cfg.sep) {
				return &CollisionError{Key: strings.Join(append(prefix, k), cfg.sep)}
			}
			if err := flattenInto(out, append(prefix, k), t[k], cfg); err != nil {
				return err
			}
		}
		return nil
	case []any:
		if cfg.listOfDicts && IsListOfDicts(t) {
			for _, el := range t {
				k, val := singletonKey(el.(map[string]any))
				if strings.Contains(k, cfg.sep) {
					return &CollisionError{Key: strings.Join(append(prefix, k), cfg.sep)}
				}
				if err := flattenInto(out, append(prefix, k), val, cfg); err != nil {
					return err
				}
			}
			return nil
		}
		return putFlat(out, prefix, t, cfg)
	default:
		return putFlat(out, prefix, v, cfg)
	}
}

func putFlat(out map[string]any, prefix []string, v any, cfg *config) error {
	key := strings.Join(prefix, cfg.sep)
	if _, exists := out[key]; exists {
		return &CollisionError{Key: key}
	}
	out[key] = maybeCopy(v, cfg.deepCopy)
	return nil
}

// Unflatten rebuilds a nested structure from a flat mapping produced by
// Flatten. A flat key that is a strict prefix of another (so the same
// position would hold both a leaf and a branch) yields a *ConflictError.
func Unflatten(flat map[string]any, opts ...Option) (any, error) {
	cfg := newConfig(opts)
	if root, ok := flat[""]; ok {
		if len(flat) != 1 {
			return nil, &ConflictError{Key: ""}
		}
		return maybeCopy(root, cfg.deepCopy), nil
	}
	result := make(map[string]any)
	for _, key := range sortedFlatKeys(flat) {
		parts := strings.Split(key, cfg.sep)
		cur := result
		for _, part := range parts[:len(parts)-1] {
			next, ok := cur[part]
			if !ok {
				m := make(map[string]any)
				cur[part] = m
				cur = m
				continue
			}
			m, ok := next.(map[string]any)
			if !ok {
				return nil, &ConflictError{Key: key}
			}
			cur = m
		}
		last := parts[len(parts)-1]
		if _, exists := cur[last]; exists {
			return nil, &ConflictError{Key: key}
		}
		cur[last] = maybeCopy(flat[key], cfg.deepCopy)
	}
	return result, nil
}

// FlattenND flattens all but the last `levels` nesting levels: the result
// maps shortened key-paths to still-nested remainders. levels == 0 is
// plain Flatten.
func FlattenND(d any, levels int, opts ...Option) (map[string]any, error) {
	cfg := newConfig(opts)
	flat, err := Flatten(d, opts...)
	if err != nil {
		return nil, err
	}
	if levels <= 0 {
		return flat, nil
	}
	out := make(map[string]any)
	for key, value := range flat {
		parts := strings.Split(key, cfg.sep)
		cut := len(parts) - levels
		if cut < 0 {
			cut = 0
		}
		head := strings.Join(parts[:cut], cfg.sep)
		tail := strings.Join(parts[cut:], cfg.sep)

		sub, err := Unflatten(map[string]any{tail: value}, opts...)
		if err != nil {
			return nil, err
		}
		if existing, ok := out[head]; ok {
			merged, err := Merge([]any{existing, sub}, opts...)
			if err != nil {
				return nil, err
			}
			out[head] = merged
		} else {
			out[head] = sub
		}
	}
	return out, nil
}

// Flatten2D is FlattenND with one unflattened level: key-paths of depth
// n-1 mapping to the innermost mappings.
func Flatten2D(d any, opts ...Option) (map[string]any, error) {
	return FlattenND(d, 1, opts...)
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	natsort.Strings(keys)
	return keys
}

// sortedFlatKeys orders flat keys lexicographically so Unflatten error
// reporting is deterministic regardless of map iteration order.
func sortedFlatKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
