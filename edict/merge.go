package edict

import (
	"reflect"
	"strings"
)

// Merge combines nested structures left to right into a single one.
// Identical key-paths with equal values unify silently; differing values
// yield a *MergeConflictError unless a policy option is set:
//
//   - Overwrite: the last source wins;
//   - AppendKeys: the value becomes a sequence accumulating all distinct
//     values in source order (two sequences concatenate).
//
// With ListOfDicts, sequences of single-key mappings merge by element
// key rather than by position.
func Merge(structs []any, opts ...Option) (any, error) {
	cfg := newConfig(opts)
	if len(structs) == 0 {
		return map[string]any{}, nil
	}
	out := Copy(structs[0])
	for _, s := range structs[1:] {
		merged, err := mergeValue(out, s, nil, &cfg)
		if err != nil {
			return nil, err
		}
		out = merged
	}
	return out, nil
}

func mergeValue(a, b any, path []string, cfg *config) (any, error) {
	am, aIsMap := a.(map[string]any)
	bm, bIsMap := b.(map[string]any)
	if aIsMap && bIsMap {
		for _, k := range sortedKeys(bm) {
			bv := bm[k]
			av, ok := am[k]
			if !ok {
				am[k] = Copy(bv)
				continue
			}
			merged, err := mergeValue(av, bv, append(path, k), cfg)
			if err != nil {
				return nil, err
			}
			am[k] = merged
		}
		return am, nil
	}

	if cfg.listOfDicts && IsListOfDicts(a) && IsListOfDicts(b) {
		return mergeListOfDicts(a.([]any), b.([]any), path, cfg)
	}

	if reflect.DeepEqual(a, b) {
		return a, nil
	}

	switch {
	case cfg.appendKeys:
		return appendValue(a, b), nil
	case cfg.overwrite:
		return Copy(b), nil
	default:
		return nil, &MergeConflictError{
			Path: strings.Join(path, DefaultSep),
			Old:  a,
			New:  b,
		}
	}
}

// appendValue accumulates b onto a in source order, skipping values
// already present.
func appendValue(a, b any) any {
	as, aIsSeq := a.([]any)
	if !aIsSeq {
		as = []any{a}
	}
	bs, bIsSeq := b.([]any)
	if !bIsSeq {
		bs = []any{b}
	}
	out := make([]any, len(as), len(as)+len(bs))
	copy(out, as)
	for _, bv := range bs {
		dup := false
		for _, av := range out {
			if reflect.DeepEqual(av, bv) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, Copy(bv))
		}
	}
	return out
}

func mergeListOfDicts(a, b []any, path []string, cfg *config) (any, error) {
	out := make([]any, len(a))
	index := make(map[string]int, len(a))
	for i, el := range a {
		k, v := singletonKey(el.(map[string]any))
		out[i] = map[string]any{k: v}
		index[k] = i
	}
	for _, el := range b {
		k, bv := singletonKey(el.(map[string]any))
		i, ok := index[k]
		if !ok {
			index[k] = len(out)
			out = append(out, map[string]any{k: Copy(bv)})
			continue
		}
		av, _ := singletonKey(out[i].(map[string]any))
		merged, err := mergeValue(out[i].(map[string]any)[av], bv, append(path, k), cfg)
		if err != nil {
			return nil, err
		}
		out[i] = map[string]any{k: merged}
	}
	return out, nil
}
