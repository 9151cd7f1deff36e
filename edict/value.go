package edict

// Copy returns a deep copy of a nested structure. Values other than
// map[string]any and []any are assumed immutable and shared.
func Copy(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = Copy(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = Copy(val)
		}
		return out
	default:
		return v
	}
}

// IsListOfDicts reports whether v is a non-empty sequence whose elements
// are all single-key mappings with pairwise-distinct keys — the tolerated
// structural variant for named siblings inside a list.
func IsListOfDicts(v any) bool {
	seq, ok := v.([]any)
	if !ok || len(seq) == 0 {
		return false
	}
	seen := make(map[string]struct{}, len(seq))
	for _, el := range seq {
		m, ok := el.(map[string]any)
		if !ok || len(m) != 1 {
			return false
		}
		for k := range m {
			if _, dup := seen[k]; dup {
				return false
			}
			seen[k] = struct{}{}
		}
	}
	return true
}

func singletonKey(m map[string]any) (string, any) {
	for k, v := range m {
		return k, v
	}
	return "", nil
}

func maybeCopy(v any, deep bool) any {
	if deep {
		return Copy(v)
	}
	return v
}
