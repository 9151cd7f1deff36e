package edict

import (
	"fmt"
	"strconv"
)

// Indexes descends into d along the given key-path and returns the value
// there. Keys index into mappings; when a list-of-dicts is met (and the
// option is enabled) the key selects the element carrying it, otherwise a
// decimal key indexes into the list positionally. A missing key yields a
// *KeyError carrying the path walked so far.
func Indexes(d any, keys []string, opts ...Option) (any, error) {
	cfg := newConfig(opts)
	cur := d
	for i, k := range keys {
		switch t := cur.(type) {
		case map[string]any:
			v, ok := t[k]
			if !ok {
				return nil, &KeyError{Path: keys[:i], Key: k}
			}
			cur = v
		case []any:
			if cfg.listOfDicts && IsListOfDicts(t) {
				found := false
				for _, el := range t {
					name, val := singletonKey(el.(map[string]any))
					if name == k {
						cur = val
						found = true
						break
					}
				}
				if found {
					continue
				}
				return nil, &KeyError{Path: keys[:i], Key: k}
			}
			idx, err := strconv.Atoi(k)
			if err != nil || idx < 0 || idx >= len(t) {
				return nil, &KeyError{Path: keys[:i], Key: k}
			}
			cur = t[idx]
		default:
			return nil, &KeyError{Path: keys[:i], Key: k, Ambiguous: true}
		}
	}
	return maybeCopy(cur, cfg.deepCopy), nil
}

// Extract locates a key occurring exactly once anywhere in d and returns
// the key-path to it and its value. Zero or multiple occurrences yield a
// *KeyError (Ambiguous set when multiple).
func Extract(d any, key string, opts ...Option) ([]string, any, error) {
	cfg := newConfig(opts)
	var (
		foundPath []string
		foundVal  any
		count     int
	)
	var walk func(v any, path []string)
	walk = func(v any, path []string) {
		switch t := v.(type) {
		case map[string]any:
			for _, k := range sortedKeys(t) {
				child := t[k]
				if k == key {
					count++
					if count == 1 {
						foundPath = append([]string(nil), path...)
						foundVal = child
					}
					continue
				}
				walk(child, append(path, k))
			}
		case []any:
			for i, el := range t {
				walk(el, append(path, fmt.Sprint(i)))
			}
		}
	}
	walk(d, nil)
	switch count {
	case 1:
		return foundPath, maybeCopy(foundVal, cfg.deepCopy), nil
	case 0:
		return nil, nil, &KeyError{Key: key}
	default:
		return nil, nil, &KeyError{Key: key, Ambiguous: true}
	}
}
