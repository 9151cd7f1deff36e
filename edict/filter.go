package edict

import (
	"path"
	"reflect"
	"regexp"
	"strings"
)

// keyMatcher matches a single key against a pattern list under one of
// three modes: exact, glob wildcards, or full regular expressions.
type keyMatcher struct {
	exact    map[string]struct{}
	globs    []string
	regexps  []*regexp.Regexp
	wildcard bool
	regex    bool
}

func newKeyMatcher(patterns []string, cfg *config) (*keyMatcher, error) {
	m := &keyMatcher{wildcard: cfg.useWildcards, regex: cfg.useRegex}
	switch {
	case cfg.useRegex:
		for _, p := range patterns {
			re, err := regexp.Compile("^(?:" + p + ")$")
			if err != nil {
				return nil, err
			}
			m.regexps = append(m.regexps, re)
		}
	case cfg.useWildcards:
		m.globs = patterns
	default:
		m.exact = make(map[string]struct{}, len(patterns))
		for _, p := range patterns {
			m.exact[p] = struct{}{}
		}
	}
	return m, nil
}

func (m *keyMatcher) match(key string) bool {
	switch {
	case m.regex:
		for _, re := range m.regexps {
			if re.MatchString(key) {
				return true
			}
		}
	case m.wildcard:
		for _, g := range m.globs {
			if ok, err := path.Match(g, key); err == nil && ok {
				return true
			}
		}
	default:
		_, ok := m.exact[key]
		return ok
	}
	return false
}

// FilterKeys returns the substructure of d whose key-paths end in a key
// matching any of the patterns. A matched key retains its entire
// subtree. Matching is exact by default, glob-style with Wildcards, or
// regular-expression with Regex. KeepSiblings additionally retains the
// sibling subtrees at each matched level. Branches left with no retained
// descendants are pruned entirely.
func FilterKeys(d any, patterns []string, opts ...Option) (any, error) {
	cfg := newConfig(opts)
	m, err := newKeyMatcher(patterns, &cfg)
	if err != nil {
		return nil, err
	}
	out, _ := filterKeys(d, m, &cfg)
	if out == nil {
		if _, isMap := d.(map[string]any); isMap {
			return map[string]any{}, nil
		}
		if _, isSeq := d.([]any); isSeq {
			return []any{}, nil
		}
		return nil, nil
	}
	return out, nil
}

func filterKeys(d any, m *keyMatcher, cfg *config) (any, bool) {
	switch t := d.(type) {
	case map[string]any:
		matched := false
		if cfg.keepSiblings {
			for k := range t {
				if m.match(k) {
					matched = true
					break
				}
			}
			if matched {
				return maybeCopy(t, cfg.deepCopy), true
			}
		}
		out := make(map[string]any)
		for _, k := range sortedKeys(t) {
			v := t[k]
			if m.match(k) {
				out[k] = maybeCopy(v, cfg.deepCopy)
				matched = true
				continue
			}
			if child, ok := filterKeys(v, m, cfg); ok {
				out[k] = child
				matched = true
			}
		}
		if !matched {
			return nil, false
		}
		return out, true
	case []any:
		out := make([]any, 0, len(t))
		for _, el := range t {
			if child, ok := filterKeys(el, m, cfg); ok {
				out = append(out, child)
			}
		}
		if len(out) == 0 {
			return nil, false
		}
		return out, true
	default:
		return nil, false
	}
}

// Condition is a predicate over a leaf's final key and value.
type Condition func(key string, value any) bool

// FilterKeyVals retains the leaves (with their full key-paths) for which
// the conditions hold: all of them under LogicAnd, any under LogicOr.
// Branches without retained leaves are pruned.
func FilterKeyVals(d any, conds []Condition, logic Logic, opts ...Option) (any, error) {
	cfg := newConfig(opts)
	flat, err := Flatten(d, opts...)
	if err != nil {
		return nil, err
	}
	kept := make(map[string]any)
	for key, value := range flat {
		parts := strings.Split(key, cfg.sep)
		last := parts[len(parts)-1]
		if evalConditions(conds, logic, last, value) {
			kept[key] = value
		}
	}
	if len(kept) == 0 {
		return map[string]any{}, nil
	}
	return Unflatten(kept, opts...)
}

func evalConditions(conds []Condition, logic Logic, key string, value any) bool {
	if len(conds) == 0 {
		return false
	}
	for _, c := range conds {
		ok := c(key, value)
		if logic == LogicOr && ok {
			return true
		}
		if logic == LogicAnd && !ok {
			return false
		}
	}
	return logic == LogicAnd
}

// FilterValues retains leaves whose value equals any of vals, with their
// paths; empty branches are pruned.
func FilterValues(d any, vals []any, opts ...Option) (any, error) {
	return FilterKeyVals(d, []Condition{func(_ string, v any) bool {
		for _, want := range vals {
			if reflect.DeepEqual(v, want) {
				return true
			}
		}
		return false
	}}, LogicOr, opts...)
}

// FilterPaths retains leaves whose key-path contains every key of at
// least one of the given paths (order-independent containment, matching
// the original path-set semantics).
func FilterPaths(d any, paths [][]string, opts ...Option) (any, error) {
	cfg := newConfig(opts)
	flat, err := Flatten(d, opts...)
	if err != nil {
		return nil, err
	}
	kept := make(map[string]any)
	for key, value := range flat {
		segs := strings.Split(key, cfg.sep)
		set := make(map[string]struct{}, len(segs))
		for _, s := range segs {
			set[s] = struct{}{}
		}
		for _, p := range paths {
			all := true
			for _, k := range p {
				if _, ok := set[k]; !ok {
					all = false
					break
				}
			}
			if all {
				kept[key] = value
				break
			}
		}
	}
	if len(kept) == 0 {
		return map[string]any{}, nil
	}
	return Unflatten(kept, opts...)
}

// RemoveKeys deletes the given keys from every key-path, splicing the
// remaining segments back together. A splice that makes two leaves share
// a key-path surfaces as a *CollisionError or *ConflictError rather than
// an overwrite.
func RemoveKeys(d any, keys []string, opts ...Option) (any, error) {
	cfg := newConfig(opts)
	drop := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		drop[k] = struct{}{}
	}
	flat, err := Flatten(d, opts...)
	if err != nil {
		return nil, err
	}
	out := make(map[string]any, len(flat))
	for key, value := range flat {
		segs := strings.Split(key, cfg.sep)
		kept := segs[:0]
		for _, s := range segs {
			if _, ok := drop[s]; !ok {
				kept = append(kept, s)
			}
		}
		newKey := strings.Join(kept, cfg.sep)
		if _, exists := out[newKey]; exists {
			return nil, &CollisionError{Key: newKey}
		}
		out[newKey] = value
	}
	return Unflatten(out, opts...)
}

// RemovePaths prunes every subtree rooted at one of the given keys,
// keeping the surrounding structure (possibly as empty mappings).
func RemovePaths(d any, keys []string, opts ...Option) any {
	cfg := newConfig(opts)
	drop := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		drop[k] = struct{}{}
	}
	return removePaths(d, drop, &cfg)
}

func removePaths(d any, drop map[string]struct{}, cfg *config) any {
	switch t := d.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, v := range t {
			if _, ok := drop[k]; ok {
				continue
			}
			out[k] = removePaths(v, drop, cfg)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, el := range t {
			out[i] = removePaths(el, drop, cfg)
		}
		return out
	default:
		return maybeCopy(d, cfg.deepCopy)
	}
}

// RenameKeys rewrites keys throughout the structure according to keymap.
func RenameKeys(d any, keymap map[string]string, opts ...Option) any {
	cfg := newConfig(opts)
	return renameKeys(d, keymap, &cfg)
}

func renameKeys(d any, keymap map[string]string, cfg *config) any {
	switch t := d.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, v := range t {
			if nk, ok := keymap[k]; ok {
				k = nk
			}
			out[k] = renameKeys(v, keymap, cfg)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, el := range t {
			out[i] = renameKeys(el, keymap, cfg)
		}
		return out
	default:
		return maybeCopy(d, cfg.deepCopy)
	}
}
