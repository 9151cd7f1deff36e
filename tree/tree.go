// Package tree exposes a directory of heterogeneous data files as one
// lazily-materialized nested mapping.
//
// Every node starts unscanned. Listing a directory scans it (children
// are named but nothing is read); accessing a file materializes it
// (its parser runs once and the value is cached). Repeated access
// returns the identical cached value. The source tree is assumed
// immutable while a Tree is alive; call Rescan after external changes.
// A Tree is not safe for concurrent use.
package tree

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/agentic-research/nest/edict"
	"github.com/agentic-research/nest/internal/natsort"
	"github.com/agentic-research/nest/plugin"
)

type node struct {
	path     Path
	scanned  bool
	order    []string
	children map[string]*node

	materialized bool
	value        any
}

// state is shared between a Tree and the subtree handles derived from
// it.
type state struct {
	cfg  treeConfig
	errs []*ParseError
}

// Tree is a handle onto one node of the lazy structure. The root handle
// comes from New; Child derives handles further down without
// materializing anything.
type Tree struct {
	st   *state
	node *node
}

// New builds a Tree over root and scans its top level.
func New(root Path, opts ...Option) (*Tree, error) {
	cfg := treeConfig{
		registry: plugin.Default(),
		policy:   ParseErrorsRaise,
		logger:   slog.Default(),
	}
	for _, o := range opts {
		o(&cfg)
	}
	t := &Tree{
		st:   &state{cfg: cfg},
		node: &node{path: root},
	}
	if err := t.scan(t.node); err != nil {
		return nil, err
	}
	return t, nil
}

// Name returns the base name of this node.
func (t *Tree) Name() string { return t.node.path.Name() }

// IsDir reports whether this node lists children rather than parsing a
// file.
func (t *Tree) IsDir() bool { return t.node.path.IsDir() }

// Keys lists the child names of a directory node without materializing
// anything. On a file node the file is materialized and the top-level
// mapping keys are returned (an empty list for non-mapping values).
func (t *Tree) Keys() ([]string, error) {
	if t.node.path.IsDir() {
		if err := t.scan(t.node); err != nil {
			return nil, err
		}
		return natsort.Sorted(t.node.order), nil
	}
	v, err := t.materialize(t.node)
	if err != nil {
		return nil, err
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	natsort.Strings(keys)
	return keys, nil
}

// Len returns the number of keys at this node.
func (t *Tree) Len() (int, error) {
	keys, err := t.Keys()
	if err != nil {
		return 0, err
	}
	return len(keys), nil
}

// Child returns a handle on a direct child of a directory node. Nothing
// is materialized.
func (t *Tree) Child(name string) (*Tree, error) {
	if !t.node.path.IsDir() {
		return nil, &KeyError{Key: name, Ambiguous: true}
	}
	if err := t.scan(t.node); err != nil {
		return nil, err
	}
	child, ok := t.node.children[name]
	if !ok {
		return nil, &KeyError{Key: name}
	}
	return &Tree{st: t.st, node: child}, nil
}

// Get descends along keys, materializing only the files on the path.
// Directory levels consume one key per child name; once a file is
// reached the remaining keys index into its parsed value (mapping keys,
// list positions, and named list-of-dicts elements). The result is a
// *Tree handle when the descent stops on a directory, otherwise the
// parsed (sub)value.
func (t *Tree) Get(keys ...string) (any, error) {
	cur := t.node
	for i, k := range keys {
		if !cur.path.IsDir() {
			return t.getInValue(cur, keys, i)
		}
		if err := t.scan(cur); err != nil {
			return nil, err
		}
		child, ok := cur.children[k]
		if !ok {
			return nil, &KeyError{Path: keys[:i], Key: k}
		}
		cur = child
	}
	if cur.path.IsDir() {
		if err := t.scan(cur); err != nil {
			return nil, err
		}
		return &Tree{st: t.st, node: cur}, nil
	}
	return t.materialize(cur)
}

// getInValue materializes a file node and indexes the remaining keys
// into its parsed value.
func (t *Tree) getInValue(n *node, keys []string, i int) (any, error) {
	v, err := t.materialize(n)
	if err != nil {
		return nil, err
	}
	out, err := edict.Indexes(v, keys[i:], edict.ListOfDicts())
	if err != nil {
		var keyErr *edict.KeyError
		if errors.As(err, &keyErr) {
			full := append(append([]string(nil), keys[:i]...), keyErr.Path...)
			return nil, &KeyError{Path: full, Key: keyErr.Key, Ambiguous: keyErr.Ambiguous}
		}
		return nil, err
	}
	return out, nil
}

// ToDict materializes everything at and below this node into plain
// nested data. With deepCopy the result shares nothing with the internal
// cache.
func (t *Tree) ToDict(deepCopy bool) (any, error) {
	v, err := t.toDict(t.node)
	if err != nil {
		return nil, err
	}
	if deepCopy {
		return edict.Copy(v), nil
	}
	return v, nil
}

func (t *Tree) toDict(n *node) (any, error) {
	if !n.path.IsDir() {
		return t.materialize(n)
	}
	if err := t.scan(n); err != nil {
		return nil, err
	}
	out := make(map[string]any, len(n.order))
	for _, name := range n.order {
		child, err := t.toDict(n.children[name])
		if err != nil {
			return nil, err
		}
		out[name] = child
	}
	return out, nil
}

// Errs returns the parse failures collected so far under the
// ParseErrorsCollect policy, in materialization order.
func (t *Tree) Errs() []*ParseError {
	return append([]*ParseError(nil), t.st.errs...)
}

// Rescan drops all scanned listings, cached values and collected errors
// below this node, then scans its top level again.
func (t *Tree) Rescan() error {
	reset(t.node)
	t.st.errs = nil
	return t.scan(t.node)
}

func reset(n *node) {
	for _, child := range n.children {
		reset(child)
	}
	n.scanned = false
	n.children = nil
	n.order = nil
	n.materialized = false
	n.value = nil
}

func (t *Tree) scan(n *node) error {
	if n.scanned || !n.path.IsDir() {
		return nil
	}
	entries, err := n.path.List()
	if err != nil {
		return fmt.Errorf("scan %s: %w", n.path.Name(), err)
	}
	n.children = make(map[string]*node, len(entries))
	n.order = make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if t.ignored(name) {
			continue
		}
		if t.st.cfg.skipUnknown && !entry.IsDir() {
			if _, err := t.st.cfg.registry.ResolveParser(name); err != nil {
				t.st.cfg.logger.Debug("skipping unparseable file", "file", name)
				continue
			}
		}
		n.children[name] = &node{path: entry}
		n.order = append(n.order, name)
	}
	n.scanned = true
	t.st.cfg.logger.Debug("scanned directory",
		"dir", n.path.Name(), "children", len(n.order))
	return nil
}

func (t *Tree) ignored(name string) bool {
	for _, re := range t.st.cfg.ignore {
		if re.MatchString(name) {
			return true
		}
	}
	return false
}

func (t *Tree) materialize(n *node) (any, error) {
	if n.materialized {
		return n.value, nil
	}
	name := n.path.Name()
	src, err := n.path.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer src.Close()

	v, err := t.st.cfg.registry.ParseFile(name, src, t.st.cfg.parserOpts)
	if err != nil {
		var noParser *plugin.NoParserError
		if errors.As(err, &noParser) {
			// Registry misconfiguration surfaces regardless of policy.
			return nil, err
		}
		switch t.st.cfg.policy {
		case ParseErrorsIgnore:
			t.st.cfg.logger.Warn("ignoring parse failure", "file", name, "err", err)
			v = map[string]any{}
		case ParseErrorsCollect:
			pe := &ParseError{File: name, Err: err}
			t.st.errs = append(t.st.errs, pe)
			t.st.cfg.logger.Warn("collected parse failure", "file", name, "err", err)
			v = pe
		default:
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
	}
	n.value = v
	n.materialized = true
	t.st.cfg.logger.Debug("materialized file", "file", name)
	return v, nil
}
