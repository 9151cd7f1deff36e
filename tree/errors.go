package tree

import (
	"fmt"
	"strings"
)

// KeyError reports a Get descent that could not be completed. Path holds
// the keys followed successfully and Key the one that failed. Ambiguous
// marks a descent that landed on a non-mapping leaf with keys still
// remaining, as opposed to a plainly missing key.
type KeyError struct {
	Path      []string
	Key       string
	Ambiguous bool
}

func (e *KeyError) Error() string {
	at := strings.Join(e.Path, "/")
	if e.Ambiguous {
		return fmt.Sprintf("key %q under %q lands on a non-mapping value", e.Key, at)
	}
	return fmt.Sprintf("key %q not found under %q", e.Key, at)
}

// ParseError marks a file whose parser failed while the tree's policy is
// ParseErrorsCollect. It is left in place of the parsed value so the
// rest of the tree stays usable.
type ParseError struct {
	File string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.File, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
