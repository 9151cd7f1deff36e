package edict

import "fmt"

// CollisionError reports two distinct traversal paths producing the same
// flattened key, or a key that embeds the separator and would therefore
// break the flatten/unflatten round trip.
type CollisionError struct {
	Key string
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("flatten collision at key %q", e.Key)
}

// ConflictError reports a flat mapping in which one key-path is a strict
// prefix of another, so the same position would be both leaf and branch.
type ConflictError struct {
	Key string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("key-path conflict at %q: position is both leaf and branch", e.Key)
}

// MergeConflictError reports differing values at the same key-path when
// no merge policy (Overwrite, AppendKeys) allows resolving them.
type MergeConflictError struct {
	Path string
	Old  any
	New  any
}

func (e *MergeConflictError) Error() string {
	return fmt.Sprintf("different data already exists at %s: old: %v, new: %v", e.Path, e.Old, e.New)
}

// KeyError reports a failed descent into a nested structure. Key is the
// first key that could not be followed and Path the keys successfully
// followed before it.
type KeyError struct {
	Path []string
	Key  string
	// Ambiguous is true when the key landed on a non-mapping value with
	// path segments still remaining, rather than simply being absent.
	Ambiguous bool
}

func (e *KeyError) Error() string {
	if e.Ambiguous {
		return fmt.Sprintf("key %q after %v resolves to a leaf before the path is exhausted", e.Key, e.Path)
	}
	return fmt.Sprintf("key %q not found after %v", e.Key, e.Path)
}
