// Package edict provides a structural algebra over nested mapping and
// sequence values, as produced by parsing JSON, YAML, CSV and similar
// formats into plain Go data (map[string]any, []any, scalars).
//
// The unit of identity throughout is the key-path: the ordered sequence
// of keys from the root of a structure to a leaf. Flatten turns a nested
// structure into a flat mapping keyed by separator-joined key-paths, and
// Unflatten inverts it; the two form a round trip for any structure whose
// joined key-paths are unambiguous. Merge, Diff and the Filter family all
// operate in terms of key-paths and never mutate their inputs.
//
// Two structural variants are recognised:
//
//   - mappings (map[string]any), the normal case, and
//   - "list of dicts": a []any whose elements are all single-key
//     mappings with pairwise-distinct keys. When enabled via the
//     ListOfDicts option, such a sequence is treated as a set of
//     named siblings rather than a positional list.
//
// All functions share unmodified substructure with their inputs by
// default; pass DeepCopy to force fully independent output.
package edict
