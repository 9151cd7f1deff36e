package units

import (
	"path"
	"sort"
	"strings"

	"github.com/agentic-research/nest/edict"
)

// SchemaOptions adjusts ApplyUnitSchema key-path matching.
type SchemaOptions struct {
	// Sep joins key-path segments when flattening; defaults to
	// edict.DefaultSep.
	Sep string
	// Wildcards enables glob-style matching of schema segments against
	// data segments.
	Wildcards bool
	// ListOfDicts treats sequences of single-key mappings as named
	// siblings.
	ListOfDicts bool
}

func (o SchemaOptions) edictOpts() []edict.Option {
	opts := []edict.Option{}
	if o.Sep != "" {
		opts = append(opts, edict.Sep(o.Sep))
	}
	if o.ListOfDicts {
		opts = append(opts, edict.ListOfDicts())
	}
	return opts
}

func (o SchemaOptions) sep() string {
	if o.Sep != "" {
		return o.Sep
	}
	return edict.DefaultSep
}

// ApplyUnitSchema wraps the leaves of data in Quantities according to
// schema. The schema mirrors a suffix of the data's key-paths: each data
// leaf whose key-path ends in a schema key-path (the longest such match
// wins) takes that entry's unit string. A leaf that is already a
// Quantity is converted to the schema's unit instead of wrapped, using
// eng; dimension mismatches surface as *IncompatibleUnitError.
func ApplyUnitSchema(data, schema any, eng Engine, opts SchemaOptions) (any, error) {
	eopts := opts.edictOpts()
	flatData, err := edict.Flatten(data, eopts...)
	if err != nil {
		return nil, err
	}
	flatSchema, err := edict.Flatten(schema, eopts...)
	if err != nil {
		return nil, err
	}
	sep := opts.sep()

	keys := make([]string, 0, len(flatSchema))
	for k := range flatSchema {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	entries := make([]schemaEntry, 0, len(keys))
	for _, k := range keys {
		unit, ok := flatSchema[k].(string)
		if !ok {
			continue
		}
		entries = append(entries, schemaEntry{segs: strings.Split(k, sep), unit: unit})
	}

	out := make(map[string]any, len(flatData))
	for key, value := range flatData {
		segs := strings.Split(key, sep)
		unit, ok := bestSuffix(segs, entries, opts.Wildcards)
		if !ok {
			out[key] = value
			continue
		}
		switch q := value.(type) {
		case Quantity:
			conv, err := q.To(eng, unit)
			if err != nil {
				return nil, err
			}
			out[key] = conv
		default:
			out[key] = Quantity{Magnitude: value, Units: unit}
		}
	}
	return edict.Unflatten(out, eopts...)
}

type schemaEntry struct {
	segs []string
	unit string
}

// bestSuffix picks the unit of the longest schema path matching the end
// of segs. Entries arrive sorted by key-path, so equal-length matches
// break ties toward the lexicographically first schema key.
func bestSuffix(segs []string, entries []schemaEntry, wildcards bool) (string, bool) {
	best := -1
	unit := ""
	for _, e := range entries {
		if len(e.segs) > len(segs) || len(e.segs) <= best {
			continue
		}
		tail := segs[len(segs)-len(e.segs):]
		if suffixMatch(tail, e.segs, wildcards) {
			best = len(e.segs)
			unit = e.unit
		}
	}
	return unit, best >= 0
}

func suffixMatch(tail, pattern []string, wildcards bool) bool {
	for i := range pattern {
		if wildcards {
			ok, err := path.Match(pattern[i], tail[i])
			if err != nil || !ok {
				return false
			}
			continue
		}
		if pattern[i] != tail[i] {
			return false
		}
	}
	return true
}

// SplitQuantities replaces every Quantity leaf with a mapping
// {"magnitude": m, "units": u}.
func SplitQuantities(data any) any {
	switch t := data.(type) {
	case Quantity:
		return map[string]any{"magnitude": t.Magnitude, "units": t.Units}
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, v := range t {
			out[k] = SplitQuantities(v)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, v := range t {
			out[i] = SplitQuantities(v)
		}
		return out
	default:
		return data
	}
}

// CombineQuantities reverses SplitQuantities: a mapping holding exactly
// the keys "magnitude" and "units" becomes a Quantity leaf.
func CombineQuantities(data any) any {
	switch t := data.(type) {
	case map[string]any:
		if len(t) == 2 {
			mag, hasMag := t["magnitude"]
			u, hasUnits := t["units"]
			if hasMag && hasUnits {
				if us, ok := u.(string); ok {
					return Quantity{Magnitude: mag, Units: us}
				}
			}
		}
		out := make(map[string]any, len(t))
		for k, v := range t {
			out[k] = CombineQuantities(v)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, v := range t {
			out[i] = CombineQuantities(v)
		}
		return out
	default:
		return data
	}
}
