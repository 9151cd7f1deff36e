// Package render turns nested structures into human-readable output:
// an aligned plain-text printer, JSON serialization through the codec
// registry, and a collapsible HTML tree.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/ohler55/ojg/oj"

	"github.com/agentic-research/nest/internal/natsort"
	"github.com/agentic-research/nest/plugin"
)

// PPrintOptions controls PPrint. The zero value of individual fields
// falls back to the documented default.
type PPrintOptions struct {
	// LvlIndent is the extra indentation per nesting level (default 2).
	LvlIndent int
	// InitIndent is the indentation of the top level.
	InitIndent int
	// Delim separates key from value (default ":").
	Delim string
	// MaxWidth wraps value text at this column (default 80; negative
	// disables wrapping).
	MaxWidth int
	// Depth limits how many levels are expanded; deeper mappings print
	// as "{...}" (default 3; negative means unlimited).
	Depth int
	// NoValues prints the key skeleton only.
	NoValues bool
	// AlignVals pads keys so values line up per level (default true;
	// set NoAlign to disable).
	NoAlign bool
	// Registry renders typed leaves through their "str" encoders
	// (default plugin.Default).
	Registry *plugin.Registry
}

func (o PPrintOptions) withDefaults() PPrintOptions {
	if o.LvlIndent == 0 {
		o.LvlIndent = 2
	}
	if o.Delim == "" {
		o.Delim = ":"
	}
	if o.MaxWidth == 0 {
		o.MaxWidth = 80
	}
	if o.Depth == 0 {
		o.Depth = 3
	}
	if o.Registry == nil {
		o.Registry = plugin.Default()
	}
	return o
}

// PPrint writes a nested structure to w in an aligned, depth-limited,
// width-wrapped format. Keys sort naturally per level.
func PPrint(w io.Writer, d any, opts PPrintOptions) error {
	o := opts.withDefaults()
	m, ok := d.(map[string]any)
	if !ok {
		_, err := fmt.Fprintln(w, leafString(d, o.Registry))
		return err
	}
	return pprintMap(w, m, o.InitIndent, o.Depth, o)
}

func pprintMap(w io.Writer, m map[string]any, indent, depth int, o PPrintOptions) error {
	keyWidth := 0
	if !o.NoAlign {
		for k, v := range m {
			if _, isMap := v.(map[string]any); !isMap {
				if len(k) > keyWidth {
					keyWidth = len(k)
				}
			}
		}
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	natsort.Strings(keys)

	for _, k := range keys {
		v := m[k]
		keyStr := k + o.Delim + " "
		if !o.NoAlign {
			keyStr = fmt.Sprintf("%-*s ", keyWidth+len(o.Delim), k+o.Delim)
		}
		pad := strings.Repeat(" ", indent)

		if child, isMap := v.(map[string]any); isMap {
			if depth == 1 {
				if _, err := fmt.Fprintln(w, pad+keyStr+"{...}"); err != nil {
					return err
				}
				continue
			}
			if _, err := fmt.Fprintln(w, pad+strings.TrimRight(keyStr, " ")+" "); err != nil {
				return err
			}
			next := depth - 1
			if depth < 0 {
				next = -1
			}
			if err := pprintMap(w, child, indent+o.LvlIndent, next, o); err != nil {
				return err
			}
			continue
		}

		val := ""
		if !o.NoValues {
			val = leafString(v, o.Registry)
		}
		if o.MaxWidth > 0 {
			prefix := len(pad) + len(keyStr)
			if prefix+1 > o.MaxWidth {
				return fmt.Errorf("cannot fit keys and data within width %d", o.MaxWidth)
			}
			val = wrap(val, o.MaxWidth-prefix, strings.Repeat(" ", prefix))
		}
		if _, err := fmt.Fprintln(w, pad+keyStr+val); err != nil {
			return err
		}
	}
	return nil
}

// leafString renders a leaf for display, preferring a registered "str"
// encoder for typed values.
func leafString(v any, reg *plugin.Registry) string {
	if reg != nil {
		if enc, err := reg.Encode("str", v); err == nil {
			if s, ok := enc.(string); ok {
				return s
			}
			v = enc
		}
	}
	switch t := v.(type) {
	case []any, map[string]any:
		return oj.JSON(v)
	case string:
		return t
	default:
		return fmt.Sprint(v)
	}
}

// wrap breaks s into word chunks of at most width characters, joining
// the continuation lines with indent.
func wrap(s string, width int, indent string) string {
	if width <= 0 || len(s) <= width {
		return s
	}
	words := strings.Fields(s)
	if len(words) == 0 {
		return s
	}
	var lines []string
	line := words[0]
	for _, word := range words[1:] {
		if len(line)+1+len(word) > width {
			lines = append(lines, line)
			line = word
			continue
		}
		line += " " + word
	}
	lines = append(lines, line)
	return strings.Join(lines, " \n"+indent)
}
