package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/google/uuid"

	"github.com/agentic-research/nest/internal/natsort"
	"github.com/agentic-research/nest/plugin"
)

// HTMLOptions controls HTMLTree.
type HTMLOptions struct {
	// OpenDepth expands <details> elements down to this level (default
	// 1; negative expands everything).
	OpenDepth int
	// Registry renders typed leaves through their "str" encoders
	// (default plugin.Default).
	Registry *plugin.Registry
}

const htmlStyle = `<style>
.nest-tree { font-family: monospace; }
.nest-tree summary { cursor: pointer; }
.nest-tree details { margin-left: 1.2em; }
.nest-tree .nest-key { color: #881391; }
.nest-tree .nest-val { color: #1a1aa6; }
</style>`

// HTMLTree renders a nested structure as a self-contained collapsible
// HTML fragment. Each call gets a unique container id so several trees
// can live in one document.
func HTMLTree(d any, opts HTMLOptions) string {
	if opts.OpenDepth == 0 {
		opts.OpenDepth = 1
	}
	if opts.Registry == nil {
		opts.Registry = plugin.Default()
	}
	var b strings.Builder
	id := uuid.NewString()
	fmt.Fprintf(&b, "<div id=%q class=\"nest-tree\">\n", id)
	b.WriteString(htmlStyle)
	b.WriteString("\n")
	writeHTMLNode(&b, "", d, 0, opts)
	b.WriteString("</div>\n")
	return b.String()
}

func writeHTMLNode(b *strings.Builder, key string, v any, depth int, opts HTMLOptions) {
	label := ""
	if key != "" {
		label = fmt.Sprintf("<span class=\"nest-key\">%s</span>", html.EscapeString(key))
	}
	if m, isMap := v.(map[string]any); isMap {
		open := ""
		if opts.OpenDepth < 0 || depth < opts.OpenDepth {
			open = " open"
		}
		summary := label
		if summary == "" {
			summary = "&middot;"
		}
		fmt.Fprintf(b, "<details%s><summary>%s</summary>\n", open, summary)
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		natsort.Strings(keys)
		for _, k := range keys {
			writeHTMLNode(b, k, m[k], depth+1, opts)
		}
		b.WriteString("</details>\n")
		return
	}
	val := html.EscapeString(leafString(v, opts.Registry))
	if label != "" {
		fmt.Fprintf(b, "<div>%s: <span class=\"nest-val\">%s</span></div>\n", label, val)
		return
	}
	fmt.Fprintf(b, "<div><span class=\"nest-val\">%s</span></div>\n", val)
}
