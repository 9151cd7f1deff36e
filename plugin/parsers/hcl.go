package parsers

import (
	"fmt"
	"io"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"

	"github.com/agentic-research/nest/plugin"
)

// HCL parses *.hcl files into nested mappings. Attributes are evaluated
// without a context (literals and constant expressions only), labelled
// blocks nest one level per label, and repeated block types collect into
// a list.
type HCL struct{}

func (p *HCL) Name() string        { return "hcl" }
func (p *HCL) FilePattern() string { return "*.hcl" }

func (p *HCL) Parse(r io.Reader, _ plugin.Options) (any, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	file, diags := hclsyntax.ParseConfig(src, "input.hcl", hcl.InitialPos)
	if diags.HasErrors() {
		return nil, diags
	}
	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return nil, fmt.Errorf("unexpected hcl body type %T", file.Body)
	}
	return hclBodyToMap(body)
}

func hclBodyToMap(body *hclsyntax.Body) (map[string]any, error) {
	out := make(map[string]any, len(body.Attributes)+len(body.Blocks))
	for name, attr := range body.Attributes {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, diags
		}
		out[name] = ctyToGo(val)
	}
	for _, block := range body.Blocks {
		content, err := hclBodyToMap(block.Body)
		if err != nil {
			return nil, err
		}
		// Nest one mapping level per block label.
		var nested any = content
		for i := len(block.Labels) - 1; i >= 0; i-- {
			nested = map[string]any{block.Labels[i]: nested}
		}
		existing, ok := out[block.Type]
		if !ok {
			out[block.Type] = nested
			continue
		}
		if list, isList := existing.([]any); isList {
			out[block.Type] = append(list, nested)
		} else {
			out[block.Type] = []any{existing, nested}
		}
	}
	return out, nil
}

func ctyToGo(v cty.Value) any {
	if v.IsNull() {
		return nil
	}
	ty := v.Type()
	switch {
	case ty == cty.String:
		return v.AsString()
	case ty == cty.Bool:
		return v.True()
	case ty == cty.Number:
		bf := v.AsBigFloat()
		if bf.IsInt() {
			i, _ := bf.Int64()
			return i
		}
		f, _ := bf.Float64()
		return f
	case ty.IsTupleType() || ty.IsListType() || ty.IsSetType():
		out := []any{}
		for it := v.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			out = append(out, ctyToGo(ev))
		}
		return out
	case ty.IsObjectType() || ty.IsMapType():
		out := map[string]any{}
		for it := v.ElementIterator(); it.Next(); {
			ek, ev := it.Element()
			out[ek.AsString()] = ctyToGo(ev)
		}
		return out
	default:
		return v.GoString()
	}
}
