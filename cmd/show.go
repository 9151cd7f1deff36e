package cmd

import (
	"fmt"

	"github.com/ohler55/ojg/jp"
	"github.com/spf13/cobra"

	"github.com/agentic-research/nest/render"
	"github.com/agentic-research/nest/tree"
)

var (
	showDepth    int
	showWidth    int
	showNoValues bool
	showJSON     bool
	showIndent   int
	showPath     string
)

var showCmd = &cobra.Command{
	Use:   "show PATH [KEY...]",
	Short: "Pretty-print (part of) the tree",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := lookup(args[0], args[1:])
		if err != nil {
			return err
		}
		if sub, ok := d.(*tree.Tree); ok {
			if d, err = sub.ToDict(false); err != nil {
				return err
			}
		}
		if showPath != "" {
			expr, err := jp.ParseString(showPath)
			if err != nil {
				return fmt.Errorf("parse --path: %w", err)
			}
			matches := expr.Get(d)
			switch len(matches) {
			case 0:
				return fmt.Errorf("no value at %q", showPath)
			case 1:
				d = matches[0]
			default:
				d = matches
			}
		}
		reg, err := newRegistry()
		if err != nil {
			return err
		}
		if showJSON {
			return render.ToJSON(cmd.OutOrStdout(), d, render.JSONOptions{
				Indent:   showIndent,
				Registry: reg,
			})
		}
		return render.PPrint(cmd.OutOrStdout(), d, render.PPrintOptions{
			Depth:    showDepth,
			MaxWidth: showWidth,
			NoValues: showNoValues,
			Registry: reg,
		})
	},
}

func init() {
	showCmd.Flags().IntVar(&showDepth, "depth", -1, "levels to expand (-1 for all)")
	showCmd.Flags().IntVar(&showWidth, "width", 80, "max line width")
	showCmd.Flags().BoolVar(&showNoValues, "no-values", false, "print the key skeleton only")
	showCmd.Flags().BoolVar(&showJSON, "json", false, "emit JSON instead of aligned text")
	showCmd.Flags().IntVar(&showIndent, "indent", 2, "JSON indent width")
	showCmd.Flags().StringVar(&showPath, "path", "", "JSONPath expression selecting a sub-value")
	rootCmd.AddCommand(showCmd)
}
