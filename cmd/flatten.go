package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/agentic-research/nest/edict"
	"github.com/agentic-research/nest/render"
)

var (
	flattenListOfDicts bool
	flattenJSON        bool
)

var flattenCmd = &cobra.Command{
	Use:   "flatten PATH [KEY...]",
	Short: "Print the tree as separator-joined key-paths and leaf values",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := loadData(args[0])
		if err != nil {
			return err
		}
		if d, err = descend(d, args[1:]); err != nil {
			return err
		}
		opts := []edict.Option{edict.Sep(sepFlag)}
		if flattenListOfDicts {
			opts = append(opts, edict.ListOfDicts())
		}
		flat, err := edict.Flatten(d, opts...)
		if err != nil {
			return err
		}
		reg, err := newRegistry()
		if err != nil {
			return err
		}
		if flattenJSON {
			return render.ToJSON(cmd.OutOrStdout(), flat, render.JSONOptions{Indent: 2, Registry: reg})
		}
		keys := make([]string, 0, len(flat))
		for k := range flat {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		width := 0
		for _, k := range keys {
			if len(k) > width {
				width = len(k)
			}
		}
		for _, k := range keys {
			enc, err := reg.Encode("str", flat[k])
			if err != nil {
				enc = flat[k]
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%-*s  %v\n", width, k, enc)
		}
		return nil
	},
}

func init() {
	flattenCmd.Flags().BoolVar(&flattenListOfDicts, "list-of-dicts", false,
		"treat single-key mapping lists as named siblings")
	flattenCmd.Flags().BoolVar(&flattenJSON, "json", false, "emit a flat JSON object")
	rootCmd.AddCommand(flattenCmd)
}
