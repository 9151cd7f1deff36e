package cmd

import (
	"github.com/spf13/cobra"

	"github.com/agentic-research/nest/edict"
	"github.com/agentic-research/nest/render"
)

var (
	filterKeys      []string
	filterWildcards bool
	filterRegex     bool
	filterSiblings  bool
)

var filterCmd = &cobra.Command{
	Use:   "filter PATH",
	Short: "Keep only the subtrees whose keys match the given patterns",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := loadData(args[0])
		if err != nil {
			return err
		}
		opts := []edict.Option{}
		if filterWildcards {
			opts = append(opts, edict.Wildcards())
		}
		if filterRegex {
			opts = append(opts, edict.Regex())
		}
		if filterSiblings {
			opts = append(opts, edict.KeepSiblings())
		}
		out, err := edict.FilterKeys(d, filterKeys, opts...)
		if err != nil {
			return err
		}
		reg, err := newRegistry()
		if err != nil {
			return err
		}
		return render.ToJSON(cmd.OutOrStdout(), out, render.JSONOptions{Indent: 2, Registry: reg})
	},
}

func init() {
	filterCmd.Flags().StringSliceVar(&filterKeys, "keys", nil, "key patterns to keep")
	filterCmd.Flags().BoolVar(&filterWildcards, "wildcards", false, "glob-style patterns")
	filterCmd.Flags().BoolVar(&filterRegex, "regex", false, "regular-expression patterns")
	filterCmd.Flags().BoolVar(&filterSiblings, "keep-siblings", false, "retain siblings of matched keys")
	_ = filterCmd.MarkFlagRequired("keys")
	rootCmd.AddCommand(filterCmd)
}
