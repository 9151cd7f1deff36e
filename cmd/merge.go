package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/agentic-research/nest/edict"
	"github.com/agentic-research/nest/render"
)

var (
	mergeOverwrite  bool
	mergeAppendKeys bool
	mergeListDicts  bool
	mergeOutput     string
)

var mergeCmd = &cobra.Command{
	Use:   "merge PATH...",
	Short: "Merge several trees or files into one JSON document",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		structs := make([]any, len(args))
		for i, path := range args {
			d, err := loadData(path)
			if err != nil {
				return err
			}
			structs[i] = d
		}
		opts := []edict.Option{}
		if mergeOverwrite {
			opts = append(opts, edict.Overwrite())
		}
		if mergeAppendKeys {
			opts = append(opts, edict.AppendKeys())
		}
		if mergeListDicts {
			opts = append(opts, edict.ListOfDicts())
		}
		merged, err := edict.Merge(structs, opts...)
		if err != nil {
			return err
		}
		reg, err := newRegistry()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if mergeOutput != "" {
			f, err := os.Create(mergeOutput)
			if err != nil {
				return err
			}
			defer f.Close()
			out = f
		}
		return render.ToJSON(out, merged, render.JSONOptions{Indent: 2, Registry: reg})
	},
}

func init() {
	mergeCmd.Flags().BoolVar(&mergeOverwrite, "overwrite", false, "last source wins on conflicts")
	mergeCmd.Flags().BoolVar(&mergeAppendKeys, "append-keys", false, "accumulate conflicting values into lists")
	mergeCmd.Flags().BoolVar(&mergeListDicts, "list-of-dicts", false, "merge single-key mapping lists by key")
	mergeCmd.Flags().StringVarP(&mergeOutput, "output", "o", "", "write to file instead of stdout")
	rootCmd.AddCommand(mergeCmd)
}
