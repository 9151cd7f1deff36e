package cmd

import (
	"github.com/spf13/cobra"

	"github.com/agentic-research/nest/render"
	"github.com/agentic-research/nest/units"
)

var (
	convertSchema    string
	convertWildcards bool
	convertSplit     bool
)

var convertCmd = &cobra.Command{
	Use:   "convert PATH",
	Short: "Apply a unit schema to the tree's leaves",
	Long: `Reads a unit schema (any parseable file whose leaves are unit strings,
e.g. {"volume": "angstrom^3"}) and wraps or converts the matching data
leaves into quantities. With --split the quantities are emitted as
{"magnitude": m, "units": u} sibling pairs instead.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := loadData(args[0])
		if err != nil {
			return err
		}
		schema, err := loadData(convertSchema)
		if err != nil {
			return err
		}
		out, err := units.ApplyUnitSchema(d, schema, units.NewEngine(), units.SchemaOptions{
			Sep:       sepFlag,
			Wildcards: convertWildcards,
		})
		if err != nil {
			return err
		}
		if convertSplit {
			out = units.SplitQuantities(out)
		}
		reg, err := newRegistry()
		if err != nil {
			return err
		}
		return render.ToJSON(cmd.OutOrStdout(), out, render.JSONOptions{Indent: 2, Registry: reg})
	},
}

func init() {
	convertCmd.Flags().StringVar(&convertSchema, "schema", "", "unit schema file")
	convertCmd.Flags().BoolVar(&convertWildcards, "wildcards", false, "glob-style schema keys")
	convertCmd.Flags().BoolVar(&convertSplit, "split", false, "emit magnitude/units sibling pairs")
	_ = convertCmd.MarkFlagRequired("schema")
	rootCmd.AddCommand(convertCmd)
}
