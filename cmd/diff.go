package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/agentic-research/nest/edict"
)

var (
	diffRtol float64
	diffAtol float64
)

var diffCmd = &cobra.Command{
	Use:   "diff PATH_A PATH_B",
	Short: "Compare two trees or files leaf by leaf",
	Long: `Compares the flattened leaves of two inputs. Numeric leaves equal
within --rtol/--atol count as unchanged. Exit status is 1 when the
inputs differ.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadData(args[0])
		if err != nil {
			return err
		}
		b, err := loadData(args[1])
		if err != nil {
			return err
		}
		changes, err := edict.Diff(a, b,
			edict.Sep(sepFlag), edict.Tolerance(diffRtol, diffAtol))
		if err != nil {
			return err
		}
		flat, err := edict.Flatten(changes, edict.Sep(sepFlag))
		if err != nil {
			return err
		}
		if len(flat) == 0 {
			return nil
		}
		keys := make([]string, 0, len(flat))
		for k := range flat {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := cmd.OutOrStdout()
		for _, k := range keys {
			ch, ok := flat[k].(edict.Change)
			if !ok {
				continue
			}
			switch {
			case ch.InA && ch.InB:
				fmt.Fprintf(out, "~ %s: %v -> %v\n", k, ch.A, ch.B)
			case ch.InA:
				fmt.Fprintf(out, "- %s: %v\n", k, ch.A)
			default:
				fmt.Fprintf(out, "+ %s: %v\n", k, ch.B)
			}
		}
		return fmt.Errorf("%d differing key-path%s", len(flat), plural(len(flat)))
	},
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

func init() {
	diffCmd.Flags().Float64Var(&diffRtol, "rtol", 0, "relative numeric tolerance")
	diffCmd.Flags().Float64Var(&diffAtol, "atol", 0, "absolute numeric tolerance")
	rootCmd.AddCommand(diffCmd)
}
