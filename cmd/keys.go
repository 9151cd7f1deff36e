package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentic-research/nest/internal/natsort"
	"github.com/agentic-research/nest/tree"
)

var keysCmd = &cobra.Command{
	Use:   "keys PATH [KEY...]",
	Short: "List the keys at a point in the tree",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := lookup(args[0], args[1:])
		if err != nil {
			return err
		}
		switch t := d.(type) {
		case map[string]any:
			keys := make([]string, 0, len(t))
			for k := range t {
				keys = append(keys, k)
			}
			natsort.Strings(keys)
			for _, k := range keys {
				fmt.Fprintln(cmd.OutOrStdout(), k)
			}
		case *tree.Tree:
			keys, err := t.Keys()
			if err != nil {
				return err
			}
			for _, k := range keys {
				fmt.Fprintln(cmd.OutOrStdout(), k)
			}
		default:
			return fmt.Errorf("value at key-path is a leaf, not a mapping")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(keysCmd)
}
