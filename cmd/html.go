package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentic-research/nest/render"
)

var (
	htmlOutput string
	htmlDepth  int
)

var htmlCmd = &cobra.Command{
	Use:   "html PATH [KEY...]",
	Short: "Render (part of) the tree as a collapsible HTML fragment",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := loadData(args[0])
		if err != nil {
			return err
		}
		if d, err = descend(d, args[1:]); err != nil {
			return err
		}
		reg, err := newRegistry()
		if err != nil {
			return err
		}
		out := render.HTMLTree(d, render.HTMLOptions{
			OpenDepth: htmlDepth,
			Registry:  reg,
		})
		if htmlOutput == "" {
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		}
		return os.WriteFile(htmlOutput, []byte(out), 0o644)
	},
}

func init() {
	htmlCmd.Flags().StringVarP(&htmlOutput, "output", "o", "", "write to file instead of stdout")
	htmlCmd.Flags().IntVar(&htmlDepth, "open-depth", 1, "levels expanded by default (-1 for all)")
	rootCmd.AddCommand(htmlCmd)
}
