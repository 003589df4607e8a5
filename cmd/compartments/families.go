package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var familiesCmd = &cobra.Command{
	Use:   "families",
	Short: "List the model families",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for _, name := range a.engine.Families() {
			f, err := a.engine.Family(name)
			if err != nil {
				return err
			}
			defs, err := a.engine.Definitions(name)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "%s\t%d models\t%s\n", name, len(defs), f.Description)
		}
		return w.Flush()
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the model definitions of a family",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd)
		if err != nil {
			return err
		}
		defs, err := a.engine.Definitions(a.family)
		if err != nil {
			return err
		}

		showBlocks, _ := cmd.Flags().GetBool("blocks")
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for _, d := range defs {
			if showBlocks {
				fmt.Fprintf(w, "%s\t%s\t%v\n", d.Key, d.Name, d.Blocks)
				continue
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", d.Key, d.Name, d.Description)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(familiesCmd)
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().Bool("blocks", false, "Show the blocks of each definition instead of its description")
}
