package main

import (
	"github.com/aretw0/compartments/internal/presentation/tui"
	"github.com/aretw0/compartments/pkg/rate"
	"github.com/spf13/cobra"
)

var describeCmd = &cobra.Command{
	Use:   "describe <key>",
	Short: "Describe a model as a Markdown report",
	Long: `Assembles the model and prints its states, parameters and transitions.
The report is rendered for the terminal when stdout is one, and left as Markdown otherwise.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd)
		if err != nil {
			return err
		}
		m, err := a.engine.Model(cmd.Context(), a.family, args[0])
		if err != nil {
			return err
		}
		return tui.WriteMarkdown(cmd.OutOrStdout(), tui.Describe(m, rate.NewAnalyzer()))
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
}
