package main

import (
	"fmt"

	"github.com/aretw0/compartments/internal/presentation/graph"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <key>",
	Short: "Export the transition graph of a model",
	Long:  `Assembles the model and outputs a Mermaid diagram (graph LR) of its transitions.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd)
		if err != nil {
			return err
		}
		m, err := a.engine.Model(cmd.Context(), a.family, args[0])
		if err != nil {
			return err
		}

		rates, _ := cmd.Flags().GetBool("rates")
		deaths, _ := cmd.Flags().GetBool("deaths")
		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(m, graph.Options{Rates: rates, Deaths: deaths}))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().Bool("rates", false, "Label edges with their rates")
	graphCmd.Flags().Bool("deaths", false, "Draw the injected death transitions")
}
