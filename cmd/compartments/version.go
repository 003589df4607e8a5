package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/compartments"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of compartments",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "compartments version %s\n", strings.TrimSpace(compartments.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
