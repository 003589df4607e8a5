package main

import (
	"fmt"

	"github.com/aretw0/compartments/internal/validator"
	"github.com/aretw0/compartments/pkg/rate"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check every family for unknown blocks, undeclared states and bad rates",
	Long: `Lints the families (or only --family when set) without building them, including the
user definitions listed in the profile. Blocks no model refers to are reported as warnings.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd)
		if err != nil {
			return err
		}

		names := a.engine.Families()
		if cmd.Flags().Changed("family") {
			names = []string{a.family}
		}

		out := cmd.OutOrStdout()
		var errs error
		for _, name := range names {
			f, err := a.engine.Family(name)
			if err != nil {
				return err
			}
			defs, err := a.engine.Definitions(name)
			if err != nil {
				return err
			}
			linted := *f
			linted.Definitions = defs

			for _, block := range validator.UnusedBlocks(&linted) {
				fmt.Fprintf(out, "warning: %s: block %q is never used\n", name, block)
			}
			if err := validator.ValidateFamily(&linted, rate.NewAnalyzer()); err != nil {
				for _, e := range multierr.Errors(err) {
					fmt.Fprintf(out, "error: %s: %v\n", name, e)
				}
				errs = multierr.Append(errs, fmt.Errorf("family %q is invalid", name))
				continue
			}
			fmt.Fprintf(out, "%s: %d models ok\n", name, len(defs))
		}
		return errs
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
