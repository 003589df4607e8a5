package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/compartments/internal/cli"
	"github.com/spf13/cobra"
)

var commitCmd = &cobra.Command{
	Use:   "commit [key...]",
	Short: "Assemble models and submit them to the configured sink",
	Long: `Assembles the family (or only the given keys) and submits the models one at a
time to the sink selected by the profile (http, redis, loam or memory). The first
failure aborts the rest of the batch; an interrupt stops before the next submission.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd)
		if err != nil {
			return err
		}
		if sink, _ := cmd.Flags().GetString("sink"); sink != "" {
			a.cfg.Sink = sink
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		models, err := buildModels(ctx, a, args)
		if err != nil {
			return err
		}

		target, err := cli.NewSink(a.cfg, a.logger)
		if err != nil {
			return err
		}
		defer target.Close()

		committed, err := a.engine.Commit(ctx, target.Sink, a.family, models, target.Options...)
		for _, key := range committed {
			fmt.Fprintln(cmd.OutOrStdout(), key)
		}
		if err != nil {
			return fmt.Errorf("%d of %d models committed: %w", len(committed), len(models), err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(commitCmd)
	commitCmd.Flags().String("sink", "", "Override the profile sink: http, redis, loam or memory")
}
