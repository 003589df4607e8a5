package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/compartments"
	"github.com/aretw0/compartments/internal/cli"
	"github.com/aretw0/compartments/internal/config"
	"github.com/aretw0/compartments/internal/logging"
	"github.com/aretw0/compartments/pkg/families"
	"github.com/aretw0/compartments/pkg/observability"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "compartments",
	Short: "Compartments assembles compartmental epidemic models from reusable blocks",
	Long: `Compartments builds the formal description of compartmental models (SIR, SEIRS,
two strain models with or without cross immunity...) from a catalog of blocks, and
submits them to a model server, a Redis store or a loam archive.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Profile file (default ~/.compartments.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error (overrides the profile)")
	rootCmd.PersistentFlags().StringP("family", "f", families.OneStrainName, "Model family")
}

// app is what every command needs, resolved from flags and the profile.
type app struct {
	cfg     config.Config
	logger  *slog.Logger
	metrics *observability.Metrics
	engine  *compartments.Engine
	family  string
}

func setup(cmd *cobra.Command) (*app, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	levelName := cfg.LogLevel
	if cmd.Flags().Changed("log-level") {
		levelName, _ = cmd.Flags().GetString("log-level")
	}
	level, err := logging.ParseLevel(levelName)
	if err != nil {
		return nil, err
	}
	logger := logging.New(level)

	metrics := observability.NewMetrics()
	engine, err := cli.NewEngine(cfg, logger, metrics)
	if err != nil {
		return nil, err
	}

	family, _ := cmd.Flags().GetString("family")
	return &app{cfg: cfg, logger: logger, metrics: metrics, engine: engine, family: family}, nil
}
