package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/aretw0/compartments/pkg/domain"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var buildCmd = &cobra.Command{
	Use:   "build [key...]",
	Short: "Assemble models and print them",
	Long: `Assembles every model of the family (or only the given keys) and prints the
transitions, states and parameters of each one as JSON or YAML.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd)
		if err != nil {
			return err
		}
		models, err := buildModels(cmd.Context(), a, args)
		if err != nil {
			return err
		}

		format, _ := cmd.Flags().GetString("format")
		return writeModels(cmd.OutOrStdout(), format, models)
	},
}

// buildModels builds the whole family, or only the given keys, in order.
func buildModels(ctx context.Context, a *app, keys []string) ([]domain.BuiltModel, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if len(keys) == 0 {
		return a.engine.Build(ctx, a.family)
	}
	models := make([]domain.BuiltModel, 0, len(keys))
	for _, key := range keys {
		m, err := a.engine.Model(ctx, a.family, key)
		if err != nil {
			return nil, err
		}
		models = append(models, *m)
	}
	return models, nil
}

func writeModels(w io.Writer, format string, models []domain.BuiltModel) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(models)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(models)
	}
	return fmt.Errorf("unknown format %q (want json or yaml)", format)
}

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().StringP("format", "o", "json", "Output format: json or yaml")
}
