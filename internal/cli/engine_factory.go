// Package cli wires configuration into engines, sinks and stores for the commands.
package cli

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/compartments"
	"github.com/aretw0/compartments/internal/config"
	"github.com/aretw0/compartments/pkg/observability"
)

// NewEngine initializes an engine with the standard CLI conventions: logging hooks
// at debug level, metrics, and the user definitions listed in the profile.
func NewEngine(cfg config.Config, logger *slog.Logger, metrics *observability.Metrics) (*compartments.Engine, error) {
	opts := []compartments.Option{
		compartments.WithLogger(logger),
		compartments.WithLifecycleHooks(observability.LoggingHooks(logger)),
	}
	if metrics != nil {
		opts = append(opts, compartments.WithMetrics(metrics))
	}
	engine := compartments.New(opts...)

	if len(cfg.Definitions) == 0 {
		return engine, nil
	}
	defs, err := config.LoadDefinitions(cfg.Definitions...)
	if err != nil {
		return nil, err
	}
	for _, d := range defs {
		if err := engine.Extend(d.Family, d.ModelDefinition); err != nil {
			return nil, fmt.Errorf("definition %q: %w", d.Key, err)
		}
	}
	logger.Debug("user definitions loaded", "count", len(defs), "files", len(cfg.Definitions))
	return engine, nil
}
