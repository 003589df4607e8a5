package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/compartments/pkg/domain"
)

// LoggingHooks logs every lifecycle event.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnModelBuilt: func(ctx context.Context, e *domain.BuildEvent) {
			logger.DebugContext(ctx, "model_built", "family", e.Family, "model", e.Model, "transitions", e.Transitions)
		},
		OnBuildError: func(ctx context.Context, e *domain.BuildEvent) {
			logger.WarnContext(ctx, "build_failed", "family", e.Family, "model", e.Model, "error", e.Err)
		},
		OnSubmit: func(ctx context.Context, e *domain.SubmitEvent) {
			logger.InfoContext(ctx, "model_submitted", "family", e.Family, "model", e.Model, "duration", e.Duration)
		},
		OnSubmitFail: func(ctx context.Context, e *domain.SubmitEvent) {
			logger.ErrorContext(ctx, "submit_failed", "family", e.Family, "model", e.Model, "error", e.Err)
		},
	}
}

// Combine fans every event out to each hook set, in order. Nil callbacks are skipped.
func Combine(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnModelBuilt: func(ctx context.Context, e *domain.BuildEvent) {
			for _, h := range sets {
				if h.OnModelBuilt != nil {
					h.OnModelBuilt(ctx, e)
				}
			}
		},
		OnBuildError: func(ctx context.Context, e *domain.BuildEvent) {
			for _, h := range sets {
				if h.OnBuildError != nil {
					h.OnBuildError(ctx, e)
				}
			}
		},
		OnSubmit: func(ctx context.Context, e *domain.SubmitEvent) {
			for _, h := range sets {
				if h.OnSubmit != nil {
					h.OnSubmit(ctx, e)
				}
			}
		},
		OnSubmitFail: func(ctx context.Context, e *domain.SubmitEvent) {
			for _, h := range sets {
				if h.OnSubmitFail != nil {
					h.OnSubmitFail(ctx, e)
				}
			}
		},
	}
}
