package observability

import (
	"context"
	"net/http"

	"github.com/aretw0/compartments/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors of the toolkit on a private registry.
type Metrics struct {
	registry       *prometheus.Registry
	modelsBuilt    *prometheus.CounterVec
	buildFailures  *prometheus.CounterVec
	submissions    *prometheus.CounterVec
	submitDuration *prometheus.HistogramVec
}

// NewMetrics creates and registers the collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		modelsBuilt: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "compartments_models_built_total",
				Help: "Total number of models assembled",
			},
			[]string{"family"},
		),
		buildFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "compartments_build_failures_total",
				Help: "Total number of model definitions that failed to assemble",
			},
			[]string{"family"},
		),
		submissions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "compartments_submissions_total",
				Help: "Total number of model submissions by result",
			},
			[]string{"family", "result"},
		),
		submitDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "compartments_submission_duration_seconds",
				Help:    "Duration of model submissions",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"family"},
		),
	}
	m.registry.MustRegister(m.modelsBuilt, m.buildFailures, m.submissions, m.submitDuration)
	return m
}

// Registry exposes the underlying registry, e.g. to add process collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the collected metrics in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Hooks returns lifecycle hooks recording into the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnModelBuilt: func(_ context.Context, e *domain.BuildEvent) {
			m.modelsBuilt.WithLabelValues(e.Family).Inc()
		},
		OnBuildError: func(_ context.Context, e *domain.BuildEvent) {
			m.buildFailures.WithLabelValues(e.Family).Inc()
		},
		OnSubmit: func(_ context.Context, e *domain.SubmitEvent) {
			m.submissions.WithLabelValues(e.Family, "ok").Inc()
			m.submitDuration.WithLabelValues(e.Family).Observe(e.Duration.Seconds())
		},
		OnSubmitFail: func(_ context.Context, e *domain.SubmitEvent) {
			m.submissions.WithLabelValues(e.Family, "error").Inc()
			m.submitDuration.WithLabelValues(e.Family).Observe(e.Duration.Seconds())
		},
	}
}
