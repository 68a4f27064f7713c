package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the sign.
type Metrics struct {
	Polls         prometheus.Counter
	FetchErrors   prometheus.Counter
	FetchDuration prometheus.Histogram

	FramesRendered *prometheus.CounterVec // label: mode={idle,takeover,oneshot}
	OneShotCycles  prometheus.Counter
	TakeoverActive prometheus.Gauge
	ActiveAlerts   *prometheus.GaugeVec // label: tier={1,2,3}
	InjectedActive prometheus.Gauge
}

// NewMetrics creates and registers all sign metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		Polls: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "matrix_sign",
			Name:      "polls_total",
			Help:      "Total alert feed polls attempted.",
		}),
		FetchErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "matrix_sign",
			Name:      "fetch_errors_total",
			Help:      "Total feed fetches that failed (before fallback).",
		}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "matrix_sign",
			Name:      "fetch_duration_seconds",
			Help:      "Duration of one alert feed fetch.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		FramesRendered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "matrix_sign",
			Name:      "frames_rendered_total",
			Help:      "Frames rendered by display mode.",
		}, []string{"mode"}),
		OneShotCycles: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "matrix_sign",
			Name:      "oneshot_cycles_total",
			Help:      "Completed tier-2 one-shot ticker cycles.",
		}),
		TakeoverActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "matrix_sign",
			Name:      "takeover_active",
			Help:      "1 while a tier-1 takeover holds the display.",
		}),
		ActiveAlerts: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "matrix_sign",
			Name:      "active_alerts",
			Help:      "Active alerts by tier after the last evaluation.",
		}, []string{"tier"}),
		InjectedActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "matrix_sign",
			Name:      "injected_active",
			Help:      "1 while the scenario injection file overrides the feed.",
		}),
	}

	prometheus.MustRegister(
		m.Polls,
		m.FetchErrors,
		m.FetchDuration,
		m.FramesRendered,
		m.OneShotCycles,
		m.TakeoverActive,
		m.ActiveAlerts,
		m.InjectedActive,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		Polls:          prometheus.NewCounter(prometheus.CounterOpts{Namespace: "matrix_sign", Name: "polls_total"}),
		FetchErrors:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "matrix_sign", Name: "fetch_errors_total"}),
		FetchDuration:  prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "matrix_sign", Name: "fetch_duration_seconds"}),
		FramesRendered: prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "matrix_sign", Name: "frames_rendered_total"}, []string{"mode"}),
		OneShotCycles:  prometheus.NewCounter(prometheus.CounterOpts{Namespace: "matrix_sign", Name: "oneshot_cycles_total"}),
		TakeoverActive: prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "matrix_sign", Name: "takeover_active"}),
		ActiveAlerts:   prometheus.NewGaugeVec(prometheus.GaugeOpts{Namespace: "matrix_sign", Name: "active_alerts"}, []string{"tier"}),
		InjectedActive: prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "matrix_sign", Name: "injected_active"}),
	}
}
