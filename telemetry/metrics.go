// Package telemetry exports transition and frame metrics for Prometheus.
package telemetry

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lixenwraith/chromasphere/scene"
	"github.com/lixenwraith/chromasphere/transition"
)

const namespace = "chromasphere"

// Metrics holds the collectors on a private registry
type Metrics struct {
	registry *prometheus.Registry

	started   *prometheus.CounterVec
	completed *prometheus.CounterVec
	cancelled prometheus.Counter
	rejected  *prometheus.CounterVec
	phase     prometheus.Gauge
	frame     prometheus.Histogram
	lag       prometheus.Histogram
}

// New creates and registers all collectors
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		started: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transitions_started_total",
			Help:      "Focus sequences started, by direction.",
		}, []string{"direction"}),
		completed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transitions_completed_total",
			Help:      "Focus sequences that settled, by direction.",
		}, []string{"direction"}),
		cancelled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transitions_cancelled_total",
			Help:      "Focus-in sequences interrupted by back.",
		}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "triggers_rejected_total",
			Help:      "Ignored confirm/back/noise triggers, by trigger and reason.",
		}, []string{"trigger", "reason"}),
		phase: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "phase",
			Help:      "Current transition phase (0 idle, 1 focusing-in, 2 focused, 3 focusing-out).",
		}),
		frame: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "frame_seconds",
			Help:      "Wall time spent in one frame tick.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 12),
		}),
		lag: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "frame_delta_seconds",
			Help:      "Simulated time advanced per frame.",
			Buckets:   []float64{0.008, 0.016, 0.033, 0.05, 0.1},
		}),
	}

	m.registry.MustRegister(
		m.started, m.completed, m.cancelled, m.rejected, m.phase, m.frame, m.lag,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// RegisterDropped exposes a monotonic drop count, such as engine.Runner.Dropped
func (m *Metrics) RegisterDropped(fn func() uint64) {
	m.registry.MustRegister(prometheus.NewCounterFunc(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_dropped_total",
		Help:      "Input events overwritten before the frame loop consumed them.",
	}, func() float64 { return float64(fn()) }))
}

// Registry returns the private registry
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// PhaseChanged records a phase change; register with Controller.OnPhaseChange
func (m *Metrics) PhaseChanged(from, to transition.Phase, _ transition.Token) {
	m.phase.Set(float64(to))
	switch {
	case to == transition.PhaseFocusingIn:
		m.started.WithLabelValues("focus").Inc()
	case to == transition.PhaseFocusingOut:
		m.started.WithLabelValues("unfocus").Inc()
		if from == transition.PhaseFocusingIn {
			m.cancelled.Inc()
		}
	case to == transition.PhaseFocused:
		m.completed.WithLabelValues("focus").Inc()
	case to == transition.PhaseIdle:
		m.completed.WithLabelValues("unfocus").Inc()
	}
}

// Rejected records an ignored trigger; register with Controller.OnReject
func (m *Metrics) Rejected(trigger string, err error) {
	m.rejected.WithLabelValues(trigger, Reason(err)).Inc()
}

// Reason classifies a trigger rejection
func Reason(err error) string {
	switch {
	case errors.Is(err, transition.ErrWrongPhase):
		return "phase"
	case errors.Is(err, transition.ErrNoSelection):
		return "selection"
	case errors.Is(err, scene.ErrNotReady):
		return "not_ready"
	default:
		return "other"
	}
}

// ObserveFrame records one tick; pass as engine.WithFrameObserver
func (m *Metrics) ObserveFrame(dt, took time.Duration) {
	m.lag.Observe(dt.Seconds())
	m.frame.Observe(took.Seconds())
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is done
// The listener is opened before Serve returns control to the caller's goroutine, so
// bind errors surface immediately
func Serve(ctx context.Context, addr string, m *Metrics, logger *slog.Logger) (net.Addr, <-chan error, error) {
	if logger == nil {
		logger = slog.Default()
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, nil, err
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	done := make(chan error, 1)
	go func() {
		err := srv.Serve(ln)
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		done <- err
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("metrics server shutdown", "error", err)
		}
	}()

	logger.Info("metrics listening", "addr", ln.Addr().String())
	return ln.Addr(), done, nil
}
