package metrics

import (
	"errors"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/unitforge-go/internal/domain/shared"
)

// Outcome labels of a mediator request
const (
	StatusSuccess  = "success"
	StatusRejected = "rejected" // A campaign rule refused the request
	StatusError    = "error"
)

// CommandMetricsCollector counts and times mediator requests
type CommandMetricsCollector struct {
	duration *prometheus.HistogramVec
	total    *prometheus.CounterVec
}

// NewCommandMetricsCollector creates a new command metrics collector
func NewCommandMetricsCollector() *CommandMetricsCollector {
	return &CommandMetricsCollector{
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "command_duration_seconds",
				Help:      "Time spent handling commands and queries",
				Buckets:   []float64{0.001, 0.005, 0.025, 0.1, 0.5, 2, 10},
			},
			[]string{"command", "kind", "status"},
		),
		total: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "commands_total",
				Help:      "Commands and queries handled, by outcome",
			},
			[]string{"command", "kind", "status"},
		),
	}
}

// Register adds the collectors to the registry. It does nothing when metrics are off.
func (c *CommandMetricsCollector) Register() error {
	if Registry == nil {
		return nil
	}
	for _, collector := range []prometheus.Collector{c.duration, c.total} {
		if err := Registry.Register(collector); err != nil {
			return err
		}
	}
	return nil
}

// RecordCommandExecution records one handled request
func (c *CommandMetricsCollector) RecordCommandExecution(name string, seconds float64, err error) {
	kind := requestKind(name)
	status := outcome(err)
	c.duration.WithLabelValues(name, kind, status).Observe(seconds)
	c.total.WithLabelValues(name, kind, status).Inc()
}

func requestKind(name string) string {
	if strings.HasSuffix(name, "Query") {
		return "query"
	}
	return "command"
}

// outcome separates requests a campaign rule turned down from real failures
func outcome(err error) string {
	if err == nil {
		return StatusSuccess
	}
	var (
		validation  *shared.ValidationError
		transition  *shared.InvalidTransitionError
		crew        *shared.CrewAssignmentError
		unavailable *shared.PartUnavailableError
		refit       *shared.RefitInProgressError
	)
	switch {
	case errors.As(err, &validation), errors.As(err, &transition), errors.As(err, &crew),
		errors.As(err, &unavailable), errors.As(err, &refit):
		return StatusRejected
	default:
		return StatusError
	}
}
