package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/unitforge-go/internal/domain/unit"
)

const (
	// Namespace for all metrics
	namespace = "unitforge"
	// Subsystem for engine metrics
	subsystem = "engine"
)

var (
	// Registry is the global Prometheus registry for all metrics
	Registry *prometheus.Registry

	// globalUnitCollector is the singleton unit metrics collector
	// Set by SetGlobalUnitCollector() when metrics are enabled
	globalUnitCollector UnitMetricsRecorder
)

// UnitMetricsRecorder defines the interface for recording unit engine events
// This interface is used by application code to record metrics
type UnitMetricsRecorder interface {
	RecordReconcile(category string, report *unit.ReconcileReport)
	RecordMothballTransition(category string, from, to unit.MothballStatus)
	RecordLoadProblems(count int)
}

// InitRegistry initializes the Prometheus registry
// Should be called once at application startup if metrics are enabled
func InitRegistry() {
	Registry = prometheus.NewRegistry()
}

// GetRegistry returns the global Prometheus registry
// Returns nil if metrics are not initialized
func GetRegistry() *prometheus.Registry {
	return Registry
}

// IsEnabled returns true if metrics collection is enabled
func IsEnabled() bool {
	return Registry != nil
}

// SetGlobalUnitCollector sets the global unit metrics collector
func SetGlobalUnitCollector(collector UnitMetricsRecorder) {
	globalUnitCollector = collector
}

// RecordReconcile records the operations of one reconciliation pass globally
func RecordReconcile(category string, report *unit.ReconcileReport) {
	if globalUnitCollector != nil && report != nil {
		globalUnitCollector.RecordReconcile(category, report)
	}
}

// RecordMothballTransition records a mothball lifecycle change globally
func RecordMothballTransition(category string, from, to unit.MothballStatus) {
	if globalUnitCollector != nil && from != to {
		globalUnitCollector.RecordMothballTransition(category, from, to)
	}
}

// RecordLoadProblems records problems met while loading units globally
func RecordLoadProblems(count int) {
	if globalUnitCollector != nil && count > 0 {
		globalUnitCollector.RecordLoadProblems(count)
	}
}
