package metrics_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/unitforge-go/internal/adapters/metrics"
	"github.com/andrescamacho/unitforge-go/internal/application/common"
	"github.com/andrescamacho/unitforge-go/internal/application/mediator"
	"github.com/andrescamacho/unitforge-go/internal/application/unit/commands"
	"github.com/andrescamacho/unitforge-go/internal/application/unit/queries"
	"github.com/andrescamacho/unitforge-go/internal/domain/shared"
	"github.com/andrescamacho/unitforge-go/internal/domain/unit"
	"github.com/andrescamacho/unitforge-go/test/helpers"
)

// value returns the sample of a gathered metric whose labels include want
func value(t *testing.T, name string, want map[string]string) (float64, bool) {
	t.Helper()
	families, err := metrics.Registry.Gather()
	require.NoError(t, err)
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
	samples:
		for _, m := range family.GetMetric() {
			labels := make(map[string]string)
			for _, l := range m.GetLabel() {
				labels[l.GetName()] = l.GetValue()
			}
			for k, v := range want {
				if labels[k] != v {
					continue samples
				}
			}
			switch {
			case m.GetCounter() != nil:
				return m.GetCounter().GetValue(), true
			case m.GetGauge() != nil:
				return m.GetGauge().GetValue(), true
			case m.GetHistogram() != nil:
				return float64(m.GetHistogram().GetSampleCount()), true
			}
		}
	}
	return 0, false
}

func newCollector(t *testing.T, m mediator.Mediator) *metrics.UnitMetricsCollector {
	t.Helper()
	metrics.InitRegistry()
	c := metrics.NewUnitMetricsCollector(m, 0)
	require.NoError(t, c.Register())
	metrics.SetGlobalUnitCollector(c)
	t.Cleanup(func() {
		metrics.SetGlobalUnitCollector(nil)
		metrics.Registry = nil
	})
	return c
}

func TestUnitMetrics_UpdateFleetSetsGauges(t *testing.T) {
	// Arrange
	m := helpers.NewMockMediator()
	m.Respond(&queries.ListUnitsQuery{}, &queries.ListUnitsResponse{Units: []*queries.UnitSummaryDTO{
		{Name: "Hunchback HBK-4G", Category: "MECH", MothballStatus: "ACTIVE", SellValue: 3000000, PartsNeedingFixing: 2},
		{Name: "Atlas AS7-D", Category: "MECH", MothballStatus: "MOTHBALLED", SellValue: 9000000},
		{Name: "Bulldog Medium Tank", Category: "TANK", MothballStatus: "ACTIVE", SellValue: 800000},
	}}, nil)
	c := newCollector(t, m)

	// Act
	c.UpdateFleet(context.Background())

	// Assert
	total, ok := value(t, "unitforge_engine_fleet_sell_value", nil)
	require.True(t, ok)
	assert.Equal(t, 12800000.0, total)
	mechs, _ := value(t, "unitforge_engine_units", map[string]string{"category": "MECH", "mothball_status": "ACTIVE"})
	assert.Equal(t, 1.0, mechs)
	fixing, _ := value(t, "unitforge_engine_parts_needing_fixing", map[string]string{"unit": "Hunchback HBK-4G"})
	assert.Equal(t, 2.0, fixing)
	assert.Equal(t, []string{"*queries.ListUnitsQuery"}, m.GetCallLog())
}

func TestUnitMetrics_UpdateFleetLogsQueryFailure(t *testing.T) {
	// Arrange
	m := helpers.NewMockMediator()
	m.Respond(&queries.ListUnitsQuery{}, nil, errors.New("database is locked"))
	c := newCollector(t, m)
	log := helpers.NewCaptureLogger()

	// Act
	c.UpdateFleet(common.WithLogger(context.Background(), log))

	// Assert
	require.Len(t, log.Entries("WARNING"), 1)
	assert.Equal(t, "database is locked", log.Entries("WARNING")[0].Metadata["error"])
}

func TestUnitMetrics_GlobalRecorders(t *testing.T) {
	// Arrange
	newCollector(t, helpers.NewMockMediator())
	report := &unit.ReconcileReport{Ops: []unit.ReconcileOp{
		{Action: unit.ActionCreate}, {Action: unit.ActionCreate}, {Action: unit.ActionRemove},
	}}

	// Act
	metrics.RecordReconcile("MECH", report)
	metrics.RecordMothballTransition("TANK", unit.MothballStatusActive, unit.MothballStatusMothballing)
	metrics.RecordMothballTransition("TANK", unit.MothballStatusActive, unit.MothballStatusActive)
	metrics.RecordLoadProblems(3)
	metrics.RecordLoadProblems(0)

	// Assert
	created, _ := value(t, "unitforge_engine_reconcile_operations_total", map[string]string{"category": "MECH", "action": "CREATE"})
	assert.Equal(t, 2.0, created)
	moved, _ := value(t, "unitforge_engine_mothball_transitions_total", map[string]string{"from": "ACTIVE", "to": "MOTHBALLING"})
	assert.Equal(t, 1.0, moved)
	problems, _ := value(t, "unitforge_engine_load_problems_total", nil)
	assert.Equal(t, 3.0, problems)
}

func TestUnitMetrics_GlobalRecordersWithoutCollector(t *testing.T) {
	metrics.SetGlobalUnitCollector(nil)

	assert.NotPanics(t, func() {
		metrics.RecordReconcile("MECH", &unit.ReconcileReport{})
		metrics.RecordLoadProblems(1)
	})
}

func TestPrometheusMiddleware_CountsByCommandAndStatus(t *testing.T) {
	// Arrange
	metrics.InitRegistry()
	t.Cleanup(func() { metrics.Registry = nil })
	collector := metrics.NewCommandMetricsCollector()
	require.NoError(t, collector.Register())
	mw := metrics.PrometheusMiddleware(collector)
	ok := func(ctx context.Context, request mediator.Request) (mediator.Response, error) { return "done", nil }
	fail := func(ctx context.Context, request mediator.Request) (mediator.Response, error) { return nil, errors.New("boom") }

	// Act
	_, err := mw(context.Background(), &queries.ListStockQuery{}, ok)
	require.NoError(t, err)
	_, err = mw(context.Background(), &queries.ListStockQuery{}, fail)

	// Assert
	assert.EqualError(t, err, "boom")
	succeeded, _ := value(t, "unitforge_engine_commands_total", map[string]string{"command": "ListStockQuery", "kind": "query", "status": "success"})
	assert.Equal(t, 1.0, succeeded)
	failed, _ := value(t, "unitforge_engine_commands_total", map[string]string{"command": "ListStockQuery", "status": "error"})
	assert.Equal(t, 1.0, failed)
	observed, _ := value(t, "unitforge_engine_command_duration_seconds", map[string]string{"status": "success"})
	assert.Equal(t, 1.0, observed)
}

func TestPrometheusMiddleware_RuleViolationsAreRejections(t *testing.T) {
	// Arrange
	metrics.InitRegistry()
	t.Cleanup(func() { metrics.Registry = nil })
	collector := metrics.NewCommandMetricsCollector()
	require.NoError(t, collector.Register())
	mw := metrics.PrometheusMiddleware(collector)
	noStock := func(ctx context.Context, request mediator.Request) (mediator.Response, error) {
		return nil, fmt.Errorf("replace failed: %w", shared.NewPartUnavailableError("u-1", "Mech Sensors"))
	}

	// Act
	_, err := mw(context.Background(), &commands.ReplaceMissingPartCommand{}, noStock)

	// Assert
	require.Error(t, err)
	rejected, found := value(t, "unitforge_engine_commands_total", map[string]string{
		"command": "ReplaceMissingPartCommand", "kind": "command", "status": "rejected",
	})
	assert.True(t, found)
	assert.Equal(t, 1.0, rejected)
}

func TestPrometheusMiddleware_NilCollectorPassesThrough(t *testing.T) {
	// Arrange
	mw := metrics.PrometheusMiddleware(nil)
	ok := func(ctx context.Context, request mediator.Request) (mediator.Response, error) { return "done", nil }

	// Act
	resp, err := mw(context.Background(), &queries.ListStockQuery{}, ok)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "done", resp)
}
