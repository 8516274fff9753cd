package metrics

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/unitforge-go/internal/application/common"
	"github.com/andrescamacho/unitforge-go/internal/application/mediator"
	"github.com/andrescamacho/unitforge-go/internal/application/unit/queries"
	"github.com/andrescamacho/unitforge-go/internal/domain/unit"
)

// UnitMetricsCollector handles reconciliation, mothball and fleet metrics
type UnitMetricsCollector struct {
	mediator mediator.Mediator
	interval time.Duration

	reconcileOps       *prometheus.CounterVec
	inconsistentKeys   *prometheus.CounterVec
	mothballTransition *prometheus.CounterVec
	loadProblems       prometheus.Counter

	unitsTotal         *prometheus.GaugeVec
	fleetSellValue     prometheus.Gauge
	partsNeedingFixing *prometheus.GaugeVec

	ctx        context.Context
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
}

// NewUnitMetricsCollector creates a collector that polls the fleet every interval
func NewUnitMetricsCollector(m mediator.Mediator, interval time.Duration) *UnitMetricsCollector {
	if interval <= 0 {
		interval = 60 * time.Second
	}
	return &UnitMetricsCollector{
		mediator: m,
		interval: interval,

		reconcileOps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "reconcile_operations_total",
				Help:      "Parts registry changes made by reconciliation, by action",
			},
			[]string{"category", "action"},
		),

		inconsistentKeys: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "inconsistent_keys_total",
				Help:      "Duplicate part keys found and discarded during reconciliation",
			},
			[]string{"category"},
		),

		mothballTransition: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "mothball_transitions_total",
				Help:      "Mothball lifecycle changes",
			},
			[]string{"category", "from", "to"},
		),

		loadProblems: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "load_problems_total",
				Help:      "Malformed fields and dangling references met while loading units",
			},
		),

		unitsTotal: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "units",
				Help:      "Units by category and storage state",
			},
			[]string{"category", "mothball_status"},
		),

		fleetSellValue: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "fleet_sell_value",
				Help:      "Combined sell value of every unit",
			},
		),

		partsNeedingFixing: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "parts_needing_fixing",
				Help:      "Damaged or missing parts per unit",
			},
			[]string{"unit"},
		),
	}
}

// Register registers all unit metrics with the Prometheus registry
func (c *UnitMetricsCollector) Register() error {
	if Registry == nil {
		return nil
	}

	metrics := []prometheus.Collector{
		c.reconcileOps,
		c.inconsistentKeys,
		c.mothballTransition,
		c.loadProblems,
		c.unitsTotal,
		c.fleetSellValue,
		c.partsNeedingFixing,
	}

	for _, metric := range metrics {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}

	return nil
}

// Start begins the fleet polling goroutine
func (c *UnitMetricsCollector) Start(ctx context.Context) {
	c.ctx, c.cancelFunc = context.WithCancel(ctx)

	c.wg.Add(1)
	go c.pollFleet()
}

// Stop gracefully stops the collector
func (c *UnitMetricsCollector) Stop() {
	if c.cancelFunc != nil {
		c.cancelFunc()
	}
	c.wg.Wait()
}

func (c *UnitMetricsCollector) pollFleet() {
	defer c.wg.Done()

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	c.UpdateFleet(c.ctx)

	for {
		select {
		case <-c.ctx.Done():
			return
		case <-ticker.C:
			c.UpdateFleet(c.ctx)
		}
	}
}

// UpdateFleet refreshes the fleet gauges from a unit listing
func (c *UnitMetricsCollector) UpdateFleet(ctx context.Context) {
	if c.mediator == nil {
		return
	}
	logger := common.LoggerFromContext(ctx)

	response, err := c.mediator.Send(ctx, &queries.ListUnitsQuery{})
	if err != nil {
		logger.Log(common.LevelWarn, "Failed to list units for metrics", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	list, ok := response.(*queries.ListUnitsResponse)
	if !ok {
		return
	}

	c.unitsTotal.Reset()
	c.partsNeedingFixing.Reset()
	total := 0.0
	for _, u := range list.Units {
		c.unitsTotal.WithLabelValues(u.Category, u.MothballStatus).Inc()
		c.partsNeedingFixing.WithLabelValues(u.Name).Set(float64(u.PartsNeedingFixing))
		total += u.SellValue
	}
	c.fleetSellValue.Set(total)
}

// RecordReconcile counts the operations of one pass
func (c *UnitMetricsCollector) RecordReconcile(category string, report *unit.ReconcileReport) {
	for _, op := range report.Ops {
		c.reconcileOps.WithLabelValues(category, string(op.Action)).Inc()
	}
	if n := len(report.Inconsistent); n > 0 {
		c.inconsistentKeys.WithLabelValues(category).Add(float64(n))
	}
}

// RecordMothballTransition counts a lifecycle change
func (c *UnitMetricsCollector) RecordMothballTransition(category string, from, to unit.MothballStatus) {
	c.mothballTransition.WithLabelValues(category, string(from), string(to)).Inc()
}

// RecordLoadProblems counts problems met while loading
func (c *UnitMetricsCollector) RecordLoadProblems(count int) {
	c.loadProblems.Add(float64(count))
}
