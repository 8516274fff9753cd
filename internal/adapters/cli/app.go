package cli

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/andrescamacho/unitforge-go/internal/adapters/definition"
	"github.com/andrescamacho/unitforge-go/internal/adapters/export"
	"github.com/andrescamacho/unitforge-go/internal/adapters/metrics"
	"github.com/andrescamacho/unitforge-go/internal/adapters/persistence"
	"github.com/andrescamacho/unitforge-go/internal/application/common"
	"github.com/andrescamacho/unitforge-go/internal/application/mediator"
	"github.com/andrescamacho/unitforge-go/internal/application/setup"
	"github.com/andrescamacho/unitforge-go/internal/domain/shared"
	"github.com/andrescamacho/unitforge-go/internal/infrastructure/config"
	"github.com/andrescamacho/unitforge-go/internal/infrastructure/database"
	"github.com/andrescamacho/unitforge-go/internal/infrastructure/logging"
)

// app is the wiring shared by every command: config, database, logger and
// a mediator with all handlers registered
type app struct {
	cfg      *config.Config
	db       *gorm.DB
	logger   *zap.Logger
	mediator mediator.Mediator
	resolver *common.UnitResolver

	unitMetrics *metrics.UnitMetricsCollector
}

type appOptions struct {
	// metrics registers the Prometheus collectors; only long running
	// commands serve them
	metrics bool
}

// openApp loads configuration and wires the application
func openApp(opts appOptions) (*app, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}

	logger, err := logging.NewLogger(cfg.Logging)
	if err != nil {
		return nil, err
	}

	db, err := database.Open(&cfg.Database)
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	clock := shared.NewRealClock()
	unitRepo := persistence.NewUnitRepositoryGORM(db, cfg.Campaign.ToOptions(), clock)
	registry := setup.NewHandlerRegistry(setup.Dependencies{
		UnitRepo:   unitRepo,
		People:     persistence.NewGormPersonRepository(db),
		RunRepo:    persistence.NewReconcileRunRepositoryGORM(db),
		Inventory:  persistence.NewInventoryRepositoryGORM(db),
		Sheets:     definition.NewTOMLLoader(),
		SheetIndex: persistence.NewSheetIndexGORM(db),
		Exporter:   export.NewXLSXExporter(),
		Options:    cfg.Campaign.ToOptions(),
		Clock:      clock,
	})

	var middlewares []mediator.Middleware
	var commandMetrics *metrics.CommandMetricsCollector
	if opts.metrics {
		metrics.InitRegistry()
		commandMetrics = metrics.NewCommandMetricsCollector()
		if err := commandMetrics.Register(); err != nil {
			_ = database.Close(db)
			return nil, fmt.Errorf("failed to register command metrics: %w", err)
		}
		middlewares = append(middlewares, metrics.PrometheusMiddleware(commandMetrics))
	}

	m, err := registry.CreateConfiguredMediator(middlewares...)
	if err != nil {
		_ = database.Close(db)
		return nil, fmt.Errorf("failed to register handlers: %w", err)
	}

	a := &app{
		cfg:      cfg,
		db:       db,
		logger:   logger,
		mediator: m,
		resolver: common.NewUnitResolver(unitRepo),
	}

	if opts.metrics {
		a.unitMetrics = metrics.NewUnitMetricsCollector(m, cfg.Metrics.PollInterval)
		if err := a.unitMetrics.Register(); err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to register unit metrics: %w", err)
		}
		metrics.SetGlobalUnitCollector(a.unitMetrics)
	}

	return a, nil
}

// Close releases the database and flushes the logger
func (a *app) Close() {
	if a.unitMetrics != nil {
		a.unitMetrics.Stop()
		metrics.SetGlobalUnitCollector(nil)
	}
	if err := database.Close(a.db); err != nil {
		a.logger.Warn("failed to close database", zap.Error(err))
	}
	_ = a.logger.Sync()
}

// context carries the unit logger into handlers
func (a *app) context(parent context.Context) context.Context {
	return common.WithLogger(parent, logging.NewZapUnitLogger(a.logger))
}

// send dispatches a request and type-asserts the response
func send[R any](ctx context.Context, a *app, request mediator.Request) (*R, error) {
	response, err := a.mediator.Send(ctx, request)
	if err != nil {
		return nil, err
	}
	typed, ok := response.(*R)
	if !ok {
		return nil, fmt.Errorf("unexpected response type %T", response)
	}
	return typed, nil
}

// unitID resolves a unit id or name
func (a *app) unitID(ctx context.Context, ref string) (uuid.UUID, error) {
	return a.resolver.ResolveUnitID(ctx, ref)
}

// withApp opens the app for the duration of fn
func withApp(fn func(ctx context.Context, a *app) error) error {
	a, err := openApp(appOptions{})
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a.context(context.Background()), a)
}
