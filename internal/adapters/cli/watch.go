package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/andrescamacho/unitforge-go/internal/adapters/definition"
	"github.com/andrescamacho/unitforge-go/internal/adapters/metrics"
	"github.com/andrescamacho/unitforge-go/internal/application/unit/commands"
	"github.com/andrescamacho/unitforge-go/internal/infrastructure/pidfile"
)

// NewWatchCommand creates the watch command
func NewWatchCommand() *cobra.Command {
	var (
		dir         string
		serveMetric bool
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Reconcile units whenever their design sheet changes",
		Long:  `Watch the sheet directory and reconcile every unit imported from a sheet
as soon as the sheet is saved. Only one watcher may run per lock file.

With metrics enabled, Prometheus metrics are served while watching.

Examples:
  unitforge watch
  unitforge watch --dir ./sheets --metrics`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(appOptions{metrics: true})
			if err != nil {
				return err
			}
			defer a.Close()

			if cmd.Flags().Changed("dir") {
				a.cfg.Watch.Dir = dir
			}
			if cmd.Flags().Changed("metrics") {
				a.cfg.Metrics.Enabled = serveMetric
			}

			lock := pidfile.New(a.cfg.Watch.LockFile)
			if err := lock.Acquire(); err != nil {
				var held *pidfile.HeldError
				if errors.As(err, &held) {
					return fmt.Errorf("another watcher is running (PID %d)", held.PID)
				}
				return err
			}
			defer func() {
				if err := lock.Release(); err != nil {
					a.logger.Warn("failed to release lock", zap.Error(err))
				}
			}()

			ctx, stop := signal.NotifyContext(a.context(context.Background()), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runWatch(ctx, a)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Sheet directory (default: watch.dir from config)")
	cmd.Flags().BoolVar(&serveMetric, "metrics", false, "Serve Prometheus metrics (default: metrics.enabled from config)")

	return cmd
}

func runWatch(ctx context.Context, a *app) error {
	if a.cfg.Metrics.Enabled {
		server := metrics.NewServer(a.cfg.Metrics.Host, a.cfg.Metrics.Port, a.cfg.Metrics.Path)
		serverErrs := server.Start()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Shutdown(shutdownCtx)
		}()
		go func() {
			for err := range serverErrs {
				a.logger.Error("metrics server failed", zap.Error(err))
			}
		}()
		a.unitMetrics.Start(ctx)
		a.logger.Info("serving metrics",
			zap.String("addr", fmt.Sprintf("%s:%d", a.cfg.Metrics.Host, a.cfg.Metrics.Port)),
			zap.String("path", a.cfg.Metrics.Path))
	}

	watcher, err := definition.NewWatcher(a.cfg.Watch.Dir, a.cfg.Watch.Debounce)
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Start(ctx); err != nil {
		watcher.Stop()
		return fmt.Errorf("failed to watch %s: %w", a.cfg.Watch.Dir, err)
	}
	defer watcher.Stop()

	a.logger.Info("watching design sheets", zap.String("dir", watcher.Dir))
	fmt.Fprintf(stdout, "Watching %s (Ctrl+C to stop)\n", watcher.Dir)

	for {
		select {
		case <-ctx.Done():
			fmt.Fprintln(stdout, "\nStopped.")
			return nil

		case err, ok := <-watcher.Errors:
			if ok {
				a.logger.Warn("watcher error", zap.Error(err))
			}

		case path, ok := <-watcher.Changes:
			if !ok {
				return nil
			}
			handleSheetChange(ctx, a, path)
		}
	}
}

func handleSheetChange(ctx context.Context, a *app, path string) {
	// partial results come back alongside the error
	response, err := a.mediator.Send(ctx, &commands.SheetChangedCommand{SheetPath: path})
	if result, ok := response.(*commands.SheetChangedResponse); ok {
		for i, name := range result.Units {
			fmt.Fprintf(stdout, "↻ %s (%s)\n", name, path)
			if i < len(result.Reports) {
				printReport(stdout, result.Reports[i])
			}
		}
	}
	if err != nil {
		a.logger.Error("failed to reconcile changed sheet", zap.String("sheet", path), zap.Error(err))
	}
}
