// Command sweeper retires overdue holds on a fixed interval. It shares the
// service's command layer so expiry semantics cannot drift from the API.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"slabstock/internal/infra/db"
	"slabstock/internal/infra/uow"
	"slabstock/internal/pkg/clock"
	"slabstock/internal/pkg/config"
	"slabstock/internal/pkg/metrics"
	"slabstock/internal/usecase/commands"

	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	pool, cleanup, err := db.Connect(cfg.DB)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	recorder := metrics.NewRecorder(prometheus.NewRegistry())
	holdCommands := commands.NewHoldCommands(
		uow.NewPostgresUoW(pool),
		clock.NewRealClock(),
		cfg.Hold.Duration,
		recorder,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	interval := cfg.Hold.SweepInterval
	if interval <= 0 {
		interval = time.Hour
	}

	slog.Info("sweeper started", "interval", interval)

	sweep(ctx, holdCommands)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("sweeper stopped")
			return
		case <-ticker.C:
			sweep(ctx, holdCommands)
		}
	}
}

func sweep(ctx context.Context, holdCommands commands.HoldCommands) {
	result, err := holdCommands.SweepExpired(ctx)
	if err != nil {
		slog.Error("sweep failed", "error", err)
		return
	}
	if result.Expired > 0 {
		slog.Info("sweep completed", "expired", result.Expired)
	}
}
