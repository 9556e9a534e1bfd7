package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"tubescribe/internal/infra/mediafetch"
	workerPkg "tubescribe/internal/infra/worker"
	"tubescribe/internal/observability/logging"
)

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	sweepConfig, err := workerPkg.LoadSweeperConfig()
	if err != nil {
		logger.Error("failed to load sweeper configuration", slog.Any("error", err))
		os.Exit(1)
	}

	mediaConfig, err := mediafetch.LoadConfig()
	if err != nil {
		logger.Error("failed to load media configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("worker configuration loaded",
		slog.String("media_dir", mediaConfig.Dir),
		slog.Bool("sweeper_enabled", sweepConfig.Enabled()),
		slog.Duration("retention", sweepConfig.Retention),
		slog.String("cron_schedule", sweepConfig.CronSchedule),
		slog.String("timezone", sweepConfig.Timezone),
		slog.Int("health_port", sweepConfig.HealthPort))

	startMetricsServer(ctx, logger)

	healthAddr := fmt.Sprintf(":%d", sweepConfig.HealthPort)
	healthServer := workerPkg.NewHealthServer(healthAddr, logger)
	go func() {
		if err := healthServer.Start(ctx); err != nil && err != http.ErrServerClosed {
			logger.Error("health server failed", slog.Any("error", err))
		}
	}()

	if !sweepConfig.Enabled() {
		// Default mode: media files accumulate, nothing to schedule. The
		// process still serves health and metrics so deployments stay uniform.
		logger.Info("media retention disabled, sweeper idle (set MEDIA_RETENTION to enable)")
		healthServer.SetReady(true)
		<-ctx.Done()
		logger.Info("worker shutting down")
		return
	}

	startSweepCron(ctx, logger, mediaConfig, sweepConfig, healthServer)
}

// startSweepCron schedules the retention sweep and blocks until shutdown.
func startSweepCron(ctx context.Context, logger *slog.Logger, mediaConfig *mediafetch.Config, cfg *workerPkg.SweeperConfig, healthServer *workerPkg.HealthServer) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Error("invalid timezone, using UTC", slog.String("timezone", cfg.Timezone), slog.Any("error", err))
		loc = time.UTC
	}

	metrics := workerPkg.NewSweeperMetrics()
	sweeper := &workerPkg.Sweeper{
		Dir:           mediaConfig.Dir,
		Retention:     cfg.Retention,
		MaxConcurrent: cfg.MaxConcurrent,
		Logger:        logger,
	}

	c := cron.New(cron.WithLocation(loc))
	_, err = c.AddFunc(cfg.CronSchedule, func() {
		runSweepJob(logger, sweeper, cfg, metrics)
	})
	if err != nil {
		logger.Error("failed to add cron job", slog.Any("error", err))
		os.Exit(1)
	}
	c.Start()

	healthServer.SetReady(true)
	logger.Info("worker started",
		slog.String("schedule", cfg.CronSchedule),
		slog.String("timezone", cfg.Timezone))

	<-ctx.Done()
	logger.Info("worker shutting down")
	stopCtx := c.Stop()
	<-stopCtx.Done()
}

// runSweepJob executes a single sweep with timeout and metrics.
func runSweepJob(logger *slog.Logger, sweeper *workerPkg.Sweeper, cfg *workerPkg.SweeperConfig, metrics *workerPkg.SweeperMetrics) {
	startTime := time.Now()
	logger.Info("media sweep started")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.SweepTimeout)
	defer cancel()

	stats, err := sweeper.Run(ctx)
	if err != nil {
		logger.Error("media sweep failed", slog.Any("error", err))
		metrics.RecordRun("failure", time.Since(startTime))
		return
	}

	metrics.RecordRun("success", time.Since(startTime))
	metrics.RecordSweep(stats)

	logger.Info("media sweep completed",
		slog.Int("scanned", stats.Scanned),
		slog.Int("removed", stats.Removed),
		slog.Int64("bytes_reclaimed", stats.BytesReclaimed),
		slog.Duration("duration", stats.Duration))
}
