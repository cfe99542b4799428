package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sports-scoreboard/internal/cache"
	"sports-scoreboard/internal/config"
	"sports-scoreboard/internal/httpapi"
	"sports-scoreboard/internal/logging"
	"sports-scoreboard/internal/logos"
	"sports-scoreboard/internal/metrics"
	"sports-scoreboard/internal/plugin"
	"sports-scoreboard/internal/render"
	"sports-scoreboard/internal/snapshots"
)

const appVersion = "dev"

const (
	displayTick     = time.Second
	updateTick      = 10 * time.Second
	shutdownTimeout = 10 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.NewLogger(logging.Config{}).Error("config load failed", "err", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(logging.Config{
		Level:   os.Getenv("LOG_LEVEL"),
		Format:  os.Getenv("LOG_FORMAT"),
		Service: "sports-scoreboard",
		Version: appVersion,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	recorder, promHandler, metricsStop, err := metrics.Setup(ctx, metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	})
	if err != nil {
		logger.Error("telemetry setup failed", "err", err)
		os.Exit(1)
	}

	store, closeCache := buildCache(ctx, cfg, logger)
	defer closeCache()

	var snaps *snapshots.Store
	if cfg.Snapshots.Enabled {
		snaps = snapshots.NewStore(cfg.Snapshots.Dir, time.Duration(cfg.Snapshots.MaxAgeSeconds*float64(time.Second)))
	}
	var logoCache *logos.Downloader
	if cfg.Logos.Enabled {
		logoCache = logos.NewDownloader(cfg.Logos.Dir, nil, logger)
	}

	p := plugin.New(cfg, plugin.Deps{
		Cache:     store,
		Renderer:  render.NewTerminal(os.Stdout),
		Snapshots: snaps,
		Logos:     logoCache,
		Logger:    logger,
		Recorder:  recorder,
	})

	api := httpapi.New(cfg, p, promHandler, logger, recorder)
	api.Start()

	run(ctx, p, logger)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	api.Shutdown(shutdownCtx)
	if err := metricsStop(shutdownCtx); err != nil {
		logger.Warn("metrics shutdown failed", "err", err)
	}
	p.Cleanup()
	logger.Info("shutdown complete")
}

// run drives the display loop until the context is cancelled: managers
// refresh on the update tick, one frame renders per display tick.
func run(ctx context.Context, p *plugin.Plugin, logger *slog.Logger) {
	p.Update()

	display := time.NewTicker(displayTick)
	defer display.Stop()
	update := time.NewTicker(updateTick)
	defer update.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("shutdown signal received")
			return
		case <-update.C:
			p.Update()
		case <-display.C:
			p.Display("", false)
		}
	}
}

// buildCache picks the configured backend, falling back to memory when Redis
// is unreachable so the board still comes up.
func buildCache(ctx context.Context, cfg config.Config, logger *slog.Logger) (cache.Store, func()) {
	if cfg.Cache.Backend == "redis" {
		r, err := cache.NewRedis(ctx, cache.RedisConfig{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		})
		if err == nil {
			logger.Info("redis cache connected", "addr", cfg.Cache.RedisAddr)
			return r, func() {
				if err := r.Close(); err != nil {
					logger.Warn("redis close failed", "err", err)
				}
			}
		}
		logger.Warn("redis unavailable, using in-memory cache", "err", err)
	}
	return cache.NewMemory(), func() {}
}
