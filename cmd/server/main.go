package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"catbridge/internal/config"
	"catbridge/internal/core"
	_ "catbridge/internal/core/platforms" // Register all platforms
	"catbridge/internal/history"
	"catbridge/internal/logging"
	"catbridge/internal/parser"
	"catbridge/internal/web"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	log := logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	log.Info("configuration loaded",
		"port", cfg.Server.Port,
		"history_enabled", cfg.HistoryEnabled(),
		"max_combinations", cfg.Engine.MaxCombinations,
		"rate_limit_enabled", cfg.Rate.Enabled,
	)

	ctx := context.Background()

	var (
		pool  *pgxpool.Pool
		store *history.Store
	)
	if cfg.HistoryEnabled() {
		pool, err = connectPool(ctx, cfg)
		if err != nil {
			log.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		store = history.New(pool)
		if err := store.EnsureSchema(ctx); err != nil {
			log.Error("failed to prepare history schema", "error", err)
			os.Exit(1)
		}
	} else {
		log.Info("no database configured, conversion history disabled")
	}

	var conversionLog core.ConversionLog
	if store != nil {
		conversionLog = store
	}
	service := core.NewService(log, conversionLog, parser.Options{
		SkipValidation:  cfg.Engine.SkipValidation,
		MaxCombinations: cfg.Engine.MaxCombinations,
	})

	log.Info("platforms registered", "count", core.PlatformCount())

	server := web.NewServer(service, store, log, web.Options{
		MaxUploadBytes: cfg.Upload.MaxFileSize,
		RateLimit:      rateLimit(cfg),
	})

	// Background retention sweep for the audit trail.
	jobCtx, cancelJobs := context.WithCancel(context.Background())
	if store != nil {
		go purgeLoop(jobCtx, log, store, cfg.Engine.HistoryRetention)
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		log.Info("shutting down...")
		cancelJobs()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error("shutdown error", "error", err)
		}
	}()

	if err := server.Start(cfg.Server.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

// connectPool builds, connects and pings the history pool.
func connectPool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.Database.URL)
	if err != nil {
		return nil, err
	}
	poolConfig.MaxConns = int32(cfg.Database.MaxConns)
	poolConfig.MinConns = int32(cfg.Database.MinConns)
	poolConfig.MaxConnLifetime = cfg.Database.MaxConnLifetime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	if u, err := url.Parse(cfg.Database.URL); err == nil {
		slog.Info("connected to database", "name", strings.TrimPrefix(u.Path, "/"))
	}
	return pool, nil
}

// purgeLoop deletes audit rows past the retention window once a day.
func purgeLoop(ctx context.Context, log *slog.Logger, store *history.Store, retention time.Duration) {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := store.Purge(ctx, retention)
			if err != nil {
				log.Warn("history purge failed", "error", err)
				continue
			}
			if n > 0 {
				log.Info("history purged", "rows", n)
			}
		}
	}
}

func rateLimit(cfg *config.Config) int {
	if !cfg.Rate.Enabled {
		return 0
	}
	return cfg.Rate.RequestsPerMinute
}
