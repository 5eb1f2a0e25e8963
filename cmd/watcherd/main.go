package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmittmann/tint"

	"github.com/cyfung/portfolio-helper-sub001/internal/config"
	"github.com/cyfung/portfolio-helper-sub001/internal/model"
	"github.com/cyfung/portfolio-helper-sub001/internal/quotes"
	"github.com/cyfung/portfolio-helper-sub001/internal/store"
	"github.com/cyfung/portfolio-helper-sub001/internal/version"
	"github.com/cyfung/portfolio-helper-sub001/internal/yahoo"
)

func main() {
	configPath := flag.String("config", "configs/watcherd.yaml", "path to config file")
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Set up structured logging
	logger := newLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting watcherd",
		"version", version.Version,
		"commit", version.Commit,
		"config", *configPath,
	)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	// Create quote fetcher
	fetcher := yahoo.NewClient(
		yahoo.WithBaseURL(cfg.Source.BaseURL),
		yahoo.WithTimeout(cfg.Source.Timeout()),
		yahoo.WithUserAgent(cfg.Source.UserAgent),
		yahoo.WithLogger(logger),
	)

	svc := quotes.New(fetcher,
		quotes.WithLogger(logger),
		quotes.WithRefreshConcurrency(cfg.Poll.RefreshConcurrency),
	)

	// Optional last-known-quote persistence
	var quoteStore *store.Store
	if cfg.Database.Enabled {
		logger.Info("connecting to database",
			"host", cfg.Database.Postgres.Host,
			"port", cfg.Database.Postgres.Port,
			"database", cfg.Database.Postgres.Name,
		)

		quoteStore, err = store.Open(ctx, cfg.Database.Postgres, logger)
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer quoteStore.Close()

		// Serve last-known values from the previous run until fresh
		// fetches replace them.
		persisted, err := quoteStore.LoadQuotes(ctx)
		if err != nil {
			logger.Warn("could not load persisted quotes", "error", err)
		} else if len(persisted) > 0 {
			if err := svc.Seed(persisted...); err != nil {
				logger.Warn("could not seed persisted quotes", "error", err)
			}
		}

		svc.OnUpdate(func(symbol string, rec model.QuoteRecord) {
			saveCtx, saveCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer saveCancel()
			if err := quoteStore.SaveQuote(saveCtx, rec); err != nil {
				logger.Warn("failed to persist quote", "symbol", symbol, "error", err)
			}
		})
	}

	if err := svc.Register(cfg.Watchlist.Symbols...); err != nil {
		logger.Error("failed to register watchlist", "error", err)
		os.Exit(1)
	}

	// Warm the cache once before the scheduler takes over.
	if err := svc.RefreshAll(ctx); err != nil {
		logger.Warn("warmup refresh incomplete", "error", err)
	}

	if err := svc.StartPolling(cfg.Watchlist.Symbols, cfg.Poll.Interval()); err != nil {
		logger.Error("failed to start polling", "error", err)
		os.Exit(1)
	}

	// Health/debug server
	healthServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Health.Port),
		Handler: newHealthHandler(svc, quoteStore),
	}

	go func() {
		logger.Info("starting health server", "port", cfg.Health.Port)
		if err := healthServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("health server error", "error", err)
		}
	}()

	logger.Info("watcherd running",
		"symbols", len(svc.Tracked()),
		"interval", cfg.Poll.Interval(),
		"health_url", fmt.Sprintf("http://localhost:%d/health", cfg.Health.Port),
	)

	// Wait for shutdown
	<-ctx.Done()

	logger.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	healthServer.Shutdown(shutdownCtx)

	if err := svc.Shutdown(); err != nil {
		logger.Error("shutdown error", "error", err)
	}

	logger.Info("watcherd stopped")
}

func newLogger(cfg config.LogConfig) *slog.Logger {
	level := parseLevel(cfg.Level)
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		}))
	}
	return slog.New(tint.NewHandler(os.Stdout, &tint.Options{
		Level:      level,
		TimeFormat: time.RFC3339,
		NoColor:    os.Getenv("NO_COLOR") != "",
	}))
}

func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// newHealthHandler creates the HTTP handler for health checks and cache
// inspection.
func newHealthHandler(svc *quotes.Service, quoteStore *store.Store) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		health := struct {
			Status     string         `json:"status"`
			Components map[string]any `json:"components"`
		}{
			Status:     "healthy",
			Components: make(map[string]any),
		}

		health.Components["quote_service"] = map[string]any{
			"state":   svc.State(),
			"tracked": len(svc.Tracked()),
		}
		if !svc.IsPolling() {
			health.Status = "degraded"
		}

		if quoteStore != nil {
			if err := quoteStore.Ping(ctx); err != nil {
				health.Status = "unhealthy"
				health.Components["database"] = map[string]string{
					"status": "disconnected",
					"error":  err.Error(),
				}
			} else {
				health.Components["database"] = "connected"
			}
		}

		w.Header().Set("Content-Type", "application/json")
		if health.Status == "unhealthy" {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		json.NewEncoder(w).Encode(health)
	})

	mux.HandleFunc("/quotes", func(w http.ResponseWriter, r *http.Request) {
		tracked := svc.Tracked()
		records := svc.GetAll(tracked)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"count":  len(tracked),
			"quotes": records,
		})
	})

	return mux
}
