package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/JonMunkholm/reportviewer/internal/analyzer"
	"github.com/JonMunkholm/reportviewer/internal/config"
	"github.com/JonMunkholm/reportviewer/internal/logging"
	"github.com/JonMunkholm/reportviewer/internal/web"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	envErr := godotenv.Overload()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(os.Stdout, cfg.Logging.Level, cfg.Logging.Format)
	if envErr != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}
	slog.Info("configuration loaded", "config", cfg.String())

	client, err := analyzer.New(analyzer.Options{
		URL:           cfg.Analyzer.URL,
		APIKey:        cfg.Analyzer.APIKey,
		Timeout:       cfg.Analyzer.Timeout,
		MaxConcurrent: cfg.Analyzer.MaxConcurrent,
		MaxWait:       cfg.Analyzer.MaxWait,
	})
	if err != nil {
		slog.Error("failed to create analyzer client", "error", err)
		os.Exit(1)
	}

	server := web.NewServer(client, cfg, slog.Default())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	eg, egctx := errgroup.WithContext(ctx)

	eg.Go(server.Start)

	// Graceful shutdown
	eg.Go(func() error {
		<-egctx.Done()
		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if active := client.Limiter().ActiveCount(); active > 0 {
			slog.Info("waiting for analyses to complete", "active", active)
			if err := client.Limiter().WaitForDrain(shutdownCtx); err != nil {
				slog.Warn("analyses did not complete in time", "error", err)
			}
		}
		return server.Shutdown(shutdownCtx)
	})

	if err := eg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
