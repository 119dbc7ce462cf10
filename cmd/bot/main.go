package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mtowers/approach-control/internal/config"
	"github.com/mtowers/approach-control/internal/domain"
	"github.com/mtowers/approach-control/internal/httpserver"
	"github.com/mtowers/approach-control/internal/metrics"
	"github.com/mtowers/approach-control/internal/reddit"
	"github.com/mtowers/approach-control/internal/skyvector"
	"github.com/mtowers/approach-control/internal/stream"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger.Info("contacting clearance delivery", "bot", cfg.Username, "subreddit", config.Subreddit)

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	client := reddit.NewClient("", "", reddit.Credentials{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Username:     cfg.Username,
		Password:     cfg.Password,
	}, cfg.UserAgent)

	resolver := skyvector.NewResolver("", logger, collector)
	processor := domain.NewProcessor(client, resolver, cfg.Username, logger)

	supervisor := stream.NewSupervisor(client, processor, stream.Config{
		Subreddit:    config.Subreddit,
		PollInterval: cfg.PollInterval,
		FetchLimit:   cfg.FetchLimit,
	}, logger, collector)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received signal, shutting down", "signal", sig)
		cancel()
	}()

	// The observability server runs beside the stream; its failure never
	// stops the bot.
	server := httpserver.NewServer(cfg, registry, logger)
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server exited with error", "error", err)
		}
	}()
	defer func() {
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("error shutting down http server", "error", err)
		}
	}()

	if err := supervisor.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
