// Package main provides the entry point for the ACS console server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/acsops/acs-console/internal/api"
	"github.com/acsops/acs-console/internal/auth"
	"github.com/acsops/acs-console/internal/config"
	"github.com/acsops/acs-console/internal/devcache"
	"github.com/acsops/acs-console/internal/metrics"
	"github.com/acsops/acs-console/internal/nbi"
	"github.com/acsops/acs-console/internal/proxy"
	"github.com/acsops/acs-console/internal/store"
)

const version = "1.0.0"

func main() {
	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	st, err := store.Connect(context.Background(), cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		return err
	}
	defer func() {
		//nolint:errcheck
		_ = st.Close(context.Background())
	}()

	nbiURL, err := url.Parse(cfg.NBIURL)
	if err != nil {
		return fmt.Errorf("invalid NBI_URL: %w", err)
	}

	if err := metrics.Init(prometheus.DefaultRegisterer, version); err != nil {
		return err
	}

	client := nbi.NewClient(nbi.WithBaseURL(cfg.NBIURL))
	cache := devcache.New(api.NewDeviceFetcher(client), devcache.NewMemoryStore())
	authenticator := auth.New(st, []byte(cfg.JWTSecret))

	handler := api.NewHandler(st, authenticator, cache, logger)
	router := api.NewRouter(api.RouterConfig{
		Handler:  handler,
		Verifier: authenticator,
		NBIProxy: proxy.New(nbiURL, logger),
		WebDist:  cfg.WebDist,
		Logger:   logger,
	})

	logger.Info("ACS console starting",
		"version", version,
		"addr", cfg.ListenAddr,
		"nbi", cfg.NBIURL,
	)
	return http.ListenAndServe(cfg.ListenAddr, router)
}

// newLogger builds the process-wide JSON logger at the configured level.
func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}
