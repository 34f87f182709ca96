// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mofeiss/metacubexd/internal/api"
	"github.com/mofeiss/metacubexd/internal/config"
	"github.com/mofeiss/metacubexd/internal/configfile"
	xglog "github.com/mofeiss/metacubexd/internal/log"
	"github.com/mofeiss/metacubexd/internal/mihomo"
	"github.com/mofeiss/metacubexd/internal/watch"
)

var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	listen := flag.String("listen", "", "listen address (overrides MCD_LISTEN)")
	flag.Parse()

	if *showVersion {
		fmt.Printf("%s (commit: %s, built: %s)\n", version, commit, buildDate)
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}
	if *listen != "" {
		cfg.Listen = *listen
	}

	xglog.Configure(xglog.Config{
		Level:   cfg.LogLevel,
		Service: "metacubexd",
		Version: version,
	})
	logger := xglog.WithComponent("main")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store := configfile.NewStore(cfg.ConfigPath)
	daemon := mihomo.NewClient(cfg.ControllerURL, cfg.ControllerSecret, cfg.ClientTimeout)
	server := api.New(cfg, store, daemon)

	watcher, err := watch.New(cfg.ConfigPath)
	if err != nil {
		// The backend still works without the watcher; the dashboard just
		// loses the changed-on-disk signal.
		logger.Warn().Err(err).Str("path", cfg.ConfigPath).Msg("config watcher disabled")
	}

	httpServer := &http.Server{
		Addr:              cfg.Listen,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info().
			Str("event", "server.started").
			Str("listen", cfg.Listen).
			Str("config_path", cfg.ConfigPath).
			Str("controller", cfg.ControllerURL).
			Msg("dashboard backend listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if watcher != nil {
		g.Go(func() error {
			return watcher.Run(ctx)
		})
	}

	if err := g.Wait(); err != nil {
		logger.Error().Err(err).Msg("shutdown with error")
		os.Exit(1)
	}
	logger.Info().Str("event", "server.stopped").Msg("shutdown complete")
}
