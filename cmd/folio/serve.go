// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"folio/internal/cache"
	"folio/internal/handlers"
	"folio/internal/query"
	"folio/internal/router"
	"folio/internal/site"
	"folio/internal/watch"
)

func newServeCmd(a *app) *cobra.Command {
	var (
		drafts  bool
		noWatch bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON preview API and reload on content changes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx, a.mode(drafts), !noWatch)
		},
	}
	cmd.Flags().BoolVar(&drafts, "drafts", false, "include drafts regardless of APP_ENV")
	cmd.Flags().BoolVar(&noWatch, "no-watch", false, "do not reload on content changes")
	return cmd
}

func (a *app) serve(ctx context.Context, mode query.Mode, watchContent bool) error {
	s, err := a.buildSite(mode)
	if err != nil {
		return err
	}
	holder := site.NewHolder(s)

	// Valkey is optional for the preview server.
	var responses *cache.ResponseCache
	if a.cfg.CacheEnabled() {
		client, err := cache.ConnectValkey(ctx, a.cfg.ValkeyHost, a.cfg.ValkeyPort, a.cfg.ValkeyPassword)
		if err != nil {
			slog.Warn("response cache disabled", "error", err)
		} else {
			defer client.Close()
			responses = cache.NewResponseCache(client, a.cfg.CacheTTL)
		}
	}

	if watchContent {
		go func() {
			err := watch.Run(ctx, a.cfg.ContentDir, watch.DefaultDebounce, func() {
				a.reload(ctx, holder, responses, mode)
			})
			if err != nil {
				slog.Error("content watcher stopped", "error", err)
			}
		}()
	}

	srv := &http.Server{
		Addr:         a.cfg.Addr(),
		Handler:      router.New(handlers.NewAPI(holder, responses)),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", a.cfg.Addr(), "mode", mode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		slog.Info("shutdown signal received")
	}

	// Give active requests up to 30 seconds to complete.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	slog.Info("server stopped gracefully")
	return nil
}

// reload rebuilds the snapshot. A failed build keeps serving the previous
// one.
func (a *app) reload(ctx context.Context, holder *site.Holder, responses *cache.ResponseCache, mode query.Mode) {
	s, err := a.buildSite(mode)
	if err != nil {
		slog.Error("reload failed, keeping previous content", "error", err)
		return
	}
	prev := holder.Swap(s)
	responses.InvalidateAll(ctx)
	slog.Info("content reloaded", "previous_build", prev.BuildID, "build_id", s.BuildID)
}
