// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/stacklok/skillconnector/api"
	"github.com/stacklok/skillconnector/mcpserver"
	"github.com/stacklok/skillconnector/skills"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API and MCP endpoint",
		Long: `Build the skill registry from storage, load the corpus and serve the
HTTP API. The MCP streamable HTTP endpoint is mounted at /mcp.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr != "" {
				a.cfg.Server.Address = addr
			}
			return runServe(cmd.Context(), a)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.address)")
	return cmd
}

func buildServers(ctx context.Context, a *app) (*api.Server, error) {
	builder, err := a.builder(ctx)
	if err != nil {
		return nil, err
	}
	svc, err := a.skillService(ctx)
	if err != nil {
		return nil, err
	}
	searcher, err := a.searcher(ctx)
	if err != nil {
		return nil, err
	}

	holder := &skills.Holder{}
	mcpSrv := mcpserver.New(holder, version,
		mcpserver.WithLogger(a.logger),
		mcpserver.WithSearcher(searcher, a.cfg.Memory.MinRelevance),
	)
	if _, err := builder.Register(ctx, mcpSrv); err != nil {
		return nil, fmt.Errorf("building registry: %w", err)
	}

	return api.New(holder, svc, searcher,
		api.WithLogger(a.logger.With("component", "api")),
		api.WithRebuild(builder, mcpSrv),
		api.WithSearchDefaults(a.cfg.Memory.MinRelevance, a.cfg.Memory.ListMax),
		api.WithMetrics(a.metrics, a.metrics),
		api.WithMCP(mcpSrv.HTTPHandler("/mcp")),
	)
}

func runServe(ctx context.Context, a *app) error {
	srv, err := buildServers(ctx, a)
	if err != nil {
		return err
	}

	ln, err := net.Listen("tcp", a.cfg.Server.Address)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", a.cfg.Server.Address, err)
	}
	httpSrv := &http.Server{
		Handler:           srv.Handler(),
		ReadHeaderTimeout: a.cfg.Server.ReadHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("serving", "address", ln.Addr().String())
		errCh <- httpSrv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
