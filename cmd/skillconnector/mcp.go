// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stacklok/skillconnector/mcpserver"
	"github.com/stacklok/skillconnector/skills"
)

func newMCPCmd(a *app) *cobra.Command {
	var withSearch bool
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve skills as MCP prompts over stdio",
		Long: `Serve every registered function as an MCP prompt on stdin and stdout.
Logs go to stderr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			builder, err := a.builder(ctx)
			if err != nil {
				return err
			}

			opts := []mcpserver.Option{mcpserver.WithLogger(a.logger)}
			if withSearch {
				searcher, err := a.searcher(ctx)
				if err != nil {
					return err
				}
				opts = append(opts, mcpserver.WithSearcher(searcher, a.cfg.Memory.MinRelevance))
			}

			srv := mcpserver.New(&skills.Holder{}, version, opts...)
			if _, err := builder.Register(ctx, srv); err != nil {
				return fmt.Errorf("building registry: %w", err)
			}
			return srv.ServeStdio(ctx)
		},
	}
	cmd.Flags().BoolVar(&withSearch, "search", true, "offer the search_memory tool")
	return cmd
}
