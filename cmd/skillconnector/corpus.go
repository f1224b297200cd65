// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newCorpusCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "corpus",
		Short: "Load and query the text corpus",
	}
	cmd.AddCommand(newCorpusLoadCmd(a), newCorpusSearchCmd(a), newCorpusListCmd(a))
	return cmd
}

func newCorpusLoadCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "load",
		Short: "Embed every corpus line into the index",
		Long: `Embed every line of every object in the memory container into the
configured index. With the volatile index the result only lives for the
duration of the command, which is useful to check the corpus loads.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mem, err := a.openIndex(cmd.Context())
			if err != nil {
				return err
			}
			n, err := a.loadCorpus(cmd.Context(), mem)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "loaded %d lines\n", n)
			return err
		},
	}
}

func newCorpusSearchCmd(a *app) *cobra.Command {
	var minRelevance float64
	cmd := &cobra.Command{
		Use:   "search TEXT...",
		Short: "Print the corpus line most relevant to TEXT",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("min-relevance") {
				minRelevance = a.cfg.Memory.MinRelevance
			}
			s, err := a.searcher(cmd.Context())
			if err != nil {
				return err
			}
			m, err := s.SearchWithThreshold(cmd.Context(), strings.Join(args, " "), minRelevance)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), m)
		},
	}
	cmd.Flags().Float64Var(&minRelevance, "min-relevance", 0, "minimum relevance (default: memory.min_relevance)")
	return cmd
}

func newCorpusListCmd(a *app) *cobra.Command {
	var maxItems int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print indexed corpus lines in id order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if maxItems <= 0 {
				maxItems = a.cfg.Memory.ListMax
			}
			s, err := a.searcher(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for line, err := range s.ListAll(cmd.Context(), maxItems) {
				if err != nil {
					return err
				}
				if _, err := fmt.Fprintln(out, line); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&maxItems, "max", 0, "maximum lines (default: memory.list_max)")
	return cmd
}
