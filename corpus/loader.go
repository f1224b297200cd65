// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package corpus

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

// Collection is the memory collection corpus lines are saved into.
const Collection = "Data"

// Source is the storage surface the loader reads from.
// *storage.Container implements it.
type Source interface {
	ReadText(ctx context.Context, path string) (string, bool, error)
	ListUnder(ctx context.Context, prefix string) ([][]string, error)
}

// Memory is the index the corpus is saved into and searched from.
// *memory.TextMemory implements it.
type Memory interface {
	Save(ctx context.Context, collection, id, text string) error
}

// Loader reads a corpus container into a Memory.
type Loader struct {
	source Source
	memory Memory
	logger *slog.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithLoaderLogger sets the logger used for load progress.
func WithLoaderLogger(l *slog.Logger) LoaderOption {
	return func(ld *Loader) {
		if l != nil {
			ld.logger = l
		}
	}
}

// NewLoader creates a loader from source into mem.
func NewLoader(source Source, mem Memory, opts ...LoaderOption) *Loader {
	ld := &Loader{source: source, memory: mem, logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(ld)
	}
	return ld
}

// Load saves every line of every object in the source and returns the
// number of lines saved. Blank lines are saved too so that ids stay aligned
// with line positions. Objects that vanish between listing and reading are
// skipped.
func (ld *Loader) Load(ctx context.Context) (int, error) {
	entries, err := ld.source.ListUnder(ctx, "")
	if err != nil {
		return 0, fmt.Errorf("listing corpus: %w", err)
	}

	next := 0
	for _, segments := range entries {
		path := strings.Join(segments, "/")
		text, ok, err := ld.source.ReadText(ctx, path)
		if err != nil {
			return next, fmt.Errorf("reading corpus object %q: %w", path, err)
		}
		if !ok {
			ld.logger.Debug("corpus object disappeared, skipping", "path", path)
			continue
		}

		lines := splitLines(text)
		for _, line := range lines {
			if err := ld.memory.Save(ctx, Collection, strconv.Itoa(next), line); err != nil {
				return next, fmt.Errorf("saving line %d of %q: %w", next, path, err)
			}
			next++
		}
		ld.logger.Debug("loaded corpus object", "path", path, "lines", len(lines))
	}

	ld.logger.Info("corpus loaded", "objects", len(entries), "lines", next)
	return next, nil
}

// splitLines splits text on "\n", dropping one trailing "\r" per line. A
// final newline does not yield an extra empty line. Empty text has no lines.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.TrimSuffix(text, "\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
