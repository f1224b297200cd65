// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package skills

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Builder discovers skills in a Store and assembles them into a Registry.
type Builder struct {
	store  Store
	logger *slog.Logger
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithBuilderLogger sets the builder's logger.
func WithBuilderLogger(l *slog.Logger) BuilderOption {
	return func(b *Builder) {
		if l != nil {
			b.logger = l
		}
	}
}

// NewBuilder creates a Builder reading from store.
func NewBuilder(store Store, opts ...BuilderOption) *Builder {
	b := &Builder{
		store:  store,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.logger = b.logger.With("component", "skills")
	return b
}

// Build lists the store, groups the listing and loads every function.
// Functions whose template is missing or blank are skipped, as are plugins
// left without functions. An invalid name or config aborts the build and no
// registry is returned.
func (b *Builder) Build(ctx context.Context) (*Registry, error) {
	entries, err := b.store.ListUnder(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("listing skills: %w", err)
	}

	tree, err := GroupListing(entries)
	if err != nil {
		return nil, err
	}

	plugins := make([]Plugin, 0, len(tree.Plugins))
	for _, tp := range tree.Plugins {
		plugin := Plugin{Name: tp.Name}
		for _, fn := range tp.Functions {
			def, ok, err := b.loadFunction(ctx, tp.Name, fn)
			if err != nil {
				return nil, err
			}
			if !ok {
				b.logger.Debug("skipping function without template", "plugin", tp.Name, "function", fn)
				continue
			}
			plugin.Functions = append(plugin.Functions, def)
		}
		if len(plugin.Functions) > 0 {
			plugins = append(plugins, plugin)
		}
	}

	reg := NewRegistry(plugins)
	b.logger.Info("built skill registry", "plugins", len(plugins), "functions", reg.Len())
	return reg, nil
}

// Register builds a registry and hands it to engine.
func (b *Builder) Register(ctx context.Context, engine Engine) (*Registry, error) {
	reg, err := b.Build(ctx)
	if err != nil {
		return nil, err
	}
	if err := engine.ReplacePlugins(ctx, reg); err != nil {
		return nil, fmt.Errorf("registering plugins: %w", err)
	}
	return reg, nil
}

func (b *Builder) loadFunction(ctx context.Context, plugin, function string) (FunctionDefinition, bool, error) {
	template, ok, err := b.store.ReadText(ctx, PromptPath(plugin, function))
	if err != nil {
		return FunctionDefinition{}, false, fmt.Errorf("reading template for %s.%s: %w", plugin, function, err)
	}
	if !ok || strings.TrimSpace(template) == "" {
		return FunctionDefinition{}, false, nil
	}

	cfg := DefaultConfig()
	raw, ok, err := b.store.ReadText(ctx, ConfigPath(plugin, function))
	if err != nil {
		return FunctionDefinition{}, false, fmt.Errorf("reading config for %s.%s: %w", plugin, function, err)
	}
	if ok {
		cfg, err = ParseConfig([]byte(raw))
		if err != nil {
			return FunctionDefinition{}, false, &ConfigError{Plugin: plugin, Function: function, Err: err}
		}
	}
	cfg.Name = function

	return FunctionDefinition{
		Plugin:   plugin,
		Name:     function,
		Template: template,
		Config:   cfg,
	}, true, nil
}
