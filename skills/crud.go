// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package skills

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

// Skill is the stored representation of one function.
type Skill struct {
	Prompt string `json:"prompt"`
	Config string `json:"config"`
}

// Service reads and writes individual skills. Writes go straight to the store
// and are not reflected in any registry already built from it.
type Service struct {
	store  Store
	logger *slog.Logger
}

// NewService creates a Service over store. A nil logger discards output.
func NewService(store Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{store: store, logger: logger.With("component", "skills")}
}

// Get returns the skill's prompt and config. Config is "" when the skill has
// no config file. It returns ErrNotFound when the prompt does not exist.
func (s *Service) Get(ctx context.Context, plugin, function string) (Skill, error) {
	prompt, ok, err := s.store.ReadText(ctx, PromptPath(plugin, function))
	if err != nil {
		return Skill{}, fmt.Errorf("reading prompt: %w", err)
	}
	if !ok {
		return Skill{}, fmt.Errorf("%w: %s.%s", ErrNotFound, plugin, function)
	}

	config, _, err := s.store.ReadText(ctx, ConfigPath(plugin, function))
	if err != nil {
		return Skill{}, fmt.Errorf("reading config: %w", err)
	}
	return Skill{Prompt: prompt, Config: config}, nil
}

// Insert overwrites the skill's prompt, and its config when config is not
// empty. Names are not validated here; the registry build rejects invalid
// ones.
func (s *Service) Insert(ctx context.Context, plugin, function, prompt, config string) error {
	if err := s.store.WriteText(ctx, PromptPath(plugin, function), prompt); err != nil {
		return fmt.Errorf("writing prompt: %w", err)
	}
	if config != "" {
		if err := s.store.WriteText(ctx, ConfigPath(plugin, function), config); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}
	}
	s.logger.Info("stored skill", "plugin", plugin, "function", function)
	return nil
}

// Delete removes the skill's prompt and config, then removes the plugin
// entry if no other objects remain under it. It returns ErrNotFound when the
// prompt does not exist. The steps are not atomic; an interrupted delete can
// leave a config file or an empty plugin entry behind.
func (s *Service) Delete(ctx context.Context, plugin, function string) error {
	promptPath := PromptPath(plugin, function)
	ok, err := s.store.Exists(ctx, promptPath)
	if err != nil {
		return fmt.Errorf("checking prompt: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: %s.%s", ErrNotFound, plugin, function)
	}

	if err := s.store.Delete(ctx, promptPath); err != nil {
		return fmt.Errorf("deleting prompt: %w", err)
	}

	configPath := ConfigPath(plugin, function)
	hasConfig, err := s.store.Exists(ctx, configPath)
	if err != nil {
		return fmt.Errorf("checking config: %w", err)
	}
	if hasConfig {
		if err := s.store.Delete(ctx, configPath); err != nil {
			return fmt.Errorf("deleting config: %w", err)
		}
	}

	remaining, err := s.store.ListUnder(ctx, plugin+"/")
	if err != nil {
		return fmt.Errorf("listing plugin %s: %w", plugin, err)
	}
	if len(remaining) == 0 {
		if err := s.store.Delete(ctx, plugin); err != nil {
			return fmt.Errorf("deleting plugin %s: %w", plugin, err)
		}
		s.logger.Info("removed empty plugin", "plugin", plugin)
	}

	s.logger.Info("deleted skill", "plugin", plugin, "function", function)
	return nil
}
