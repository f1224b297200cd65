// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package skills

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for skill operations.
var (
	// ErrNotFound is returned when a skill's prompt file does not exist.
	ErrNotFound = errors.New("skill not found")

	// ErrValidation is matched by *ValidationError.
	ErrValidation = errors.New("invalid skill name")

	// ErrInvalidConfig is matched by *ConfigError.
	ErrInvalidConfig = errors.New("invalid function configuration")
)

// ValidationError reports a listing entry whose plugin or function name is
// not allowed. A single ValidationError aborts the whole registry build.
type ValidationError struct {
	// Path is the offending storage path.
	Path string
	// Kind is "plugin" or "function".
	Kind string
	// Name is the rejected name.
	Name string
	Err  error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s name %q in %s: %v", e.Kind, e.Name, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrValidation.
func (*ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// ConfigError reports a config.json that could not be parsed or failed
// schema validation.
type ConfigError struct {
	Plugin   string
	Function string
	Err      error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("config for %s.%s: %v", e.Plugin, e.Function, e.Err)
}

// Unwrap returns the underlying error.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrInvalidConfig.
func (*ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// formatNumberedErrors formats a list of messages as a single error with a numbered list.
func formatNumberedErrors(prefix string, msgs []string) error {
	if len(msgs) == 0 {
		return nil
	}
	if len(msgs) == 1 {
		return fmt.Errorf("%s: %s", prefix, msgs[0])
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s with %d errors:\n", prefix, len(msgs))
	for i, msg := range msgs {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, msg)
	}
	return errors.New(strings.TrimSuffix(b.String(), "\n"))
}
