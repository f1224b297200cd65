// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package skills

import "context"

// File names inside a function directory.
const (
	// PromptFileName marks a directory as a function and holds its template.
	PromptFileName = "skprompt.txt"

	// ConfigFileName holds the function's optional JSON configuration.
	ConfigFileName = "config.json"
)

// Store is the storage surface the skill pipeline needs.
// *storage.Container implements it.
type Store interface {
	Exists(ctx context.Context, path string) (bool, error)
	ReadText(ctx context.Context, path string) (string, bool, error)
	WriteText(ctx context.Context, path, text string) error
	Delete(ctx context.Context, path string) error
	ListUnder(ctx context.Context, prefix string) ([][]string, error)
}

// PromptPath returns the storage path of a function's template.
func PromptPath(plugin, function string) string {
	return plugin + "/" + function + "/" + PromptFileName
}

// ConfigPath returns the storage path of a function's configuration.
func ConfigPath(plugin, function string) string {
	return plugin + "/" + function + "/" + ConfigFileName
}
