// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package logging builds the [log/slog.Logger] used by every skillconnector
component.

# Defaults

  - Format: JSON ([FormatJSON])
  - Level: INFO
  - Output: [os.Stderr]
  - Timestamps: [time.RFC3339]

# Configuration

The log section of the configuration file names the level and format as
strings. ParseLevel and ParseFormat turn them into options:

	lvl, err := logging.ParseLevel(cfg.Log.Level)
	format, err := logging.ParseFormat(cfg.Log.Format)
	logger := logging.New(logging.WithLevel(lvl), logging.WithFormat(format))

Components take the logger through their own options (for example
storage.WithLogger) and fall back to [log/slog.Default] when none is given.

# Testing

Inject a buffer to capture output:

	var buf bytes.Buffer
	logger := logging.New(logging.WithOutput(&buf))
*/
package logging
