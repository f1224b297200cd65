// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := New(WithOutput(&buf))
	logger.Debug("hidden")
	assert.Empty(t, buf.String(), "DEBUG is below the default level")

	logger.Info("connected", "container", "skills")
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "connected", entry["msg"])
	assert.Equal(t, "skills", entry["container"])

	ts, ok := entry["time"].(string)
	require.True(t, ok)
	_, err := time.Parse(time.RFC3339, ts)
	assert.NoError(t, err)
}

func TestNew_TextFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	New(WithOutput(&buf), WithFormat(FormatText), WithLevel(slog.LevelDebug)).Debug("hello", "k", "v")
	out := buf.String()
	assert.Contains(t, out, "level=DEBUG")
	assert.Contains(t, out, "k=v")
	assert.False(t, strings.HasPrefix(out, "{"))
}

func TestNew_DynamicLevel(t *testing.T) {
	t.Parallel()

	var lvl slog.LevelVar
	lvl.Set(slog.LevelError)
	var buf bytes.Buffer
	logger := New(WithOutput(&buf), WithLevel(&lvl))

	logger.Warn("dropped")
	assert.Empty(t, buf.String())
	lvl.Set(slog.LevelWarn)
	logger.Warn("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"", slog.LevelInfo, false},
		{"debug", slog.LevelDebug, false},
		{"WARN", slog.LevelWarn, false},
		{" error ", slog.LevelError, false},
		{"loud", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	f, err = ParseFormat("Text")
	require.NoError(t, err)
	assert.Equal(t, FormatText, f)
	assert.Equal(t, "text", f.String())

	_, err = ParseFormat("xml")
	require.Error(t, err)
}

func TestReplaceAttr(t *testing.T) {
	t.Parallel()

	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	got := replaceAttr(nil, slog.Time(slog.TimeKey, ts))
	assert.Equal(t, "2026-03-01T12:00:00Z", got.Value.String())

	other := replaceAttr(nil, slog.String("k", "v"))
	assert.Equal(t, "v", other.Value.String())
}
