// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package storage_test

import (
	"context"
	"io"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stacklok/skillconnector/storage"
)

// fastPolicy keeps retry tests quick.
var fastPolicy = storage.RetryPolicy{
	BaseDelay:      time.Millisecond,
	MaxRetries:     2,
	MaxDelay:       2 * time.Millisecond,
	NetworkTimeout: time.Second,
}

type backendCase struct {
	name       string
	credential func(t *testing.T) string
}

func backendCases() []backendCase {
	return []backendCase{
		{"memory", func(*testing.T) string { return "mem://local" }},
		{"filesystem", func(t *testing.T) string { return "file://" + t.TempDir() }},
		{"redis", func(t *testing.T) string { return "redis://" + miniredis.RunT(t).Addr() }},
	}
}

// connect returns a container whose backend appends in 4-byte blocks.
func connect(t *testing.T, credential string) *storage.Container {
	t.Helper()
	adapter := storage.NewAdapter(
		storage.WithRetryPolicy(fastPolicy),
		storage.WithMaxAppendBlockBytes(4),
	)
	t.Cleanup(func() { _ = adapter.Close() })

	c, err := adapter.Connect(context.Background(), credential, "skills")
	require.NoError(t, err)
	return c
}

func TestContainer_TextRoundTrip(t *testing.T) {
	t.Parallel()

	for _, bc := range backendCases() {
		t.Run(bc.name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()
			c := connect(t, bc.credential(t))

			_, ok, err := c.ReadText(ctx, "writer/summarize/skprompt.txt")
			require.NoError(t, err)
			assert.False(t, ok, "missing object reads as absent")

			require.NoError(t, c.WriteText(ctx, "writer/summarize/skprompt.txt", "Summarize {{$input}}"))
			text, ok, err := c.ReadText(ctx, "writer/summarize/skprompt.txt")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "Summarize {{$input}}", text)

			exists, err := c.Exists(ctx, "writer/summarize/skprompt.txt")
			require.NoError(t, err)
			assert.True(t, exists)

			require.NoError(t, c.WriteText(ctx, "writer/summarize/skprompt.txt", "v2"))
			text, _, err = c.ReadText(ctx, "writer/summarize/skprompt.txt")
			require.NoError(t, err)
			assert.Equal(t, "v2", text)
		})
	}
}

func TestContainer_WriteEmptyTextIsNoop(t *testing.T) {
	t.Parallel()

	for _, bc := range backendCases() {
		t.Run(bc.name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()
			c := connect(t, bc.credential(t))

			require.NoError(t, c.WriteText(ctx, "a/b/c.txt", ""))
			require.NoError(t, c.AppendText(ctx, "a/b/log.txt", ""))

			empty, err := c.IsEmpty(ctx)
			require.NoError(t, err)
			assert.True(t, empty)
		})
	}
}

func TestContainer_AppendTextChunksAndReassembles(t *testing.T) {
	t.Parallel()

	for _, bc := range backendCases() {
		t.Run(bc.name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()
			c := connect(t, bc.credential(t))

			payload := strings.Repeat("line of log text\n", 10)
			require.NoError(t, c.AppendText(ctx, "logs/run.txt", payload))
			require.NoError(t, c.AppendText(ctx, "logs/run.txt", "tail"))

			text, ok, err := c.ReadText(ctx, "logs/run.txt")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, payload+"tail", text)
		})
	}
}

func TestContainer_StreamWithContentType(t *testing.T) {
	t.Parallel()

	for _, bc := range backendCases() {
		t.Run(bc.name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()
			c := connect(t, bc.credential(t))

			require.NoError(t, c.WriteStream(ctx, "w/f/config.json", "application/json", strings.NewReader(`{"a":1}`)))

			rc, ok, err := c.ReadStream(ctx, "w/f/config.json")
			require.NoError(t, err)
			require.True(t, ok)
			data, err := io.ReadAll(rc)
			require.NoError(t, err)
			require.NoError(t, rc.Close())
			assert.JSONEq(t, `{"a":1}`, string(data))

			ct, ok, err := c.ContentType(ctx, "w/f/config.json")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "application/json", ct)

			_, ok, err = c.ReadStream(ctx, "w/f/missing.bin")
			require.NoError(t, err)
			assert.False(t, ok)

			err = c.WriteStream(ctx, "w/f/bad.bin", "text/plain\r\nX-Injected: 1", strings.NewReader("x"))
			require.ErrorIs(t, err, storage.ErrStorage)
		})
	}
}

func TestContainer_DeleteIsIdempotent(t *testing.T) {
	t.Parallel()

	for _, bc := range backendCases() {
		t.Run(bc.name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()
			c := connect(t, bc.credential(t))

			require.NoError(t, c.WriteText(ctx, "p/f/skprompt.txt", "x"))
			require.NoError(t, c.Delete(ctx, "p/f/skprompt.txt"))
			require.NoError(t, c.Delete(ctx, "p/f/skprompt.txt"))
			require.NoError(t, c.Delete(ctx, "p"))

			exists, err := c.Exists(ctx, "p/f/skprompt.txt")
			require.NoError(t, err)
			assert.False(t, exists)
		})
	}
}

func TestContainer_ListUnderSplitsSegments(t *testing.T) {
	t.Parallel()

	for _, bc := range backendCases() {
		t.Run(bc.name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()
			c := connect(t, bc.credential(t))

			for _, p := range []string{"a/f1/skprompt.txt", "a/f1/config.json", "a/f2/skprompt.txt", "b/f/skprompt.txt"} {
				require.NoError(t, c.WriteText(ctx, p, "x"))
			}

			all, err := c.ListUnder(ctx, "")
			require.NoError(t, err)
			assert.ElementsMatch(t, [][]string{
				{"a", "f1", "skprompt.txt"},
				{"a", "f1", "config.json"},
				{"a", "f2", "skprompt.txt"},
				{"b", "f", "skprompt.txt"},
			}, all)

			underA, err := c.ListUnder(ctx, "a/")
			require.NoError(t, err)
			assert.Len(t, underA, 3)
			assert.True(t, slices.ContainsFunc(underA, func(e []string) bool {
				return slices.Equal(e, []string{"a", "f2", "skprompt.txt"})
			}))
		})
	}
}

func TestContainer_RedisOutageSurfacesStorageError(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	mr := miniredis.RunT(t)
	c := connect(t, "redis://"+mr.Addr())
	require.NoError(t, c.WriteText(ctx, "p/f/skprompt.txt", "x"))

	mr.Close()

	_, _, err := c.ReadText(ctx, "p/f/skprompt.txt")
	require.ErrorIs(t, err, storage.ErrStorage)

	var serr *storage.Error
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "read", serr.Op)
	assert.Equal(t, "p/f/skprompt.txt", serr.Path)
}
