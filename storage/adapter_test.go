// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package storage_test

import (
	"context"
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/stacklok/skillconnector/storage"
	"github.com/stacklok/skillconnector/storage/mocks"
)

func TestConnect_RequiresCredentialAndContainer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		credential string
		container  string
	}{
		{"empty credential", "", "skills"},
		{"blank credential", "   ", "skills"},
		{"empty container", "mem://local", ""},
		{"both empty", "", ""},
		{"unknown scheme", "ftp://example.com", "skills"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			adapter := storage.NewAdapter()

			c, err := adapter.Connect(context.Background(), tt.credential, tt.container)
			require.ErrorIs(t, err, storage.ErrConfig)
			assert.Nil(t, c)
		})
	}
}

func TestConnect_CachesHandlePerPair(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	adapter := storage.NewAdapter()
	t.Cleanup(func() { _ = adapter.Close() })

	first, err := adapter.Connect(ctx, "mem://local", "skills")
	require.NoError(t, err)
	again, err := adapter.Connect(ctx, "mem://local", "skills")
	require.NoError(t, err)
	other, err := adapter.Connect(ctx, "mem://local", "corpus")
	require.NoError(t, err)

	assert.Same(t, first, again)
	assert.NotSame(t, first, other)
	assert.Equal(t, "skills", first.Name())

	// The cached handle keeps its state.
	require.NoError(t, first.WriteText(ctx, "a/b/skprompt.txt", "hi"))
	text, ok, err := again.ReadText(ctx, "a/b/skprompt.txt")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "hi", text)
}

func TestConnect_DialsOncePerPairUnderConcurrency(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	backend := mocks.NewMockBackend(ctrl)
	backend.EXPECT().Close().Return(nil)

	var dials int
	var mu sync.Mutex
	adapter := storage.NewAdapter(storage.WithDialer("fake",
		func(_ context.Context, _ *url.URL, _ string, _ storage.DialOptions) (storage.Backend, error) {
			mu.Lock()
			defer mu.Unlock()
			dials++
			return backend, nil
		}))

	var wg sync.WaitGroup
	for range 16 {
		wg.Go(func() {
			_, err := adapter.Connect(context.Background(), "fake://host", "skills")
			assert.NoError(t, err)
		})
	}
	wg.Wait()

	assert.Equal(t, 1, dials)
	require.NoError(t, adapter.Close())
}

func TestNilContainer_NotConnected(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	var c *storage.Container

	_, err := c.Exists(ctx, "x")
	require.ErrorIs(t, err, storage.ErrNotConnected)
	_, _, err = c.ReadText(ctx, "x")
	require.ErrorIs(t, err, storage.ErrNotConnected)
	require.ErrorIs(t, c.WriteText(ctx, "x", "y"), storage.ErrNotConnected)
	require.ErrorIs(t, c.AppendText(ctx, "x", "y"), storage.ErrNotConnected)
	require.ErrorIs(t, c.Delete(ctx, "x"), storage.ErrNotConnected)
	_, err = c.ListUnder(ctx, "")
	require.ErrorIs(t, err, storage.ErrNotConnected)
}
