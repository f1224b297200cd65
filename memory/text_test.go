// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/stacklok/skillconnector/memory"
	"github.com/stacklok/skillconnector/memory/mocks"
)

func TestTextMemory_SaveAndSearch(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	mem := memory.NewTextMemory(memory.HashEmbedder{}, memory.NewVolatileStore())

	require.NoError(t, mem.Save(ctx, "Data", "0", "hello"))
	require.NoError(t, mem.Save(ctx, "Data", "1", "completely different words"))

	matches, err := mem.Search(ctx, "Data", "hello", 1, 0)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "hello", matches[0].Text)
	assert.InDelta(t, 1.0, matches[0].Relevance, 1e-6)

	matches, err = mem.Search(ctx, "Data", "hello", 10, 0.5)
	require.NoError(t, err)
	assert.Len(t, matches, 1, "low-relevance records are filtered")

	rec, ok, err := mem.Get(ctx, "Data", "1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "completely different words", rec.Text)
}

func TestTextMemory_EmbedderError(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	embedder := mocks.NewMockEmbedder(ctrl)
	store := mocks.NewMockVectorStore(ctrl)
	mem := memory.NewTextMemory(embedder, store)

	boom := errors.New("provider down")
	embedder.EXPECT().Embed(gomock.Any(), "line").Return(nil, boom)

	err := mem.Save(context.Background(), "Data", "0", "line")
	require.ErrorIs(t, err, boom)
}

func TestTextMemory_SearchDelegatesToStore(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	embedder := mocks.NewMockEmbedder(ctrl)
	store := mocks.NewMockVectorStore(ctrl)
	mem := memory.NewTextMemory(embedder, store)

	vec := []float32{1, 0}
	embedder.EXPECT().Embed(gomock.Any(), "q").Return(vec, nil)
	store.EXPECT().Nearest(gomock.Any(), "Data", vec, 1).Return([]memory.Match{
		{Record: memory.Record{ID: "3", Text: "t"}, Relevance: 0.4},
	}, nil)

	matches, err := mem.Search(context.Background(), "Data", "q", 0, 0)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "3", matches[0].ID)
}
