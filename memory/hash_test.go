// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashEmbedder(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	e := HashEmbedder{}

	a, err := e.Embed(ctx, "Hello, world")
	require.NoError(t, err)
	assert.Len(t, a, DefaultHashDimensions)

	b, err := e.Embed(ctx, "hello WORLD!")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, cosine(a, b), 1e-6, "case and punctuation are ignored")

	related, err := e.Embed(ctx, "hello there")
	require.NoError(t, err)
	unrelated, err := e.Embed(ctx, "quarterly revenue forecast")
	require.NoError(t, err)
	assert.Greater(t, cosine(a, related), cosine(a, unrelated))

	blank, err := e.Embed(ctx, "   ")
	require.NoError(t, err)
	assert.Zero(t, cosine(a, blank))

	small, err := HashEmbedder{Dimensions: 8}.Embed(ctx, "hello")
	require.NoError(t, err)
	assert.Len(t, small, 8)
}

func TestCosine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"opposite clamps to zero", []float32{1, 0}, []float32{-1, 0}, 0},
		{"length mismatch", []float32{1}, []float32{1, 0}, 0},
		{"zero vector", []float32{0, 0}, []float32{1, 0}, 0},
		{"empty", nil, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.want, cosine(tt.a, tt.b), 1e-9)
		})
	}
}
