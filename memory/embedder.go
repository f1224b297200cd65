// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package memory

//go:generate mockgen -copyright_file=../.github/license-header.txt -source=embedder.go -destination=mocks/mock_embedder.go -package=mocks Embedder

import (
	"context"
	"errors"
)

// ErrEmptyEmbedding is returned when a provider answers without a vector.
var ErrEmptyEmbedding = errors.New("embedding provider returned no vector")

// Embedder turns text into an embedding vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
