// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package memory

import (
	"context"
	"fmt"
)

// TextMemory indexes texts by embedding and looks them up by similarity.
type TextMemory struct {
	embedder Embedder
	store    VectorStore
}

// NewTextMemory combines embedder and store.
func NewTextMemory(embedder Embedder, store VectorStore) *TextMemory {
	return &TextMemory{embedder: embedder, store: store}
}

// Save embeds text and stores it under (collection, id), replacing any
// previous record with that ID.
func (m *TextMemory) Save(ctx context.Context, collection, id, text string) error {
	vec, err := m.embedder.Embed(ctx, text)
	if err != nil {
		return fmt.Errorf("embedding record %s: %w", id, err)
	}
	return m.store.Upsert(ctx, Record{Collection: collection, ID: id, Text: text, Embedding: vec})
}

// Search returns up to limit records of collection whose relevance to query
// is at least minRelevance, best first. A non-positive limit means 1.
func (m *TextMemory) Search(ctx context.Context, collection, query string, limit int, minRelevance float64) ([]Match, error) {
	if limit <= 0 {
		limit = 1
	}
	vec, err := m.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}
	matches, err := m.store.Nearest(ctx, collection, vec, limit)
	if err != nil {
		return nil, err
	}
	out := matches[:0]
	for _, match := range matches {
		if match.Relevance >= minRelevance {
			out = append(out, match)
		}
	}
	return out, nil
}

// Get returns the record stored under (collection, id).
func (m *TextMemory) Get(ctx context.Context, collection, id string) (Record, bool, error) {
	return m.store.Get(ctx, collection, id)
}
