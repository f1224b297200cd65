// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"
)

// VolatileStore is an in-process VectorStore. Its contents are lost when
// the process exits. It is safe for concurrent use.
type VolatileStore struct {
	mu          sync.RWMutex
	collections map[string]*volatileCollection
}

type volatileCollection struct {
	records []Record
	index   map[string]int
}

var _ VectorStore = (*VolatileStore)(nil)

// NewVolatileStore creates an empty store.
func NewVolatileStore() *VolatileStore {
	return &VolatileStore{collections: make(map[string]*volatileCollection)}
}

// Upsert inserts or replaces rec.
func (s *VolatileStore) Upsert(_ context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	col, ok := s.collections[rec.Collection]
	if !ok {
		col = &volatileCollection{index: make(map[string]int)}
		s.collections[rec.Collection] = col
	}
	rec.Embedding = slices.Clone(rec.Embedding)
	if i, ok := col.index[rec.ID]; ok {
		col.records[i] = rec
		return nil
	}
	col.index[rec.ID] = len(col.records)
	col.records = append(col.records, rec)
	return nil
}

// Nearest scores every record of collection against query. Ties keep
// insertion order.
func (s *VolatileStore) Nearest(_ context.Context, collection string, query []float32, limit int) ([]Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	col, ok := s.collections[collection]
	if !ok || limit <= 0 {
		return nil, nil
	}

	matches := make([]Match, 0, len(col.records))
	for _, rec := range col.records {
		matches = append(matches, Match{Record: rec, Relevance: cosine(query, rec.Embedding)})
	}
	slices.SortStableFunc(matches, func(a, b Match) int {
		return cmp.Compare(b.Relevance, a.Relevance)
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

// Get returns the record with the given ID.
func (s *VolatileStore) Get(_ context.Context, collection, id string) (Record, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	col, ok := s.collections[collection]
	if !ok {
		return Record{}, false, nil
	}
	i, ok := col.index[id]
	if !ok {
		return Record{}, false, nil
	}
	return col.records[i], true, nil
}

// Len returns the number of records in collection.
func (s *VolatileStore) Len(collection string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if col, ok := s.collections[collection]; ok {
		return len(col.records)
	}
	return 0
}
