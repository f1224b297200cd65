// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package corpus

import (
	"context"
	"fmt"
	"iter"
	"strconv"

	"github.com/stacklok/skillconnector/memory"
)

// DefaultListMax bounds ListAll when no maximum is given.
const DefaultListMax = 10000

// Match is the best line for a query.
type Match struct {
	ID        string  `json:"id"`
	Text      string  `json:"text"`
	Relevance float64 `json:"relevance"`
}

// Index is the query surface of the corpus memory.
// *memory.TextMemory implements it.
type Index interface {
	Search(ctx context.Context, collection, query string, limit int, minRelevance float64) ([]memory.Match, error)
	Get(ctx context.Context, collection, id string) (memory.Record, bool, error)
}

// Searcher answers relevance queries against a loaded corpus.
type Searcher struct {
	index Index
}

// NewSearcher creates a searcher over index.
func NewSearcher(index Index) *Searcher {
	return &Searcher{index: index}
}

// Search returns the single most relevant line for query, or ErrNotFound
// when nothing has been loaded.
func (s *Searcher) Search(ctx context.Context, query string) (Match, error) {
	matches, err := s.index.Search(ctx, Collection, query, 1, 0)
	if err != nil {
		return Match{}, fmt.Errorf("searching corpus: %w", err)
	}
	if len(matches) == 0 {
		return Match{}, ErrNotFound
	}
	best := matches[0]
	return Match{ID: best.ID, Text: best.Text, Relevance: best.Relevance}, nil
}

// SearchWithThreshold is Search, but reports ErrBelowThreshold when the best
// match scores under minRelevance. The returned match is populated in that
// case so callers can still inspect it.
func (s *Searcher) SearchWithThreshold(ctx context.Context, query string, minRelevance float64) (Match, error) {
	m, err := s.Search(ctx, query)
	if err != nil {
		return Match{}, err
	}
	if m.Relevance < minRelevance {
		return m, fmt.Errorf("%w: relevance %.3f < %.3f", ErrBelowThreshold, m.Relevance, minRelevance)
	}
	return m, nil
}

// ListAll yields the loaded lines in id order, stopping at the first missing
// id or after max lines. A non-positive max selects DefaultListMax. On a
// lookup failure the error is yielded once and iteration stops.
func (s *Searcher) ListAll(ctx context.Context, maxItems int) iter.Seq2[string, error] {
	if maxItems <= 0 {
		maxItems = DefaultListMax
	}
	return func(yield func(string, error) bool) {
		for i := range maxItems {
			rec, ok, err := s.index.Get(ctx, Collection, strconv.Itoa(i))
			if err != nil {
				yield("", fmt.Errorf("reading line %d: %w", i, err))
				return
			}
			if !ok {
				return
			}
			if !yield(rec.Text, nil) {
				return
			}
		}
	}
}
