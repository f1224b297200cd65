// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package memory

//go:generate mockgen -copyright_file=../.github/license-header.txt -source=store.go -destination=mocks/mock_store.go -package=mocks VectorStore

import (
	"context"
	"math"
)

// Record is one indexed text.
type Record struct {
	Collection string
	ID         string
	Text       string
	Embedding  []float32
}

// Match is a record returned by a nearest-neighbour query.
type Match struct {
	Record
	// Relevance is the cosine similarity to the query, in [0, 1].
	Relevance float64
}

// VectorStore keeps records per collection.
type VectorStore interface {
	// Upsert inserts rec or replaces the record with the same collection and ID.
	Upsert(ctx context.Context, rec Record) error

	// Nearest returns up to limit records of collection ordered by
	// decreasing relevance to query.
	Nearest(ctx context.Context, collection string, query []float32, limit int) ([]Match, error)

	// Get returns the record with the given ID. ok is false when it does not exist.
	Get(ctx context.Context, collection, id string) (rec Record, ok bool, err error)
}

// cosine returns the cosine similarity of a and b clamped to [0, 1].
// Vectors of different length or zero magnitude score 0.
func cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return clamp01(dot / (math.Sqrt(na) * math.Sqrt(nb)))
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v) || v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
