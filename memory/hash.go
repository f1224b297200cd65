// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package memory

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
	"unicode"
)

// DefaultHashDimensions is the vector size of a zero-value HashEmbedder.
const DefaultHashDimensions = 256

// HashEmbedder maps text to a vector by hashing its lowercase word tokens
// and adjacent token pairs into buckets. Identical texts get identical
// vectors and texts sharing words score higher than unrelated ones.
type HashEmbedder struct {
	Dimensions int
}

var _ Embedder = HashEmbedder{}

// Embed returns the normalized token-hash vector of text. Text without any
// word characters maps to the zero vector.
func (h HashEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	dims := h.Dimensions
	if dims <= 0 {
		dims = DefaultHashDimensions
	}
	vec := make([]float32, dims)

	tokens := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for i, tok := range tokens {
		addFeature(vec, tok, 1)
		if i > 0 {
			addFeature(vec, tokens[i-1]+" "+tok, 0.5)
		}
	}

	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if norm == 0 {
		return vec, nil
	}
	scale := float32(1 / math.Sqrt(norm))
	for i := range vec {
		vec[i] *= scale
	}
	return vec, nil
}

func addFeature(vec []float32, feature string, weight float32) {
	hasher := fnv.New64a()
	_, _ = hasher.Write([]byte(feature))
	sum := hasher.Sum64()
	idx := int(sum % uint64(len(vec)))
	if sum&(1<<63) != 0 {
		weight = -weight
	}
	vec[idx] += weight
}
