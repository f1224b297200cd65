// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package corpus indexes a text corpus held in a storage container and answers
relevance queries against it.

# Loading

A Loader lists every object in the corpus container, splits each one into
lines and saves every line into the "Data" collection of a memory.TextMemory.
Line ids are a running counter starting at "0", so the n-th line across the
whole listing (in listing order) has id n.

	loader := corpus.NewLoader(container, mem, corpus.WithLoaderLogger(logger))
	n, err := loader.Load(ctx)

# Searching

A Searcher returns the single best match for a query:

	searcher := corpus.NewSearcher(mem)
	m, err := searcher.SearchWithThreshold(ctx, "how do I reset my password", 0.7)
	if errors.Is(err, corpus.ErrBelowThreshold) {
		// m still holds the best match
	}

ListAll enumerates the loaded lines by probing ids in order until the first
missing id.
*/
package corpus
