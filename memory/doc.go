// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package memory provides a text embedding index: an [Embedder] turns text
into vectors and a [VectorStore] keeps them per collection and answers
nearest-neighbour queries. [TextMemory] combines the two.

# Embedders

  - [OpenAIEmbedder] calls an OpenAI or Azure OpenAI embeddings endpoint
  - [OllamaEmbedder] calls a local Ollama server
  - [HashEmbedder] hashes tokens into a fixed-size vector without any
    network access; it is the default for development and tests

# Stores

  - [VolatileStore] keeps records in process memory
  - [PostgresStore] keeps records in Postgres with the pgvector extension

Relevance is cosine similarity clamped to [0, 1].
*/
package memory
