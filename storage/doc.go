// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package storage provides a hierarchical blob store client with connection
caching and a retry policy for transient backend failures.

An [Adapter] owns the connection cache. Handles are keyed by the
(credential, container) pair and live until [Adapter.Close]:

	adapter := storage.NewAdapter(storage.WithLogger(logger))
	defer adapter.Close()

	skills, err := adapter.Connect(ctx, "redis://localhost:6379/0", "skills")
	if err != nil {
	    // storage.ErrConfig when either argument is empty
	}

	text, ok, err := skills.ReadText(ctx, "writer/summarize/skprompt.txt")

# Backends

The credential is a URL whose scheme selects the backend:

  - redis:// and rediss:// store objects as Redis string keys
  - file:// stores objects as files under a root directory
  - mem:// keeps objects in process memory (tests and local development)

Additional schemes can be registered with [WithDialer].

# Failure Semantics

Lookups report a missing object as absent rather than as an error. Transient
failures (network errors, timeouts, connection resets, or errors marked with
[Transient]) are retried with exponential backoff. Anything else, or a
transient failure that outlives the retry budget, is returned as an
[*Error] that matches [ErrStorage] with errors.Is.
*/
package storage
