// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package storage

//go:generate mockgen -copyright_file=../.github/license-header.txt -source=backend.go -destination=mocks/mock_backend.go -package=mocks Backend

import (
	"context"
	"net/url"
	"time"
)

// DefaultMaxAppendBlockBytes is the largest chunk a single append call
// carries unless the backend reports otherwise.
const DefaultMaxAppendBlockBytes = 4 * 1024 * 1024

// Backend is a single container in a hierarchical blob store.
// Paths are '/'-separated and relative to the container root.
type Backend interface {
	// Exists reports whether an object exists at path.
	Exists(ctx context.Context, path string) (bool, error)

	// Get returns the object's content or ErrObjectNotFound.
	Get(ctx context.Context, path string) ([]byte, error)

	// Put creates or overwrites the object at path.
	Put(ctx context.Context, path string, data []byte) error

	// Append adds data to the end of the object, creating it if missing.
	Append(ctx context.Context, path string, data []byte) error

	// MaxAppendBlockBytes is the largest payload one Append call accepts.
	MaxAppendBlockBytes() int

	// SetContentType records the object's content type.
	SetContentType(ctx context.Context, path, contentType string) error

	// ContentType returns the recorded content type, or "" if none was set.
	// It returns ErrObjectNotFound if the object does not exist.
	ContentType(ctx context.Context, path string) (string, error)

	// Delete removes the object. Deleting a missing object is not an error.
	Delete(ctx context.Context, path string) error

	// List returns the paths of all objects starting with prefix.
	List(ctx context.Context, prefix string) ([]string, error)

	// Close releases the backend's resources.
	Close() error
}

// DialOptions are passed to a Dialer when a new connection is created.
type DialOptions struct {
	// NetworkTimeout bounds individual backend calls.
	NetworkTimeout time.Duration

	// MaxAppendBlockBytes overrides the backend's append chunk size when positive.
	MaxAppendBlockBytes int
}

// Dialer creates a Backend for one container from a parsed credential URL.
type Dialer func(ctx context.Context, credential *url.URL, container string, opts DialOptions) (Backend, error)

func defaultDialers() map[string]Dialer {
	return map[string]Dialer{
		"mem":    dialMemory,
		"file":   dialFile,
		"redis":  dialRedis,
		"rediss": dialRedis,
	}
}

func appendBlockBytes(opts DialOptions) int {
	if opts.MaxAppendBlockBytes > 0 {
		return opts.MaxAppendBlockBytes
	}
	return DefaultMaxAppendBlockBytes
}
