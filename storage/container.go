// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	httpval "github.com/stacklok/skillconnector/validation/http"
)

// DefaultContentType is recorded by WriteStream when no content type is given.
const DefaultContentType = "application/octet-stream"

// Container is a connected handle to one storage container. Handles are
// created by Adapter.Connect and are safe for concurrent use. Calling any
// method on a nil *Container returns ErrNotConnected.
type Container struct {
	name    string
	backend Backend
	policy  RetryPolicy
	metrics *metrics
	logger  *slog.Logger
}

// Name returns the container identifier.
func (c *Container) Name() string {
	if c == nil {
		return ""
	}
	return c.name
}

// Exists reports whether an object exists at path.
func (c *Container) Exists(ctx context.Context, path string) (bool, error) {
	return do(ctx, c, "exists", path, func(ctx context.Context) (bool, error) {
		return c.backend.Exists(ctx, path)
	})
}

// ReadText returns the object's content as text. ok is false when the
// object does not exist.
func (c *Container) ReadText(ctx context.Context, path string) (text string, ok bool, err error) {
	data, ok, err := c.read(ctx, "read", path)
	if err != nil || !ok {
		return "", ok, err
	}
	return string(data), true, nil
}

// WriteText creates or overwrites the object at path. Empty text is a no-op.
func (c *Container) WriteText(ctx context.Context, path, text string) error {
	if c == nil {
		return ErrNotConnected
	}
	if text == "" {
		return nil
	}
	_, err := do(ctx, c, "write", path, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, c.backend.Put(ctx, path, []byte(text))
	})
	return err
}

// AppendText adds text to the end of the object, creating it if missing.
// The text is split into chunks no larger than the backend's append block
// size and appended in order. Empty text is a no-op.
func (c *Container) AppendText(ctx context.Context, path, text string) error {
	if c == nil {
		return ErrNotConnected
	}
	if text == "" {
		return nil
	}

	block := c.backend.MaxAppendBlockBytes()
	if block <= 0 {
		block = DefaultMaxAppendBlockBytes
	}

	data := []byte(text)
	for len(data) > 0 {
		n := min(block, len(data))
		chunk := data[:n]
		if _, err := do(ctx, c, "append", path, func(ctx context.Context) (struct{}, error) {
			return struct{}{}, c.backend.Append(ctx, path, chunk)
		}); err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}

// WriteStream uploads the content of r to path and then records its content
// type. An empty contentType records DefaultContentType.
func (c *Container) WriteStream(ctx context.Context, path, contentType string, r io.Reader) error {
	if c == nil {
		return ErrNotConnected
	}
	if contentType == "" {
		contentType = DefaultContentType
	}
	if err := httpval.ValidateContentType(contentType); err != nil {
		return &Error{Op: "write_stream", Path: path, Err: err}
	}

	// Buffered so every attempt uploads the same bytes.
	data, err := io.ReadAll(r)
	if err != nil {
		return &Error{Op: "write_stream", Path: path, Err: fmt.Errorf("reading source stream: %w", err)}
	}

	if _, err := do(ctx, c, "write_stream", path, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, c.backend.Put(ctx, path, data)
	}); err != nil {
		return err
	}
	_, err = do(ctx, c, "set_content_type", path, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, c.backend.SetContentType(ctx, path, contentType)
	})
	return err
}

// ReadStream returns a reader over the object's content. ok is false when the
// object does not exist.
func (c *Container) ReadStream(ctx context.Context, path string) (rc io.ReadCloser, ok bool, err error) {
	data, ok, err := c.read(ctx, "read_stream", path)
	if err != nil || !ok {
		return nil, ok, err
	}
	return io.NopCloser(bytes.NewReader(data)), true, nil
}

// ContentType returns the content type recorded for path. ok is false when
// the object does not exist.
func (c *Container) ContentType(ctx context.Context, path string) (contentType string, ok bool, err error) {
	ct, err := do(ctx, c, "content_type", path, func(ctx context.Context) (string, error) {
		return c.backend.ContentType(ctx, path)
	})
	if errors.Is(err, ErrObjectNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return ct, true, nil
}

// Delete removes the object at path. Deleting a missing object is not an error.
func (c *Container) Delete(ctx context.Context, path string) error {
	_, err := do(ctx, c, "delete", path, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, c.backend.Delete(ctx, path)
	})
	return err
}

// ListUnder returns every object whose path starts with prefix, each split
// into its '/'-separated segments, in backend enumeration order.
func (c *Container) ListUnder(ctx context.Context, prefix string) ([][]string, error) {
	paths, err := do(ctx, c, "list", prefix, func(ctx context.Context) ([]string, error) {
		return c.backend.List(ctx, prefix)
	})
	if err != nil {
		return nil, err
	}
	entries := make([][]string, 0, len(paths))
	for _, p := range paths {
		entries = append(entries, strings.Split(p, "/"))
	}
	return entries, nil
}

// IsEmpty reports whether the container holds no objects.
func (c *Container) IsEmpty(ctx context.Context) (bool, error) {
	entries, err := c.ListUnder(ctx, "")
	if err != nil {
		return false, err
	}
	return len(entries) == 0, nil
}

func (c *Container) read(ctx context.Context, op, path string) ([]byte, bool, error) {
	data, err := do(ctx, c, op, path, func(ctx context.Context) ([]byte, error) {
		return c.backend.Get(ctx, path)
	})
	if errors.Is(err, ErrObjectNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// do runs fn under the container's retry policy, records metrics, and wraps
// failures in *Error.
func do[T any](ctx context.Context, c *Container, op, path string, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	if c == nil || c.backend == nil {
		return zero, ErrNotConnected
	}

	start := time.Now()
	res, err := retry(ctx, c.policy, fn, func(err error, next time.Duration) {
		c.metrics.retried(op)
		c.logger.Warn("retrying storage operation",
			"op", op, "path", path, "error", err, "backoff", next)
	})

	switch {
	case err == nil:
		c.metrics.observe(op, resultOK, time.Since(start))
		return res, nil
	case errors.Is(err, ErrObjectNotFound):
		c.metrics.observe(op, resultNotFound, time.Since(start))
		return zero, &Error{Op: op, Path: path, Err: err}
	default:
		c.metrics.observe(op, resultError, time.Since(start))
		c.logger.Error("storage operation failed", "op", op, "path", path, "error", err)
		return zero, &Error{Op: op, Path: path, Err: err}
	}
}
