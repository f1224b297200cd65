// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// connKey identifies a cached connection.
type connKey struct {
	credential string
	container  string
}

// Adapter creates and caches container handles. It is safe for concurrent use.
type Adapter struct {
	mu      sync.Mutex
	conns   map[connKey]*Container
	dialers map[string]Dialer

	policy      RetryPolicy
	appendBlock int
	metrics     *metrics
	logger      *slog.Logger
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithRetryPolicy replaces the default retry policy.
func WithRetryPolicy(p RetryPolicy) Option {
	return func(a *Adapter) {
		a.policy = p.withDefaults()
	}
}

// WithDialer registers a Dialer for a credential URL scheme, replacing any
// existing dialer for that scheme.
func WithDialer(scheme string, d Dialer) Option {
	return func(a *Adapter) {
		a.dialers[strings.ToLower(scheme)] = d
	}
}

// WithMaxAppendBlockBytes overrides the chunk size used by AppendText.
func WithMaxAppendBlockBytes(n int) Option {
	return func(a *Adapter) {
		a.appendBlock = n
	}
}

// WithMetrics registers storage metrics with reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(a *Adapter) {
		a.metrics = newMetrics(reg)
	}
}

// WithLogger sets the logger. The default discards all output.
func WithLogger(l *slog.Logger) Option {
	return func(a *Adapter) {
		if l != nil {
			a.logger = l
		}
	}
}

// NewAdapter creates an Adapter with an empty connection cache.
func NewAdapter(opts ...Option) *Adapter {
	a := &Adapter{
		conns:   make(map[connKey]*Container),
		dialers: defaultDialers(),
		policy:  DefaultRetryPolicy(),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.logger = a.logger.With("component", "storage")
	return a
}

// Connect returns the handle for (credential, container), dialing and caching
// a new one on first use. It returns ErrConfig if either argument is empty or
// the credential cannot be parsed.
func (a *Adapter) Connect(ctx context.Context, credential, container string) (*Container, error) {
	if strings.TrimSpace(credential) == "" {
		return nil, fmt.Errorf("%w: credential is required", ErrConfig)
	}
	if strings.TrimSpace(container) == "" {
		return nil, fmt.Errorf("%w: container is required", ErrConfig)
	}

	key := connKey{credential: credential, container: container}

	a.mu.Lock()
	defer a.mu.Unlock()

	if c, ok := a.conns[key]; ok {
		return c, nil
	}

	u, err := url.Parse(credential)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing credential: %w", ErrConfig, err)
	}
	dial, ok := a.dialers[strings.ToLower(u.Scheme)]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported credential scheme %q", ErrConfig, u.Scheme)
	}

	backend, err := dial(ctx, u, container, DialOptions{
		NetworkTimeout:      a.policy.NetworkTimeout,
		MaxAppendBlockBytes: a.appendBlock,
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to container %q: %w", container, err)
	}

	c := &Container{
		name:    container,
		backend: backend,
		policy:  a.policy,
		metrics: a.metrics,
		logger:  a.logger.With("container", container, "scheme", u.Scheme),
	}
	a.conns[key] = c
	a.logger.Debug("connected to storage container", "container", container, "scheme", u.Scheme)
	return c, nil
}

// Close closes every cached backend and empties the cache.
func (a *Adapter) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	var errs []error
	for key, c := range a.conns {
		if err := c.backend.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing container %q: %w", key.container, err))
		}
		delete(a.conns, key)
	}
	return errors.Join(errs...)
}
