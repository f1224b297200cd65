// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package storage

import (
	"context"
	"errors"
	"io"
	"net"
	"syscall"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// Default retry policy values.
const (
	DefaultBaseDelay      = 2 * time.Second
	DefaultMaxRetries     = 5
	DefaultMaxDelay       = 10 * time.Second
	DefaultNetworkTimeout = 100 * time.Second
)

// RetryPolicy configures how transient backend failures are retried.
type RetryPolicy struct {
	// BaseDelay is the delay before the first retry.
	BaseDelay time.Duration
	// MaxRetries is the number of retries after the initial attempt.
	MaxRetries uint
	// MaxDelay caps the delay between retries.
	MaxDelay time.Duration
	// NetworkTimeout bounds every single attempt.
	NetworkTimeout time.Duration
}

// DefaultRetryPolicy returns exponential backoff starting at 2s, capped at
// 10s, with up to 5 retries and a 100s timeout per attempt.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		BaseDelay:      DefaultBaseDelay,
		MaxRetries:     DefaultMaxRetries,
		MaxDelay:       DefaultMaxDelay,
		NetworkTimeout: DefaultNetworkTimeout,
	}
}

// withDefaults fills zero fields from DefaultRetryPolicy. MaxRetries is kept
// as given so a zero value disables retries.
func (p RetryPolicy) withDefaults() RetryPolicy {
	d := DefaultRetryPolicy()
	if p.BaseDelay <= 0 {
		p.BaseDelay = d.BaseDelay
	}
	if p.MaxDelay <= 0 {
		p.MaxDelay = d.MaxDelay
	}
	if p.NetworkTimeout <= 0 {
		p.NetworkTimeout = d.NetworkTimeout
	}
	return p
}

// backOff doubles the delay from BaseDelay up to MaxDelay. Jitter is disabled
// because the library applies it after MaxInterval, which would let a delay
// exceed MaxDelay or undercut BaseDelay.
func (p RetryPolicy) backOff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.BaseDelay
	b.MaxInterval = p.MaxDelay
	b.Multiplier = 2
	b.RandomizationFactor = 0
	return b
}

// retry runs fn under the policy. Each attempt gets its own timeout derived
// from ctx. onRetry is called before every retry with the failed attempt's
// error.
func retry[T any](
	ctx context.Context,
	p RetryPolicy,
	fn func(context.Context) (T, error),
	onRetry func(error, time.Duration),
) (T, error) {
	op := func() (T, error) {
		attemptCtx, cancel := context.WithTimeout(ctx, p.NetworkTimeout)
		defer cancel()

		res, err := fn(attemptCtx)
		if err == nil {
			return res, nil
		}
		if ctx.Err() != nil || !isTransient(err) {
			var zero T
			return zero, backoff.Permanent(err)
		}
		return res, err
	}

	return backoff.Retry(ctx, op,
		backoff.WithBackOff(p.backOff()),
		backoff.WithMaxTries(p.MaxRetries+1),
		backoff.WithMaxElapsedTime(0),
		backoff.WithNotify(onRetry),
	)
}

// isTransient reports whether err is worth another attempt.
func isTransient(err error) bool {
	if errors.Is(err, ErrObjectNotFound) || errors.Is(err, context.Canceled) {
		return false
	}

	var marked *transientError
	if errors.As(err, &marked) {
		return true
	}

	// An attempt timeout while the caller's context is still live.
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	return errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.EPIPE)
}
