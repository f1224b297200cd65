// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsTransient(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"connection reset", fmt.Errorf("read: %w", syscall.ECONNRESET), true},
		{"connection refused", syscall.ECONNREFUSED, true},
		{"broken pipe", syscall.EPIPE, true},
		{"unexpected eof", io.ErrUnexpectedEOF, true},
		{"net op error", &net.OpError{Op: "dial", Err: errors.New("no route")}, true},
		{"attempt timeout", context.DeadlineExceeded, true},
		{"marked transient", Transient(errors.New("throttled")), true},
		{"not found", ErrObjectNotFound, false},
		{"canceled", context.Canceled, false},
		{"plain error", errors.New("access denied"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, isTransient(tt.err))
		})
	}
}

func TestEscapeGlob(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `skills:obj:plain/path`, escapeGlob("skills:obj:plain/path"))
	assert.Equal(t, `a\*b\?c\[d\]e\\f`, escapeGlob(`a*b?c[d]e\f`))
}

func TestRetryPolicy_WithDefaults(t *testing.T) {
	t.Parallel()

	p := RetryPolicy{MaxRetries: 0}.withDefaults()
	assert.Equal(t, DefaultBaseDelay, p.BaseDelay)
	assert.Equal(t, DefaultMaxDelay, p.MaxDelay)
	assert.Equal(t, DefaultNetworkTimeout, p.NetworkTimeout)
	assert.Zero(t, p.MaxRetries, "zero retries is kept")

	assert.Equal(t, uint(5), DefaultRetryPolicy().MaxRetries)
}

func TestRetryPolicy_BackOffSchedule(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		policy RetryPolicy
		want   []time.Duration
	}{
		{
			name:   "default",
			policy: DefaultRetryPolicy(),
			want:   []time.Duration{2 * time.Second, 4 * time.Second, 8 * time.Second, 10 * time.Second, 10 * time.Second},
		},
		{
			name:   "cap below base doubling",
			policy: RetryPolicy{BaseDelay: 3 * time.Second, MaxDelay: 5 * time.Second}.withDefaults(),
			want:   []time.Duration{3 * time.Second, 5 * time.Second, 5 * time.Second},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// Repeat draws so any jitter would show up.
			for range 50 {
				b := tt.policy.backOff()
				for i, want := range tt.want {
					got := b.NextBackOff()
					assert.Equal(t, want, got, "delay %d", i)
					assert.LessOrEqual(t, got, tt.policy.MaxDelay)
					assert.GreaterOrEqual(t, got, tt.policy.BaseDelay)
				}
			}
		})
	}
}

func TestTransient_Nil(t *testing.T) {
	t.Parallel()
	assert.NoError(t, Transient(nil))
}
