// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package storage

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "skillconnector"

// Operation results recorded in the result label.
const (
	resultOK       = "ok"
	resultNotFound = "not_found"
	resultError    = "error"
)

// metrics records storage operation outcomes. A nil *metrics records nothing.
type metrics struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	retries    *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	if reg == nil {
		return nil
	}
	factory := promauto.With(reg)
	return &metrics{
		operations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "storage",
				Name:      "operations_total",
				Help:      "Total number of storage operations by outcome",
			},
			[]string{"op", "result"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: "storage",
				Name:      "operation_duration_seconds",
				Help:      "Storage operation duration in seconds, including retries",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"op"},
		),
		retries: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "storage",
				Name:      "retries_total",
				Help:      "Total number of retried storage attempts",
			},
			[]string{"op"},
		),
	}
}

func (m *metrics) observe(op, result string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(op, result).Inc()
	m.duration.WithLabelValues(op).Observe(elapsed.Seconds())
}

func (m *metrics) retried(op string) {
	if m == nil {
		return
	}
	m.retries.WithLabelValues(op).Inc()
}
