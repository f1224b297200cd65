// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package env

//go:generate mockgen -copyright_file=../.github/license-header.txt -source=env.go -destination=mocks/mock_reader.go -package=mocks Reader

import (
	"os"
	"strings"
)

// Reader reads environment variables.
type Reader interface {
	Getenv(key string) string
}

// OSReader reads the process environment.
type OSReader struct{}

// Getenv returns the value of the environment variable named by the key.
func (*OSReader) Getenv(key string) string {
	return os.Getenv(key)
}

// Map is a fixed environment, handy for tests and for layering overrides.
type Map map[string]string

// Getenv returns m[key].
func (m Map) Getenv(key string) string {
	return m[key]
}

// First returns the first non-blank value among keys, trimmed, or "" when
// none is set.
func First(r Reader, keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(r.Getenv(k)); v != "" {
			return v
		}
	}
	return ""
}
