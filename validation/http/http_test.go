// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package http

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateHeaderValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		expectErr bool
	}{
		{"valid simple", "text/plain", false},
		{"valid with spaces", "text/plain; charset=utf-8", false},
		{"tab allowed", "key\tvalue", false},

		{"crlf injection", "text/plain\r\nX-Injected: malicious", true},
		{"newline injection", "text/plain\ninjected", true},
		{"null byte", "text\x00plain", true},
		{"delete char", "text\x7Fplain", true},
		{"empty string", "", true},
		{"too long", strings.Repeat("A", 10000), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateHeaderValue(tt.input)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateContentType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		expectErr bool
	}{
		{"json", "application/json", false},
		{"with charset", "text/plain; charset=utf-8", false},
		{"octet stream", "application/octet-stream", false},

		{"missing subtype", "text/", true},
		{"not a media type", "hello world", true},
		{"header injection", "text/plain\r\nSet-Cookie: x", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateContentType(tt.input)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateEndpointURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		input       string
		expectErr   bool
		errContains string
	}{
		{"https", "https://api.openai.com/v1", false, ""},
		{"http with port", "http://localhost:11434", false, ""},

		{"empty", "", true, "cannot be empty"},
		{"no scheme", "localhost:11434", true, "http or https"},
		{"wrong scheme", "ftp://example.com", true, "http or https"},
		{"no host", "https://", true, "must include a host"},
		{"fragment", "https://example.com/v1#frag", true, "fragments"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateEndpointURL(tt.input)
			if tt.expectErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
