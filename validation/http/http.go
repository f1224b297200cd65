// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package http provides validation functions for HTTP header values and endpoint URLs.
package http

import (
	"fmt"
	"mime"
	"net/url"

	"golang.org/x/net/http/httpguts"
)

// maxHeaderValueLength matches the common HTTP server header limit.
const maxHeaderValueLength = 8192

// ValidateHeaderValue validates that a string is a valid HTTP header value per RFC 7230.
// It checks for CRLF injection and control characters.
func ValidateHeaderValue(value string) error {
	if value == "" {
		return fmt.Errorf("header value cannot be empty")
	}

	if len(value) > maxHeaderValueLength {
		return fmt.Errorf("header value exceeds maximum length of %d bytes", maxHeaderValueLength)
	}

	if !httpguts.ValidHeaderFieldValue(value) {
		return fmt.Errorf("invalid HTTP header value: contains control characters")
	}

	return nil
}

// ValidateContentType validates a Content-Type value stored as object
// metadata. It must be a safe header value and parse as a media type.
func ValidateContentType(contentType string) error {
	if err := ValidateHeaderValue(contentType); err != nil {
		return fmt.Errorf("invalid content type: %w", err)
	}
	if _, _, err := mime.ParseMediaType(contentType); err != nil {
		return fmt.Errorf("invalid content type %q: %w", contentType, err)
	}
	return nil
}

// ValidateEndpointURL validates the base URL of a remote service such as an
// embedding provider.
//
// A valid endpoint URL must:
//   - Use the http or https scheme
//   - Include a host
//   - Not contain fragments
func ValidateEndpointURL(endpoint string) error {
	if endpoint == "" {
		return fmt.Errorf("endpoint URL cannot be empty")
	}

	parsed, err := url.Parse(endpoint)
	if err != nil {
		return fmt.Errorf("invalid endpoint URL: %w", err)
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("endpoint URL must use http or https: %s", endpoint)
	}

	if parsed.Host == "" {
		return fmt.Errorf("endpoint URL must include a host: %s", endpoint)
	}

	if parsed.Fragment != "" {
		return fmt.Errorf("endpoint URL must not contain fragments (#): %s", endpoint)
	}

	return nil
}
