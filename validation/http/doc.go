// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package http provides validation functions for HTTP header values and endpoint URLs.

# Header Values

Object content types are echoed back as Content-Type headers, so they are
validated per RFC 7230 before being stored:

	if err := http.ValidateContentType("application/json; charset=utf-8"); err != nil {
		// reject the upload
	}

The validators check for:
  - CRLF injection attempts (\r\n sequences)
  - Control characters
  - Length limits (8192 bytes)
  - Media type syntax for content types

# Endpoint URLs

Validate base URLs of remote services before dialing them:

	if err := http.ValidateEndpointURL("http://localhost:11434"); err != nil {
		// Handle invalid URL
	}
*/
package http
