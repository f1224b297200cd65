// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package recovery provides HTTP middleware that recovers from handler panics.

	handler := recovery.Middleware(logger)(mux)

A panicking request gets a 500 response and an ERROR log record with the
panic value, request method, path and stack trace. The server keeps serving
other requests.
*/
package recovery
