// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package corpus

import "errors"

var (
	// ErrNotFound is returned when the collection holds no lines.
	ErrNotFound = errors.New("no match found")

	// ErrBelowThreshold is returned when the best match scores under the
	// requested minimum relevance. It is a negative result, not a fault.
	ErrBelowThreshold = errors.New("best match is below the relevance threshold")
)
