// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package storage

import (
	"errors"
	"fmt"
)

// Sentinel errors for storage operations.
var (
	// ErrConfig is returned when connection parameters are missing or invalid.
	ErrConfig = errors.New("invalid storage configuration")

	// ErrStorage is matched by every backend failure surfaced to callers.
	ErrStorage = errors.New("storage operation failed")

	// ErrNotConnected is returned when an operation is invoked on a nil handle.
	ErrNotConnected = errors.New("storage handle is not connected")

	// ErrObjectNotFound is returned by a Backend when the object does not exist.
	// Container methods translate it into an absent result.
	ErrObjectNotFound = errors.New("object not found")
)

// Error describes a failed storage operation after the retry policy gave up.
type Error struct {
	Op   string
	Path string
	Err  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("storage %s %q: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying backend error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrStorage.
func (*Error) Is(target error) bool {
	return target == ErrStorage
}

// transientError marks a failure as worth retrying.
type transientError struct {
	err error
}

func (e *transientError) Error() string { return e.err.Error() }

func (e *transientError) Unwrap() error { return e.err }

// Transient marks err as a transient failure so the retry policy retries it.
// Backends use it for failures the classifier cannot recognize on its own.
// If err is nil, Transient returns nil.
func Transient(err error) error {
	if err == nil {
		return nil
	}
	return &transientError{err: err}
}
