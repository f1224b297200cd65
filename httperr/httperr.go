// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package httperr

import (
	"encoding/json"
	"errors"
	"net/http"
)

// CodedError carries the HTTP status an error should be reported with.
type CodedError struct {
	err  error
	code int
}

func (e *CodedError) Error() string {
	return e.err.Error()
}

// Unwrap returns the wrapped error.
func (e *CodedError) Unwrap() error {
	return e.err
}

// HTTPCode returns the status code.
func (e *CodedError) HTTPCode() int {
	return e.code
}

// WithCode attaches code to err. It returns nil for a nil err.
func WithCode(err error, code int) error {
	if err == nil {
		return nil
	}
	return &CodedError{err: err, code: code}
}

// New returns an error with message and code.
func New(message string, code int) error {
	return &CodedError{err: errors.New(message), code: code}
}

// Code returns the status attached anywhere in err's chain: 200 for nil,
// 500 when no code is attached.
func Code(err error) int {
	if err == nil {
		return http.StatusOK
	}
	var coded *CodedError
	if errors.As(err, &coded) {
		return coded.code
	}
	return http.StatusInternalServerError
}

// Body is the JSON shape of an error response.
type Body struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

// Write sends err as a JSON Body with status Code(err). Server errors
// (5xx) are reported with the generic status text so internal details stay
// in the logs.
func Write(w http.ResponseWriter, err error) {
	code := Code(err)
	msg := err.Error()
	if code >= http.StatusInternalServerError {
		msg = http.StatusText(code)
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(Body{Error: msg, Code: code})
}
