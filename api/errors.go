// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"errors"
	"net/http"

	"github.com/stacklok/skillconnector/cel"
	"github.com/stacklok/skillconnector/corpus"
	"github.com/stacklok/skillconnector/httperr"
	"github.com/stacklok/skillconnector/skills"
	"github.com/stacklok/skillconnector/storage"
)

// errBadRequest wraps request decoding failures.
var errBadRequest = errors.New("bad request")

// classify attaches the HTTP status for err. Errors that already carry a
// code keep it.
func classify(err error) error {
	var coded *httperr.CodedError
	if errors.As(err, &coded) {
		return err
	}
	switch {
	case errors.Is(err, errBadRequest),
		errors.Is(err, skills.ErrValidation),
		errors.Is(err, skills.ErrInvalidConfig),
		errors.Is(err, cel.ErrExpression):
		return httperr.WithCode(err, http.StatusBadRequest)
	case errors.Is(err, skills.ErrNotFound),
		errors.Is(err, corpus.ErrNotFound),
		errors.Is(err, corpus.ErrBelowThreshold):
		return httperr.WithCode(err, http.StatusNotFound)
	case errors.Is(err, storage.ErrConfig):
		return httperr.WithCode(err, http.StatusInternalServerError)
	case errors.Is(err, storage.ErrStorage), errors.Is(err, storage.ErrNotConnected):
		return httperr.WithCode(err, http.StatusBadGateway)
	default:
		return httperr.WithCode(err, http.StatusInternalServerError)
	}
}
