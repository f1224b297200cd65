// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package cel

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/cel-go/cel"
)

var (
	// ErrExpression is returned when a filter fails to parse or type check.
	ErrExpression = errors.New("invalid filter expression")

	// ErrEvaluation is returned when a filter fails at evaluation time.
	ErrEvaluation = errors.New("filter evaluation failed")
)

// ErrKind names the compilation stage an expression failed in.
type ErrKind string

const (
	// ErrKindLength means the expression was rejected before parsing.
	ErrKindLength ErrKind = "length"
	// ErrKindParse indicates a syntax error.
	ErrKindParse ErrKind = "parse"
	// ErrKindCheck indicates a type error, such as an unknown variable or a
	// non-boolean result.
	ErrKindCheck ErrKind = "check"
)

// Issue is one problem found in an expression.
type Issue struct {
	Line int    `json:"line,omitempty"`
	Col  int    `json:"col,omitempty"`
	Msg  string `json:"msg"`
}

// ExpressionError describes why a filter expression was rejected.
type ExpressionError struct {
	Kind   ErrKind `json:"kind"`
	Source string  `json:"source"`
	Issues []Issue `json:"issues,omitempty"`
}

func (e *ExpressionError) Error() string {
	if len(e.Issues) == 0 {
		return fmt.Sprintf("%s error in filter %q", e.Kind, e.Source)
	}
	first := e.Issues[0]
	return fmt.Sprintf("%s error in filter %q at %d:%d: %s", e.Kind, e.Source, first.Line, first.Col, first.Msg)
}

// Is reports ErrExpression as a match.
func (*ExpressionError) Is(target error) bool {
	return target == ErrExpression
}

// AsJSON renders the error for API responses.
func (e *ExpressionError) AsJSON() string {
	b, err := json.Marshal(e)
	if err != nil {
		return fmt.Sprintf(`{"kind":%q,"msg":"failed to marshal error"}`, e.Kind)
	}
	return string(b)
}

func newExpressionError(kind ErrKind, source string, issues *cel.Issues) *ExpressionError {
	ee := &ExpressionError{Kind: kind, Source: source}
	if issues == nil {
		return ee
	}
	for _, iss := range issues.Errors() {
		ee.Issues = append(ee.Issues, Issue{
			Line: iss.Location.Line(),
			Col:  iss.Location.Column(),
			Msg:  iss.Message,
		})
	}
	return ee
}
