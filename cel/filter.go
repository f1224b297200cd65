// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package cel

import (
	"fmt"

	"github.com/google/cel-go/cel"

	"github.com/stacklok/skillconnector/skills"
)

const (
	// DefaultMaxExpressionLength bounds the source length of a filter.
	DefaultMaxExpressionLength = 4096

	// DefaultCostLimit bounds the runtime cost of a single evaluation.
	DefaultCostLimit = 100000
)

// Variables available to filter expressions.
const (
	VarPlugin      = "plugin"
	VarFunction    = "function"
	VarDescription = "description"
	VarInputs      = "inputs"
)

// FunctionFilterEngine compiles filter expressions over skill functions.
// It is safe for concurrent use.
type FunctionFilterEngine struct {
	env       *cel.Env
	maxLength int
	costLimit uint64
}

// EngineOption configures a FunctionFilterEngine.
type EngineOption func(*FunctionFilterEngine)

// WithMaxExpressionLength overrides DefaultMaxExpressionLength.
func WithMaxExpressionLength(n int) EngineOption {
	return func(e *FunctionFilterEngine) { e.maxLength = n }
}

// WithCostLimit overrides DefaultCostLimit.
func WithCostLimit(limit uint64) EngineOption {
	return func(e *FunctionFilterEngine) { e.costLimit = limit }
}

// NewFunctionFilterEngine creates an engine declaring plugin, function and
// description as strings and inputs as a list of strings.
func NewFunctionFilterEngine(opts ...EngineOption) (*FunctionFilterEngine, error) {
	env, err := cel.NewEnv(
		cel.Variable(VarPlugin, cel.StringType),
		cel.Variable(VarFunction, cel.StringType),
		cel.Variable(VarDescription, cel.StringType),
		cel.Variable(VarInputs, cel.ListType(cel.StringType)),
	)
	if err != nil {
		return nil, fmt.Errorf("creating filter environment: %w", err)
	}
	e := &FunctionFilterEngine{
		env:       env,
		maxLength: DefaultMaxExpressionLength,
		costLimit: DefaultCostLimit,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Compile parses and type checks expr, which must evaluate to a bool.
func (e *FunctionFilterEngine) Compile(expr string) (*Filter, error) {
	if len(expr) > e.maxLength {
		ee := newExpressionError(ErrKindLength, expr, nil)
		ee.Issues = []Issue{{Msg: fmt.Sprintf("length %d exceeds maximum of %d", len(expr), e.maxLength)}}
		return nil, ee
	}

	parsed, issues := e.env.Parse(expr)
	if issues.Err() != nil {
		return nil, newExpressionError(ErrKindParse, expr, issues)
	}
	checked, issues := e.env.Check(parsed)
	if issues.Err() != nil {
		return nil, newExpressionError(ErrKindCheck, expr, issues)
	}
	if !checked.OutputType().IsExactType(cel.BoolType) {
		return nil, &ExpressionError{
			Kind:   ErrKindCheck,
			Source: expr,
			Issues: []Issue{{Msg: fmt.Sprintf("filter must return bool, got %s", checked.OutputType())}},
		}
	}

	prg, err := e.env.Program(checked, cel.CostLimit(e.costLimit))
	if err != nil {
		return nil, fmt.Errorf("building filter program for %q: %w", expr, err)
	}
	return &Filter{source: expr, program: prg}, nil
}

// Filter is a compiled expression. A nil *Filter matches everything.
type Filter struct {
	source  string
	program cel.Program
}

// Source returns the expression the filter was compiled from.
func (f *Filter) Source() string {
	if f == nil {
		return ""
	}
	return f.source
}

// Match evaluates the filter against def.
func (f *Filter) Match(def skills.FunctionDefinition) (bool, error) {
	if f == nil {
		return true, nil
	}
	out, _, err := f.program.Eval(map[string]any{
		VarPlugin:      def.Plugin,
		VarFunction:    def.Name,
		VarDescription: def.Description(),
		VarInputs:      def.Config.InputNames(),
	})
	if err != nil {
		return false, fmt.Errorf("%w: %s: %w", ErrEvaluation, def.Plugin+"."+def.Name, err)
	}
	b, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("%w: expected bool, got %T", ErrEvaluation, out.Value())
	}
	return b, nil
}

// Apply returns the functions of reg that match, in registry order.
func (f *Filter) Apply(reg *skills.Registry) ([]skills.FunctionInfo, error) {
	var out []skills.FunctionInfo
	for _, p := range reg.Plugins() {
		for _, def := range p.Functions {
			ok, err := f.Match(def)
			if err != nil {
				return nil, err
			}
			if ok {
				out = append(out, skills.FunctionInfo{
					Plugin:      def.Plugin,
					Function:    def.Name,
					Description: def.Description(),
				})
			}
		}
	}
	return out, nil
}
