// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package cel filters registered skill functions with CEL expressions.

Expressions see four variables: plugin, function and description as strings,
and inputs as the function's input variable names.

	engine, err := cel.NewFunctionFilterEngine()
	f, err := engine.Compile(`plugin == "Writer" && "input" in inputs`)
	matches, err := f.Apply(registry)

# Errors

Compilation failures are *ExpressionError values carrying the stage that
failed and the line and column of each issue. They match ErrExpression with
errors.Is:

	_, err := engine.Compile(`plugin ==`)
	var ee *cel.ExpressionError
	if errors.As(err, &ee) {
	    fmt.Println(ee.AsJSON())
	}

# Limits

Expressions longer than DefaultMaxExpressionLength are rejected and
evaluation is bounded by DefaultCostLimit. Both can be changed with
WithMaxExpressionLength and WithCostLimit.
*/
package cel
