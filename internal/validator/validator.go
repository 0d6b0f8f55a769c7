// Copyright (c) 2026, the Panda Stack contributors
//
// SPDX-License-Identifier: Apache-2.0

// Package validator evaluates boolean expressions used to validate prompt answers
package validator

import (
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/expr-lang/expr"
	"github.com/pandastack/create-panda/pkgname"
)

// Validate evaluates expression against env, the expression must produce a boolean
func Validate(env map[string]any, expression string) (bool, error) {
	e := map[string]any{
		"isValidPackageName": pkgname.IsValid,
	}
	for k, v := range env {
		e[k] = v
	}

	program, err := expr.Compile(expression, expr.Env(e), expr.AsBool())
	if err != nil {
		return false, fmt.Errorf("invalid expression %q: %w", expression, err)
	}

	res, err := expr.Run(program, e)
	if err != nil {
		return false, err
	}

	ok, isBool := res.(bool)
	if !isBool {
		return false, fmt.Errorf("expression %q did not return a boolean", expression)
	}

	return ok, nil
}

// ValidateValue evaluates expression with the answer available as value, failing with message when false
func ValidateValue(value any, expression string, message string) error {
	ok, err := Validate(map[string]any{"value": value}, expression)
	if err != nil {
		return err
	}

	if !ok {
		return errors.New(message)
	}

	return nil
}

// SurveyValidator creates a survey validator that fails with message when expression is false
func SurveyValidator(expression string, message string) survey.Validator {
	return func(val any) error {
		str, ok := val.(string)
		if !ok {
			return fmt.Errorf("cannot validate %T values", val)
		}

		return ValidateValue(str, expression, message)
	}
}
