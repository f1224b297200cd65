// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package name provides validation functions for plugin and function names.
package name

import (
	"fmt"
	"regexp"
	"strings"
)

var validNameRegex = regexp.MustCompile(`^[0-9A-Za-z_]*$`)

// Validate checks that s is usable as a plugin or function name: non-blank
// and made only of ASCII letters, digits and underscores. kind names the
// thing being validated in the error message.
func Validate(kind, s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%s name cannot be empty or consist only of whitespace", kind)
	}

	if !validNameRegex.MatchString(s) {
		return fmt.Errorf("%s name can only contain ASCII letters, digits and underscores: %q", kind, s)
	}

	return nil
}

// IsValid reports whether s passes Validate.
func IsValid(s string) bool {
	return strings.TrimSpace(s) != "" && validNameRegex.MatchString(s)
}
