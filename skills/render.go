// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package skills

import (
	"regexp"
	"strings"
)

// variableRef matches {{$name}} with optional surrounding spaces.
var variableRef = regexp.MustCompile(`\{\{\s*\$([0-9A-Za-z_]+)\s*\}\}`)

// Render substitutes {{$name}} references in the function's template.
// Missing arguments fall back to the input variable's default, then to "".
// Other template syntax is left untouched for the execution engine.
func Render(def FunctionDefinition, args map[string]string) string {
	defaults := make(map[string]string, len(def.Config.InputVariables))
	for _, v := range def.Config.InputVariables {
		defaults[v.Name] = v.Default
	}

	return variableRef.ReplaceAllStringFunc(def.Template, func(ref string) string {
		varName := variableRef.FindStringSubmatch(ref)[1]
		if v, ok := args[varName]; ok {
			return v
		}
		if v, ok := lookupFold(args, varName); ok {
			return v
		}
		return defaults[varName]
	})
}

// lookupFold finds key in m ignoring case.
func lookupFold(m map[string]string, key string) (string, bool) {
	for k, v := range m {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}
	return "", false
}
