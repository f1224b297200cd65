// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package name provides validation functions for plugin and function names.

Plugin and function names become storage path segments and registry keys,
so they are restricted to a portable character set.

# Name Validation

	if err := name.Validate("plugin", "WriterSkill"); err != nil {
		// Handle invalid name
	}

Valid names must:
  - Be non-empty (not just whitespace)
  - Contain only ASCII letters, digits and underscores

# Examples

Valid names:

	"WriterSkill"
	"summarize"
	"plugin_2"

Invalid names:

	""             // empty
	"writer-skill" // dash
	"writer skill" // space
	"résumé"       // non-ASCII
*/
package name
