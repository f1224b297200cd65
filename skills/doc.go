// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package skills discovers prompt functions stored as plugin/function
directories and assembles them into an immutable [Registry].

A function lives at two storage paths:

	<plugin>/<function>/skprompt.txt   template (required, non-blank)
	<plugin>/<function>/config.json    configuration (optional)

# Building a Registry

[Builder] lists the store, groups the listing with [GroupListing], and loads
every function in name order:

	builder := skills.NewBuilder(container, skills.WithBuilderLogger(logger))
	var holder skills.Holder
	reg, err := builder.Register(ctx, &holder)

Plugin and function names must match [0-9A-Za-z_]. One invalid name aborts
the whole build with a [*ValidationError]; a config.json that fails schema
validation aborts it with a [*ConfigError].

# Editing Skills

[Service] gets, inserts and deletes individual skills. Its writes do not
touch registries that were already built; rebuild to pick them up.
*/
package skills
