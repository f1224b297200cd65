// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package mcpserver exposes registered skill functions as Model Context
Protocol prompts.

Each function becomes a prompt named "plugin.function" whose arguments are
the function's input variables. Getting a prompt renders the template from
the current registry and returns it as a single user message; the model
call itself is left to the client.

Server implements skills.Engine, so a skills.Builder can publish to it
directly:

	srv := mcpserver.New(&skills.Holder{}, version)
	if _, err := builder.Register(ctx, srv); err != nil {
		return err
	}
	return srv.ServeStdio(ctx)

When a corpus searcher is configured the server also offers a
search_memory tool.
*/
package mcpserver
