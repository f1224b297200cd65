// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package api serves the skill registry, the skill CRUD operations and corpus
search over HTTP.

# Routes

	GET    /skills[?filter=<cel>]          registered functions
	GET    /skills/{plugin}/{function}     {"prompt": "...", "config": "..."}
	POST   /skills/{plugin}/{function}     store a skill, 204
	DELETE /skills/{plugin}/{function}     remove a skill, 204
	POST   /skills:rebuild                 rebuild the registry from storage
	GET    /memory[?max=N]                 corpus lines in id order
	POST   /memory/search                  best corpus match for {"input"}
	GET    /healthz
	GET    /metrics                        when configured
	/mcp                                   when configured

Errors are JSON bodies written by httperr.Write. Invalid names, configs and
filter expressions map to 400, missing skills and below-threshold searches
to 404, storage outages to 502.

# Validation

POST is stricter than skills.Service. The service stores any name and config
and leaves invalid entries for the registry build to skip. Here plugin and
function names must be valid identifiers and config must parse before
anything is written, so a skill accepted over HTTP always appears in the next
rebuild.
*/
package api
