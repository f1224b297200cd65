// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package httperr lets errors carry the HTTP status they should be reported
with, so handlers can map domain errors once and write responses in one
place.

	err := httperr.WithCode(skills.ErrNotFound, http.StatusNotFound)
	httperr.Code(err) // 404
	errors.Is(err, skills.ErrNotFound) // true

Write renders an error as {"error": "...", "code": N}. Messages of 5xx errors
are replaced with the status text.
*/
package httperr
