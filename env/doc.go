// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package env abstracts environment variable access so configuration loading
can be tested without touching the process environment.

Production code takes an env.Reader and is handed &env.OSReader{}. Tests pass
an env.Map or the generated mock in the mocks sub-package:

	ctrl := gomock.NewController(t)
	r := mocks.NewMockReader(ctrl)
	r.EXPECT().Getenv("SKILLCONNECTOR_STORAGE_URL").Return("mem://dev")

First picks the first variable that is set, for settings that accept a
product-specific name and a conventional fallback:

	key := env.First(r, "SKILLCONNECTOR_OPENAI_API_KEY", "OPENAI_API_KEY")
*/
package env
