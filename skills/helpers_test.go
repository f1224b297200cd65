// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package skills_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stacklok/skillconnector/storage"
)

// newStore returns an empty in-memory container seeded with files.
func newStore(t *testing.T, files map[string]string) *storage.Container {
	t.Helper()
	adapter := storage.NewAdapter()
	t.Cleanup(func() { _ = adapter.Close() })

	c, err := adapter.Connect(context.Background(), "mem://skills-test", "skills")
	require.NoError(t, err)
	for p, content := range files {
		require.NoError(t, c.WriteText(context.Background(), p, content))
	}
	return c
}
