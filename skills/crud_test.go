// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package skills_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stacklok/skillconnector/skills"
)

func TestService_InsertThenGet(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		prompt     string
		config     string
		wantConfig string
	}{
		{"prompt only", "Summarize {{$input}}", "", ""},
		{"prompt with config", "Summarize {{$input}}", `{"description":"d"}`, `{"description":"d"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()
			svc := skills.NewService(newStore(t, nil), nil)

			require.NoError(t, svc.Insert(ctx, "Writer", "summarize", tt.prompt, tt.config))

			got, err := svc.Get(ctx, "Writer", "summarize")
			require.NoError(t, err)
			assert.Equal(t, skills.Skill{Prompt: tt.prompt, Config: tt.wantConfig}, got)
		})
	}
}

func TestService_InsertWithoutConfigKeepsExistingConfig(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := skills.NewService(newStore(t, nil), nil)

	require.NoError(t, svc.Insert(ctx, "W", "f", "v1", `{"description":"keep"}`))
	require.NoError(t, svc.Insert(ctx, "W", "f", "v2", ""))

	got, err := svc.Get(ctx, "W", "f")
	require.NoError(t, err)
	assert.Equal(t, "v2", got.Prompt)
	assert.Equal(t, `{"description":"keep"}`, got.Config)
}

func TestService_InsertDoesNotValidateNames(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := skills.NewService(newStore(t, nil), nil)

	require.NoError(t, svc.Insert(ctx, "bad-plugin", "f", "p", ""))
	got, err := svc.Get(ctx, "bad-plugin", "f")
	require.NoError(t, err)
	assert.Equal(t, "p", got.Prompt)
}

func TestService_GetMissing(t *testing.T) {
	t.Parallel()
	svc := skills.NewService(newStore(t, map[string]string{"W/f/config.json": "{}"}), nil)

	_, err := svc.Get(context.Background(), "W", "f")
	require.ErrorIs(t, err, skills.ErrNotFound)
}

func TestService_DeleteCascadesEmptyPlugin(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := newStore(t, map[string]string{
		"pluginA/f1/skprompt.txt": "one",
		"pluginA/f1/config.json":  `{"description":"one"}`,
		"pluginA/f2/skprompt.txt": "two",
		"pluginAB/g/skprompt.txt": "sibling plugin sharing a name prefix",
	})
	svc := skills.NewService(store, nil)

	require.NoError(t, svc.Delete(ctx, "pluginA", "f1"))
	remaining, err := store.ListUnder(ctx, "pluginA/")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"pluginA", "f2", "skprompt.txt"}}, remaining)

	_, err = svc.Get(ctx, "pluginA", "f1")
	require.ErrorIs(t, err, skills.ErrNotFound)

	require.NoError(t, svc.Delete(ctx, "pluginA", "f2"))
	remaining, err = store.ListUnder(ctx, "pluginA/")
	require.NoError(t, err)
	assert.Empty(t, remaining)

	reg, err := skills.NewBuilder(store).Build(ctx)
	require.NoError(t, err)
	_, ok := reg.Plugin("pluginA")
	assert.False(t, ok)
	_, ok = reg.Function("pluginAB", "g")
	assert.True(t, ok)
}

func TestService_DeleteMissingIsNotFound(t *testing.T) {
	t.Parallel()
	svc := skills.NewService(newStore(t, nil), nil)

	err := svc.Delete(context.Background(), "nope", "nothing")
	require.ErrorIs(t, err, skills.ErrNotFound)
}
