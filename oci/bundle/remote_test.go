// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package bundle

import (
	"bytes"
	"context"
	"testing"

	"github.com/opencontainers/go-digest"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"oras.land/oras-go/v2"
	"oras.land/oras-go/v2/content/memory"
	"oras.land/oras-go/v2/registry"
	"oras.land/oras-go/v2/registry/remote/credentials"
)

func memoryRemote(target oras.Target) *Remote {
	return &Remote{
		credStore: credentials.NewMemoryStore(),
		newTarget: func(registry.Reference) (oras.Target, error) { return target, nil },
	}
}

func TestNewRemote_Options(t *testing.T) {
	t.Parallel()

	r, err := NewRemote(WithPlainHTTP(true), WithCredentialStore(credentials.NewMemoryStore()))
	require.NoError(t, err)
	assert.True(t, r.plainHTTP)
	assert.NotNil(t, r.newTarget)
}

func TestParseReference(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		ref     string
		wantErr bool
	}{
		{"tag", "ghcr.io/acme/skills:v1", false},
		{"digest", "ghcr.io/acme/skills@sha256:e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", false},
		{"no tag", "ghcr.io/acme/skills", true},
		{"garbage", ":::", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := parseReference(tt.ref)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestRemote_PushPull(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	local := newTestStore(t)
	_, err := NewExporter(local).Export(ctx, newContainer(t, "c", map[string]string{
		"Writer/Poem/skprompt.txt": "Write a poem",
	}), "v1")
	require.NoError(t, err)

	reg := memory.New()
	r := memoryRemote(reg)
	const ref = "registry.example.com/acme/skills:v1"
	require.NoError(t, r.Push(ctx, local, "v1", ref))

	other := newTestStore(t)
	d, err := r.Pull(ctx, other, ref)
	require.NoError(t, err)

	pushed, err := local.Resolve(ctx, "v1")
	require.NoError(t, err)
	assert.Equal(t, pushed.Digest, d)

	n, err := NewImporter().Import(ctx, other, ref, newContainer(t, "dst", nil))
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestRemote_PushUnknownTag(t *testing.T) {
	t.Parallel()
	err := memoryRemote(memory.New()).Push(context.Background(), newTestStore(t), "missing", "example.com/a/b:v1")
	require.Error(t, err)
}

func TestValidatingTarget(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	tests := []struct {
		name    string
		desc    func(data []byte) ocispec.Descriptor
		data    []byte
		wantErr string
	}{
		{
			name: "valid blob",
			data: []byte("layer"),
			desc: func(data []byte) ocispec.Descriptor {
				return ocispec.Descriptor{MediaType: ocispec.MediaTypeImageLayerGzip, Digest: digest.FromBytes(data), Size: int64(len(data))}
			},
		},
		{
			name: "digest mismatch",
			data: []byte("layer"),
			desc: func(data []byte) ocispec.Descriptor {
				return ocispec.Descriptor{MediaType: ocispec.MediaTypeImageLayerGzip, Digest: digest.FromString("other"), Size: int64(len(data))}
			},
			wantErr: "digest mismatch",
		},
		{
			name: "oversized manifest",
			data: nil,
			desc: func([]byte) ocispec.Descriptor {
				return ocispec.Descriptor{MediaType: ocispec.MediaTypeImageManifest, Digest: digest.FromString("x"), Size: MaxManifestSize + 1}
			},
			wantErr: "outside allowed range",
		},
		{
			name: "too many layers",
			data: []byte(`{"layers":[{},{},{},{},{},{},{},{},{}]}`),
			desc: func(data []byte) ocispec.Descriptor {
				return ocispec.Descriptor{MediaType: ocispec.MediaTypeImageManifest, Digest: digest.FromBytes(data), Size: int64(len(data))}
			},
			wantErr: "layers",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			vt := &validatingTarget{inner: memory.New()}
			err := vt.Push(ctx, tt.desc(tt.data), bytes.NewReader(tt.data))
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
