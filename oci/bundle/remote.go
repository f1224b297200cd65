// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package bundle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/opencontainers/go-digest"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
	"oras.land/oras-go/v2"
	"oras.land/oras-go/v2/registry"
	"oras.land/oras-go/v2/registry/remote"
	"oras.land/oras-go/v2/registry/remote/auth"
	"oras.land/oras-go/v2/registry/remote/credentials"
)

// maxManifestLayers bounds the layer count of pulled manifests.
const maxManifestLayers = 8

// Transferer copies bundles between a local store and a registry.
type Transferer interface {
	Push(ctx context.Context, store *Store, tag, ref string) error
	Pull(ctx context.Context, store *Store, ref string) (digest.Digest, error)
}

var (
	_ Transferer  = (*Remote)(nil)
	_ oras.Target = (*validatingTarget)(nil)
)

// Remote pushes and pulls bundles to and from OCI registries.
type Remote struct {
	credStore credentials.Store
	plainHTTP bool

	// newTarget returns the repository for ref. Tests swap in an
	// in-memory target.
	newTarget func(ref registry.Reference) (oras.Target, error)
}

// RemoteOption configures a Remote.
type RemoteOption func(*Remote)

// WithPlainHTTP talks to the registry over plain HTTP.
func WithPlainHTTP(enabled bool) RemoteOption {
	return func(r *Remote) { r.plainHTTP = enabled }
}

// WithCredentialStore replaces the Docker credential store.
func WithCredentialStore(store credentials.Store) RemoteOption {
	return func(r *Remote) { r.credStore = store }
}

// NewRemote creates a registry client. Without WithCredentialStore it reads
// credentials from the Docker config.
func NewRemote(opts ...RemoteOption) (*Remote, error) {
	r := &Remote{}
	for _, opt := range opts {
		opt(r)
	}
	if r.credStore == nil {
		cs, err := credentials.NewStoreFromDocker(credentials.StoreOptions{})
		if err != nil {
			return nil, fmt.Errorf("creating credential store: %w", err)
		}
		r.credStore = cs
	}
	if r.newTarget == nil {
		r.newTarget = r.repository
	}
	return r, nil
}

// Push copies the bundle tagged tag in store to ref.
func (r *Remote) Push(ctx context.Context, store *Store, tag, ref string) error {
	parsed, err := parseReference(ref)
	if err != nil {
		return err
	}
	desc, err := store.Resolve(ctx, tag)
	if err != nil {
		return err
	}
	target, err := r.newTarget(parsed)
	if err != nil {
		return fmt.Errorf("getting repository: %w", err)
	}
	if err := oras.CopyGraph(ctx, store.Target(), target, desc, oras.DefaultCopyGraphOptions); err != nil {
		return fmt.Errorf("pushing to registry: %w", err)
	}
	if err := target.Tag(ctx, desc, parsed.Reference); err != nil {
		return fmt.Errorf("tagging remote: %w", err)
	}
	return nil
}

// Pull copies ref into store, tagging it with both the short reference and
// the full ref, and returns the manifest digest.
func (r *Remote) Pull(ctx context.Context, store *Store, ref string) (digest.Digest, error) {
	parsed, err := parseReference(ref)
	if err != nil {
		return "", err
	}
	target, err := r.newTarget(parsed)
	if err != nil {
		return "", fmt.Errorf("getting repository: %w", err)
	}

	desc, err := oras.Copy(ctx, target, parsed.Reference, &validatingTarget{inner: store.Target()},
		parsed.Reference, oras.DefaultCopyOptions)
	if err != nil {
		return "", fmt.Errorf("pulling from registry: %w", err)
	}
	if err := store.Tag(ctx, desc, ref); err != nil {
		return "", err
	}
	return desc.Digest, nil
}

func (r *Remote) repository(ref registry.Reference) (oras.Target, error) {
	repoPath := ref.Registry + "/" + ref.Repository
	repo, err := remote.NewRepository(repoPath)
	if err != nil {
		return nil, fmt.Errorf("creating repository for %q: %w", repoPath, err)
	}
	repo.Client = &auth.Client{Credential: credentials.Credential(r.credStore)}
	repo.PlainHTTP = r.plainHTTP
	return repo, nil
}

func parseReference(ref string) (registry.Reference, error) {
	parsed, err := registry.ParseReference(ref)
	if err != nil {
		return registry.Reference{}, fmt.Errorf("parsing reference %q: %w", ref, err)
	}
	if parsed.Reference == "" {
		return registry.Reference{}, fmt.Errorf("reference %q must include a tag or digest", ref)
	}
	return parsed, nil
}

// validatingTarget checks size, digest and manifest shape of everything a
// registry sends before it is written locally.
type validatingTarget struct {
	inner oras.Target
}

func (v *validatingTarget) Fetch(ctx context.Context, desc ocispec.Descriptor) (io.ReadCloser, error) {
	return v.inner.Fetch(ctx, desc)
}

func (v *validatingTarget) Exists(ctx context.Context, desc ocispec.Descriptor) (bool, error) {
	return v.inner.Exists(ctx, desc)
}

func (v *validatingTarget) Resolve(ctx context.Context, reference string) (ocispec.Descriptor, error) {
	return v.inner.Resolve(ctx, reference)
}

func (v *validatingTarget) Tag(ctx context.Context, desc ocispec.Descriptor, reference string) error {
	return v.inner.Tag(ctx, desc, reference)
}

func (v *validatingTarget) Push(ctx context.Context, desc ocispec.Descriptor, content io.Reader) error {
	maxSize := MaxLayerSize
	if desc.MediaType == ocispec.MediaTypeImageManifest || desc.MediaType == ocispec.MediaTypeImageIndex {
		maxSize = MaxManifestSize
	}
	if desc.Size < 0 || desc.Size > maxSize {
		return fmt.Errorf("content size %d outside allowed range [0, %d] for %q", desc.Size, maxSize, desc.MediaType)
	}

	data, err := io.ReadAll(io.LimitReader(content, maxSize+1))
	if err != nil {
		return fmt.Errorf("reading content: %w", err)
	}
	if int64(len(data)) > maxSize {
		return fmt.Errorf("actual content size exceeds maximum allowed size %d for %q", maxSize, desc.MediaType)
	}
	if actual := digest.FromBytes(data); actual != desc.Digest {
		return fmt.Errorf("digest mismatch: expected %s, got %s", desc.Digest, actual)
	}

	if desc.MediaType == ocispec.MediaTypeImageManifest {
		var m ocispec.Manifest
		if err := json.Unmarshal(data, &m); err != nil {
			return fmt.Errorf("parsing manifest: %w", err)
		}
		if len(m.Layers) > maxManifestLayers {
			return fmt.Errorf("manifest has %d layers, exceeds maximum of %d", len(m.Layers), maxManifestLayers)
		}
	}
	return v.inner.Push(ctx, desc, bytes.NewReader(data))
}
