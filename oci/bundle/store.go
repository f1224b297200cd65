// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package bundle

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/opencontainers/go-digest"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
	"oras.land/oras-go/v2"
	"oras.land/oras-go/v2/content/oci"
	"oras.land/oras-go/v2/errdef"
)

// Store is a local OCI Image Layout holding bundles.
type Store struct {
	root  string
	inner *oci.Store
}

// NewStore opens or initializes the layout at root.
func NewStore(root string) (*Store, error) {
	inner, err := oci.New(root)
	if err != nil {
		return nil, fmt.Errorf("creating OCI store at %s: %w", root, err)
	}
	return &Store{root: root, inner: inner}, nil
}

// StoreRoot returns the bundle store root within dataHome.
func StoreRoot(dataHome string) string {
	return filepath.Join(dataHome, "skillconnector", "bundles")
}

// DefaultStoreRoot returns the bundle store root under the XDG data home.
func DefaultStoreRoot() string {
	return StoreRoot(xdg.DataHome)
}

// Root returns the layout directory.
func (s *Store) Root() string {
	return s.root
}

// Target exposes the layout for oras copy operations.
func (s *Store) Target() oras.Target {
	return s.inner
}

// Put stores content under mediaType and returns its descriptor. Storing
// content that is already present is not an error.
func (s *Store) Put(ctx context.Context, mediaType string, content []byte) (ocispec.Descriptor, error) {
	desc := ocispec.Descriptor{
		MediaType: mediaType,
		Digest:    digest.FromBytes(content),
		Size:      int64(len(content)),
	}
	if err := s.inner.Push(ctx, desc, bytes.NewReader(content)); err != nil && !errors.Is(err, errdef.ErrAlreadyExists) {
		return ocispec.Descriptor{}, fmt.Errorf("writing %s: %w", mediaType, err)
	}
	return desc, nil
}

// Get reads the content of desc, refusing anything larger than maxSize.
func (s *Store) Get(ctx context.Context, desc ocispec.Descriptor, maxSize int64) ([]byte, error) {
	if desc.Size > maxSize {
		return nil, fmt.Errorf("%s is %d bytes, exceeds maximum of %d", desc.Digest, desc.Size, maxSize)
	}
	rc, err := s.inner.Fetch(ctx, desc)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", desc.Digest, err)
	}
	defer func() { _ = rc.Close() }()

	data, err := io.ReadAll(io.LimitReader(rc, maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", desc.Digest, err)
	}
	if int64(len(data)) > maxSize {
		return nil, fmt.Errorf("%s exceeds maximum of %d bytes", desc.Digest, maxSize)
	}
	return data, nil
}

// Tag points tag at desc.
func (s *Store) Tag(ctx context.Context, desc ocispec.Descriptor, tag string) error {
	if err := s.inner.Tag(ctx, desc, tag); err != nil {
		return fmt.Errorf("tagging %s: %w", tag, err)
	}
	return nil
}

// Resolve returns the descriptor tagged tag.
func (s *Store) Resolve(ctx context.Context, tag string) (ocispec.Descriptor, error) {
	desc, err := s.inner.Resolve(ctx, tag)
	if err != nil {
		return ocispec.Descriptor{}, fmt.Errorf("tag not found: %s: %w", tag, err)
	}
	return desc, nil
}

// Tags lists every tag in the store.
func (s *Store) Tags(ctx context.Context) ([]string, error) {
	var tags []string
	if err := s.inner.Tags(ctx, "", func(t []string) error {
		tags = append(tags, t...)
		return nil
	}); err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	return tags, nil
}
