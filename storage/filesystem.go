// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// contentTypeSuffix names the hidden sidecar file holding an object's content type.
const contentTypeSuffix = ".ctype"

// fileBackend stores a container as a directory tree. Directories only exist
// while they hold objects, so they behave like virtual prefixes.
type fileBackend struct {
	root     string
	maxBlock int
}

var _ Backend = (*fileBackend)(nil)

func dialFile(_ context.Context, credential *url.URL, container string, opts DialOptions) (Backend, error) {
	base := credential.Path
	if base == "" {
		base = credential.Opaque
	}
	if base == "" {
		return nil, fmt.Errorf("%w: file credential has no root directory", ErrConfig)
	}
	if strings.ContainsAny(container, `/\`) || container == "." || container == ".." {
		return nil, fmt.Errorf("%w: invalid container name %q", ErrConfig, container)
	}
	return &fileBackend{
		root:     filepath.Join(filepath.FromSlash(base), container),
		maxBlock: appendBlockBytes(opts),
	}, nil
}

// resolve maps an object path to a file path inside the container root.
func (f *fileBackend) resolve(p string) (string, error) {
	cleaned := path.Clean("/" + p)
	if cleaned == "/" {
		return "", fmt.Errorf("invalid object path %q", p)
	}
	for _, seg := range strings.Split(cleaned[1:], "/") {
		if strings.HasPrefix(seg, ".") {
			return "", fmt.Errorf("invalid object path %q: hidden segments are reserved", p)
		}
	}
	return filepath.Join(f.root, filepath.FromSlash(cleaned[1:])), nil
}

func sidecarPath(file string) string {
	return filepath.Join(filepath.Dir(file), "."+filepath.Base(file)+contentTypeSuffix)
}

func (f *fileBackend) Exists(_ context.Context, p string) (bool, error) {
	file, err := f.resolve(p)
	if err != nil {
		return false, err
	}
	info, err := os.Stat(file)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return info.Mode().IsRegular(), nil
}

func (f *fileBackend) Get(_ context.Context, p string) ([]byte, error) {
	file, err := f.resolve(p)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(file) //#nosec G304 -- path resolved inside the container root
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrObjectNotFound
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (f *fileBackend) Put(_ context.Context, p string, data []byte) error {
	file, err := f.resolve(p)
	if err != nil {
		return err
	}
	return writeFileAtomic(file, data)
}

// writeFileAtomic writes data to a temp file in the target directory and
// renames it into place.
func writeFileAtomic(file string, data []byte) error {
	dir := filepath.Dir(file)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(file)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, file); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

func (f *fileBackend) Append(_ context.Context, p string, data []byte) error {
	file, err := f.resolve(p)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(file), 0o750); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}
	fh, err := os.OpenFile(file, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600) //#nosec G304 -- path resolved inside the container root
	if err != nil {
		return err
	}
	if _, err := fh.Write(data); err != nil {
		_ = fh.Close()
		return err
	}
	return fh.Close()
}

func (f *fileBackend) MaxAppendBlockBytes() int {
	return f.maxBlock
}

func (f *fileBackend) SetContentType(ctx context.Context, p, contentType string) error {
	ok, err := f.Exists(ctx, p)
	if err != nil {
		return err
	}
	if !ok {
		return ErrObjectNotFound
	}
	file, _ := f.resolve(p)
	return writeFileAtomic(sidecarPath(file), []byte(contentType))
}

func (f *fileBackend) ContentType(ctx context.Context, p string) (string, error) {
	ok, err := f.Exists(ctx, p)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrObjectNotFound
	}
	file, _ := f.resolve(p)
	data, err := os.ReadFile(sidecarPath(file)) //#nosec G304 -- path resolved inside the container root
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (f *fileBackend) Delete(_ context.Context, p string) error {
	file, err := f.resolve(p)
	if err != nil {
		return err
	}
	for _, name := range []string{file, sidecarPath(file)} {
		if err := os.Remove(name); err != nil && !errors.Is(err, fs.ErrNotExist) && !isNotEmpty(err) {
			return err
		}
	}
	f.pruneEmptyParents(filepath.Dir(file))
	return nil
}

// pruneEmptyParents removes empty directories from dir up to the container root.
func (f *fileBackend) pruneEmptyParents(dir string) {
	for dir != f.root && strings.HasPrefix(dir, f.root) {
		if err := os.Remove(dir); err != nil {
			return
		}
		dir = filepath.Dir(dir)
	}
}

func isNotEmpty(err error) bool {
	var pathErr *fs.PathError
	if !errors.As(err, &pathErr) {
		return false
	}
	entries, readErr := os.ReadDir(pathErr.Path)
	return readErr == nil && len(entries) > 0
}

func (f *fileBackend) List(_ context.Context, prefix string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(f.root, func(file string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if errors.Is(walkErr, fs.ErrNotExist) {
				return nil
			}
			return walkErr
		}
		if file == f.root {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(f.root, file)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if strings.HasPrefix(rel, prefix) {
			paths = append(paths, rel)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", f.root, err)
	}
	return paths, nil
}

func (*fileBackend) Close() error {
	return nil
}
