// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package storage

import (
	"context"
	"net/url"
	"slices"
	"strings"
	"sync"
)

// memoryBackend keeps one container's objects in process memory.
type memoryBackend struct {
	mu       sync.RWMutex
	objects  map[string]*memoryObject
	maxBlock int
}

type memoryObject struct {
	data        []byte
	contentType string
}

var _ Backend = (*memoryBackend)(nil)

func dialMemory(_ context.Context, _ *url.URL, _ string, opts DialOptions) (Backend, error) {
	return &memoryBackend{
		objects:  make(map[string]*memoryObject),
		maxBlock: appendBlockBytes(opts),
	}, nil
}

func (m *memoryBackend) Exists(_ context.Context, path string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.objects[path]
	return ok, nil
}

func (m *memoryBackend) Get(_ context.Context, path string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	obj, ok := m.objects[path]
	if !ok {
		return nil, ErrObjectNotFound
	}
	return slices.Clone(obj.data), nil
}

func (m *memoryBackend) Put(_ context.Context, path string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if obj, ok := m.objects[path]; ok {
		obj.data = slices.Clone(data)
		return nil
	}
	m.objects[path] = &memoryObject{data: slices.Clone(data)}
	return nil
}

func (m *memoryBackend) Append(_ context.Context, path string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	obj, ok := m.objects[path]
	if !ok {
		obj = &memoryObject{}
		m.objects[path] = obj
	}
	obj.data = append(obj.data, data...)
	return nil
}

func (m *memoryBackend) MaxAppendBlockBytes() int {
	return m.maxBlock
}

func (m *memoryBackend) SetContentType(_ context.Context, path, contentType string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	obj, ok := m.objects[path]
	if !ok {
		return ErrObjectNotFound
	}
	obj.contentType = contentType
	return nil
}

func (m *memoryBackend) ContentType(_ context.Context, path string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	obj, ok := m.objects[path]
	if !ok {
		return "", ErrObjectNotFound
	}
	return obj.contentType, nil
}

func (m *memoryBackend) Delete(_ context.Context, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, path)
	return nil
}

func (m *memoryBackend) List(_ context.Context, prefix string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	paths := make([]string, 0, len(m.objects))
	for p := range m.objects {
		if strings.HasPrefix(p, prefix) {
			paths = append(paths, p)
		}
	}
	slices.Sort(paths)
	return paths, nil
}

func (*memoryBackend) Close() error {
	return nil
}
