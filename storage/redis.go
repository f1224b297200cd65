// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package storage

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/redis/go-redis/v9"
)

// scanBatch is the COUNT hint passed to SCAN when listing.
const scanBatch = 256

// redisBackend stores a container as Redis string keys:
//
//	<container>:obj:<path>    object content
//	<container>:ctype:<path>  content type
type redisBackend struct {
	client      *redis.Client
	objPrefix   string
	ctypePrefix string
	maxBlock    int
}

var _ Backend = (*redisBackend)(nil)

func dialRedis(_ context.Context, credential *url.URL, container string, opts DialOptions) (Backend, error) {
	ropts, err := redis.ParseURL(credential.String())
	if err != nil {
		return nil, fmt.Errorf("%w: parsing redis credential: %w", ErrConfig, err)
	}

	// The adapter owns retries.
	ropts.MaxRetries = -1
	if opts.NetworkTimeout > 0 {
		ropts.DialTimeout = opts.NetworkTimeout
		ropts.ReadTimeout = opts.NetworkTimeout
		ropts.WriteTimeout = opts.NetworkTimeout
	}

	return newRedisBackend(redis.NewClient(ropts), container, appendBlockBytes(opts)), nil
}

func newRedisBackend(client *redis.Client, container string, maxBlock int) *redisBackend {
	return &redisBackend{
		client:      client,
		objPrefix:   container + ":obj:",
		ctypePrefix: container + ":ctype:",
		maxBlock:    maxBlock,
	}
}

func (r *redisBackend) Exists(ctx context.Context, path string) (bool, error) {
	n, err := r.client.Exists(ctx, r.objPrefix+path).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *redisBackend) Get(ctx context.Context, path string) ([]byte, error) {
	data, err := r.client.Get(ctx, r.objPrefix+path).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrObjectNotFound
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (r *redisBackend) Put(ctx context.Context, path string, data []byte) error {
	return r.client.Set(ctx, r.objPrefix+path, data, 0).Err()
}

// Append relies on APPEND creating the key when it does not exist.
func (r *redisBackend) Append(ctx context.Context, path string, data []byte) error {
	return r.client.Append(ctx, r.objPrefix+path, string(data)).Err()
}

func (r *redisBackend) MaxAppendBlockBytes() int {
	return r.maxBlock
}

func (r *redisBackend) SetContentType(ctx context.Context, path, contentType string) error {
	ok, err := r.Exists(ctx, path)
	if err != nil {
		return err
	}
	if !ok {
		return ErrObjectNotFound
	}
	return r.client.Set(ctx, r.ctypePrefix+path, contentType, 0).Err()
}

func (r *redisBackend) ContentType(ctx context.Context, path string) (string, error) {
	ok, err := r.Exists(ctx, path)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrObjectNotFound
	}
	ct, err := r.client.Get(ctx, r.ctypePrefix+path).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return ct, err
}

func (r *redisBackend) Delete(ctx context.Context, path string) error {
	return r.client.Del(ctx, r.objPrefix+path, r.ctypePrefix+path).Err()
}

func (r *redisBackend) List(ctx context.Context, prefix string) ([]string, error) {
	var paths []string
	// SCAN may return a key more than once.
	seen := make(map[string]struct{})
	iter := r.client.Scan(ctx, 0, escapeGlob(r.objPrefix+prefix)+"*", scanBatch).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		paths = append(paths, strings.TrimPrefix(key, r.objPrefix))
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return paths, nil
}

func (r *redisBackend) Close() error {
	return r.client.Close()
}

// escapeGlob quotes the characters SCAN MATCH treats as pattern syntax.
func escapeGlob(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, c := range s {
		switch c {
		case '*', '?', '[', ']', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(c)
	}
	return b.String()
}
