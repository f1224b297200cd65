// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package bundle

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	ocispec "github.com/opencontainers/image-spec/specs-go/v1"

	"github.com/stacklok/skillconnector/skills"
	"github.com/stacklok/skillconnector/validation/name"
)

// MaxManifestSize bounds manifests read from the store or a registry.
const MaxManifestSize int64 = 1024 * 1024

// maxConfigSize bounds the bundle config blob.
const maxConfigSize int64 = 4 * 1024 * 1024

// Importer restores bundles into skill containers.
type Importer struct {
	logger *slog.Logger
}

// ImportOption configures an Importer.
type ImportOption func(*Importer)

// WithImportLogger sets the importer's logger.
func WithImportLogger(l *slog.Logger) ImportOption {
	return func(im *Importer) {
		if l != nil {
			im.logger = l
		}
	}
}

// NewImporter creates an importer.
func NewImporter(opts ...ImportOption) *Importer {
	im := &Importer{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(im)
	}
	return im
}

type importedFunction struct {
	plugin, function string
	prompt, config   string
	hasPrompt        bool
}

// Import writes the functions of the bundle tagged tag into dst and returns
// how many were written. The whole bundle is validated before anything is
// written; existing functions with the same names are overwritten.
func (im *Importer) Import(ctx context.Context, store *Store, tag string, dst skills.Store) (int, error) {
	files, err := readBundle(ctx, store, tag)
	if err != nil {
		return 0, err
	}
	functions, err := groupFiles(files)
	if err != nil {
		return 0, err
	}

	svc := skills.NewService(dst, im.logger)
	for i, f := range functions {
		if err := svc.Insert(ctx, f.plugin, f.function, f.prompt, f.config); err != nil {
			return i, fmt.Errorf("importing %s.%s: %w", f.plugin, f.function, err)
		}
	}
	im.logger.Info("imported skill bundle", "tag", tag, "functions", len(functions))
	return len(functions), nil
}

func readBundle(ctx context.Context, store *Store, tag string) ([]fileEntry, error) {
	desc, err := store.Resolve(ctx, tag)
	if err != nil {
		return nil, err
	}
	if desc.MediaType != ocispec.MediaTypeImageManifest {
		return nil, fmt.Errorf("%s is %s, not an image manifest", tag, desc.MediaType)
	}
	raw, err := store.Get(ctx, desc, MaxManifestSize)
	if err != nil {
		return nil, err
	}
	var manifest ocispec.Manifest
	if err := json.Unmarshal(raw, &manifest); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	if manifest.ArtifactType != ArtifactTypeBundle {
		return nil, fmt.Errorf("%s has artifact type %q, want %q", tag, manifest.ArtifactType, ArtifactTypeBundle)
	}
	if len(manifest.Layers) != 1 {
		return nil, fmt.Errorf("bundle must have exactly one layer, has %d", len(manifest.Layers))
	}
	if manifest.Config.MediaType != MediaTypeBundleConfig {
		return nil, fmt.Errorf("unexpected bundle config media type %q", manifest.Config.MediaType)
	}

	configBytes, err := store.Get(ctx, manifest.Config, maxConfigSize)
	if err != nil {
		return nil, err
	}
	if _, err := ParseConfig(configBytes); err != nil {
		return nil, err
	}

	layer, err := store.Get(ctx, manifest.Layers[0], MaxLayerSize)
	if err != nil {
		return nil, err
	}
	files, err := unpackLayer(layer)
	if err != nil {
		return nil, fmt.Errorf("unpacking bundle layer: %w", err)
	}
	return files, nil
}

// groupFiles maps archive paths back to functions, rejecting anything that
// is not a prompt or config of a validly named function.
func groupFiles(files []fileEntry) ([]importedFunction, error) {
	byKey := make(map[string]*importedFunction)
	for _, f := range files {
		segments := strings.Split(f.Path, "/")
		if len(segments) != 3 {
			return nil, fmt.Errorf("unexpected bundle entry %q", f.Path)
		}
		plugin, function, file := segments[0], segments[1], segments[2]
		if err := name.Validate("plugin", plugin); err != nil {
			return nil, fmt.Errorf("bundle entry %q: %w", f.Path, err)
		}
		if err := name.Validate("function", function); err != nil {
			return nil, fmt.Errorf("bundle entry %q: %w", f.Path, err)
		}

		key := plugin + "/" + function
		fn, ok := byKey[key]
		if !ok {
			fn = &importedFunction{plugin: plugin, function: function}
			byKey[key] = fn
		}
		switch file {
		case skills.PromptFileName:
			fn.prompt = string(f.Content)
			fn.hasPrompt = true
		case skills.ConfigFileName:
			fn.config = string(f.Content)
		default:
			return nil, fmt.Errorf("unexpected bundle entry %q", f.Path)
		}
	}

	out := make([]importedFunction, 0, len(byKey))
	for key, fn := range byKey {
		if !fn.hasPrompt {
			return nil, fmt.Errorf("bundle function %s has no %s", key, skills.PromptFileName)
		}
		out = append(out, *fn)
	}
	slices.SortFunc(out, func(a, b importedFunction) int {
		return cmp.Or(strings.Compare(a.plugin, b.plugin), strings.Compare(a.function, b.function))
	})
	return out, nil
}
