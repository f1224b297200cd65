// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package bundle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/opencontainers/go-digest"
	specs "github.com/opencontainers/image-spec/specs-go"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"

	"github.com/stacklok/skillconnector/env"
	"github.com/stacklok/skillconnector/skills"
)

// ErrEmptyBundle is returned when a container has no functions to export.
var ErrEmptyBundle = errors.New("no skill functions to export")

// ExportResult describes a bundle written to the local store.
type ExportResult struct {
	Tag          string
	Manifest     ocispec.Descriptor
	ConfigDigest digest.Digest
	LayerDigest  digest.Digest
	Config       *Config
}

// Exporter packs skill containers into bundles.
type Exporter struct {
	store  *Store
	epoch  time.Time
	logger *slog.Logger
}

// ExportOption configures an Exporter.
type ExportOption func(*Exporter)

// WithEpoch sets the timestamp recorded in the layer and manifest.
func WithEpoch(t time.Time) ExportOption {
	return func(e *Exporter) { e.epoch = t.UTC() }
}

// WithExportLogger sets the exporter's logger.
func WithExportLogger(l *slog.Logger) ExportOption {
	return func(e *Exporter) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewExporter creates an exporter writing into store.
func NewExporter(store *Store, opts ...ExportOption) *Exporter {
	e := &Exporter{
		store:  store,
		epoch:  DefaultEpoch(&env.OSReader{}),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// DefaultEpoch returns SOURCE_DATE_EPOCH when it is set to a valid Unix
// timestamp and the Unix epoch otherwise.
func DefaultEpoch(r env.Reader) time.Time {
	if sde := r.Getenv("SOURCE_DATE_EPOCH"); sde != "" {
		if ts, err := strconv.ParseInt(sde, 10, 64); err == nil {
			return time.Unix(ts, 0).UTC()
		}
	}
	return time.Unix(0, 0).UTC()
}

// Export packs every valid function of src and tags the result. Invalid
// plugin or function names fail the export the same way they fail a
// registry build.
func (e *Exporter) Export(ctx context.Context, src skills.Store, tag string) (*ExportResult, error) {
	if tag == "" {
		return nil, errors.New("bundle tag is required")
	}

	listing, err := src.ListUnder(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("listing skills: %w", err)
	}
	tree, err := skills.GroupListing(listing)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	if named, ok := src.(interface{ Name() string }); ok {
		cfg.Source = named.Name()
	}
	var files []fileEntry
	for _, p := range tree.Plugins {
		exported := 0
		for _, fn := range p.Functions {
			added, err := readFunction(ctx, src, p.Name, fn)
			if err != nil {
				return nil, err
			}
			if len(added) == 0 {
				continue
			}
			files = append(files, added...)
			cfg.Functions = append(cfg.Functions, p.Name+"."+fn)
			exported++
		}
		if exported > 0 {
			cfg.Plugins = append(cfg.Plugins, p.Name)
		}
	}
	if len(cfg.Functions) == 0 {
		return nil, ErrEmptyBundle
	}
	for _, f := range files {
		cfg.Files = append(cfg.Files, f.Path)
	}

	res, err := e.write(ctx, cfg, files, tag)
	if err != nil {
		return nil, err
	}
	e.logger.Info("exported skill bundle",
		"tag", tag, "digest", res.Manifest.Digest.String(),
		"plugins", len(cfg.Plugins), "functions", len(cfg.Functions))
	return res, nil
}

func readFunction(ctx context.Context, src skills.Store, plugin, function string) ([]fileEntry, error) {
	promptPath := skills.PromptPath(plugin, function)
	prompt, ok, err := src.ReadText(ctx, promptPath)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", promptPath, err)
	}
	if !ok {
		return nil, nil
	}
	files := []fileEntry{{Path: promptPath, Content: []byte(prompt)}}

	configPath := skills.ConfigPath(plugin, function)
	config, ok, err := src.ReadText(ctx, configPath)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", configPath, err)
	}
	if ok {
		files = append(files, fileEntry{Path: configPath, Content: []byte(config)})
	}
	return files, nil
}

func (e *Exporter) write(ctx context.Context, cfg *Config, files []fileEntry, tag string) (*ExportResult, error) {
	layer, err := packLayer(files, e.epoch)
	if err != nil {
		return nil, fmt.Errorf("creating layer: %w", err)
	}
	layerDesc, err := e.store.Put(ctx, ocispec.MediaTypeImageLayerGzip, layer)
	if err != nil {
		return nil, err
	}

	configBytes, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshaling bundle config: %w", err)
	}
	configDesc, err := e.store.Put(ctx, MediaTypeBundleConfig, configBytes)
	if err != nil {
		return nil, err
	}

	annotations := cfg.annotations()
	annotations[ocispec.AnnotationCreated] = e.epoch.Format(time.RFC3339)
	manifest := ocispec.Manifest{
		Versioned:    specs.Versioned{SchemaVersion: 2},
		MediaType:    ocispec.MediaTypeImageManifest,
		ArtifactType: ArtifactTypeBundle,
		Config:       configDesc,
		Layers:       []ocispec.Descriptor{layerDesc},
		Annotations:  annotations,
	}
	manifestBytes, err := json.Marshal(manifest)
	if err != nil {
		return nil, fmt.Errorf("marshaling manifest: %w", err)
	}
	manifestDesc, err := e.store.Put(ctx, ocispec.MediaTypeImageManifest, manifestBytes)
	if err != nil {
		return nil, err
	}
	manifestDesc.ArtifactType = ArtifactTypeBundle
	if err := e.store.Tag(ctx, manifestDesc, tag); err != nil {
		return nil, err
	}

	return &ExportResult{
		Tag:          tag,
		Manifest:     manifestDesc,
		ConfigDigest: configDesc.Digest,
		LayerDigest:  layerDesc.Digest,
		Config:       cfg,
	}, nil
}
