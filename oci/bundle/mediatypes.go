// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package bundle

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

const (
	// ArtifactTypeBundle identifies skill bundles in manifests.
	ArtifactTypeBundle = "dev.skillconnector.bundle.v1"

	// MediaTypeBundleConfig is the media type of the bundle config blob.
	MediaTypeBundleConfig = "application/vnd.skillconnector.bundle.config.v1+json"
)

// Manifest annotation keys.
const (
	AnnotationPlugins   = "dev.skillconnector.bundle.plugins"
	AnnotationFunctions = "dev.skillconnector.bundle.functions"
	AnnotationSource    = "dev.skillconnector.bundle.source"
)

// Config is the bundle config blob.
type Config struct {
	// Source names the container the bundle was exported from.
	Source    string   `json:"source,omitempty"`
	Plugins   []string `json:"plugins"`
	Functions []string `json:"functions"`
	Files     []string `json:"files"`
}

// ParseConfig decodes and sanity checks a bundle config blob.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing bundle config: %w", err)
	}
	if len(cfg.Functions) > 0 && len(cfg.Plugins) == 0 {
		return nil, errors.New("bundle config lists functions without plugins")
	}
	return &cfg, nil
}

func (c *Config) annotations() map[string]string {
	a := map[string]string{
		AnnotationPlugins:   strconv.Itoa(len(c.Plugins)),
		AnnotationFunctions: strconv.Itoa(len(c.Functions)),
	}
	if c.Source != "" {
		a[AnnotationSource] = c.Source
	}
	return a
}
