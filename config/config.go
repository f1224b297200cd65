// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"github.com/stacklok/skillconnector/env"
	"github.com/stacklok/skillconnector/logging"
	"github.com/stacklok/skillconnector/storage"
	httpval "github.com/stacklok/skillconnector/validation/http"
)

// Embedding providers.
const (
	EmbeddingHash   = "hash"
	EmbeddingOpenAI = "openai"
	EmbeddingAzure  = "azure"
	EmbeddingOllama = "ollama"
)

// Index providers.
const (
	IndexVolatile = "volatile"
	IndexPostgres = "postgres"
)

// Config is the complete service configuration.
type Config struct {
	Skills    ContainerConfig `yaml:"skills"`
	Memory    MemoryConfig    `yaml:"memory"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Index     IndexConfig     `yaml:"index"`
	Storage   StorageConfig   `yaml:"storage"`
	Server    ServerConfig    `yaml:"server"`
	Bundles   BundlesConfig   `yaml:"bundles"`
	Log       LogConfig       `yaml:"log"`
}

// ContainerConfig locates a storage container.
type ContainerConfig struct {
	// StorageURL is the connection credential, e.g. redis://host:6379/0,
	// file:///var/lib/skills or mem://dev.
	StorageURL string `yaml:"storage_url"`
	Container  string `yaml:"container"`
}

// MemoryConfig locates the corpus and tunes search.
type MemoryConfig struct {
	ContainerConfig `yaml:",inline"`
	MinRelevance    float64 `yaml:"min_relevance"`
	ListMax         int     `yaml:"list_max"`
}

// EmbeddingConfig selects the embedding provider.
type EmbeddingConfig struct {
	Provider   string        `yaml:"provider"`
	Model      string        `yaml:"model"`
	BaseURL    string        `yaml:"base_url"`
	APIKey     string        `yaml:"api_key"`
	Dimensions int           `yaml:"dimensions"`
	Timeout    time.Duration `yaml:"timeout"`
}

// IndexConfig selects the vector store.
type IndexConfig struct {
	Provider string `yaml:"provider"`
	// DSN is the PostgreSQL connection string for the postgres provider.
	DSN        string `yaml:"dsn"`
	Dimensions int    `yaml:"dimensions"`
}

// StorageConfig tunes the storage adapter.
type StorageConfig struct {
	Retry               RetryConfig `yaml:"retry"`
	MaxAppendBlockBytes int         `yaml:"max_append_block_bytes"`
}

// RetryConfig mirrors storage.RetryPolicy.
type RetryConfig struct {
	BaseDelay      time.Duration `yaml:"base_delay"`
	MaxRetries     uint          `yaml:"max_retries"`
	MaxDelay       time.Duration `yaml:"max_delay"`
	NetworkTimeout time.Duration `yaml:"network_timeout"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Address           string        `yaml:"address"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout"`
}

// BundlesConfig configures the local bundle store and registry access.
type BundlesConfig struct {
	Root      string `yaml:"root"`
	PlainHTTP bool   `yaml:"plain_http"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns a configuration that runs entirely in process: in-memory
// containers, hash embeddings and a volatile index.
func Default() Config {
	return Config{
		Skills: ContainerConfig{StorageURL: "mem://local", Container: "skills"},
		Memory: MemoryConfig{
			ContainerConfig: ContainerConfig{StorageURL: "mem://local", Container: "memory"},
			MinRelevance:    0.7,
			ListMax:         10000,
		},
		Embedding: EmbeddingConfig{Provider: EmbeddingHash, Timeout: 60 * time.Second},
		Index:     IndexConfig{Provider: IndexVolatile},
		Storage: StorageConfig{
			Retry: RetryConfig{
				BaseDelay:      storage.DefaultBaseDelay,
				MaxRetries:     storage.DefaultMaxRetries,
				MaxDelay:       storage.DefaultMaxDelay,
				NetworkTimeout: storage.DefaultNetworkTimeout,
			},
			MaxAppendBlockBytes: storage.DefaultMaxAppendBlockBytes,
		},
		Server: ServerConfig{
			Address:           ":8080",
			ReadHeaderTimeout: 10 * time.Second,
			ShutdownTimeout:   15 * time.Second,
		},
		Log: LogConfig{Level: "info", Format: "json"},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/skillconnector/config.yaml.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, "skillconnector", "config.yaml")
}

// Load builds the configuration from defaults, the YAML file at path and
// environment overrides read through r, then validates it. An empty path
// means DefaultPath, which may be absent; an explicit path must exist.
func Load(path string, r env.Reader) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	data, err := os.ReadFile(path) //#nosec G304 -- operator-supplied config path
	switch {
	case err == nil:
		if err := decode(bytes.NewReader(data), &cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := cfg.applyEnv(r); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func decode(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (c *Config) applyEnv(r env.Reader) error {
	set := func(dst *string, keys ...string) {
		if v := env.First(r, keys...); v != "" {
			*dst = v
		}
	}
	set(&c.Skills.StorageURL, "SKILLCONNECTOR_SKILLS_STORAGE_URL")
	set(&c.Skills.Container, "SKILLCONNECTOR_SKILLS_CONTAINER")
	set(&c.Memory.StorageURL, "SKILLCONNECTOR_MEMORY_STORAGE_URL")
	set(&c.Memory.Container, "SKILLCONNECTOR_MEMORY_CONTAINER")
	set(&c.Embedding.Provider, "SKILLCONNECTOR_EMBEDDING_PROVIDER")
	set(&c.Embedding.Model, "SKILLCONNECTOR_EMBEDDING_MODEL")
	set(&c.Embedding.BaseURL, "SKILLCONNECTOR_EMBEDDING_BASE_URL")
	set(&c.Embedding.APIKey, "SKILLCONNECTOR_EMBEDDING_API_KEY", "OPENAI_API_KEY")
	set(&c.Index.Provider, "SKILLCONNECTOR_INDEX_PROVIDER")
	set(&c.Index.DSN, "SKILLCONNECTOR_INDEX_DSN")
	set(&c.Server.Address, "SKILLCONNECTOR_SERVER_ADDRESS")
	set(&c.Bundles.Root, "SKILLCONNECTOR_BUNDLES_ROOT")
	set(&c.Log.Level, "SKILLCONNECTOR_LOG_LEVEL")
	set(&c.Log.Format, "SKILLCONNECTOR_LOG_FORMAT")

	if v := env.First(r, "SKILLCONNECTOR_MEMORY_MIN_RELEVANCE"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("SKILLCONNECTOR_MEMORY_MIN_RELEVANCE: %w", err)
		}
		c.Memory.MinRelevance = f
	}
	return nil
}

// Validate reports every problem in the configuration at once.
func (c *Config) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	for _, sec := range []struct {
		name string
		cc   ContainerConfig
	}{{"skills", c.Skills}, {"memory", c.Memory.ContainerConfig}} {
		if strings.TrimSpace(sec.cc.StorageURL) == "" {
			add("%s.storage_url is required", sec.name)
		}
		if strings.TrimSpace(sec.cc.Container) == "" {
			add("%s.container is required", sec.name)
		}
	}
	if c.Memory.MinRelevance < 0 || c.Memory.MinRelevance > 1 {
		add("memory.min_relevance must be between 0 and 1, got %v", c.Memory.MinRelevance)
	}
	if c.Memory.ListMax < 0 {
		add("memory.list_max must not be negative")
	}

	switch c.Embedding.Provider {
	case EmbeddingHash:
	case EmbeddingOpenAI, EmbeddingAzure:
		if c.Embedding.APIKey == "" {
			add("embedding.api_key (or OPENAI_API_KEY) is required for provider %s", c.Embedding.Provider)
		}
		if c.Embedding.Provider == EmbeddingAzure && c.Embedding.BaseURL == "" {
			add("embedding.base_url is required for provider azure")
		}
	case EmbeddingOllama:
	default:
		add("embedding.provider must be one of hash, openai, azure, ollama; got %q", c.Embedding.Provider)
	}
	if c.Embedding.BaseURL != "" {
		if err := httpval.ValidateEndpointURL(c.Embedding.BaseURL); err != nil {
			add("embedding.base_url: %w", err)
		}
	}
	if c.Embedding.Dimensions < 0 {
		add("embedding.dimensions must not be negative")
	}

	switch c.Index.Provider {
	case IndexVolatile:
	case IndexPostgres:
		if c.Index.DSN == "" {
			add("index.dsn is required for provider postgres")
		}
		if c.Index.Dimensions <= 0 {
			add("index.dimensions must be positive for provider postgres")
		}
	default:
		add("index.provider must be volatile or postgres; got %q", c.Index.Provider)
	}

	if r := c.Storage.Retry; r.MaxDelay > 0 && r.BaseDelay > r.MaxDelay {
		add("storage.retry.base_delay %s exceeds max_delay %s", r.BaseDelay, r.MaxDelay)
	}
	if c.Storage.MaxAppendBlockBytes < 0 {
		add("storage.max_append_block_bytes must not be negative")
	}
	if strings.TrimSpace(c.Server.Address) == "" {
		add("server.address is required")
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		add("log.level: %w", err)
	}
	if _, err := logging.ParseFormat(c.Log.Format); err != nil {
		add("log.format: %w", err)
	}

	return errors.Join(errs...)
}

// RetryPolicy converts the retry section for the storage adapter.
func (c StorageConfig) RetryPolicy() storage.RetryPolicy {
	return storage.RetryPolicy{
		BaseDelay:      c.Retry.BaseDelay,
		MaxRetries:     c.Retry.MaxRetries,
		MaxDelay:       c.Retry.MaxDelay,
		NetworkTimeout: c.Retry.NetworkTimeout,
	}
}

// Options converts the log section into logging options. Invalid values
// fall back to the defaults; Validate reports them.
func (c LogConfig) Options(w io.Writer) []logging.Option {
	lvl, _ := logging.ParseLevel(c.Level)
	format, _ := logging.ParseFormat(c.Format)
	opts := []logging.Option{logging.WithLevel(lvl), logging.WithFormat(format)}
	if w != nil {
		opts = append(opts, logging.WithOutput(w))
	}
	return opts
}
