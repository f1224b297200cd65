// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/stacklok/skillconnector/config"
	"github.com/stacklok/skillconnector/corpus"
	"github.com/stacklok/skillconnector/memory"
	"github.com/stacklok/skillconnector/oci/bundle"
	"github.com/stacklok/skillconnector/skills"
	"github.com/stacklok/skillconnector/storage"
)

// app holds the process-wide dependencies built from the configuration.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	metrics *prometheus.Registry
	adapter *storage.Adapter
	closers []func()
}

func (a *app) init(cfg *config.Config, logger *slog.Logger) {
	a.cfg = cfg
	a.logger = logger
	a.metrics = prometheus.NewRegistry()
	a.metrics.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	a.adapter = storage.NewAdapter(
		storage.WithRetryPolicy(cfg.Storage.RetryPolicy()),
		storage.WithMaxAppendBlockBytes(cfg.Storage.MaxAppendBlockBytes),
		storage.WithMetrics(a.metrics),
		storage.WithLogger(logger),
	)
}

func (a *app) close() error {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
	if a.adapter == nil {
		return nil
	}
	return a.adapter.Close()
}

func (a *app) skillStore(ctx context.Context) (*storage.Container, error) {
	return a.adapter.Connect(ctx, a.cfg.Skills.StorageURL, a.cfg.Skills.Container)
}

func (a *app) corpusStore(ctx context.Context) (*storage.Container, error) {
	return a.adapter.Connect(ctx, a.cfg.Memory.StorageURL, a.cfg.Memory.Container)
}

func (a *app) skillService(ctx context.Context) (*skills.Service, error) {
	store, err := a.skillStore(ctx)
	if err != nil {
		return nil, err
	}
	return skills.NewService(store, a.logger), nil
}

func (a *app) builder(ctx context.Context) (*skills.Builder, error) {
	store, err := a.skillStore(ctx)
	if err != nil {
		return nil, err
	}
	return skills.NewBuilder(store, skills.WithBuilderLogger(a.logger)), nil
}

func (a *app) embedder() (memory.Embedder, error) {
	e := a.cfg.Embedding
	switch e.Provider {
	case config.EmbeddingHash:
		return memory.HashEmbedder{Dimensions: e.Dimensions}, nil
	case config.EmbeddingOpenAI, config.EmbeddingAzure:
		dims := e.Dimensions
		if dims == 0 {
			dims = a.cfg.Index.Dimensions
		}
		return memory.NewOpenAIEmbedder(memory.OpenAIConfig{
			APIKey:     e.APIKey,
			BaseURL:    e.BaseURL,
			Model:      e.Model,
			Azure:      e.Provider == config.EmbeddingAzure,
			Dimensions: dims,
		})
	case config.EmbeddingOllama:
		return memory.NewOllamaEmbedder(e.BaseURL, e.Model, e.Timeout)
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", e.Provider)
	}
}

// openIndex opens the configured embedding index without loading anything
// into it.
func (a *app) openIndex(ctx context.Context) (*memory.TextMemory, error) {
	embedder, err := a.embedder()
	if err != nil {
		return nil, err
	}

	switch a.cfg.Index.Provider {
	case config.IndexPostgres:
		ps, err := memory.NewPostgresStore(ctx, a.cfg.Index.DSN)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, ps.Close)
		if err := ps.CreateSchema(ctx, a.cfg.Index.Dimensions); err != nil {
			return nil, err
		}
		return memory.NewTextMemory(embedder, ps), nil
	case config.IndexVolatile:
		return memory.NewTextMemory(embedder, memory.NewVolatileStore()), nil
	default:
		return nil, fmt.Errorf("unknown index provider %q", a.cfg.Index.Provider)
	}
}

// textMemory opens the index for querying. A volatile index starts empty on
// every run, so it is filled from the corpus first.
func (a *app) textMemory(ctx context.Context) (*memory.TextMemory, error) {
	mem, err := a.openIndex(ctx)
	if err != nil {
		return nil, err
	}
	if a.cfg.Index.Provider == config.IndexVolatile {
		if _, err := a.loadCorpus(ctx, mem); err != nil {
			return nil, err
		}
	}
	return mem, nil
}

func (a *app) loadCorpus(ctx context.Context, mem corpus.Memory) (int, error) {
	store, err := a.corpusStore(ctx)
	if err != nil {
		return 0, err
	}
	return corpus.NewLoader(store, mem, corpus.WithLoaderLogger(a.logger)).Load(ctx)
}

func (a *app) searcher(ctx context.Context) (*corpus.Searcher, error) {
	mem, err := a.textMemory(ctx)
	if err != nil {
		return nil, err
	}
	return corpus.NewSearcher(mem), nil
}

func (a *app) bundleStore() (*bundle.Store, error) {
	root := a.cfg.Bundles.Root
	if root == "" {
		root = bundle.DefaultStoreRoot()
	}
	return bundle.NewStore(root)
}
