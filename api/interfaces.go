// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

//go:generate mockgen -copyright_file=../.github/license-header.txt -source=interfaces.go -destination=mocks/mock_interfaces.go -package=mocks -exclude_interfaces=RegistrySource,Rebuilder

package api

import (
	"context"
	"iter"

	"github.com/stacklok/skillconnector/corpus"
	"github.com/stacklok/skillconnector/skills"
)

// RegistrySource returns the current registry snapshot.
// *skills.Holder implements it.
type RegistrySource interface {
	Load() *skills.Registry
}

// SkillService is the CRUD surface. *skills.Service implements it.
type SkillService interface {
	Get(ctx context.Context, plugin, function string) (skills.Skill, error)
	Insert(ctx context.Context, plugin, function, prompt, config string) error
	Delete(ctx context.Context, plugin, function string) error
}

// CorpusSearcher is the corpus query surface. *corpus.Searcher implements it.
type CorpusSearcher interface {
	SearchWithThreshold(ctx context.Context, query string, minRelevance float64) (corpus.Match, error)
	ListAll(ctx context.Context, maxItems int) iter.Seq2[string, error]
}

// Rebuilder rebuilds the registry and publishes it to engine.
// *skills.Builder implements it.
type Rebuilder interface {
	Register(ctx context.Context, engine skills.Engine) (*skills.Registry, error)
}
