// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/stacklok/skillconnector/corpus"
)

type searchRequest struct {
	Input        string   `json:"input"`
	MinRelevance *float64 `json:"min_relevance,omitempty"`
}

func (s *Server) listMemory(w http.ResponseWriter, r *http.Request) {
	maxItems := s.listMax
	if raw := r.URL.Query().Get("max"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			s.fail(w, r, fmt.Errorf("%w: max must be a positive integer", errBadRequest))
			return
		}
		maxItems = n
	}

	lines := []string{}
	for line, err := range s.corpus.ListAll(r.Context(), maxItems) {
		if err != nil {
			s.fail(w, r, err)
			return
		}
		lines = append(lines, line)
	}
	writeJSON(w, http.StatusOK, lines)
}

func (s *Server) searchMemory(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		s.fail(w, r, fmt.Errorf("%w: decoding search: %w", errBadRequest, err))
		return
	}
	if strings.TrimSpace(req.Input) == "" {
		s.fail(w, r, fmt.Errorf("%w: input is required", errBadRequest))
		return
	}
	minRelevance := s.minRelevance
	if req.MinRelevance != nil {
		minRelevance = *req.MinRelevance
	}

	m, err := s.corpus.SearchWithThreshold(r.Context(), req.Input, minRelevance)
	if errors.Is(err, corpus.ErrBelowThreshold) {
		s.logger.Debug("search below threshold", "relevance", m.Relevance, "min", minRelevance)
	}
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}
