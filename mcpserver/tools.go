// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package mcpserver

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/stacklok/skillconnector/corpus"
)

const searchToolName = "search_memory"

func searchTool() mcp.Tool {
	return mcp.NewTool(searchToolName,
		mcp.WithDescription("Find the corpus line most relevant to the input text."),
		mcp.WithString("input", mcp.Required(), mcp.Description("Text to search for")),
		mcp.WithNumber("min_relevance", mcp.Description("Minimum relevance between 0 and 1")),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

func (s *Server) handleSearch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := req.RequireString("input")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	minRelevance := req.GetFloat("min_relevance", s.minRelevance)

	m, err := s.searcher.SearchWithThreshold(ctx, input, minRelevance)
	switch {
	case errors.Is(err, corpus.ErrNotFound), errors.Is(err, corpus.ErrBelowThreshold):
		return mcp.NewToolResultError(err.Error()), nil
	case err != nil:
		s.logger.Error("memory search failed", "error", err)
		return nil, err
	}

	data, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(data)), nil
}
