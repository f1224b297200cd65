// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/stacklok/skillconnector/corpus"
	"github.com/stacklok/skillconnector/skills"
)

// Name is the server name reported during initialization.
const Name = "skillconnector"

// ErrUnknownPrompt is returned for a prompt name not in the registry.
var ErrUnknownPrompt = errors.New("unknown prompt")

// Searcher finds the corpus line closest to a query.
type Searcher interface {
	SearchWithThreshold(ctx context.Context, query string, minRelevance float64) (corpus.Match, error)
}

// Server serves the registry held by a skills.Holder over MCP.
type Server struct {
	holder *skills.Holder
	mcp    *server.MCPServer
	logger *slog.Logger

	searcher     Searcher
	minRelevance float64

	mu      sync.Mutex
	prompts []string
}

var _ skills.Engine = (*Server)(nil)

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSearcher adds the search_memory tool. minRelevance applies when the
// caller does not pass one.
func WithSearcher(searcher Searcher, minRelevance float64) Option {
	return func(s *Server) {
		s.searcher = searcher
		s.minRelevance = minRelevance
	}
}

// New creates a server over holder and registers a prompt for every function
// it currently holds.
func New(holder *skills.Holder, version string, opts ...Option) *Server {
	s := &Server{
		holder: holder,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "mcp")

	s.mcp = server.NewMCPServer(Name, version,
		server.WithPromptCapabilities(true),
		server.WithToolCapabilities(false),
		server.WithRecovery(),
		server.WithInstructions("Prompts are skill functions named plugin.function. "+
			"Getting a prompt renders its template with the given arguments."),
	)
	if s.searcher != nil {
		s.mcp.AddTool(searchTool(), s.handleSearch)
	}
	s.syncPrompts(holder.Load())
	return s
}

// MCPServer returns the underlying protocol server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

// ReplacePlugins swaps the held registry and re-registers the prompt list.
// Concurrent calls are serialized so the prompt list always matches the held
// registry.
func (s *Server) ReplacePlugins(ctx context.Context, r *skills.Registry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.holder.ReplacePlugins(ctx, r); err != nil {
		return err
	}
	s.syncPrompts(s.holder.Load())
	return nil
}

// HTTPHandler returns a streamable HTTP handler rooted at path.
func (s *Server) HTTPHandler(path string) http.Handler {
	return server.NewStreamableHTTPServer(s.mcp, server.WithEndpointPath(path))
}

// ServeStdio serves on the process's stdin and stdout until ctx is done or
// stdin is closed.
func (s *Server) ServeStdio(ctx context.Context) error {
	stdio := server.NewStdioServer(s.mcp)
	if err := stdio.Listen(ctx, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("serving stdio: %w", err)
	}
	return nil
}

// PromptName is the MCP prompt name of a function.
func PromptName(plugin, function string) string {
	return plugin + "." + function
}

// syncPrompts replaces the registered prompts with those of reg. The caller
// holds s.mu.
func (s *Server) syncPrompts(reg *skills.Registry) {
	infos := reg.Functions()
	prompts := make([]server.ServerPrompt, 0, len(infos))
	names := make([]string, 0, len(infos))
	for _, info := range infos {
		def, ok := reg.Function(info.Plugin, info.Function)
		if !ok {
			continue
		}
		name := PromptName(def.Plugin, def.Name)
		names = append(names, name)
		prompts = append(prompts, server.ServerPrompt{Prompt: promptFor(def), Handler: s.handlePrompt})
	}

	if len(s.prompts) > 0 {
		s.mcp.DeletePrompts(s.prompts...)
	}
	if len(prompts) > 0 {
		s.mcp.AddPrompts(prompts...)
	}
	s.prompts = names
	s.logger.Debug("registered prompts", "count", len(names))
}

func promptFor(def skills.FunctionDefinition) mcp.Prompt {
	opts := []mcp.PromptOption{mcp.WithPromptDescription(def.Description())}
	vars := def.Config.InputVariables
	if len(vars) == 0 {
		vars = []skills.InputVariable{{Name: skills.DefaultInputVariable}}
	}
	for _, v := range vars {
		argOpts := []mcp.ArgumentOption{}
		if v.Description != "" {
			argOpts = append(argOpts, mcp.ArgumentDescription(v.Description))
		}
		if v.IsRequired {
			argOpts = append(argOpts, mcp.RequiredArgument())
		}
		opts = append(opts, mcp.WithArgument(v.Name, argOpts...))
	}
	return mcp.NewPrompt(PromptName(def.Plugin, def.Name), opts...)
}

// handlePrompt renders against the registry current at call time, so a
// prompt removed by a concurrent rebuild reports ErrUnknownPrompt.
func (s *Server) handlePrompt(_ context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	plugin, function, ok := strings.Cut(req.Params.Name, ".")
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPrompt, req.Params.Name)
	}
	def, ok := s.holder.Load().Function(plugin, function)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPrompt, req.Params.Name)
	}
	for _, v := range def.Config.InputVariables {
		if v.IsRequired && req.Params.Arguments[v.Name] == "" {
			return nil, fmt.Errorf("prompt %s: argument %q is required", req.Params.Name, v.Name)
		}
	}

	text := skills.Render(def, req.Params.Arguments)
	return mcp.NewGetPromptResult(def.Description(), []mcp.PromptMessage{
		mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(text)),
	}), nil
}
