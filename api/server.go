// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/stacklok/skillconnector/cel"
	"github.com/stacklok/skillconnector/corpus"
	"github.com/stacklok/skillconnector/httperr"
	"github.com/stacklok/skillconnector/recovery"
	"github.com/stacklok/skillconnector/skills"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 4 * 1024 * 1024

// Server holds the handlers' dependencies.
type Server struct {
	registry RegistrySource
	skills   SkillService
	corpus   CorpusSearcher

	filters      *cel.FunctionFilterEngine
	rebuilder    Rebuilder
	engine       skills.Engine
	minRelevance float64
	listMax      int
	logger       *slog.Logger

	registerer prometheus.Registerer
	gatherer   prometheus.Gatherer
	requests   *prometheus.CounterVec
	mcp        http.Handler
}

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

// WithRebuild enables POST /skills:rebuild, publishing rebuilt registries to
// engine.
func WithRebuild(b Rebuilder, engine skills.Engine) Option {
	return func(s *Server) {
		s.rebuilder = b
		s.engine = engine
	}
}

// WithSearchDefaults sets the minimum relevance used when a search request
// omits it, and the default bound of GET /memory.
func WithSearchDefaults(minRelevance float64, listMax int) Option {
	return func(s *Server) {
		s.minRelevance = minRelevance
		s.listMax = listMax
	}
}

// WithMetrics instruments requests into reg and serves gatherer at /metrics.
func WithMetrics(reg prometheus.Registerer, gatherer prometheus.Gatherer) Option {
	return func(s *Server) {
		s.registerer = reg
		s.gatherer = gatherer
	}
}

// WithMCP mounts h at /mcp.
func WithMCP(h http.Handler) Option {
	return func(s *Server) { s.mcp = h }
}

// New creates a server. The corpus searcher may be nil, in which case the
// memory routes are not mounted.
func New(registry RegistrySource, svc SkillService, searcher CorpusSearcher, opts ...Option) (*Server, error) {
	filters, err := cel.NewFunctionFilterEngine()
	if err != nil {
		return nil, err
	}
	s := &Server{
		registry:     registry,
		skills:       svc,
		corpus:       searcher,
		filters:      filters,
		minRelevance: 0.7,
		listMax:      corpus.DefaultListMax,
		logger:       slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.registerer != nil {
		s.requests = promauto.With(s.registerer).NewCounterVec(prometheus.CounterOpts{
			Name: "skillconnector_http_requests_total",
			Help: "HTTP requests by route and status code.",
		}, []string{"route", "code"})
	}
	return s, nil
}

// Handler returns the routed, instrumented and panic-safe handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.route(mux, "GET /healthz", http.HandlerFunc(s.healthz))
	s.route(mux, "GET /skills", http.HandlerFunc(s.listSkills))
	s.route(mux, "GET /skills/{plugin}/{function}", http.HandlerFunc(s.getSkill))
	s.route(mux, "POST /skills/{plugin}/{function}", http.HandlerFunc(s.putSkill))
	s.route(mux, "DELETE /skills/{plugin}/{function}", http.HandlerFunc(s.deleteSkill))
	if s.rebuilder != nil {
		s.route(mux, "POST /skills:rebuild", http.HandlerFunc(s.rebuild))
	}
	if s.corpus != nil {
		s.route(mux, "GET /memory", http.HandlerFunc(s.listMemory))
		s.route(mux, "POST /memory/search", http.HandlerFunc(s.searchMemory))
	}
	if s.gatherer != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	if s.mcp != nil {
		mux.Handle("/mcp", s.mcp)
	}
	return recovery.Middleware(s.logger)(mux)
}

func (s *Server) route(mux *http.ServeMux, pattern string, h http.Handler) {
	if s.requests != nil {
		h = promhttp.InstrumentHandlerCounter(s.requests.MustCurryWith(prometheus.Labels{"route": pattern}), h)
	}
	mux.Handle(pattern, h)
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	err = classify(err)
	code := httperr.Code(err)
	level := slog.LevelWarn
	if code >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	s.logger.Log(r.Context(), level, "request failed",
		"method", r.Method, "path", r.URL.Path, "code", code, "error", err)
	httperr.Write(w, err)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (*Server) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
