// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package api_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/stacklok/skillconnector/api"
	"github.com/stacklok/skillconnector/api/mocks"
	"github.com/stacklok/skillconnector/corpus"
	"github.com/stacklok/skillconnector/httperr"
	"github.com/stacklok/skillconnector/memory"
	"github.com/stacklok/skillconnector/skills"
	"github.com/stacklok/skillconnector/storage"
)

type fixture struct {
	server *httptest.Server
	store  *storage.Container
	holder *skills.Holder
}

func newFixture(t *testing.T, files map[string]string, corpusLines string) *fixture {
	t.Helper()
	ctx := context.Background()

	adapter := storage.NewAdapter()
	t.Cleanup(func() { _ = adapter.Close() })
	store, err := adapter.Connect(ctx, "mem://api-test", "skills")
	require.NoError(t, err)
	for p, content := range files {
		require.NoError(t, store.WriteText(ctx, p, content))
	}

	builder := skills.NewBuilder(store)
	holder := &skills.Holder{}
	_, err = builder.Register(ctx, holder)
	require.NoError(t, err)

	data, err := adapter.Connect(ctx, "mem://api-test", "memory")
	require.NoError(t, err)
	require.NoError(t, data.WriteText(ctx, "corpus.txt", corpusLines))
	mem := memory.NewTextMemory(memory.HashEmbedder{}, memory.NewVolatileStore())
	_, err = corpus.NewLoader(data, mem).Load(ctx)
	require.NoError(t, err)

	reg := prometheus.NewRegistry()
	srv, err := api.New(holder, skills.NewService(store, nil), corpus.NewSearcher(mem),
		api.WithRebuild(builder, holder),
		api.WithMetrics(reg, reg),
	)
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return &fixture{server: ts, store: store, holder: holder}
}

func (f *fixture) do(t *testing.T, method, path, body string) (int, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), method, f.server.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	resp, err := f.server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

var seeded = map[string]string{
	"Writer/summarize/skprompt.txt":  "Summarize: {{$input}}",
	"Writer/summarize/config.json":   `{"description": "Summarize text"}`,
	"Writer/brainstorm/skprompt.txt": "Ideas for {{$input}}",
	"Coder/review/skprompt.txt":      "Review {{$input}}",
}

func TestListSkills(t *testing.T) {
	t.Parallel()
	f := newFixture(t, seeded, "alpha\n")

	tests := []struct {
		name     string
		query    string
		wantCode int
		want     []skills.FunctionInfo
	}{
		{
			name:     "all",
			wantCode: http.StatusOK,
			want: []skills.FunctionInfo{
				{Plugin: "Coder", Function: "review"},
				{Plugin: "Writer", Function: "brainstorm"},
				{Plugin: "Writer", Function: "summarize", Description: "Summarize text"},
			},
		},
		{
			name:     "filtered",
			query:    `?filter=plugin+%3D%3D+%22Writer%22+%26%26+description+!%3D+%22%22`,
			wantCode: http.StatusOK,
			want:     []skills.FunctionInfo{{Plugin: "Writer", Function: "summarize", Description: "Summarize text"}},
		},
		{
			name:     "no match",
			query:    `?filter=false`,
			wantCode: http.StatusOK,
			want:     []skills.FunctionInfo{},
		},
		{
			name:     "invalid filter",
			query:    `?filter=plugin+%2B`,
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			code, body := f.do(t, http.MethodGet, "/skills"+tt.query, "")
			require.Equal(t, tt.wantCode, code, string(body))
			if tt.want == nil {
				var e httperr.Body
				require.NoError(t, json.Unmarshal(body, &e))
				assert.Equal(t, tt.wantCode, e.Code)
				return
			}
			var got []skills.FunctionInfo
			require.NoError(t, json.Unmarshal(body, &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSkillCRUD(t *testing.T) {
	t.Parallel()
	f := newFixture(t, seeded, "alpha\n")

	code, body := f.do(t, http.MethodGet, "/skills/Writer/summarize", "")
	require.Equal(t, http.StatusOK, code)
	var skill skills.Skill
	require.NoError(t, json.Unmarshal(body, &skill))
	assert.Equal(t, "Summarize: {{$input}}", skill.Prompt)
	assert.Equal(t, `{"description": "Summarize text"}`, skill.Config)

	code, _ = f.do(t, http.MethodPost, "/skills/Writer/outline", `{"prompt": "Outline {{$input}}"}`)
	require.Equal(t, http.StatusNoContent, code)

	// Writes are not visible in the registry until it is rebuilt.
	assert.Equal(t, 3, f.holder.Load().Len())
	code, body = f.do(t, http.MethodPost, "/skills:rebuild", "")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"plugins": 2, "functions": 4}`, string(body))
	_, ok := f.holder.Load().Function("Writer", "outline")
	assert.True(t, ok)

	code, _ = f.do(t, http.MethodDelete, "/skills/Writer/outline", "")
	require.Equal(t, http.StatusNoContent, code)
	code, _ = f.do(t, http.MethodGet, "/skills/Writer/outline", "")
	assert.Equal(t, http.StatusNotFound, code)
	code, _ = f.do(t, http.MethodDelete, "/skills/Writer/outline", "")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestSkillRequestsRejected(t *testing.T) {
	t.Parallel()
	f := newFixture(t, seeded, "alpha\n")

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{"invalid plugin name", http.MethodGet, "/skills/Wri-ter/summarize", "", http.StatusBadRequest},
		{"invalid function name on insert", http.MethodPost, "/skills/Writer/sum%20mary", `{"prompt": "x"}`, http.StatusBadRequest},
		{"unknown field", http.MethodPost, "/skills/Writer/x", `{"prompt": "x", "extra": 1}`, http.StatusBadRequest},
		{"malformed body", http.MethodPost, "/skills/Writer/x", `{"prompt": `, http.StatusBadRequest},
		{"invalid config", http.MethodPost, "/skills/Writer/x", `{"prompt": "x", "config": "{\"type\": \"bogus\"}"}`, http.StatusBadRequest},
		{"missing skill", http.MethodGet, "/skills/Writer/missing", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := f.do(t, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.want, code, string(body))
		})
	}

	exists, err := f.store.Exists(context.Background(), skills.PromptPath("Writer", "x"))
	require.NoError(t, err)
	assert.False(t, exists, "rejected requests must not write")
}

func TestMemoryRoutes(t *testing.T) {
	t.Parallel()
	f := newFixture(t, nil, "alpha beta\ngamma delta\nepsilon\n")

	code, body := f.do(t, http.MethodGet, "/memory", "")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `["alpha beta", "gamma delta", "epsilon"]`, string(body))

	code, body = f.do(t, http.MethodGet, "/memory?max=2", "")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `["alpha beta", "gamma delta"]`, string(body))

	code, _ = f.do(t, http.MethodGet, "/memory?max=zero", "")
	assert.Equal(t, http.StatusBadRequest, code)

	code, body = f.do(t, http.MethodPost, "/memory/search", `{"input": "gamma delta"}`)
	require.Equal(t, http.StatusOK, code, string(body))
	var m corpus.Match
	require.NoError(t, json.Unmarshal(body, &m))
	assert.Equal(t, "gamma delta", m.Text)
	assert.Equal(t, "1", m.ID)
	assert.InDelta(t, 1.0, m.Relevance, 1e-6)

	code, _ = f.do(t, http.MethodPost, "/memory/search", `{"input": "  "}`)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestHealthAndMetrics(t *testing.T) {
	t.Parallel()
	f := newFixture(t, seeded, "alpha\n")

	code, body := f.do(t, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"status": "ok"}`, string(body))

	code, body = f.do(t, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(body), `skillconnector_http_requests_total{code="200",route="GET /healthz"} 1`)
}

func errSeq(err error) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) { yield("", err) }
}

func TestErrorMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		setup func(svc *mocks.MockSkillService, cs *mocks.MockCorpusSearcher)
		path  string
		want  int
	}{
		{
			name: "storage outage",
			setup: func(svc *mocks.MockSkillService, _ *mocks.MockCorpusSearcher) {
				svc.EXPECT().Get(gomock.Any(), "Writer", "summarize").
					Return(skills.Skill{}, &storage.Error{Op: "get", Path: "Writer/summarize/skprompt.txt", Err: fmt.Errorf("connection refused")})
			},
			path: "/skills/Writer/summarize",
			want: http.StatusBadGateway,
		},
		{
			name: "storage misconfiguration",
			setup: func(svc *mocks.MockSkillService, _ *mocks.MockCorpusSearcher) {
				svc.EXPECT().Get(gomock.Any(), "Writer", "summarize").
					Return(skills.Skill{}, fmt.Errorf("connecting: %w", storage.ErrConfig))
			},
			path: "/skills/Writer/summarize",
			want: http.StatusInternalServerError,
		},
		{
			name: "listing failure",
			setup: func(_ *mocks.MockSkillService, cs *mocks.MockCorpusSearcher) {
				cs.EXPECT().ListAll(gomock.Any(), corpus.DefaultListMax).Return(errSeq(storage.ErrNotConnected))
			},
			path: "/memory",
			want: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)
			svc := mocks.NewMockSkillService(ctrl)
			cs := mocks.NewMockCorpusSearcher(ctrl)
			tt.setup(svc, cs)

			srv, err := api.New(&skills.Holder{}, svc, cs)
			require.NoError(t, err)

			rec := httptest.NewRecorder()
			srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.want, rec.Code)

			var e httperr.Body
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &e))
			assert.Equal(t, http.StatusText(tt.want), e.Error, "server errors hide details")
		})
	}
}

func TestSearchBelowThreshold(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	cs := mocks.NewMockCorpusSearcher(ctrl)
	cs.EXPECT().SearchWithThreshold(gomock.Any(), "query", 0.9).
		Return(corpus.Match{ID: "0", Text: "x", Relevance: 0.2}, fmt.Errorf("%w: 0.20 < 0.90", corpus.ErrBelowThreshold))

	srv, err := api.New(&skills.Holder{}, mocks.NewMockSkillService(ctrl), cs, api.WithSearchDefaults(0.9, 5))
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/memory/search", strings.NewReader(`{"input": "query"}`)))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPanicRecovered(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockSkillService(ctrl)
	svc.EXPECT().Delete(gomock.Any(), "Writer", "x").DoAndReturn(func(context.Context, string, string) error {
		panic("boom")
	})

	srv, err := api.New(&skills.Holder{}, svc, nil)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/skills/Writer/x", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	// Without a searcher the memory routes are not mounted.
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/memory", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
