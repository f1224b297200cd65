// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAIEmbedder(t *testing.T) {
	t.Parallel()

	var gotModel string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Model string   `json:"model"`
			Input []string `json:"input"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		gotModel = body.Model
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"object":"list","data":[{"object":"embedding","index":0,"embedding":[0.25,0.5]}],"model":"m"}`))
	}))
	t.Cleanup(srv.Close)

	e, err := NewOpenAIEmbedder(OpenAIConfig{APIKey: "test", BaseURL: srv.URL + "/v1"})
	require.NoError(t, err)

	vec, err := e.Embed(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.25, 0.5}, vec)
	assert.Equal(t, DefaultOpenAIModel, gotModel)
}

func TestOpenAIEmbedder_BlankText(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		var body struct {
			Input []string `json:"input"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		if len(body.Input) == 0 || body.Input[0] == "" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":{"message":"'$.input' is invalid.","type":"invalid_request_error"}}`))
			return
		}
		_, _ = w.Write([]byte(`{"object":"list","data":[{"object":"embedding","index":0,"embedding":[1,0,0]}],"model":"m"}`))
	}))
	t.Cleanup(srv.Close)

	e, err := NewOpenAIEmbedder(OpenAIConfig{APIKey: "test", BaseURL: srv.URL + "/v1", Dimensions: 3})
	require.NoError(t, err)

	for _, text := range []string{"", "   ", "\t"} {
		vec, err := e.Embed(context.Background(), text)
		require.NoError(t, err, "text %q", text)
		assert.Equal(t, []float32{0, 0, 0}, vec)
	}
	assert.Zero(t, calls.Load(), "blank text never reaches the API")

	// A corpus with blank lines saves every line.
	tm := NewTextMemory(e, NewVolatileStore())
	for i, line := range []string{"alpha", "", "beta"} {
		require.NoError(t, tm.Save(context.Background(), "Data", fmt.Sprint(i), line))
	}
	assert.Equal(t, int32(2), calls.Load())
	rec, ok, err := tm.Get(context.Background(), "Data", "1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Empty(t, rec.Text)

	e, err = NewOpenAIEmbedder(OpenAIConfig{APIKey: "test", BaseURL: srv.URL + "/v1"})
	require.NoError(t, err)
	vec, err := e.Embed(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, vec, DefaultOpenAIDimensions)
}

func TestOpenAIEmbedder_Config(t *testing.T) {
	t.Parallel()

	_, err := NewOpenAIEmbedder(OpenAIConfig{})
	require.Error(t, err)

	_, err = NewOpenAIEmbedder(OpenAIConfig{APIKey: "k", Azure: true})
	require.Error(t, err)

	_, err = NewOpenAIEmbedder(OpenAIConfig{APIKey: "k", Azure: true, BaseURL: "https://example.openai.azure.com", Model: "embed"})
	require.NoError(t, err)
}

func TestOllamaEmbedder(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/embed", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"model":"nomic-embed-text","embeddings":[[1,0,0]]}`))
	}))
	t.Cleanup(srv.Close)

	e, err := NewOllamaEmbedder(srv.URL, "", 0)
	require.NoError(t, err)

	vec, err := e.Embed(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 0, 0}, vec)
}

func TestOllamaEmbedder_EmptyResponse(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"model":"m","embeddings":[]}`))
	}))
	t.Cleanup(srv.Close)

	e, err := NewOllamaEmbedder(srv.URL, "m", 0)
	require.NoError(t, err)

	_, err = e.Embed(context.Background(), "hello")
	require.ErrorIs(t, err, ErrEmptyEmbedding)
}

func TestVectorLiteral(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "[]", formatVector(nil))
	assert.Equal(t, "[0.5,-1,0.25]", formatVector([]float32{0.5, -1, 0.25}))
	assert.Equal(t, []float32{0.5, -1, 0.25}, parseVector("[0.5,-1,0.25]"))
	assert.Nil(t, parseVector("[]"))
	assert.Equal(t, []float32{1, 2}, parseVector("[1, x, 2]"))
}
