// Package handlers provides HTTP request handlers for the API endpoints.
package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/collabscope/core/internal/config"
	"github.com/collabscope/core/internal/models"
	"github.com/collabscope/core/internal/store"
)

const testDataset = `{
	"nodes": [
		{"id": 1, "lastname": "Kandinsky", "nationality": "RU"},
		{"id": 2, "lastname": "Klee", "nationality": "CH"},
		{"id": 3, "lastname": "Marc", "nationality": "DE"}
	],
	"links": [
		{"source": 1, "target": 2, "weight": 5},
		{"source": 2, "target": 3, "weight": 2},
		{"source": 1, "target": 1, "weight": 9}
	]
}`

func loadedStore(t *testing.T) *store.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "graph.json")
	require.NoError(t, os.WriteFile(path, []byte(testDataset), 0o644))
	st := store.New(path, nil)
	require.NoError(t, st.Load())
	return st
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Filter.MinWeight = 0
	cfg.Filter.DefaultWeight = 1
	return cfg
}

func TestGraphHandler(t *testing.T) {
	handler := GraphHandler(loadedStore(t), testConfig(), nil)

	t.Run("returns 200 and JSON content type", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/graph", nil)
		w := httptest.NewRecorder()

		handler(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	})

	t.Run("default threshold keeps all collaborations", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/graph", nil)
		w := httptest.NewRecorder()

		handler(w, req)

		var view models.View
		require.NoError(t, json.NewDecoder(w.Body).Decode(&view))

		assert.Len(t, view.Edges, 2, "self-loop excluded, both collaborations kept")
		assert.Len(t, view.Nodes, 3)
	})

	t.Run("min_weight prunes the view", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/graph?min_weight=3", nil)
		w := httptest.NewRecorder()

		handler(w, req)

		var view models.View
		require.NoError(t, json.NewDecoder(w.Body).Decode(&view))

		require.Len(t, view.Edges, 1)
		assert.Equal(t, int64(1), view.Edges[0].Source)
		assert.Equal(t, int64(2), view.Edges[0].Target)
		assert.Len(t, view.Nodes, 2)
	})

	t.Run("threshold above every weight yields the empty view", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/graph?min_weight=50", nil)
		w := httptest.NewRecorder()

		handler(w, req)

		var view models.View
		require.NoError(t, json.NewDecoder(w.Body).Decode(&view))

		assert.Empty(t, view.Edges)
		assert.Empty(t, view.Nodes)
		assert.Len(t, view.Weights, 3)
	})

	t.Run("non-numeric min_weight returns 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/graph?min_weight=lots", nil)
		w := httptest.NewRecorder()

		handler(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("out-of-range min_weight is clamped", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/graph?min_weight=1000000", nil)
		w := httptest.NewRecorder()

		handler(w, req)

		// Clamped to max_weight=100, which still prunes everything here.
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("empty store serves the no-data view", func(t *testing.T) {
		empty := store.New(filepath.Join(t.TempDir(), "nope.json"), nil)
		h := GraphHandler(empty, testConfig(), nil)

		req := httptest.NewRequest(http.MethodGet, "/graph", nil)
		w := httptest.NewRecorder()

		h(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var view models.View
		require.NoError(t, json.NewDecoder(w.Body).Decode(&view))
		assert.Empty(t, view.Nodes)
		assert.Empty(t, view.Edges)
	})

	t.Run("colors cover the filtered nationalities", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/graph?min_weight=3", nil)
		w := httptest.NewRecorder()

		handler(w, req)

		var view models.View
		require.NoError(t, json.NewDecoder(w.Body).Decode(&view))

		assert.Len(t, view.Colors, 2)
		assert.NotContains(t, view.Colors, "DE")
	})

	t.Run("rejects unsupported methods", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/graph", nil)
		w := httptest.NewRecorder()

		handler(w, req)

		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})
}

func TestGraphHandlerUpload(t *testing.T) {
	handler := GraphHandler(loadedStore(t), testConfig(), nil)

	t.Run("parses an uploaded dataset", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/graph?min_weight=3", strings.NewReader(testDataset))
		w := httptest.NewRecorder()

		handler(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var view models.View
		require.NoError(t, json.NewDecoder(w.Body).Decode(&view))
		assert.Len(t, view.Edges, 1)
	})

	t.Run("invalid upload returns 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/graph", strings.NewReader("{broken"))
		w := httptest.NewRecorder()

		handler(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("pretty output is indented", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/graph?pretty=true", strings.NewReader(testDataset))
		w := httptest.NewRecorder()

		handler(w, req)

		assert.Contains(t, w.Body.String(), "\n  ")
	})
}

func TestStatsHandler(t *testing.T) {
	handler := StatsHandler(loadedStore(t), testConfig())

	t.Run("summarizes the filtered view", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/graph/stats?min_weight=3", nil)
		w := httptest.NewRecorder()

		handler(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var stats models.Stats
		require.NoError(t, json.NewDecoder(w.Body).Decode(&stats))
		assert.Equal(t, 2, stats.TotalNodes)
		assert.Equal(t, 1, stats.TotalEdges)
	})

	t.Run("rejects POST", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/graph/stats", nil)
		w := httptest.NewRecorder()

		handler(w, req)

		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})
}
