// Package handlers provides HTTP request handlers for the API endpoints.
// It defines the routing logic, response formatting, and error handling
// mechanisms.
package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/collabscope/core/internal/config"
	"github.com/collabscope/core/internal/graph"
	"github.com/collabscope/core/internal/metrics"
	"github.com/collabscope/core/internal/parser"
	"github.com/collabscope/core/internal/store"
)

// GraphHandler serves the collaboration graph.
//
// GET returns the filtered view of the resident dataset for the requested
// min_weight (defaulting to the configured threshold, clamped to the
// configured bounds). An empty store yields an empty view with 200, the
// renderer's "no data" state.
//
// POST parses a dataset document uploaded in the request body and returns
// its filtered view without touching the resident store, so alternative
// exports can be previewed against the same pipeline.
func GraphHandler(st *store.Store, cfg *config.Config, logger *zap.Logger) http.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			view(w, r, st, cfg, logger)
		case http.MethodPost:
			parseUpload(w, r, cfg, logger)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

// StatsHandler returns summary statistics for the filtered view at the
// requested threshold.
func StatsHandler(st *store.Store, cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		minWeight, ok := thresholdParam(w, r, cfg)
		if !ok {
			return
		}

		filtered := graph.Filter(st.Graph(), minWeight)
		metrics.FilterOperations.Inc()

		writeJSON(w, r, graph.Summarize(filtered))
	}
}

func view(w http.ResponseWriter, r *http.Request, st *store.Store, cfg *config.Config, logger *zap.Logger) {
	minWeight, ok := thresholdParam(w, r, cfg)
	if !ok {
		return
	}

	result := graph.BuildView(st.Graph(), minWeight, cfg.Weights.IncludeSelfLoops)
	metrics.FilterOperations.Inc()

	logger.Debug("view computed",
		zap.Float64("min_weight", minWeight),
		zap.Int("nodes", len(result.Nodes)),
		zap.Int("edges", len(result.Edges)))

	writeJSON(w, r, result)
}

func parseUpload(w http.ResponseWriter, r *http.Request, cfg *config.Config, logger *zap.Logger) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	g, err := parser.ParseDataset(body, logger)
	if err != nil {
		http.Error(w, "Invalid dataset: "+err.Error(), http.StatusBadRequest)
		return
	}

	minWeight, ok := thresholdParam(w, r, cfg)
	if !ok {
		return
	}

	result := graph.BuildView(g, minWeight, cfg.Weights.IncludeSelfLoops)
	metrics.FilterOperations.Inc()

	writeJSON(w, r, result)
}

// thresholdParam extracts min_weight from the query, falling back to the
// configured default and clamping to the configured bounds. A false return
// means the response has already been written.
func thresholdParam(w http.ResponseWriter, r *http.Request, cfg *config.Config) (float64, bool) {
	raw := r.URL.Query().Get("min_weight")
	if raw == "" {
		return cfg.Filter.DefaultWeight, true
	}

	minWeight, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		http.Error(w, "Invalid min_weight: "+raw, http.StatusBadRequest)
		return 0, false
	}

	return cfg.Clamp(minWeight), true
}

func writeJSON(w http.ResponseWriter, r *http.Request, payload any) {
	w.Header().Set("Content-Type", "application/json")

	encoder := json.NewEncoder(w)
	if r.URL.Query().Get("pretty") == "true" {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(payload); err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
