// Package parser provides utilities for parsing and normalizing collaboration
// datasets. It handles endpoint normalization, referential-integrity checks,
// and conversion into the in-memory graph form.
package parser

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/collabscope/core/internal/models"
)

// ParseDataset decodes a raw exhibition-records document and normalizes it
// into a Graph. Endpoint duck-typing (bare id vs. embedded object) is
// resolved here, once; nothing downstream branches on it again.
//
// Invalid links — unresolvable endpoints, unknown node references, negative
// weights — are dropped with a diagnostic log, never treated as fatal.
// Self-loops are kept: the filtering pass owns their exclusion.
func ParseDataset(data []byte, logger *zap.Logger) (*models.Graph, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(data) == 0 {
		return nil, fmt.Errorf("empty dataset")
	}

	var dataset models.Dataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		return nil, fmt.Errorf("failed to unmarshal dataset: %w", err)
	}

	if len(dataset.Nodes) == 0 {
		return nil, fmt.Errorf("invalid dataset: no nodes")
	}

	return buildGraph(&dataset, logger), nil
}

func buildGraph(dataset *models.Dataset, logger *zap.Logger) *models.Graph {
	graph := models.Empty()
	known := make(map[int64]bool, len(dataset.Nodes))

	for _, raw := range dataset.Nodes {
		if known[raw.ID] {
			logger.Debug("duplicate node dropped", zap.Int64("id", raw.ID))
			continue
		}

		graph.Nodes = append(graph.Nodes, models.Node{
			ID:          raw.ID,
			FirstName:   raw.FirstName,
			LastName:    raw.LastName,
			Nationality: raw.Nationality,
		})
		known[raw.ID] = true
	}

	for _, link := range dataset.AllLinks() {
		edge, reason := normalizeLink(link, known)
		if reason != "" {
			logger.Debug("link dropped",
				zap.String("reason", reason),
				zap.Int64("source", link.Source.ID),
				zap.Int64("target", link.Target.ID))
			continue
		}
		graph.Edges = append(graph.Edges, edge)
	}

	return graph
}

func normalizeLink(link models.DatasetLink, known map[int64]bool) (models.Edge, string) {
	if !link.Source.Valid || !link.Target.Valid {
		return models.Edge{}, "unresolvable endpoint"
	}
	if !known[link.Source.ID] || !known[link.Target.ID] {
		return models.Edge{}, "unknown node reference"
	}
	if link.Weight < 0 {
		return models.Edge{}, "negative weight"
	}

	return models.Edge{
		Source: link.Source.ID,
		Target: link.Target.ID,
		Weight: link.Weight,
	}, ""
}
