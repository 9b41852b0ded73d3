// Package graph implements the collaboration-graph filtering pipeline: node
// weight aggregation, threshold pruning, and the derived display attributes
// handed to the renderer. All functions are pure; the source graph is never
// mutated.
package graph

import "github.com/collabscope/core/internal/models"

// ComputeNodeWeights aggregates edge weights onto nodes. Every node id in the
// graph appears in the result, defaulting to 0 when no edges touch it.
//
// Each edge contributes its weight to the source accumulator and, only when
// source != target, to the target accumulator as well, so a self-loop is
// counted once rather than doubled. With includeSelfLoops=false self-loop
// weight is omitted from the totals entirely; both accumulation variants
// exist in the wild for this dataset.
func ComputeNodeWeights(g *models.Graph, includeSelfLoops bool) map[int64]float64 {
	weights := make(map[int64]float64, len(g.Nodes))

	for _, node := range g.Nodes {
		weights[node.ID] = 0
	}

	for _, edge := range g.Edges {
		if _, ok := weights[edge.Source]; !ok {
			continue
		}
		if _, ok := weights[edge.Target]; !ok {
			continue
		}

		if edge.Source == edge.Target {
			if includeSelfLoops {
				weights[edge.Source] += edge.Weight
			}
			continue
		}

		weights[edge.Source] += edge.Weight
		weights[edge.Target] += edge.Weight
	}

	return weights
}

// Filter returns the projection of g at the given threshold: edges are kept
// iff their weight is at least minWeight and they are not self-loops, and
// nodes are kept iff at least one retained edge touches them. The result
// satisfies referential integrity by construction, is idempotent at a fixed
// threshold, and shrinks monotonically as the threshold grows.
func Filter(g *models.Graph, minWeight float64) *models.Graph {
	filtered := models.Empty()
	referenced := make(map[int64]bool)

	for _, edge := range g.Edges {
		if edge.Weight < minWeight || edge.Source == edge.Target {
			continue
		}

		filtered.Edges = append(filtered.Edges, edge)
		referenced[edge.Source] = true
		referenced[edge.Target] = true
	}

	for _, node := range g.Nodes {
		if referenced[node.ID] {
			filtered.Nodes = append(filtered.Nodes, node)
		}
	}

	return filtered
}
