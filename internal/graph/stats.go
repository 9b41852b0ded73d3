package graph

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/collabscope/core/internal/models"
)

// Summarize computes descriptive statistics over a graph, typically a
// filtered view. Weight quantiles follow the empirical distribution of the
// edge weights; density is the undirected simple-graph density 2E/(V(V-1)).
func Summarize(g *models.Graph) *models.Stats {
	stats := &models.Stats{
		TotalNodes: len(g.Nodes),
		TotalEdges: len(g.Edges),
	}

	if len(g.Nodes) > 1 {
		v := float64(len(g.Nodes))
		stats.Density = 2 * float64(len(g.Edges)) / (v * (v - 1))
	}

	if len(g.Edges) > 0 {
		weights := make([]float64, 0, len(g.Edges))
		for _, edge := range g.Edges {
			weights = append(weights, edge.Weight)
		}
		sort.Float64s(weights)

		stats.WeightMean = stat.Mean(weights, nil)
		if len(weights) > 1 {
			// StdDev of a single sample is NaN, which JSON cannot encode.
			stats.WeightStdDev = stat.StdDev(weights, nil)
		}
		stats.WeightMedian = stat.Quantile(0.5, stat.Empirical, weights, nil)
		stats.WeightP90 = stat.Quantile(0.9, stat.Empirical, weights, nil)
	}

	if len(g.Nodes) > 0 {
		degrees := make(map[int64]float64, len(g.Nodes))
		for _, edge := range g.Edges {
			degrees[edge.Source]++
			if edge.Source != edge.Target {
				degrees[edge.Target]++
			}
		}

		perNode := make([]float64, 0, len(g.Nodes))
		for _, node := range g.Nodes {
			perNode = append(perNode, degrees[node.ID])
		}
		stats.DegreeMean = stat.Mean(perNode, nil)

		nationalities := make(map[string]int)
		for _, node := range g.Nodes {
			if node.Nationality != "" {
				nationalities[node.Nationality]++
			}
		}
		if len(nationalities) > 0 {
			stats.Nationalities = nationalities
		}
	}

	return stats
}
