package graph

import "github.com/collabscope/core/internal/models"

// BuildView runs the full pipeline for one threshold: aggregate node weights
// over the base graph, prune edges below minWeight, derive the induced node
// set, and attach the display attributes (weights, colors, stats).
//
// The weight mapping covers every node of the base graph, not just the
// retained ones, matching the guarantee of ComputeNodeWeights. Retained
// nodes carry their aggregate weight inline for the renderer's size scale.
func BuildView(g *models.Graph, minWeight float64, includeSelfLoops bool) *models.View {
	weights := ComputeNodeWeights(g, includeSelfLoops)
	filtered := Filter(g, minWeight)

	nodes := make([]models.Node, len(filtered.Nodes))
	for i, node := range filtered.Nodes {
		node.Weight = weights[node.ID]
		nodes[i] = node
	}

	return &models.View{
		Nodes:   nodes,
		Edges:   filtered.Edges,
		Weights: weights,
		Colors:  AssignColors(nodes),
		Stats:   Summarize(filtered),
	}
}
