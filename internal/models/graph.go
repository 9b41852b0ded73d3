// Package models defines the core data structures for the collaboration graph.
// It includes the normalized entity definitions and the wire format served to
// the browser-side renderer.
package models

// Graph is the normalized, in-memory form of a collaboration dataset.
// Nodes are unique by ID. Edges may include self-loops; those are kept here
// and excluded by the filtering pass, not at ingestion.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

type Node struct {
	ID          int64   `json:"id"`
	FirstName   string  `json:"firstname,omitempty"`
	LastName    string  `json:"lastname,omitempty"`
	Nationality string  `json:"nationality,omitempty"`
	Weight      float64 `json:"weight"`
}

type Edge struct {
	Source int64   `json:"source"`
	Target int64   `json:"target"`
	Weight float64 `json:"weight"`
}

// View is a filtered projection of a Graph at a given threshold, together
// with the derived display attributes the renderer consumes. Its slices never
// alias the source graph.
type View struct {
	Nodes   []Node            `json:"nodes"`
	Edges   []Edge            `json:"edges"`
	Weights map[int64]float64 `json:"weights"`
	Colors  map[string]string `json:"colors,omitempty"`
	Stats   *Stats            `json:"stats,omitempty"`
}

type Stats struct {
	TotalNodes    int            `json:"total_nodes"`
	TotalEdges    int            `json:"total_edges"`
	Density       float64        `json:"density"`
	WeightMean    float64        `json:"weight_mean"`
	WeightStdDev  float64        `json:"weight_stddev"`
	WeightMedian  float64        `json:"weight_median"`
	WeightP90     float64        `json:"weight_p90"`
	DegreeMean    float64        `json:"degree_mean"`
	Nationalities map[string]int `json:"nationalities,omitempty"`
}

// Empty returns a graph with no nodes and no edges, used as the "no data"
// state when the dataset is missing or unreadable.
func Empty() *Graph {
	return &Graph{
		Nodes: []Node{},
		Edges: []Edge{},
	}
}
