package graph

import (
	"sort"

	"github.com/collabscope/core/internal/models"
)

// palette is the fixed set of colors cycled over nationality categories.
var palette = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

// AssignColors maps each distinct nationality present in the given node set
// to a palette color. Values are sorted before assignment so the mapping is
// deterministic for a given node set; the palette cycles when exhausted.
//
// The mapping is recomputed per filtered node set, so the same nationality
// can receive a different color at a different threshold. That instability is
// the documented behavior of the view, not an accident.
func AssignColors(nodes []models.Node) map[string]string {
	seen := make(map[string]bool)
	for _, node := range nodes {
		if node.Nationality != "" {
			seen[node.Nationality] = true
		}
	}

	values := make([]string, 0, len(seen))
	for value := range seen {
		values = append(values, value)
	}
	sort.Strings(values)

	colors := make(map[string]string, len(values))
	for i, value := range values {
		colors[value] = palette[i%len(palette)]
	}

	return colors
}
