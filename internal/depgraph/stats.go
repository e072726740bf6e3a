package depgraph

// Stats summarizes the dependency structure of the catalog.
// Dependency counts are over raw requires entries, so unresolvable
// entries still count toward totals.
type Stats struct {
	TotalOperations   int    `json:"total_operations"`
	WithDependencies  int    `json:"operations_with_deps"`
	TotalDependencies int    `json:"total_dependencies"`
	MaxDependencies   int    `json:"max_dependencies"`
	MostDependent     string `json:"most_dependent_op,omitempty"`
}

// Stats computes summary statistics over the indexed operations.
func (g *Graph) Stats() Stats {
	stats := Stats{TotalOperations: g.Len()}
	for _, id := range g.order {
		n := len(g.ops[id].Requires)
		if n == 0 {
			continue
		}
		stats.WithDependencies++
		stats.TotalDependencies += n
		if n > stats.MaxDependencies {
			stats.MaxDependencies = n
			stats.MostDependent = id
		}
	}
	return stats
}
