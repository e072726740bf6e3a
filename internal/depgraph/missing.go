package depgraph

// MissingDependency records one requires entry that does not resolve to
// a known operation id.
type MissingDependency struct {
	Operation string `json:"operation"` // declaring operation id
	Missing   string `json:"missing"`   // the unresolvable dependency id
	File      string `json:"file"`      // file declaring the operation
}

// MissingDependencies scans every operation's requires entries and
// returns each resolved id that is not indexed in the graph.
// Unresolvable entries contribute nothing. Findings follow load order,
// then requires order within an operation.
func (g *Graph) MissingDependencies() []MissingDependency {
	var missing []MissingDependency
	for _, id := range g.order {
		op := g.ops[id]
		for _, req := range op.Requires {
			if !req.Resolved() {
				continue
			}
			if !g.Exists(req.Operation) {
				missing = append(missing, MissingDependency{
					Operation: id,
					Missing:   req.Operation,
					File:      op.File,
				})
			}
		}
	}
	return missing
}
