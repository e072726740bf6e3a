// Package depgraph analyzes the requires-relation of a loaded operation
// catalog as a directed graph.
//
// The package answers two correctness questions: do all requires entries
// resolve to real operations (missing references), and is the relation
// free of cycles (which would make any execution plan impossible). It
// does not order a valid graph into a run plan.
package depgraph

import "github.com/roach88/capcheck/internal/catalog"

// Collision records a duplicate operation id across files. The later
// file wins for graph construction; the earlier one is shadowed.
type Collision struct {
	ID           string `json:"id"`
	File         string `json:"file"`          // winning definition
	ShadowedFile string `json:"shadowed_file"` // definition it replaced
}

// Graph indexes operations by id and preserves load order so that all
// findings are deterministic across runs.
type Graph struct {
	ops        map[string]*catalog.Operation
	order      []string
	collisions []Collision
}

// Build indexes the given operations by id. Ids collide last-write-wins:
// the later record replaces the earlier one but keeps its position in
// iteration order, and the collision is recorded for diagnostics.
// Records with an empty id must be filtered out by the caller.
func Build(ops []*catalog.Operation) *Graph {
	g := &Graph{ops: make(map[string]*catalog.Operation, len(ops))}
	for _, op := range ops {
		if prev, ok := g.ops[op.ID]; ok {
			g.collisions = append(g.collisions, Collision{
				ID:           op.ID,
				File:         op.File,
				ShadowedFile: prev.File,
			})
		} else {
			g.order = append(g.order, op.ID)
		}
		g.ops[op.ID] = op
	}
	return g
}

// Exists reports whether an operation with the given id is indexed.
func (g *Graph) Exists(id string) bool {
	_, ok := g.ops[id]
	return ok
}

// Operation returns the indexed operation for an id.
func (g *Graph) Operation(id string) (*catalog.Operation, bool) {
	op, ok := g.ops[id]
	return op, ok
}

// Requires returns the requires entries of the operation with the given
// id, or nil if the id is not indexed.
func (g *Graph) Requires(id string) []catalog.Require {
	op, ok := g.ops[id]
	if !ok {
		return nil
	}
	return op.Requires
}

// IDs returns all indexed ids in load order.
func (g *Graph) IDs() []string {
	return g.order
}

// Len returns the number of indexed operations.
func (g *Graph) Len() int {
	return len(g.ops)
}

// Collisions returns the duplicate-id records observed during Build,
// in load order.
func (g *Graph) Collisions() []Collision {
	return g.collisions
}
