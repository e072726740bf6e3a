package depgraph

import "strings"

// Cycle represents one distinct cycle through the requires-relation.
// The path closes on its first node: a self-loop is [a, a], a two-node
// cycle is [a, b, a].
type Cycle struct {
	Path []string `json:"path"`
}

// String renders the cycle as "a -> b -> a".
func (c Cycle) String() string {
	return strings.Join(c.Path, " -> ")
}

// Equal reports exact sequence equality with another cycle.
func (c Cycle) Equal(other Cycle) bool {
	if len(c.Path) != len(other.Path) {
		return false
	}
	for i := range c.Path {
		if c.Path[i] != other.Path[i] {
			return false
		}
	}
	return true
}

// Cycles finds every distinct cycle reachable via requires-edges using
// depth-first search with an explicit recursion stack.
//
// A traversal-wide visited set guarantees each node is entered at most
// once across all search roots, bounding work by O(nodes + edges). The
// recursion stack records the path from the current root; hitting a node
// already on the stack closes a cycle at that node's stack position.
// Edges to unknown ids contribute nothing here: the reference checker
// reports those separately.
func (g *Graph) Cycles() []Cycle {
	t := &traversal{
		graph:   g,
		visited: make(map[string]bool, g.Len()),
	}
	for _, id := range g.order {
		if !t.visited[id] {
			t.search(id, make(map[string]bool), nil)
		}
	}
	return t.cycles
}

// traversal is the shared state of one cycle search. It lives for a
// single Cycles call; the visited set is never process-wide.
type traversal struct {
	graph   *Graph
	visited map[string]bool
	cycles  []Cycle
}

func (t *traversal) search(node string, seen map[string]bool, stack []string) {
	seen[node] = true
	t.visited[node] = true
	stack = append(stack, node)

	for _, req := range t.graph.Requires(node) {
		dep := req.Operation
		if dep == "" || !t.graph.Exists(dep) {
			continue
		}
		if !seen[dep] {
			t.search(dep, seen, stack)
			continue
		}
		if at := index(stack, dep); at >= 0 {
			path := make([]string, 0, len(stack)-at+1)
			path = append(path, stack[at:]...)
			path = append(path, dep)
			t.record(Cycle{Path: path})
		}
	}
}

// record appends a cycle unless an identical sequence was already found.
func (t *traversal) record(c Cycle) {
	for _, existing := range t.cycles {
		if existing.Equal(c) {
			return
		}
	}
	t.cycles = append(t.cycles, c)
}

func index(stack []string, node string) int {
	for i, s := range stack {
		if s == node {
			return i
		}
	}
	return -1
}
