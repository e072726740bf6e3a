package depgraph

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/capcheck/internal/catalog"
)

func TestCycles_DirectCycle(t *testing.T) {
	g := Build([]*catalog.Operation{
		op("a", "a.yaml", "b"),
		op("b", "b.yaml", "a"),
	})

	cycles := g.Cycles()
	require.Len(t, cycles, 1)
	assert.Equal(t, []string{"a", "b", "a"}, cycles[0].Path)
	assert.Equal(t, "a -> b -> a", cycles[0].String())
}

func TestCycles_SelfLoop(t *testing.T) {
	g := Build([]*catalog.Operation{
		op("a", "a.yaml", "a"),
	})

	cycles := g.Cycles()
	require.Len(t, cycles, 1)
	assert.Equal(t, []string{"a", "a"}, cycles[0].Path)
}

func TestCycles_LongerCycle(t *testing.T) {
	g := Build([]*catalog.Operation{
		op("a", "a.yaml", "b"),
		op("b", "b.yaml", "c"),
		op("c", "c.yaml", "d"),
		op("d", "d.yaml", "a"),
	})

	cycles := g.Cycles()
	require.Len(t, cycles, 1)
	assert.Equal(t, []string{"a", "b", "c", "d", "a"}, cycles[0].Path)
}

func TestCycles_TwoDistinctCycles(t *testing.T) {
	g := Build([]*catalog.Operation{
		op("a", "a.yaml", "b", "c"),
		op("b", "b.yaml", "a"),
		op("c", "c.yaml", "a"),
	})

	cycles := g.Cycles()
	require.Len(t, cycles, 2)
	assert.Equal(t, []string{"a", "b", "a"}, cycles[0].Path)
	assert.Equal(t, []string{"a", "c", "a"}, cycles[1].Path)
}

// A cycle reachable from several roots is reported once.
func TestCycles_Deduplicated(t *testing.T) {
	g := Build([]*catalog.Operation{
		op("a", "a.yaml", "b"),
		op("b", "b.yaml", "a"),
		op("x", "x.yaml", "a"),
		op("y", "y.yaml", "a"),
	})

	cycles := g.Cycles()
	require.Len(t, cycles, 1)
	assert.Equal(t, []string{"a", "b", "a"}, cycles[0].Path)
}

// A layered DAG with heavy sharing (every node depends on all three
// nodes of the next layer, six layers deep) must report no cycles.
func TestCycles_NoFalsePositivesOnDAG(t *testing.T) {
	const layers, width = 6, 3

	var ops []*catalog.Operation
	for layer := 0; layer < layers; layer++ {
		for i := 0; i < width; i++ {
			id := fmt.Sprintf("l%d-n%d", layer, i)
			var requires []string
			if layer < layers-1 {
				for j := 0; j < width; j++ {
					requires = append(requires, fmt.Sprintf("l%d-n%d", layer+1, j))
				}
			}
			ops = append(ops, op(id, id+".yaml", requires...))
		}
	}

	g := Build(ops)
	assert.Empty(t, g.Cycles())
}

// Edges to ids that are not graph nodes never contribute to cycles;
// the reference checker owns those findings.
func TestCycles_MissingNodesSkipped(t *testing.T) {
	g := Build([]*catalog.Operation{
		op("a", "a.yaml", "ghost", "b"),
		op("b", "b.yaml", "ghost"),
	})

	assert.Empty(t, g.Cycles())
	assert.Len(t, g.MissingDependencies(), 2)
}

func TestCycles_UnresolvableEntriesSkipped(t *testing.T) {
	o := &catalog.Operation{ID: "a", File: "a.yaml", Requires: []catalog.Require{
		catalog.ParseRequire(map[string]any{"condition": "always"}),
		catalog.ParseRequire("a"),
	}}
	g := Build([]*catalog.Operation{o})

	cycles := g.Cycles()
	require.Len(t, cycles, 1, "only the resolvable self edge counts")
	assert.Equal(t, []string{"a", "a"}, cycles[0].Path)
}

func TestCycles_Deterministic(t *testing.T) {
	ops := []*catalog.Operation{
		op("a", "a.yaml", "b"),
		op("b", "b.yaml", "c"),
		op("c", "c.yaml", "a", "b"),
	}

	first := Build(ops).Cycles()
	second := Build(ops).Cycles()
	assert.Equal(t, first, second)
}
