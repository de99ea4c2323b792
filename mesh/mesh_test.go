package mesh

import (
	"bytes"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oceanmesh/omt/types"
)

// unitSquare is two triangles on the unit square, nodes 1..4 counter clockwise
func unitSquare() (NodeTable, ElementTable) {
	nodes := NodeTable{
		X:     []float64{0, 1, 1, 0},
		Y:     []float64{0, 0, 1, 1},
		Depth: []float64{-1, -1, -1, -1},
	}
	elems := ElementTable{Triangles: [][3]int32{{1, 2, 3}, {1, 3, 4}}}
	return nodes, elems
}

// squareWithHole is a 4x4 block of nodes with the middle cell left unmeshed
func squareWithHole() (NodeTable, ElementTable) {
	nodes := NewNodeTable(16)
	for j := 0; j < 4; j++ {
		for i := 0; i < 4; i++ {
			nodes.X[j*4+i] = float64(i)
			nodes.Y[j*4+i] = float64(j)
		}
	}
	id := func(i, j int) int32 { return int32(j*4 + i + 1) }
	var elems ElementTable
	for j := 0; j < 3; j++ {
		for i := 0; i < 3; i++ {
			if i == 1 && j == 1 {
				continue
			}
			elems.Triangles = append(elems.Triangles,
				[3]int32{id(i, j), id(i+1, j), id(i+1, j+1)},
				[3]int32{id(i, j), id(i+1, j+1), id(i, j+1)})
		}
	}
	return nodes, elems
}

func TestNodeTable(t *testing.T) {
	nodes, _ := unitSquare()
	assert.Equal(t, 4, nodes.Len())
	assert.True(t, nodes.InRange(1))
	assert.True(t, nodes.InRange(4))
	assert.False(t, nodes.InRange(0))
	assert.False(t, nodes.InRange(5))
	assert.Equal(t, orb.Point{1, 1}, nodes.Point(3))
	assert.Equal(t, orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{1, 1}}, nodes.Bounds())
	assert.Equal(t, orb.Bound{}, NodeTable{}.Bounds())
}

func TestArcEdges(t *testing.T) {
	a := Arc{Nodes: []int{4, 2, 9}}
	assert.Equal(t, [][2]int{{4, 2}, {2, 9}}, a.Edges())
	assert.Nil(t, Arc{Nodes: []int{1}}.Edges())
	assert.Equal(t, 4, ArcNodeTotal([]Arc{a, {Nodes: []int{1}}}))
}

func TestBoundaryEdges(t *testing.T) {
	nodes, elems := unitSquare()
	edges := BoundaryEdges(nodes, elems)
	// The diagonal 1-3 is shared and must not appear
	require.Len(t, edges, 4)
	var got [][2]int
	for _, e := range edges {
		got = append(got, e.GetVertices(false))
	}
	assert.Equal(t, [][2]int{{1, 2}, {1, 4}, {2, 3}, {3, 4}}, got)
	assert.Nil(t, BoundaryEdges(NodeTable{}, ElementTable{}))
}

func TestOuterLoops(t *testing.T) {
	t.Run("Square", func(t *testing.T) {
		nodes, elems := unitSquare()
		l := OuterLoops(nodes, elems)
		assert.Equal(t, []int{1, 2, 3, 4, 1}, l.Outer)
		assert.Empty(t, l.Holes)
		assert.Equal(t, 1, l.Count())
		assert.InDelta(t, 1.0, RingArea(nodes, l.Outer), 1e-12)
	})
	t.Run("Hole", func(t *testing.T) {
		nodes, elems := squareWithHole()
		l := OuterLoops(nodes, elems)
		require.NotNil(t, l.Outer)
		require.Len(t, l.Holes, 1)
		assert.Equal(t, 2, l.Count())
		assert.InDelta(t, 9.0, abs(RingArea(nodes, l.Outer)), 1e-12)
		assert.InDelta(t, 1.0, abs(RingArea(nodes, l.Holes[0])), 1e-12)
		assert.Len(t, l.Holes[0], 5)
	})
	t.Run("Empty", func(t *testing.T) {
		l := OuterLoops(NodeTable{}, ElementTable{})
		assert.Equal(t, 0, l.Count())
	})
}

func TestAuditArcs(t *testing.T) {
	nodes, elems := unitSquare()
	set := EdgeSet(BoundaryEdges(nodes, elems))
	onHull := Arc{Ref: types.ArcRef{Family: types.OpenBoundary, Number: 1}, Nodes: []int{1, 2, 3}}
	chord := Arc{Ref: types.ArcRef{Family: types.OpenBoundary, Number: 2}, Nodes: []int{4, 1, 3}}
	assert.Equal(t, 0, AuditArcs([]Arc{onHull}, set))
	// 4-1 is on the hull, 1-3 is the interior diagonal
	assert.Equal(t, 1, AuditArcs([]Arc{onHull, chord}, set))
}

func TestPrintStatistics(t *testing.T) {
	nodes, elems := unitSquare()
	m := &Mesh{Title: "square", Nodes: nodes, Elements: elems}
	var buf bytes.Buffer
	m.PrintStatistics(&buf)
	assert.Contains(t, buf.String(), "Nodes: 4")
	assert.Contains(t, buf.String(), "Elements: 2")
	assert.Contains(t, buf.String(), "XMin/XMax = 0, 1")
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
