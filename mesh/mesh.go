package mesh

import (
	"fmt"
	"io"

	"github.com/paulmach/orb"
	"gonum.org/v1/gonum/floats"

	"github.com/oceanmesh/omt/types"
)

// NodeTable stores node coordinates in flat arrays, node id i (1-based) lives at slot i-1
type NodeTable struct {
	X, Y, Depth []float64
}

func NewNodeTable(n int) NodeTable {
	return NodeTable{
		X:     make([]float64, n),
		Y:     make([]float64, n),
		Depth: make([]float64, n),
	}
}

func (nt NodeTable) Len() int { return len(nt.X) }

func (nt NodeTable) InRange(id int) bool { return id >= 1 && id <= len(nt.X) }

// Point returns the planar/geographic coordinate of a 1-based node id
func (nt NodeTable) Point(id int) orb.Point {
	return orb.Point{nt.X[id-1], nt.Y[id-1]}
}

// Bounds returns the bounding box of all nodes, the zero Bound for an empty table
func (nt NodeTable) Bounds() orb.Bound {
	if nt.Len() == 0 {
		return orb.Bound{}
	}
	return orb.Bound{
		Min: orb.Point{floats.Min(nt.X), floats.Min(nt.Y)},
		Max: orb.Point{floats.Max(nt.X), floats.Max(nt.Y)},
	}
}

// ElementTable stores triangles as 1-based node id triples
type ElementTable struct {
	Triangles [][3]int32
}

func (et ElementTable) Len() int { return len(et.Triangles) }

// Arc is one file-declared boundary entry, Nodes keeps the file order
type Arc struct {
	Ref    types.ArcRef
	IBType int
	Nodes  []int
}

// Edges returns consecutive id pairs of the arc, len(Nodes)-1 of them
func (a Arc) Edges() (edges [][2]int) {
	if len(a.Nodes) < 2 {
		return nil
	}
	edges = make([][2]int, len(a.Nodes)-1)
	for i := range edges {
		edges[i] = [2]int{a.Nodes[i], a.Nodes[i+1]}
	}
	return
}

// Mesh is the in-memory form of one fort.14 file
type Mesh struct {
	Title    string
	Nodes    NodeTable
	Elements ElementTable

	Open []Arc
	Land []Arc

	DeclaredOpenTotal int
	DeclaredLandTotal int
}

func (m *Mesh) NumNodes() int    { return m.Nodes.Len() }
func (m *Mesh) NumElements() int { return m.Elements.Len() }

// ArcNodeTotal sums the node counts of a list of arcs
func ArcNodeTotal(arcs []Arc) (total int) {
	for _, a := range arcs {
		total += len(a.Nodes)
	}
	return
}

// PrintStatistics prints mesh statistics
func (m *Mesh) PrintStatistics(w io.Writer) {
	fmt.Fprintf(w, "Mesh Statistics: %q\n", m.Title)
	fmt.Fprintf(w, "  Nodes: %d\n", m.NumNodes())
	fmt.Fprintf(w, "  Elements: %d\n", m.NumElements())
	fmt.Fprintf(w, "  Open boundaries: %d arcs, %d nodes\n", len(m.Open), m.DeclaredOpenTotal)
	fmt.Fprintf(w, "  Land boundaries: %d arcs, %d nodes\n", len(m.Land), m.DeclaredLandTotal)
	if m.NumNodes() > 0 {
		b := m.Nodes.Bounds()
		fmt.Fprintf(w, "  Bounding Box:\n    XMin/XMax = %g, %g\n    YMin/YMax = %g, %g\n",
			b.Min.X(), b.Max.X(), b.Min.Y(), b.Max.Y())
	}
}
