package mesh

import (
	"math"
	"sort"

	"github.com/james-bowman/sparse"

	"github.com/oceanmesh/omt/types"
)

// Loops holds the closed boundary rings derived from the element table
type Loops struct {
	Outer []int   // node ids, first id repeated at the end
	Holes [][]int // same layout as Outer
}

func (l Loops) Count() int {
	if l.Outer == nil {
		return 0
	}
	return 1 + len(l.Holes)
}

/*
BoundaryEdges returns the edges used by exactly one triangle, in ascending (row, column) order.
Edge multiplicity is accumulated in a node x node sparse matrix keyed on the lower id.
*/
func BoundaryEdges(nodes NodeTable, elems ElementTable) (edges []types.EdgeKey) {
	var (
		Nv = nodes.Len()
	)
	if Nv == 0 || elems.Len() == 0 {
		return nil
	}
	EdgeCount := sparse.NewDOK(Nv, Nv)
	for _, tri := range elems.Triangles {
		for i := 0; i < 3; i++ {
			a, b := int(tri[i]), int(tri[(i+1)%3])
			if a > b {
				a, b = b, a
			}
			EdgeCount.Set(a-1, b-1, EdgeCount.At(a-1, b-1)+1)
		}
	}
	EdgeCount.ToCSR().DoNonZero(func(i, j int, v float64) {
		if v == 1 {
			edges = append(edges, types.MustEdgeKey(i+1, j+1))
		}
	})
	return
}

// EdgeSet indexes edge keys for membership tests
func EdgeSet(edges []types.EdgeKey) map[types.EdgeKey]struct{} {
	set := make(map[types.EdgeKey]struct{}, len(edges))
	for _, e := range edges {
		set[e] = struct{}{}
	}
	return set
}

/*
WalkLoops chains boundary edges into closed rings. Walks always continue through the smallest
neighbouring id whose edge is unused, so the result is deterministic. Open chains are discarded.
*/
func WalkLoops(edges []types.EdgeKey) (loops [][]int) {
	nbrs := make(map[int][]int)
	for _, e := range edges {
		v := e.GetVertices(false)
		nbrs[v[0]] = append(nbrs[v[0]], v[1])
		nbrs[v[1]] = append(nbrs[v[1]], v[0])
	}
	starts := make([]int, 0, len(nbrs))
	for v, nb := range nbrs {
		sort.Ints(nb)
		starts = append(starts, v)
	}
	sort.Ints(starts)

	used := make(map[types.EdgeKey]bool, len(edges))
	nextUnused := func(cur int) (int, bool) {
		for _, v := range nbrs[cur] {
			if !used[types.MustEdgeKey(cur, v)] {
				return v, true
			}
		}
		return 0, false
	}
	for _, start := range starts {
		for {
			nxt, ok := nextUnused(start)
			if !ok {
				break
			}
			loop := []int{start}
			cur := start
			for ok {
				used[types.MustEdgeKey(cur, nxt)] = true
				cur = nxt
				loop = append(loop, cur)
				if cur == start {
					break
				}
				nxt, ok = nextUnused(cur)
			}
			if cur == start && len(loop) >= 4 {
				loops = append(loops, loop)
			}
		}
	}
	return
}

// RingArea is the signed shoelace area of a closed ring of node ids
func RingArea(nodes NodeTable, ring []int) (area float64) {
	for i := 0; i+1 < len(ring); i++ {
		p, q := nodes.Point(ring[i]), nodes.Point(ring[i+1])
		area += p.X()*q.Y() - q.X()*p.Y()
	}
	return 0.5 * area
}

// OuterLoops derives the mesh outline: the largest ring by |area| is the outer ring
func OuterLoops(nodes NodeTable, elems ElementTable) Loops {
	return LoopsFromEdges(nodes, BoundaryEdges(nodes, elems))
}

func LoopsFromEdges(nodes NodeTable, edges []types.EdgeKey) (l Loops) {
	rings := WalkLoops(edges)
	if len(rings) == 0 {
		return
	}
	var (
		maxIdx  int
		maxArea = -1.
	)
	for i, r := range rings {
		if a := math.Abs(RingArea(nodes, r)); a > maxArea {
			maxIdx, maxArea = i, a
		}
	}
	l.Outer = rings[maxIdx]
	for i, r := range rings {
		if i != maxIdx {
			l.Holes = append(l.Holes, r)
		}
	}
	return
}

// AuditArcs counts arc edges that do not lie on the element-derived mesh boundary
func AuditArcs(arcs []Arc, boundary map[types.EdgeKey]struct{}) (offBoundary int) {
	for _, a := range arcs {
		for _, e := range a.Edges() {
			if e[0] == e[1] {
				continue
			}
			if _, ok := boundary[types.MustEdgeKey(e[0], e[1])]; !ok {
				offBoundary++
			}
		}
	}
	return
}
