package boundary

import (
	"fmt"
	"io"
	"sort"

	"github.com/paulmach/orb"
	"gonum.org/v1/gonum/stat"

	"github.com/oceanmesh/omt/mesh"
	"github.com/oceanmesh/omt/types"
)

type EdgeLengthStats struct {
	Count int     `json:"count"`
	Mean  float64 `json:"mean"`
	P50   float64 `json:"p50"`
	P99   float64 `json:"p99"`
	Max   float64 `json:"max"`
}

func edgeLengthStats(metric Metric, groups ...[]Polyline) (s EdgeLengthStats) {
	var lengths []float64
	for _, polys := range groups {
		for _, p := range polys {
			for i := 1; i < len(p.Points); i++ {
				lengths = append(lengths, metric.Distance(p.Points[i-1], p.Points[i]))
			}
		}
	}
	if len(lengths) == 0 {
		return
	}
	sort.Float64s(lengths)
	s.Count = len(lengths)
	s.Mean = stat.Mean(lengths, nil)
	s.P50 = stat.Quantile(0.5, stat.Empirical, lengths, nil)
	s.P99 = stat.Quantile(0.99, stat.Empirical, lengths, nil)
	s.Max = lengths[len(lengths)-1]
	return
}

// Summary holds the counts reported for one processed mesh
type Summary struct {
	Title    string `json:"title"`
	Metric   string `json:"metric"`
	Nodes    int    `json:"nodes"`
	Elements int    `json:"elements"`

	OpenArcs  int `json:"open_arcs"`
	LandArcs  int `json:"land_arcs"`
	OpenNodes int `json:"open_nodes"`
	LandNodes int `json:"land_nodes"`

	OpenPolylines      int `json:"open_polylines"`
	CoastlinePolylines int `json:"coastline_polylines"`
	OtherPolylines     int `json:"other_polylines"`
	Splits             int `json:"splits"`
	Dropped            int `json:"dropped_fragments"`
	CoastRemoved       int `json:"coast_removed_near_open"`
	UnknownIBTypes     int `json:"unknown_ibtype_arcs"`

	Anomalies         int `json:"anomalies"`
	AnomaliesReported int `json:"anomalies_reported"`

	EdgeLength EdgeLengthStats `json:"edge_length"`
	Bounds     orb.Bound       `json:"bounds"`

	BoundaryLoops        int `json:"boundary_loops"`
	Holes                int `json:"holes"`
	OpenEdgesOffBoundary int `json:"open_edges_off_boundary"`
}

func (s *Summary) Polylines() int {
	return s.OpenPolylines + s.CoastlinePolylines + s.OtherPolylines
}

func newSummary(m *mesh.Mesh, metric Metric) *Summary {
	s := &Summary{
		Title:     m.Title,
		Metric:    metric.Name(),
		Nodes:     m.NumNodes(),
		Elements:  m.NumElements(),
		OpenArcs:  len(m.Open),
		LandArcs:  len(m.Land),
		OpenNodes: m.DeclaredOpenTotal,
		LandNodes: m.DeclaredLandTotal,
		Bounds:    m.Nodes.Bounds(),
	}
	for _, a := range m.Land {
		if !types.KnownIBType(a.IBType) {
			s.UnknownIBTypes++
		}
	}
	edges := mesh.BoundaryEdges(m.Nodes, m.Elements)
	loops := mesh.LoopsFromEdges(m.Nodes, edges)
	s.BoundaryLoops, s.Holes = loops.Count(), len(loops.Holes)
	s.OpenEdgesOffBoundary = mesh.AuditArcs(m.Open, mesh.EdgeSet(edges))
	return s
}

func (s *Summary) Print(w io.Writer) {
	fmt.Fprintf(w, "Mesh: %q\n", s.Title)
	fmt.Fprintf(w, "  Nodes: %d, Elements: %d\n", s.Nodes, s.Elements)
	fmt.Fprintf(w, "  Bounding Box:\n    XMin/XMax = %g, %g\n    YMin/YMax = %g, %g\n",
		s.Bounds.Min.X(), s.Bounds.Max.X(), s.Bounds.Min.Y(), s.Bounds.Max.Y())
	fmt.Fprintf(w, "  Open boundaries: %d arcs, %d nodes\n", s.OpenArcs, s.OpenNodes)
	fmt.Fprintf(w, "  Land boundaries: %d arcs, %d nodes", s.LandArcs, s.LandNodes)
	if s.UnknownIBTypes > 0 {
		fmt.Fprintf(w, " (%d with unknown IBTYPE)", s.UnknownIBTypes)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Polylines: %d open, %d coastline, %d other\n",
		s.OpenPolylines, s.CoastlinePolylines, s.OtherPolylines)
	fmt.Fprintf(w, "  Gap splits: %d, dropped fragments: %d", s.Splits, s.Dropped)
	if s.CoastRemoved > 0 {
		fmt.Fprintf(w, ", coastline removed near open boundary: %d", s.CoastRemoved)
	}
	fmt.Fprintln(w)
	if s.EdgeLength.Count > 0 {
		fmt.Fprintf(w, "  Edge length (%s): mean %.4g, p50 %.4g, p99 %.4g, max %.4g over %d edges\n",
			s.Metric, s.EdgeLength.Mean, s.EdgeLength.P50, s.EdgeLength.P99, s.EdgeLength.Max, s.EdgeLength.Count)
	}
	fmt.Fprintf(w, "  Element boundary loops: %d (%d holes), open boundary edges off the mesh boundary: %d\n",
		s.BoundaryLoops, s.Holes, s.OpenEdgesOffBoundary)
	if s.Anomalies > 0 {
		fmt.Fprintf(w, "  WARNING: %d suspicious boundary edges (%d reported)\n", s.Anomalies, s.AnomaliesReported)
	} else {
		fmt.Fprintf(w, "  Anomalies: none\n")
	}
}
