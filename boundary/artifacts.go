package boundary

import (
	"context"

	"github.com/oceanmesh/omt/mesh"
	"github.com/oceanmesh/omt/types"
)

// SegmentSpan locates one polyline inside its arc, End is exclusive
type SegmentSpan struct {
	Arc      types.ArcRef
	Fragment int
	Start    int
	End      int
}

/*
DebugArtifacts is the raw material handed to an artifact writer. Edge rows hold 1-based node
ids of consecutive arc nodes before gap splitting, one row per pair, so an arc of n nodes
contributes n-1 rows. Anomalies is the complete, uncapped list.
*/
type DebugArtifacts struct {
	NodeXY    [][2]float64
	OpenEdges [][2]int
	LandEdges [][2]int
	Segments  []SegmentSpan
	Anomalies []Anomaly
}

// ArtifactSink persists debug artifacts, the engine calls it before failing fast
type ArtifactSink interface {
	WriteDebug(ctx context.Context, da *DebugArtifacts) error
}

func rawEdges(arcs []mesh.Arc) (edges [][2]int) {
	edges = make([][2]int, 0, mesh.ArcNodeTotal(arcs))
	for _, a := range arcs {
		edges = append(edges, a.Edges()...)
	}
	return
}

func NewDebugArtifacts(m *mesh.Mesh, report Report, groups ...[]Polyline) *DebugArtifacts {
	da := &DebugArtifacts{
		NodeXY:    make([][2]float64, m.NumNodes()),
		OpenEdges: rawEdges(m.Open),
		LandEdges: rawEdges(m.Land),
		Anomalies: report.All,
	}
	for i := range da.NodeXY {
		da.NodeXY[i] = [2]float64{m.Nodes.X[i], m.Nodes.Y[i]}
	}
	for _, polys := range groups {
		for _, p := range polys {
			da.Segments = append(da.Segments, SegmentSpan{
				Arc:      p.Arc,
				Fragment: p.Fragment,
				Start:    p.Start,
				End:      p.Start + len(p.NodeIDs),
			})
		}
	}
	return da
}
