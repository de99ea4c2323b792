package boundary

import (
	"github.com/paulmach/orb"
	"go.uber.org/zap"

	"github.com/oceanmesh/omt/mesh"
	"github.com/oceanmesh/omt/types"
)

/*
Polyline is one geometrically contiguous run of an arc. Fragment is its 0-based position among
the arc's surviving fragments and Start the offset of its first node within the arc.
*/
type Polyline struct {
	Arc      types.ArcRef
	Fragment int
	Start    int
	IBType   int
	Category types.Category
	NodeIDs  []int
	Points   orb.LineString
}

func (p Polyline) NumEdges() int {
	if len(p.NodeIDs) < 2 {
		return 0
	}
	return len(p.NodeIDs) - 1
}

type BuildStats struct {
	Splits  int // gaps that ended a polyline
	Dropped int // fragments with fewer than 2 points
}

func (bs *BuildStats) add(o BuildStats) {
	bs.Splits += o.Splits
	bs.Dropped += o.Dropped
}

/*
Builder turns raw arcs into polylines. A distance strictly greater than GapThreshold between
consecutive nodes ends the current polyline, GapThreshold <= 0 keeps every arc whole.
Node ids must already be validated against the node table.
*/
type Builder struct {
	GapThreshold float64
	Metric       Metric
	Logger       *zap.Logger
}

func (b Builder) logger() *zap.Logger {
	if b.Logger == nil {
		return zap.NewNop()
	}
	return b.Logger
}

// Build splits one arc, fragments come back in arc order
func (b Builder) Build(arc mesh.Arc, nodes mesh.NodeTable, cat types.Category) (polys []Polyline, stats BuildStats) {
	var (
		metric = metricOrDefault(b.Metric)
		ids    = arc.Nodes
		start  int
	)
	flush := func(end int) {
		if end-start < 2 {
			stats.Dropped++
			b.logger().Debug("dropping degenerate boundary fragment",
				zap.Stringer("arc", arc.Ref), zap.Int("start", start), zap.Int("points", end-start))
			return
		}
		pl := Polyline{
			Arc:      arc.Ref,
			Fragment: len(polys),
			Start:    start,
			IBType:   arc.IBType,
			Category: cat,
			NodeIDs:  append([]int(nil), ids[start:end]...),
			Points:   make(orb.LineString, end-start),
		}
		for i, id := range pl.NodeIDs {
			pl.Points[i] = nodes.Point(id)
		}
		polys = append(polys, pl)
	}
	if b.GapThreshold > 0 {
		for i := 1; i < len(ids); i++ {
			if metric.Distance(nodes.Point(ids[i-1]), nodes.Point(ids[i])) > b.GapThreshold {
				stats.Splits++
				flush(i)
				start = i
			}
		}
	}
	flush(len(ids))
	return
}

// BuildAll builds every arc in order, land arcs are tagged when a classifier is given
func (b Builder) BuildAll(arcs []mesh.Arc, nodes mesh.NodeTable, cl *Classifier) (polys []Polyline, stats BuildStats) {
	for _, arc := range arcs {
		cat := types.Unclassified
		if cl != nil && arc.Ref.Family == types.LandBoundary {
			cat = cl.Classify(arc.IBType)
		}
		p, s := b.Build(arc, nodes, cat)
		polys = append(polys, p...)
		stats.add(s)
	}
	return
}

// SplitByCategory routes land polylines into coastline and other groups keeping order
func SplitByCategory(polys []Polyline) (coast, other []Polyline) {
	for _, p := range polys {
		if p.Category == types.Coastline {
			coast = append(coast, p)
		} else {
			other = append(other, p)
		}
	}
	return
}
