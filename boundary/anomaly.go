package boundary

import (
	"sort"

	"github.com/paulmach/orb"

	"github.com/oceanmesh/omt/types"
)

const DefaultAnomalyCap = 200

// Anomaly is one polyline edge longer than the detector threshold
type Anomaly struct {
	Arc      types.ArcRef
	Fragment int
	Category types.Category
	From, To int
	A, B     orb.Point
	Length   float64
}

/*
Report ranks anomalies by descending length. Top holds at most the detector cap, All the
complete list in the same order, Total == len(All) and Checked the number of edges examined.
*/
type Report struct {
	Top     []Anomaly
	All     []Anomaly
	Total   int
	Checked int
}

func (r Report) Capped() bool { return r.Total > len(r.Top) }

/*
Detector screens the edges inside built polylines. Gaps removed by the Builder are never
edges, so they cannot be flagged. Threshold <= 0 disables detection and Cap <= 0 selects
DefaultAnomalyCap.
*/
type Detector struct {
	Threshold float64
	Cap       int
	Metric    Metric
}

func (d Detector) limit() int {
	if d.Cap <= 0 {
		return DefaultAnomalyCap
	}
	return d.Cap
}

func (d Detector) Detect(groups ...[]Polyline) (r Report) {
	if d.Threshold <= 0 {
		return
	}
	metric := metricOrDefault(d.Metric)
	for _, polys := range groups {
		for _, p := range polys {
			for i := 1; i < len(p.Points); i++ {
				r.Checked++
				a, b := p.Points[i-1], p.Points[i]
				if l := metric.Distance(a, b); l > d.Threshold {
					r.All = append(r.All, Anomaly{
						Arc:      p.Arc,
						Fragment: p.Fragment,
						Category: p.Category,
						From:     p.NodeIDs[i-1],
						To:       p.NodeIDs[i],
						A:        a,
						B:        b,
						Length:   l,
					})
				}
			}
		}
	}
	// stable so equal lengths keep build order
	sort.SliceStable(r.All, func(i, j int) bool { return r.All[i].Length > r.All[j].Length })
	r.Total = len(r.All)
	r.Top = r.All
	if c := d.limit(); len(r.Top) > c {
		r.Top = r.All[:c:c]
	}
	return
}
