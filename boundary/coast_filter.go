package boundary

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

/*
FilterNearOpen removes coastline polylines whose every point lies within tol (coordinate units)
of an open boundary polyline, these duplicate the open boundary where the two families overlap.
tol <= 0 or no open boundary keeps everything.
*/
func FilterNearOpen(coast, open []Polyline, tol float64) (kept []Polyline, removed int) {
	if tol <= 0 || len(open) == 0 {
		return coast, 0
	}
	eraser := make(orb.MultiLineString, 0, len(open))
	for _, p := range open {
		eraser = append(eraser, p.Points)
	}
	// a polyline outside the padded bound of the open boundary cannot lie within tol of it
	reach := eraser.Bound().Pad(tol)
	for _, p := range coast {
		if reach.Intersects(p.Points.Bound()) && withinTolerance(eraser, p.Points, tol) {
			removed++
			continue
		}
		kept = append(kept, p)
	}
	return
}

func withinTolerance(eraser orb.MultiLineString, ls orb.LineString, tol float64) bool {
	for _, pt := range ls {
		if planar.DistanceFrom(eraser, pt) > tol {
			return false
		}
	}
	return len(ls) > 0
}
