package boundary

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/planar"

	"github.com/oceanmesh/omt/InputParameters"
)

// Metric measures the distance between two node coordinates
type Metric interface {
	Name() string
	Distance(a, b orb.Point) float64
	// CheckBounds rejects meshes whose coordinates the metric cannot interpret
	CheckBounds(b orb.Bound) error
}

type planarMetric struct{}

func (planarMetric) Name() string                    { return "planar" }
func (planarMetric) Distance(a, b orb.Point) float64 { return planar.Distance(a, b) }
func (planarMetric) CheckBounds(orb.Bound) error     { return nil }

// haversineMetric returns great circle distances in metres for lon/lat degrees
type haversineMetric struct{}

func (haversineMetric) Name() string                    { return "haversine" }
func (haversineMetric) Distance(a, b orb.Point) float64 { return geo.DistanceHaversine(a, b) }

func (haversineMetric) CheckBounds(b orb.Bound) error {
	if b.Min.X() < -180 || b.Max.X() > 360 || b.Min.Y() < -90 || b.Max.Y() > 90 {
		return fmt.Errorf("haversine metric needs lon/lat degrees, mesh spans x [%g,%g] y [%g,%g]",
			b.Min.X(), b.Max.X(), b.Min.Y(), b.Max.Y())
	}
	return nil
}

var (
	Planar    Metric = planarMetric{}
	Haversine Metric = haversineMetric{}
)

// MetricNames lists the names accepted by MetricByName
var MetricNames = InputParameters.MetricNames

// MetricByName resolves a configured metric name, the empty name selects Planar
func MetricByName(name string) (Metric, error) {
	switch InputParameters.NormalizeMetric(name) {
	case Planar.Name():
		return Planar, nil
	case Haversine.Name():
		return Haversine, nil
	}
	return nil, fmt.Errorf("unknown distance metric %q, choose one of %v", name, MetricNames)
}

func metricOrDefault(m Metric) Metric {
	if m == nil {
		return Planar
	}
	return m
}
