package boundary

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/oceanmesh/omt/InputParameters"
	"github.com/oceanmesh/omt/mesh"
	"github.com/oceanmesh/omt/readfiles"
	"github.com/oceanmesh/omt/types"
	"github.com/oceanmesh/omt/utils"
)

// Result is the immutable outcome of one successful pass over a fort.14 file
type Result struct {
	Mesh *mesh.Mesh
	Open []Polyline
	// Coastline omits polylines removed by the coast subtract filter
	Coastline []Polyline
	Other     []Polyline
	Report    Report
	Summary   *Summary
	// Warning is set when anomalies were found and fail fast is off
	Warning *ValidationError
	Stage   types.Stage

	// every coastline polyline built, before the coast subtract filter
	coastBuilt []Polyline
}

// DebugArtifacts covers every built polyline, including coastline later removed by the filter
func (r *Result) DebugArtifacts() *DebugArtifacts {
	coast := r.Coastline
	if r.coastBuilt != nil {
		coast = r.coastBuilt
	}
	return NewDebugArtifacts(r.Mesh, r.Report, r.Open, coast, r.Other)
}

/*
Engine drives one read-and-build pass:

	START -> HEADER_READ -> NODES_READ -> ELEMENTS_READ -> OPEN_BOUNDARY_READ ->
	LAND_BOUNDARY_READ -> BUILD_POLYLINES -> DETECT_ANOMALIES -> DONE

Any error ends the pass in FAILED and no partial result is returned. Anomalies are searched
on every built polyline, the coast subtract filter only trims the coastline handed back in the
Result. An Engine holds no per-file state, one value may serve concurrent calls.
*/
type Engine struct {
	Builder          Builder
	Classifier       *Classifier
	Detector         Detector
	FailFast         bool
	CoastSubtractTol float64
	Sink             ArtifactSink
	Logger           *zap.Logger
}

func NewEngine(bp *InputParameters.BoundaryParameters, logger *zap.Logger) (e *Engine, err error) {
	var metric Metric
	if err = bp.Validate(); err != nil {
		return
	}
	if metric, err = MetricByName(bp.Metric); err != nil {
		return
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	e = &Engine{
		Builder:          Builder{GapThreshold: bp.GapThreshold, Metric: metric, Logger: logger},
		Classifier:       NewClassifier(bp.CoastlineIBTypes),
		Detector:         Detector{Threshold: bp.AnomalyLengthThreshold, Cap: bp.AnomalyCap, Metric: metric},
		FailFast:         bp.FailFast,
		CoastSubtractTol: bp.CoastSubtractTol,
		Logger:           logger,
	}
	return
}

func (e *Engine) logger() *zap.Logger {
	if e.Logger == nil {
		return zap.NewNop()
	}
	return e.Logger
}

func (e *Engine) ProcessFile(ctx context.Context, fileName string) (res *Result, err error) {
	var file *os.File
	if file, err = os.Open(fileName); err != nil {
		return
	}
	defer file.Close()
	if res, err = e.Process(ctx, file); err != nil {
		err = fmt.Errorf("%s: %w", fileName, err)
	}
	return
}

func (e *Engine) Process(ctx context.Context, r io.Reader) (res *Result, err error) {
	var (
		logger = e.logger()
		stage  = types.Start
		fr     = readfiles.NewFort14Reader(r)
		metric = metricOrDefault(e.Builder.Metric)
	)
	defer func() {
		if err != nil {
			logger.Debug("boundary pass failed", zap.Stringer("stage", stage), zap.Error(err))
			res = nil
		}
	}()
	run := func(next types.Stage, f func() error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		step := utils.StartStep(logger, next.String())
		err := f()
		step.Done(err)
		if err != nil {
			stage = types.Failed
			return err
		}
		stage = next
		return nil
	}

	for fr.Stage() < types.LandBoundaryRead {
		if err = run(fr.Stage()+1, fr.Next); err != nil {
			return
		}
	}
	m := fr.Mesh()
	if err = metric.CheckBounds(m.Nodes.Bounds()); err != nil {
		stage = types.Failed
		return
	}

	var (
		open, land []Polyline
		openStats  BuildStats
		landStats  BuildStats
		removed    int
	)
	res = &Result{Mesh: m}
	if err = run(types.BuildPolylines, func() error {
		open, openStats = e.Builder.BuildAll(m.Open, m.Nodes, nil)
		land, landStats = e.Builder.BuildAll(m.Land, m.Nodes, e.classifier())
		res.Open = open
		res.coastBuilt, res.Other = SplitByCategory(land)
		return nil
	}); err != nil {
		return
	}

	if err = run(types.DetectAnomalies, func() error {
		res.Report = e.Detector.Detect(res.Open, res.coastBuilt, res.Other)
		return nil
	}); err != nil {
		return
	}
	res.Coastline, removed = FilterNearOpen(res.coastBuilt, res.Open, e.CoastSubtractTol)

	s := newSummary(m, metric)
	s.OpenPolylines, s.CoastlinePolylines, s.OtherPolylines = len(res.Open), len(res.Coastline), len(res.Other)
	s.Splits = openStats.Splits + landStats.Splits
	s.Dropped = openStats.Dropped + landStats.Dropped
	s.CoastRemoved = removed
	s.Anomalies, s.AnomaliesReported = res.Report.Total, len(res.Report.Top)
	s.EdgeLength = edgeLengthStats(metric, res.Open, res.coastBuilt, res.Other)
	res.Summary = s

	if res.Report.Total > 0 {
		verr := &ValidationError{
			Kind:      SuspiciousBoundaryEdges,
			Count:     res.Report.Total,
			Anomalies: res.Report.Top,
		}
		if e.FailFast {
			stage = types.Failed
			if e.Sink != nil {
				if serr := e.Sink.WriteDebug(ctx, res.DebugArtifacts()); serr != nil {
					logger.Warn("writing debug artifacts failed", zap.Error(serr))
				}
			}
			return nil, verr
		}
		logger.Warn("suspicious boundary edges", zap.Int("count", verr.Count),
			zap.Float64("longest", verr.Anomalies[0].Length))
		res.Warning = verr
	}
	stage = types.Done
	res.Stage = stage
	logger.Debug("boundary pass done", zap.Int("polylines", s.Polylines()), zap.Int("anomalies", s.Anomalies))
	return
}

func (e *Engine) classifier() *Classifier {
	if e.Classifier == nil {
		return NewClassifier(nil)
	}
	return e.Classifier
}
