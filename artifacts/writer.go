package artifacts

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ghodss/yaml"
	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"

	"github.com/oceanmesh/omt/boundary"
)

const (
	BoundariesFile = "boundaries.geojson"
	AnomaliesFile  = "anomalies.geojson"
	RawEdgesFile   = "raw_edges.yaml"
	SummaryFile    = "summary.yaml"
)

/*
Writer persists boundary results and debug artifacts into one directory. Every file written by
the same Writer carries the same run id.
*/
type Writer struct {
	Dir    string
	RunID  string
	Logger *zap.Logger
}

func NewWriter(dir string, logger *zap.Logger) (w *Writer, err error) {
	if err = os.MkdirAll(dir, 0755); err != nil {
		return
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Writer{Dir: dir, RunID: uuid.NewString(), Logger: logger}, nil
}

type segmentDoc struct {
	Family   string `json:"family"`
	Arc      int    `json:"arc"`
	Fragment int    `json:"fragment"`
	Start    int    `json:"start"`
	End      int    `json:"end"`
}

type rawEdgesDoc struct {
	RunID     string       `json:"run_id"`
	NodeXY    [][2]float64 `json:"node_xy"`
	OpenEdges [][2]int     `json:"open_edges"`
	LandEdges [][2]int     `json:"land_edges"`
	Segments  []segmentDoc `json:"segments"`
}

type summaryDoc struct {
	RunID   string            `json:"run_id"`
	Summary *boundary.Summary `json:"summary"`
}

// WriteDebug writes the raw edge dump and the anomaly layer
func (w *Writer) WriteDebug(ctx context.Context, da *boundary.DebugArtifacts) (err error) {
	if err = ctx.Err(); err != nil {
		return
	}
	doc := rawEdgesDoc{
		RunID:     w.RunID,
		NodeXY:    da.NodeXY,
		OpenEdges: da.OpenEdges,
		LandEdges: da.LandEdges,
	}
	for _, s := range da.Segments {
		doc.Segments = append(doc.Segments, segmentDoc{
			Family:   s.Arc.Family.String(),
			Arc:      s.Arc.Number,
			Fragment: s.Fragment,
			Start:    s.Start,
			End:      s.End,
		})
	}
	if err = w.writeYAML(RawEdgesFile, doc); err != nil {
		return
	}
	if err = ctx.Err(); err != nil {
		return
	}
	return w.writeGeoJSON(AnomaliesFile, anomalyFeatures(da.Anomalies, w.RunID))
}

// WriteResult writes the boundary layer, the summary and the debug artifacts of a result
func (w *Writer) WriteResult(ctx context.Context, res *boundary.Result) (err error) {
	if err = ctx.Err(); err != nil {
		return
	}
	fc := geojson.NewFeatureCollection()
	for _, group := range [][]boundary.Polyline{res.Open, res.Coastline, res.Other} {
		for _, p := range group {
			fc.Append(polylineFeature(p, w.RunID))
		}
	}
	if err = w.writeGeoJSON(BoundariesFile, fc); err != nil {
		return
	}
	if err = w.writeYAML(SummaryFile, summaryDoc{RunID: w.RunID, Summary: res.Summary}); err != nil {
		return
	}
	return w.WriteDebug(ctx, res.DebugArtifacts())
}

func polylineFeature(p boundary.Polyline, runID string) *geojson.Feature {
	f := geojson.NewFeature(p.Points)
	f.Properties["run_id"] = runID
	f.Properties["family"] = p.Arc.Family.String()
	f.Properties["arc"] = p.Arc.Number
	f.Properties["fragment"] = p.Fragment
	f.Properties["ibtype"] = p.IBType
	f.Properties["category"] = p.Category.String()
	f.Properties["nodes"] = len(p.NodeIDs)
	return f
}

func anomalyFeatures(anomalies []boundary.Anomaly, runID string) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for rank, a := range anomalies {
		f := geojson.NewFeature(orb.LineString{a.A, a.B})
		f.Properties = geojson.Properties{
			"run_id":   runID,
			"rank":     rank + 1,
			"family":   a.Arc.Family.String(),
			"arc":      a.Arc.Number,
			"fragment": a.Fragment,
			"category": a.Category.String(),
			"from":     a.From,
			"to":       a.To,
			"length":   a.Length,
		}
		fc.Append(f)
	}
	return fc
}

func (w *Writer) writeGeoJSON(name string, fc *geojson.FeatureCollection) (err error) {
	var data []byte
	if data, err = fc.MarshalJSON(); err != nil {
		return fmt.Errorf("encoding %s: %w", name, err)
	}
	return w.write(name, data)
}

func (w *Writer) writeYAML(name string, doc interface{}) (err error) {
	var data []byte
	if data, err = yaml.Marshal(doc); err != nil {
		return fmt.Errorf("encoding %s: %w", name, err)
	}
	return w.write(name, data)
}

func (w *Writer) write(name string, data []byte) (err error) {
	fileName := filepath.Join(w.Dir, name)
	if err = os.WriteFile(fileName, data, 0644); err != nil {
		return
	}
	w.Logger.Debug("wrote artifact", zap.String("file", fileName), zap.Int("bytes", len(data)))
	return
}
