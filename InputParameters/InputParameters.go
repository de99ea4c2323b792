package InputParameters

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/ghodss/yaml"
)

// MetricNames are the distance metrics the boundary engine understands
var MetricNames = []string{"planar", "haversine"}

// NormalizeMetric folds case and surrounding space, the empty name means "planar"
func NormalizeMetric(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return MetricNames[0]
	}
	return name
}

// Parameters obtained from the YAML input file
type BoundaryParameters struct {
	Title                  string  `json:"title,omitempty"`
	GapThreshold           float64 `json:"gap_threshold"`
	CoastlineIBTypes       []int   `json:"coastline_ibtypes"`
	AnomalyLengthThreshold float64 `json:"anomaly_length_threshold"`
	AnomalyCap             int     `json:"anomaly_cap"`
	FailFast               bool    `json:"fail_fast"`
	Metric                 string  `json:"metric"`
	CoastSubtractTol       float64 `json:"coast_subtract_tol"`
}

func NewBoundaryParameters() *BoundaryParameters {
	return &BoundaryParameters{
		CoastlineIBTypes: []int{0, 20, 21},
		AnomalyCap:       200,
		Metric:           "planar",
	}
}

// Parse overlays the YAML document on the current values, keys absent from data keep them
func (bp *BoundaryParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, bp)
}

func (bp *BoundaryParameters) ParseFile(fileName string) (err error) {
	var data []byte
	if data, err = os.ReadFile(fileName); err != nil {
		return
	}
	if err = bp.Parse(data); err != nil {
		return fmt.Errorf("parameter file %s: %w", fileName, err)
	}
	return
}

// Validate checks the parameters and stores the metric name in its normal form
func (bp *BoundaryParameters) Validate() error {
	switch {
	case bp.GapThreshold < 0:
		return fmt.Errorf("gap_threshold must not be negative, got %g", bp.GapThreshold)
	case bp.AnomalyLengthThreshold < 0:
		return fmt.Errorf("anomaly_length_threshold must not be negative, got %g", bp.AnomalyLengthThreshold)
	case bp.AnomalyCap < 0:
		return fmt.Errorf("anomaly_cap must not be negative, got %d", bp.AnomalyCap)
	case bp.CoastSubtractTol < 0:
		return fmt.Errorf("coast_subtract_tol must not be negative, got %g", bp.CoastSubtractTol)
	}
	metric := NormalizeMetric(bp.Metric)
	for _, name := range MetricNames {
		if metric == name {
			bp.Metric = metric
			return nil
		}
	}
	return fmt.Errorf("unknown metric %q, choose one of %v", bp.Metric, MetricNames)
}

func (bp *BoundaryParameters) Marshal() ([]byte, error) {
	return yaml.Marshal(bp)
}

func (bp *BoundaryParameters) Print(w io.Writer) {
	if bp.Title != "" {
		fmt.Fprintf(w, "\"%s\"\t\t= Title\n", bp.Title)
	}
	fmt.Fprintf(w, "%8.5g\t\t= Gap Threshold\n", bp.GapThreshold)
	codes := append([]int(nil), bp.CoastlineIBTypes...)
	sort.Ints(codes)
	fmt.Fprintf(w, "%v\t\t= Coastline IBTYPEs\n", codes)
	fmt.Fprintf(w, "%8.5g\t\t= Anomaly Length Threshold\n", bp.AnomalyLengthThreshold)
	fmt.Fprintf(w, "[%d]\t\t\t= Anomaly Cap\n", bp.AnomalyCap)
	fmt.Fprintf(w, "[%v]\t\t\t= Fail Fast\n", bp.FailFast)
	fmt.Fprintf(w, "[%s]\t\t= Metric\n", bp.Metric)
	fmt.Fprintf(w, "%8.5g\t\t= Coast Subtract Tolerance\n", bp.CoastSubtractTol)
}
