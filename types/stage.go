package types

// Stage tracks progress through a single read-and-build pass
type Stage uint8

const (
	Start Stage = iota
	HeaderRead
	NodesRead
	ElementsRead
	OpenBoundaryRead
	LandBoundaryRead
	BuildPolylines
	DetectAnomalies
	Done
	Failed
)

var stageNames = [...]string{
	"START",
	"HEADER_READ",
	"NODES_READ",
	"ELEMENTS_READ",
	"OPEN_BOUNDARY_READ",
	"LAND_BOUNDARY_READ",
	"BUILD_POLYLINES",
	"DETECT_ANOMALIES",
	"DONE",
	"FAILED",
}

func (s Stage) String() string {
	if int(s) < len(stageNames) {
		return stageNames[s]
	}
	return "UNKNOWN"
}

// Terminal is true for DONE and FAILED
func (s Stage) Terminal() bool {
	return s == Done || s == Failed
}
