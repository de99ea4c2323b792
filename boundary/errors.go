package boundary

import (
	"fmt"
)

type ValidationKind uint8

const (
	SuspiciousBoundaryEdges ValidationKind = iota + 1
)

func (k ValidationKind) String() string {
	if k == SuspiciousBoundaryEdges {
		return "suspicious boundary edges"
	}
	return fmt.Sprintf("ValidationKind(%d)", uint8(k))
}

// ValidationError reports semantic anomalies, Anomalies is the capped, ranked list
type ValidationError struct {
	Kind      ValidationKind
	Count     int
	Anomalies []Anomaly
}

var ErrSuspiciousBoundaryEdges = &ValidationError{Kind: SuspiciousBoundaryEdges}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("%s: %d edges exceed the length threshold", e.Kind, e.Count)
	if len(e.Anomalies) > 0 {
		a := e.Anomalies[0]
		msg += fmt.Sprintf(", longest %g between nodes %d and %d (%s fragment %d)",
			a.Length, a.From, a.To, a.Arc, a.Fragment)
	}
	return msg
}

func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	return ok && t.Kind == e.Kind
}
