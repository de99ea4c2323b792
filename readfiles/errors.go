package readfiles

import (
	"fmt"
	"strings"

	"github.com/oceanmesh/omt/types"
)

type ErrorKind uint8

const (
	HeaderCountMismatch ErrorKind = iota + 1
	MalformedRecord
	BoundaryCountMismatch
	NodeIndexOutOfRange
)

func (k ErrorKind) String() string {
	switch k {
	case HeaderCountMismatch:
		return "header count mismatch"
	case MalformedRecord:
		return "malformed record"
	case BoundaryCountMismatch:
		return "boundary count mismatch"
	case NodeIndexOutOfRange:
		return "node index out of range"
	}
	return fmt.Sprintf("ErrorKind(%d)", uint8(k))
}

/*
FormatError reports a structural problem with a fort.14 file. Line is the 1-based source line
of the offending record, zero when the problem is only detectable at the end of a section.
Arc is set (Number > 0) for problems inside a boundary arc and Index carries the offending
node id for NodeIndexOutOfRange.
*/
type FormatError struct {
	Kind  ErrorKind
	Line  int
	Arc   types.ArcRef
	Index int
	Msg   string
}

// Sentinels for errors.Is, they compare on Kind only
var (
	ErrHeaderCountMismatch   = &FormatError{Kind: HeaderCountMismatch}
	ErrMalformedRecord       = &FormatError{Kind: MalformedRecord}
	ErrBoundaryCountMismatch = &FormatError{Kind: BoundaryCountMismatch}
	ErrNodeIndexOutOfRange   = &FormatError{Kind: NodeIndexOutOfRange}
)

func (e *FormatError) Error() string {
	var b strings.Builder
	b.WriteString("fort.14")
	if e.Line > 0 {
		fmt.Fprintf(&b, " line %d", e.Line)
	}
	fmt.Fprintf(&b, ": %s", e.Kind)
	if e.Arc.Number > 0 {
		fmt.Fprintf(&b, " in %s", e.Arc)
	}
	if e.Kind == NodeIndexOutOfRange {
		fmt.Fprintf(&b, ": index %d", e.Index)
	}
	if e.Msg != "" {
		b.WriteString(": ")
		b.WriteString(e.Msg)
	}
	return b.String()
}

func (e *FormatError) Is(target error) bool {
	t, ok := target.(*FormatError)
	return ok && t.Kind == e.Kind
}

func formatErrorf(kind ErrorKind, line int, format string, args ...interface{}) *FormatError {
	return &FormatError{Kind: kind, Line: line, Msg: fmt.Sprintf(format, args...)}
}
