package readfiles

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/oceanmesh/omt/mesh"
	"github.com/oceanmesh/omt/types"
)

const maxLineBytes = 1 << 20

/*
Fort14Reader reads an ADCIRC fort.14 file section by section from a single forward-only stream:

	title
	NE NP
	NP node lines:     index x y depth
	NE element lines:  index 3 v1 v2 v3
	NOPE               open boundary arcs
	NETA               total open boundary nodes
	  per arc: count, then count node lines
	NBOU               land boundary arcs
	NVEL               total land boundary nodes
	  per arc: count ibtype (one line or two), then count node lines

Each call to Next reads one section and advances Stage. The mesh is only handed out once the
land boundary section has been read; any error moves the reader to Failed for good.
*/
type Fort14Reader struct {
	scanner *bufio.Scanner
	line    int
	atEOF   bool
	stage   types.Stage
	err     error
	m       *mesh.Mesh
	NE, NP  int
}

func NewFort14Reader(r io.Reader) *Fort14Reader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)
	return &Fort14Reader{
		scanner: scanner,
		stage:   types.Start,
		m:       &mesh.Mesh{},
	}
}

func (fr *Fort14Reader) Stage() types.Stage { return fr.stage }

// Line is the number of source lines consumed so far
func (fr *Fort14Reader) Line() int { return fr.line }

// Mesh returns the fully read mesh, nil until the land boundary section has been read
func (fr *Fort14Reader) Mesh() *mesh.Mesh {
	if fr.stage < types.LandBoundaryRead || fr.stage == types.Failed {
		return nil
	}
	return fr.m
}

// Next reads the section that follows the current stage
func (fr *Fort14Reader) Next() (err error) {
	switch fr.stage {
	case types.Start:
		err = fr.readHeader()
	case types.HeaderRead:
		err = fr.readNodes()
	case types.NodesRead:
		err = fr.readElements()
	case types.ElementsRead:
		err = fr.readOpenBoundaries()
	case types.OpenBoundaryRead:
		err = fr.readLandBoundaries()
	case types.Failed:
		return fr.err
	default:
		return fmt.Errorf("fort.14 reader has no section after %s", fr.stage)
	}
	if err != nil {
		fr.stage, fr.err = types.Failed, err
		fr.m = nil
		return
	}
	fr.stage++
	return
}

// ReadFort14 reads every section of a fort.14 stream
func ReadFort14(r io.Reader) (m *mesh.Mesh, err error) {
	fr := NewFort14Reader(r)
	for fr.Stage() < types.LandBoundaryRead {
		if err = fr.Next(); err != nil {
			return nil, err
		}
	}
	return fr.Mesh(), nil
}

func ReadFort14File(filename string) (m *mesh.Mesh, err error) {
	var (
		file *os.File
	)
	if file, err = os.Open(filename); err != nil {
		return
	}
	defer file.Close()
	if m, err = ReadFort14(file); err != nil {
		err = fmt.Errorf("%s: %w", filename, err)
	}
	return
}

// rawLine returns the next source line without the line terminator
func (fr *Fort14Reader) rawLine() (line string, ok bool, err error) {
	if fr.atEOF {
		return
	}
	if !fr.scanner.Scan() {
		fr.atEOF = true
		if err = fr.scanner.Err(); err != nil {
			err = fmt.Errorf("reading fort.14 after line %d: %w", fr.line, err)
		}
		return
	}
	fr.line++
	return strings.TrimRight(fr.scanner.Text(), "\r"), true, nil
}

// nextRecord returns the fields of the next non-blank line
func (fr *Fort14Reader) nextRecord() (fields []string, ok bool, err error) {
	var line string
	for {
		if line, ok, err = fr.rawLine(); !ok || err != nil {
			return
		}
		if fields = strings.Fields(line); len(fields) > 0 {
			return
		}
	}
}

// leadingInts parses integer tokens from the start of a record up to the first non-integer
func leadingInts(fields []string) (ints []int) {
	for _, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			break
		}
		ints = append(ints, v)
	}
	return
}

func (fr *Fort14Reader) readHeader() (err error) {
	var (
		title, line string
		ok          bool
	)
	if title, ok, err = fr.rawLine(); err != nil {
		return
	} else if !ok {
		return formatErrorf(MalformedRecord, 1, "empty file, expected a title line")
	}
	fr.m.Title = title
	if line, ok, err = fr.rawLine(); err != nil {
		return
	} else if !ok {
		return formatErrorf(MalformedRecord, 2, "missing element and node counts")
	}
	counts := leadingInts(strings.Fields(line))
	if len(counts) < 2 {
		return formatErrorf(MalformedRecord, 2, "expected \"element_count node_count\", got %q", line)
	}
	fr.NE, fr.NP = counts[0], counts[1]
	if fr.NE < 0 || fr.NP < 0 {
		return formatErrorf(MalformedRecord, 2, "negative counts %d %d", fr.NE, fr.NP)
	}
	return
}

/*
sectionRecord reads the record expected to carry running index i of a counted section. A record
for which following reports the start of the next section ends the table early, even when its
leading integer happens to equal i.
*/
func (fr *Fort14Reader) sectionRecord(section string, i, declared int,
	following func(fields []string) bool) (fields []string, err error) {
	var ok bool
	if fields, ok, err = fr.nextRecord(); err != nil {
		return
	} else if !ok {
		return nil, formatErrorf(HeaderCountMismatch, fr.line,
			"%s section declares %d records, end of file after %d", section, declared, i-1)
	}
	ind, perr := strconv.Atoi(fields[0])
	if perr != nil {
		return nil, formatErrorf(MalformedRecord, fr.line, "%s %d: bad index %q", section, i, fields[0])
	}
	if ind != i {
		return nil, formatErrorf(HeaderCountMismatch, fr.line,
			"%s section declares %d records, found %d before a record starting with %d",
			section, declared, i-1, ind)
	}
	if following(fields) {
		return nil, formatErrorf(HeaderCountMismatch, fr.line,
			"%s section declares %d records, found %d before the next section begins with %q",
			section, declared, i-1, strings.Join(fields, " "))
	}
	return
}

// isCountLine matches a boundary count record such as "2 = Number of open boundaries"
func isCountLine(fields []string) bool {
	for _, f := range fields[1:] {
		if _, err := strconv.ParseFloat(f, 64); err == nil {
			return false
		}
	}
	return true
}

// isElementLine matches a triangle record "index 3 v1 v2 v3"
func isElementLine(fields []string) bool {
	return len(fields) == 5 && fields[1] == "3" && len(leadingInts(fields)) == 5
}

func followsNodes(fields []string) bool { return isElementLine(fields) || isCountLine(fields) }

func (fr *Fort14Reader) readNodes() (err error) {
	var (
		fields []string
		nodes  = mesh.NewNodeTable(fr.NP)
		vals   [3]float64
	)
	for i := 1; i <= fr.NP; i++ {
		if fields, err = fr.sectionRecord("node", i, fr.NP, followsNodes); err != nil {
			return
		}
		if len(fields) < 4 {
			return formatErrorf(MalformedRecord, fr.line,
				"node %d: expected \"index x y depth\", got %d fields", i, len(fields))
		}
		for j := 0; j < 3; j++ {
			if vals[j], err = strconv.ParseFloat(fields[j+1], 64); err != nil {
				return formatErrorf(MalformedRecord, fr.line, "node %d: %q is not a number", i, fields[j+1])
			}
		}
		nodes.X[i-1], nodes.Y[i-1], nodes.Depth[i-1] = vals[0], vals[1], vals[2]
	}
	fr.m.Nodes = nodes
	return
}

func (fr *Fort14Reader) readElements() (err error) {
	var (
		fields []string
		tris   = make([][3]int32, fr.NE)
	)
	for k := 1; k <= fr.NE; k++ {
		if fields, err = fr.sectionRecord("element", k, fr.NE, isCountLine); err != nil {
			return
		}
		if len(fields) < 5 {
			return formatErrorf(MalformedRecord, fr.line,
				"element %d: expected \"index 3 v1 v2 v3\", got %d fields", k, len(fields))
		}
		ints := leadingInts(fields[1:5])
		if len(ints) < 4 {
			return formatErrorf(MalformedRecord, fr.line, "element %d: non-integer field", k)
		}
		if ints[0] != 3 {
			return formatErrorf(MalformedRecord, fr.line, "element %d: vertex count %d, only triangles are supported",
				k, ints[0])
		}
		for j, v := range ints[1:] {
			if !fr.m.Nodes.InRange(v) {
				return &FormatError{Kind: NodeIndexOutOfRange, Line: fr.line, Index: v,
					Msg: fmt.Sprintf("element %d, valid range [1,%d]", k, fr.NP)}
			}
			tris[k-1][j] = int32(v)
		}
	}
	fr.m.Elements = mesh.ElementTable{Triangles: tris}
	return
}

/*
boundaryInts returns the leading integers of the next record inside a boundary section.
eofKind selects the error raised when the stream ends here.
*/
func (fr *Fort14Reader) boundaryInts(what string, arc types.ArcRef, eofKind ErrorKind) (ints []int, err error) {
	var (
		fields []string
		ok     bool
	)
	if fields, ok, err = fr.nextRecord(); err != nil {
		return
	} else if !ok {
		return nil, &FormatError{Kind: eofKind, Line: fr.line, Arc: arc,
			Msg: fmt.Sprintf("end of file while reading %s", what)}
	}
	if ints = leadingInts(fields); len(ints) == 0 {
		return nil, &FormatError{Kind: MalformedRecord, Line: fr.line, Arc: arc,
			Msg: fmt.Sprintf("expected %s, got %q", what, strings.Join(fields, " "))}
	}
	return
}

func (fr *Fort14Reader) count(v int, what string, arc types.ArcRef) error {
	if v < 0 {
		return &FormatError{Kind: MalformedRecord, Line: fr.line, Arc: arc,
			Msg: fmt.Sprintf("negative %s %d", what, v)}
	}
	return nil
}

// sectionCounts reads the arc count and node total that open a boundary section
func (fr *Fort14Reader) sectionCounts(family types.Family) (arcs, total int, present bool, err error) {
	var (
		fields []string
		ints   []int
		ok     bool
		none   types.ArcRef
	)
	if fields, ok, err = fr.nextRecord(); err != nil || !ok {
		return
	}
	if ints = leadingInts(fields); len(ints) == 0 {
		return 0, 0, false, formatErrorf(MalformedRecord, fr.line,
			"expected %s boundary arc count, got %q", family, strings.Join(fields, " "))
	}
	arcs = ints[0]
	if err = fr.count(arcs, family.String()+" boundary arc count", none); err != nil {
		return
	}
	if ints, err = fr.boundaryInts(family.String()+" boundary node total", none, BoundaryCountMismatch); err != nil {
		return
	}
	total = ints[0]
	if err = fr.count(total, family.String()+" boundary node total", none); err != nil {
		return
	}
	return arcs, total, true, nil
}

func (fr *Fort14Reader) arcNodes(arc *mesh.Arc, n int) (err error) {
	var ints []int
	arc.Nodes = make([]int, n)
	for i := 0; i < n; i++ {
		if ints, err = fr.boundaryInts("boundary node", arc.Ref, BoundaryCountMismatch); err != nil {
			return
		}
		if !fr.m.Nodes.InRange(ints[0]) {
			return &FormatError{Kind: NodeIndexOutOfRange, Line: fr.line, Arc: arc.Ref, Index: ints[0],
				Msg: fmt.Sprintf("valid range [1,%d]", fr.NP)}
		}
		arc.Nodes[i] = ints[0]
	}
	return
}

func checkTotal(family types.Family, declared int, arcs []mesh.Arc) error {
	if counted := mesh.ArcNodeTotal(arcs); counted != declared {
		return &FormatError{Kind: BoundaryCountMismatch,
			Msg: fmt.Sprintf("%s boundary section declares %d nodes, arcs hold %d", family, declared, counted)}
	}
	return nil
}

func (fr *Fort14Reader) readOpenBoundaries() (err error) {
	var (
		nope, neta int
		present    bool
		ints       []int
	)
	if nope, neta, present, err = fr.sectionCounts(types.OpenBoundary); err != nil || !present {
		return
	}
	arcs := make([]mesh.Arc, nope)
	for k := range arcs {
		arc := &arcs[k]
		arc.Ref = types.ArcRef{Family: types.OpenBoundary, Number: k + 1}
		arc.IBType = types.NoIBType
		if ints, err = fr.boundaryInts("arc node count", arc.Ref, BoundaryCountMismatch); err != nil {
			return
		}
		if err = fr.count(ints[0], "arc node count", arc.Ref); err != nil {
			return
		}
		if err = fr.arcNodes(arc, ints[0]); err != nil {
			return
		}
	}
	if err = checkTotal(types.OpenBoundary, neta, arcs); err != nil {
		return
	}
	fr.m.Open, fr.m.DeclaredOpenTotal = arcs, neta
	return
}

func (fr *Fort14Reader) readLandBoundaries() (err error) {
	var (
		nbou, nvel int
		present    bool
		ints       []int
	)
	if nbou, nvel, present, err = fr.sectionCounts(types.LandBoundary); err != nil || !present {
		return
	}
	arcs := make([]mesh.Arc, nbou)
	for k := range arcs {
		arc := &arcs[k]
		arc.Ref = types.ArcRef{Family: types.LandBoundary, Number: k + 1}
		if ints, err = fr.boundaryInts("arc node count and ibtype", arc.Ref, BoundaryCountMismatch); err != nil {
			return
		}
		n := ints[0]
		if len(ints) > 1 {
			arc.IBType = ints[1]
		} else {
			// count and ibtype split over two lines
			var ib []int
			if ib, err = fr.boundaryInts("arc ibtype", arc.Ref, BoundaryCountMismatch); err != nil {
				return
			}
			arc.IBType = ib[0]
		}
		if err = fr.count(n, "arc node count", arc.Ref); err != nil {
			return
		}
		if err = fr.arcNodes(arc, n); err != nil {
			return
		}
	}
	if err = checkTotal(types.LandBoundary, nvel, arcs); err != nil {
		return
	}
	fr.m.Land, fr.m.DeclaredLandTotal = arcs, nvel
	return
}
