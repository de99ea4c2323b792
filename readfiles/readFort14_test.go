package readfiles

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oceanmesh/omt/mesh"
	"github.com/oceanmesh/omt/types"
)

const (
	scenarioHeader = "scenario A\n2 4\n"
	scenarioNodes  = `1 0.0 0.0 -5.0
2 1.0 0.0 -5.0
3 1.0 1.0 -5.0
4 0.0 1.0 -5.0
`
	scenarioElements = `1 3 1 2 3
2 3 1 3 4
`
	scenarioOpen = `1 = Number of open boundaries
3 = Total number of open boundary nodes
3 0 = Number of nodes for open boundary 1
1
2
3
`
	scenarioLand = `1 = Number of land boundaries
3 = Total number of land boundary nodes
3 20 = Number of nodes for land boundary 1
3
4
1
`
)

func scenarioFile() string {
	return scenarioHeader + scenarioNodes + scenarioElements + scenarioOpen + scenarioLand
}

func readString(s string) (*mesh.Mesh, error) {
	return ReadFort14(strings.NewReader(s))
}

func requireFormatError(t *testing.T, err error, kind ErrorKind) *FormatError {
	t.Helper()
	require.Error(t, err)
	var fe *FormatError
	require.True(t, errors.As(err, &fe), "not a FormatError: %v", err)
	assert.Equal(t, kind, fe.Kind, fe.Error())
	return fe
}

func TestReadFort14(t *testing.T) {
	m, err := readString(scenarioFile())
	require.NoError(t, err)
	assert.Equal(t, "scenario A", m.Title)
	assert.Equal(t, 4, m.NumNodes())
	assert.Equal(t, 2, m.NumElements())
	assert.Equal(t, []float64{0, 1, 1, 0}, m.Nodes.X)
	assert.Equal(t, []float64{0, 0, 1, 1}, m.Nodes.Y)
	assert.Equal(t, [3]int32{1, 3, 4}, m.Elements.Triangles[1])

	require.Len(t, m.Open, 1)
	assert.Equal(t, types.ArcRef{Family: types.OpenBoundary, Number: 1}, m.Open[0].Ref)
	assert.Equal(t, types.NoIBType, m.Open[0].IBType)
	assert.Equal(t, []int{1, 2, 3}, m.Open[0].Nodes)
	assert.Equal(t, 3, m.DeclaredOpenTotal)

	require.Len(t, m.Land, 1)
	assert.Equal(t, types.ArcRef{Family: types.LandBoundary, Number: 1}, m.Land[0].Ref)
	assert.Equal(t, 20, m.Land[0].IBType)
	// file order is kept, never sorted
	assert.Equal(t, []int{3, 4, 1}, m.Land[0].Nodes)
	assert.Equal(t, 3, m.DeclaredLandTotal)
}

func TestReaderStages(t *testing.T) {
	fr := NewFort14Reader(strings.NewReader(scenarioFile()))
	want := []types.Stage{types.HeaderRead, types.NodesRead, types.ElementsRead,
		types.OpenBoundaryRead, types.LandBoundaryRead}
	for _, st := range want {
		assert.Nil(t, fr.Mesh())
		require.NoError(t, fr.Next())
		assert.Equal(t, st, fr.Stage())
	}
	require.NotNil(t, fr.Mesh())
	assert.Equal(t, 20, fr.Line())
	assert.Error(t, fr.Next())

	fr = NewFort14Reader(strings.NewReader("title\n2 4\n1 0 0 0\n"))
	require.NoError(t, fr.Next())
	err := fr.Next()
	requireFormatError(t, err, HeaderCountMismatch)
	assert.Equal(t, types.Failed, fr.Stage())
	assert.Nil(t, fr.Mesh())
	assert.Equal(t, err, fr.Next())
}

func TestReadFort14TableErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  ErrorKind
		line  int
	}{
		{"MissingNodeLine", scenarioHeader + strings.Join(strings.SplitAfter(scenarioNodes, "\n")[:3], "") +
			scenarioElements + scenarioOpen + scenarioLand, HeaderCountMismatch, 6},
		{"NodesEndOfFile", "title\n2 4\n1 0 0 0\n2 1 0 0\n", HeaderCountMismatch, 4},
		{"MissingElementLine", "scenario A\n3 4\n" + scenarioNodes + scenarioElements + scenarioOpen,
			HeaderCountMismatch, 9},
		{"ElementsEndAtMatchingCount", scenarioHeader + scenarioNodes + "1 3 1 2 3\n" +
			"2 = Number of open boundaries\n", HeaderCountMismatch, 8},
		{"ElementsEndAtBareCount", scenarioHeader + scenarioNodes + "1 3 1 2 3\n2\n", HeaderCountMismatch, 8},
		{"NodesEndAtElementTable", "title\n1 1\n1 3 1 1 1\n", HeaderCountMismatch, 3},
		{"EmptyFile", "", MalformedRecord, 1},
		{"BadHeader", "title\ntwo four\n", MalformedRecord, 2},
		{"NegativeHeader", "title\n-2 4\n", MalformedRecord, 2},
		{"BadCoordinate", scenarioHeader + "1 0 0 0\n2 1 0 0\n3 abc 1.0 -5\n4 0 1 0\n", MalformedRecord, 5},
		{"ShortNode", scenarioHeader + "1 0 0 0\n2 1 0\n", MalformedRecord, 4},
		{"Quadrilateral", scenarioHeader + scenarioNodes + "1 4 1 2 3 4\n2 3 1 3 4\n", MalformedRecord, 7},
		{"ShortElement", scenarioHeader + scenarioNodes + "1 3 1 2\n", MalformedRecord, 7},
		{"ElementVertexRange", scenarioHeader + scenarioNodes + "1 3 1 2 3\n2 3 1 3 5\n", NodeIndexOutOfRange, 8},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m, err := readString(tc.input)
			assert.Nil(t, m)
			fe := requireFormatError(t, err, tc.kind)
			assert.Equal(t, tc.line, fe.Line)
		})
	}
}

func TestReadFort14BoundaryErrors(t *testing.T) {
	tables := scenarioHeader + scenarioNodes + scenarioElements
	openArc := types.ArcRef{Family: types.OpenBoundary, Number: 1}
	landArc := types.ArcRef{Family: types.LandBoundary, Number: 1}
	t.Run("IndexZero", func(t *testing.T) {
		_, err := readString(tables + strings.Replace(scenarioOpen, "\n1\n", "\n0\n", 1) + scenarioLand)
		fe := requireFormatError(t, err, NodeIndexOutOfRange)
		assert.Equal(t, 0, fe.Index)
		assert.Equal(t, openArc, fe.Arc)
		assert.Equal(t, 12, fe.Line)
		assert.Contains(t, fe.Error(), "open arc 1")
	})
	t.Run("IndexPastEnd", func(t *testing.T) {
		_, err := readString(tables + scenarioOpen + strings.Replace(scenarioLand, "4\n1\n", "4\n5\n", 1))
		fe := requireFormatError(t, err, NodeIndexOutOfRange)
		assert.Equal(t, 5, fe.Index)
		assert.Equal(t, landArc, fe.Arc)
		assert.Equal(t, 20, fe.Line)
	})
	t.Run("OpenTotalMismatch", func(t *testing.T) {
		_, err := readString(tables + strings.Replace(scenarioOpen, "3 = Total", "4 = Total", 1) + scenarioLand)
		requireFormatError(t, err, BoundaryCountMismatch)
		assert.True(t, errors.Is(err, ErrBoundaryCountMismatch))
		assert.False(t, errors.Is(err, ErrHeaderCountMismatch))
	})
	t.Run("LandTotalMismatch", func(t *testing.T) {
		_, err := readString(tables + scenarioOpen + strings.Replace(scenarioLand, "3 = Total", "2 = Total", 1))
		requireFormatError(t, err, BoundaryCountMismatch)
	})
	t.Run("EndOfFileInsideArc", func(t *testing.T) {
		_, err := readString(tables + "1\n3\n3\n1\n2\n")
		fe := requireFormatError(t, err, BoundaryCountMismatch)
		assert.Equal(t, openArc, fe.Arc)
	})
	t.Run("NoLeadingInteger", func(t *testing.T) {
		_, err := readString(tables + "1\n3\n3\n1\nnode two\n3\n")
		fe := requireFormatError(t, err, MalformedRecord)
		assert.Equal(t, 13, fe.Line)
	})
	t.Run("NegativeArcCount", func(t *testing.T) {
		_, err := readString(tables + "-1\n0\n")
		requireFormatError(t, err, MalformedRecord)
	})
}

func TestReadFort14BoundaryVariants(t *testing.T) {
	tables := scenarioHeader + scenarioNodes + scenarioElements
	t.Run("NoBoundarySections", func(t *testing.T) {
		m, err := readString(tables + "\n\n")
		require.NoError(t, err)
		assert.Empty(t, m.Open)
		assert.Empty(t, m.Land)
	})
	t.Run("NoLandSection", func(t *testing.T) {
		m, err := readString(tables + scenarioOpen)
		require.NoError(t, err)
		assert.Len(t, m.Open, 1)
		assert.Empty(t, m.Land)
	})
	t.Run("SplitLandHeader", func(t *testing.T) {
		land := "2\n5\n3\n21\n3\n4\n1\n2 ! second arc\n0\n1\n2\n"
		m, err := readString(tables + scenarioOpen + land)
		require.NoError(t, err)
		require.Len(t, m.Land, 2)
		assert.Equal(t, 21, m.Land[0].IBType)
		assert.Equal(t, []int{3, 4, 1}, m.Land[0].Nodes)
		assert.Equal(t, 0, m.Land[1].IBType)
		assert.Equal(t, []int{1, 2}, m.Land[1].Nodes)
		assert.Equal(t, 2, m.Land[1].Ref.Number)
	})
	t.Run("BarrierColumnsAndBlankLines", func(t *testing.T) {
		land := "1\n3\n\n3 24\n3 1 1.5 1.0 1.0\n\n4 2 1.5 1.0 1.0\r\n1 3 1.5 1.0 1.0\n"
		m, err := readString(tables + scenarioOpen + land)
		require.NoError(t, err)
		require.Len(t, m.Land, 1)
		assert.Equal(t, 24, m.Land[0].IBType)
		assert.Equal(t, []int{3, 4, 1}, m.Land[0].Nodes)
	})
	t.Run("EmptyArcs", func(t *testing.T) {
		m, err := readString(tables + "0\n0\n0 = land\n0\n")
		require.NoError(t, err)
		assert.Empty(t, m.Open)
		assert.Empty(t, m.Land)
	})
}

func TestReadFort14File(t *testing.T) {
	dir := t.TempDir()
	fileName := filepath.Join(dir, "fort.14")
	require.NoError(t, os.WriteFile(fileName, []byte(scenarioFile()), 0644))
	m, err := ReadFort14File(fileName)
	require.NoError(t, err)
	assert.Equal(t, 4, m.NumNodes())

	bad := filepath.Join(dir, "bad.14")
	require.NoError(t, os.WriteFile(bad, []byte("title\n2 4\n"), 0644))
	_, err = ReadFort14File(bad)
	assert.True(t, errors.Is(err, ErrHeaderCountMismatch))
	assert.Contains(t, err.Error(), "bad.14")

	_, err = ReadFort14File(filepath.Join(dir, "missing.14"))
	assert.Error(t, err)
}
