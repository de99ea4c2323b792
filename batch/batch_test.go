package batch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/oceanmesh/omt/InputParameters"
	"github.com/oceanmesh/omt/boundary"
	"github.com/oceanmesh/omt/readfiles"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const meshTemplate = `TITLE
2 4
1 0.0 0.0 -5.0
2 1.0 0.0 -5.0
3 1.0 1.0 -5.0
4 0.0 1.0 -5.0
1 3 1 2 3
2 3 1 3 4
1
3
3
1
2
3
1
3
3 20
3
4
1
`

func writeMeshes(t *testing.T, titles ...string) (paths []string) {
	t.Helper()
	dir := t.TempDir()
	for _, title := range titles {
		fileName := filepath.Join(dir, title+".14")
		require.NoError(t, os.WriteFile(fileName, []byte(strings.Replace(meshTemplate, "TITLE", title, 1)), 0644))
		paths = append(paths, fileName)
	}
	return
}

func newEngine(t *testing.T) *boundary.Engine {
	t.Helper()
	e, err := boundary.NewEngine(InputParameters.NewBoundaryParameters(), nil)
	require.NoError(t, err)
	return e
}

func TestRunOrdered(t *testing.T) {
	titles := []string{"a", "b", "c", "d", "e", "f", "g"}
	paths := writeMeshes(t, titles...)
	items, err := Run(context.Background(), paths, newEngine(t), Options{Workers: 3})
	require.NoError(t, err)
	require.Len(t, items, len(titles))
	for i, item := range items {
		require.NoError(t, item.Err)
		assert.Equal(t, paths[i], item.Path)
		assert.Equal(t, titles[i], item.Result.Summary.Title)
		assert.Equal(t, 2, item.Result.Summary.Polylines())
	}
}

func TestRunErrors(t *testing.T) {
	paths := writeMeshes(t, "good1", "good2")
	bad := filepath.Join(t.TempDir(), "bad.14")
	require.NoError(t, os.WriteFile(bad, []byte("bad\n2 4\n1 0 0 0\n"), 0644))
	paths = append([]string{paths[0], bad}, paths[1])

	t.Run("KeepGoing", func(t *testing.T) {
		items, err := Run(context.Background(), paths, newEngine(t), Options{Workers: 2, KeepGoing: true})
		require.NoError(t, err)
		assert.NoError(t, items[0].Err)
		assert.True(t, errors.Is(items[1].Err, readfiles.ErrHeaderCountMismatch))
		assert.Nil(t, items[1].Result)
		assert.NoError(t, items[2].Err)
	})
	t.Run("StopOnError", func(t *testing.T) {
		_, err := Run(context.Background(), paths, newEngine(t), Options{Workers: 1})
		assert.True(t, errors.Is(err, readfiles.ErrHeaderCountMismatch))
	})
}

type countingProcessor struct {
	calls atomic.Int32
}

func (cp *countingProcessor) ProcessFile(ctx context.Context, _ string) (*boundary.Result, error) {
	cp.calls.Add(1)
	return nil, errors.New("unreadable")
}

func TestRunCancelsRemainder(t *testing.T) {
	cp := &countingProcessor{}
	paths := []string{"1", "2", "3", "4", "5"}
	items, err := Run(context.Background(), paths, cp, Options{Workers: 1})
	assert.EqualError(t, err, "unreadable")
	assert.Equal(t, int32(1), cp.calls.Load())
	for _, item := range items[1:] {
		assert.ErrorIs(t, item.Err, context.Canceled)
	}
}
