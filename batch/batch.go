package batch

import (
	"context"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/oceanmesh/omt/boundary"
)

// Processor runs one boundary pass over a fort.14 file, *boundary.Engine satisfies it
type Processor interface {
	ProcessFile(ctx context.Context, fileName string) (*boundary.Result, error)
}

type Item struct {
	Path   string
	Result *boundary.Result
	Err    error
}

type Options struct {
	Workers   int  // <= 0 selects runtime.NumCPU()
	KeepGoing bool // record per-file errors instead of cancelling the batch
	Logger    *zap.Logger
}

/*
Run processes every path concurrently, items come back in the order of paths. Without
KeepGoing the first failure cancels the files not yet started and is returned; items that were
never processed keep a nil Result and the cancellation error.
*/
func Run(ctx context.Context, paths []string, p Processor, opts Options) (items []Item, err error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	items = make([]Item, len(paths))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for i, path := range paths {
		i, path := i, path
		items[i].Path = path
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				items[i].Err = err
				return err
			}
			res, err := p.ProcessFile(egCtx, path)
			items[i].Result, items[i].Err = res, err
			if err != nil {
				logger.Warn("mesh failed", zap.String("file", path), zap.Error(err))
				if !opts.KeepGoing {
					return err
				}
				return nil
			}
			logger.Debug("mesh processed", zap.String("file", path),
				zap.Int("polylines", res.Summary.Polylines()))
			return nil
		})
	}
	err = eg.Wait()
	return
}
