package batch

import (
	"context"
	"runtime"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/resume-parser/internal/resume"
)

// Parser is the part of the parsing service used by the batch driver.
type Parser interface {
	ParseFile(ctx context.Context, path string) (resume.Record, error)
}

// Run parses paths with at most workers concurrent sessions; workers <= 0
// means one per CPU. A failing file is recorded in its result and does not
// stop the others. Results keep the order of paths. Only cancellation of
// ctx is returned as an error.
func Run(ctx context.Context, p Parser, paths []string, workers int, logger *zap.Logger) (*Results, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := &Results{Items: make([]*Result, len(paths))}
	started := time.Now()

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, path := range paths {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}

			record, err := p.ParseFile(gCtx, path)
			if err != nil {
				logger.Warn("resume parsing failed", zap.String("document", path), zap.Error(err))
				results.Items[i] = &Result{Path: path, Err: err, Error: err.Error()}
				return nil
			}

			results.Items[i] = &Result{Path: path, Record: &record}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	logger.Info("batch completed",
		zap.Int("documents", results.Len()),
		zap.Int("failed", len(results.Failed())),
		zap.Int("workers", workers),
		zap.Duration("elapsed", time.Since(started)),
	)

	return results, nil
}
