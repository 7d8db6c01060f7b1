package engine

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/ivlev/leet2video/internal/config"
)

// RenderBatch renders independent episodes with at most cfg.Workers in flight.
// The first failure cancels the episodes still running.
func RenderBatch(ctx context.Context, cfg *config.Config, paths []string, deps Deps) ([]*Result, error) {
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	results := make([]*Result, len(paths))
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := NewEpisodeProject(cfg, path, deps).Run(ctx)
			deps.Metrics.EpisodeDone(err)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = res
			return nil
		})
	}

	err := g.Wait()
	return results, err
}
