package reports

import (
	"context"

	"golang.org/x/sync/errgroup"
)

const maxParallelPages = 4

// loadPages fetches pages 1..total-1 concurrently, preserving page order in
// the returned slice.
func (a *Adapter) loadPages(ctx context.Context, kind Kind, size, total int) ([]Result, error) {
	results := make([]Result, total-1)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelPages)
	for page := 1; page < total; page++ {
		page := page
		g.Go(func() error {
			res, err := a.Load(gctx, kind, page, size)
			if err != nil {
				return err
			}
			results[page-1] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
