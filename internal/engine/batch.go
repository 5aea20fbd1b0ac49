package engine

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/scrypster/navigator/pkg/types"
)

// BatchResult is the outcome of one request in a batch.
type BatchResult struct {
	Request Request
	Record  *types.BriefingRecord
	Err     error
}

// BriefMany runs independent requests concurrently, at most limit at a
// time. One failing request does not stop the others. Results are in
// request order.
func (p *BriefingPipeline) BriefMany(ctx context.Context, reqs []Request, limit int) []BatchResult {
	results := make([]BatchResult, len(reqs))
	if limit <= 0 {
		limit = 1
	}

	var g errgroup.Group
	g.SetLimit(limit)
	for i, req := range reqs {
		g.Go(func() error {
			record, err := p.Run(ctx, req)
			results[i] = BatchResult{Request: req, Record: record, Err: err}
			return nil
		})
	}
	_ = g.Wait()
	return results
}
