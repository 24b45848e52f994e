package batch

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/Kamar-Folarin/repo-insights/internal/config"
)

// Processor runs per-item work with a bounded number of concurrent workers.
type Processor struct {
	config *config.BatchConfig
}

// NewProcessor creates a new batch processor
func NewProcessor(cfg *config.BatchConfig) *Processor {
	if cfg == nil {
		cfg = config.DefaultBatchConfig()
	}
	return &Processor{config: cfg}
}

// Workers returns the concurrency bound, never less than one.
func (p *Processor) Workers() int {
	if p == nil || p.config == nil || p.config.Workers < 1 {
		return 1
	}
	return p.config.Workers
}

// Config returns the processor's batch configuration.
func (p *Processor) Config() *config.BatchConfig {
	return p.config
}

// Run calls fn for every item and returns one Result per item in input
// order. A failing item never stops the others. Once ctx is done, items
// that have not started fail with the context error.
func Run[In, Out any](ctx context.Context, p *Processor, items []In, fn func(context.Context, In) (Out, error)) []Result[Out] {
	results := make([]Result[Out], len(items))
	if len(items) == 0 {
		return results
	}

	var g errgroup.Group
	g.SetLimit(p.Workers())
	for i, item := range items {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = Result[Out]{Err: err}
				return nil
			}
			v, err := fn(ctx, item)
			results[i] = Result[Out]{Value: v, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// Prefix returns at most limit leading items. A non-positive limit keeps
// everything.
func Prefix[T any](items []T, limit int) []T {
	if limit <= 0 || len(items) <= limit {
		return items
	}
	return items[:limit]
}
