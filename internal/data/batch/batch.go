// Package batch runs independent fetch tasks with bounded concurrency and
// retries failures with halved concurrency, preserving result order by the
// original task index.
package batch

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	DefaultConcurrency = 16
	DefaultRetries     = 3
	DefaultBackoff     = time.Second
)

// Options tunes one Execute call. Zero values take the defaults above.
type Options struct {
	Concurrency int
	Retries     int
	Backoff     time.Duration
}

func (o Options) withDefaults() Options {
	if o.Concurrency <= 0 {
		o.Concurrency = DefaultConcurrency
	}
	if o.Retries <= 0 {
		o.Retries = DefaultRetries
	}
	if o.Backoff <= 0 {
		o.Backoff = DefaultBackoff
	}
	return o
}

// Result is the per-index outcome of a task. A nil Err marks success.
type Result[T any] struct {
	Value T
	Err   error
}

func (r Result[T]) Fulfilled() bool {
	return r.Err == nil
}

// TaskFunc produces the result for one task index.
type TaskFunc[T any] func(ctx context.Context, index int) (T, error)

// Execute runs tasks [0, total) and returns one Result per index, in index
// order. Individual task failures never abort the batch; after all windows
// complete, failed indices are retried with halved concurrency until the
// retry budget runs out. Remaining failures stay recorded at their index.
func Execute[T any](ctx context.Context, total int, fn TaskFunc[T], opts Options) []Result[T] {
	opts = opts.withDefaults()
	results := make([]Result[T], total)

	indices := make([]int, total)
	for i := range indices {
		indices[i] = i
	}

	run(ctx, indices, results, fn, opts.Concurrency, opts.Retries, opts.Backoff)
	return results
}

func run[T any](ctx context.Context, indices []int, results []Result[T], fn TaskFunc[T], concurrency, retries int, backoff time.Duration) {
	// Consecutive windows of at most `concurrency` tasks; each window
	// finishes fully before the next starts.
	for start := 0; start < len(indices); start += concurrency {
		if err := ctx.Err(); err != nil {
			for _, i := range indices[start:] {
				results[i] = Result[T]{Err: err}
			}
			return
		}

		end := min(start+concurrency, len(indices))
		var wg sync.WaitGroup
		for _, idx := range indices[start:end] {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				v, err := fn(ctx, i)
				results[i] = Result[T]{Value: v, Err: err}
			}(idx)
		}
		wg.Wait()
	}

	var failed []int
	for _, i := range indices {
		if results[i].Err != nil {
			failed = append(failed, i)
		}
	}
	if len(failed) == 0 || retries <= 0 {
		return
	}

	select {
	case <-ctx.Done():
		return
	case <-time.After(backoff):
	}

	// Halving concurrency reduces the contention that likely caused the
	// failures on a rate-limited backend.
	half := max(concurrency/2, 1)
	log.Debug().
		Int("failed", len(failed)).
		Int("concurrency", half).
		Int("retriesLeft", retries-1).
		Msg("retrying failed batch tasks")
	run(ctx, failed, results, fn, half, retries-1, backoff)
}
