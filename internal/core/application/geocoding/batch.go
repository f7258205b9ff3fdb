package geocoding

import (
	"context"
	"sync"
	"time"

	"dispatch/internal/core/domain/model/kernel"

	"golang.org/x/sync/errgroup"
)

const (
	// DefaultConcurrency is the number of workers of BatchResolve.
	DefaultConcurrency = 4

	// DefaultPause is the per-worker wait after each item. It keeps the
	// request rate under the limit of public geocoders.
	DefaultPause = 120 * time.Millisecond

	// NoPause disables the per-worker wait.
	NoPause time.Duration = -1
)

// AddressResolver resolves one address. *Resolver implements it.
type AddressResolver interface {
	Resolve(ctx context.Context, address string) (kernel.Coordinates, bool)
}

// BatchOptions tunes BatchResolve.
type BatchOptions struct {
	// Concurrency is the number of workers; values below 1 mean DefaultConcurrency.
	Concurrency int

	// Pause is the wait of a worker after each item; zero means DefaultPause,
	// negative (NoPause) means none.
	Pause time.Duration
}

// DefaultBatchOptions returns DefaultConcurrency workers with DefaultPause.
func DefaultBatchOptions() BatchOptions {
	return BatchOptions{Concurrency: DefaultConcurrency, Pause: DefaultPause}
}

// Resolved pairs an item with the outcome of resolving its address.
type Resolved[T any] struct {
	Item        T
	Coordinates kernel.Coordinates
	OK          bool
}

// BatchResolve resolves the address of every item with a bounded pool of workers.
//
// Workers share one queue. Each takes an item, resolves addressOf(item), records
// the outcome, and pauses for opts.Pause before taking the next one. The pause is
// per worker, so the pool issues at most opts.Concurrency lookups at a time.
//
// The result holds one entry per item in completion order, not input order;
// callers correlate by item identity.
//
// If ctx is cancelled, workers stop taking items and BatchResolve returns
// ctx.Err() with no results; partial work is discarded.
//
// Example:
//
//	resolved, err := geocoding.BatchResolve(ctx, resolver, drivers,
//	    (*driver.Driver).FullAddress, geocoding.DefaultBatchOptions())
func BatchResolve[T any](
	ctx context.Context,
	resolver AddressResolver,
	items []T,
	addressOf func(T) string,
	opts BatchOptions,
) ([]Resolved[T], error) {
	if opts.Concurrency < 1 {
		opts.Concurrency = DefaultConcurrency
	}
	if opts.Pause == 0 {
		opts.Pause = DefaultPause
	}

	queue := make(chan T, len(items))
	for _, item := range items {
		queue <- item
	}
	close(queue)

	var (
		mu  sync.Mutex
		out = make([]Resolved[T], 0, len(items))
	)

	g, gctx := errgroup.WithContext(ctx)
	for range min(opts.Concurrency, max(len(items), 1)) {
		g.Go(func() error {
			for item := range queue {
				if err := gctx.Err(); err != nil {
					return err
				}

				coords, ok := resolver.Resolve(gctx, addressOf(item))

				mu.Lock()
				out = append(out, Resolved[T]{Item: item, Coordinates: coords, OK: ok})
				mu.Unlock()

				if err := pause(gctx, opts.Pause); err != nil {
					return err
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return out, nil
}

func pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
