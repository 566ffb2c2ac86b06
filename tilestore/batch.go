package tilestore

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/tilego/resource"
	"github.com/hupe1980/tilego/tile"
)

const defaultBatchConcurrency = 16

// BatchOptions tunes a batch fetch.
type BatchOptions struct {
	// Concurrency bounds the number of in-flight store reads.
	// Defaults to 16 if <= 0.
	Concurrency int

	// Controller, if set, throttles read bandwidth and accounts fetched
	// payload bytes against the memory budget.
	Controller *resource.Controller
}

// GetBatch fetches the payloads for many tiles in parallel. Tiles missing
// from the store are simply absent from the result; any other error aborts
// the batch.
func GetBatch(ctx context.Context, store Store, ids []tile.OverscaledID, optFns ...func(*BatchOptions)) (map[tile.OverscaledID][]byte, error) {
	opts := BatchOptions{
		Concurrency: defaultBatchConcurrency,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = defaultBatchConcurrency
	}

	var mu sync.Mutex
	result := make(map[tile.OverscaledID][]byte, len(ids))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)

	for _, id := range ids {
		g.Go(func() error {
			data, err := store.Get(ctx, Key(id))
			if err != nil {
				if errors.Is(err, ErrNotFound) {
					return nil
				}
				return err
			}

			if rc := opts.Controller; rc != nil {
				if err := rc.AcquireIO(ctx, len(data)); err != nil {
					return err
				}
			}

			mu.Lock()
			result[id.Wrapped()] = data
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}
