package esfeed

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// loader fetches the events behind a list of entries.
type loader struct {
	fetcher Fetcher
	policy  IDPolicy
	limit   int
}

// load fetches all entries concurrently and returns the events in the order of entries.
// The first failure cancels the remaining fetches and fails the whole load.
func (l loader) load(ctx context.Context, entries []Entry) ([]Event, error) {
	if len(entries) == 0 {
		return nil, nil
	}

	var (
		events  = make([]Event, len(entries))
		g, gctx = errgroup.WithContext(ctx)
	)

	if l.limit > 0 {
		g.SetLimit(l.limit)
	}

	for i, entry := range entries {
		g.Go(func() error {
			event, err := l.fetcher.FetchEvent(gctx, entry.Alternate())
			if err != nil {
				return err
			}

			events[i] = l.policy.resolve(entry, event)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return events, nil
}
