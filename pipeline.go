package esfeed

import (
	"context"
	"slices"

	"golang.org/x/sync/errgroup"
)

// pipeline replays the history of a stream. A walker stage feeds pages into a bounded
// page queue, a loader stage turns them into events on a bounded event queue, and
// the caller drains the event queue. A full queue stalls the stage feeding it.
type pipeline struct {
	walker     walker
	loader     loader
	pageQueue  int
	eventQueue int
	from       int64
}

// replay yields all events of the stream oldest first. It returns the newest page the
// walker reached, or nil if yield stopped the replay early.
func (p pipeline) replay(ctx context.Context, headURI string, head *Page, yield func(Event) bool) (*Page, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		g, gctx = errgroup.WithContext(ctx)
		pages   = make(chan *Page, p.pageQueue)
		events  = make(chan Event, p.eventQueue)
		tail    *Page
	)

	g.Go(func() error {
		defer close(pages)

		var err error
		tail, err = p.walker.walk(gctx, headURI, head, func(page *Page) error {
			select {
			case pages <- page:
				return nil
			case <-gctx.Done():
				return gctx.Err()
			}
		})
		return err
	})

	g.Go(func() error {
		defer close(events)

		for page := range pages {
			entries := p.skip(page.Entries())
			if len(entries) == 0 {
				continue
			}

			loaded, err := p.loader.load(gctx, entries)
			if err != nil {
				return err
			}

			for _, event := range loaded {
				select {
				case events <- event:
				case <-gctx.Done():
					return gctx.Err()
				}
			}
		}

		return nil
	})

	for event := range events {
		if !yield(event) {
			cancel()
			_ = g.Wait()
			return nil, nil
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return tail, nil
}

// skip drops the entries before the first wanted event number. Entries without a number are kept.
func (p pipeline) skip(entries []Entry) []Entry {
	if p.from <= 0 {
		return entries
	}

	return slices.DeleteFunc(entries, func(entry Entry) bool {
		n := entry.Number()
		return n >= 0 && n < p.from
	})
}
