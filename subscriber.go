package esfeed

import (
	"context"
	"errors"
	"time"
)

// cursor is the page a subscriber follows and how many of its entries were emitted.
type cursor struct {
	uri  string
	seen int
}

// subscriber polls a stream for new events. It first waits for the stream to exist,
// then follows the previous links of the pages forever.
type subscriber struct {
	fetcher  Fetcher
	loader   loader
	pipeline pipeline
	log      Logger
	interval time.Duration
	headURI  string
	catchUp  bool
	emit     func(ctx context.Context, event Event) error
}

// run blocks until ctx is done or a fatal error happens.
func (s *subscriber) run(ctx context.Context) error {
	head, err := s.awaitStream(ctx)
	if err != nil {
		return err
	}

	var at cursor
	if s.catchUp {
		var emitErr error
		tail, err := s.pipeline.replay(ctx, s.headURI, head, func(event Event) bool {
			emitErr = s.emit(ctx, event)
			return emitErr == nil
		})
		if err != nil {
			return err
		}
		if tail == nil {
			return emitErr
		}

		at = cursor{uri: tail.Self(), seen: tail.Len()}
		s.log.DebugfCtx(ctx, "[esfeed] replayed %s, following from %s", s.headURI, at.uri)
	} else {
		at = anchorAtHead(head)
		s.log.DebugfCtx(ctx, "[esfeed] following %s from %s", s.headURI, at.uri)
	}

	return s.follow(ctx, at)
}

// anchorAtHead is the cursor for a subscription that only wants events appended from now.
func anchorAtHead(head *Page) cursor {
	if previous, ok := head.Links.Get(RelPrevious); ok {
		return cursor{uri: previous}
	}

	return cursor{uri: head.Self(), seen: head.Len()}
}

// awaitStream fetches the head of the stream, waiting for it while it is not found.
func (s *subscriber) awaitStream(ctx context.Context) (*Page, error) {
	for attempt := 1; ; attempt++ {
		head, err := s.fetcher.FetchPage(ctx, s.headURI)
		if err == nil {
			return head, nil
		}

		if !errors.Is(err, ErrNotFound) {
			return nil, err
		}

		s.log.DebugfCtx(ctx, "[esfeed] stream %s not found on attempt %d, retrying in %s", s.headURI, attempt, s.interval)
		if err := sleep(ctx, s.interval); err != nil {
			return nil, err
		}
	}
}

func (s *subscriber) follow(ctx context.Context, at cursor) error {
	for {
		page, err := s.fetcher.FetchPage(ctx, at.uri)
		if err != nil {
			return err
		}

		entries := page.Entries()
		if len(entries) > at.seen {
			events, err := s.loader.load(ctx, entries[at.seen:])
			if err != nil {
				return err
			}

			for _, event := range events {
				if err := s.emit(ctx, event); err != nil {
					return err
				}
			}

			at.seen = len(entries)
		}

		if previous, ok := page.Links.Get(RelPrevious); ok && previous != at.uri {
			at = cursor{uri: previous}
			continue
		}

		if err := sleep(ctx, s.interval); err != nil {
			return err
		}
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
