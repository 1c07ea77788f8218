package esfeed_test

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/kyuff/esfeed"
	"github.com/kyuff/esfeed/esfeedtest"
	"github.com/kyuff/esfeed/internal/assert"
	"github.com/kyuff/esfeed/internal/eventassert"
	"github.com/kyuff/esfeed/internal/seqs"
	"github.com/kyuff/esfeed/internal/uuid"
)

func TestClientRead(t *testing.T) {
	var (
		ctx = context.Background()
	)

	t.Run("read from the oldest page to the head", func(t *testing.T) {
		// arrange
		var (
			feed = newFakeFeed()
		)

		feed.page("/s/3", []esfeed.Link{{Relation: esfeed.RelPrevious, URI: fakeHead}}, "e1", "e2")
		feed.page(fakeHead, []esfeed.Link{{Relation: esfeed.RelLast, URI: "/s/3"}}, "e3", "e4")

		var (
			fetcher = feed.fetcher()
			sut     = esfeed.NewClient("", esfeed.WithFetcher(fetcher))
		)

		// act
		got, err := seqs.Collect(sut.Read(ctx, "s"))

		// assert
		assert.NoError(t, err)
		assert.EqualSlice(t, []string{"e1", "e2", "e3", "e4"}, eventassert.Types(got))
		assert.EqualSlice(t, []int64{0, 1, 2, 3}, numbers(got))
		assert.Equal(t, "id-e1", got[0].ID)
		assert.Equal(t, 3, len(fetcher.FetchPageCalls()))
		assert.Equal(t, 4, len(fetcher.FetchEventCalls()))
	})

	t.Run("read a single page stream", func(t *testing.T) {
		// arrange
		var (
			feed = newFakeFeed()
		)

		feed.page(fakeHead, nil, "e1", "e2")

		var (
			sut = esfeed.NewClient("", esfeed.WithFetcher(feed.fetcher()))
		)

		// act
		got, err := seqs.Collect(sut.Read(ctx, "s"))

		// assert
		assert.NoError(t, err)
		assert.EqualSlice(t, []string{"e1", "e2"}, eventassert.Types(got))
	})

	t.Run("read nothing from an empty stream", func(t *testing.T) {
		// arrange
		var (
			feed = newFakeFeed()
		)

		feed.page(fakeHead, nil)

		var (
			fetcher = feed.fetcher()
			sut     = esfeed.NewClient("", esfeed.WithFetcher(fetcher))
		)

		// act
		got, err := seqs.Collect(sut.Read(ctx, "s"))

		// assert
		assert.NoError(t, err)
		assert.Equal(t, 0, len(got))
		assert.Equal(t, 0, len(fetcher.FetchEventCalls()))
	})

	t.Run("keep the order when events load out of order", func(t *testing.T) {
		// arrange
		var (
			feed     = newFakeFeed()
			expected = feed.chain(8, 5)
			fetcher  = feed.fetcher()
			fetch    = fetcher.FetchEventFunc
			sut      = esfeed.NewClient("", esfeed.WithFetcher(fetcher))
		)

		fetcher.FetchEventFunc = func(ctx context.Context, uri string) (esfeed.Event, error) {
			time.Sleep(time.Duration(rand.IntN(2000)) * time.Microsecond)
			return fetch(ctx, uri)
		}

		// act
		got, err := seqs.Collect(sut.Read(ctx, "s"))

		// assert
		assert.NoError(t, err)
		assert.EqualSlice(t, expected, eventassert.Types(got))
	})

	t.Run("stop at the first failing event", func(t *testing.T) {
		// arrange
		var (
			feed    = newFakeFeed()
			_       = feed.chain(4, 3)
			fetcher = feed.fetcher()
			fetch   = fetcher.FetchEventFunc
			failure = errors.New("FAIL")
			sut     = esfeed.NewClient("", esfeed.WithFetcher(fetcher))
		)

		fetcher.FetchEventFunc = func(ctx context.Context, uri string) (esfeed.Event, error) {
			if uri == "/s/7" {
				return esfeed.Event{}, failure
			}
			return fetch(ctx, uri)
		}

		// act
		got, err := seqs.Collect(sut.Read(ctx, "s"))

		// assert
		assert.ErrorIs(t, failure, err)
		assert.LessOrEqual(t, 6, len(got))
		for i, event := range got {
			assert.Equal(t, int64(i), event.Number)
		}
	})

	t.Run("stop at the first failing page", func(t *testing.T) {
		// arrange
		var (
			feed = newFakeFeed()
		)

		feed.page(fakeHead, []esfeed.Link{{Relation: esfeed.RelLast, URI: "/s/p0"}})
		feed.page("/s/p0", []esfeed.Link{{Relation: esfeed.RelPrevious, URI: "/s/missing"}}, "e0")

		var (
			sut = esfeed.NewClient("", esfeed.WithFetcher(feed.fetcher()))
		)

		// act
		_, err := seqs.Collect(sut.Read(ctx, "s"))

		// assert
		assert.ErrorIs(t, esfeed.ErrNotFound, err)
	})

	t.Run("reject a page that is its own previous page", func(t *testing.T) {
		// arrange
		var (
			feed = newFakeFeed()
		)

		feed.page(fakeHead, []esfeed.Link{{Relation: esfeed.RelPrevious, URI: fakeHead}}, "e0")

		var (
			sut = esfeed.NewClient("", esfeed.WithFetcher(feed.fetcher()))
		)

		// act
		_, err := seqs.Collect(sut.Read(ctx, "s"))

		// assert
		assert.ErrorIs(t, esfeed.ErrProtocol, err)
	})

	t.Run("stop after the limit", func(t *testing.T) {
		// arrange
		var (
			feed = newFakeFeed()
			_    = feed.chain(3, 4)
			sut  = esfeed.NewClient("", esfeed.WithFetcher(feed.fetcher()))
		)

		// act
		got, err := seqs.Collect(sut.Read(ctx, "s", esfeed.WithLimit(5)))

		// assert
		assert.NoError(t, err)
		assert.EqualSlice(t, []string{"e0", "e1", "e2", "e3", "e4"}, eventassert.Types(got))
	})

	t.Run("start at an event number", func(t *testing.T) {
		// arrange
		var (
			feed    = newFakeFeed()
			_       = feed.chain(3, 2)
			fetcher = feed.fetcher()
			sut     = esfeed.NewClient("", esfeed.WithFetcher(fetcher))
		)

		// act
		got, err := seqs.Collect(sut.Read(ctx, "s", esfeed.WithStartingFrom(3)))

		// assert
		assert.NoError(t, err)
		assert.EqualSlice(t, []string{"e3", "e4", "e5"}, eventassert.Types(got))
		assert.EqualSlice(t, []int64{3, 4, 5}, numbers(got))
		assert.Equal(t, 3, len(fetcher.FetchEventCalls()))
	})

	t.Run("read a range with a start and a limit", func(t *testing.T) {
		// arrange
		var (
			feed = newFakeFeed()
			_    = feed.chain(4, 3)
			sut  = esfeed.NewClient("", esfeed.WithFetcher(feed.fetcher()))
		)

		// act
		got, err := seqs.Collect(sut.Read(ctx, "s", esfeed.WithStartingFrom(5), esfeed.WithLimit(4)))

		// assert
		assert.NoError(t, err)
		assert.EqualSlice(t, []int64{5, 6, 7, 8}, numbers(got))
	})

	t.Run("read nothing when starting after the newest event", func(t *testing.T) {
		// arrange
		var (
			feed    = newFakeFeed()
			_       = feed.chain(2, 2)
			fetcher = feed.fetcher()
			sut     = esfeed.NewClient("", esfeed.WithFetcher(fetcher))
		)

		// act
		got, err := seqs.Collect(sut.Read(ctx, "s", esfeed.WithStartingFrom(10)))

		// assert
		assert.NoError(t, err)
		assert.Equal(t, 0, len(got))
		assert.Equal(t, 0, len(fetcher.FetchEventCalls()))
	})

	t.Run("treat a head without last link as the oldest page", func(t *testing.T) {
		// arrange
		var (
			feed = newFakeFeed()
		)

		feed.page("/streams/s/3", nil, "e1", "e2")
		feed.page(fakeHead, []esfeed.Link{{Relation: esfeed.RelPrevious, URI: "/streams/s/3"}}, "e3", "e4")

		var (
			sut = esfeed.NewClient("", esfeed.WithFetcher(feed.fetcher()))
		)

		// act
		got, err := seqs.Collect(sut.Read(ctx, "s"))

		// assert
		assert.NoError(t, err)
		assert.EqualSlice(t, []string{"e3", "e4", "e1", "e2"}, eventassert.Types(got))
	})

	t.Run("stop when the consumer breaks", func(t *testing.T) {
		// arrange
		var (
			feed = newFakeFeed()
			_    = feed.chain(10, 10)
			sut  = esfeed.NewClient("", esfeed.WithFetcher(feed.fetcher()),
				esfeed.WithPageQueueSize(1),
				esfeed.WithEventQueueSize(1),
			)
			count = 0
		)

		// act
		for _, err := range sut.Read(ctx, "s") {
			assert.NoError(t, err)
			count++
			if count == 3 {
				break
			}
		}

		// assert
		assert.Equal(t, 3, count)
	})

	t.Run("bound the pages read ahead of a slow consumer", func(t *testing.T) {
		// arrange
		var (
			feed     = newFakeFeed()
			expected = feed.chain(10, 1)
			fetcher  = feed.fetcher()
			fetch    = fetcher.FetchEventFunc
			release  = make(chan struct{})
			sut      = esfeed.NewClient("", esfeed.WithFetcher(fetcher),
				esfeed.WithPageQueueSize(1),
				esfeed.WithEventQueueSize(1),
			)
			result = make(chan []esfeed.Event)
		)

		fetcher.FetchEventFunc = func(ctx context.Context, uri string) (esfeed.Event, error) {
			select {
			case <-release:
			case <-ctx.Done():
				return esfeed.Event{}, ctx.Err()
			}
			return fetch(ctx, uri)
		}

		// act
		go func() {
			got, err := seqs.Collect(sut.Read(ctx, "s"))
			assert.NoError(t, err)
			result <- got
		}()

		time.Sleep(50 * time.Millisecond)
		ahead := len(fetcher.FetchPageCalls())
		close(release)
		got := <-result

		// assert
		// head, the page being loaded, one queued page and one waiting to be queued
		assert.LessOrEqual(t, 4, ahead)
		assert.EqualSlice(t, expected, eventassert.Types(got))
	})

	t.Run("cancel the read with the context", func(t *testing.T) {
		// arrange
		var (
			feed        = newFakeFeed()
			_           = feed.chain(50, 10)
			ctx, cancel = context.WithCancel(context.Background())
			sut         = esfeed.NewClient("", esfeed.WithFetcher(feed.fetcher()))
			err         error
			count       int
		)
		t.Cleanup(cancel)

		// act
		for _, err = range sut.Read(ctx, "s") {
			if err != nil {
				break
			}
			count++
			if count == 2 {
				cancel()
			}
		}

		// assert
		assert.ErrorIs(t, context.Canceled, err)
	})

	t.Run("read from an origin", func(t *testing.T) {
		// arrange
		var (
			server = esfeedtest.NewServer(esfeedtest.WithPageSize(3))
			sut    = esfeed.NewClient(server.URL(), esfeed.WithHTTPClient(server.Client()))
			stream = uuid.V7()
			events []esfeed.NewEvent
		)
		t.Cleanup(server.Close)

		for i := range 10 {
			events = append(events, esfeed.NewEvent{EventID: uuid.V7(), EventType: "Counted", Data: map[string]int{"n": i}})
		}
		assert.NoError(t, server.Append(stream, events...))

		// act
		got, err := seqs.Collect(sut.Read(ctx, stream))

		// assert
		assert.NoError(t, err)
		if assert.Equal(t, len(events), len(got)) {
			for i, event := range got {
				var data struct {
					N int `json:"n"`
				}
				assert.NoError(t, event.Unmarshal(&data))
				assert.Equal(t, i, data.N)
				assert.Equal(t, int64(i), event.Number)
				assert.Equal(t, events[i].EventID, event.ID)
				assert.Equal(t, "Counted", event.Summary)
			}
		}
	})

	t.Run("fail reading a missing stream", func(t *testing.T) {
		// arrange
		var (
			server = esfeedtest.NewServer()
			sut    = esfeed.NewClient(server.URL(), esfeed.WithHTTPClient(server.Client()))
		)
		t.Cleanup(server.Close)

		// act
		_, err := seqs.Collect(sut.Read(ctx, uuid.V7()))

		// assert
		assert.ErrorIs(t, esfeed.ErrNotFound, err)
	})
}

func numbers(events []esfeed.Event) []int64 {
	var result []int64
	for _, event := range events {
		result = append(result, event.Number)
	}

	return result
}
