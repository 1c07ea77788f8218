package esfeed_test

import (
	"context"
	"fmt"
	"sync"

	"github.com/kyuff/esfeed"
)

// fakeHead is the head URI of stream "s" for a Client without a base URL.
const fakeHead = "/streams/s"

// fakeFeed is an in-memory graph of pages and events served through a FetcherMock.
type fakeFeed struct {
	mu     sync.Mutex
	pages  map[string]*esfeed.Page
	events map[string]esfeed.Event
}

func newFakeFeed() *fakeFeed {
	return &fakeFeed{
		pages:  make(map[string]*esfeed.Page),
		events: make(map[string]esfeed.Event),
	}
}

// page registers a page. Event types are given oldest first and become events numbered by position.
func (f *fakeFeed) page(uri string, links []esfeed.Link, types ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var entries []esfeed.Entry
	for _, typ := range types {
		number := int64(len(f.events))
		eventURI := fmt.Sprintf("/s/%d", number)
		f.events[eventURI] = esfeed.Event{ID: "id-" + typ, Type: typ, Number: number, URI: eventURI}
		entries = append([]esfeed.Entry{{
			ID:      eventURI,
			Title:   fmt.Sprintf("%d@s", number),
			Summary: typ,
			Links:   esfeed.Links{esfeed.RelAlternate: eventURI},
		}}, entries...)
	}

	f.pages[uri] = esfeed.NewPage(uri, links, entries...)
}

// chain registers count pages of size events each. The head at fakeHead links to the oldest page.
func (f *fakeFeed) chain(count, size int) []string {
	var types []string
	for i := range count {
		var (
			links = []esfeed.Link{}
			batch []string
		)
		if i+1 < count {
			links = append(links, esfeed.Link{Relation: esfeed.RelPrevious, URI: fmt.Sprintf("/s/p%d", i+1)})
		}
		for j := range size {
			batch = append(batch, fmt.Sprintf("e%d", i*size+j))
		}
		f.page(fmt.Sprintf("/s/p%d", i), links, batch...)
		types = append(types, batch...)
	}

	f.page(fakeHead, []esfeed.Link{{Relation: esfeed.RelLast, URI: "/s/p0"}})
	return types
}

func (f *fakeFeed) fetcher() *FetcherMock {
	return &FetcherMock{
		FetchPageFunc: func(ctx context.Context, uri string) (*esfeed.Page, error) {
			f.mu.Lock()
			defer f.mu.Unlock()

			page, ok := f.pages[uri]
			if !ok {
				return nil, &esfeed.FeedError{Op: "page", URI: uri, StatusCode: 404, Err: esfeed.ErrNotFound}
			}
			return page, nil
		},
		FetchEventFunc: func(ctx context.Context, uri string) (esfeed.Event, error) {
			f.mu.Lock()
			defer f.mu.Unlock()

			event, ok := f.events[uri]
			if !ok {
				return esfeed.Event{}, &esfeed.FeedError{Op: "event", URI: uri, StatusCode: 404, Err: esfeed.ErrNotFound}
			}
			return event, nil
		},
	}
}
