package esfeed

import (
	"context"
	"errors"
	"fmt"
)

// walker traverses a stream from its oldest page to its newest page.
type walker struct {
	fetcher Fetcher
}

// walk emits the pages of the stream oldest first. It starts at head, fetching it from
// headURI if head is nil, and stops at the first page without a previous link.
// Pages without entries are not emitted. The last page reached is returned.
func (w walker) walk(ctx context.Context, headURI string, head *Page, emit func(page *Page) error) (*Page, error) {
	var err error
	if head == nil {
		head, err = w.fetcher.FetchPage(ctx, headURI)
		if err != nil {
			return nil, err
		}
	}

	page := head
	if last, ok := head.Links.Get(RelLast); ok {
		page, err = w.fetcher.FetchPage(ctx, last)
		if err != nil {
			return nil, fmt.Errorf("fetch oldest page: %w", err)
		}
	}

	for {
		if page.Len() > 0 {
			if err := emit(page); err != nil {
				return nil, err
			}
		}

		previous, ok := page.Links.Get(RelPrevious)
		if !ok {
			return page, nil
		}

		if previous == page.URI {
			return nil, newFeedError("page", page.URI, 0, "", errors.Join(ErrProtocol, errors.New("page links to itself as previous")))
		}

		page, err = w.fetcher.FetchPage(ctx, previous)
		if err != nil {
			return nil, err
		}
	}
}
