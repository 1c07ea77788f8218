package esfeed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	headerAccept      = "Accept"
	headerContentType = "Content-Type"

	mediaTypeEvents = "application/vnd.eventstore.events+json"
	mediaTypeJSON   = "application/json"
)

//go:generate go tool moq -rm -pkg esfeed_test -out fetcher_mock_test.go . Fetcher

// Fetcher reads pages and events from the origin.
// Implementations must not retry; callers decide on retries.
type Fetcher interface {
	// FetchPage reads the page at uri.
	FetchPage(ctx context.Context, uri string) (*Page, error)
	// FetchEvent reads the event body at uri.
	FetchEvent(ctx context.Context, uri string) (Event, error)
}

// HTTPFetcher is the Fetcher used by a Client.
type HTTPFetcher struct {
	client *http.Client
}

var _ Fetcher = (*HTTPFetcher)(nil)

// NewHTTPFetcher creates a Fetcher using the http.Client. A nil client uses http.DefaultClient.
func NewHTTPFetcher(client *http.Client) *HTTPFetcher {
	if client == nil {
		client = http.DefaultClient
	}

	return &HTTPFetcher{client: client}
}

func (f *HTTPFetcher) FetchPage(ctx context.Context, uri string) (*Page, error) {
	body, err := f.get(ctx, "page", uri, mediaTypeEvents)
	if err != nil {
		return nil, err
	}

	page, err := decodePage(uri, body)
	if err != nil {
		return nil, newFeedError("page", uri, 0, "", errors.Join(ErrProtocol, err))
	}

	return page, nil
}

func (f *HTTPFetcher) FetchEvent(ctx context.Context, uri string) (Event, error) {
	body, err := f.get(ctx, "event", uri, mediaTypeJSON)
	if err != nil {
		return Event{}, err
	}

	event, err := decodeEvent(uri, body)
	if err != nil {
		return Event{}, newFeedError("event", uri, 0, "", errors.Join(ErrProtocol, err))
	}

	return event, nil
}

func (f *HTTPFetcher) get(ctx context.Context, op, uri, accept string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, newFeedError(op, uri, 0, "", errors.Join(ErrTransport, err))
	}

	req.Header.Set(headerAccept, accept)

	resp, err := f.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, newFeedError(op, uri, 0, "", errors.Join(ErrTransport, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, newFeedError(op, uri, resp.StatusCode, reasonPhrase(resp), errorFromStatus(resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, newFeedError(op, uri, resp.StatusCode, reasonPhrase(resp), errors.Join(ErrTransport, fmt.Errorf("read body: %w", err)))
	}

	return body, nil
}

// reasonPhrase strips the status code from the status line, "404 Not Found" becomes "Not Found".
func reasonPhrase(resp *http.Response) string {
	_, reason, found := strings.Cut(resp.Status, " ")
	if !found {
		return http.StatusText(resp.StatusCode)
	}

	return reason
}
