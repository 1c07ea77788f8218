package esfeed

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"net/http"
	"net/url"
	"strings"
)

// Client reads and appends events on the streams of an origin.
// It is safe for concurrent use.
type Client struct {
	baseURL    string
	cfg        *Config
	httpClient *http.Client
	fetcher    Fetcher
	walker     walker
	loader     loader
}

// NewClient creates a Client for the origin at baseURL, e.g. "http://127.0.0.1:2113".
func NewClient(baseURL string, opts ...Option) *Client {
	cfg := applyOptions(defaultOptions(), opts...)

	httpClient := cfg.httpClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	fetcher := cfg.fetcher
	if fetcher == nil {
		fetcher = NewHTTPFetcher(httpClient)
	}

	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		cfg:        cfg,
		httpClient: httpClient,
		fetcher:    fetcher,
		walker:     walker{fetcher: fetcher},
		loader: loader{
			fetcher: fetcher,
			policy:  cfg.idPolicy,
			limit:   cfg.fetchConcurrency,
		},
	}
}

// BaseURL builds the base URL of an origin from its host and port.
func BaseURL(host string, port int, secure bool) string {
	scheme := "http"
	if secure {
		scheme = "https"
	}

	return fmt.Sprintf("%s://%s:%d", scheme, host, port)
}

// HeadURI is the URI of the head page of the stream.
func (c *Client) HeadURI(stream string) string {
	return c.baseURL + "/streams/" + url.PathEscape(stream)
}

// Head fetches the head page of the stream.
func (c *Client) Head(ctx context.Context, stream string) (*Page, error) {
	return c.fetcher.FetchPage(ctx, c.HeadURI(stream))
}

// Page fetches the page at uri, typically a link of another page.
func (c *Client) Page(ctx context.Context, uri string) (*Page, error) {
	return c.fetcher.FetchPage(ctx, uri)
}

func (c *Client) pipeline() pipeline {
	return pipeline{
		walker:     c.walker,
		loader:     c.loader,
		pageQueue:  c.cfg.pageQueueSize,
		eventQueue: c.cfg.eventQueueSize,
	}
}

// Read returns all events of the stream in the order they were appended.
// The sequence stops at the first error, which is yielded as the last element.
func (c *Client) Read(ctx context.Context, stream string, opts ...ReadOption) iter.Seq2[Event, error] {
	cfg := &readConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	p := c.pipeline()
	p.from = cfg.from

	replayed := func(yield func(Event, error) bool) {
		_, err := p.replay(ctx, c.HeadURI(stream), nil, func(event Event) bool {
			return yield(event, nil)
		})
		if err != nil {
			c.cfg.logger.ErrorfCtx(ctx, "[esfeed] read %s failed: %s", stream, err)
			yield(Event{}, err)
		}
	}

	return func(yield func(Event, error) bool) {
		var count = 0
		for event, err := range c.cfg.upgrades.apply(ctx, replayed) {
			if !yield(event, err) || err != nil {
				return
			}

			count++
			if cfg.limit > 0 && count >= cfg.limit {
				return
			}
		}
	}
}

// Project passes all events of the stream to the handler in order.
// It stops at the first error of the read or of the handler.
func (c *Client) Project(ctx context.Context, stream string, handler Handler) error {
	for event, err := range c.Read(ctx, stream) {
		if err != nil {
			return err
		}

		if err := handler.Handle(ctx, event); err != nil {
			return fmt.Errorf("handle event %d of %s: %w", event.Number, stream, err)
		}
	}

	return nil
}

// Subscribe starts polling the stream for new events. If the stream does not exist yet
// the subscription waits for it. The Subscription must be closed.
func (c *Client) Subscribe(ctx context.Context, stream string, opts ...SubscribeOption) *Subscription {
	cfg := &subscribeConfig{
		pollInterval: c.cfg.pollInterval,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	c.cfg.logger.InfofCtx(ctx, "[esfeed] subscribing to %s (catch-up %t)", stream, cfg.catchUp)

	return newSubscription(ctx, c.cfg.eventQueueSize, func(ctx context.Context, emit func(context.Context, Event) error) error {
		s := &subscriber{
			fetcher:  c.fetcher,
			loader:   c.loader,
			pipeline: c.pipeline(),
			log:      c.cfg.logger,
			interval: cfg.pollInterval,
			headURI:  c.HeadURI(stream),
			catchUp:  cfg.catchUp,
			emit: func(ctx context.Context, event Event) error {
				return c.cfg.upgrades.each(ctx, event, func(event Event) error {
					return emit(ctx, event)
				})
			},
		}

		err := s.run(ctx)
		if err != nil && !errors.Is(err, context.Canceled) {
			c.cfg.logger.ErrorfCtx(ctx, "[esfeed] subscription to %s stopped: %s", stream, err)
		}

		return err
	})
}
