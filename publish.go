package esfeed

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// NewEvent is an event to append to a stream.
type NewEvent struct {
	// EventID is generated when empty.
	EventID   string `json:"eventId"`
	EventType string `json:"eventType"`
	Data      any    `json:"data"`
}

// PublishEvent appends a single event to the stream.
func (c *Client) PublishEvent(ctx context.Context, stream, eventType string, data any, opts ...PublishOption) error {
	cfg := &publishConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	return c.Publish(ctx, stream, NewEvent{
		EventID:   cfg.eventID,
		EventType: eventType,
		Data:      data,
	})
}

// Publish appends the events to the stream in the given order.
// A 4xx answer fails with ErrPublishRejected and the reason given by the origin.
func (c *Client) Publish(ctx context.Context, stream string, events ...NewEvent) error {
	if len(events) == 0 {
		return nil
	}

	var (
		uri   = c.HeadURI(stream)
		batch = make([]NewEvent, len(events))
	)

	for i, event := range events {
		if event.EventType == "" {
			return newFeedError("publish", uri, 0, "", errors.Join(ErrPublishRejected, fmt.Errorf("event %d has no type", i)))
		}

		if event.EventID == "" {
			event.EventID = c.cfg.newID()
		}

		batch[i] = event
	}

	body, err := json.Marshal(batch)
	if err != nil {
		return newFeedError("publish", uri, 0, "", fmt.Errorf("json marshal: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uri, bytes.NewReader(body))
	if err != nil {
		return newFeedError("publish", uri, 0, "", errors.Join(ErrTransport, err))
	}

	req.Header.Set(headerContentType, mediaTypeEvents)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return newFeedError("publish", uri, 0, "", errors.Join(ErrTransport, err))
	}
	defer resp.Body.Close()

	_, _ = io.Copy(io.Discard, resp.Body)

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		c.cfg.logger.DebugfCtx(ctx, "[esfeed] published %d events to %s", len(batch), stream)
		return nil
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return newFeedError("publish", uri, resp.StatusCode, reasonPhrase(resp), ErrPublishRejected)
	default:
		return newFeedError("publish", uri, resp.StatusCode, reasonPhrase(resp), ErrTransport)
	}
}
