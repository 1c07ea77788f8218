package esfeed

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when the origin has no such stream, page or event.
	// A subscription waits for a stream that is not found yet.
	ErrNotFound = errors.New("esfeed: not found")
	// ErrTransport is returned for network failures and non-success responses other than 404.
	ErrTransport = errors.New("esfeed: transport failure")
	// ErrProtocol is returned when a page or event payload is malformed.
	ErrProtocol = errors.New("esfeed: malformed payload")
	// ErrPublishRejected is returned when the origin answers an append with a 4xx status.
	ErrPublishRejected = errors.New("esfeed: publish rejected")
	// ErrClosed is returned by a Subscription that has been closed.
	ErrClosed = errors.New("esfeed: subscription closed")
)

// FeedError describes a failed request against the origin.
// Use errors.Is with the sentinel errors to classify it.
type FeedError struct {
	// Op is the failed operation: "page", "event" or "publish".
	Op string
	// URI that was requested.
	URI string
	// StatusCode is the HTTP status, or 0 if no response was received.
	StatusCode int
	// Reason is the reason phrase of the response, if any.
	Reason string
	// Err is one of the sentinel errors, possibly joined with the cause.
	Err error
}

func (e *FeedError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("esfeed: %s %s failed with status %d %s: %v", e.Op, e.URI, e.StatusCode, e.Reason, e.Err)
	}
	return fmt.Sprintf("esfeed: %s %s failed: %v", e.Op, e.URI, e.Err)
}

func (e *FeedError) Unwrap() error {
	return e.Err
}

func newFeedError(op, uri string, statusCode int, reason string, err error) *FeedError {
	return &FeedError{
		Op:         op,
		URI:        uri,
		StatusCode: statusCode,
		Reason:     reason,
		Err:        err,
	}
}

// errorFromStatus classifies a non-success status of a read.
func errorFromStatus(statusCode int) error {
	if statusCode == 404 {
		return ErrNotFound
	}

	return ErrTransport
}
