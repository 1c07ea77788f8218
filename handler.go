package esfeed

import "context"

// Handler is code that reacts to the events of a stream.
type Handler interface {
	Handle(ctx context.Context, event Event) error
}

// HandlerFunc allows an inline func to act as a Handler
type HandlerFunc func(ctx context.Context, event Event) error

func (fn HandlerFunc) Handle(ctx context.Context, event Event) error {
	return fn(ctx, event)
}
