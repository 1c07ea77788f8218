package esfeed

import (
	"context"
	"errors"
	"iter"
	"sync"
)

// Subscription delivers the events of a stream as they are appended.
// It runs until Close is called, its context is done or a fatal error occurs.
type Subscription struct {
	events chan Event
	done   chan struct{}
	cancel context.CancelFunc

	mu     sync.Mutex
	err    error
	closed bool
}

func newSubscription(ctx context.Context, queue int, run func(ctx context.Context, emit func(context.Context, Event) error) error) *Subscription {
	ctx, cancel := context.WithCancel(ctx)
	sub := &Subscription{
		events: make(chan Event, queue),
		done:   make(chan struct{}),
		cancel: cancel,
	}

	go func() {
		defer close(sub.done)
		defer close(sub.events)
		defer cancel()

		err := run(ctx, sub.emit)

		sub.mu.Lock()
		defer sub.mu.Unlock()
		if sub.closed && errors.Is(err, context.Canceled) {
			err = nil
		}
		sub.err = err
	}()

	return sub
}

func (s *Subscription) emit(ctx context.Context, event Event) error {
	select {
	case s.events <- event:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Events is closed when the subscription stops. Check Err afterwards.
func (s *Subscription) Events() <-chan Event {
	return s.events
}

// Err returns the error that stopped the subscription.
// It is nil while the subscription runs and after a Close.
func (s *Subscription) Err() error {
	select {
	case <-s.done:
	default:
		return nil
	}

	return s.result()
}

// result waits for the subscription to stop and returns its error.
func (s *Subscription) result() error {
	<-s.done

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Done is closed when the subscription has stopped.
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}

// Close stops the subscription and waits for it to release its resources.
func (s *Subscription) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	s.cancel()
	<-s.done
	return nil
}

// All returns the events as an iter.Seq2. The sequence ends with the error that
// stopped the subscription, if any. Breaking out of the loop closes the Subscription.
func (s *Subscription) All() iter.Seq2[Event, error] {
	return func(yield func(Event, error) bool) {
		for event := range s.events {
			if !yield(event, nil) {
				_ = s.Close()
				return
			}
		}

		if err := s.result(); err != nil {
			yield(Event{}, err)
		}
	}
}

// Next blocks until the next event. It returns ErrClosed once the subscription
// stopped without an error.
func (s *Subscription) Next(ctx context.Context) (Event, error) {
	select {
	case <-ctx.Done():
		return Event{}, ctx.Err()
	case event, ok := <-s.events:
		if ok {
			return event, nil
		}
	}

	if err := s.result(); err != nil {
		return Event{}, err
	}

	return Event{}, ErrClosed
}
