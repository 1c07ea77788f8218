package hydrater

import (
	"context"
	"fmt"
	"time"

	"github.com/kyuff/esfeed"
)

//go:generate go tool moq -rm -pkg hydrater_test -out projector_mock_test.go . Projector

// Projector replays a stream into a handler. It is implemented by *esfeed.Client.
type Projector interface {
	Project(ctx context.Context, stream string, handler esfeed.Handler) error
}

var _ Projector = (*esfeed.Client)(nil)

// Hydrater builds a state of type T from the full history of a stream. It replays
// the stream into a fresh state until the state is accepted by the checker.
type Hydrater[T esfeed.Handler] struct {
	projector Projector
	cfg       *Config[T]
}

func New[T esfeed.Handler](projector Projector, opts ...Option[T]) *Hydrater[T] {
	return &Hydrater[T]{
		projector: projector,
		cfg: applyOptions(
			defaultOptions[T](),
			opts...,
		),
	}
}

func (r *Hydrater[T]) Hydrate(ctx context.Context, stream string) (T, error) {
	var empty T
	for retries := 0; ; retries++ {
		state, err := r.cfg.maker(ctx, stream)
		if err != nil {
			return empty, fmt.Errorf("making state for %s: %w", stream, err)
		}

		err = r.projector.Project(ctx, stream, state)
		if err != nil {
			return empty, err
		}

		if r.cfg.checker(state) {
			return state, nil
		}

		if r.cfg.maxRetries > 0 && retries+1 >= r.cfg.maxRetries {
			return empty, fmt.Errorf("state of %s not ready after %d attempts", stream, retries+1)
		}

		timer := time.NewTimer(r.cfg.backoff(state, retries+1))
		select {
		case <-ctx.Done():
			timer.Stop()
			return empty, ctx.Err()
		case <-timer.C:
		}
	}
}
