package hydrater

import (
	"context"
	"reflect"
	"time"

	"github.com/kyuff/esfeed"
)

type Config[T esfeed.Handler] struct {
	backoff    func(state T, retries int) time.Duration
	checker    func(state T) bool
	maker      func(ctx context.Context, stream string) (T, error)
	maxRetries int
}

func defaultOptions[T esfeed.Handler]() *Config[T] {
	return applyOptions(&Config[T]{},
		WithLinearBackoff[T](time.Millisecond*100),
		WithChecker(defaultChecker[T]()),
		WithMaker(defaultMaker[T]()),
	)
}

func applyOptions[T esfeed.Handler](opts *Config[T], options ...Option[T]) *Config[T] {
	for _, opt := range options {
		opt(opts)
	}
	return opts
}

type Option[T esfeed.Handler] func(*Config[T])

// WithBackoff allows you to provide a custom backoff function that determines
// the wait time between replays based on the rejected state and the number of retries.
func WithBackoff[T esfeed.Handler](backoff func(T, int) time.Duration) Option[T] {
	return func(o *Config[T]) {
		o.backoff = backoff
	}
}

// WithFixedBackoff waits a fixed amount of time between retries.
func WithFixedBackoff[T esfeed.Handler](d time.Duration) Option[T] {
	return WithBackoff[T](func(_ T, _ int) time.Duration {
		return d
	})
}

// WithLinearBackoff increases the wait time linearly with each retry.
func WithLinearBackoff[T esfeed.Handler](increment time.Duration) Option[T] {
	return WithBackoff[T](func(_ T, retries int) time.Duration {
		return increment * time.Duration(retries)
	})
}

// WithExponentialBackoff doubles the wait time with each retry.
func WithExponentialBackoff[T esfeed.Handler](base time.Duration) Option[T] {
	return WithBackoff[T](func(_ T, retries int) time.Duration {
		return base * time.Duration(1<<retries)
	})
}

// WithChecker decides if a replayed state is ready. A rejected state is replayed again
// after the backoff, e.g. while waiting for an event that is expected to be published.
func WithChecker[T esfeed.Handler](checker func(state T) bool) Option[T] {
	return func(config *Config[T]) {
		config.checker = checker
	}
}

// WithMaker allows you to provide a custom maker function that creates a new instance of the handler.
func WithMaker[T esfeed.Handler](maker func(ctx context.Context, stream string) (T, error)) Option[T] {
	return func(config *Config[T]) {
		config.maker = maker
	}
}

// WithMaxRetries gives up after n replays. Zero retries until the context is done.
func WithMaxRetries[T esfeed.Handler](n int) Option[T] {
	return func(config *Config[T]) {
		config.maxRetries = n
	}
}

func defaultMaker[T any]() func(ctx context.Context, stream string) (T, error) {
	var (
		state     T
		stateType = reflect.TypeOf(state)
	)

	return func(_ context.Context, _ string) (T, error) {
		return reflect.New(stateType.Elem()).Interface().(T), nil
	}
}

func defaultChecker[T esfeed.Handler]() func(state T) bool {
	return func(state T) bool {
		return any(state) != nil
	}
}
