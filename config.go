package esfeed

import (
	"context"
	"net/http"
	"time"

	"github.com/kyuff/esfeed/internal/uuid"
)

type Config struct {
	logger           Logger
	httpClient       *http.Client
	fetcher          Fetcher
	pollInterval     time.Duration
	pageQueueSize    int
	eventQueueSize   int
	fetchConcurrency int
	idPolicy         IDPolicy
	newID            func() string
	upgrades         upgrades
}

type Logger interface {
	DebugfCtx(ctx context.Context, template string, args ...any)
	InfofCtx(ctx context.Context, template string, args ...any)
	ErrorfCtx(ctx context.Context, template string, args ...any)
}

func defaultOptions() *Config {
	return applyOptions(&Config{},
		// add default options here
		WithNoopLogger(),
		WithPollInterval(time.Second),
		WithPageQueueSize(5),
		WithEventQueueSize(20),
		WithIDPolicy(IDFromBody),
		WithIDGenerator(uuid.V7),
	)
}

func applyOptions(options *Config, opts ...Option) *Config {
	for _, opt := range opts {
		opt(options)
	}

	return options
}

type readConfig struct {
	limit int
	from  int64
}

type subscribeConfig struct {
	catchUp      bool
	pollInterval time.Duration
}

type publishConfig struct {
	eventID string
}
