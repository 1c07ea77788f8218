package esfeed

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/kyuff/esfeed/internal/logger"
)

type Option func(*Config)

func WithLogger(logger Logger) Option {
	return func(opt *Config) {
		opt.logger = logger
	}
}

func WithNoopLogger() Option {
	return WithLogger(logger.Noop{})
}

func WithDefaultSlog() Option {
	return WithSlog(slog.Default())
}

func WithSlog(log *slog.Logger) Option {
	return WithLogger(
		logger.NewSlog(log),
	)
}

func WithZerolog(log zerolog.Logger) Option {
	return WithLogger(
		logger.NewZerolog(log),
	)
}

// WithHTTPClient sets the http.Client used to talk to the origin.
func WithHTTPClient(client *http.Client) Option {
	return func(opt *Config) {
		opt.httpClient = client
	}
}

// WithFetcher replaces the HTTP based Fetcher used for reads.
func WithFetcher(fetcher Fetcher) Option {
	return func(opt *Config) {
		opt.fetcher = fetcher
	}
}

// WithPollInterval is the wait between polls when a subscription is caught up
// or waits for its stream to be created.
func WithPollInterval(d time.Duration) Option {
	return func(opt *Config) {
		opt.pollInterval = d
	}
}

// WithPageQueueSize bounds the pages fetched ahead of the event loading.
func WithPageQueueSize(size int) Option {
	return func(opt *Config) {
		opt.pageQueueSize = max(size, 0)
	}
}

// WithEventQueueSize bounds the events loaded ahead of the consumer.
func WithEventQueueSize(size int) Option {
	return func(opt *Config) {
		opt.eventQueueSize = max(size, 0)
	}
}

// WithFetchConcurrency limits the concurrent event fetches of a page.
// Zero or less fetches all entries of a page at once.
func WithFetchConcurrency(n int) Option {
	return func(opt *Config) {
		opt.fetchConcurrency = n
	}
}

// WithIDPolicy decides how the ID of loaded events is populated.
func WithIDPolicy(policy IDPolicy) Option {
	return func(opt *Config) {
		opt.idPolicy = policy
	}
}

// WithIDGenerator is used to create event ids when publishing events without one.
func WithIDGenerator(newID func() string) Option {
	return func(opt *Config) {
		opt.newID = newID
	}
}

// WithEventUpgrade adds upgrades that run on every event delivered by the Client.
func WithEventUpgrade(upgrades ...EventUpgrade) Option {
	return func(opt *Config) {
		opt.upgrades = append(opt.upgrades, upgrades...)
	}
}

type ReadOption func(*readConfig)

// WithLimit stops a read after n events. Zero means no limit.
func WithLimit(n int) ReadOption {
	return func(cfg *readConfig) {
		cfg.limit = n
	}
}

// WithStartingFrom starts a read at event number n, inclusive.
// The pages before n are still walked, but their events are not loaded.
func WithStartingFrom(n int64) ReadOption {
	return func(cfg *readConfig) {
		cfg.from = n
	}
}

type SubscribeOption func(*subscribeConfig)

// WithCatchUp makes the subscription replay the full history of the stream
// before it delivers new events.
func WithCatchUp() SubscribeOption {
	return func(cfg *subscribeConfig) {
		cfg.catchUp = true
	}
}

// WithSubscribePollInterval overrides the poll interval of the Client for one subscription.
func WithSubscribePollInterval(d time.Duration) SubscribeOption {
	return func(cfg *subscribeConfig) {
		cfg.pollInterval = d
	}
}

type PublishOption func(*publishConfig)

// WithEventID publishes the event with the given id instead of a generated one.
func WithEventID(id string) PublishOption {
	return func(cfg *publishConfig) {
		cfg.eventID = id
	}
}
