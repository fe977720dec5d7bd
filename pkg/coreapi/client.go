package coreapi

import (
	"context"
	"time"
)

// Client is the CORE API client.
type Client interface {
	// Execute performs one operation and decodes the response into the
	// operation's payload type, see DecodeResponse.
	Execute(ctx context.Context, op Operation) (*Response[any], error)

	GetDataProvider(ctx context.Context, id string) (*Response[DataProvider], error)
	GetJournal(ctx context.Context, id string) (*Response[Journal], error)
	GetOutput(ctx context.Context, id string) (*Response[Work], error)
	Discover(ctx context.Context, doi string) (*Response[Discovery], error)

	SearchWorks(ctx context.Context, query SearchQuery) (*Response[SearchResponse[Work]], error)
	SearchOutputs(ctx context.Context, query SearchQuery) (*Response[SearchResponse[Work]], error)
	SearchDataProviders(ctx context.Context, query SearchQuery) (*Response[SearchResponse[DataProvider]], error)
	SearchJournals(ctx context.Context, query SearchQuery) (*Response[SearchResponse[Journal]], error)

	// RateLimitRemaining returns the quota reported by the most recent
	// response that carried one, or nil.
	RateLimitRemaining() *int
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a coreapi.Client.
type Config struct {
	// APIEndpoint: base URL of the service. coreclient.New trims a trailing
	// slash, adds "https://" if no scheme is present, and defaults to
	// "https://api.core.ac.uk/v3" when empty.
	APIEndpoint string

	// APIKey: sent as a Bearer token on every request.
	APIKey string

	// Optional configurations
	// HTTPTimeout: per-attempt HTTP timeout. Prefer context deadlines for
	// bounding a whole call including retries.
	HTTPTimeout time.Duration
	// RetryMax: maximum number of retries for transient failures (429, 502,
	// 503, 504 and connection errors). 401 and 500 are never retried.
	// Negative disables retries; 0 uses the default.
	RetryMax int
	// RetryWaitMin: minimum backoff between retries.
	RetryWaitMin time.Duration
	// RetryWaitMax: maximum backoff between retries.
	RetryWaitMax time.Duration
	// RequestsPerSecond: client-side throttle. 0 disables it.
	RequestsPerSecond float64
	// Debug: enables verbose HTTP request/response logging when a Logger is provided.
	Debug bool
	// Logger: optional structured logger used by the HTTP layer and the client.
	Logger Logger
	// UserAgent: overrides the default User-Agent header sent by the client.
	UserAgent string
	// LogTarget: logs the resolved URL of every call at info level.
	LogTarget bool
	// LogRawResponse: logs every raw response body at debug level.
	LogRawResponse bool
	// Cache: caches GET responses. Nil disables caching.
	Cache *CacheConfig
}
