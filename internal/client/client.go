package client

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/VakeDomen/core-api-client/internal/constants"
	corehttp "github.com/VakeDomen/core-api-client/internal/http"
	"github.com/VakeDomen/core-api-client/pkg/coreapi"
)

// Client implements the coreapi.Client interface.
type Client struct {
	httpClient     *corehttp.Client
	logger         coreapi.Logger
	logTarget      bool
	logRawResponse bool
	cache          coreapi.Cache
	cacheTTL       time.Duration

	mu                 sync.RWMutex
	rateLimitRemaining *int
}

// rawResponse is a transport response, or a cached one replayed as such.
type rawResponse struct {
	statusCode int
	header     http.Header
	body       []byte
	cached     bool
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *coreapi.Config) []corehttp.Option {
	var httpOpts []corehttp.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, corehttp.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, corehttp.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, corehttp.WithUserAgent(config.UserAgent))
	}

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, corehttp.WithTimeout(config.HTTPTimeout))
	}

	if config.RetryMax != 0 || config.RetryWaitMin > 0 || config.RetryWaitMax > 0 {
		retryMax := config.RetryMax
		if retryMax == 0 {
			retryMax = constants.DefaultRetryMax
		}

		httpOpts = append(httpOpts, corehttp.WithRetryConfig(retryMax, config.RetryWaitMin, config.RetryWaitMax))
	}

	if config.RequestsPerSecond > 0 {
		httpOpts = append(httpOpts, corehttp.WithRateLimit(config.RequestsPerSecond, 1))
	}

	return httpOpts
}

// New creates a new CORE API client.
func New(ctx context.Context, config *coreapi.Config) (*Client, error) {
	if config == nil {
		return nil, coreapi.ErrConfigRequired
	}

	if config.APIEndpoint == "" {
		return nil, coreapi.ErrAPIEndpointRequired
	}

	err := ctx.Err()
	if err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}

	httpClient := corehttp.NewClient(config.APIEndpoint, config.APIKey, createHTTPClientOptions(config)...)

	client := &Client{
		httpClient:     httpClient,
		logger:         config.Logger,
		logTarget:      config.LogTarget,
		logRawResponse: config.LogRawResponse,
	}

	if client.logger == nil {
		client.logger = nopLogger{}
	}

	if config.Cache != nil {
		cache, err := coreapi.NewCacheFromConfig(config.Cache)
		if err != nil {
			return nil, fmt.Errorf("creating response cache: %w", err)
		}

		client.cache = cache
		client.cacheTTL = config.Cache.TTL()
	}

	return client, nil
}

// Execute implements coreapi.Client.Execute.
func (c *Client) Execute(ctx context.Context, op coreapi.Operation) (*coreapi.Response[any], error) {
	if op == nil {
		return nil, coreapi.ErrUnknownOperation
	}

	desc, raw, err := c.send(ctx, op)
	if err != nil {
		return nil, fmt.Errorf("executing %s: %w", op.Kind(), err)
	}

	resp, err := coreapi.DecodeResponse(raw.statusCode, raw.header, bytes.NewReader(raw.body), op)
	if err != nil {
		return nil, fmt.Errorf("executing %s: %w", op.Kind(), err)
	}

	c.recordRateLimit(raw, resp.RateLimitRemaining)
	c.remember(ctx, desc, raw)

	return resp, nil
}

// execute is the typed counterpart of Execute.
func execute[T any](ctx context.Context, c *Client, op coreapi.Operation, action string) (*coreapi.Response[T], error) {
	desc, raw, err := c.send(ctx, op)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", action, err)
	}

	resp, err := coreapi.Decode[T](raw.statusCode, raw.header, bytes.NewReader(raw.body))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", action, err)
	}

	c.recordRateLimit(raw, resp.RateLimitRemaining)
	c.remember(ctx, desc, raw)

	return resp, nil
}

// GetDataProvider implements coreapi.Client.GetDataProvider.
func (c *Client) GetDataProvider(ctx context.Context, id string) (*coreapi.Response[coreapi.DataProvider], error) {
	op := coreapi.FetchByID{Entity: coreapi.DataProviderKind, ID: id}

	return execute[coreapi.DataProvider](ctx, c, op, "getting data provider")
}

// GetJournal implements coreapi.Client.GetJournal.
func (c *Client) GetJournal(ctx context.Context, id string) (*coreapi.Response[coreapi.Journal], error) {
	op := coreapi.FetchByID{Entity: coreapi.JournalKind, ID: id}

	return execute[coreapi.Journal](ctx, c, op, "getting journal")
}

// GetOutput implements coreapi.Client.GetOutput.
func (c *Client) GetOutput(ctx context.Context, id string) (*coreapi.Response[coreapi.Work], error) {
	op := coreapi.FetchByID{Entity: coreapi.OutputKind, ID: id}

	return execute[coreapi.Work](ctx, c, op, "getting output")
}

// Discover implements coreapi.Client.Discover.
func (c *Client) Discover(ctx context.Context, doi string) (*coreapi.Response[coreapi.Discovery], error) {
	return execute[coreapi.Discovery](ctx, c, coreapi.Discover{DOI: doi}, "discovering full text")
}

// SearchWorks implements coreapi.Client.SearchWorks.
func (c *Client) SearchWorks(ctx context.Context, query coreapi.SearchQuery) (*coreapi.Response[coreapi.SearchResponse[coreapi.Work]], error) {
	op := coreapi.NewSearch(coreapi.WorksSearch, query)

	return execute[coreapi.SearchResponse[coreapi.Work]](ctx, c, op, "searching works")
}

// SearchOutputs implements coreapi.Client.SearchOutputs.
func (c *Client) SearchOutputs(ctx context.Context, query coreapi.SearchQuery) (*coreapi.Response[coreapi.SearchResponse[coreapi.Work]], error) {
	op := coreapi.NewSearch(coreapi.OutputsSearch, query)

	return execute[coreapi.SearchResponse[coreapi.Work]](ctx, c, op, "searching outputs")
}

// SearchDataProviders implements coreapi.Client.SearchDataProviders.
func (c *Client) SearchDataProviders(ctx context.Context, query coreapi.SearchQuery) (*coreapi.Response[coreapi.SearchResponse[coreapi.DataProvider]], error) {
	op := coreapi.NewSearch(coreapi.DataProvidersSearch, query)

	return execute[coreapi.SearchResponse[coreapi.DataProvider]](ctx, c, op, "searching data providers")
}

// SearchJournals implements coreapi.Client.SearchJournals.
func (c *Client) SearchJournals(ctx context.Context, query coreapi.SearchQuery) (*coreapi.Response[coreapi.SearchResponse[coreapi.Journal]], error) {
	op := coreapi.NewSearch(coreapi.JournalsSearch, query)

	return execute[coreapi.SearchResponse[coreapi.Journal]](ctx, c, op, "searching journals")
}

// RateLimitRemaining implements coreapi.Client.RateLimitRemaining. The value
// comes from the last network response that decoded successfully; failed
// calls and cache hits leave it unchanged.
func (c *Client) RateLimitRemaining() *int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.rateLimitRemaining == nil {
		return nil
	}

	remaining := *c.rateLimitRemaining

	return &remaining
}

// send turns op into one HTTP round trip, or a cache hit.
func (c *Client) send(ctx context.Context, op coreapi.Operation) (coreapi.RequestDescriptor, *rawResponse, error) {
	desc, err := op.Descriptor()
	if err != nil {
		return desc, nil, err
	}

	if c.logTarget {
		c.logger.Info("CORE API request", map[string]interface{}{
			"method": desc.Method,
			"url":    c.httpClient.URL(desc.Path),
		})
	}

	if raw := c.lookup(ctx, desc); raw != nil {
		return desc, raw, nil
	}

	resp, err := c.httpClient.Do(ctx, &corehttp.Request{
		Method: desc.Method,
		Path:   desc.Path,
		Body:   desc.Body,
	})
	if err != nil {
		return desc, nil, &coreapi.TransportError{Op: desc.Method + " " + desc.Path, Err: err}
	}

	if c.logRawResponse {
		c.logger.Debug("CORE API response", map[string]interface{}{
			"status": resp.StatusCode,
			"body":   string(resp.Body),
		})
	}

	return desc, &rawResponse{statusCode: resp.StatusCode, header: resp.Header, body: resp.Body}, nil
}

// recordRateLimit keeps the last quota reported by the service.
func (c *Client) recordRateLimit(raw *rawResponse, remaining *int) {
	if raw.cached || remaining == nil {
		return
	}

	value := *remaining

	c.mu.Lock()
	c.rateLimitRemaining = &value
	c.mu.Unlock()
}

func cacheable(desc coreapi.RequestDescriptor) bool {
	return desc.Method == http.MethodGet
}

func cacheKey(desc coreapi.RequestDescriptor) string {
	return desc.Method + ":" + desc.Path
}

// lookup returns a cached response for desc, or nil.
func (c *Client) lookup(ctx context.Context, desc coreapi.RequestDescriptor) *rawResponse {
	if c.cache == nil || !cacheable(desc) {
		return nil
	}

	entry, err := c.cache.Get(ctx, cacheKey(desc))
	if err != nil {
		return nil
	}

	header := http.Header{}
	if entry.RateLimitRemaining != nil {
		header.Set(constants.HeaderRateLimitRemaining, strconv.Itoa(*entry.RateLimitRemaining))
	}

	c.logger.Debug("CORE API cache hit", map[string]interface{}{"path": desc.Path})

	return &rawResponse{statusCode: http.StatusOK, header: header, body: entry.Data, cached: true}
}

// remember caches a successfully decoded GET response.
func (c *Client) remember(ctx context.Context, desc coreapi.RequestDescriptor, raw *rawResponse) {
	if c.cache == nil || raw.cached || !cacheable(desc) || raw.statusCode != http.StatusOK {
		return
	}

	entry := &coreapi.CacheEntry{
		Data:               raw.body,
		RateLimitRemaining: coreapi.RateLimitFromHeader(raw.header),
		ExpiresAt:          time.Now().Add(c.cacheTTL),
	}

	err := c.cache.Set(ctx, cacheKey(desc), entry)
	if err != nil {
		c.logger.Warn("Failed to cache response", map[string]interface{}{
			"path":  desc.Path,
			"error": err.Error(),
		})
	}
}

// ClearCache drops every cached response.
func (c *Client) ClearCache(ctx context.Context) error {
	if c.cache == nil {
		return nil
	}

	err := c.cache.Clear(ctx)
	if err != nil {
		return fmt.Errorf("clearing response cache: %w", err)
	}

	return nil
}

// Close releases resources held by the response cache.
func (c *Client) Close() error {
	if closer, ok := c.cache.(interface{ Close() }); ok {
		closer.Close()
	}

	return nil
}

// nopLogger discards everything.
type nopLogger struct{}

func (nopLogger) Debug(string, map[string]interface{}) {}
func (nopLogger) Info(string, map[string]interface{})  {}
func (nopLogger) Warn(string, map[string]interface{})  {}
func (nopLogger) Error(string, map[string]interface{}) {}
