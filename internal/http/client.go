package http

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/VakeDomen/core-api-client/internal/constants"
	"github.com/VakeDomen/core-api-client/pkg/coreapi"
	"github.com/hashicorp/go-retryablehttp"
)

// ErrResponseTooLarge is returned when a body exceeds MaxResponseBodySize.
var ErrResponseTooLarge = errors.New("response body too large")

// Request is one HTTP request. Path is relative to the base URL and may carry
// a pre-encoded query string. Existing escapes are sent untouched; bytes that
// are not valid in a URI, such as spaces or #, are percent-encoded.
type Request struct {
	Method  string
	Path    string
	Body    []byte
	Headers map[string]string
}

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Client sends authenticated requests to the CORE API.
type Client struct {
	baseURL     string
	apiKey      string
	userAgent   string
	logger      coreapi.Logger
	debug       bool
	limiter     *RateLimiter
	retryClient *retryablehttp.Client
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(logger coreapi.Logger) Option {
	return func(c *Client) {
		if logger == nil {
			return
		}

		c.logger = logger
		c.retryClient.Logger = &leveledLogger{logger: logger}
	}
}

// WithDebug enables request and response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithRetryConfig sets the retry count and backoff bounds. A negative
// retryMax disables retries.
func WithRetryConfig(retryMax int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		if retryMax < 0 {
			retryMax = 0
		}

		c.retryClient.RetryMax = retryMax

		if waitMin > 0 {
			c.retryClient.RetryWaitMin = waitMin
		}

		if waitMax > 0 {
			c.retryClient.RetryWaitMax = waitMax
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		if userAgent != "" {
			c.userAgent = userAgent
		}
	}
}

// WithTimeout sets the per-attempt timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.retryClient.HTTPClient.Timeout = timeout
		}
	}
}

// WithRateLimit throttles requests to ratePerSecond. Zero or negative
// disables throttling.
func WithRateLimit(ratePerSecond float64, burst int) Option {
	return func(c *Client) {
		if ratePerSecond <= 0 {
			c.limiter = nil

			return
		}

		c.limiter = NewRateLimiter(ratePerSecond, burst)
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.retryClient.HTTPClient = httpClient
		}
	}
}

// NewClient creates a client for baseURL authenticating with apiKey.
func NewClient(baseURL, apiKey string, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = constants.DefaultRetryMax
	retryClient.RetryWaitMin = constants.DefaultRetryWaitMin
	retryClient.RetryWaitMax = constants.DefaultRetryWaitMax
	retryClient.HTTPClient.Timeout = constants.DefaultHTTPTimeout
	retryClient.Logger = nil
	retryClient.CheckRetry = CheckRetry
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	client := &Client{
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		apiKey:      apiKey,
		userAgent:   constants.DefaultUserAgent,
		retryClient: retryClient,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// BaseURL returns the URL requests are resolved against.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// URL resolves path against the base URL.
func (c *Client) URL(path string) string {
	return c.baseURL + "/" + strings.TrimPrefix(path, "/")
}

// CheckRetry retries connection failures and 429, 502, 503 and 504 responses.
// Unauthorized and internal server error responses are returned to the caller
// as-is.
func CheckRetry(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	if err != nil {
		return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
	}

	switch resp.StatusCode {
	case http.StatusTooManyRequests,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true, nil
	default:
		return false, nil
	}
}

// Do sends the request. Non-success statuses are not errors here; callers
// classify the returned Response.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	if c.limiter != nil {
		err := c.limiter.Wait(ctx)
		if err != nil {
			return nil, fmt.Errorf("waiting for rate limiter: %w", err)
		}
	}

	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}

	target := c.URL(escapeTarget(req.Path))

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header.Set("Accept", constants.ContentTypeJSON)
	httpReq.Header.Set("User-Agent", c.userAgent)

	if c.apiKey != "" {
		httpReq.Header.Set(constants.HeaderAuthorization, "Bearer "+c.apiKey)
	}

	if req.Body != nil {
		httpReq.Header.Set(constants.HeaderContentType, constants.ContentTypeJSON)
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": req.Method,
			"url":    target,
		})
	}

	start := time.Now()

	httpResp, err := c.retryClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}

	defer func() { _ = httpResp.Body.Close() }()

	respBody, err := io.ReadAll(io.LimitReader(httpResp.Body, constants.MaxResponseBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if len(respBody) > constants.MaxResponseBodySize {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrResponseTooLarge, constants.MaxResponseBodySize)
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"status":   httpResp.StatusCode,
			"duration": time.Since(start).String(),
			"bytes":    len(respBody),
		})
	}

	return &Response{
		StatusCode: httpResp.StatusCode,
		Header:     httpResp.Header,
		Body:       respBody,
	}, nil
}

// Get sends a GET request.
func (c *Client) Get(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path})
}

// Post sends a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body []byte) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Body: body})
}

// leveledLogger adapts coreapi.Logger to retryablehttp.LeveledLogger.
type leveledLogger struct {
	logger coreapi.Logger
}

func (l *leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, toFields(keysAndValues))
}

func (l *leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info(msg, toFields(keysAndValues))
}

func (l *leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, toFields(keysAndValues))
}

func (l *leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn(msg, toFields(keysAndValues))
}

func toFields(keysAndValues []interface{}) map[string]interface{} {
	fields := make(map[string]interface{}, len(keysAndValues)/2)

	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			key = fmt.Sprint(keysAndValues[i])
		}

		fields[key] = keysAndValues[i+1]
	}

	return fields
}
