package http_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	corehttp "github.com/VakeDomen/core-api-client/internal/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockLogger for testing.
type MockLogger struct {
	mu   sync.Mutex
	logs []map[string]interface{}
}

func (l *MockLogger) record(level, msg string, fields map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.logs = append(l.logs, map[string]interface{}{"level": level, "msg": msg, "fields": fields})
}

func (l *MockLogger) Debug(msg string, fields map[string]interface{}) { l.record("debug", msg, fields) }
func (l *MockLogger) Info(msg string, fields map[string]interface{})  { l.record("info", msg, fields) }
func (l *MockLogger) Warn(msg string, fields map[string]interface{})  { l.record("warn", msg, fields) }
func (l *MockLogger) Error(msg string, fields map[string]interface{}) { l.record("error", msg, fields) }

func (l *MockLogger) messages() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	msgs := make([]string, 0, len(l.logs))
	for _, entry := range l.logs {
		msgs = append(msgs, entry["msg"].(string))
	}

	return msgs
}

func fastRetries() corehttp.Option {
	return corehttp.WithRetryConfig(3, time.Millisecond, 5*time.Millisecond)
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_Do(t *testing.T) {
	t.Parallel()

	t.Run("successful get", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/v3/search/works/", request.URL.Path)
			assert.Equal(t, "limit=10&offset=0&q=%20AND%20publisher=OJS", request.URL.RawQuery)
			assert.Equal(t, http.MethodGet, request.Method)
			assert.Equal(t, "Bearer test-key", request.Header.Get("Authorization"))
			assert.Equal(t, "application/json", request.Header.Get("Accept"))
			assert.Equal(t, "core-api-client-go", request.Header.Get("User-Agent"))
			assert.Empty(t, request.Header.Get("Content-Type"))

			writer.Header().Set("X-RateLimit-Remaining", "10")
			_, _ = writer.Write([]byte(`{"totalHits":0}`))
		}))
		defer server.Close()

		client := corehttp.NewClient(server.URL+"/v3/", "test-key")

		resp, err := client.Get(context.Background(), "search/works/?limit=10&offset=0&q=%20AND%20publisher=OJS")
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "10", resp.Header.Get("X-RateLimit-Remaining"))
		assert.JSONEq(t, `{"totalHits":0}`, string(resp.Body))
	})

	t.Run("post with body", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, http.MethodPost, request.Method)
			assert.Equal(t, "/discover", request.URL.Path)
			assert.Equal(t, "application/json", request.Header.Get("Content-Type"))

			body, err := io.ReadAll(request.Body)
			assert.NoError(t, err)
			assert.JSONEq(t, `{"doi":"10.1000/xyz"}`, string(body))

			_, _ = writer.Write([]byte(`{"fullTextLink":"https://example.org"}`))
		}))
		defer server.Close()

		client := corehttp.NewClient(server.URL, "k")

		resp, err := client.Post(context.Background(), "discover", []byte(`{"doi":"10.1000/xyz"}`))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("no authorization without key", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Empty(t, request.Header.Get("Authorization"))
		}))
		defer server.Close()

		_, err := corehttp.NewClient(server.URL, "").Get(context.Background(), "journals/1")
		require.NoError(t, err)
	})

	t.Run("custom user agent and headers", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "my-app/1.0", request.Header.Get("User-Agent"))
			assert.Equal(t, "yes", request.Header.Get("X-Extra"))
		}))
		defer server.Close()

		client := corehttp.NewClient(server.URL, "k", corehttp.WithUserAgent("my-app/1.0"))

		_, err := client.Do(context.Background(), &corehttp.Request{
			Method:  http.MethodGet,
			Path:    "journals/1",
			Headers: map[string]string{"X-Extra": "yes"},
		})
		require.NoError(t, err)
	})

	t.Run("non-success status is not an error", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusNotFound)
			_, _ = writer.Write([]byte(`{"message":"Not found"}`))
		}))
		defer server.Close()

		resp, err := corehttp.NewClient(server.URL, "k").Get(context.Background(), "outputs/1")
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Contains(t, string(resp.Body), "Not found")
	})
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_Retries(t *testing.T) {
	t.Parallel()

	t.Run("retries service unavailable", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if calls.Add(1) == 1 {
				writer.WriteHeader(http.StatusServiceUnavailable)

				return
			}

			_, _ = writer.Write([]byte(`{}`))
		}))
		defer server.Close()

		resp, err := corehttp.NewClient(server.URL, "k", fastRetries()).Get(context.Background(), "journals/1")
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("retries too many requests", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if calls.Add(1) < 3 {
				writer.WriteHeader(http.StatusTooManyRequests)

				return
			}

			_, _ = writer.Write([]byte(`{}`))
		}))
		defer server.Close()

		resp, err := corehttp.NewClient(server.URL, "k", fastRetries()).Get(context.Background(), "journals/1")
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, int32(3), calls.Load())
	})

	for _, status := range []int{http.StatusUnauthorized, http.StatusInternalServerError} {
		t.Run("does not retry "+http.StatusText(status), func(t *testing.T) {
			t.Parallel()

			var calls atomic.Int32

			server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				calls.Add(1)
				writer.WriteHeader(status)
				_, _ = writer.Write([]byte("oops"))
			}))
			defer server.Close()

			resp, err := corehttp.NewClient(server.URL, "k", fastRetries()).Get(context.Background(), "journals/1")
			require.NoError(t, err)
			assert.Equal(t, status, resp.StatusCode)
			assert.Equal(t, "oops", string(resp.Body))
			assert.Equal(t, int32(1), calls.Load())
		})
	}

	t.Run("gives up after retry max and returns last response", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			calls.Add(1)
			writer.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		client := corehttp.NewClient(server.URL, "k", corehttp.WithRetryConfig(2, time.Millisecond, time.Millisecond))

		resp, err := client.Get(context.Background(), "journals/1")
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
		assert.Equal(t, int32(3), calls.Load())
	})

	t.Run("negative retry max disables retries", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			calls.Add(1)
			writer.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		client := corehttp.NewClient(server.URL, "k", corehttp.WithRetryConfig(-1, 0, 0))

		_, err := client.Get(context.Background(), "journals/1")
		require.NoError(t, err)
		assert.Equal(t, int32(1), calls.Load())
	})
}

func TestClient_TransportFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {}))
	url := server.URL
	server.Close()

	client := corehttp.NewClient(url, "k", corehttp.WithRetryConfig(-1, 0, 0))

	_, err := client.Get(context.Background(), "journals/1")
	require.Error(t, err)
}

func TestClient_ContextCanceled(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := corehttp.NewClient(server.URL, "k").Get(ctx, "journals/1")
	require.ErrorIs(t, err, context.Canceled)
}

func TestClient_DebugLogging(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		_, _ = writer.Write([]byte(`{}`))
	}))
	defer server.Close()

	logger := &MockLogger{}
	client := corehttp.NewClient(server.URL, "k", corehttp.WithLogger(logger), corehttp.WithDebug(true))

	_, err := client.Get(context.Background(), "journals/1")
	require.NoError(t, err)

	messages := logger.messages()
	assert.Contains(t, messages, "HTTP Request")
	assert.Contains(t, messages, "HTTP Response")
}

func TestClient_NoDebugLoggingByDefault(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {}))
	defer server.Close()

	logger := &MockLogger{}
	client := corehttp.NewClient(server.URL, "k", corehttp.WithLogger(logger))

	_, err := client.Get(context.Background(), "journals/1")
	require.NoError(t, err)
	assert.NotContains(t, logger.messages(), "HTTP Request")
}

func TestClient_URL(t *testing.T) {
	t.Parallel()

	client := corehttp.NewClient("https://api.core.ac.uk/v3/", "k", corehttp.WithLogger(nil))
	assert.Equal(t, "https://api.core.ac.uk/v3", client.BaseURL())
	assert.Equal(t, "https://api.core.ac.uk/v3/journals/1", client.URL("/journals/1"))
	assert.Equal(t, "https://api.core.ac.uk/v3/search/works/?", client.URL("search/works/?"))
}

func TestCheckRetry(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	for status, want := range map[int]bool{
		http.StatusOK:                  false,
		http.StatusUnauthorized:        false,
		http.StatusNotFound:            false,
		http.StatusTooManyRequests:     true,
		http.StatusInternalServerError: false,
		http.StatusBadGateway:          true,
		http.StatusServiceUnavailable:  true,
		http.StatusGatewayTimeout:      true,
	} {
		retry, err := corehttp.CheckRetry(ctx, &http.Response{StatusCode: status}, nil)
		require.NoError(t, err)
		assert.Equal(t, want, retry, "status %d", status)
	}

	canceled, cancel := context.WithCancel(ctx)
	cancel()

	retry, err := corehttp.CheckRetry(canceled, &http.Response{StatusCode: http.StatusServiceUnavailable}, nil)
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, retry)
}
