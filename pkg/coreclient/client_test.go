package coreclient_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/VakeDomen/core-api-client/pkg/coreapi"
	"github.com/VakeDomen/core-api-client/pkg/coreclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeEndpoint(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{"", "https://api.core.ac.uk/v3"},
		{"  ", "https://api.core.ac.uk/v3"},
		{"https://api.core.ac.uk/v3/", "https://api.core.ac.uk/v3"},
		{"api.core.ac.uk/v3", "https://api.core.ac.uk/v3"},
		{"http://localhost:8080", "http://localhost:8080"},
	}

	for _, tt := range tests {
		endpoint, err := coreclient.NormalizeEndpoint(tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.expected, endpoint, tt.input)
	}
}

func TestNormalizeEndpoint_NoHost(t *testing.T) {
	t.Parallel()

	_, err := coreclient.NormalizeEndpoint("https:///v3")
	require.ErrorIs(t, err, coreapi.ErrNoHostInURL)
}

func TestNew(t *testing.T) {
	t.Parallel()

	_, err := coreclient.New(context.Background(), nil)
	require.ErrorIs(t, err, coreapi.ErrConfigRequired)

	client, err := coreclient.NewWithAPIKey(context.Background(), "key")
	require.NoError(t, err)
	assert.NotNil(t, client)
	assert.Nil(t, client.RateLimitRemaining())
}

func TestNewWithEndpoint(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/journals/issn:0000-0000", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		w.Header().Set("X-RateLimit-Remaining", "5")
		_, _ = w.Write([]byte(`{"title": "Example Journal", "identifiers": ["issn:0000-0000"]}`))
	}))
	defer server.Close()

	client, err := coreclient.NewWithEndpoint(context.Background(), server.URL+"/", "secret")
	require.NoError(t, err)

	resp, err := client.GetJournal(context.Background(), "issn:0000-0000")
	require.NoError(t, err)
	assert.Equal(t, "Example Journal", resp.Payload.Title)
	assert.Equal(t, 5, *client.RateLimitRemaining())
}

func TestNew_DoesNotMutateConfig(t *testing.T) {
	t.Parallel()

	config := &coreapi.Config{APIEndpoint: "api.core.ac.uk/v3/", APIKey: "k"}

	_, err := coreclient.New(context.Background(), config)
	require.NoError(t, err)
	assert.Equal(t, "api.core.ac.uk/v3/", config.APIEndpoint)
}
