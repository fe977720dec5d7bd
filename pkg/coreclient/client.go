// Package coreclient provides the main entry point for creating CORE API clients
package coreclient

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/VakeDomen/core-api-client/internal/client"
	"github.com/VakeDomen/core-api-client/internal/constants"
	"github.com/VakeDomen/core-api-client/pkg/coreapi"
)

// New creates a new CORE API client. The config is copied; the caller may
// reuse it afterwards.
func New(ctx context.Context, config *coreapi.Config) (coreapi.Client, error) {
	if config == nil {
		return nil, coreapi.ErrConfigRequired
	}

	normalized := *config

	endpoint, err := NormalizeEndpoint(config.APIEndpoint)
	if err != nil {
		return nil, err
	}

	normalized.APIEndpoint = endpoint

	c, err := client.New(ctx, &normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return c, nil
}

// NormalizeEndpoint trims a trailing slash, adds "https://" when no scheme is
// present, and falls back to the public v3 endpoint when empty.
func NormalizeEndpoint(endpoint string) (string, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return constants.DefaultAPIEndpoint, nil
	}

	endpoint = strings.TrimSuffix(endpoint, "/")
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}

	parsed, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("parsing API endpoint: %w", err)
	}

	if parsed.Host == "" {
		return "", fmt.Errorf("%w: %s", coreapi.ErrNoHostInURL, endpoint)
	}

	return endpoint, nil
}

// NewWithAPIKey creates a client for the public endpoint using apiKey.
func NewWithAPIKey(ctx context.Context, apiKey string) (coreapi.Client, error) {
	return New(ctx, &coreapi.Config{
		APIKey: apiKey,
	})
}

// NewWithEndpoint creates a client for endpoint using apiKey.
func NewWithEndpoint(ctx context.Context, endpoint, apiKey string) (coreapi.Client, error) {
	return New(ctx, &coreapi.Config{
		APIEndpoint: endpoint,
		APIKey:      apiKey,
	})
}
