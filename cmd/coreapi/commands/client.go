package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/VakeDomen/core-api-client/internal/constants"
	"github.com/VakeDomen/core-api-client/pkg/coreapi"
	"github.com/VakeDomen/core-api-client/pkg/coreclient"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// createClient builds a client from the effective configuration. Logs go to
// the command's error stream.
func createClient(cmd *cobra.Command) (coreapi.Client, error) {
	config := loadConfig()
	if config.APIKey == "" {
		return nil, constants.ErrNoAPIKeyConfigured
	}

	return createClientWithKey(cmd, config, config.APIKey)
}

func createClientWithKey(cmd *cobra.Command, config *Config, apiKey string) (coreapi.Client, error) {
	cacheConfig, err := buildCacheConfig(config)
	if err != nil {
		return nil, err
	}

	coreConfig := &coreapi.Config{
		APIEndpoint:       config.API,
		APIKey:            apiKey,
		Logger:            NewLogger(cmd.ErrOrStderr(), effectiveLogLevel(config)),
		Debug:             viper.GetBool(constants.ConfigKeyVerbose),
		LogTarget:         config.LogTarget,
		LogRawResponse:    config.LogRawResponse,
		RequestsPerSecond: config.RequestsPerSecond,
		Cache:             cacheConfig,
	}

	client, err := coreclient.New(commandContext(cmd), coreConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, nil
}

// buildCacheConfig returns nil when caching is off.
func buildCacheConfig(config *Config) (*coreapi.CacheConfig, error) {
	cacheType, err := parseCacheType(config.Cache)
	if err != nil {
		return nil, err
	}

	if cacheType == "" || cacheType == coreapi.CacheTypeNone {
		return nil, nil //nolint:nilnil
	}

	ttl, err := parseCacheTTL(config.CacheTTL)
	if err != nil {
		return nil, err
	}

	cacheConfig := &coreapi.CacheConfig{
		Type:    cacheType,
		Options: &coreapi.CacheOptions{TTL: ttl},
	}

	if cacheType == coreapi.CacheTypeNATS {
		cacheConfig.NATS = &coreapi.NATSKVConfig{
			URL: config.NATSURL,
			TTL: ttl,
		}
	}

	return cacheConfig, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}

	return context.Background()
}

func closeClient(client coreapi.Client) {
	if closer, ok := client.(io.Closer); ok {
		_ = closer.Close()
	}
}
