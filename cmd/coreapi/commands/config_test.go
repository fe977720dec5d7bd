package commands

import (
	"os"
	"testing"

	"github.com/VakeDomen/core-api-client/internal/constants"
	"github.com/VakeDomen/core-api-client/pkg/coreapi"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestSetConfigValue(t *testing.T) {
	t.Parallel()

	config := &Config{}

	require.NoError(t, setConfigValue(config, "api", "https://example.org/v3"))
	require.NoError(t, setConfigValue(config, "api_key", "  secret  "))
	require.NoError(t, setConfigValue(config, "output", "json"))
	require.NoError(t, setConfigValue(config, "log_target", "true"))
	require.NoError(t, setConfigValue(config, "log_raw_response", "nope"))
	require.NoError(t, setConfigValue(config, "requests_per_second", "2.5"))
	require.NoError(t, setConfigValue(config, "cache", "nats"))
	require.NoError(t, setConfigValue(config, "cache_ttl", "90s"))
	require.NoError(t, setConfigValue(config, "nats_url", "nats://localhost:4222"))

	assert.Equal(t, "https://example.org/v3", config.API)
	assert.Equal(t, "secret", config.APIKey)
	assert.Equal(t, "json", config.Output)
	assert.True(t, config.LogTarget)
	assert.False(t, config.LogRawResponse)
	assert.InDelta(t, 2.5, config.RequestsPerSecond, 0.0001)
	assert.Equal(t, "nats", config.Cache)
	assert.Equal(t, "90s", config.CacheTTL)
	assert.Equal(t, "nats://localhost:4222", config.NATSURL)
}

func TestSetConfigValueErrors(t *testing.T) {
	t.Parallel()

	config := &Config{}

	err := setConfigValue(config, "color", "on")
	require.ErrorIs(t, err, constants.ErrUnknownConfigKey)

	err = setConfigValue(config, "api_key", "   ")
	require.ErrorIs(t, err, constants.ErrEmptyAPIKey)

	err = setConfigValue(config, "cache", "redis")
	require.ErrorIs(t, err, coreapi.ErrUnsupportedCacheType)

	err = setConfigValue(config, "cache_ttl", "-1m")
	require.ErrorIs(t, err, constants.ErrInvalidCacheTTL)

	err = setConfigValue(config, "requests_per_second", "fast")
	require.Error(t, err)
}

func TestUnsetConfigValue(t *testing.T) {
	t.Parallel()

	config := &Config{APIKey: "secret", Output: "json", Cache: "memory"}

	require.NoError(t, unsetConfigValue(config, "api_key"))
	require.NoError(t, unsetConfigValue(config, "output"))
	require.NoError(t, unsetConfigValue(config, "cache"))

	assert.Empty(t, config.APIKey)
	assert.Equal(t, constants.FormatTable, config.Output)
	assert.Empty(t, config.Cache)

	require.ErrorIs(t, unsetConfigValue(config, "nope"), constants.ErrUnknownConfigKey)
}

func TestMaskConfig(t *testing.T) {
	t.Parallel()

	config := &Config{APIKey: "secret"}
	masked := maskConfig(config)

	assert.Equal(t, constants.MaskedSecret, masked.APIKey)
	assert.Equal(t, "secret", config.APIKey)
	assert.Empty(t, maskConfig(&Config{}).APIKey)
}

func TestBuildCacheConfig(t *testing.T) {
	t.Parallel()

	cacheConfig, err := buildCacheConfig(&Config{})
	require.NoError(t, err)
	assert.Nil(t, cacheConfig)

	cacheConfig, err = buildCacheConfig(&Config{Cache: "none"})
	require.NoError(t, err)
	assert.Nil(t, cacheConfig)

	cacheConfig, err = buildCacheConfig(&Config{Cache: "memory"})
	require.NoError(t, err)
	require.NotNil(t, cacheConfig)
	assert.Equal(t, coreapi.CacheTypeMemory, cacheConfig.Type)
	assert.Equal(t, constants.DefaultCacheTTL, cacheConfig.TTL())

	cacheConfig, err = buildCacheConfig(&Config{Cache: "NATS", CacheTTL: "1m", NATSURL: "nats://127.0.0.1:4222"})
	require.NoError(t, err)
	require.NotNil(t, cacheConfig.NATS)
	assert.Equal(t, coreapi.CacheTypeNATS, cacheConfig.Type)
	assert.Equal(t, "nats://127.0.0.1:4222", cacheConfig.NATS.URL)
}

func TestConfigSetPersistsAndMasks(t *testing.T) {
	out, err := runRoot(t, "config", "set", "api_key", "secret-key")
	require.NoError(t, err)
	assert.Equal(t, "Set api_key = ***\n", out)

	data, err := os.ReadFile(viper.ConfigFileUsed())
	require.NoError(t, err)

	var saved Config
	require.NoError(t, yaml.Unmarshal(data, &saved))
	assert.Equal(t, "secret-key", saved.APIKey)

	info, err := os.Stat(viper.ConfigFileUsed())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(constants.ConfigFilePerm), info.Mode().Perm())
}

func TestConfigShowMasksAPIKey(t *testing.T) {
	out, err := runRoot(t, "config", "show", "--api-key", "secret-key", "--output", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"api_key": "***"`)
	assert.NotContains(t, out, "secret-key")
}

func TestEffectiveLogLevel(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	assert.Equal(t, "warn", effectiveLogLevel(&Config{}))
	assert.Equal(t, "error", effectiveLogLevel(&Config{LogLevel: "error"}))
	assert.Equal(t, "info", effectiveLogLevel(&Config{LogLevel: "error", LogTarget: true}))
	assert.Equal(t, "debug", effectiveLogLevel(&Config{LogLevel: "debug", LogTarget: true}))
	assert.Equal(t, "debug", effectiveLogLevel(&Config{LogRawResponse: true}))

	viper.Set(constants.ConfigKeyVerbose, true)
	assert.Equal(t, "debug", effectiveLogLevel(&Config{}))
}
