package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/VakeDomen/core-api-client/internal/constants"
	"github.com/VakeDomen/core-api-client/pkg/coreapi"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config represents the CLI configuration.
type Config struct {
	API               string  `json:"api,omitempty"                 yaml:"api,omitempty"`
	APIKey            string  `json:"api_key,omitempty"             yaml:"api_key,omitempty"`
	Output            string  `json:"output"                        yaml:"output"`
	LogLevel          string  `json:"log_level,omitempty"           yaml:"log_level,omitempty"`
	LogTarget         bool    `json:"log_target"                    yaml:"log_target"`
	LogRawResponse    bool    `json:"log_raw_response"              yaml:"log_raw_response"`
	RequestsPerSecond float64 `json:"requests_per_second,omitempty" yaml:"requests_per_second,omitempty"`
	Cache             string  `json:"cache,omitempty"               yaml:"cache,omitempty"`
	CacheTTL          string  `json:"cache_ttl,omitempty"           yaml:"cache_ttl,omitempty"`
	NATSURL           string  `json:"nats_url,omitempty"            yaml:"nats_url,omitempty"`
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Show and change the settings stored in $HOME/.coreapi/config.yml",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigUnsetCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the effective configuration with the API key masked",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := maskConfig(loadConfig())
			out := cmd.OutOrStdout()

			return renderOutput(out, config, func(w io.Writer) error {
				return displayConfigTable(w, config)
			})
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long: `Set a configuration value and persist it.

Keys: api, api_key, output, log_level, log_target, log_raw_response,
requests_per_second, cache, cache_ttl, nats_url`,
		Args: cobra.ExactArgs(constants.MinimumArgumentCount),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			value := args[1]

			config := loadConfig()

			err := setConfigValue(config, key, value)
			if err != nil {
				return err
			}

			err = saveConfigStruct(config)
			if err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			if key == constants.ConfigKeyAPIKey {
				value = constants.MaskedSecret
			}

			return outputConfigUpdateResult(cmd.OutOrStdout(), "Set", key, value)
		},
	}
}

func newConfigUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset KEY",
		Short: "Unset a configuration value",
		Long:  "Remove a configuration value, restoring its default",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			config := loadConfig()

			err := unsetConfigValue(config, key)
			if err != nil {
				return err
			}

			err = saveConfigStruct(config)
			if err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			return outputConfigUpdateResult(cmd.OutOrStdout(), "Unset", key, "")
		},
	}
}

// loadConfig reads the effective configuration from flags, environment and
// the config file.
func loadConfig() *Config {
	return &Config{
		API:               viper.GetString(constants.ConfigKeyAPI),
		APIKey:            viper.GetString(constants.ConfigKeyAPIKey),
		Output:            viper.GetString(constants.ConfigKeyOutput),
		LogLevel:          viper.GetString(constants.ConfigKeyLogLevel),
		LogTarget:         viper.GetBool(constants.ConfigKeyLogTarget),
		LogRawResponse:    viper.GetBool(constants.ConfigKeyLogRawResponse),
		RequestsPerSecond: viper.GetFloat64(constants.ConfigKeyRequestsPerSecond),
		Cache:             viper.GetString(constants.ConfigKeyCache),
		CacheTTL:          viper.GetString(constants.ConfigKeyCacheTTL),
		NATSURL:           viper.GetString(constants.ConfigKeyNATSURL),
	}
}

func maskConfig(config *Config) *Config {
	masked := *config
	if masked.APIKey != "" {
		masked.APIKey = constants.MaskedSecret
	}

	return &masked
}

func setConfigValue(config *Config, key, value string) error {
	switch key {
	case constants.ConfigKeyAPI:
		config.API = value
	case constants.ConfigKeyAPIKey:
		if strings.TrimSpace(value) == "" {
			return constants.ErrEmptyAPIKey
		}

		config.APIKey = strings.TrimSpace(value)
	case constants.ConfigKeyOutput:
		config.Output = value
	case constants.ConfigKeyLogLevel:
		config.LogLevel = value
	case constants.ConfigKeyLogTarget:
		config.LogTarget = parseBool(value)
	case constants.ConfigKeyLogRawResponse:
		config.LogRawResponse = parseBool(value)
	case constants.ConfigKeyRequestsPerSecond:
		rps, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid value for %s: %w", key, err)
		}

		config.RequestsPerSecond = rps
	case constants.ConfigKeyCache:
		_, err := parseCacheType(value)
		if err != nil {
			return err
		}

		config.Cache = value
	case constants.ConfigKeyCacheTTL:
		_, err := parseCacheTTL(value)
		if err != nil {
			return err
		}

		config.CacheTTL = value
	case constants.ConfigKeyNATSURL:
		config.NATSURL = value
	default:
		return fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, key)
	}

	return nil
}

func unsetConfigValue(config *Config, key string) error {
	switch key {
	case constants.ConfigKeyAPI:
		config.API = ""
	case constants.ConfigKeyAPIKey:
		config.APIKey = ""
	case constants.ConfigKeyOutput:
		config.Output = constants.FormatTable
	case constants.ConfigKeyLogLevel:
		config.LogLevel = ""
	case constants.ConfigKeyLogTarget:
		config.LogTarget = false
	case constants.ConfigKeyLogRawResponse:
		config.LogRawResponse = false
	case constants.ConfigKeyRequestsPerSecond:
		config.RequestsPerSecond = 0
	case constants.ConfigKeyCache:
		config.Cache = ""
	case constants.ConfigKeyCacheTTL:
		config.CacheTTL = ""
	case constants.ConfigKeyNATSURL:
		config.NATSURL = ""
	default:
		return fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, key)
	}

	return nil
}

func parseBool(value string) bool {
	parsed, err := strconv.ParseBool(value)

	return err == nil && parsed
}

func parseCacheType(value string) (coreapi.CacheType, error) {
	cacheType := coreapi.CacheType(strings.ToLower(value))

	switch cacheType {
	case "", coreapi.CacheTypeMemory, coreapi.CacheTypeNATS, coreapi.CacheTypeNone:
		return cacheType, nil
	default:
		return "", fmt.Errorf("%w: %s", coreapi.ErrUnsupportedCacheType, value)
	}
}

func parseCacheTTL(value string) (time.Duration, error) {
	if value == "" {
		return constants.DefaultCacheTTL, nil
	}

	ttl, err := time.ParseDuration(value)
	if err != nil || ttl <= 0 {
		return 0, fmt.Errorf("%w: %s", constants.ErrInvalidCacheTTL, value)
	}

	return ttl, nil
}

func configFilePath() (string, error) {
	configFile := viper.ConfigFileUsed()
	if configFile != "" {
		return configFile, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	configDir := filepath.Join(home, constants.ConfigDirName)

	err = os.MkdirAll(configDir, constants.ConfigDirPerm)
	if err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return filepath.Join(configDir, "config.yml"), nil
}

func saveConfigStruct(config *Config) error {
	configFile, err := configFilePath()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	err = os.WriteFile(configFile, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func displayConfigTable(w io.Writer, config *Config) error {
	table := tablewriter.NewWriter(w)
	table.Header("Property", "Value")

	_ = table.Append([]string{"API", orDefault(config.API, constants.DefaultAPIEndpoint)})
	_ = table.Append([]string{"API Key", orDefault(config.APIKey, constants.NotAvailable)})
	_ = table.Append([]string{"Output", orDefault(config.Output, constants.FormatTable)})
	_ = table.Append([]string{"Log Level", orDefault(config.LogLevel, constants.DefaultLogLevel)})
	_ = table.Append([]string{"Log Target", strconv.FormatBool(config.LogTarget)})
	_ = table.Append([]string{"Log Raw Response", strconv.FormatBool(config.LogRawResponse)})
	_ = table.Append([]string{"Requests Per Second", strconv.FormatFloat(config.RequestsPerSecond, 'f', -1, 64)})
	_ = table.Append([]string{"Cache", orDefault(config.Cache, string(coreapi.CacheTypeNone))})

	if config.Cache != "" && config.Cache != string(coreapi.CacheTypeNone) {
		_ = table.Append([]string{"Cache TTL", orDefault(config.CacheTTL, constants.DefaultCacheTTL.String())})
	}

	if config.NATSURL != "" {
		_ = table.Append([]string{"NATS URL", config.NATSURL})
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func outputConfigUpdateResult(w io.Writer, action, key, value string) error {
	result := map[string]string{
		"action": action,
		"key":    key,
	}

	if value != "" {
		result["value"] = value
	}

	switch viper.GetString(constants.ConfigKeyOutput) {
	case constants.FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")

		err := encoder.Encode(result)
		if err != nil {
			return fmt.Errorf("failed to encode config result as JSON: %w", err)
		}

		return nil
	case constants.FormatYAML:
		encoder := yaml.NewEncoder(w)

		err := encoder.Encode(result)
		if err != nil {
			return fmt.Errorf("failed to encode config result as YAML: %w", err)
		}

		return nil
	default:
		if value == "" {
			_, _ = fmt.Fprintf(w, "%s %s\n", action, key)
		} else {
			_, _ = fmt.Fprintf(w, "%s %s = %s\n", action, key, value)
		}

		return nil
	}
}
