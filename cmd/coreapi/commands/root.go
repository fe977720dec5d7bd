package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/VakeDomen/core-api-client/internal/constants"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewRootCommand creates the coreapi root command with every subcommand
// attached.
func NewRootCommand(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "coreapi",
		Short: "CORE scholarly metadata API CLI",
		Long: `A command-line interface for the CORE v3 API.

Search research works, outputs, data providers and journals, fetch single
records by ID and discover full-text links for DOIs.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "c", "", "config file (default is $HOME/.coreapi/config.yml)")
	flags.StringP("api", "a", "", "API endpoint URL (default "+constants.DefaultAPIEndpoint+")")
	flags.StringP("api-key", "k", "", "CORE API key")
	flags.StringP("output", "o", constants.FormatTable, "output format (table, json, yaml)")
	flags.BoolP("verbose", "v", false, "log HTTP requests and responses")
	flags.Bool("log-target", false, "log the URL of every API call")
	flags.Bool("log-raw-response", false, "log every raw response body")

	// Bind flags to viper
	_ = viper.BindPFlag("config", flags.Lookup("config"))
	_ = viper.BindPFlag(constants.ConfigKeyAPI, flags.Lookup("api"))
	_ = viper.BindPFlag(constants.ConfigKeyAPIKey, flags.Lookup("api-key"))
	_ = viper.BindPFlag(constants.ConfigKeyOutput, flags.Lookup("output"))
	_ = viper.BindPFlag(constants.ConfigKeyVerbose, flags.Lookup("verbose"))
	_ = viper.BindPFlag(constants.ConfigKeyLogTarget, flags.Lookup("log-target"))
	_ = viper.BindPFlag(constants.ConfigKeyLogRawResponse, flags.Lookup("log-raw-response"))

	rootCmd.AddCommand(NewVersionCommand(version, commit, date))
	rootCmd.AddCommand(NewLoginCommand())
	rootCmd.AddCommand(NewLogoutCommand())
	rootCmd.AddCommand(NewConfigCommand())
	rootCmd.AddCommand(NewSearchCommand())
	rootCmd.AddCommand(NewGetCommand())
	rootCmd.AddCommand(NewDiscoverCommand())

	return rootCmd
}

// InitConfig wires the config file and CORE_* environment variables into
// viper.
func InitConfig() {
	cfgFile := viper.GetString("config")

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			_, _ = fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		configDir := filepath.Join(home, constants.ConfigDirName)

		// Search config in ~/.coreapi/config.yml
		viper.AddConfigPath(configDir)
		viper.SetConfigType("yml")
		viper.SetConfigName("config")
	}

	// CORE_API_KEY, CORE_API, CORE_OUTPUT, ...
	viper.SetEnvPrefix(constants.EnvPrefix)
	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	if err == nil && viper.GetBool(constants.ConfigKeyVerbose) {
		_, _ = fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
