package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"syscall"

	"github.com/VakeDomen/core-api-client/internal/constants"
	"github.com/VakeDomen/core-api-client/pkg/coreapi"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// NewLoginCommand creates the login command.
func NewLoginCommand() *cobra.Command {
	var skipVerify bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store a CORE API key",
		Long: `Store a CORE API key in the config file.

The key is taken from --api-key or read from the terminal. Unless
--skip-verify is given, the key is checked with a one-result search first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			apiKey := ""
			if flag := cmd.Flags().Lookup("api-key"); flag != nil && flag.Changed {
				apiKey = flag.Value.String()
			}

			if apiKey == "" {
				var err error

				apiKey, err = promptAPIKey(cmd)
				if err != nil {
					return err
				}
			}

			apiKey = strings.TrimSpace(apiKey)
			if apiKey == "" {
				return constants.ErrEmptyAPIKey
			}

			if !skipVerify {
				err := verifyAPIKey(cmd, config, apiKey)
				if err != nil {
					return err
				}
			}

			config.APIKey = apiKey

			err := saveConfigStruct(config)
			if err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "API key saved")

			return nil
		},
	}

	cmd.Flags().BoolVar(&skipVerify, "skip-verify", false, "store the key without checking it")

	return cmd
}

// NewLogoutCommand creates the logout command.
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored CORE API key",
		Long:  "Remove the API key from the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()
			config.APIKey = ""

			err := saveConfigStruct(config)
			if err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "API key removed")

			return nil
		},
	}
}

func promptAPIKey(cmd *cobra.Command) (string, error) {
	_, _ = io.WriteString(cmd.ErrOrStderr(), "API key: ")

	fd := int(syscall.Stdin)
	if term.IsTerminal(fd) {
		key, err := term.ReadPassword(fd)

		_, _ = io.WriteString(cmd.ErrOrStderr(), "\n")

		if err != nil {
			return "", fmt.Errorf("failed to read API key: %w", err)
		}

		return string(key), nil
	}

	reader := bufio.NewReader(cmd.InOrStdin())

	key, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read API key: %w", err)
	}

	return key, nil
}

func verifyAPIKey(cmd *cobra.Command, config *Config, apiKey string) error {
	client, err := createClientWithKey(cmd, config, apiKey)
	if err != nil {
		return err
	}
	defer closeClient(client)

	_, err = client.SearchJournals(commandContext(cmd), coreapi.PagedSearch(1, 0))
	if err != nil {
		if coreapi.IsInvalidCredentials(err) {
			return fmt.Errorf("API key rejected: %w", err)
		}

		return fmt.Errorf("failed to verify API key: %w", err)
	}

	return nil
}

