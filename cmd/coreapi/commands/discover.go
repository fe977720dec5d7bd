package commands

import (
	"fmt"
	"io"

	"github.com/VakeDomen/core-api-client/internal/constants"
	"github.com/spf13/cobra"
)

// NewDiscoverCommand creates the discover command.
func NewDiscoverCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "discover DOI",
		Short:   "Find a full-text link for a DOI",
		Long:    "Ask the discovery service where the full text of a DOI can be downloaded",
		Example: "  coreapi discover 10.1016/j.cell.2009.01.002",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}
			defer closeClient(client)

			resp, err := client.Discover(commandContext(cmd), args[0])
			if err != nil {
				return fmt.Errorf("failed to discover %s: %w", args[0], err)
			}

			discovery := resp.Payload

			return renderOutput(cmd.OutOrStdout(), discovery, func(w io.Writer) error {
				err := renderProperties(w, [][]string{
					{"DOI", args[0]},
					{"Full Text", orDefault(discovery.FullTextLink, constants.NotAvailable)},
					{"Source", orDefault(discovery.Source, constants.NotAvailable)},
				})
				if err != nil {
					return err
				}

				writeRateLimit(w, resp.RateLimitRemaining)

				return nil
			})
		},
	}
}
