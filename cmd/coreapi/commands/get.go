package commands

import (
	"fmt"
	"io"
	"strconv"

	"github.com/VakeDomen/core-api-client/internal/constants"
	"github.com/VakeDomen/core-api-client/pkg/coreapi"
	"github.com/spf13/cobra"
)

// NewGetCommand creates the get command group.
func NewGetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Fetch a single record by ID",
		Long:  "Fetch a data provider, journal or research output by its identifier",
	}

	cmd.AddCommand(newGetEntityCommand(coreapi.DataProviderKind, "data-provider", "Get a data provider"))
	cmd.AddCommand(newGetEntityCommand(coreapi.JournalKind, "journal", "Get a journal by ISSN or identifier"))
	cmd.AddCommand(newGetEntityCommand(coreapi.OutputKind, "output", "Get a research output"))

	return cmd
}

func newGetEntityCommand(kind coreapi.EntityKind, use, short string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " ID",
		Short: short,
		Long:  short + " from " + kind.String(),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}
			defer closeClient(client)

			return runGet(cmd, client, kind, args[0])
		},
	}
}

func runGet(cmd *cobra.Command, client coreapi.Client, kind coreapi.EntityKind, id string) error {
	ctx := commandContext(cmd)
	out := cmd.OutOrStdout()

	switch kind {
	case coreapi.DataProviderKind:
		resp, err := client.GetDataProvider(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to get data provider %s: %w", id, err)
		}

		return renderRecord(out, resp, dataProviderProperties(&resp.Payload))
	case coreapi.JournalKind:
		resp, err := client.GetJournal(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to get journal %s: %w", id, err)
		}

		return renderRecord(out, resp, journalProperties(&resp.Payload))
	case coreapi.OutputKind:
		resp, err := client.GetOutput(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to get output %s: %w", id, err)
		}

		return renderRecord(out, resp, workProperties(&resp.Payload))
	default:
		return fmt.Errorf("%w: %s", constants.ErrUnsupportedEntity, kind)
	}
}

func renderRecord[T any](w io.Writer, resp *coreapi.Response[T], rows [][]string) error {
	return renderOutput(w, resp.Payload, func(w io.Writer) error {
		err := renderProperties(w, rows)
		if err != nil {
			return err
		}

		writeRateLimit(w, resp.RateLimitRemaining)

		return nil
	})
}

func dataProviderProperties(provider *coreapi.DataProvider) [][]string {
	return [][]string{
		{"ID", strconv.Itoa(provider.ID)},
		{"Name", orDefault(provider.Name, constants.NotAvailable)},
		{"Type", titleCase(provider.Type)},
		{"Institution", stringValue(provider.InstitutionName)},
		{"Country", stringValue(provider.Location.CountryCode)},
		{"Homepage", stringValue(provider.HomepageURL)},
		{"OAI-PMH", orDefault(provider.OAIPMHURL, constants.NotAvailable)},
		{"Software", stringValue(provider.Software)},
		{"ROR", stringValue(provider.RorID)},
		{"Created", stringValue(provider.CreatedDate)},
	}
}

func journalProperties(journal *coreapi.Journal) [][]string {
	dataProvider := constants.NotAvailable
	if journal.DataProviderID != nil {
		dataProvider = strconv.Itoa(int(*journal.DataProviderID))
	}

	return [][]string{
		{"Title", orDefault(journal.Title, constants.NotAvailable)},
		{"Publisher", orDefault(journal.Publisher, constants.NotAvailable)},
		{"Language", orDefault(journal.Language, constants.NotAvailable)},
		{"Identifiers", joinOrNA(journal.Identifiers)},
		{"Subjects", truncate(joinOrNA(journal.Subjects))},
		{"Data Provider", dataProvider},
	}
}

func workProperties(work *coreapi.Work) [][]string {
	authors := make([]string, 0, len(work.Authors))
	for _, author := range work.Authors {
		authors = append(authors, author.Name)
	}

	language := constants.NotAvailable
	if work.Language != nil {
		language = orDefault(work.Language.Name, work.Language.Code)
	}

	row := workRow(*work)

	return [][]string{
		{"ID", row[0]},
		{"Title", row[1]},
		{"Authors", truncate(joinOrNA(authors))},
		{"Year", row[2]},
		{"DOI", row[3]},
		{"Publisher", row[4]},
		{"Document Type", titleCase(stringValue(work.DocumentType))},
		{"Language", language},
		{"Download URL", stringValue(work.DownloadURL)},
		{"Citations", intValue(work.CitationCount)},
	}
}
