package commands

import (
	"fmt"
	"io"
	"strconv"

	"github.com/VakeDomen/core-api-client/internal/constants"
	"github.com/VakeDomen/core-api-client/pkg/coreapi"
	"github.com/spf13/cobra"
)

type searchOptions struct {
	limit     int
	offset    int
	scroll    bool
	scrollSet bool
	stats     bool
	statsSet  bool
	where     []string
}

// NewSearchCommand creates the search command group.
func NewSearchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search the CORE index",
		Long: `Search works, outputs, data providers or journals.

Filters are given with --where as "[and|or] EXPR" where EXPR is one of
field<value, field>value, field=value, field<=value, field>=value,
field:value or _exists_:field. Clauses are applied in order.`,
		Example: `  coreapi search works --where "publisher=OJS" --where "or yearPublished>=2020"
  coreapi search journals --limit 5 --output json`,
	}

	cmd.AddCommand(newSearchKindCommand(coreapi.WorksSearch, "Search deduplicated research works"))
	cmd.AddCommand(newSearchKindCommand(coreapi.OutputsSearch, "Search research outputs"))
	cmd.AddCommand(newSearchKindCommand(coreapi.DataProvidersSearch, "Search data providers"))
	cmd.AddCommand(newSearchKindCommand(coreapi.JournalsSearch, "Search journals"))

	return cmd
}

func newSearchKindCommand(kind coreapi.SearchKind, short string) *cobra.Command {
	opts := &searchOptions{}

	cmd := &cobra.Command{
		Use:   kind.String(),
		Short: short,
		Long:  short + " matching the given filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.scrollSet = cmd.Flags().Changed("scroll")
			opts.statsSet = cmd.Flags().Changed("stats")

			query, err := buildQuery(opts)
			if err != nil {
				return err
			}

			client, err := createClient(cmd)
			if err != nil {
				return err
			}
			defer closeClient(client)

			return runSearch(cmd, client, kind, query)
		},
	}

	cmd.Flags().IntVar(&opts.limit, "limit", constants.DefaultPageSize, "maximum number of results")
	cmd.Flags().IntVar(&opts.offset, "offset", 0, "number of results to skip")
	cmd.Flags().BoolVar(&opts.scroll, "scroll", false, "request a scroll id for deep paging")
	cmd.Flags().BoolVar(&opts.stats, "stats", false, "request aggregate statistics")
	cmd.Flags().StringArrayVarP(&opts.where, "where", "w", nil, `filter clause "[and|or] EXPR", repeatable`)

	return cmd
}

func runSearch(cmd *cobra.Command, client coreapi.Client, kind coreapi.SearchKind, query coreapi.SearchQuery) error {
	ctx := commandContext(cmd)
	out := cmd.OutOrStdout()

	switch kind {
	case coreapi.WorksSearch, coreapi.OutputsSearch:
		search := client.SearchWorks
		if kind == coreapi.OutputsSearch {
			search = client.SearchOutputs
		}

		resp, err := search(ctx, query)
		if err != nil {
			return fmt.Errorf("failed to search %s: %w", kind, err)
		}

		return renderSearch(out, resp, []string{"ID", "Title", "Year", "DOI", "Publisher"}, workRow)
	case coreapi.DataProvidersSearch:
		resp, err := client.SearchDataProviders(ctx, query)
		if err != nil {
			return fmt.Errorf("failed to search %s: %w", kind, err)
		}

		return renderSearch(out, resp, []string{"ID", "Name", "Type", "Country", "Homepage"}, dataProviderRow)
	case coreapi.JournalsSearch:
		resp, err := client.SearchJournals(ctx, query)
		if err != nil {
			return fmt.Errorf("failed to search %s: %w", kind, err)
		}

		return renderSearch(out, resp, []string{"Title", "Publisher", "Language", "Identifiers"}, journalRow)
	default:
		return fmt.Errorf("%w: %s", constants.ErrUnsupportedSearchKind, kind)
	}
}

func renderSearch[T any](
	w io.Writer,
	resp *coreapi.Response[coreapi.SearchResponse[T]],
	header []string,
	row func(T) []string,
) error {
	page := resp.Payload

	return renderOutput(w, page, func(w io.Writer) error {
		if page.Len() == 0 {
			_, _ = io.WriteString(w, "No results found\n")
			writeRateLimit(w, resp.RateLimitRemaining)

			return nil
		}

		rows := make([][]string, 0, page.Len())
		for _, result := range page.Results {
			rows = append(rows, row(result))
		}

		err := renderTable(w, header, rows)
		if err != nil {
			return err
		}

		_, _ = fmt.Fprintf(w, "\nShowing %d of %s results\n", page.Len(), intValue(page.TotalHits))
		writeRateLimit(w, resp.RateLimitRemaining)

		return nil
	})
}

func workRow(work coreapi.Work) []string {
	year := constants.NotAvailable
	if work.YearPublished != nil {
		year = strconv.Itoa(int(*work.YearPublished))
	}

	return []string{
		intValue(work.ID),
		truncate(stringValue(work.Title)),
		year,
		stringValue(work.DOI),
		truncate(stringValue(work.Publisher)),
	}
}

func dataProviderRow(provider coreapi.DataProvider) []string {
	return []string{
		strconv.Itoa(provider.ID),
		truncate(orDefault(provider.Name, constants.NotAvailable)),
		titleCase(provider.Type),
		stringValue(provider.Location.CountryCode),
		stringValue(provider.HomepageURL),
	}
}

func journalRow(journal coreapi.Journal) []string {
	return []string{
		truncate(orDefault(journal.Title, constants.NotAvailable)),
		truncate(orDefault(journal.Publisher, constants.NotAvailable)),
		orDefault(journal.Language, constants.NotAvailable),
		joinOrNA(journal.Identifiers),
	}
}
