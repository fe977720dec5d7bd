package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/VakeDomen/core-api-client/internal/constants"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/viper"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// renderOutput writes data in the configured output format. Table output is
// delegated to table.
func renderOutput(w io.Writer, data interface{}, table func(io.Writer) error) error {
	switch viper.GetString(constants.ConfigKeyOutput) {
	case constants.FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", strings.Repeat(" ", constants.JSONIndentSize))

		err := encoder.Encode(data)
		if err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}

		return nil
	case constants.FormatYAML:
		encoder := yaml.NewEncoder(w)

		err := encoder.Encode(data)
		if err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}

		return encoder.Close()
	default:
		return table(w)
	}
}

// renderTable renders a table with the given header and rows.
func renderTable(w io.Writer, header []string, rows [][]string) error {
	table := tablewriter.NewWriter(w)

	headerCells := make([]any, len(header))
	for i, h := range header {
		headerCells[i] = h
	}

	table.Header(headerCells...)

	for _, row := range rows {
		_ = table.Append(row)
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

// renderProperties renders a two-column Property/Value table.
func renderProperties(w io.Writer, rows [][]string) error {
	return renderTable(w, []string{"Property", "Value"}, rows)
}

func truncate(s string) string {
	runes := []rune(s)
	if len(runes) <= constants.StringTruncationLength {
		return s
	}

	return string(runes[:constants.StringTruncationLength-3]) + "..."
}

// titleCase turns service enums such as "repository" into "Repository".
func titleCase(s string) string {
	if s == "" {
		return constants.NotAvailable
	}

	return cases.Title(language.English).String(s)
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}

	return s
}

func stringValue(s *string) string {
	if s == nil || *s == "" {
		return constants.NotAvailable
	}

	return *s
}

func intValue(i *int) string {
	if i == nil {
		return constants.NotAvailable
	}

	return strconv.Itoa(*i)
}

func joinOrNA(values []string) string {
	if len(values) == 0 {
		return constants.NotAvailable
	}

	return strings.Join(values, ", ")
}

// writeRateLimit reports the remaining quota after a table, when known.
func writeRateLimit(w io.Writer, remaining *int) {
	if remaining == nil {
		return
	}

	_, _ = fmt.Fprintf(w, "\nRemaining rate limit: %d\n", *remaining)
}
