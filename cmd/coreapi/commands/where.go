package commands

import (
	"fmt"
	"strings"

	"github.com/VakeDomen/core-api-client/internal/constants"
	"github.com/VakeDomen/core-api-client/pkg/coreapi"
)

// parseWhere parses a --where clause of the form "[and|or] EXPR". Without a
// leading connector the clause is joined with AND.
func parseWhere(clause string) (coreapi.Connector, coreapi.Predicate, error) {
	clause = strings.TrimSpace(clause)
	connector := coreapi.And
	expr := clause

	if head, rest, found := strings.Cut(clause, " "); found {
		if parsed, err := coreapi.ParseConnector(head); err == nil {
			connector = parsed
			expr = rest
		}
	}

	predicate, err := coreapi.ParsePredicate(expr)
	if err != nil {
		return connector, coreapi.Predicate{}, fmt.Errorf("%w %q: %w", constants.ErrInvalidWhereClause, clause, err)
	}

	return connector, predicate, nil
}

// buildQuery turns search flags into a SearchQuery.
func buildQuery(opts *searchOptions) (coreapi.SearchQuery, error) {
	if opts.limit < 1 || opts.limit > constants.MaxPageSize {
		return coreapi.SearchQuery{}, fmt.Errorf("%w: %d (must be between 1 and %d)",
			constants.ErrInvalidPageSize, opts.limit, constants.MaxPageSize)
	}

	if opts.offset < 0 {
		return coreapi.SearchQuery{}, fmt.Errorf("%w: %d", constants.ErrInvalidOffset, opts.offset)
	}

	query := coreapi.PagedSearch(opts.limit, opts.offset)

	for _, clause := range opts.where {
		connector, predicate, err := parseWhere(clause)
		if err != nil {
			return coreapi.SearchQuery{}, err
		}

		query = query.Where(connector, predicate)
	}

	if opts.scrollSet {
		query = query.WithScroll(opts.scroll)
	}

	if opts.statsSet {
		query = query.WithStats(opts.stats)
	}

	return query, nil
}
