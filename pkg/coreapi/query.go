package coreapi

import (
	"slices"
	"strconv"
	"strings"
)

// SearchQuery accumulates pagination parameters and a filter chain for the
// search endpoints.
//
// SearchQuery is a value type. Every builder method returns a new query and
// leaves the receiver untouched, so a partially built query can be reused as
// the base of several searches.
//
//	q := coreapi.PagedSearch(10, 0).
//		And(coreapi.Exists("doi")).
//		And(coreapi.Bigger("citationCount", 20))
type SearchQuery struct {
	filters []Filter
	limit   *int
	offset  *int
	scroll  *bool
	stats   *bool
}

// NewSearchQuery returns a query with no pagination and no filters.
func NewSearchQuery() SearchQuery {
	return SearchQuery{}
}

// PagedSearch returns a query with limit and offset set.
func PagedSearch(limit, offset int) SearchQuery {
	return SearchQuery{limit: &limit, offset: &offset}
}

// And appends predicate joined with AND.
func (q SearchQuery) And(predicate Predicate) SearchQuery {
	return q.with(And, predicate)
}

// Or appends predicate joined with OR.
func (q SearchQuery) Or(predicate Predicate) SearchQuery {
	return q.with(Or, predicate)
}

// Where appends predicate joined with the given connector.
func (q SearchQuery) Where(connector Connector, predicate Predicate) SearchQuery {
	return q.with(connector, predicate)
}

func (q SearchQuery) with(connector Connector, predicate Predicate) SearchQuery {
	// Clip forces append to copy, so the receiver's chain is never shared.
	q.filters = append(slices.Clip(q.filters), Filter{Connector: connector, Predicate: predicate})

	return q
}

// WithLimit sets the maximum number of hits returned.
func (q SearchQuery) WithLimit(limit int) SearchQuery {
	q.limit = &limit

	return q
}

// WithOffset sets the number of hits skipped.
func (q SearchQuery) WithOffset(offset int) SearchQuery {
	q.offset = &offset

	return q
}

// WithScroll enables or disables scroll mode.
func (q SearchQuery) WithScroll(scroll bool) SearchQuery {
	q.scroll = &scroll

	return q
}

// WithStats enables or disables aggregation statistics.
func (q SearchQuery) WithStats(stats bool) SearchQuery {
	q.stats = &stats

	return q
}

// Limit returns the limit and whether it is set.
func (q SearchQuery) Limit() (int, bool) { return deref(q.limit) }

// Offset returns the offset and whether it is set.
func (q SearchQuery) Offset() (int, bool) { return deref(q.offset) }

// Scroll returns the scroll flag and whether it is set.
func (q SearchQuery) Scroll() (bool, bool) { return deref(q.scroll) }

// Stats returns the stats flag and whether it is set.
func (q SearchQuery) Stats() (bool, bool) { return deref(q.stats) }

// Filters returns a copy of the filter chain in insertion order.
func (q SearchQuery) Filters() []Filter {
	return slices.Clone(q.filters)
}

// Encode serializes the query into the URL query string appended to a search
// path. Parameters are emitted in a fixed order; the filter chain follows
// "&q=" and keeps insertion order, including the connector of the first
// entry. When no pagination parameter is set the result starts with "?&q=".
func (q SearchQuery) Encode() string {
	var b strings.Builder

	b.WriteByte('?')

	if q.limit != nil {
		b.WriteString("limit=")
		b.WriteString(strconv.Itoa(*q.limit))
	}

	if q.offset != nil {
		b.WriteString("&offset=")
		b.WriteString(strconv.Itoa(*q.offset))
	}

	if q.scroll != nil {
		b.WriteString("&scroll=")
		b.WriteString(strconv.FormatBool(*q.scroll))
	}

	if q.stats != nil {
		b.WriteString("&stats=")
		b.WriteString(strconv.FormatBool(*q.stats))
	}

	if len(q.filters) == 0 {
		return b.String()
	}

	b.WriteString("&q=")

	for _, f := range q.filters {
		b.WriteString(f.String())
	}

	return b.String()
}

// String implements fmt.Stringer.
func (q SearchQuery) String() string {
	return q.Encode()
}

func deref[T any](p *T) (T, bool) {
	if p == nil {
		var zero T

		return zero, false
	}

	return *p, true
}
