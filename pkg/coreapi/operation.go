package coreapi

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// RequestDescriptor is the concrete HTTP request for one Operation. Path is
// relative to the service base URL.
type RequestDescriptor struct {
	Method string
	Path   string
	Body   []byte
}

// EntityKind selects the collection read by FetchByID.
type EntityKind int

const (
	DataProviderKind EntityKind = iota
	JournalKind
	OutputKind

	entityKindCount
)

// String returns the collection path segment.
func (k EntityKind) String() string {
	switch k {
	case DataProviderKind:
		return "data-providers"
	case JournalKind:
		return "journals"
	case OutputKind:
		return "outputs"
	default:
		return fmt.Sprintf("entity(%d)", int(k))
	}
}

// SearchKind selects the collection searched by Search.
type SearchKind int

const (
	WorksSearch SearchKind = iota
	OutputsSearch
	DataProvidersSearch
	JournalsSearch

	searchKindCount
)

// String returns the collection path segment.
func (k SearchKind) String() string {
	switch k {
	case WorksSearch:
		return "works"
	case OutputsSearch:
		return "outputs"
	case DataProvidersSearch:
		return "data-providers"
	case JournalsSearch:
		return "journals"
	default:
		return fmt.Sprintf("search(%d)", int(k))
	}
}

// OperationKind enumerates every operation the client can perform. Each kind
// maps to exactly one payload type, see OperationKind.NewPayload.
type OperationKind int

const (
	OpFetchDataProvider OperationKind = iota
	OpFetchJournal
	OpFetchOutput
	OpDiscover
	OpSearchWorks
	OpSearchOutputs
	OpSearchDataProviders
	OpSearchJournals

	operationKindCount
)

// AllOperationKinds returns every operation kind.
func AllOperationKinds() []OperationKind {
	kinds := make([]OperationKind, 0, operationKindCount)
	for k := range operationKindCount {
		kinds = append(kinds, k)
	}

	return kinds
}

// Valid reports whether k is one of the declared kinds.
func (k OperationKind) Valid() bool {
	return k >= 0 && k < operationKindCount
}

// String returns a readable name for the kind.
func (k OperationKind) String() string {
	switch k {
	case OpFetchDataProvider:
		return "fetch-data-provider"
	case OpFetchJournal:
		return "fetch-journal"
	case OpFetchOutput:
		return "fetch-output"
	case OpDiscover:
		return "discover"
	case OpSearchWorks:
		return "search-works"
	case OpSearchOutputs:
		return "search-outputs"
	case OpSearchDataProviders:
		return "search-data-providers"
	case OpSearchJournals:
		return "search-journals"
	default:
		return fmt.Sprintf("operation(%d)", int(k))
	}
}

// NewPayload returns a pointer to a zero value of the type a response to this
// kind decodes into.
func (k OperationKind) NewPayload() (any, error) {
	switch k {
	case OpFetchDataProvider:
		return new(DataProvider), nil
	case OpFetchJournal:
		return new(Journal), nil
	case OpFetchOutput:
		return new(Work), nil
	case OpDiscover:
		return new(Discovery), nil
	case OpSearchWorks, OpSearchOutputs:
		return new(SearchResponse[Work]), nil
	case OpSearchDataProviders:
		return new(SearchResponse[DataProvider]), nil
	case OpSearchJournals:
		return new(SearchResponse[Journal]), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownOperation, k)
	}
}

// Operation is a request the client can execute. The set of implementations
// is closed: FetchByID, Discover and Search.
type Operation interface {
	Kind() OperationKind
	Descriptor() (RequestDescriptor, error)
	operation()
}

// FetchByID reads a single data provider, journal or output.
type FetchByID struct {
	Entity EntityKind
	ID     string
}

// NewFetchByID returns a FetchByID operation. The id is rendered to text.
func NewFetchByID[I any](kind EntityKind, id I) FetchByID {
	return FetchByID{Entity: kind, ID: Render(id)}
}

func (FetchByID) operation() {}

// Kind implements Operation.
func (o FetchByID) Kind() OperationKind {
	switch o.Entity {
	case DataProviderKind:
		return OpFetchDataProvider
	case JournalKind:
		return OpFetchJournal
	case OutputKind:
		return OpFetchOutput
	default:
		return OperationKind(-1)
	}
}

// Descriptor implements Operation.
func (o FetchByID) Descriptor() (RequestDescriptor, error) {
	switch o.Entity {
	case DataProviderKind, JournalKind, OutputKind:
		return RequestDescriptor{Method: http.MethodGet, Path: o.Entity.String() + "/" + o.ID}, nil
	default:
		return RequestDescriptor{}, fmt.Errorf("%w: %s", ErrUnknownOperation, o.Entity)
	}
}

// Discover looks up a full-text link for a DOI.
type Discover struct {
	DOI string
}

func (Discover) operation() {}

// Kind implements Operation.
func (Discover) Kind() OperationKind { return OpDiscover }

// Descriptor implements Operation. The body is encoded as JSON so quotes and
// backslashes in the DOI are escaped.
func (o Discover) Descriptor() (RequestDescriptor, error) {
	body, err := json.Marshal(struct {
		DOI string `json:"doi"`
	}{DOI: o.DOI})
	if err != nil {
		return RequestDescriptor{}, fmt.Errorf("encoding discover body: %w", err)
	}

	return RequestDescriptor{Method: http.MethodPost, Path: "discover", Body: body}, nil
}

// Search runs a query against one searchable collection.
type Search struct {
	Collection SearchKind
	Query      SearchQuery
}

// NewSearch returns a Search operation.
func NewSearch(kind SearchKind, query SearchQuery) Search {
	return Search{Collection: kind, Query: query}
}

func (Search) operation() {}

// Kind implements Operation.
func (o Search) Kind() OperationKind {
	switch o.Collection {
	case WorksSearch:
		return OpSearchWorks
	case OutputsSearch:
		return OpSearchOutputs
	case DataProvidersSearch:
		return OpSearchDataProviders
	case JournalsSearch:
		return OpSearchJournals
	default:
		return OperationKind(-1)
	}
}

// Descriptor implements Operation.
func (o Search) Descriptor() (RequestDescriptor, error) {
	switch o.Collection {
	case WorksSearch, OutputsSearch, DataProvidersSearch, JournalsSearch:
		return RequestDescriptor{
			Method: http.MethodGet,
			Path:   "search/" + o.Collection.String() + "/" + o.Query.Encode(),
		}, nil
	default:
		return RequestDescriptor{}, fmt.Errorf("%w: %s", ErrUnknownOperation, o.Collection)
	}
}
