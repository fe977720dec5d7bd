package coreapi

import (
	"encoding/json"
)

// Work is a deduplicated research work aggregated from one or more outputs.
// Outputs share the same schema.
type Work struct {
	ID                 *int               `json:"id,omitempty"                 yaml:"id,omitempty"`
	Title              *string            `json:"title,omitempty"              yaml:"title,omitempty"`
	AbstractText       *string            `json:"abstractText,omitempty"       yaml:"abstract_text,omitempty"`
	AcceptedDate       *string            `json:"acceptedDate,omitempty"       yaml:"accepted_date,omitempty"`
	ArxivID            *string            `json:"arxivId,omitempty"            yaml:"arxiv_id,omitempty"`
	Authors            []Author           `json:"authors,omitempty"            yaml:"authors,omitempty"`
	CitationCount      *int               `json:"citationCount,omitempty"      yaml:"citation_count,omitempty"`
	Contributors       []string           `json:"contributors,omitempty"       yaml:"contributors,omitempty"`
	Outputs            []string           `json:"outputs,omitempty"            yaml:"outputs,omitempty"`
	CreatedDate        *string            `json:"createdDate,omitempty"        yaml:"created_date,omitempty"`
	DataProviders      []WorkDataProvider `json:"dataProviders,omitempty"      yaml:"data_providers,omitempty"`
	DepositedDate      *string            `json:"depositedDate,omitempty"      yaml:"deposited_date,omitempty"`
	DocumentType       *string            `json:"documentType,omitempty"       yaml:"document_type,omitempty"`
	DOI                *string            `json:"doi,omitempty"                yaml:"doi,omitempty"`
	DownloadURL        *string            `json:"downloadUrl,omitempty"        yaml:"download_url,omitempty"`
	FieldOfStudy       *string            `json:"fieldOfStudy,omitempty"       yaml:"field_of_study,omitempty"`
	FullText           *string            `json:"fullText,omitempty"           yaml:"full_text,omitempty"`
	Identifiers        *IdentifierEntry   `json:"identifiers,omitempty"        yaml:"identifiers,omitempty"`
	Language           *Language          `json:"language,omitempty"           yaml:"language,omitempty"`
	MagID              *string            `json:"magId,omitempty"              yaml:"mag_id,omitempty"`
	OAIIDs             []string           `json:"oaiIds,omitempty"             yaml:"oai_ids,omitempty"`
	PublishedDate      *string            `json:"publishedDate,omitempty"      yaml:"published_date,omitempty"`
	Publisher          *string            `json:"publisher,omitempty"          yaml:"publisher,omitempty"`
	PubmedID           *string            `json:"pubmedId,omitempty"           yaml:"pubmed_id,omitempty"`
	References         []Reference        `json:"references,omitempty"         yaml:"references,omitempty"`
	SourceFulltextURLs []string           `json:"sourceFulltextUrls,omitempty" yaml:"source_fulltext_urls,omitempty"`
	Journals           []WorkJournal      `json:"journals,omitempty"           yaml:"journals,omitempty"`
	UpdatedDate        *string            `json:"updatedDate,omitempty"        yaml:"updated_date,omitempty"`
	YearPublished      *FlexInt           `json:"yearPublished,omitempty"      yaml:"year_published,omitempty"`
	Links              []LinkEntry        `json:"links,omitempty"              yaml:"links,omitempty"`
}

// Author of a work.
type Author struct {
	Name string `json:"name" yaml:"name"`
}

// Language of a work.
type Language struct {
	Code string `json:"code" yaml:"code"`
	Name string `json:"name" yaml:"name"`
}

// WorkDataProvider is the short data provider record embedded in a work.
type WorkDataProvider struct {
	ID   int    `json:"id"   yaml:"id"`
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url"  yaml:"url"`
	Logo string `json:"logo" yaml:"logo"`
}

// WorkJournal is the short journal record embedded in a work.
type WorkJournal struct {
	Title       string   `json:"title"       yaml:"title"`
	Identifiers []string `json:"identifiers" yaml:"identifiers"`
}

// Reference is a citation extracted from a work.
type Reference struct {
	ID      *int     `json:"id,omitempty"      yaml:"id,omitempty"`
	Authors []string `json:"authors,omitempty" yaml:"authors,omitempty"`
	Cites   *string  `json:"cites,omitempty"   yaml:"cites,omitempty"`
	Date    *string  `json:"date,omitempty"    yaml:"date,omitempty"`
	DOI     *string  `json:"doi,omitempty"     yaml:"doi,omitempty"`
	Raw     *string  `json:"raw,omitempty"     yaml:"raw,omitempty"`
	Title   *string  `json:"title,omitempty"   yaml:"title,omitempty"`
}

// DataProvider is a repository or journal platform harvested by the service.
type DataProvider struct {
	ID               int               `json:"id"                         yaml:"id"`
	OpenDoarID       *int              `json:"openDoarId,omitempty"       yaml:"open_doar_id,omitempty"`
	Name             string            `json:"name"                       yaml:"name"`
	Email            string            `json:"email"                      yaml:"email"`
	URI              *string           `json:"uri,omitempty"              yaml:"uri,omitempty"`
	OAIPMHURL        string            `json:"oaiPmhUrl"                  yaml:"oai_pmh_url"`
	HomepageURL      *string           `json:"homepageUrl,omitempty"      yaml:"homepage_url,omitempty"`
	Source           *string           `json:"source,omitempty"           yaml:"source,omitempty"`
	Software         *string           `json:"software,omitempty"         yaml:"software,omitempty"`
	MetadataFormat   string            `json:"metadataFormat"             yaml:"metadata_format"`
	CreatedDate      *string           `json:"createdDate,omitempty"      yaml:"created_date,omitempty"`
	Location         Location          `json:"location"                   yaml:"location"`
	Logo             string            `json:"logo"                       yaml:"logo"`
	Type             string            `json:"type"                       yaml:"type"`
	Stats            json.RawMessage   `json:"stats,omitempty"            yaml:"-"`
	RorID            *string           `json:"rorId,omitempty"            yaml:"ror_id,omitempty"`
	InstitutionName  *string           `json:"institutionName,omitempty"  yaml:"institution_name,omitempty"`
	Aliases          []string          `json:"aliases"                    yaml:"aliases"`
	OtherIdentifiers *OtherIdentifiers `json:"otherIdentifiers,omitempty" yaml:"other_identifiers,omitempty"`
}

// Location of a data provider.
type Location struct {
	CountryCode *string  `json:"countryCode,omitempty" yaml:"country_code,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty"    yaml:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"   yaml:"longitude,omitempty"`
}

// OtherIdentifiers lists registry identifiers of a data provider's institution.
type OtherIdentifiers struct {
	GRID     *IdentifierType `json:"GRID,omitempty"     yaml:"grid,omitempty"`
	ISNI     *IdentifierType `json:"ISNI,omitempty"     yaml:"isni,omitempty"`
	FundRef  *IdentifierType `json:"FundRef,omitempty"  yaml:"fund_ref,omitempty"`
	Wikidata *IdentifierType `json:"Wikidata,omitempty" yaml:"wikidata,omitempty"`
}

// IdentifierType holds the preferred identifier and the full list. The
// preferred value arrives as a string or a number; any other shape is
// treated as absent.
type IdentifierType struct {
	Preferred *FlexString     `json:"preferred,omitempty" yaml:"preferred,omitempty"`
	All       json.RawMessage `json:"all,omitempty"       yaml:"-"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *IdentifierType) UnmarshalJSON(data []byte) error {
	var wire struct {
		Preferred json.RawMessage `json:"preferred"`
		All       json.RawMessage `json:"all"`
	}

	err := json.Unmarshal(data, &wire)
	if err != nil {
		return err
	}

	*t = IdentifierType{All: wire.All}

	preferred, err := parseFlexString(wire.Preferred)
	if err == nil && preferred != nil {
		value := FlexString(*preferred)
		t.Preferred = &value
	}

	return nil
}

// Journal is a journal indexed by the service.
type Journal struct {
	Identifiers    []string `json:"identifiers"    yaml:"identifiers"`
	Language       string   `json:"language"       yaml:"language"`
	Publisher      string   `json:"publisher"      yaml:"publisher"`
	Subjects       []string `json:"subjects"       yaml:"subjects"`
	DataProviderID *FlexInt `json:"dataProviderId" yaml:"data_provider_id"`
	Title          string   `json:"title"          yaml:"title"`
}

// Discovery is the full-text location found for a DOI.
type Discovery struct {
	FullTextLink string `json:"fullTextLink" yaml:"full_text_link"`
	Source       string `json:"source"       yaml:"source"`
}
