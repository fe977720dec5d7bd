package coreapi

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strconv"
)

// jsonShape reports the kind of JSON value held in data by peeking at its
// first significant byte.
func jsonShape(data []byte) string {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return "empty"
	}

	switch data[0] {
	case 'n':
		return "null"
	case '"':
		return "string"
	case '{':
		return "object"
	case '[':
		return "array"
	case 't', 'f':
		return "bool"
	default:
		return "number"
	}
}

// FlexInt is an integer the service sends either as a JSON number or as a
// numeric string. Null and absent values decode to a nil *FlexInt.
type FlexInt int

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexInt) UnmarshalJSON(data []byte) error {
	n, err := parseFlexInt(data)
	if err != nil {
		return err
	}

	if n != nil {
		*f = FlexInt(*n)
	}

	return nil
}

// Int returns the value as a plain int.
func (f *FlexInt) Int() (int, bool) {
	if f == nil {
		return 0, false
	}

	return int(*f), true
}

func parseFlexInt(data []byte) (*int, error) {
	shape := jsonShape(data)

	switch shape {
	case "null", "empty":
		return nil, nil //nolint:nilnil // absent value is not an error
	case "number":
		var n int
		if err := json.Unmarshal(data, &n); err != nil {
			return nil, &json.UnmarshalTypeError{Value: "number " + string(data), Type: reflect.TypeFor[int]()}
		}

		return &n, nil
	case "string":
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, &json.UnmarshalTypeError{Value: shape, Type: reflect.TypeFor[int]()}
		}

		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, &json.UnmarshalTypeError{Value: "string " + strconv.Quote(s), Type: reflect.TypeFor[int]()}
		}

		return &n, nil
	default:
		return nil, &json.UnmarshalTypeError{Value: shape, Type: reflect.TypeFor[int]()}
	}
}

// FlexString is text the service sends either as a JSON string or as a
// number; numbers keep their literal representation.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexString) UnmarshalJSON(data []byte) error {
	s, err := parseFlexString(data)
	if err != nil {
		return err
	}

	if s != nil {
		*f = FlexString(*s)
	}

	return nil
}

// String implements fmt.Stringer.
func (f FlexString) String() string { return string(f) }

func parseFlexString(data []byte) (*string, error) {
	shape := jsonShape(data)

	switch shape {
	case "null", "empty":
		return nil, nil //nolint:nilnil // absent value is not an error
	case "number":
		s := string(bytes.TrimSpace(data))

		return &s, nil
	case "string":
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, &json.UnmarshalTypeError{Value: shape, Type: reflect.TypeFor[string]()}
		}

		return &s, nil
	default:
		return nil, &json.UnmarshalTypeError{Value: shape, Type: reflect.TypeFor[string]()}
	}
}

// LinkEntry is a work link, sent either as a bare URL string or as an object
// with a type and URL. Exactly one of Raw or Link is set.
type LinkEntry struct {
	Raw  string `json:"-"`
	Link *Link  `json:"-"`
}

// Link is the structured form of a LinkEntry.
type Link struct {
	Type string `json:"type" yaml:"type"`
	URL  string `json:"url"  yaml:"url"`
}

// URL returns the link target regardless of the form it arrived in.
func (l LinkEntry) URL() string {
	if l.Link != nil {
		return l.Link.URL
	}

	return l.Raw
}

// UnmarshalJSON implements json.Unmarshaler.
func (l *LinkEntry) UnmarshalJSON(data []byte) error {
	switch shape := jsonShape(data); shape {
	case "string":
		return json.Unmarshal(data, &l.Raw)
	case "object":
		var link Link
		if err := json.Unmarshal(data, &link); err != nil {
			return err
		}

		l.Link = &link

		return nil
	case "null":
		return nil
	default:
		return &json.UnmarshalTypeError{Value: shape, Type: reflect.TypeFor[LinkEntry]()}
	}
}

// MarshalJSON writes the entry back in the form it was received.
func (l LinkEntry) MarshalJSON() ([]byte, error) {
	if l.Link != nil {
		return json.Marshal(l.Link)
	}

	return json.Marshal(l.Raw)
}

// IdentifierEntry holds the identifiers of a work. Works carry a list of
// typed identifiers while outputs carry an object with DOI and OAI fields.
// Exactly one of List or DOI is set.
type IdentifierEntry struct {
	List []Identifier
	DOI  *DOIIdentifier
}

// Identifier is one typed identifier of a work.
type Identifier struct {
	Identifier string `json:"identifier" yaml:"identifier"`
	Type       string `json:"type"       yaml:"type"`
}

// DOIIdentifier is the identifier object attached to outputs.
type DOIIdentifier struct {
	DOI *string `json:"doi,omitempty" yaml:"doi,omitempty"`
	OAI *string `json:"oai,omitempty" yaml:"oai,omitempty"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (e *IdentifierEntry) UnmarshalJSON(data []byte) error {
	switch shape := jsonShape(data); shape {
	case "array":
		return json.Unmarshal(data, &e.List)
	case "object":
		var doi DOIIdentifier
		if err := json.Unmarshal(data, &doi); err != nil {
			return err
		}

		e.DOI = &doi

		return nil
	case "null":
		return nil
	default:
		return &json.UnmarshalTypeError{Value: shape, Type: reflect.TypeFor[IdentifierEntry]()}
	}
}

// MarshalJSON writes the entry back in the form it was received.
func (e IdentifierEntry) MarshalJSON() ([]byte, error) {
	if e.DOI != nil {
		return json.Marshal(e.DOI)
	}

	return json.Marshal(e.List)
}

// MarshalYAML writes the entry in the form it was received.
func (l LinkEntry) MarshalYAML() (interface{}, error) {
	if l.Link != nil {
		return l.Link, nil
	}

	return l.Raw, nil
}

// MarshalYAML writes the entry in the form it was received.
func (e IdentifierEntry) MarshalYAML() (interface{}, error) {
	if e.DOI != nil {
		return e.DOI, nil
	}

	return e.List, nil
}
