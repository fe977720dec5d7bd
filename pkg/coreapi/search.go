package coreapi

import (
	"encoding/json"
	"errors"
	"fmt"
)

// SearchResponse is one page of search hits.
type SearchResponse[T any] struct {
	TotalHits *int        `json:"totalHits,omitempty" yaml:"total_hits,omitempty"`
	Limit     *int        `json:"limit,omitempty"     yaml:"limit,omitempty"`
	Offset    *int        `json:"offset,omitempty"    yaml:"offset,omitempty"`
	ScrollID  *FlexString `json:"scrollId,omitempty"  yaml:"scroll_id,omitempty"`
	Results   []T         `json:"results"             yaml:"results"`
	Tooks     *FlexString `json:"tooks,omitempty"     yaml:"tooks,omitempty"`
	ESTook    *FlexString `json:"esTook,omitempty"    yaml:"es_took,omitempty"`
}

// searchResponseWire defers totalHits, limit and the hits so their shape can
// be checked before conversion.
type searchResponseWire struct {
	TotalHits json.RawMessage   `json:"totalHits"`
	Limit     json.RawMessage   `json:"limit"`
	Offset    *int              `json:"offset"`
	ScrollID  *FlexString       `json:"scrollId"`
	Results   []json.RawMessage `json:"results"`
	Tooks     *FlexString       `json:"tooks"`
	ESTook    *FlexString       `json:"esTook"`
}

// UnmarshalJSON accepts totalHits and limit as numbers, numeric strings or
// null. Any other shape fails with a *DecodeError naming the field. Hits are
// decoded one by one so a failure names its index, e.g.
// "results[3].yearPublished".
func (r *SearchResponse[T]) UnmarshalJSON(data []byte) error {
	var wire searchResponseWire

	err := json.Unmarshal(data, &wire)
	if err != nil {
		return err
	}

	totalHits, err := parseFlexInt(wire.TotalHits)
	if err != nil {
		return &DecodeError{Path: "totalHits", Message: describeTypeError(err), Err: err}
	}

	limit, err := parseFlexInt(wire.Limit)
	if err != nil {
		return &DecodeError{Path: "limit", Message: describeTypeError(err), Err: err}
	}

	var results []T
	if wire.Results != nil {
		results = make([]T, len(wire.Results))
	}

	for i, raw := range wire.Results {
		err = json.Unmarshal(raw, &results[i])
		if err != nil {
			return resultError(i, err)
		}
	}

	*r = SearchResponse[T]{
		TotalHits: totalHits,
		Limit:     limit,
		Offset:    wire.Offset,
		ScrollID:  wire.ScrollID,
		Results:   results,
		Tooks:     wire.Tooks,
		ESTook:    wire.ESTook,
	}

	return nil
}

// Len returns the number of hits in this page.
func (r *SearchResponse[T]) Len() int {
	return len(r.Results)
}

// resultError locates err inside the i-th hit.
func resultError(i int, err error) error {
	path := fmt.Sprintf("results[%d]", i)

	decodeErr := &DecodeError{}
	if errors.As(err, &decodeErr) {
		return &DecodeError{Path: path + "." + decodeErr.Path, Message: decodeErr.Message, Err: decodeErr.Err}
	}

	typeErr := &json.UnmarshalTypeError{}
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		path += "." + typeErr.Field
	}

	return &DecodeError{Path: path, Message: describeTypeError(err), Err: err}
}

func describeTypeError(err error) string {
	typeErr := &json.UnmarshalTypeError{}
	if errors.As(err, &typeErr) {
		return fmt.Sprintf("cannot use %s as %s", typeErr.Value, typeErr.Type)
	}

	return err.Error()
}
