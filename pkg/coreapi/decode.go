package coreapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/VakeDomen/core-api-client/internal/constants"
)

// Response is a decoded service response.
type Response[T any] struct {
	// RateLimitRemaining is nil when the header was absent or not an integer.
	RateLimitRemaining *int
	Payload            T
}

// DecodeResponse classifies a raw response and decodes its body into the
// type selected by op. On success Payload holds a pointer to that type, e.g.
// *Work for a FetchByID of an output or *SearchResponse[Journal] for a
// journal search.
func DecodeResponse(status int, header http.Header, body io.Reader, op Operation) (*Response[any], error) {
	if op == nil {
		return nil, ErrUnknownOperation
	}

	payload, err := op.Kind().NewPayload()
	if err != nil {
		return nil, err
	}

	remaining, err := decodeInto(status, header, body, payload)
	if err != nil {
		return nil, err
	}

	return &Response[any]{RateLimitRemaining: remaining, Payload: payload}, nil
}

// Decode classifies a raw response and decodes its body into T.
func Decode[T any](status int, header http.Header, body io.Reader) (*Response[T], error) {
	var payload T

	remaining, err := decodeInto(status, header, body, &payload)
	if err != nil {
		return nil, err
	}

	return &Response[T]{RateLimitRemaining: remaining, Payload: payload}, nil
}

func decodeInto(status int, header http.Header, body io.Reader, target any) (*int, error) {
	switch status {
	case http.StatusUnauthorized:
		return nil, ErrInvalidCredentials
	case http.StatusInternalServerError:
		text, err := readBody(body)
		if err != nil {
			return nil, err
		}

		return nil, &ServerError{StatusCode: status, Body: string(text)}
	}

	remaining := RateLimitFromHeader(header)

	data, err := readBody(body)
	if err != nil {
		return remaining, err
	}

	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		return remaining, newStatusError(status, data)
	}

	err = json.Unmarshal(data, target)
	if err != nil {
		return remaining, toDecodeError(err)
	}

	return remaining, nil
}

// RateLimitFromHeader returns the remaining quota reported by the service, or
// nil when the header is absent or not an integer.
func RateLimitFromHeader(header http.Header) *int {
	if header == nil {
		return nil
	}

	raw := strings.TrimSpace(header.Get(constants.HeaderRateLimitRemaining))
	if raw == "" {
		return nil
	}

	n, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return nil
	}

	remaining := int(n)

	return &remaining
}

func readBody(body io.Reader) ([]byte, error) {
	if body == nil {
		return nil, nil
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, &TransportError{Op: "reading response body", Err: err}
	}

	return data, nil
}

// toDecodeError converts an encoding/json failure into a *DecodeError that
// names the JSON location of the mismatch.
func toDecodeError(err error) error {
	decodeErr := &DecodeError{}
	if errors.As(err, &decodeErr) {
		return err
	}

	typeErr := &json.UnmarshalTypeError{}
	if errors.As(err, &typeErr) {
		path := typeErr.Field
		if path == "" {
			path = "$"
		}

		return &DecodeError{
			Path:    path,
			Message: fmt.Sprintf("cannot use %s as %s", typeErr.Value, typeErr.Type),
			Err:     err,
		}
	}

	syntaxErr := &json.SyntaxError{}
	if errors.As(err, &syntaxErr) {
		return &DecodeError{
			Path:    "$",
			Message: fmt.Sprintf("%s at offset %d", syntaxErr.Error(), syntaxErr.Offset),
			Err:     err,
		}
	}

	return &DecodeError{Path: "$", Message: err.Error(), Err: err}
}
