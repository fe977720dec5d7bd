package coreapi_test

import (
	"errors"
	"net/http"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/VakeDomen/core-api-client/pkg/coreapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rateLimitHeader(value string) http.Header {
	header := http.Header{}
	header.Set("X-RateLimit-Remaining", value)

	return header
}

func TestDecode_InvalidCredentialsIgnoresBody(t *testing.T) {
	t.Parallel()

	for _, body := range []string{"", `{"message":"Invalid API key"}`, "not json"} {
		_, err := coreapi.Decode[coreapi.Work](http.StatusUnauthorized, rateLimitHeader("5"), strings.NewReader(body))
		require.ErrorIs(t, err, coreapi.ErrInvalidCredentials)
		assert.True(t, coreapi.IsInvalidCredentials(err))
	}
}

func TestDecode_ServerError(t *testing.T) {
	t.Parallel()

	_, err := coreapi.Decode[coreapi.Work](http.StatusInternalServerError, nil, strings.NewReader("oops"))
	require.Error(t, err)

	var serverErr *coreapi.ServerError
	require.ErrorAs(t, err, &serverErr)
	assert.Equal(t, "oops", serverErr.Body)
	assert.Equal(t, http.StatusInternalServerError, serverErr.StatusCode)
	assert.True(t, coreapi.IsServerError(err))
}

func TestDecode_SearchResponse(t *testing.T) {
	t.Parallel()

	resp, err := coreapi.Decode[coreapi.SearchResponse[coreapi.Work]](
		http.StatusOK,
		rateLimitHeader("42"),
		strings.NewReader(`{"totalHits": 5, "limit": 10, "offset": 0, "results": []}`),
	)
	require.NoError(t, err)
	require.NotNil(t, resp.RateLimitRemaining)
	assert.Equal(t, 42, *resp.RateLimitRemaining)
	require.NotNil(t, resp.Payload.TotalHits)
	assert.Equal(t, 5, *resp.Payload.TotalHits)
	assert.Equal(t, 0, resp.Payload.Len())
}

func TestDecode_MalformedTotalHits(t *testing.T) {
	t.Parallel()

	_, err := coreapi.Decode[coreapi.SearchResponse[coreapi.Work]](
		http.StatusOK, nil, strings.NewReader(`{"totalHits": "not-a-number", "results": []}`),
	)
	require.Error(t, err)

	var decodeErr *coreapi.DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, "totalHits", decodeErr.Path)
	assert.NotEmpty(t, decodeErr.Message)
}

func TestDecode_MalformedNestedField(t *testing.T) {
	t.Parallel()

	_, err := coreapi.Decode[coreapi.SearchResponse[coreapi.Work]](
		http.StatusOK, nil, strings.NewReader(`{"totalHits": 2, "results": [{"yearPublished": 2020}, {"yearPublished": "soon"}]}`),
	)
	require.Error(t, err)

	var decodeErr *coreapi.DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, "results[1].yearPublished", decodeErr.Path)
	assert.Contains(t, decodeErr.Message, "soon")
}

func TestDecode_SyntaxError(t *testing.T) {
	t.Parallel()

	_, err := coreapi.Decode[coreapi.Journal](http.StatusOK, nil, strings.NewReader(`{"title": `))
	require.Error(t, err)

	var decodeErr *coreapi.DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, "$", decodeErr.Path)
	assert.True(t, coreapi.IsDecodeError(err))
}

func TestDecode_RateLimitHeader(t *testing.T) {
	t.Parallel()

	body := `{"fullTextLink": "https://example.org/a.pdf", "source": "repo"}`

	resp, err := coreapi.Decode[coreapi.Discovery](http.StatusOK, nil, strings.NewReader(body))
	require.NoError(t, err)
	assert.Nil(t, resp.RateLimitRemaining)

	resp, err = coreapi.Decode[coreapi.Discovery](http.StatusOK, rateLimitHeader("many"), strings.NewReader(body))
	require.NoError(t, err)
	assert.Nil(t, resp.RateLimitRemaining)
	assert.Equal(t, "https://example.org/a.pdf", resp.Payload.FullTextLink)

	resp, err = coreapi.Decode[coreapi.Discovery](http.StatusOK, rateLimitHeader(" 0 "), strings.NewReader(body))
	require.NoError(t, err)
	require.NotNil(t, resp.RateLimitRemaining)
	assert.Equal(t, 0, *resp.RateLimitRemaining)
}

func TestDecode_StatusError(t *testing.T) {
	t.Parallel()

	_, err := coreapi.Decode[coreapi.Work](http.StatusNotFound, nil, strings.NewReader(`{"message": "Not found"}`))
	require.Error(t, err)

	var statusErr *coreapi.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
	assert.Equal(t, "Not found", statusErr.Message)
	assert.True(t, coreapi.IsNotFound(err))
	assert.False(t, coreapi.IsRateLimited(err))

	_, err = coreapi.Decode[coreapi.Work](http.StatusTooManyRequests, nil, strings.NewReader("slow down"))
	assert.True(t, coreapi.IsRateLimited(err))
}

func TestDecode_BodyReadFailure(t *testing.T) {
	t.Parallel()

	readErr := errors.New("connection reset")

	_, err := coreapi.Decode[coreapi.Work](http.StatusOK, nil, iotest.ErrReader(readErr))
	require.Error(t, err)
	assert.True(t, coreapi.IsTransportError(err))
	require.ErrorIs(t, err, readErr)
}

func TestDecodeResponse_UsesOperationPayload(t *testing.T) {
	t.Parallel()

	resp, err := coreapi.DecodeResponse(
		http.StatusOK,
		rateLimitHeader("7"),
		strings.NewReader(`{"title": "Journal of Tests", "dataProviderId": "12"}`),
		coreapi.FetchByID{Entity: coreapi.JournalKind, ID: "issn:1"},
	)
	require.NoError(t, err)

	journal, ok := resp.Payload.(*coreapi.Journal)
	require.True(t, ok)
	assert.Equal(t, "Journal of Tests", journal.Title)

	id, ok := journal.DataProviderID.Int()
	require.True(t, ok)
	assert.Equal(t, 12, id)
	assert.Equal(t, 7, *resp.RateLimitRemaining)

	_, err = coreapi.DecodeResponse(http.StatusOK, nil, strings.NewReader("{}"), nil)
	require.ErrorIs(t, err, coreapi.ErrUnknownOperation)
}

func TestRateLimitFromHeader(t *testing.T) {
	t.Parallel()

	assert.Nil(t, coreapi.RateLimitFromHeader(nil))
	assert.Nil(t, coreapi.RateLimitFromHeader(http.Header{}))
	assert.Nil(t, coreapi.RateLimitFromHeader(rateLimitHeader("99999999999")))

	remaining := coreapi.RateLimitFromHeader(rateLimitHeader("42"))
	require.NotNil(t, remaining)
	assert.Equal(t, 42, *remaining)
}
