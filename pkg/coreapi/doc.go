// Package coreapi provides types, interfaces, and helpers for working with the
// CORE v3 scholarly metadata API.
//
// # Overview
//
// The package defines the search query builder, the operations the service
// supports, the mapping from an operation to its HTTP request, and the
// decoder that turns a raw HTTP response into a typed result or a typed
// error. A concrete client is provided by the coreclient package.
//
// # Queries
//
// A SearchQuery is a flat chain of predicates joined by AND or OR, plus
// optional pagination. Predicates accept any key and value type; values are
// rendered to text when the predicate is built.
//
//	q := coreapi.PagedSearch(10, 0).
//	  And(coreapi.Eq("publisher", "OJS")).
//	  Or(coreapi.BiggerEq("yearPublished", 2020))
//
//	q.Encode() // "?limit=10&offset=0&q=%20AND%20publisher=OJS%20OR%20yearPublished>=2020"
//
// The connector of the first predicate is emitted too, and a query without
// pagination encodes as "?&q=...". The service accepts both forms.
//
// # Operations and decoding
//
// FetchByID, Discover and Search implement Operation. Descriptor returns the
// method, relative path and body of the request; DecodeResponse decodes the
// response into the payload type selected by the operation's Kind.
//
// # Errors
//
// Decoding fails with ErrInvalidCredentials on 401, *ServerError on 500,
// *StatusError on any other unexpected status, *TransportError when the body
// cannot be read, and *DecodeError when the body does not match the schema.
// Helpers such as IsInvalidCredentials, IsServerError and IsDecodeError make
// it easy to branch on them. The x-ratelimit-remaining header is best-effort
// and never causes an error.
//
// # Caching
//
// Cache is a small pluggable abstraction with in-memory, NATS JetStream
// key-value and no-op backends, built by NewCacheFromConfig.
package coreapi
