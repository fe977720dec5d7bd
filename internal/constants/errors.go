package constants

import "errors"

// Configuration errors.
var (
	ErrNoAPIKeyConfigured = errors.New("no API key configured, use 'coreapi login' or set CORE_API_KEY")
	ErrUnknownConfigKey   = errors.New("unknown configuration key")
	ErrEmptyAPIKey        = errors.New("API key must not be empty")
)

// Command errors.
var (
	ErrUnsupportedEntity     = errors.New("unsupported entity type")
	ErrUnsupportedSearchKind = errors.New("unsupported search kind")
	ErrInvalidWhereClause    = errors.New("invalid --where clause")
)

// Flag validation errors.
var (
	ErrInvalidPageSize = errors.New("invalid page size")
	ErrInvalidOffset   = errors.New("offset must not be negative")
	ErrInvalidCacheTTL = errors.New("invalid cache TTL")
)
