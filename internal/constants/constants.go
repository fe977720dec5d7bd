package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// Service endpoints.
const (
	// DefaultAPIEndpoint is the CORE v3 API base URL.
	DefaultAPIEndpoint = "https://api.core.ac.uk/v3"

	// DefaultUserAgent is sent when the caller does not override it.
	DefaultUserAgent = "core-api-client-go"
)

// HTTP headers read or written by the client.
const (
	// HeaderRateLimitRemaining carries the server-reported remaining quota.
	HeaderRateLimitRemaining = "x-ratelimit-remaining"

	// HeaderAuthorization carries the bearer API key.
	HeaderAuthorization = "Authorization"

	// HeaderContentType is set on requests with a body.
	HeaderContentType = "Content-Type"

	// ContentTypeJSON is the media type for request and response bodies.
	ContentTypeJSON = "application/json"
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// ShortHTTPTimeout is used for quick operations.
	ShortHTTPTimeout = 10 * time.Second
)

// Retry limits.
const (
	// DefaultRetryMax is the default maximum number of retries.
	DefaultRetryMax = 3

	// DefaultRetryWaitMin is the minimum wait time between retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait time between retries.
	DefaultRetryWaitMax = 10 * time.Second

	// MaxResponseBodySize caps how much of a response body is read.
	MaxResponseBodySize = 32 << 20
)

// Search defaults.
const (
	// DefaultPageSize is the page size used by the CLI when none is given.
	DefaultPageSize = 10

	// MaxPageSize is the largest limit accepted by the search endpoints.
	MaxPageSize = 100
)

// Cache defaults.
const (
	// DefaultCacheSize is the default cache size limit.
	DefaultCacheSize = 1000

	// DefaultCacheTTL is how long a cached response stays valid.
	DefaultCacheTTL = 5 * time.Minute

	// DefaultNATSBucket is the key-value bucket used by the NATS cache.
	DefaultNATSBucket = "core_api_cache"
)

// Format constants.
const (
	// FormatJSON for JSON output format.
	FormatJSON = "json"

	// FormatYAML for YAML output format.
	FormatYAML = "yaml"

	// FormatTable for table output format.
	FormatTable = "table"

	// JSONIndentSize is the number of spaces for JSON indentation.
	JSONIndentSize = 2

	// StringTruncationLength is the width at which table cells are cut.
	StringTruncationLength = 80
)

// UI and display constants.
const (
	// NotAvailable is shown for empty table cells.
	NotAvailable = "N/A"

	// MaskedSecret replaces secrets in displayed configuration.
	MaskedSecret = "***"

	// MinimumArgumentCount is the argument count of key/value commands.
	MinimumArgumentCount = 2
)

// Configuration keys shared by flags, environment and the config file.
const (
	ConfigKeyAPI               = "api"
	ConfigKeyAPIKey            = "api_key"
	ConfigKeyOutput            = "output"
	ConfigKeyVerbose           = "verbose"
	ConfigKeyLogLevel          = "log_level"
	ConfigKeyLogTarget         = "log_target"
	ConfigKeyLogRawResponse    = "log_raw_response"
	ConfigKeyRequestsPerSecond = "requests_per_second"
	ConfigKeyCache             = "cache"
	ConfigKeyCacheTTL          = "cache_ttl"
	ConfigKeyNATSURL           = "nats_url"

	// EnvPrefix is prepended to configuration keys to form environment variable names.
	EnvPrefix = "CORE"

	// ConfigDirName is the directory under $HOME holding the config file.
	ConfigDirName = ".coreapi"

	// DefaultLogLevel is used when neither --verbose nor log_level is set.
	DefaultLogLevel = "warn"
)
