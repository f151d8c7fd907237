package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600

	// ExportFilePerm is the permission for downloaded export files.
	ExportFilePerm = 0600
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// ExportHTTPTimeout is used when downloading audit log exports.
	ExportHTTPTimeout = 5 * time.Minute
)

// Retry limits.
const (
	// DefaultRetryMax is the default maximum number of retries.
	DefaultRetryMax = 5

	// DefaultRetryWaitMin is the minimum wait time between retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait time between retries.
	DefaultRetryWaitMax = 10 * time.Second
)

// Authentication constants.
const (
	// TokenExpirationBuffer is the buffer time before token expiration.
	TokenExpirationBuffer = 30 * time.Second
)

// Pagination limits per endpoint.
const (
	// SessionsMaxPageSize is the page size cap of the sessions endpoint.
	SessionsMaxPageSize = 50

	// SessionsDefaultPageSize is the default page size for session listings.
	SessionsDefaultPageSize = 50

	// AuditDefaultPageSize is the default page size for audit log searches.
	AuditDefaultPageSize = 100

	// AuditMaxPageSize is the page size cap of the audit log endpoint.
	AuditMaxPageSize = 10000

	// TrustedActivitiesDefaultPageSize is the default page size for trusted
	// activity listings.
	TrustedActivitiesDefaultPageSize = 100

	// TrustedActivitiesStartPage is the first page number of the trusted
	// activities endpoint.
	TrustedActivitiesStartPage = 1
)

// Input limits.
const (
	// MaxNoteLength is the character cap for session and alert notes.
	MaxNoteLength = 2000
)

// Format constants.
const (
	// FormatJSON for JSON output format.
	FormatJSON = "json"

	// FormatYAML for YAML output format.
	FormatYAML = "yaml"

	// FormatCSV for CSV output format.
	FormatCSV = "csv"

	// FormatTable for table output format.
	FormatTable = "table"
)

// UI and display constants.
const (
	// NotAvailable is used when information is not available.
	NotAvailable = "N/A"

	// MaskedSecret is used to hide sensitive information.
	MaskedSecret = "***"

	// NoteDisplayLength is the length for displaying notes in tables.
	NoteDisplayLength = 60

	// IndicatorDisplayLength is the length for displaying risk indicators.
	IndicatorDisplayLength = 40
)

// Boolean string constants.
const (
	// BooleanTrue string representation.
	BooleanTrue = "true"

	// BooleanFalse string representation.
	BooleanFalse = "false"
)
