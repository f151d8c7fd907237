package incydr

import (
	"context"
	"time"
)

// Client provides access to all Incydr resource clients. Every sub-client is
// constructed when the client is built, so the accessors never fail and
// always return the same instance.
type Client interface {
	Sessions() SessionsClient
	AuditLog() AuditLogClient
	Alerts() AlertsClient
	FileEvents() FileEventsClient
	TrustedActivities() TrustedActivitiesClient
}

// SessionsClient works with alert sessions.
type SessionsClient interface {
	// Get fetches a single session by ID.
	Get(ctx context.Context, sessionID string) (*Session, error)
	// GetPage fetches one page of sessions matching the params.
	GetPage(ctx context.Context, params *SessionQueryParams) (*SessionsPage, error)
	// IterAll iterates every session matching the params, fetching pages
	// lazily as the iterator advances.
	IterAll(ctx context.Context, params *SessionQueryParams) *OffsetIterator[Session]
	// GetEvents fetches the file events attached to a session.
	GetEvents(ctx context.Context, sessionID string) (*FileEventsPage, error)
	// UpdateStateByID sets the state of the given sessions. IDs are sent in
	// API-sized batches; a failed batch stops the remaining ones, and
	// batches already applied stay applied.
	UpdateStateByID(ctx context.Context, newState SessionState, sessionIDs ...string) error
	// UpdateStateByCriteria sets the state of every session matching the
	// params, draining the server's continuation tokens until none is
	// returned. It reports the number of requests made.
	UpdateStateByCriteria(ctx context.Context, newState SessionState, params *SessionQueryParams) (int, error)
	// AddNote attaches a note to a session. Notes are capped at 2000
	// characters; longer input fails with a ValidationError before any
	// request is sent.
	AddNote(ctx context.Context, sessionID, note string) error
}

// AuditLogClient searches and exports the tenant audit log.
type AuditLogClient interface {
	// GetPage runs a search and returns one page of results.
	GetPage(ctx context.Context, query *AuditQuery) (*AuditEventsPage, error)
	// IterAll iterates every matching audit event.
	IterAll(ctx context.Context, query *AuditQuery) *OffsetIterator[AuditEvent]
	// SearchEvents returns the full (unpaged) result set, up to the server's
	// export cap.
	SearchEvents(ctx context.Context, query *AuditQuery) ([]AuditEvent, error)
	// GetEventCount returns the number of events matching the query.
	GetEventCount(ctx context.Context, query *AuditQuery) (int64, error)
	// DownloadEvents exports matching events as CSV into targetFolder and
	// returns the path of the written file. targetFolder must be an existing
	// directory.
	DownloadEvents(ctx context.Context, query *AuditQuery, targetFolder string) (string, error)
}

// AlertsClient works with rule-triggered alerts.
type AlertsClient interface {
	// Search runs an alert query and returns one page of results.
	Search(ctx context.Context, query *AlertQuery) (*AlertsPage, error)
	// IterAll iterates every alert matching the query.
	IterAll(ctx context.Context, query *AlertQuery) *OffsetIterator[Alert]
	// GetDetails fetches full alert payloads for the given IDs, batching
	// requests at the API limit.
	GetDetails(ctx context.Context, alertIDs ...string) ([]AlertDetail, error)
	// AddNote attaches a note to an alert.
	AddNote(ctx context.Context, alertID, note string) error
	// ChangeState sets the state of the given alerts, batching at the API
	// limit. The note is optional.
	ChangeState(ctx context.Context, state AlertState, note string, alertIDs ...string) error
}

// FileEventsClient searches file events (V2 schema).
type FileEventsClient interface {
	// Search runs an event query and returns one page of results.
	Search(ctx context.Context, query *EventQuery) (*FileEventsPage, error)
	// IterAll iterates every matching event, following next-page tokens
	// until the server stops returning one.
	IterAll(ctx context.Context, query *EventQuery) *TokenIterator[FileEventV2]
}

// TrustedActivitiesClient manages trusted activity exclusions.
type TrustedActivitiesClient interface {
	Get(ctx context.Context, activityID string) (*TrustedActivity, error)
	GetPage(ctx context.Context, params *TrustedActivitiesQueryParams) (*TrustedActivitiesPage, error)
	IterAll(ctx context.Context, params *TrustedActivitiesQueryParams) *OffsetIterator[TrustedActivity]
	Create(ctx context.Context, activity *TrustedActivity) (*TrustedActivity, error)
	CreateForDomain(ctx context.Context, domain, description string) (*TrustedActivity, error)
	CreateForURLPath(ctx context.Context, urlPath, description string) (*TrustedActivity, error)
	CreateForSlack(ctx context.Context, workspace, description string) (*TrustedActivity, error)
	CreateForAccountName(ctx context.Context, accountName, description string) (*TrustedActivity, error)
	CreateForGitURI(ctx context.Context, gitURI, description string) (*TrustedActivity, error)
	Update(ctx context.Context, activity *TrustedActivity) (*TrustedActivity, error)
	Delete(ctx context.Context, activityID string) error
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building an incydr.Client.
//
// # Authentication precedence
//
//  1. AccessToken: if set, it is used directly as a static Bearer token.
//  2. APIClientID/APIClientSecret: the client obtains a token from the
//     /v1/oauth endpoint using HTTP basic auth and refreshes it shortly
//     before expiry.
//
// At least one of the two must be provided.
//
// # Timeouts and retries
//
// Per-request timeouts should generally be controlled via the context passed
// to client methods. Retry behavior for transient failures (429, 5xx,
// connection errors) can be tuned via RetryMax/RetryWaitMin/RetryWaitMax.
type Config struct {
	// APIEndpoint: base URL for the Incydr API, e.g.
	// "https://api.us.code42.com". incydrclient.New normalizes this value by
	// trimming a trailing slash and adding "https://" if no scheme is
	// present.
	APIEndpoint string

	// APIClientID: ID of an Incydr API client.
	APIClientID string
	// APIClientSecret: secret paired with APIClientID.
	APIClientSecret string
	// AccessToken: if set, used directly as a Bearer token instead of the
	// client-credentials exchange.
	AccessToken string

	// PageSize: default page size for list iteration. Resource clients clamp
	// it to their endpoint's maximum. If 0, each endpoint's default is used.
	PageSize int
	// RetryMax: maximum number of retries for transient failures. If 0, a
	// sensible default is used.
	RetryMax int
	// RetryWaitMin: minimum backoff between retries.
	RetryWaitMin time.Duration
	// RetryWaitMax: maximum backoff between retries.
	RetryWaitMax time.Duration
	// Debug: enables verbose HTTP request/response logging when a Logger is
	// provided.
	Debug bool
	// Logger: optional structured logger used by the HTTP layer.
	Logger Logger
	// UserAgent: overrides the default User-Agent header sent by the client.
	UserAgent string
}
