package incydr

// SessionState is the review state of an alert session.
type SessionState string

// Session states.
const (
	SessionStateOpen        SessionState = "OPEN"
	SessionStateOpenNewData SessionState = "OPEN_NEW_DATA"
	SessionStateInProgress  SessionState = "IN_PROGRESS"
	SessionStateClosed      SessionState = "CLOSED"
	SessionStateClosedTP    SessionState = "CLOSED_TP"
	SessionStateClosedFP    SessionState = "CLOSED_FP"
)

// SessionSeverity is the numeric risk severity of a session.
type SessionSeverity int

// Session severities.
const (
	SeverityNoRisk   SessionSeverity = 0
	SeverityLow      SessionSeverity = 1
	SeverityModerate SessionSeverity = 2
	SeverityHigh     SessionSeverity = 3
	SeverityCritical SessionSeverity = 4
)

// AlertState is the review state of an alert.
type AlertState string

// Alert states.
const (
	AlertStateOpen       AlertState = "OPEN"
	AlertStateInProgress AlertState = "IN_PROGRESS"
	AlertStatePending    AlertState = "PENDING"
	AlertStateResolved   AlertState = "RESOLVED"
)

// AlertSeverity is the rule severity attached to an alert.
type AlertSeverity string

// Alert severities.
const (
	AlertSeverityLow      AlertSeverity = "LOW"
	AlertSeverityMedium   AlertSeverity = "MEDIUM"
	AlertSeverityHigh     AlertSeverity = "HIGH"
	AlertSeverityCritical AlertSeverity = "CRITICAL"
)

// SortDirection orders list results.
type SortDirection string

// Sort directions.
const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// SessionsSortKey names a sortable field of the sessions endpoint.
type SessionsSortKey string

// Sessions sort keys.
const (
	SessionsSortEndTime SessionsSortKey = "end_time"
	SessionsSortScore   SessionsSortKey = "score"
)

// UserType classifies the actor of an audit log event.
type UserType string

// Audit log actor types.
const (
	UserTypeUser        UserType = "USER"
	UserTypeSupportUser UserType = "SUPPORT_USER"
	UserTypeAPIClient   UserType = "API_CLIENT"
	UserTypeSystem      UserType = "SYSTEM"
	UserTypeUnknown     UserType = "UNKNOWN"
)

// ContentInspectionStatus is the inspection state of a session's events.
type ContentInspectionStatus string

// Content inspection statuses.
const (
	ContentInspectionPending  ContentInspectionStatus = "PENDING"
	ContentInspectionFound    ContentInspectionStatus = "FOUND"
	ContentInspectionNotFound ContentInspectionStatus = "NOT_FOUND"
)

// TrustedActivityType identifies the kind of a trusted activity entry.
type TrustedActivityType string

// Trusted activity types.
const (
	TrustedActivityDomain      TrustedActivityType = "DOMAIN"
	TrustedActivityURLPath     TrustedActivityType = "URL_PATH"
	TrustedActivitySlack       TrustedActivityType = "SLACK"
	TrustedActivityAccountName TrustedActivityType = "ACCOUNT_NAME"
	TrustedActivityGitURI      TrustedActivityType = "GIT_REPOSITORY_URI"
)

// Operator is a filter comparison operator understood by the search
// endpoints.
type Operator string

// Filter operators.
const (
	OpIs             Operator = "IS"
	OpIsNot          Operator = "IS_NOT"
	OpExists         Operator = "EXISTS"
	OpDoesNotExist   Operator = "DOES_NOT_EXIST"
	OpOn             Operator = "ON"
	OpOnOrAfter      Operator = "ON_OR_AFTER"
	OpOnOrBefore     Operator = "ON_OR_BEFORE"
	OpGreaterThan    Operator = "GREATER_THAN"
	OpLessThan       Operator = "LESS_THAN"
	OpContains       Operator = "CONTAINS"
	OpDoesNotContain Operator = "DOES_NOT_CONTAIN"
	OpWithinTheLast  Operator = "WITHIN_THE_LAST"
)
