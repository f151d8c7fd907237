package incydr

import (
	"fmt"
	"strconv"
	"time"
)

// Filter is a single term comparison inside a filter group.
type Filter struct {
	Term     string      `json:"term"            yaml:"term"`
	Operator Operator    `json:"operator"        yaml:"operator"`
	Value    interface{} `json:"value,omitempty" yaml:"value,omitempty"`
}

// FilterGroup combines filters on one term. FilterClause is "AND" or "OR";
// a group built from multiple values of the same term uses "OR".
type FilterGroup struct {
	FilterClause string   `json:"filterClause" yaml:"filter_clause"`
	Filters      []Filter `json:"filters"      yaml:"filters"`
}

const (
	clauseAnd = "AND"
	clauseOr  = "OR"
)

// newValueGroup builds a group for term with one filter per value. A single
// value and a one-element slice produce the same group.
func newValueGroup(term string, operator Operator, values []string) FilterGroup {
	clause := clauseAnd
	if len(values) > 1 {
		clause = clauseOr
	}

	filters := make([]Filter, 0, len(values))
	for _, value := range values {
		filters = append(filters, Filter{Term: term, Operator: operator, Value: value})
	}

	return FilterGroup{FilterClause: clause, Filters: filters}
}

// EventQuery builds the search body for the file events endpoint. Methods
// chain; input problems (bad timestamps, empty value lists) are latched and
// reported by Err before any request is sent.
type EventQuery struct {
	GroupClause string        `json:"groupClause" yaml:"group_clause"`
	Groups      []FilterGroup `json:"groups"      yaml:"groups"`
	PgNum       int           `json:"pgNum"       yaml:"pg_num"`
	PgSize      int           `json:"pgSize"      yaml:"pg_size"`
	// PgToken switches the endpoint to token paging when non-nil. A pointer
	// to the empty string requests the first token-mode page; pgNum is
	// ignored by the server whenever a token is supplied.
	PgToken *string       `json:"pgToken,omitempty" yaml:"pg_token,omitempty"`
	SrtDir  SortDirection `json:"srtDir"            yaml:"srt_dir"`
	SrtKey  string        `json:"srtKey"            yaml:"srt_key"`

	err error
}

// File event query defaults.
const (
	EventQueryDefaultPageSize = 10000
	eventQueryDefaultSortKey  = "event.id"
	eventTimestampTerm        = "@timestamp"
)

// NewEventQuery creates an event query with the endpoint's defaults: all
// groups ANDed, sorted by event ID ascending.
func NewEventQuery() *EventQuery {
	return &EventQuery{
		GroupClause: clauseAnd,
		Groups:      []FilterGroup{},
		PgNum:       1,
		PgSize:      EventQueryDefaultPageSize,
		SrtDir:      SortAsc,
		SrtKey:      eventQueryDefaultSortKey,
	}
}

// Err returns the first input problem latched while building the query.
func (q *EventQuery) Err() error {
	return q.err
}

func (q *EventQuery) addValueGroup(term string, operator Operator, values []string) *EventQuery {
	if len(values) == 0 {
		q.latch(&ValidationError{Field: term, Reason: "at least one value is required"})

		return q
	}

	q.Groups = append(q.Groups, newValueGroup(term, operator, values))

	return q
}

func (q *EventQuery) latch(err error) {
	if q.err == nil {
		q.err = err
	}
}

// Equals filters events where term matches any of the given values.
func (q *EventQuery) Equals(term string, values ...string) *EventQuery {
	return q.addValueGroup(term, OpIs, values)
}

// NotEquals filters events where term matches none of the given values.
func (q *EventQuery) NotEquals(term string, values ...string) *EventQuery {
	return q.addValueGroup(term, OpIsNot, values)
}

// Contains filters events where term contains the value.
func (q *EventQuery) Contains(term, value string) *EventQuery {
	return q.addValueGroup(term, OpContains, []string{value})
}

// DoesNotContain filters events where term does not contain the value.
func (q *EventQuery) DoesNotContain(term, value string) *EventQuery {
	return q.addValueGroup(term, OpDoesNotContain, []string{value})
}

// Exists filters events where term is populated.
func (q *EventQuery) Exists(term string) *EventQuery {
	q.Groups = append(q.Groups, FilterGroup{
		FilterClause: clauseAnd,
		Filters:      []Filter{{Term: term, Operator: OpExists}},
	})

	return q
}

// DoesNotExist filters events where term is not populated.
func (q *EventQuery) DoesNotExist(term string) *EventQuery {
	q.Groups = append(q.Groups, FilterGroup{
		FilterClause: clauseAnd,
		Filters:      []Filter{{Term: term, Operator: OpDoesNotExist}},
	})

	return q
}

// GreaterThan filters events where the numeric term exceeds value.
func (q *EventQuery) GreaterThan(term string, value int) *EventQuery {
	q.Groups = append(q.Groups, FilterGroup{
		FilterClause: clauseAnd,
		Filters:      []Filter{{Term: term, Operator: OpGreaterThan, Value: value}},
	})

	return q
}

// LessThan filters events where the numeric term is below value.
func (q *EventQuery) LessThan(term string, value int) *EventQuery {
	q.Groups = append(q.Groups, FilterGroup{
		FilterClause: clauseAnd,
		Filters:      []Filter{{Term: term, Operator: OpLessThan, Value: value}},
	})

	return q
}

// DateRange bounds event timestamps. Either end may be nil to leave that
// side open. Accepted values: time.Time, RFC3339 strings, "2006-01-02",
// "2006-01-02 15:04:05", or epoch seconds.
func (q *EventQuery) DateRange(start, end interface{}) *EventQuery {
	group := FilterGroup{FilterClause: clauseAnd}

	if start != nil {
		normalized, err := NormalizeTimestamp(start)
		if err != nil {
			q.latch(err)

			return q
		}

		group.Filters = append(group.Filters, Filter{Term: eventTimestampTerm, Operator: OpOnOrAfter, Value: normalized})
	}

	if end != nil {
		normalized, err := NormalizeTimestamp(end)
		if err != nil {
			q.latch(err)

			return q
		}

		group.Filters = append(group.Filters, Filter{Term: eventTimestampTerm, Operator: OpOnOrBefore, Value: normalized})
	}

	if len(group.Filters) > 0 {
		q.Groups = append(q.Groups, group)
	}

	return q
}

// WithinTheLast filters events observed in the trailing number of days.
func (q *EventQuery) WithinTheLast(days int) *EventQuery {
	if days <= 0 {
		q.latch(&ValidationError{Field: eventTimestampTerm, Reason: "days must be positive"})

		return q
	}

	q.Groups = append(q.Groups, FilterGroup{
		FilterClause: clauseAnd,
		Filters: []Filter{{
			Term:     eventTimestampTerm,
			Operator: OpWithinTheLast,
			Value:    fmt.Sprintf("P%dD", days),
		}},
	})

	return q
}

// MatchesAny makes the query match events satisfying any group instead of
// all of them.
func (q *EventQuery) MatchesAny() *EventQuery {
	q.GroupClause = clauseOr

	return q
}

// WithPageSize sets the number of events per page.
func (q *EventQuery) WithPageSize(size int) *EventQuery {
	q.PgSize = size

	return q
}

// WithPageToken switches the query to token paging. Pass the empty string
// for the first page.
func (q *EventQuery) WithPageToken(token string) *EventQuery {
	q.PgToken = &token

	return q
}

// WithSort sets the sort key and direction.
func (q *EventQuery) WithSort(key string, dir SortDirection) *EventQuery {
	q.SrtKey = key
	q.SrtDir = dir

	return q
}

// AlertQuery builds the search body for the alerts query endpoint.
type AlertQuery struct {
	TenantID     string        `json:"tenantId,omitempty" yaml:"tenant_id,omitempty"`
	GroupClause  string        `json:"groupClause"        yaml:"group_clause"`
	Groups       []FilterGroup `json:"groups"             yaml:"groups"`
	PgNum        int           `json:"pgNum"              yaml:"pg_num"`
	PgSize       int           `json:"pgSize"             yaml:"pg_size"`
	SrtDirection string        `json:"srtDirection"       yaml:"srt_direction"`
	SrtKey       string        `json:"srtKey"             yaml:"srt_key"`

	err error
}

// Alert query defaults.
const (
	AlertQueryDefaultPageSize = 100
	alertQueryDefaultSortKey  = "CreatedAt"
	alertCreatedAtTerm        = "CreatedAt"
)

// NewAlertQuery creates an alert query with the endpoint's defaults: all
// groups ANDed, newest alerts first.
func NewAlertQuery() *AlertQuery {
	return &AlertQuery{
		GroupClause:  clauseAnd,
		Groups:       []FilterGroup{},
		PgNum:        0,
		PgSize:       AlertQueryDefaultPageSize,
		SrtDirection: "DESC",
		SrtKey:       alertQueryDefaultSortKey,
	}
}

// Err returns the first input problem latched while building the query.
func (q *AlertQuery) Err() error {
	return q.err
}

func (q *AlertQuery) addValueGroup(term string, operator Operator, values []string) *AlertQuery {
	if len(values) == 0 {
		q.latch(&ValidationError{Field: term, Reason: "at least one value is required"})

		return q
	}

	q.Groups = append(q.Groups, newValueGroup(term, operator, values))

	return q
}

func (q *AlertQuery) latch(err error) {
	if q.err == nil {
		q.err = err
	}
}

// Equals filters alerts where term matches any of the given values.
func (q *AlertQuery) Equals(term string, values ...string) *AlertQuery {
	return q.addValueGroup(term, OpIs, values)
}

// NotEquals filters alerts where term matches none of the given values.
func (q *AlertQuery) NotEquals(term string, values ...string) *AlertQuery {
	return q.addValueGroup(term, OpIsNot, values)
}

// Contains filters alerts where term contains the value.
func (q *AlertQuery) Contains(term, value string) *AlertQuery {
	return q.addValueGroup(term, OpContains, []string{value})
}

// DoesNotContain filters alerts where term does not contain the value.
func (q *AlertQuery) DoesNotContain(term, value string) *AlertQuery {
	return q.addValueGroup(term, OpDoesNotContain, []string{value})
}

// On filters alerts created on the given calendar date. It is mutually
// exclusive with DateRange.
func (q *AlertQuery) On(date interface{}) *AlertQuery {
	normalized, err := NormalizeTimestamp(date)
	if err != nil {
		q.latch(err)

		return q
	}

	q.Groups = append(q.Groups, FilterGroup{
		FilterClause: clauseAnd,
		Filters:      []Filter{{Term: alertCreatedAtTerm, Operator: OpOn, Value: normalized}},
	})

	return q
}

// DateRange bounds alert creation times. Either end may be nil to leave
// that side open.
func (q *AlertQuery) DateRange(start, end interface{}) *AlertQuery {
	group := FilterGroup{FilterClause: clauseAnd}

	if start != nil {
		normalized, err := NormalizeTimestamp(start)
		if err != nil {
			q.latch(err)

			return q
		}

		group.Filters = append(group.Filters, Filter{Term: alertCreatedAtTerm, Operator: OpOnOrAfter, Value: normalized})
	}

	if end != nil {
		normalized, err := NormalizeTimestamp(end)
		if err != nil {
			q.latch(err)

			return q
		}

		group.Filters = append(group.Filters, Filter{Term: alertCreatedAtTerm, Operator: OpOnOrBefore, Value: normalized})
	}

	if len(group.Filters) > 0 {
		q.Groups = append(q.Groups, group)
	}

	return q
}

// MatchesAny makes the query match alerts satisfying any group instead of
// all of them.
func (q *AlertQuery) MatchesAny() *AlertQuery {
	q.GroupClause = clauseOr

	return q
}

// WithPageSize sets the number of alerts per page.
func (q *AlertQuery) WithPageSize(size int) *AlertQuery {
	q.PgSize = size

	return q
}

// WithPage sets the page number (zero-based).
func (q *AlertQuery) WithPage(pageNum int) *AlertQuery {
	q.PgNum = pageNum

	return q
}

// WithSort sets the sort key and direction.
func (q *AlertQuery) WithSort(key string, dir SortDirection) *AlertQuery {
	q.SrtKey = key

	q.SrtDirection = "ASC"
	if dir == SortDesc {
		q.SrtDirection = "DESC"
	}

	return q
}

// timestampFormat is the millisecond-precision UTC shape the search
// endpoints expect.
const timestampFormat = "2006-01-02T15:04:05.000Z"

// NormalizeTimestamp converts the accepted timestamp inputs (time.Time,
// RFC3339 strings, "2006-01-02", "2006-01-02 15:04:05", epoch seconds) into
// the millisecond-precision UTC string the API expects. Unparseable input
// returns a ValidationError.
func NormalizeTimestamp(value interface{}) (string, error) {
	switch v := value.(type) {
	case time.Time:
		return v.UTC().Format(timestampFormat), nil
	case int:
		return time.Unix(int64(v), 0).UTC().Format(timestampFormat), nil
	case int64:
		return time.Unix(v, 0).UTC().Format(timestampFormat), nil
	case float64:
		seconds := int64(v)
		nanos := int64((v - float64(seconds)) * float64(time.Second))

		return time.Unix(seconds, nanos).UTC().Format(timestampFormat), nil
	case string:
		return normalizeTimestampString(v)
	default:
		return "", &ValidationError{
			Field:  "timestamp",
			Reason: fmt.Sprintf("unsupported type %T", value),
		}
	}
}

func normalizeTimestampString(value string) (string, error) {
	// Epoch seconds are accepted as a bare numeric string.
	if epoch, err := strconv.ParseInt(value, 10, 64); err == nil {
		return time.Unix(epoch, 0).UTC().Format(timestampFormat), nil
	}

	layouts := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02",
	}

	for _, layout := range layouts {
		parsed, err := time.Parse(layout, value)
		if err == nil {
			return parsed.UTC().Format(timestampFormat), nil
		}
	}

	return "", &ValidationError{
		Field:  "timestamp",
		Reason: fmt.Sprintf("unparseable value %q", value),
	}
}
