package incydr

import (
	"net/url"
	"strconv"
	"time"
)

// SessionQueryParams are the query string parameters of the sessions list
// endpoint. Zero values are omitted from the query string.
type SessionQueryParams struct {
	ActorID                 string
	OnOrAfter               time.Time
	Before                  time.Time
	HasAlerts               *bool
	RiskIndicators          []string
	States                  []SessionState
	Severities              []SessionSeverity
	RuleIDs                 []string
	WatchlistIDs            []string
	ContentInspectionStatus ContentInspectionStatus
	OrderBy                 SessionsSortKey
	SortDirection           SortDirection
	PageNumber              int
	PageSize                int
}

// NewSessionQueryParams creates empty session query parameters.
func NewSessionQueryParams() *SessionQueryParams {
	return &SessionQueryParams{}
}

// WithActorID filters sessions to one actor.
func (p *SessionQueryParams) WithActorID(actorID string) *SessionQueryParams {
	p.ActorID = actorID

	return p
}

// WithDateRange bounds sessions by end time.
func (p *SessionQueryParams) WithDateRange(onOrAfter, before time.Time) *SessionQueryParams {
	p.OnOrAfter = onOrAfter
	p.Before = before

	return p
}

// WithHasAlerts filters sessions by whether they triggered alerts.
func (p *SessionQueryParams) WithHasAlerts(hasAlerts bool) *SessionQueryParams {
	p.HasAlerts = &hasAlerts

	return p
}

// WithStates filters sessions by review state.
func (p *SessionQueryParams) WithStates(states ...SessionState) *SessionQueryParams {
	p.States = append(p.States, states...)

	return p
}

// WithSeverities filters sessions by risk severity.
func (p *SessionQueryParams) WithSeverities(severities ...SessionSeverity) *SessionQueryParams {
	p.Severities = append(p.Severities, severities...)

	return p
}

// WithRiskIndicators filters sessions by risk indicator name.
func (p *SessionQueryParams) WithRiskIndicators(indicators ...string) *SessionQueryParams {
	p.RiskIndicators = append(p.RiskIndicators, indicators...)

	return p
}

// WithRuleIDs filters sessions by triggering rule.
func (p *SessionQueryParams) WithRuleIDs(ruleIDs ...string) *SessionQueryParams {
	p.RuleIDs = append(p.RuleIDs, ruleIDs...)

	return p
}

// WithWatchlistIDs filters sessions by watchlist membership.
func (p *SessionQueryParams) WithWatchlistIDs(watchlistIDs ...string) *SessionQueryParams {
	p.WatchlistIDs = append(p.WatchlistIDs, watchlistIDs...)

	return p
}

// WithPage sets the page number and size.
func (p *SessionQueryParams) WithPage(pageNumber, pageSize int) *SessionQueryParams {
	p.PageNumber = pageNumber
	p.PageSize = pageSize

	return p
}

// WithOrder sets the sort key and direction.
func (p *SessionQueryParams) WithOrder(orderBy SessionsSortKey, dir SortDirection) *SessionQueryParams {
	p.OrderBy = orderBy
	p.SortDirection = dir

	return p
}

// ToValues converts the params to URL query values. List parameters are
// repeated keys, matching what the endpoint expects.
func (p *SessionQueryParams) ToValues() url.Values {
	values := url.Values{}

	if p.ActorID != "" {
		values.Set("actor_id", p.ActorID)
	}

	// The endpoint takes POSIX seconds, unlike the millisecond timestamps
	// used in search bodies.
	if !p.OnOrAfter.IsZero() {
		values.Set("on_or_after", strconv.FormatInt(p.OnOrAfter.Unix(), 10))
	}

	if !p.Before.IsZero() {
		values.Set("before", strconv.FormatInt(p.Before.Unix(), 10))
	}

	if p.HasAlerts != nil {
		values.Set("has_alerts", strconv.FormatBool(*p.HasAlerts))
	}

	for _, indicator := range p.RiskIndicators {
		values.Add("risk_indicators", indicator)
	}

	for _, state := range p.States {
		values.Add("state", string(state))
	}

	for _, severity := range p.Severities {
		values.Add("severity", strconv.Itoa(int(severity)))
	}

	for _, ruleID := range p.RuleIDs {
		values.Add("rule_id", ruleID)
	}

	for _, watchlistID := range p.WatchlistIDs {
		values.Add("watchlist_id", watchlistID)
	}

	if p.ContentInspectionStatus != "" {
		values.Set("content_inspection_status", string(p.ContentInspectionStatus))
	}

	if p.OrderBy != "" {
		values.Set("order_by", string(p.OrderBy))
	}

	if p.SortDirection != "" {
		values.Set("sort_direction", string(p.SortDirection))
	}

	if p.PageNumber > 0 {
		values.Set("page_number", strconv.Itoa(p.PageNumber))
	}

	if p.PageSize > 0 {
		values.Set("page_size", strconv.Itoa(p.PageSize))
	}

	return values
}

// TrustedActivitiesQueryParams are the query string parameters of the
// trusted activities list endpoint. Page numbering starts at 1.
type TrustedActivitiesQueryParams struct {
	ActivityType  TrustedActivityType
	PageNum       int
	PageSize      int
	SortKey       string
	SortDirection SortDirection
}

// NewTrustedActivitiesQueryParams creates empty trusted activity query
// parameters.
func NewTrustedActivitiesQueryParams() *TrustedActivitiesQueryParams {
	return &TrustedActivitiesQueryParams{}
}

// WithActivityType filters by activity type.
func (p *TrustedActivitiesQueryParams) WithActivityType(activityType TrustedActivityType) *TrustedActivitiesQueryParams {
	p.ActivityType = activityType

	return p
}

// WithPage sets the page number (1-based) and size.
func (p *TrustedActivitiesQueryParams) WithPage(pageNum, pageSize int) *TrustedActivitiesQueryParams {
	p.PageNum = pageNum
	p.PageSize = pageSize

	return p
}

// WithSort sets the sort key and direction.
func (p *TrustedActivitiesQueryParams) WithSort(key string, dir SortDirection) *TrustedActivitiesQueryParams {
	p.SortKey = key
	p.SortDirection = dir

	return p
}

// ToValues converts the params to URL query values.
func (p *TrustedActivitiesQueryParams) ToValues() url.Values {
	values := url.Values{}

	if p.ActivityType != "" {
		values.Set("activity_type", string(p.ActivityType))
	}

	if p.PageNum > 0 {
		values.Set("page_num", strconv.Itoa(p.PageNum))
	}

	if p.PageSize > 0 {
		values.Set("page_size", strconv.Itoa(p.PageSize))
	}

	if p.SortKey != "" {
		values.Set("sort_key", p.SortKey)
	}

	if p.SortDirection != "" {
		values.Set("sort_direction", string(p.SortDirection))
	}

	return values
}
