package incydr

// Session represents an alert session: a cluster of related risky activity
// for a single actor, scored and reviewable as one unit.
type Session struct {
	SessionID                string                    `json:"sessionId"                          yaml:"session_id"`
	TenantID                 string                    `json:"tenantId"                           yaml:"tenant_id"`
	ActorID                  string                    `json:"actorId"                            yaml:"actor_id"`
	BeginTime                int64                     `json:"beginTime"                          yaml:"begin_time"`
	EndTime                  int64                     `json:"endTime"                            yaml:"end_time"`
	FirstObserved            int64                     `json:"firstObserved"                      yaml:"first_observed"`
	LastUpdated              int64                     `json:"lastUpdated"                        yaml:"last_updated"`
	ExfiltrationSummary      string                    `json:"exfiltrationSummary"                yaml:"exfiltration_summary"`
	ContextSummary           string                    `json:"contextSummary"                     yaml:"context_summary"`
	CriticalEvents           int64                     `json:"criticalEvents"                     yaml:"critical_events"`
	HighEvents               int64                     `json:"highEvents"                         yaml:"high_events"`
	ModerateEvents           int64                     `json:"moderateEvents"                     yaml:"moderate_events"`
	LowEvents                int64                     `json:"lowEvents"                          yaml:"low_events"`
	NoRiskEvents             int64                     `json:"noRiskEvents"                       yaml:"no_risk_events"`
	Notes                    []SessionNote             `json:"notes,omitempty"                    yaml:"notes,omitempty"`
	RiskIndicators           []SessionRiskIndicator    `json:"riskIndicators,omitempty"           yaml:"risk_indicators,omitempty"`
	Scores                   []SessionScore            `json:"scores,omitempty"                   yaml:"scores,omitempty"`
	States                   []SessionStateChange      `json:"states,omitempty"                   yaml:"states,omitempty"`
	TriggeredAlerts          []TriggeredAlert          `json:"triggeredAlerts,omitempty"          yaml:"triggered_alerts,omitempty"`
	ContentInspectionResults *ContentInspectionResults `json:"contentInspectionResults,omitempty" yaml:"content_inspection_results,omitempty"`
}

// SessionNote is an analyst note attached to a session.
type SessionNote struct {
	ID                string `json:"id"                yaml:"id"`
	Content           string `json:"content"           yaml:"content"`
	CreationTimestamp int64  `json:"creationTimestamp" yaml:"creation_timestamp"`
	UserID            string `json:"userId"            yaml:"user_id"`
}

// SessionRiskIndicator is a risk indicator observed during a session.
type SessionRiskIndicator struct {
	Name       string `json:"name"       yaml:"name"`
	Weight     int    `json:"weight"     yaml:"weight"`
	EventCount int64  `json:"eventCount" yaml:"event_count"`
}

// SessionScore is a point-in-time risk score for a session.
type SessionScore struct {
	Score           int   `json:"score"           yaml:"score"`
	Severity        int   `json:"severity"        yaml:"severity"`
	SourceTimestamp int64 `json:"sourceTimestamp" yaml:"source_timestamp"`
}

// SessionStateChange records one state transition of a session.
type SessionStateChange struct {
	State           SessionState `json:"state"           yaml:"state"`
	SourceTimestamp int64        `json:"sourceTimestamp" yaml:"source_timestamp"`
	UserID          string       `json:"userId"          yaml:"user_id"`
}

// TriggeredAlert links a session to an alert it raised.
type TriggeredAlert struct {
	AlertID string `json:"alertId"          yaml:"alert_id"`
	RuleID  string `json:"ruleId,omitempty" yaml:"rule_id,omitempty"`
}

// ContentInspectionResults summarizes content inspection for a session.
type ContentInspectionResults struct {
	EventResults []ContentInspectionEvent `json:"eventResults,omitempty" yaml:"event_results,omitempty"`
	Status       ContentInspectionStatus  `json:"status"                 yaml:"status"`
}

// ContentInspectionEvent is the inspection outcome of a single event.
type ContentInspectionEvent struct {
	EventID string                  `json:"eventId" yaml:"event_id"`
	PiiType []string                `json:"piiType" yaml:"pii_type"`
	Status  ContentInspectionStatus `json:"status"  yaml:"status"`
}

// SessionsPage is one page of the sessions list endpoint.
type SessionsPage struct {
	Items      []Session `json:"items"      yaml:"items"`
	TotalCount int64     `json:"totalCount" yaml:"total_count"`
}

// SessionsChangeStateRequest is the body for the change-state endpoint.
type SessionsChangeStateRequest struct {
	IDs      []string     `json:"ids"      yaml:"ids"`
	NewState SessionState `json:"newState" yaml:"new_state"`
}

// SessionsChangeStatesRequest is the body for the criteria-based
// change-states endpoint. The continuation token is opaque: it is round-
// tripped exactly as the server returned it.
type SessionsChangeStatesRequest struct {
	ContinuationToken string       `json:"continuationToken,omitempty" yaml:"continuation_token,omitempty"`
	NewState          SessionState `json:"newState"                    yaml:"new_state"`
}

// SessionsChangeStatesResponse carries the continuation token for the next
// batch. An absent token means the server is done.
type SessionsChangeStatesResponse struct {
	ContinuationToken string `json:"continuationToken,omitempty" yaml:"continuation_token,omitempty"`
}

// AddNoteRequest is the body for the sessions add-note endpoint.
type AddNoteRequest struct {
	NoteContent string `json:"noteContent" yaml:"note_content"`
}

// AuditEvent is a single audit log entry. The audit log schema is open-ended
// so events are kept as loose maps; well-known keys include "type$",
// "actorId", "actorName", "actorAgent", "actorIpAddress", and "timestamp".
type AuditEvent map[string]interface{}

// AuditEventsPage is one page of audit log search results.
type AuditEventsPage struct {
	Events                    []AuditEvent `json:"events"                    yaml:"events"`
	PaginationRangeStartIndex int64        `json:"paginationRangeStartIndex" yaml:"pagination_range_start_index"`
	PaginationRangeEndIndex   int64        `json:"paginationRangeEndIndex"   yaml:"pagination_range_end_index"`
}

// AuditEventsCount is the response of the search-results-count endpoint.
type AuditEventsCount struct {
	TotalResultCount int64 `json:"totalResultCount" yaml:"total_result_count"`
}

// AuditExportResponse is the response of the export endpoint; the token is
// redeemed against redeemDownloadToken to fetch the CSV.
type AuditExportResponse struct {
	DownloadToken string `json:"downloadToken" yaml:"download_token"`
}

// DateRange bounds an audit log query in epoch seconds. Zero values are
// omitted so an open-ended range stays open-ended on the wire.
type DateRange struct {
	StartTime int64 `json:"startTime,omitempty" yaml:"start_time,omitempty"`
	EndTime   int64 `json:"endTime,omitempty"   yaml:"end_time,omitempty"`
}

// AuditQuery is the body of the audit log search endpoints.
type AuditQuery struct {
	ActorIDs         []string   `json:"actorIds,omitempty"         yaml:"actor_ids,omitempty"`
	ActorIPAddresses []string   `json:"actorIpAddresses,omitempty" yaml:"actor_ip_addresses,omitempty"`
	ActorNames       []string   `json:"actorNames,omitempty"       yaml:"actor_names,omitempty"`
	DateRange        *DateRange `json:"dateRange,omitempty"        yaml:"date_range,omitempty"`
	EventTypes       []string   `json:"eventTypes,omitempty"       yaml:"event_types,omitempty"`
	PageNum          int        `json:"pageNum"                    yaml:"page_num"`
	PageSize         int        `json:"pageSize"                   yaml:"page_size"`
	ResourceIDs      []string   `json:"resourceIds,omitempty"      yaml:"resource_ids,omitempty"`
	UserTypes        []UserType `json:"userTypes,omitempty"        yaml:"user_types,omitempty"`
}

// Alert represents a rule-triggered alert.
type Alert struct {
	ID                  string        `json:"id"                            yaml:"id"`
	TenantID            string        `json:"tenantId"                      yaml:"tenant_id"`
	SessionID           string        `json:"sessionId,omitempty"           yaml:"session_id,omitempty"`
	Name                string        `json:"name"                          yaml:"name"`
	Description         string        `json:"description,omitempty"         yaml:"description,omitempty"`
	Actor               string        `json:"actor"                         yaml:"actor"`
	ActorID             string        `json:"actorId,omitempty"             yaml:"actor_id,omitempty"`
	Target              string        `json:"target,omitempty"              yaml:"target,omitempty"`
	Severity            AlertSeverity `json:"severity"                      yaml:"severity"`
	RiskSeverity        string        `json:"riskSeverity,omitempty"        yaml:"risk_severity,omitempty"`
	RuleID              string        `json:"ruleId,omitempty"              yaml:"rule_id,omitempty"`
	RuleSource          string        `json:"ruleSource,omitempty"          yaml:"rule_source,omitempty"`
	CreatedAt           string        `json:"createdAt"                     yaml:"created_at"`
	State               AlertState    `json:"state"                         yaml:"state"`
	StateLastModifiedBy string        `json:"stateLastModifiedBy,omitempty" yaml:"state_last_modified_by,omitempty"`
	StateLastModifiedAt string        `json:"stateLastModifiedAt,omitempty" yaml:"state_last_modified_at,omitempty"`
	LastModifiedTime    string        `json:"lastModifiedTime,omitempty"    yaml:"last_modified_time,omitempty"`
	Note                *AlertNote    `json:"note,omitempty"                yaml:"note,omitempty"`
}

// AlertNote is an analyst note attached to an alert.
type AlertNote struct {
	ID             string `json:"id"             yaml:"id"`
	Message        string `json:"message"        yaml:"message"`
	LastModifiedAt string `json:"lastModifiedAt" yaml:"last_modified_at"`
	LastModifiedBy string `json:"lastModifiedBy" yaml:"last_modified_by"`
}

// AlertDetail is an alert plus its full observation payloads.
type AlertDetail struct {
	Alert `yaml:",inline"`

	Observations []map[string]interface{} `json:"observations,omitempty" yaml:"observations,omitempty"`
}

// AlertsPage is one page of alert search results.
type AlertsPage struct {
	Alerts     []Alert    `json:"alerts"             yaml:"alerts"`
	TotalCount int64      `json:"totalCount"         yaml:"total_count"`
	Problems   []APIError `json:"problems,omitempty" yaml:"problems,omitempty"`
}

// AlertDetailsRequest is the body of the query-details endpoint.
type AlertDetailsRequest struct {
	AlertIDs []string `json:"alertIds" yaml:"alert_ids"`
}

// AlertDetailsResponse wraps the alerts returned by query-details.
type AlertDetailsResponse struct {
	Alerts []AlertDetail `json:"alerts" yaml:"alerts"`
}

// AlertsChangeStateRequest is the body of the update-state endpoint.
type AlertsChangeStateRequest struct {
	TenantID string     `json:"tenantId,omitempty" yaml:"tenant_id,omitempty"`
	AlertIDs []string   `json:"alertIds"           yaml:"alert_ids"`
	State    AlertState `json:"state"              yaml:"state"`
	Note     string     `json:"note,omitempty"     yaml:"note,omitempty"`
}

// AlertAddNoteRequest is the body of the alerts add-note endpoint.
type AlertAddNoteRequest struct {
	TenantID string `json:"tenantId,omitempty" yaml:"tenant_id,omitempty"`
	AlertID  string `json:"alertId"            yaml:"alert_id"`
	Note     string `json:"note"               yaml:"note"`
}

// FileEventV2 is a file event in the V2 schema. Only the commonly consumed
// field groups are typed; the full schema is considerably wider.
type FileEventV2 struct {
	Timestamp string            `json:"@timestamp,omitempty" yaml:"timestamp,omitempty"`
	Event     *FileEventInfo    `json:"event,omitempty"      yaml:"event,omitempty"`
	File      *FileEventFile    `json:"file,omitempty"       yaml:"file,omitempty"`
	User      *FileEventUser    `json:"user,omitempty"       yaml:"user,omitempty"`
	Risk      *FileEventRisk    `json:"risk,omitempty"       yaml:"risk,omitempty"`
	Source    *FileEventChannel `json:"source,omitempty"     yaml:"source,omitempty"`
	Dest      *FileEventChannel `json:"destination,omitempty" yaml:"destination,omitempty"`
}

// FileEventInfo is the "event" group of a file event.
type FileEventInfo struct {
	ID       string `json:"id"                 yaml:"id"`
	Action   string `json:"action,omitempty"   yaml:"action,omitempty"`
	Observer string `json:"observer,omitempty" yaml:"observer,omitempty"`
	Inserted string `json:"inserted,omitempty" yaml:"inserted,omitempty"`
}

// FileEventFile is the "file" group of a file event.
type FileEventFile struct {
	Name      string `json:"name,omitempty"      yaml:"name,omitempty"`
	Directory string `json:"directory,omitempty" yaml:"directory,omitempty"`
	Category  string `json:"category,omitempty"  yaml:"category,omitempty"`
	SizeBytes int64  `json:"sizeBytes,omitempty" yaml:"size_bytes,omitempty"`
	MD5       string `json:"hashMd5,omitempty"   yaml:"hash_md5,omitempty"`
}

// FileEventUser is the "user" group of a file event.
type FileEventUser struct {
	Email     string `json:"email,omitempty"     yaml:"email,omitempty"`
	ID        string `json:"id,omitempty"        yaml:"id,omitempty"`
	DeviceUID string `json:"deviceUid,omitempty" yaml:"device_uid,omitempty"`
}

// FileEventRisk is the "risk" group of a file event.
type FileEventRisk struct {
	Score       int      `json:"score"                 yaml:"score"`
	Severity    string   `json:"severity,omitempty"    yaml:"severity,omitempty"`
	Indicators  []string `json:"indicators,omitempty"  yaml:"indicators,omitempty"`
	Trusted     bool     `json:"trusted"               yaml:"trusted"`
	TrustReason string   `json:"trustReason,omitempty" yaml:"trust_reason,omitempty"`
}

// FileEventChannel describes the source or destination of a file event.
type FileEventChannel struct {
	Category string `json:"category,omitempty" yaml:"category,omitempty"`
	Name     string `json:"name,omitempty"     yaml:"name,omitempty"`
	Domain   string `json:"domain,omitempty"   yaml:"domain,omitempty"`
}

// FileEventsPage is one page of file event search results. An empty
// NextPgToken means the result stream is exhausted.
type FileEventsPage struct {
	FileEvents  []FileEventV2 `json:"fileEvents"            yaml:"file_events"`
	NextPgToken string        `json:"nextPgToken,omitempty" yaml:"next_pg_token,omitempty"`
	TotalCount  int64         `json:"totalCount"            yaml:"total_count"`
	Problems    []APIError    `json:"problems,omitempty"    yaml:"problems,omitempty"`
}

// TrustedActivity is an activity exclusion: events matching it are not
// scored as exfiltration.
type TrustedActivity struct {
	ActivityID             string                `json:"activityId,omitempty"             yaml:"activity_id,omitempty"`
	Type                   TrustedActivityType   `json:"type"                             yaml:"type"`
	Value                  string                `json:"value"                            yaml:"value"`
	Description            string                `json:"description,omitempty"            yaml:"description,omitempty"`
	ActivityActionGroups   []ActivityActionGroup `json:"activityActionGroups,omitempty"   yaml:"activity_action_groups,omitempty"`
	PrincipalType          string                `json:"principalType,omitempty"          yaml:"principal_type,omitempty"`
	UpdateTime             int64                 `json:"updateTime,omitempty"             yaml:"update_time,omitempty"`
	UpdatedByPrincipalID   string                `json:"updatedByPrincipalId,omitempty"   yaml:"updated_by_principal_id,omitempty"`
	UpdatedByPrincipalName string                `json:"updatedByPrincipalName,omitempty" yaml:"updated_by_principal_name,omitempty"`
}

// ActivityActionGroup scopes which actions a trusted activity covers.
type ActivityActionGroup struct {
	Name            string           `json:"name"                      yaml:"name"`
	ActivityActions []ActivityAction `json:"activityActions,omitempty" yaml:"activity_actions,omitempty"`
}

// ActivityAction is a single trusted action inside an action group.
type ActivityAction struct {
	Type      string `json:"type"                yaml:"type"`
	Providers []struct {
		Name string `json:"name" yaml:"name"`
	} `json:"providers,omitempty" yaml:"providers,omitempty"`
}

// TrustedActivitiesPage is one page of the trusted activities list endpoint.
type TrustedActivitiesPage struct {
	TrustedActivities []TrustedActivity `json:"trustedActivities" yaml:"trusted_activities"`
	TotalCount        int64             `json:"totalCount"        yaml:"total_count"`
}

// AuthToken is the response of the /v1/oauth token endpoint.
type AuthToken struct {
	TokenType   string `json:"token_type"   yaml:"token_type"`
	ExpiresIn   int64  `json:"expires_in"   yaml:"expires_in"`
	AccessToken string `json:"access_token" yaml:"access_token"`
}
