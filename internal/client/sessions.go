package client

import (
	"context"
	"encoding/json"
	"fmt"
	"unicode/utf8"

	"github.com/incydr-io/incydr-client/internal/constants"
	"github.com/incydr-io/incydr-client/internal/http"
	"github.com/incydr-io/incydr-client/pkg/incydr"
)

// SessionsClient implements incydr.SessionsClient.
type SessionsClient struct {
	httpClient *http.Client
	pageSize   int
}

// NewSessionsClient creates a new sessions client. The page size is clamped
// to the endpoint's maximum.
func NewSessionsClient(httpClient *http.Client, pageSize int) *SessionsClient {
	if pageSize <= 0 || pageSize > constants.SessionsMaxPageSize {
		pageSize = constants.SessionsDefaultPageSize
	}

	return &SessionsClient{httpClient: httpClient, pageSize: pageSize}
}

// Get implements incydr.SessionsClient.Get.
func (c *SessionsClient) Get(ctx context.Context, sessionID string) (*incydr.Session, error) {
	resp, err := c.httpClient.Get(ctx, "/v1/sessions/"+sessionID, nil)
	if err != nil {
		return nil, fmt.Errorf("getting session: %w", err)
	}

	var session incydr.Session

	err = json.Unmarshal(resp.Body, &session)
	if err != nil {
		return nil, fmt.Errorf("parsing session response: %w", err)
	}

	return &session, nil
}

// GetPage implements incydr.SessionsClient.GetPage.
func (c *SessionsClient) GetPage(ctx context.Context, params *incydr.SessionQueryParams) (*incydr.SessionsPage, error) {
	if params == nil {
		params = incydr.NewSessionQueryParams()
	}

	resp, err := c.httpClient.Get(ctx, "/v1/sessions", params.ToValues())
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}

	var page incydr.SessionsPage

	err = json.Unmarshal(resp.Body, &page)
	if err != nil {
		return nil, fmt.Errorf("parsing sessions response: %w", err)
	}

	return &page, nil
}

// IterAll implements incydr.SessionsClient.IterAll. Pages are fetched lazily
// as the iterator advances; the sessions endpoint numbers pages from 0.
func (c *SessionsClient) IterAll(ctx context.Context, params *incydr.SessionQueryParams) *incydr.OffsetIterator[incydr.Session] {
	base := incydr.SessionQueryParams{}
	if params != nil {
		base = *params
	}

	pageSize := c.pageSize
	if base.PageSize > 0 {
		pageSize = base.PageSize
	}

	if pageSize > constants.SessionsMaxPageSize {
		pageSize = constants.SessionsMaxPageSize
	}

	fetch := func(ctx context.Context, pageNum, pageSize int) ([]incydr.Session, error) {
		query := base
		query.PageNumber = pageNum
		query.PageSize = pageSize

		page, err := c.GetPage(ctx, &query)
		if err != nil {
			return nil, err
		}

		return page.Items, nil
	}

	return incydr.NewOffsetIterator(ctx, fetch, &incydr.PaginationOptions{PageSize: pageSize})
}

// GetEvents implements incydr.SessionsClient.GetEvents.
func (c *SessionsClient) GetEvents(ctx context.Context, sessionID string) (*incydr.FileEventsPage, error) {
	resp, err := c.httpClient.Get(ctx, "/v1/sessions/"+sessionID+"/events", nil)
	if err != nil {
		return nil, fmt.Errorf("getting session events: %w", err)
	}

	var page incydr.FileEventsPage

	err = json.Unmarshal(resp.Body, &page)
	if err != nil {
		return nil, fmt.Errorf("parsing session events response: %w", err)
	}

	return &page, nil
}

// UpdateStateByID implements incydr.SessionsClient.UpdateStateByID. IDs are
// sent in batches of at most incydr.MaxBatchSize, each batch carrying only
// its own IDs.
func (c *SessionsClient) UpdateStateByID(ctx context.Context, newState incydr.SessionState, sessionIDs ...string) error {
	_, err := incydr.ChunkedApply(ctx, sessionIDs, incydr.MaxBatchSize,
		func(ctx context.Context, chunk []string) (struct{}, error) {
			body := incydr.SessionsChangeStateRequest{IDs: chunk, NewState: newState}

			_, err := c.httpClient.Post(ctx, "/v1/sessions/change-state", body)
			if err != nil {
				return struct{}{}, fmt.Errorf("changing session states: %w", err)
			}

			return struct{}{}, nil
		})

	return err
}

// UpdateStateByCriteria implements incydr.SessionsClient.UpdateStateByCriteria.
// The criteria travel in the query string on every request while the server's
// continuation token is round-tripped in the body until none is returned.
func (c *SessionsClient) UpdateStateByCriteria(ctx context.Context, newState incydr.SessionState, params *incydr.SessionQueryParams) (int, error) {
	if params == nil {
		params = incydr.NewSessionQueryParams()
	}

	query := params.ToValues()

	return incydr.DrainContinuation(ctx, func(ctx context.Context, continuationToken string) (string, error) {
		body := incydr.SessionsChangeStatesRequest{
			ContinuationToken: continuationToken,
			NewState:          newState,
		}

		resp, err := c.httpClient.PostWithQuery(ctx, "/v1/sessions/change-states", query, body)
		if err != nil {
			return "", fmt.Errorf("changing session states by criteria: %w", err)
		}

		var result incydr.SessionsChangeStatesResponse

		err = json.Unmarshal(resp.Body, &result)
		if err != nil {
			return "", fmt.Errorf("parsing change-states response: %w", err)
		}

		return result.ContinuationToken, nil
	})
}

// AddNote implements incydr.SessionsClient.AddNote. Notes longer than the
// API's 2000 character cap fail before any request is sent. The cap counts
// characters, not bytes.
func (c *SessionsClient) AddNote(ctx context.Context, sessionID, note string) error {
	if utf8.RuneCountInString(note) > constants.MaxNoteLength {
		return &incydr.ValidationError{Field: "note", Reason: "exceeds the 2000 character limit"}
	}

	_, err := c.httpClient.Post(ctx, "/v1/sessions/"+sessionID+"/add-note", incydr.AddNoteRequest{NoteContent: note})
	if err != nil {
		return fmt.Errorf("adding session note: %w", err)
	}

	return nil
}
