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

// AlertsClient implements incydr.AlertsClient.
type AlertsClient struct {
	httpClient *http.Client
}

// NewAlertsClient creates a new alerts client.
func NewAlertsClient(httpClient *http.Client) *AlertsClient {
	return &AlertsClient{httpClient: httpClient}
}

// Search implements incydr.AlertsClient.Search.
func (c *AlertsClient) Search(ctx context.Context, query *incydr.AlertQuery) (*incydr.AlertsPage, error) {
	if query == nil {
		query = incydr.NewAlertQuery()
	}

	if err := query.Err(); err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Post(ctx, "/v1/alerts/query-alerts", query)
	if err != nil {
		return nil, fmt.Errorf("querying alerts: %w", err)
	}

	var page incydr.AlertsPage

	err = json.Unmarshal(resp.Body, &page)
	if err != nil {
		return nil, fmt.Errorf("parsing alerts response: %w", err)
	}

	return &page, nil
}

// IterAll implements incydr.AlertsClient.IterAll. The alerts endpoint numbers
// pages from 0.
func (c *AlertsClient) IterAll(ctx context.Context, query *incydr.AlertQuery) *incydr.OffsetIterator[incydr.Alert] {
	base := incydr.NewAlertQuery()
	if query != nil {
		copied := *query
		base = &copied
	}

	fetch := func(ctx context.Context, pageNum, pageSize int) ([]incydr.Alert, error) {
		search := *base
		search.PgNum = pageNum
		search.PgSize = pageSize

		page, err := c.Search(ctx, &search)
		if err != nil {
			return nil, err
		}

		return page.Alerts, nil
	}

	return incydr.NewOffsetIterator(ctx, fetch, &incydr.PaginationOptions{PageSize: base.PgSize})
}

// GetDetails implements incydr.AlertsClient.GetDetails. IDs are sent in
// batches of at most incydr.MaxBatchSize and the batch results are flattened
// in input order.
func (c *AlertsClient) GetDetails(ctx context.Context, alertIDs ...string) ([]incydr.AlertDetail, error) {
	batches, err := incydr.ChunkedApply(ctx, alertIDs, incydr.MaxBatchSize,
		func(ctx context.Context, chunk []string) ([]incydr.AlertDetail, error) {
			resp, err := c.httpClient.Post(ctx, "/v1/alerts/query-details", incydr.AlertDetailsRequest{AlertIDs: chunk})
			if err != nil {
				return nil, fmt.Errorf("querying alert details: %w", err)
			}

			var details incydr.AlertDetailsResponse

			err = json.Unmarshal(resp.Body, &details)
			if err != nil {
				return nil, fmt.Errorf("parsing alert details response: %w", err)
			}

			return details.Alerts, nil
		})
	if err != nil {
		return nil, err
	}

	var alerts []incydr.AlertDetail
	for _, batch := range batches {
		alerts = append(alerts, batch...)
	}

	return alerts, nil
}

// AddNote implements incydr.AlertsClient.AddNote. The 2000 cap counts
// characters, not bytes.
func (c *AlertsClient) AddNote(ctx context.Context, alertID, note string) error {
	if utf8.RuneCountInString(note) > constants.MaxNoteLength {
		return &incydr.ValidationError{Field: "note", Reason: "exceeds the 2000 character limit"}
	}

	body := incydr.AlertAddNoteRequest{AlertID: alertID, Note: note}

	_, err := c.httpClient.Post(ctx, "/v1/alerts/add-note", body)
	if err != nil {
		return fmt.Errorf("adding alert note: %w", err)
	}

	return nil
}

// ChangeState implements incydr.AlertsClient.ChangeState. IDs are sent in
// batches of at most incydr.MaxBatchSize.
func (c *AlertsClient) ChangeState(ctx context.Context, state incydr.AlertState, note string, alertIDs ...string) error {
	_, err := incydr.ChunkedApply(ctx, alertIDs, incydr.MaxBatchSize,
		func(ctx context.Context, chunk []string) (struct{}, error) {
			body := incydr.AlertsChangeStateRequest{
				AlertIDs: chunk,
				State:    state,
				Note:     note,
			}

			_, err := c.httpClient.Post(ctx, "/v1/alerts/update-state", body)
			if err != nil {
				return struct{}{}, fmt.Errorf("updating alert states: %w", err)
			}

			return struct{}{}, nil
		})

	return err
}
