package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/incydr-io/incydr-client/internal/http"
	"github.com/incydr-io/incydr-client/pkg/incydr"
)

// FileEventsClient implements incydr.FileEventsClient.
type FileEventsClient struct {
	httpClient *http.Client
}

// NewFileEventsClient creates a new file events client.
func NewFileEventsClient(httpClient *http.Client) *FileEventsClient {
	return &FileEventsClient{httpClient: httpClient}
}

// Search implements incydr.FileEventsClient.Search.
func (c *FileEventsClient) Search(ctx context.Context, query *incydr.EventQuery) (*incydr.FileEventsPage, error) {
	if query == nil {
		return nil, incydr.ErrNilQuery
	}

	if err := query.Err(); err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Post(ctx, "/v2/file-events", query)
	if err != nil {
		return nil, fmt.Errorf("searching file events: %w", err)
	}

	var page incydr.FileEventsPage

	err = json.Unmarshal(resp.Body, &page)
	if err != nil {
		return nil, fmt.Errorf("parsing file events response: %w", err)
	}

	return &page, nil
}

// IterAll implements incydr.FileEventsClient.IterAll. Every request carries
// the token of the previous response; the first request carries the empty
// token, and the stream ends when the server stops returning one.
func (c *FileEventsClient) IterAll(ctx context.Context, query *incydr.EventQuery) *incydr.TokenIterator[incydr.FileEventV2] {
	base := incydr.NewEventQuery()
	if query != nil {
		copied := *query
		base = &copied
	}

	fetch := func(ctx context.Context, pgToken string) ([]incydr.FileEventV2, string, error) {
		search := *base
		search.PgToken = &pgToken

		page, err := c.Search(ctx, &search)
		if err != nil {
			return nil, "", err
		}

		return page.FileEvents, page.NextPgToken, nil
	}

	return incydr.NewTokenIterator(ctx, fetch)
}
