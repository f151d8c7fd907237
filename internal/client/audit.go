package client

import (
	"context"
	"encoding/json"
	"fmt"
	"mime"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/incydr-io/incydr-client/internal/constants"
	"github.com/incydr-io/incydr-client/internal/http"
	"github.com/incydr-io/incydr-client/pkg/incydr"
)

// AuditLogClient implements incydr.AuditLogClient.
type AuditLogClient struct {
	httpClient *http.Client
}

// NewAuditLogClient creates a new audit log client.
func NewAuditLogClient(httpClient *http.Client) *AuditLogClient {
	return &AuditLogClient{httpClient: httpClient}
}

// GetPage implements incydr.AuditLogClient.GetPage.
func (c *AuditLogClient) GetPage(ctx context.Context, query *incydr.AuditQuery) (*incydr.AuditEventsPage, error) {
	if query == nil {
		query = &incydr.AuditQuery{}
	}

	body := *query
	if body.PageSize <= 0 {
		body.PageSize = constants.AuditDefaultPageSize
	}

	if body.PageSize > constants.AuditMaxPageSize {
		body.PageSize = constants.AuditMaxPageSize
	}

	resp, err := c.httpClient.Post(ctx, "/v1/audit/search-audit-log", body)
	if err != nil {
		return nil, fmt.Errorf("searching audit log: %w", err)
	}

	var page incydr.AuditEventsPage

	err = json.Unmarshal(resp.Body, &page)
	if err != nil {
		return nil, fmt.Errorf("parsing audit log response: %w", err)
	}

	return &page, nil
}

// IterAll implements incydr.AuditLogClient.IterAll. The audit log endpoint
// numbers pages from 0.
func (c *AuditLogClient) IterAll(ctx context.Context, query *incydr.AuditQuery) *incydr.OffsetIterator[incydr.AuditEvent] {
	base := incydr.AuditQuery{}
	if query != nil {
		base = *query
	}

	pageSize := base.PageSize
	if pageSize <= 0 || pageSize > constants.AuditMaxPageSize {
		pageSize = constants.AuditDefaultPageSize
	}

	fetch := func(ctx context.Context, pageNum, pageSize int) ([]incydr.AuditEvent, error) {
		search := base
		search.PageNum = pageNum
		search.PageSize = pageSize

		page, err := c.GetPage(ctx, &search)
		if err != nil {
			return nil, err
		}

		return page.Events, nil
	}

	return incydr.NewOffsetIterator(ctx, fetch, &incydr.PaginationOptions{PageSize: pageSize})
}

// SearchEvents implements incydr.AuditLogClient.SearchEvents. It requests a
// single page at the endpoint's maximum size.
func (c *AuditLogClient) SearchEvents(ctx context.Context, query *incydr.AuditQuery) ([]incydr.AuditEvent, error) {
	search := incydr.AuditQuery{}
	if query != nil {
		search = *query
	}

	search.PageNum = 0
	search.PageSize = constants.AuditMaxPageSize

	page, err := c.GetPage(ctx, &search)
	if err != nil {
		return nil, err
	}

	return page.Events, nil
}

// GetEventCount implements incydr.AuditLogClient.GetEventCount.
func (c *AuditLogClient) GetEventCount(ctx context.Context, query *incydr.AuditQuery) (int64, error) {
	if query == nil {
		query = &incydr.AuditQuery{}
	}

	resp, err := c.httpClient.Post(ctx, "/v1/audit/search-results-count", query)
	if err != nil {
		return 0, fmt.Errorf("counting audit log events: %w", err)
	}

	var count incydr.AuditEventsCount

	err = json.Unmarshal(resp.Body, &count)
	if err != nil {
		return 0, fmt.Errorf("parsing audit log count response: %w", err)
	}

	return count.TotalResultCount, nil
}

// DownloadEvents implements incydr.AuditLogClient.DownloadEvents. It requests
// a CSV export, redeems the returned download token, and writes the file into
// targetFolder.
func (c *AuditLogClient) DownloadEvents(ctx context.Context, query *incydr.AuditQuery, targetFolder string) (string, error) {
	info, err := os.Stat(targetFolder)
	if err != nil || !info.IsDir() {
		return "", &incydr.ValidationError{Field: "targetFolder", Reason: "must be an existing directory"}
	}

	if query == nil {
		query = &incydr.AuditQuery{}
	}

	resp, err := c.httpClient.Post(ctx, "/v1/audit/search-results-export", query)
	if err != nil {
		return "", fmt.Errorf("requesting audit log export: %w", err)
	}

	var export incydr.AuditExportResponse

	err = json.Unmarshal(resp.Body, &export)
	if err != nil {
		return "", fmt.Errorf("parsing audit log export response: %w", err)
	}

	download, err := c.httpClient.Get(ctx, "/v1/audit/redeemDownloadToken",
		url.Values{"downloadToken": []string{export.DownloadToken}})
	if err != nil {
		return "", fmt.Errorf("redeeming download token: %w", err)
	}

	target := filepath.Join(targetFolder, exportFilename(download))

	err = os.WriteFile(target, download.Body, constants.ExportFilePerm)
	if err != nil {
		return "", fmt.Errorf("writing export file: %w", err)
	}

	return target, nil
}

// exportFilename takes the filename from the Content-Disposition header,
// falling back to a timestamped name.
func exportFilename(resp *http.Response) string {
	if disposition := resp.Headers.Get("Content-Disposition"); disposition != "" {
		_, params, err := mime.ParseMediaType(disposition)
		if err == nil && params["filename"] != "" {
			return filepath.Base(params["filename"])
		}
	}

	return fmt.Sprintf("audit-log-export-%s.csv", time.Now().UTC().Format("20060102-150405"))
}
