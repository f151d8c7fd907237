package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/incydr-io/incydr-client/internal/client"
	"github.com/incydr-io/incydr-client/pkg/incydr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditLogClient_GetPage(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/v1/audit/search-audit-log", request.URL.Path)

		var body incydr.AuditQuery

		require.NoError(t, json.NewDecoder(request.Body).Decode(&body))
		assert.Equal(t, []string{"actor-1"}, body.ActorIDs)
		assert.Equal(t, 100, body.PageSize)

		_ = json.NewEncoder(writer).Encode(incydr.AuditEventsPage{
			Events: []incydr.AuditEvent{{"type$": "audit_log::logged_in/1", "actorId": "actor-1"}},
		})
	}))
	defer server.Close()

	query := &incydr.AuditQuery{ActorIDs: []string{"actor-1"}}

	page, err := client.NewTestClient(server.URL).AuditLog().GetPage(context.Background(), query)
	require.NoError(t, err)
	require.Len(t, page.Events, 1)
	assert.Equal(t, "actor-1", page.Events[0]["actorId"])
}

func TestAuditLogClient_GetPage_ClampsPageSize(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		var body incydr.AuditQuery

		require.NoError(t, json.NewDecoder(request.Body).Decode(&body))
		assert.Equal(t, 10000, body.PageSize)

		_ = json.NewEncoder(writer).Encode(incydr.AuditEventsPage{})
	}))
	defer server.Close()

	query := &incydr.AuditQuery{PageSize: 99999}

	_, err := client.NewTestClient(server.URL).AuditLog().GetPage(context.Background(), query)
	require.NoError(t, err)
}

func TestAuditLogClient_GetEventCount(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/v1/audit/search-results-count", request.URL.Path)

		_ = json.NewEncoder(writer).Encode(incydr.AuditEventsCount{TotalResultCount: 42})
	}))
	defer server.Close()

	count, err := client.NewTestClient(server.URL).AuditLog().GetEventCount(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(42), count)
}

func TestAuditLogClient_SearchEvents_RequestsMaxPage(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		var body incydr.AuditQuery

		require.NoError(t, json.NewDecoder(request.Body).Decode(&body))
		assert.Equal(t, 0, body.PageNum)
		assert.Equal(t, 10000, body.PageSize)

		_ = json.NewEncoder(writer).Encode(incydr.AuditEventsPage{
			Events: []incydr.AuditEvent{{"type$": "audit_log::logged_in/1"}},
		})
	}))
	defer server.Close()

	events, err := client.NewTestClient(server.URL).AuditLog().SearchEvents(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestAuditLogClient_DownloadEvents(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		switch request.URL.Path {
		case "/v1/audit/search-results-export":
			_ = json.NewEncoder(writer).Encode(incydr.AuditExportResponse{DownloadToken: "dl-token"})
		case "/v1/audit/redeemDownloadToken":
			assert.Equal(t, "dl-token", request.URL.Query().Get("downloadToken"))
			writer.Header().Set("Content-Disposition", `attachment; filename="audit-export.csv"`)
			_, _ = writer.Write([]byte("header1,header2\nvalue1,value2\n"))
		default:
			t.Errorf("unexpected path %s", request.URL.Path)
		}
	}))
	defer server.Close()

	dir := t.TempDir()

	path, err := client.NewTestClient(server.URL).AuditLog().DownloadEvents(context.Background(), nil, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "audit-export.csv"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "header1,header2\nvalue1,value2\n", string(data))
}

func TestAuditLogClient_DownloadEvents_BadTarget(t *testing.T) {
	t.Parallel()

	requests := 0

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		requests++

		writer.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	_, err := client.NewTestClient(server.URL).AuditLog().
		DownloadEvents(context.Background(), nil, "/no/such/directory")
	require.Error(t, err)
	assert.True(t, incydr.IsValidation(err))
	assert.Equal(t, 0, requests)
}

func TestAuditLogClient_IterAll(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		var body incydr.AuditQuery

		require.NoError(t, json.NewDecoder(request.Body).Decode(&body))

		page := incydr.AuditEventsPage{}
		if body.PageNum == 0 {
			for n := 0; n < body.PageSize; n++ {
				page.Events = append(page.Events, incydr.AuditEvent{"type$": "audit_log::logged_in/1"})
			}
		} else {
			page.Events = []incydr.AuditEvent{{"type$": "audit_log::logged_out/1"}}
		}

		_ = json.NewEncoder(writer).Encode(page)
	}))
	defer server.Close()

	query := &incydr.AuditQuery{PageSize: 25}

	events, err := client.NewTestClient(server.URL).AuditLog().IterAll(context.Background(), query).All()
	require.NoError(t, err)
	assert.Len(t, events, 26)
}
