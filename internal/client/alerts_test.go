package client_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/incydr-io/incydr-client/internal/client"
	"github.com/incydr-io/incydr-client/pkg/incydr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlertsClient_Search(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/v1/alerts/query-alerts", request.URL.Path)

		var body incydr.AlertQuery

		require.NoError(t, json.NewDecoder(request.Body).Decode(&body))
		assert.Equal(t, "AND", body.GroupClause)
		require.Len(t, body.Groups, 1)
		assert.Equal(t, "State", body.Groups[0].Filters[0].Term)

		_ = json.NewEncoder(writer).Encode(incydr.AlertsPage{
			Alerts:     []incydr.Alert{{ID: "alert-1", Name: "Removable media"}},
			TotalCount: 1,
		})
	}))
	defer server.Close()

	query := incydr.NewAlertQuery().Equals("State", "OPEN")

	page, err := client.NewTestClient(server.URL).Alerts().Search(context.Background(), query)
	require.NoError(t, err)
	require.Len(t, page.Alerts, 1)
	assert.Equal(t, "alert-1", page.Alerts[0].ID)
}

func TestAlertsClient_Search_LatchedQueryError(t *testing.T) {
	t.Parallel()

	requests := 0

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		requests++

		writer.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	// No values latches a validation error on the builder.
	query := incydr.NewAlertQuery().Equals("State")

	_, err := client.NewTestClient(server.URL).Alerts().Search(context.Background(), query)
	require.Error(t, err)
	assert.True(t, incydr.IsValidation(err))
	assert.Equal(t, 0, requests)
}

func TestAlertsClient_IterAll(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		var body incydr.AlertQuery

		require.NoError(t, json.NewDecoder(request.Body).Decode(&body))

		page := incydr.AlertsPage{}
		if body.PgNum == 0 {
			for i := 0; i < body.PgSize; i++ {
				page.Alerts = append(page.Alerts, incydr.Alert{ID: fmt.Sprintf("alert-%d", i)})
			}
		} else {
			page.Alerts = []incydr.Alert{{ID: "alert-last"}}
		}

		_ = json.NewEncoder(writer).Encode(page)
	}))
	defer server.Close()

	query := incydr.NewAlertQuery().WithPageSize(10)

	alerts, err := client.NewTestClient(server.URL).Alerts().IterAll(context.Background(), query).All()
	require.NoError(t, err)
	assert.Len(t, alerts, 11)
	assert.Equal(t, "alert-last", alerts[10].ID)
}

func TestAlertsClient_GetDetails_Batches(t *testing.T) {
	t.Parallel()

	var batchSizes []int

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/v1/alerts/query-details", request.URL.Path)

		var body incydr.AlertDetailsRequest

		require.NoError(t, json.NewDecoder(request.Body).Decode(&body))
		batchSizes = append(batchSizes, len(body.AlertIDs))

		details := incydr.AlertDetailsResponse{}
		for _, id := range body.AlertIDs {
			details.Alerts = append(details.Alerts, incydr.AlertDetail{Alert: incydr.Alert{ID: id}})
		}

		_ = json.NewEncoder(writer).Encode(details)
	}))
	defer server.Close()

	ids := make([]string, 0, 150)
	for i := 0; i < 150; i++ {
		ids = append(ids, fmt.Sprintf("alert-%d", i))
	}

	details, err := client.NewTestClient(server.URL).Alerts().GetDetails(context.Background(), ids...)
	require.NoError(t, err)
	assert.Equal(t, []int{100, 50}, batchSizes)

	// Batch results are flattened in input order.
	require.Len(t, details, 150)
	assert.Equal(t, "alert-0", details[0].ID)
	assert.Equal(t, "alert-149", details[149].ID)
}

func TestAlertsClient_ChangeState(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/v1/alerts/update-state", request.URL.Path)

		var body incydr.AlertsChangeStateRequest

		require.NoError(t, json.NewDecoder(request.Body).Decode(&body))
		assert.Equal(t, []string{"alert-1", "alert-2"}, body.AlertIDs)
		assert.Equal(t, incydr.AlertStateResolved, body.State)
		assert.Equal(t, "handled", body.Note)

		writer.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	err := client.NewTestClient(server.URL).Alerts().
		ChangeState(context.Background(), incydr.AlertStateResolved, "handled", "alert-1", "alert-2")
	require.NoError(t, err)
}

func TestAlertsClient_AddNote(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/v1/alerts/add-note", request.URL.Path)

		var body incydr.AlertAddNoteRequest

		require.NoError(t, json.NewDecoder(request.Body).Decode(&body))
		assert.Equal(t, "alert-1", body.AlertID)
		assert.Equal(t, "false positive", body.Note)

		writer.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	err := client.NewTestClient(server.URL).Alerts().AddNote(context.Background(), "alert-1", "false positive")
	require.NoError(t, err)
}

func TestAlertsClient_AddNote_TooLong(t *testing.T) {
	t.Parallel()

	requests := 0

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		requests++

		writer.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	note := make([]byte, 2001)
	for i := range note {
		note[i] = 'x'
	}

	err := client.NewTestClient(server.URL).Alerts().AddNote(context.Background(), "alert-1", string(note))
	require.Error(t, err)
	assert.True(t, incydr.IsValidation(err))
	assert.Equal(t, 0, requests)
}

func TestAlertsClient_AddNote_CapCountsCharactersNotBytes(t *testing.T) {
	t.Parallel()

	requests := 0

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		requests++

		writer.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	// 2000 three-byte characters: 6000 bytes, but within the cap.
	note := strings.Repeat("日", 2000)

	err := client.NewTestClient(server.URL).Alerts().AddNote(context.Background(), "alert-1", note)
	require.NoError(t, err)
	assert.Equal(t, 1, requests)

	err = client.NewTestClient(server.URL).Alerts().AddNote(context.Background(), "alert-1", note+"日")
	require.Error(t, err)
	assert.True(t, incydr.IsValidation(err))
	assert.Equal(t, 1, requests)
}
