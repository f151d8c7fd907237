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

func TestSessionsClient_Get(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/v1/sessions/session-1", request.URL.Path)
		assert.Equal(t, "GET", request.Method)

		_ = json.NewEncoder(writer).Encode(incydr.Session{
			SessionID: "session-1",
			ActorID:   "actor-1",
			TenantID:  "tenant-1",
		})
	}))
	defer server.Close()

	session, err := client.NewTestClient(server.URL).Sessions().Get(context.Background(), "session-1")
	require.NoError(t, err)
	assert.Equal(t, "session-1", session.SessionID)
	assert.Equal(t, "actor-1", session.ActorID)
}

func TestSessionsClient_GetPage(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/v1/sessions", request.URL.Path)

		query := request.URL.Query()
		assert.Equal(t, "actor-1", query.Get("actor_id"))
		assert.Equal(t, "true", query.Get("has_alerts"))
		assert.Equal(t, []string{"OPEN", "OPEN_NEW_DATA"}, query["state"])

		_ = json.NewEncoder(writer).Encode(incydr.SessionsPage{
			Items:      []incydr.Session{{SessionID: "session-1"}},
			TotalCount: 1,
		})
	}))
	defer server.Close()

	params := incydr.NewSessionQueryParams().
		WithActorID("actor-1").
		WithHasAlerts(true).
		WithStates(incydr.SessionStateOpen, incydr.SessionStateOpenNewData)

	page, err := client.NewTestClient(server.URL).Sessions().GetPage(context.Background(), params)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, int64(1), page.TotalCount)
}

func TestSessionsClient_IterAll(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		page := incydr.SessionsPage{TotalCount: 51}

		// Page 0 is full, page 1 is short.
		if request.URL.Query().Get("page_number") == "" {
			for i := 0; i < 50; i++ {
				page.Items = append(page.Items, incydr.Session{SessionID: fmt.Sprintf("session-%d", i)})
			}
		} else {
			page.Items = []incydr.Session{{SessionID: "session-50"}}
		}

		_ = json.NewEncoder(writer).Encode(page)
	}))
	defer server.Close()

	sessions, err := client.NewTestClient(server.URL).Sessions().IterAll(context.Background(), nil).All()
	require.NoError(t, err)
	assert.Len(t, sessions, 51)
	assert.Equal(t, "session-50", sessions[50].SessionID)
}

func TestSessionsClient_IterAll_HonorsParamsPageSize(t *testing.T) {
	t.Parallel()

	var requestedSizes []string

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		requestedSizes = append(requestedSizes, request.URL.Query().Get("page_size"))

		page := incydr.SessionsPage{TotalCount: 11}

		// Page 0 is full at the requested size, page 1 is short.
		if request.URL.Query().Get("page_number") == "" {
			for i := 0; i < 10; i++ {
				page.Items = append(page.Items, incydr.Session{SessionID: fmt.Sprintf("session-%d", i)})
			}
		} else {
			page.Items = []incydr.Session{{SessionID: "session-10"}}
		}

		_ = json.NewEncoder(writer).Encode(page)
	}))
	defer server.Close()

	params := incydr.NewSessionQueryParams().WithPage(0, 10)

	sessions, err := client.NewTestClient(server.URL).Sessions().IterAll(context.Background(), params).All()
	require.NoError(t, err)
	assert.Len(t, sessions, 11)
	assert.Equal(t, []string{"10", "10"}, requestedSizes)
}

func TestSessionsClient_IterAll_ClampsParamsPageSize(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "50", request.URL.Query().Get("page_size"))

		_ = json.NewEncoder(writer).Encode(incydr.SessionsPage{})
	}))
	defer server.Close()

	params := incydr.NewSessionQueryParams().WithPage(0, 999)

	sessions, err := client.NewTestClient(server.URL).Sessions().IterAll(context.Background(), params).All()
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestSessionsClient_GetEvents(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/v1/sessions/session-1/events", request.URL.Path)

		_ = json.NewEncoder(writer).Encode(incydr.FileEventsPage{
			FileEvents: []incydr.FileEventV2{{Event: &incydr.FileEventInfo{ID: "event-1"}}},
			TotalCount: 1,
		})
	}))
	defer server.Close()

	page, err := client.NewTestClient(server.URL).Sessions().GetEvents(context.Background(), "session-1")
	require.NoError(t, err)
	require.Len(t, page.FileEvents, 1)
	assert.Equal(t, "event-1", page.FileEvents[0].Event.ID)
}

func TestSessionsClient_UpdateStateByID_Batches(t *testing.T) {
	t.Parallel()

	var batches [][]string

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/v1/sessions/change-state", request.URL.Path)

		var body incydr.SessionsChangeStateRequest

		require.NoError(t, json.NewDecoder(request.Body).Decode(&body))
		assert.Equal(t, incydr.SessionStateClosed, body.NewState)

		batches = append(batches, body.IDs)
		writer.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	ids := make([]string, 0, 250)
	for i := 0; i < 250; i++ {
		ids = append(ids, fmt.Sprintf("session-%d", i))
	}

	err := client.NewTestClient(server.URL).Sessions().UpdateStateByID(context.Background(), incydr.SessionStateClosed, ids...)
	require.NoError(t, err)

	// Each request carries only its own batch of IDs.
	require.Len(t, batches, 3)
	assert.Len(t, batches[0], 100)
	assert.Len(t, batches[1], 100)
	assert.Len(t, batches[2], 50)
	assert.Equal(t, "session-100", batches[1][0])
}

func TestSessionsClient_UpdateStateByID_NoIDs(t *testing.T) {
	t.Parallel()

	requests := 0

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		requests++

		writer.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	err := client.NewTestClient(server.URL).Sessions().UpdateStateByID(context.Background(), incydr.SessionStateClosed)
	require.NoError(t, err)
	assert.Equal(t, 0, requests)
}

func TestSessionsClient_UpdateStateByCriteria(t *testing.T) {
	t.Parallel()

	var tokens []string

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/v1/sessions/change-states", request.URL.Path)

		// The criteria travel in the query string on every request.
		assert.Equal(t, "actor-1", request.URL.Query().Get("actor_id"))

		var body incydr.SessionsChangeStatesRequest

		require.NoError(t, json.NewDecoder(request.Body).Decode(&body))
		tokens = append(tokens, body.ContinuationToken)

		response := incydr.SessionsChangeStatesResponse{}
		if len(tokens) < 3 {
			response.ContinuationToken = fmt.Sprintf("tok-%d", len(tokens))
		}

		_ = json.NewEncoder(writer).Encode(response)
	}))
	defer server.Close()

	params := incydr.NewSessionQueryParams().WithActorID("actor-1")

	requests, err := client.NewTestClient(server.URL).Sessions().
		UpdateStateByCriteria(context.Background(), incydr.SessionStateClosedFP, params)
	require.NoError(t, err)
	assert.Equal(t, 3, requests)
	assert.Equal(t, []string{"", "tok-1", "tok-2"}, tokens)
}

func TestSessionsClient_AddNote(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/v1/sessions/session-1/add-note", request.URL.Path)

		var body incydr.AddNoteRequest

		require.NoError(t, json.NewDecoder(request.Body).Decode(&body))
		assert.Equal(t, "reviewed, no exfiltration", body.NoteContent)

		writer.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	err := client.NewTestClient(server.URL).Sessions().
		AddNote(context.Background(), "session-1", "reviewed, no exfiltration")
	require.NoError(t, err)
}

func TestSessionsClient_AddNote_TooLong(t *testing.T) {
	t.Parallel()

	requests := 0

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		requests++

		writer.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	note := make([]byte, 2001)
	for i := range note {
		note[i] = 'a'
	}

	err := client.NewTestClient(server.URL).Sessions().AddNote(context.Background(), "session-1", string(note))
	require.Error(t, err)
	assert.True(t, incydr.IsValidation(err))

	// The request never left the client.
	assert.Equal(t, 0, requests)
}

func TestSessionsClient_AddNote_CapCountsCharactersNotBytes(t *testing.T) {
	t.Parallel()

	requests := 0

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		requests++

		writer.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	// 2000 three-byte characters: 6000 bytes, but within the cap.
	note := strings.Repeat("日", 2000)

	err := client.NewTestClient(server.URL).Sessions().AddNote(context.Background(), "session-1", note)
	require.NoError(t, err)
	assert.Equal(t, 1, requests)

	err = client.NewTestClient(server.URL).Sessions().AddNote(context.Background(), "session-1", note+"日")
	require.Error(t, err)
	assert.True(t, incydr.IsValidation(err))
	assert.Equal(t, 1, requests)
}
