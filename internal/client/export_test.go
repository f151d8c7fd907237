package client

import (
	internalhttp "github.com/incydr-io/incydr-client/internal/http"
)

// NewTestClient creates a client against the given base URL with no token
// manager, for use with httptest servers.
func NewTestClient(baseURL string) *Client {
	httpClient := internalhttp.NewClient(baseURL, nil)

	client := &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
	}

	client.initializeResourceClients()

	return client
}
