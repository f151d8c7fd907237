// Package incydrclient provides the main entry point for creating Incydr API clients
package incydrclient

import (
	"context"
	"fmt"
	"strings"

	"github.com/incydr-io/incydr-client/internal/client"
	"github.com/incydr-io/incydr-client/pkg/incydr"
)

// New creates a new Incydr API client.
func New(ctx context.Context, config *incydr.Config) (incydr.Client, error) {
	if config == nil {
		return nil, incydr.ErrConfigRequired
	}

	if config.APIEndpoint == "" {
		return nil, incydr.ErrAPIEndpointRequired
	}

	// Normalize API endpoint
	apiEndpoint := strings.TrimSuffix(config.APIEndpoint, "/")
	if !strings.HasPrefix(apiEndpoint, "http://") && !strings.HasPrefix(apiEndpoint, "https://") {
		apiEndpoint = "https://" + apiEndpoint
	}

	config.APIEndpoint = apiEndpoint

	// Use the internal client implementation
	client, err := client.New(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return client, nil
}

// NewWithToken creates a new client with an API endpoint and access token.
func NewWithToken(ctx context.Context, endpoint, token string) (incydr.Client, error) {
	return New(ctx, &incydr.Config{
		APIEndpoint: endpoint,
		AccessToken: token,
	})
}

// NewWithClientCredentials creates a new client using API client credentials.
func NewWithClientCredentials(ctx context.Context, endpoint, clientID, clientSecret string) (incydr.Client, error) {
	return New(ctx, &incydr.Config{
		APIEndpoint:     endpoint,
		APIClientID:     clientID,
		APIClientSecret: clientSecret,
	})
}
