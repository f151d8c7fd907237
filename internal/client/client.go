// Package client implements the incydr.Client interface on top of the
// internal HTTP transport.
package client

import (
	"context"
	"fmt"

	"github.com/incydr-io/incydr-client/internal/auth"
	"github.com/incydr-io/incydr-client/internal/constants"
	"github.com/incydr-io/incydr-client/internal/http"
	"github.com/incydr-io/incydr-client/pkg/incydr"
)

// Client implements the incydr.Client interface.
type Client struct {
	httpClient   *http.Client
	tokenManager auth.TokenManager
	baseURL      string
	logger       incydr.Logger
	pageSize     int

	// Resource clients
	sessions          incydr.SessionsClient
	auditLog          incydr.AuditLogClient
	alerts            incydr.AlertsClient
	fileEvents        incydr.FileEventsClient
	trustedActivities incydr.TrustedActivitiesClient
}

// createTokenManager creates the appropriate token manager based on config.
func createTokenManager(config *incydr.Config) (auth.TokenManager, error) {
	if config.AccessToken != "" {
		return auth.NewStaticTokenManager(config.AccessToken), nil
	}

	if config.APIClientID != "" && config.APIClientSecret != "" {
		return auth.NewAPIClientTokenManager(config.APIEndpoint, config.APIClientID, config.APIClientSecret), nil
	}

	return nil, incydr.ErrNoCredentials
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *incydr.Config) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.RetryMax > 0 {
		retryWaitMin := constants.DefaultRetryWaitMin
		retryWaitMax := constants.DefaultRetryWaitMax

		if config.RetryWaitMin > 0 {
			retryWaitMin = config.RetryWaitMin
		}

		if config.RetryWaitMax > 0 {
			retryWaitMax = config.RetryWaitMax
		}

		httpOpts = append(httpOpts, http.WithRetryConfig(config.RetryMax, retryWaitMin, retryWaitMax))
	}

	return httpOpts
}

// New creates a new API client from config.
func New(_ context.Context, config *incydr.Config) (*Client, error) {
	if config == nil {
		return nil, incydr.ErrConfigRequired
	}

	if config.APIEndpoint == "" {
		return nil, incydr.ErrAPIEndpointRequired
	}

	tokenManager, err := createTokenManager(config)
	if err != nil {
		return nil, err
	}

	return NewWithTokenManager(config, tokenManager)
}

// NewWithTokenManager creates a new API client with a custom token manager.
func NewWithTokenManager(config *incydr.Config, tokenManager auth.TokenManager) (*Client, error) {
	if config.APIEndpoint == "" {
		return nil, incydr.ErrAPIEndpointRequired
	}

	httpOpts := createHTTPClientOptions(config)
	httpClient := http.NewClient(config.APIEndpoint, tokenManager, httpOpts...)

	client := &Client{
		httpClient:   httpClient,
		tokenManager: tokenManager,
		baseURL:      config.APIEndpoint,
		logger:       config.Logger,
		pageSize:     config.PageSize,
	}

	client.initializeResourceClients()

	return client, nil
}

// GetTokenManager returns the token manager for this client.
func (c *Client) GetTokenManager() auth.TokenManager {
	return c.tokenManager
}

// GetToken returns the current access token from the token manager.
func (c *Client) GetToken(ctx context.Context) (string, error) {
	if c.tokenManager == nil {
		return "", incydr.ErrNotAuthenticated
	}

	token, err := c.tokenManager.GetToken(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get token: %w", err)
	}

	return token, nil
}

// Sessions implements incydr.Client.Sessions.
func (c *Client) Sessions() incydr.SessionsClient {
	return c.sessions
}

// AuditLog implements incydr.Client.AuditLog.
func (c *Client) AuditLog() incydr.AuditLogClient {
	return c.auditLog
}

// Alerts implements incydr.Client.Alerts.
func (c *Client) Alerts() incydr.AlertsClient {
	return c.alerts
}

// FileEvents implements incydr.Client.FileEvents.
func (c *Client) FileEvents() incydr.FileEventsClient {
	return c.fileEvents
}

// TrustedActivities implements incydr.Client.TrustedActivities.
func (c *Client) TrustedActivities() incydr.TrustedActivitiesClient {
	return c.trustedActivities
}

// initializeResourceClients initializes all resource-specific clients.
func (c *Client) initializeResourceClients() {
	c.sessions = NewSessionsClient(c.httpClient, c.pageSize)
	c.auditLog = NewAuditLogClient(c.httpClient)
	c.alerts = NewAlertsClient(c.httpClient)
	c.fileEvents = NewFileEventsClient(c.httpClient)
	c.trustedActivities = NewTrustedActivitiesClient(c.httpClient)
}
