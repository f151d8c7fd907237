package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/incydr-io/incydr-client/internal/constants"
	"github.com/incydr-io/incydr-client/pkg/incydr"
)

// APIClientTokenManager exchanges API client credentials for bearer tokens
// and caches the result until it expires.
type APIClientTokenManager struct {
	tokenURL     string
	clientID     string
	clientSecret string
	store        *TokenStore
	httpClient   *http.Client
	mu           sync.Mutex
}

// NewAPIClientTokenManager creates a token manager for the given API base URL
// and client credentials.
func NewAPIClientTokenManager(baseURL, clientID, clientSecret string) *APIClientTokenManager {
	return &APIClientTokenManager{
		tokenURL:     strings.TrimSuffix(baseURL, "/") + "/v1/oauth",
		clientID:     clientID,
		clientSecret: clientSecret,
		store:        NewTokenStore(),
		httpClient:   &http.Client{Timeout: constants.DefaultHTTPTimeout},
	}
}

// GetToken returns the cached token when it is still valid, otherwise
// requests a fresh one.
func (m *APIClientTokenManager) GetToken(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if token := m.store.Get(); token.Valid() {
		return token.AccessToken, nil
	}

	token, err := m.requestToken(ctx)
	if err != nil {
		return "", err
	}

	m.store.Set(token)

	return token.AccessToken, nil
}

// RefreshToken discards the cached token and requests a new one.
func (m *APIClientTokenManager) RefreshToken(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.store.Clear()

	token, err := m.requestToken(ctx)
	if err != nil {
		return err
	}

	m.store.Set(token)

	return nil
}

// SetToken stores a token obtained elsewhere.
func (m *APIClientTokenManager) SetToken(accessToken string, expiresAt time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.store.Set(&Token{
		AccessToken: accessToken,
		TokenType:   "bearer",
		ExpiresAt:   expiresAt,
	})
}

// TokenExpiry returns the expiration time of the cached token, or the zero
// time when no token is cached.
func (m *APIClientTokenManager) TokenExpiry() time.Time {
	token := m.store.Get()
	if token == nil {
		return time.Time{}
	}

	return token.ExpiresAt
}

func (m *APIClientTokenManager) requestToken(ctx context.Context) (*Token, error) {
	if m.clientID == "" || m.clientSecret == "" {
		return nil, incydr.ErrNoCredentials
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.tokenURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating token request: %w", err)
	}

	req.SetBasicAuth(m.clientID, m.clientSecret)
	req.Header.Set("Accept", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requesting token: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading token response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("token request failed: %w", incydr.ParseResponseError(resp.StatusCode, body))
	}

	var token Token

	err = json.Unmarshal(body, &token)
	if err != nil {
		return nil, fmt.Errorf("parsing token response: %w", err)
	}

	if token.ExpiresIn > 0 {
		token.ExpiresAt = time.Now().Add(time.Duration(token.ExpiresIn) * time.Second)
	}

	return &token, nil
}
