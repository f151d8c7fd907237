package auth

import (
	"context"
	"sync"
	"time"

	"github.com/incydr-io/incydr-client/internal/constants"
	"github.com/incydr-io/incydr-client/pkg/incydr"
)

// Token represents a bearer token issued by the API.
type Token struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresIn   int       `json:"expires_in"`
	ExpiresAt   time.Time `json:"expires_at,omitempty"`
}

// Valid reports whether the token is usable. Tokens expiring within the
// expiration buffer are treated as expired so requests in flight do not race
// the server clock.
func (t *Token) Valid() bool {
	if t == nil || t.AccessToken == "" {
		return false
	}

	if t.ExpiresAt.IsZero() {
		return true
	}

	return time.Now().Add(constants.TokenExpirationBuffer).Before(t.ExpiresAt)
}

// TokenStore holds a token safely across goroutines.
type TokenStore struct {
	mu    sync.RWMutex
	token *Token
}

// NewTokenStore creates an empty token store.
func NewTokenStore() *TokenStore {
	return &TokenStore{}
}

// Get returns the stored token or nil.
func (s *TokenStore) Get() *Token {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.token
}

// Set stores a token.
func (s *TokenStore) Set(token *Token) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
}

// Clear removes the stored token.
func (s *TokenStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = nil
}

// TokenManager provides bearer tokens for API requests.
type TokenManager interface {
	// GetToken returns a valid access token, requesting a new one if the
	// cached token is missing or expired.
	GetToken(ctx context.Context) (string, error)

	// RefreshToken discards the cached token and requests a new one.
	RefreshToken(ctx context.Context) error
}

// StaticTokenManager serves a fixed token that was obtained elsewhere.
type StaticTokenManager struct {
	token string
}

// NewStaticTokenManager creates a manager around a pre-issued token.
func NewStaticTokenManager(token string) *StaticTokenManager {
	return &StaticTokenManager{token: token}
}

// GetToken returns the static token.
func (m *StaticTokenManager) GetToken(_ context.Context) (string, error) {
	if m.token == "" {
		return "", incydr.ErrNotAuthenticated
	}

	return m.token, nil
}

// RefreshToken fails because static tokens cannot be renewed.
func (m *StaticTokenManager) RefreshToken(_ context.Context) error {
	return incydr.ErrStaticTokenCannotRefresh
}
