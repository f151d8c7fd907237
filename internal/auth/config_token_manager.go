package auth

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"
)

// Static errors for err113 compliance.
var (
	ErrNoConfigPersister = errors.New("no config persister configured")
)

// ConfigPersister persists refreshed tokens so later CLI invocations can
// reuse them.
type ConfigPersister interface {
	UpdateToken(token string, expiresAt time.Time) error
}

// ConfigTokenManager wraps APIClientTokenManager and automatically persists
// refreshed tokens to config.
type ConfigTokenManager struct {
	manager       *APIClientTokenManager
	persister     ConfigPersister
	mutex         sync.RWMutex
	initialToken  string
	initialExpiry time.Time
}

// NewConfigTokenManager creates a config-persisting token manager. A
// previously persisted token, if any, seeds the cache.
func NewConfigTokenManager(manager *APIClientTokenManager, persister ConfigPersister, initialToken string, initialExpiry time.Time) *ConfigTokenManager {
	if initialToken != "" {
		manager.SetToken(initialToken, initialExpiry)
	}

	return &ConfigTokenManager{
		manager:       manager,
		persister:     persister,
		initialToken:  initialToken,
		initialExpiry: initialExpiry,
	}
}

// GetToken returns a valid access token, refreshing if necessary.
func (m *ConfigTokenManager) GetToken(ctx context.Context) (string, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	token, err := m.manager.GetToken(ctx)
	if err != nil {
		return "", err
	}

	expiry := m.manager.TokenExpiry()
	if token != m.initialToken || !expiry.Equal(m.initialExpiry) {
		// Token was refreshed, persist it. A persistence failure does not
		// fail the request.
		persistErr := m.persistToken(token, expiry)
		if persistErr != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Warning: failed to persist refreshed token: %v\n", persistErr)
		}

		m.initialToken = token
		m.initialExpiry = expiry
	}

	return token, nil
}

// RefreshToken forces a token refresh.
func (m *ConfigTokenManager) RefreshToken(ctx context.Context) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	err := m.manager.RefreshToken(ctx)
	if err != nil {
		return err
	}

	token, err := m.manager.GetToken(ctx)
	if err != nil {
		return err
	}

	expiry := m.manager.TokenExpiry()

	persistErr := m.persistToken(token, expiry)
	if persistErr != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Warning: failed to persist refreshed token: %v\n", persistErr)
	}

	m.initialToken = token
	m.initialExpiry = expiry

	return nil
}

// TokenExpiry returns the current token's expiration time.
func (m *ConfigTokenManager) TokenExpiry() time.Time {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	return m.manager.TokenExpiry()
}

func (m *ConfigTokenManager) persistToken(token string, expiresAt time.Time) error {
	if m.persister == nil {
		return ErrNoConfigPersister
	}

	err := m.persister.UpdateToken(token, expiresAt)
	if err != nil {
		return fmt.Errorf("failed to update token: %w", err)
	}

	return nil
}
