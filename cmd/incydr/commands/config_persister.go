package commands

import (
	"sync"
	"time"
)

// ConfigPersister persists refreshed tokens back to the CLI config file so
// subsequent invocations can reuse them.
type ConfigPersister struct {
	mutex sync.Mutex
}

// NewConfigPersister creates a config persister backed by the active config file.
func NewConfigPersister() *ConfigPersister {
	return &ConfigPersister{}
}

// UpdateToken saves a new access token and its expiry to the config file.
func (p *ConfigPersister) UpdateToken(token string, expiresAt time.Time) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	config := loadConfig()
	config.AccessToken = token
	config.TokenExpiresAt = &expiresAt

	return saveConfigStruct(config)
}
