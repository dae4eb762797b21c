// Package settings persists the highlight colour across sessions.
package settings

import (
	"context"
	"sync"
)

// DefaultColor is used whenever no colour has been persisted.
const DefaultColor = "#00FF00"

// Settings is the persisted record.
type Settings struct {
	TodoColor string `koanf:"todoColor"`
}

// Defaults returns the settings used when nothing is persisted.
func Defaults() Settings {
	return Settings{TodoColor: DefaultColor}
}

// Normalize substitutes defaults for missing values.
func (s Settings) Normalize() Settings {
	if s.TodoColor == "" {
		s.TodoColor = DefaultColor
	}
	return s
}

// Store loads and saves the settings record.
type Store interface {
	// Load returns the persisted settings, or Defaults when nothing has
	// been saved yet.
	Load(ctx context.Context) (Settings, error)
	// Save persists s wholesale.
	Save(ctx context.Context, s Settings) error
}

// MemoryStore keeps the settings in memory. The zero value is ready to use.
type MemoryStore struct {
	mu    sync.Mutex
	saved *Settings
}

var _ Store = (*MemoryStore)(nil)

func (m *MemoryStore) Load(ctx context.Context) (Settings, error) {
	if err := ctx.Err(); err != nil {
		return Defaults(), err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saved == nil {
		return Defaults(), nil
	}
	return m.saved.Normalize(), nil
}

func (m *MemoryStore) Save(ctx context.Context, s Settings) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved = &s
	return nil
}
