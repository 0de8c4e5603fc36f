// Package mock provides in-memory implementations of database interfaces, used
// by tests and by serve --memory.
package mock

import (
	"context"
	"sync"

	"github.com/kozaktomas/photo-prefs/internal/database"
	"github.com/kozaktomas/photo-prefs/internal/preferences"
)

// MockPreferencesRepository is a mock implementation of database.PreferencesWriter
type MockPreferencesRepository struct {
	mu   sync.RWMutex
	rows map[string]*preferences.Update

	// Error injection
	GetError    error
	ModifyError error
	DeleteError error
	CountError  error

	// Call tracking
	ModifyCalls int
	DeleteCalls int
}

var _ database.PreferencesWriter = (*MockPreferencesRepository)(nil)

// NewMockPreferencesRepository creates a new mock preferences repository
func NewMockPreferencesRepository() *MockPreferencesRepository {
	return &MockPreferencesRepository{
		rows: make(map[string]*preferences.Update),
	}
}

// Get retrieves a copy of the overrides of a user
func (m *MockPreferencesRepository) Get(ctx context.Context, userID string) (*preferences.Update, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	row, ok := m.rows[userID]
	if !ok {
		return nil, nil
	}
	return preferences.Overlay(row, nil), nil
}

// Count returns the number of stored rows
func (m *MockPreferencesRepository) Count(ctx context.Context) (int, error) {
	if m.CountError != nil {
		return 0, m.CountError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rows), nil
}

// Modify holds the write lock for the whole read-apply-store sequence
func (m *MockPreferencesRepository) Modify(ctx context.Context, userID string, apply func(*preferences.Update) *preferences.Update) (*preferences.Update, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ModifyCalls++
	if m.ModifyError != nil {
		return nil, m.ModifyError
	}

	var current *preferences.Update
	if row, ok := m.rows[userID]; ok {
		current = preferences.Overlay(row, nil)
	}
	next := preferences.Overlay(apply(current), nil)
	m.rows[userID] = next
	return preferences.Overlay(next, nil), nil
}

// Delete removes the overrides of a user
func (m *MockPreferencesRepository) Delete(ctx context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteCalls++
	if m.DeleteError != nil {
		return m.DeleteError
	}
	delete(m.rows, userID)
	return nil
}
