package database

import (
	"context"
	"errors"
	"sync"
)

var errNotInitialized = errors.New("preferences backend not initialized: DATABASE_URL is required")

var (
	backendMu         sync.RWMutex
	preferencesWriter func() PreferencesWriter
)

// RegisterPreferencesBackend registers the preferences repository constructor.
// Called by the serve command with the PostgreSQL or in-memory repository.
// Passing nil unregisters the backend.
func RegisterPreferencesBackend(writer func() PreferencesWriter) {
	backendMu.Lock()
	defer backendMu.Unlock()
	preferencesWriter = writer
}

// GetPreferencesWriter returns a PreferencesWriter from the registered backend
func GetPreferencesWriter(ctx context.Context) (PreferencesWriter, error) {
	backendMu.RLock()
	defer backendMu.RUnlock()
	if preferencesWriter == nil {
		return nil, errNotInitialized
	}
	return preferencesWriter(), nil
}
