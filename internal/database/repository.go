package database

import (
	"context"

	"github.com/kozaktomas/photo-prefs/internal/preferences"
)

// PreferencesReader provides read-only access to stored preference overrides
type PreferencesReader interface {
	// Get retrieves the overrides of a user, returns nil if none are stored
	Get(ctx context.Context, userID string) (*preferences.Update, error)
	// Count returns the number of users with stored overrides
	Count(ctx context.Context) (int, error)
}

// PreferencesWriter provides read-write access to stored preference overrides
type PreferencesWriter interface {
	PreferencesReader
	// Modify replaces the overrides of a user with apply(current) while no
	// other writer can change them, and returns the stored result
	Modify(ctx context.Context, userID string, apply func(current *preferences.Update) *preferences.Update) (*preferences.Update, error)
	// Delete removes the overrides of a user so defaults apply again
	Delete(ctx context.Context, userID string) error
}

var _ preferences.Store = PreferencesWriter(nil)
