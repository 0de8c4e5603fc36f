package preferences

import (
	"context"
	"fmt"
)

// Store persists the preference overrides of each user.
type Store interface {
	// Get returns the stored overrides of a user, nil when there are none.
	Get(ctx context.Context, userID string) (*Update, error)
	// Modify replaces the overrides of a user with apply(current) and returns
	// what was stored. No other Modify or Delete of the same user may run in
	// between reading current and storing the result.
	Modify(ctx context.Context, userID string, apply func(current *Update) *Update) (*Update, error)
	// Delete removes the overrides of a user.
	Delete(ctx context.Context, userID string) error
}

// Service resolves and updates user preferences. Only the fields a user has
// changed are stored, so the resolved record follows changes to defaults.
type Service struct {
	store    Store
	defaults Preferences
}

// NewService creates a service resolving missing fields from defaults.
func NewService(store Store, defaults Preferences) *Service {
	return &Service{store: store, defaults: defaults}
}

// Get returns the resolved preferences of a user.
func (s *Service) Get(ctx context.Context, userID string) (Response, error) {
	overrides, err := s.store.Get(ctx, userID)
	if err != nil {
		return Response{}, fmt.Errorf("loading preferences: %w", err)
	}
	return MapPreferences(Merge(s.defaults, overrides)), nil
}

// Update stores a validated partial update on top of the user's overrides and
// returns the resolved result.
func (s *Service) Update(ctx context.Context, userID string, u *Update) (Response, error) {
	overrides, err := s.store.Modify(ctx, userID, func(current *Update) *Update {
		return Overlay(current, u)
	})
	if err != nil {
		return Response{}, fmt.Errorf("saving preferences: %w", err)
	}
	return MapPreferences(Merge(s.defaults, overrides)), nil
}

// Reset drops every override of a user, who then gets the defaults.
func (s *Service) Reset(ctx context.Context, userID string) (Response, error) {
	if err := s.store.Delete(ctx, userID); err != nil {
		return Response{}, fmt.Errorf("resetting preferences: %w", err)
	}
	return MapPreferences(s.defaults), nil
}
