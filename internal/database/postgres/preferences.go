package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kozaktomas/photo-prefs/internal/database"
	"github.com/kozaktomas/photo-prefs/internal/preferences"
)

// PreferencesRepository stores per-user preference overrides as JSONB.
type PreferencesRepository struct {
	pool *Pool
}

var _ database.PreferencesWriter = (*PreferencesRepository)(nil)

// NewPreferencesRepository creates a new PostgreSQL preferences repository
func NewPreferencesRepository(pool *Pool) *PreferencesRepository {
	return &PreferencesRepository{pool: pool}
}

// Get returns the stored overrides of a user, nil if the user has none
func (r *PreferencesRepository) Get(ctx context.Context, userID string) (*preferences.Update, error) {
	var raw []byte
	err := r.pool.QueryRow(ctx, "SELECT preferences FROM user_preferences WHERE user_id = $1", userID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get preferences: %w", err)
	}
	return decodeOverrides(userID, raw)
}

// Count returns the number of users with stored overrides
func (r *PreferencesRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM user_preferences").Scan(&count); err != nil {
		return 0, fmt.Errorf("count preferences: %w", err)
	}
	return count, nil
}

// Modify locks the row of a user, applies the change and stores the result in
// one transaction. A missing row is created first so that concurrent first
// writes of the same user also queue on the row lock.
func (r *PreferencesRepository) Modify(ctx context.Context, userID string, apply func(*preferences.Update) *preferences.Update) (*preferences.Update, error) {
	var next *preferences.Update
	err := r.pool.WithTx(ctx, func(tx *sql.Tx) error {
		inserted, err := tx.ExecContext(ctx,
			"INSERT INTO user_preferences (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING", userID)
		if err != nil {
			return fmt.Errorf("create preferences row: %w", err)
		}

		var raw []byte
		if err := tx.QueryRowContext(ctx,
			"SELECT preferences FROM user_preferences WHERE user_id = $1 FOR UPDATE", userID,
		).Scan(&raw); err != nil {
			return fmt.Errorf("lock preferences: %w", err)
		}

		var current *preferences.Update
		if n, _ := inserted.RowsAffected(); n == 0 {
			if current, err = decodeOverrides(userID, raw); err != nil {
				return err
			}
		}

		next = apply(current)
		if next == nil {
			next = &preferences.Update{}
		}
		data, err := json.Marshal(next)
		if err != nil {
			return fmt.Errorf("encode preferences: %w", err)
		}

		// lib/pq sends []byte as bytea, so the document goes as text.
		if _, err := tx.ExecContext(ctx,
			"UPDATE user_preferences SET preferences = $2, updated_at = NOW() WHERE user_id = $1",
			userID, string(data),
		); err != nil {
			return fmt.Errorf("save preferences: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return next, nil
}

// Delete removes the stored overrides of a user
func (r *PreferencesRepository) Delete(ctx context.Context, userID string) error {
	if _, err := r.pool.Exec(ctx, "DELETE FROM user_preferences WHERE user_id = $1", userID); err != nil {
		return fmt.Errorf("delete preferences: %w", err)
	}
	return nil
}

func decodeOverrides(userID string, raw []byte) (*preferences.Update, error) {
	var overrides preferences.Update
	if err := json.Unmarshal(raw, &overrides); err != nil {
		return nil, fmt.Errorf("decode preferences of user %s: %w", userID, err)
	}
	return &overrides, nil
}
