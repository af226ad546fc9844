package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Keys for every piece of persisted application state. Values are
// JSON-encoded; a missing or malformed value always reads as the caller's
// default, never as an error.
const (
	KeyScanHistory = "scanHistory"
	KeyPantry      = "pantry"
	KeyRecipes     = "recipes"
	KeyPreferences = "preferences"
	KeyScanUsage   = "scanUsage"
	KeyRecipeUsage = "recipeUsage"
	KeyOnboarding  = "hasCompletedOnboarding"
	KeyUserName    = "userName"
	KeyUserAvatar  = "userAvatar"
	KeyAppSettings = "appSettings"
	KeyNotify      = "notifications"
	KeyAdminMode   = "adminMode"
	KeyAuth        = "authenticated"
)

// Store is a flat key-value store with JSON-encoded values.
type Store interface {
	// Get unmarshals the value for key into dest. It reports whether a usable
	// value was found; callers keep their default when it returns false.
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
}

// PostgresStore implements Store on a single app_state table.
type PostgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore connects to Postgres and creates the app_state table if it
// does not exist.
func NewPostgresStore(dataSourceName string) (*PostgresStore, error) {
	db, err := sqlx.Connect("postgres", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS app_state (
		key TEXT PRIMARY KEY,
		value JSONB NOT NULL
	);
	`
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to create app_state table: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

// Get retrieves and unmarshals the value stored under key. A malformed stored
// value is logged and treated as absent.
func (s *PostgresStore) Get(ctx context.Context, key string, dest any) (bool, error) {
	var raw []byte
	err := s.db.QueryRowContext(ctx, "SELECT value FROM app_state WHERE key = $1", key).Scan(&raw)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("failed to get state %q: %w", key, err)
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		slog.Warn("malformed state value, using default", "key", key, "error", err)
		return false, nil
	}
	return true, nil
}

// Set marshals value and upserts it under key.
func (s *PostgresStore) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal state %q: %w", key, err)
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO app_state (key, value) VALUES ($1, $2) ON CONFLICT (key) DO UPDATE SET value = $2",
		key, raw,
	)
	if err != nil {
		return fmt.Errorf("failed to set state %q: %w", key, err)
	}
	return nil
}

// Delete removes the value stored under key.
func (s *PostgresStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM app_state WHERE key = $1", key); err != nil {
		return fmt.Errorf("failed to delete state %q: %w", key, err)
	}
	return nil
}
