package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// GetSetting returns the global setting value for option, or fallback when the
// option is unset.
func (s *Store) GetSetting(ctx context.Context, option, fallback string) (string, error) {
	ctx = ensureContext(ctx)
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM settings WHERE option = ?", option).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return fallback, nil
	}
	if err != nil {
		return "", fmt.Errorf("read setting %q: %w", option, err)
	}
	return value, nil
}

// SetSetting stores a global setting value.
func (s *Store) SetSetting(ctx context.Context, option, value string) error {
	if err := s.execWithRetry(ctx,
		"INSERT INTO settings (option, value) VALUES (?, ?) ON CONFLICT (option) DO UPDATE SET value = excluded.value",
		option, value,
	); err != nil {
		return fmt.Errorf("write setting %q: %w", option, err)
	}
	return nil
}

// GetProjectMetadata returns a project-scoped metadata value, falling back to
// the global setting of the same name, then to fallback.
func (s *Store) GetProjectMetadata(ctx context.Context, projectID int64, name, fallback string) (string, error) {
	ctx = ensureContext(ctx)
	var value string
	err := s.db.QueryRowContext(ctx,
		"SELECT value FROM project_has_metadata WHERE project_id = ? AND name = ?",
		projectID, name,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return s.GetSetting(ctx, name, fallback)
	}
	if err != nil {
		return "", fmt.Errorf("read project %d metadata %q: %w", projectID, name, err)
	}
	return value, nil
}

// SetProjectMetadata stores a project-scoped metadata value.
func (s *Store) SetProjectMetadata(ctx context.Context, projectID int64, name, value string) error {
	if err := s.execWithRetry(ctx,
		"INSERT INTO project_has_metadata (project_id, name, value) VALUES (?, ?, ?) ON CONFLICT (project_id, name) DO UPDATE SET value = excluded.value",
		projectID, name, value,
	); err != nil {
		return fmt.Errorf("write project %d metadata %q: %w", projectID, name, err)
	}
	return nil
}

// GetUserMetadata returns a user-scoped metadata value, falling back to the
// global setting of the same name, then to fallback.
func (s *Store) GetUserMetadata(ctx context.Context, userID int64, name, fallback string) (string, error) {
	ctx = ensureContext(ctx)
	var value string
	err := s.db.QueryRowContext(ctx,
		"SELECT value FROM user_has_metadata WHERE user_id = ? AND name = ?",
		userID, name,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return s.GetSetting(ctx, name, fallback)
	}
	if err != nil {
		return "", fmt.Errorf("read user %d metadata %q: %w", userID, name, err)
	}
	return value, nil
}

// SetUserMetadata stores a user-scoped metadata value.
func (s *Store) SetUserMetadata(ctx context.Context, userID int64, name, value string) error {
	if err := s.execWithRetry(ctx,
		"INSERT INTO user_has_metadata (user_id, name, value) VALUES (?, ?, ?) ON CONFLICT (user_id, name) DO UPDATE SET value = excluded.value",
		userID, name, value,
	); err != nil {
		return fmt.Errorf("write user %d metadata %q: %w", userID, name, err)
	}
	return nil
}
