package sqlite

import (
	"context"
	"database/sql"

	"github.com/fwojciec/relgraph"
)

// Compile-time interface verification.
var _ relgraph.SettingService = (*SettingService)(nil)

// SettingService implements relgraph.SettingService as a durable KV table.
type SettingService struct {
	db *DB
}

// NewSettingService creates a new SettingService.
func NewSettingService(db *DB) *SettingService {
	return &SettingService{db: db}
}

// Get retrieves a value by key.
func (s *SettingService) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", relgraph.Errorf(relgraph.ENOTFOUND, "setting %q not found", key)
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// Set durably stores a value under the key.
func (s *SettingService) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO settings (key, value)
		VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}

// Remove deletes the key. Removing an absent key is not an error.
func (s *SettingService) Remove(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM settings WHERE key = ?", key)
	return err
}
