package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/julianstephens/backtrack/internal/storage"
)

// GetValue reads one document by key.
func (s *Store) GetValue(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM documents WHERE key = $1", key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("no value for key %q: %w", key, storage.ErrKeyNotFound)
		}
		return "", fmt.Errorf("failed to read document %q: %w", key, err)
	}
	return value, nil
}

// SetValue writes one document, replacing any existing value.
func (s *Store) SetValue(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO documents (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to write document %q: %w", key, err)
	}
	return nil
}

// DeleteValue removes one document by key.
func (s *Store) DeleteValue(key string) error {
	result, err := s.db.Exec("DELETE FROM documents WHERE key = $1", key)
	if err != nil {
		return fmt.Errorf("failed to delete document %q: %w", key, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("no value for key %q: %w", key, storage.ErrKeyNotFound)
	}
	return nil
}
