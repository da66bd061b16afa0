// Package repository persists the application's configuration records.
// Each record lives under a fixed key and is overwritten whole on save;
// defaulting for missing fields happens in the consumers, not here.
package repository

import (
	"database/sql"
	"fmt"
)

// RecordStore is the persistence contract the configuration stores depend
// on. Load returns nil bytes when the record does not exist yet.
type RecordStore interface {
	LoadRecord(key string) ([]byte, error)
	SaveRecord(key string, value []byte) error
}

// Repository provides database-backed record storage.
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Migrate creates the record table if it is missing.
func (r *Repository) Migrate() error {
	query := `
		CREATE SCHEMA IF NOT EXISTS taxsim;
		CREATE TABLE IF NOT EXISTS taxsim.config_records (
			key        TEXT PRIMARY KEY,
			value      JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`
	if _, err := r.db.Exec(query); err != nil {
		return fmt.Errorf("failed to migrate config records: %w", err)
	}
	return nil
}

// LoadRecord retrieves one record by key; a missing record is not an error.
func (r *Repository) LoadRecord(key string) ([]byte, error) {
	var value []byte
	query := `
		SELECT value
		FROM taxsim.config_records
		WHERE key = $1`
	err := r.db.QueryRow(query, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load record %q: %w", key, err)
	}
	return value, nil
}

// SaveRecord overwrites the record under key.
func (r *Repository) SaveRecord(key string, value []byte) error {
	query := `
		INSERT INTO taxsim.config_records (key, value, updated_at)
		VALUES ($1, $2, CURRENT_TIMESTAMP)
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, updated_at = CURRENT_TIMESTAMP`
	if _, err := r.db.Exec(query, key, value); err != nil {
		return fmt.Errorf("failed to save record %q: %w", key, err)
	}
	return nil
}
