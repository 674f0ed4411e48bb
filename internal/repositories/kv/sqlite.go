package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const createTableQuery = `
	CREATE TABLE IF NOT EXISTS kv_store (
		key TEXT PRIMARY KEY,
		value BLOB NOT NULL,
		updated_at DATETIME NOT NULL
	);
`

// SQLiteConfig holds configuration for the SQLite store
type SQLiteConfig struct {
	// DB is an open connection to a sqlite3 database
	DB *sql.DB
}

// sqliteStore implements the Store interface on a single SQLite table
type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens the database file at path and configures the connection
func OpenSQLite(path string) (*sql.DB, error) {
	if path == "" {
		return nil, errors.New("sqlite path cannot be empty")
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// One writer on a single device
	db.SetMaxOpenConns(1)
	db.SetConnMaxIdleTime(time.Minute)

	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	return db, nil
}

// NewSQLite creates the store, creating its table when missing
func NewSQLite(cfg *SQLiteConfig) (*sqliteStore, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.DB == nil {
		return nil, errors.New("database cannot be nil")
	}

	if _, err := cfg.DB.Exec(createTableQuery); err != nil {
		return nil, fmt.Errorf("failed to create kv table: %w", err)
	}

	return &sqliteStore{db: cfg.DB}, nil
}

// Get reads a key from SQLite
func (s *sqliteStore) Get(ctx context.Context, input *GetInput) (*GetOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}
	if err := validateKey(input.Key); err != nil {
		return nil, err
	}

	var value []byte
	err := s.db.QueryRowContext(ctx, "SELECT value FROM kv_store WHERE key = ?", input.Key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get %s: %w", input.Key, err)
	}

	return &GetOutput{Value: value}, nil
}

// Put upserts a key inside a transaction
func (s *sqliteStore) Put(ctx context.Context, input *PutInput) error {
	if input == nil {
		return errors.New("input cannot be nil")
	}
	if err := validateKey(input.Key); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO kv_store (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, input.Key, input.Value, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to put %s: %w", input.Key, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit %s: %w", input.Key, err)
	}

	return nil
}

// Delete removes a key from SQLite
func (s *sqliteStore) Delete(ctx context.Context, input *DeleteInput) error {
	if input == nil {
		return errors.New("input cannot be nil")
	}
	if err := validateKey(input.Key); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, "DELETE FROM kv_store WHERE key = ?", input.Key); err != nil {
		return fmt.Errorf("failed to delete %s: %w", input.Key, err)
	}

	return nil
}
