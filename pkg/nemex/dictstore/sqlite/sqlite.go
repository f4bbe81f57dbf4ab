// Package sqlite is a SQLite-backed dictstore.Store, for entity
// dictionaries that must survive process restarts without repaying
// TSV-parse cost on every load.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/nemex-go/nemex/pkg/nemex/dictstore"
)

// Store implements dictstore.Store over a SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the SQLite database at path and
// initializes its schema.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite dictionary %s: %w", path, err)
	}

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func initSchema(ctx context.Context, db *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS entities (
	id TEXT PRIMARY KEY,
	text TEXT NOT NULL
);
`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("initializing dictionary schema: %w", err)
	}
	return nil
}

// Close implements dictstore.Store.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveEntries replaces the dictionary table's contents with entries.
func (s *Store) SaveEntries(ctx context.Context, entries []dictstore.Entry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM entities"); err != nil {
		return fmt.Errorf("clearing entities table: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO entities (id, text) VALUES (?, ?)")
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err := stmt.ExecContext(ctx, e.ID, e.Text); err != nil {
			return fmt.Errorf("inserting entity %s: %w", e.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// LoadEntries returns every entry in the dictionary table.
func (s *Store) LoadEntries(ctx context.Context) ([]dictstore.Entry, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, text FROM entities ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("querying entities: %w", err)
	}
	defer rows.Close()

	var entries []dictstore.Entry
	for rows.Next() {
		var e dictstore.Entry
		if err := rows.Scan(&e.ID, &e.Text); err != nil {
			return nil, fmt.Errorf("scanning entity row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating entity rows: %w", err)
	}
	return entries, nil
}
