package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/dshills/graphgen-go/node"
	_ "modernc.org/sqlite"
)

// SQLiteStore is a SQLite-backed Store.
//
// Definitions live in a single-file database, which suits local tooling:
// zero setup, durable across sessions, trivially copied or inspected. WAL
// mode keeps concurrent readers from blocking on writes.
//
// Use ":memory:" as the path for a throwaway database.
type SQLiteStore struct {
	db     *sql.DB
	mu     sync.Mutex
	closed bool
}

// NewSQLiteStore opens (creating if necessary) the database at path and
// migrates the definitions table.
//
// Example:
//
//	st, err := store.NewSQLiteStore("./nodes.db")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer st.Close()
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	// SQLite supports one writer at a time.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	ctx := context.Background()
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply %s: %w", pragma, err)
		}
	}

	st := &SQLiteStore{db: db}
	if err := st.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return st, nil
}

func (s *SQLiteStore) migrate(ctx context.Context) error {
	const schema = `
		CREATE TABLE IF NOT EXISTS node_definitions (
			name TEXT PRIMARY KEY,
			kind TEXT NOT NULL,
			data TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create node_definitions table: %w", err)
	}
	return nil
}

// Save upserts the definition under name.
func (s *SQLiteStore) Save(ctx context.Context, name string, def node.Definition) error {
	if err := s.open(); err != nil {
		return err
	}
	const q = `
		INSERT INTO node_definitions (name, kind, data, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(name) DO UPDATE SET
			kind = excluded.kind,
			data = excluded.data,
			updated_at = CURRENT_TIMESTAMP`
	if _, err := s.db.ExecContext(ctx, q, name, def.Kind, string(def.Data)); err != nil {
		return fmt.Errorf("save definition %q: %w", name, err)
	}
	return nil
}

// Load retrieves the definition saved under name.
func (s *SQLiteStore) Load(ctx context.Context, name string) (node.Definition, error) {
	if err := s.open(); err != nil {
		return node.Definition{}, err
	}
	const q = `SELECT kind, data FROM node_definitions WHERE name = ?`
	var kind, data string
	err := s.db.QueryRowContext(ctx, q, name).Scan(&kind, &data)
	if errors.Is(err, sql.ErrNoRows) {
		return node.Definition{}, ErrNotFound
	}
	if err != nil {
		return node.Definition{}, fmt.Errorf("load definition %q: %w", name, err)
	}
	return node.Definition{Kind: kind, Data: []byte(data)}, nil
}

// List returns all saved names in lexical order.
func (s *SQLiteStore) List(ctx context.Context) ([]string, error) {
	if err := s.open(); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM node_definitions ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list definitions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan definition name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list definitions: %w", err)
	}
	return names, nil
}

// Delete removes the definition saved under name.
func (s *SQLiteStore) Delete(ctx context.Context, name string) error {
	if err := s.open(); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM node_definitions WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("delete definition %q: %w", name, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete definition %q: %w", name, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Close releases the underlying database. Further calls fail.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

func (s *SQLiteStore) open() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errors.New("sqlite store is closed")
	}
	return nil
}
