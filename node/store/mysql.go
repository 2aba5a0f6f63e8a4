package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/dshills/graphgen-go/node"
)

// MySQLStore is a MySQL-backed Store for shared definition catalogs: many
// editors or build machines reading and writing one set of node kinds.
type MySQLStore struct {
	db *sql.DB
}

// NewMySQLStore connects using a go-sql-driver DSN, e.g.
// "user:pass@tcp(localhost:3306)/graphgen?parseTime=true", verifies the
// connection and migrates the definitions table.
func NewMySQLStore(dsn string) (*MySQLStore, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("open mysql connection: %w", err)
	}

	db.SetMaxOpenConns(16)
	db.SetMaxIdleConns(4)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping mysql: %w", err)
	}

	st := &MySQLStore{db: db}
	if err := st.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return st, nil
}

func (s *MySQLStore) migrate(ctx context.Context) error {
	const schema = `
		CREATE TABLE IF NOT EXISTS node_definitions (
			name VARCHAR(255) PRIMARY KEY,
			kind VARCHAR(64) NOT NULL,
			data MEDIUMTEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
				ON UPDATE CURRENT_TIMESTAMP
		)`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create node_definitions table: %w", err)
	}
	return nil
}

// Save upserts the definition under name.
func (s *MySQLStore) Save(ctx context.Context, name string, def node.Definition) error {
	const q = `
		INSERT INTO node_definitions (name, kind, data)
		VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE kind = VALUES(kind), data = VALUES(data)`
	if _, err := s.db.ExecContext(ctx, q, name, def.Kind, string(def.Data)); err != nil {
		return fmt.Errorf("save definition %q: %w", name, err)
	}
	return nil
}

// Load retrieves the definition saved under name.
func (s *MySQLStore) Load(ctx context.Context, name string) (node.Definition, error) {
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
func (s *MySQLStore) List(ctx context.Context) ([]string, error) {
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
func (s *MySQLStore) Delete(ctx context.Context, name string) error {
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

// Close releases the connection pool.
func (s *MySQLStore) Close() error {
	return s.db.Close()
}
