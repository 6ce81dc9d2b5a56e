// Package sqlite provides SQLite-based storage implementations for
// relgraph services.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fwojciec/relgraph"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// DB represents a SQLite database connection.
type DB struct {
	db   *sql.DB
	path string
}

// NewDB creates a new DB instance with the given path.
// Use ":memory:" for an in-memory database.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// Open opens the database connection and creates the schema if needed.
func (db *DB) Open() error {
	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit to one connection.
	conn.SetMaxOpenConns(1)

	// Verify connection
	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Set busy timeout to wait 5 seconds before failing on lock contention.
	// This prevents immediate "database is locked" errors.
	if _, err := conn.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		conn.Close()
		return fmt.Errorf("failed to set busy timeout: %w", err)
	}

	// Enable WAL mode for file-based databases for better write performance.
	// Note: WAL mode is not supported for in-memory databases.
	if db.path != ":memory:" {
		if _, err := conn.Exec("PRAGMA journal_mode = WAL"); err != nil {
			conn.Close()
			return fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	// Enable foreign key constraints
	if _, err := conn.Exec("PRAGMA foreign_keys = ON"); err != nil {
		conn.Close()
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	db.db = conn

	// Create schema
	if err := db.createSchema(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.db != nil {
		return db.db.Close()
	}
	return nil
}

// QueryRowContext executes a query that returns a single row.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.db.QueryRowContext(ctx, query, args...)
}

// QueryContext executes a query that returns rows.
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

// ExecContext executes a statement that doesn't return rows.
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.db.ExecContext(ctx, query, args...)
}

// BeginTx starts a transaction. Bulk operations run inside one so a
// failure leaves no partial mutation visible to subsequent reads.
func (db *DB) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return db.db.BeginTx(ctx, nil)
}

// ClearAll removes every node, edge, activity, company and harvest
// checkpoint in a single transaction. A failure leaves the store intact.
func (db *DB) ClearAll(ctx context.Context) error {
	tx, err := db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmts := []string{
		"DELETE FROM edges",
		"DELETE FROM activities",
		"DELETE FROM companies",
		"DELETE FROM nodes",
		"DELETE FROM settings WHERE key LIKE 'progress:%'",
	}
	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to clear store: %w", err)
		}
	}
	return tx.Commit()
}

// Stats returns database statistics.
func (db *DB) Stats() sql.DBStats {
	return db.db.Stats()
}

// Usage reports storage occupancy: total bytes on disk plus per-table
// row counts.
func (db *DB) Usage(ctx context.Context) (*relgraph.StorageUsage, error) {
	var usage relgraph.StorageUsage

	var pageCount, pageSize int64
	if err := db.db.QueryRowContext(ctx, "PRAGMA page_count").Scan(&pageCount); err != nil {
		return nil, fmt.Errorf("failed to read page count: %w", err)
	}
	if err := db.db.QueryRowContext(ctx, "PRAGMA page_size").Scan(&pageSize); err != nil {
		return nil, fmt.Errorf("failed to read page size: %w", err)
	}
	usage.Bytes = pageCount * pageSize

	counts := []struct {
		table string
		dst   *int
	}{
		{"nodes", &usage.Nodes},
		{"edges", &usage.Edges},
		{"activities", &usage.Activities},
		{"companies", &usage.Companies},
	}
	for _, c := range counts {
		if err := db.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+c.table).Scan(c.dst); err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", c.table, err)
		}
	}

	return &usage, nil
}

// createSchema creates the database tables if they don't exist.
func (db *DB) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS nodes (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			headline TEXT NOT NULL DEFAULT '',
			company TEXT NOT NULL DEFAULT '',
			role TEXT NOT NULL DEFAULT '',
			location TEXT NOT NULL DEFAULT '',
			profile_url TEXT NOT NULL DEFAULT '',
			skills TEXT NOT NULL DEFAULT '[]',
			years_experience INTEGER NOT NULL DEFAULT 0,
			degree INTEGER NOT NULL,
			match_score REAL NOT NULL DEFAULT 0,
			activity_score REAL,
			status TEXT NOT NULL DEFAULT 'none',
			scraped_at TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_nodes_degree ON nodes(degree);
		CREATE INDEX IF NOT EXISTS idx_nodes_match_score ON nodes(match_score);

		CREATE TABLE IF NOT EXISTS edges (
			from_id TEXT NOT NULL,
			to_id TEXT NOT NULL,
			weight REAL NOT NULL,
			kind TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL,
			PRIMARY KEY (from_id, to_id)
		);

		CREATE INDEX IF NOT EXISTS idx_edges_from ON edges(from_id);
		CREATE INDEX IF NOT EXISTS idx_edges_to ON edges(to_id);

		CREATE TABLE IF NOT EXISTS activities (
			id TEXT PRIMARY KEY,
			actor_id TEXT NOT NULL,
			target_id TEXT NOT NULL,
			type TEXT NOT NULL,
			content TEXT NOT NULL DEFAULT '',
			post_id TEXT NOT NULL DEFAULT '',
			occurred_at TEXT NOT NULL,
			scraped_at TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_activities_actor ON activities(actor_id);
		CREATE INDEX IF NOT EXISTS idx_activities_target ON activities(target_id);
		CREATE INDEX IF NOT EXISTS idx_activities_type ON activities(type);
		CREATE INDEX IF NOT EXISTS idx_activities_occurred_at ON activities(occurred_at);

		CREATE TABLE IF NOT EXISTS companies (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			employees TEXT NOT NULL DEFAULT '[]',
			scraped_at TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`

	_, err := db.db.Exec(schema)
	return err
}
