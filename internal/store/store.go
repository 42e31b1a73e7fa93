package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/roach88/clerk/internal/entity"
)

//go:embed schema.sql
var schemaSQL string

// Schema version tracking:
// 1 - Initial schema (records and kinds tables)
const currentSchemaVersion = 1

// SQLite stores records in a single SQLite database.
// Uses WAL mode so readers are not blocked while a record is written.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite creates or opens a SQLite database at the given path.
// Applies required pragmas and migrations automatically.
//
// The database is configured with:
//   - WAL mode for concurrent reads during writes
//   - NORMAL synchronous mode (balance durability/performance)
//   - 5-second busy timeout for lock contention
//
// This function is idempotent - safe to call multiple times.
func OpenSQLite(path string) (*SQLite, error) {
	// Open database (creates file if doesn't exist)
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Verify connection works
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if err := applySchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Init registers kind. Records already stored under kind are untouched.
func (s *SQLite) Init(ctx context.Context, kind entity.Kind) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO kinds (kind) VALUES (?) ON CONFLICT DO NOTHING`, string(kind))
	if err != nil {
		return fmt.Errorf("init %s: %w", kind, err)
	}
	return nil
}

// Keys returns the ids stored under kind ordered by their string form, the
// same order a flat-file directory listing produces.
func (s *SQLite) Keys(ctx context.Context, kind entity.Kind) ([]uuid.UUID, error) {
	var registered int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM kinds WHERE kind = ?`, string(kind)).Scan(&registered)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", kind, err)
	}
	if registered == 0 {
		return nil, fmt.Errorf("list %s: %w", kind, fs.ErrNotExist)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id FROM records
		WHERE kind = ?
		ORDER BY id COLLATE BINARY ASC
	`, string(kind))
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", kind, err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("list %s: %w", kind, err)
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("list %s: bad id %q: %w", kind, raw, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list %s: %w", kind, err)
	}
	return ids, nil
}

// Read returns the body stored for (kind, id).
func (s *SQLite) Read(ctx context.Context, kind entity.Kind, id uuid.UUID) ([]byte, error) {
	var body []byte
	err := s.db.QueryRowContext(ctx, `
		SELECT body FROM records WHERE kind = ? AND id = ?
	`, string(kind), id.String()).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("read %s/%s: %w", kind, id, fs.ErrNotExist)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s/%s: %w", kind, id, err)
	}
	return body, nil
}

// Write upserts the record.
func (s *SQLite) Write(ctx context.Context, kind entity.Kind, id uuid.UUID, data []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO records (kind, id, body)
		VALUES (?, ?, ?)
		ON CONFLICT(kind, id) DO UPDATE SET body = excluded.body
	`, string(kind), id.String(), data)
	if err != nil {
		return fmt.Errorf("write %s/%s: %w", kind, id, err)
	}
	return nil
}

// Remove deletes the row for (kind, id).
func (s *SQLite) Remove(ctx context.Context, kind entity.Kind, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM records WHERE kind = ? AND id = ?
	`, string(kind), id.String())
	if err != nil {
		return fmt.Errorf("remove %s/%s: %w", kind, id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("remove %s/%s: %w", kind, id, err)
	}
	if n == 0 {
		return fmt.Errorf("remove %s/%s: %w", kind, id, fs.ErrNotExist)
	}
	return nil
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}

// applySchema creates tables if they don't exist and runs migrations.
// This function is idempotent.
func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	if err := runMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// runMigrations applies incremental schema migrations based on user_version.
// A database written by a newer clerk is refused rather than downgraded.
func runMigrations(db *sql.DB) error {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("get user_version: %w", err)
	}

	if version > currentSchemaVersion {
		return fmt.Errorf("schema version %d is newer than supported version %d", version, currentSchemaVersion)
	}

	// Migrations from version N to N+1 go here, in order.

	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
		return fmt.Errorf("set user_version: %w", err)
	}

	return nil
}

// verifyPragma checks that a pragma is set to the expected value.
// Used for testing.
func (s *SQLite) verifyPragma(name, expected string) error {
	var value string
	query := fmt.Sprintf("PRAGMA %s", name)
	if err := s.db.QueryRow(query).Scan(&value); err != nil {
		return fmt.Errorf("failed to query %s: %w", name, err)
	}
	if value != expected {
		return fmt.Errorf("%s = %q, expected %q", name, value, expected)
	}
	return nil
}
