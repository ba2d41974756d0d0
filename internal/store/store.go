package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/roach88/airdb/internal/querysql"
)

// ErrMissingTable is returned by Open when the database lacks one of the
// airport tables.
var ErrMissingTable = errors.New("missing table")

// ErrNotFound is returned by updates whose key matches no row.
var ErrNotFound = errors.New("no such row")

// requiredTables lists the tables an airport database must contain,
// in foreign-key dependency order.
var requiredTables = []string{continentTable, countryTable, regionTable}

// Store is an open connection to an airport database.
type Store struct {
	db       *sql.DB
	path     string
	compiler *querysql.Compiler
}

// Open attaches to the existing SQLite database at path.
//
// The database is configured with:
//   - read-write mode without creation
//   - foreign key enforcement
//   - 5-second busy timeout for lock contention
//
// Open fails if the file is missing, is not a SQLite database, or lacks any
// of the continent, country and region tables. On failure nothing stays open.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("failed to open database: empty path")
	}

	db, err := sql.Open("sqlite3", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if err := verifySchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, path: path, compiler: querysql.NewCompiler()}, nil
}

// Close closes the database connection. Safe to call more than once.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Path returns the path the store was opened with.
func (s *Store) Path() string {
	return s.path
}

// DB returns the underlying sql.DB for direct queries.
// Use with caution - prefer using Store methods when available.
func (s *Store) DB() *sql.DB {
	return s.db
}

// dsn builds a SQLite URI that opens path read-write without creating it.
// Characters with a meaning in URIs are percent-encoded.
func dsn(path string) string {
	escaped := strings.NewReplacer("%", "%25", "?", "%3f", "#", "%23").Replace(path)
	return "file:" + escaped + "?mode=rw&_foreign_keys=on"
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}

// verifySchema checks that every airport table exists. It is also the first
// statement that reads the file, so a non-database file fails here.
func verifySchema(db *sql.DB) error {
	for _, table := range requiredTables {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?",
			table,
		).Scan(&name)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: %s", ErrMissingTable, table)
		}
		if err != nil {
			return fmt.Errorf("failed to read schema: %w", err)
		}
	}
	return nil
}

// verifyPragma checks that a pragma is set to the expected value.
// Used for testing.
func (s *Store) verifyPragma(name, expected string) error {
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
