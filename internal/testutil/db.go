package testutil

import (
	"database/sql"
	_ "embed"
	"fmt"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

// SchemaSQL is the DDL of the continent, country and region tables.
//
//go:embed schema.sql
var SchemaSQL string

// CreateAirportDB creates (or completes) a SQLite database at path holding
// the airport schema.
func CreateAirportDB(path string) error {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer db.Close()

	if _, err := db.Exec(SchemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// NewAirportDB creates an empty airport database in a per-test temp
// directory and returns its path.
func NewAirportDB(t testing.TB) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "airport.db")
	if err := CreateAirportDB(path); err != nil {
		t.Fatalf("CreateAirportDB() failed: %v", err)
	}
	return path
}

// Exec runs statements directly against the database at path, bypassing
// the engine. Used to arrange fixtures and to inspect raw rows.
func Exec(t testing.TB, path, stmt string, args ...any) {
	t.Helper()
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer db.Close()

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("enable foreign keys: %v", err)
	}
	if _, err := db.Exec(stmt, args...); err != nil {
		t.Fatalf("exec %q: %v", stmt, err)
	}
}

// Count returns the number of rows in table.
func Count(t testing.TB, path, table string) int {
	t.Helper()
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer db.Close()

	var n int
	// table names come from test code only
	if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}
