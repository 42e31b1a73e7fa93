package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/roach88/clerk/internal/entity"
)

// createTestSQLite opens a fresh SQLite backend in a temp directory.
func createTestSQLite(t *testing.T) *SQLite {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// backends returns one initialized instance of every Backend implementation.
func backends(t *testing.T) map[string]Backend {
	t.Helper()
	all := map[string]Backend{
		"flatfile": NewFlatFile(t.TempDir()),
		"sqlite":   createTestSQLite(t),
	}
	for name, b := range all {
		for _, kind := range entity.Kinds {
			if err := b.Init(context.Background(), kind); err != nil {
				t.Fatalf("%s: Init(%s) failed: %v", name, kind, err)
			}
		}
	}
	return all
}

func getTableColumns(t *testing.T, s *SQLite, table string) []string {
	t.Helper()
	rows, err := s.db.Query("SELECT name FROM pragma_table_info(?)", table)
	if err != nil {
		t.Fatalf("table_info(%s) failed: %v", table, err)
	}
	defer rows.Close()

	var columns []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			t.Fatalf("scan failed: %v", err)
		}
		columns = append(columns, name)
	}
	return columns
}

func contains(slice []string, s string) bool {
	for _, v := range slice {
		if v == s {
			return true
		}
	}
	return false
}
