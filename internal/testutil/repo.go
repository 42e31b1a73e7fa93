package testutil

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/roach88/clerk/internal/codec"
	"github.com/roach88/clerk/internal/records"
	"github.com/roach88/clerk/internal/store"
)

// DiscardLogger returns a logger that drops everything.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// NewRepo returns an initialized Repo over a flat-file store in a temp
// directory, using YAML records and SequentialIDs. The root directory is
// returned so tests can inspect the files.
func NewRepo(t *testing.T, opts ...records.Option) (*records.Repo, string) {
	t.Helper()
	root := t.TempDir()
	opts = append([]records.Option{records.WithLogger(DiscardLogger())}, opts...)

	r := records.New(store.NewFlatFile(root), codec.YAML{}, NewSequentialIDs(), opts...)
	if err := r.Init(t.Context()); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	return r, root
}

// NewSQLiteRepo returns an initialized Repo over a SQLite database in a
// temp directory, using JSON records and SequentialIDs.
func NewSQLiteRepo(t *testing.T, opts ...records.Option) *records.Repo {
	t.Helper()
	db, err := store.OpenSQLite(filepath.Join(t.TempDir(), "clerk.db"))
	if err != nil {
		t.Fatalf("OpenSQLite() failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	opts = append([]records.Option{records.WithLogger(DiscardLogger())}, opts...)
	r := records.New(db, codec.JSON{}, NewSequentialIDs(), opts...)
	if err := r.Init(t.Context()); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	return r
}
