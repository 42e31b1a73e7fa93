package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/roach88/clerk/internal/entity"
)

const tempPrefix = ".tmp-"

// FlatFile stores each record in its own file under Root.
type FlatFile struct {
	Root string
}

// NewFlatFile returns a FlatFile rooted at root. Nothing is created until
// Init is called.
func NewFlatFile(root string) *FlatFile {
	return &FlatFile{Root: root}
}

func (f *FlatFile) dir(kind entity.Kind) string {
	return filepath.Join(f.Root, string(kind))
}

func (f *FlatFile) path(kind entity.Kind, id uuid.UUID) string {
	return filepath.Join(f.dir(kind), id.String())
}

// Init creates the kind directory if it is missing.
func (f *FlatFile) Init(ctx context.Context, kind entity.Kind) error {
	if err := os.MkdirAll(f.dir(kind), 0o755); err != nil {
		return fmt.Errorf("init %s: %w", kind, err)
	}
	return nil
}

// Keys lists record files in the kind directory, sorted by name. Hidden
// files (including interrupted temporary writes) are ignored; any other
// file whose name is not a UUID is an error.
func (f *FlatFile) Keys(ctx context.Context, kind entity.Kind) ([]uuid.UUID, error) {
	entries, err := os.ReadDir(f.dir(kind))
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", kind, err)
	}

	ids := make([]uuid.UUID, 0, len(entries))
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		id, err := uuid.Parse(e.Name())
		if err != nil {
			return nil, fmt.Errorf("list %s: unexpected file %q: %w", kind, e.Name(), err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Read returns the contents of the record file.
func (f *FlatFile) Read(ctx context.Context, kind entity.Kind, id uuid.UUID) ([]byte, error) {
	data, err := os.ReadFile(f.path(kind, id))
	if err != nil {
		return nil, fmt.Errorf("read %s/%s: %w", kind, id, err)
	}
	return data, nil
}

// Write replaces the record file atomically via a temporary file in the
// same directory.
func (f *FlatFile) Write(ctx context.Context, kind entity.Kind, id uuid.UUID, data []byte) error {
	tmp, err := os.CreateTemp(f.dir(kind), tempPrefix+"*")
	if err != nil {
		return fmt.Errorf("write %s/%s: %w", kind, id, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s/%s: %w", kind, id, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write %s/%s: %w", kind, id, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write %s/%s: %w", kind, id, err)
	}
	if err := os.Rename(tmpName, f.path(kind, id)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write %s/%s: %w", kind, id, err)
	}
	return nil
}

// Remove deletes the record file.
func (f *FlatFile) Remove(ctx context.Context, kind entity.Kind, id uuid.UUID) error {
	if err := os.Remove(f.path(kind, id)); err != nil {
		return fmt.Errorf("remove %s/%s: %w", kind, id, err)
	}
	return nil
}

// Close is a no-op; FlatFile holds no open handles between calls.
func (f *FlatFile) Close() error {
	return nil
}

// IsNotExist reports whether err means a record or kind is absent.
func IsNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
