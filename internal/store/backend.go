package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/roach88/clerk/internal/entity"
)

// Backend stores encoded records.
//
// Implementations: FlatFile, SQLite.
type Backend interface {
	// Init prepares storage for kind. It is idempotent and must not fail
	// because records of kind already exist.
	Init(ctx context.Context, kind entity.Kind) error

	// Keys lists the ids stored for kind in a stable order.
	Keys(ctx context.Context, kind entity.Kind) ([]uuid.UUID, error)

	// Read returns the encoded record. An absent record is fs.ErrNotExist.
	Read(ctx context.Context, kind entity.Kind, id uuid.UUID) ([]byte, error)

	// Write creates or overwrites the encoded record.
	Write(ctx context.Context, kind entity.Kind, id uuid.UUID, data []byte) error

	// Remove deletes the record. An absent record is fs.ErrNotExist.
	Remove(ctx context.Context, kind entity.Kind, id uuid.UUID) error

	Close() error
}
