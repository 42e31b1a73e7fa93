package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"iter"

	"github.com/google/uuid"

	"github.com/roach88/clerk/internal/codec"
	"github.com/roach88/clerk/internal/entity"
)

// maxCreateAttempts bounds id regeneration when a fresh id collides with a
// stored record.
const maxCreateAttempts = 8

// Collection is the typed view of one record kind in a Backend.
type Collection[E entity.Record] struct {
	backend Backend
	codec   codec.Codec
	ids     entity.IDGenerator
}

// NewCollection binds record type E to backend, encoding with c and
// drawing new ids from ids.
func NewCollection[E entity.Record](backend Backend, c codec.Codec, ids entity.IDGenerator) *Collection[E] {
	return &Collection[E]{backend: backend, codec: c, ids: ids}
}

// Kind returns the kind of E.
func (c *Collection[E]) Kind() entity.Kind {
	var zero E
	return zero.Kind()
}

// Init prepares the backend for E.
func (c *Collection[E]) Init(ctx context.Context) error {
	return c.backend.Init(ctx, c.Kind())
}

// Create draws a fresh id, checks it is not already stored, builds the
// record with it and writes it.
func (c *Collection[E]) Create(ctx context.Context, build func(id uuid.UUID) E) (E, error) {
	var zero E
	kind := c.Kind()

	for attempt := 0; attempt < maxCreateAttempts; attempt++ {
		id := c.ids.Generate()

		_, err := c.backend.Read(ctx, kind, id)
		if err == nil {
			continue
		}
		if !IsNotExist(err) {
			return zero, fmt.Errorf("create %s: %w", kind, err)
		}

		record := build(id)
		if record.RecordID() != id {
			return zero, fmt.Errorf("create %s: builder returned id %s, want %s", kind, record.RecordID(), id)
		}
		if err := c.Update(ctx, record); err != nil {
			return zero, fmt.Errorf("create %s: %w", kind, err)
		}
		return record, nil
	}

	return zero, fmt.Errorf("create %s: no unused id after %d attempts", kind, maxCreateAttempts)
}

// All lazily decodes every stored record. Iteration stops at the first
// error, which is yielded with a zero record; a corrupt record is never
// skipped.
func (c *Collection[E]) All(ctx context.Context) iter.Seq2[E, error] {
	return func(yield func(E, error) bool) {
		var zero E
		kind := c.Kind()

		ids, err := c.backend.Keys(ctx, kind)
		if err != nil {
			yield(zero, err)
			return
		}

		for _, id := range ids {
			if err := ctx.Err(); err != nil {
				yield(zero, err)
				return
			}

			record, err := c.decode(ctx, kind, id)
			if err != nil {
				yield(zero, err)
				return
			}
			if !yield(record, nil) {
				return
			}
		}
	}
}

func (c *Collection[E]) decode(ctx context.Context, kind entity.Kind, id uuid.UUID) (E, error) {
	var record E

	data, err := c.backend.Read(ctx, kind, id)
	if err != nil {
		return record, err
	}
	if err := c.codec.Unmarshal(data, &record); err != nil {
		return record, fmt.Errorf("decode %s/%s: %w", kind, id, err)
	}
	if record.RecordID() != id {
		return record, fmt.Errorf("decode %s/%s: record carries id %s", kind, id, record.RecordID())
	}
	return record, nil
}

// Update overwrites the stored record with the same id.
func (c *Collection[E]) Update(ctx context.Context, record E) error {
	kind := c.Kind()
	data, err := c.codec.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode %s/%s: %w", kind, record.RecordID(), err)
	}
	return c.backend.Write(ctx, kind, record.RecordID(), data)
}

// Remove deletes the record. Removing an absent record succeeds.
func (c *Collection[E]) Remove(ctx context.Context, id uuid.UUID) error {
	err := c.backend.Remove(ctx, c.Kind(), id)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
