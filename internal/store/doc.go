// Package store persists records as independently encoded blobs keyed by
// (kind, id).
//
// # Layout
//
// A Backend stores raw bytes. Two backends implement the same contract:
//
//   - FlatFile: one directory per kind under a root, one file per record
//     named by the record's canonical UUID string:
//
//     <root>/Locations/0191d8c0-0000-7000-8000-000000000001
//
//   - SQLite: a single records(kind, id, body) table in a WAL-mode
//     database, for stores that outgrow a directory tree.
//
// Collection[E] binds a Backend and a codec.Codec to one record type and
// provides the typed create/retrieve/update/remove operations used by the
// records package.
//
// # Concurrency
//
// Stores assume a single writer. FlatFile writes go through a temporary file
// and a rename so a reader never observes a half-written record, but two
// processes updating the same record race and the last rename wins.
//
// # Errors
//
// Reading or removing an absent record returns an error wrapping
// fs.ErrNotExist on every backend. Listing a kind that was never
// initialized does the same.
package store
