// Package records implements the operations over the stored record graph:
// creating and retrieving records, materializing views by resolving
// references, walking location hierarchies, cascading deletes and
// verifying referential integrity.
//
// Every operation is synchronous and assumes a single writer. A delete is
// not atomic: a failure part way through a cascade leaves the records
// already removed gone, and re-running the delete finishes the job.
package records

import (
	"context"
	"log/slog"

	"github.com/roach88/clerk/internal/codec"
	"github.com/roach88/clerk/internal/entity"
	"github.com/roach88/clerk/internal/store"
)

// Repo bundles one collection per record kind over a shared backend.
type Repo struct {
	Employees     *store.Collection[entity.Employee]
	Jobs          *store.Collection[entity.Job]
	Locations     *store.Collection[entity.Location]
	Organizations *store.Collection[entity.Organization]
	People        *store.Collection[entity.Person]

	backend  store.Backend
	logger   *slog.Logger
	restrict bool
}

// Option configures a Repo.
type Option func(*Repo)

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(r *Repo) {
		r.logger = l
	}
}

// WithRestrict makes non-cascading deletes fail with a delete restricted
// error when dependents exist, instead of leaving them orphaned.
func WithRestrict(restrict bool) Option {
	return func(r *Repo) {
		r.restrict = restrict
	}
}

// New creates a Repo storing records in backend, encoded with c. New ids
// are drawn from ids.
func New(backend store.Backend, c codec.Codec, ids entity.IDGenerator, opts ...Option) *Repo {
	r := &Repo{
		Employees:     store.NewCollection[entity.Employee](backend, c, ids),
		Jobs:          store.NewCollection[entity.Job](backend, c, ids),
		Locations:     store.NewCollection[entity.Location](backend, c, ids),
		Organizations: store.NewCollection[entity.Organization](backend, c, ids),
		People:        store.NewCollection[entity.Person](backend, c, ids),
		backend:       backend,
		logger:        slog.Default(),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Init prepares storage for every record kind. Safe to call on an existing
// store.
func (r *Repo) Init(ctx context.Context) error {
	inits := []func(context.Context) error{
		r.Employees.Init,
		r.Jobs.Init,
		r.Locations.Init,
		r.Organizations.Init,
		r.People.Init,
	}
	for _, init := range inits {
		if err := init(ctx); err != nil {
			return err
		}
	}
	r.logger.Debug("store initialized")
	return nil
}

// Close releases the backend.
func (r *Repo) Close() error {
	return r.backend.Close()
}
