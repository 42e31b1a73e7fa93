package records

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/roach88/clerk/internal/entity"
	"github.com/roach88/clerk/internal/store"
)

// Problem is a record whose references do not resolve.
type Problem struct {
	Kind entity.Kind
	ID   uuid.UUID
	Err  error
}

// Report summarizes a Verify run.
type Report struct {
	// Checked counts the records examined per kind.
	Checked map[entity.Kind]int

	// Problems lists every record that failed to materialize, ordered by
	// kind then id.
	Problems []Problem
}

// OK reports whether no problems were found.
func (rep Report) OK() bool {
	return len(rep.Problems) == 0
}

// Verify materializes the view of every stored record and reports each
// one with a dangling reference or a cyclic location hierarchy.
//
// Kinds are checked concurrently; each kind uses its own resolver and
// nothing is written. Data integrity errors are collected; any other error
// (unreadable or corrupt record) aborts the run.
func (r *Repo) Verify(ctx context.Context) (Report, error) {
	report := Report{Checked: make(map[entity.Kind]int)}
	var mu sync.Mutex

	record := func(kind entity.Kind, checked int, problems []Problem) {
		mu.Lock()
		defer mu.Unlock()
		report.Checked[kind] = checked
		report.Problems = append(report.Problems, problems...)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return verifyKind(gctx, r.Locations, r.resolver(gctx).locationView, record)
	})
	g.Go(func() error {
		return verifyKind(gctx, r.People, r.resolver(gctx).personView, record)
	})
	g.Go(func() error {
		return verifyKind(gctx, r.Organizations, r.resolver(gctx).organizationView, record)
	})
	g.Go(func() error {
		return verifyKind(gctx, r.Employees, r.resolver(gctx).employeeView, record)
	})
	g.Go(func() error {
		return verifyKind(gctx, r.Jobs, r.resolver(gctx).jobView, record)
	})

	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	slices.SortFunc(report.Problems, func(a, b Problem) int {
		if c := cmp.Compare(a.Kind, b.Kind); c != 0 {
			return c
		}
		return cmp.Compare(a.ID.String(), b.ID.String())
	})

	r.logger.Debug("verify finished", "problems", len(report.Problems))
	return report, nil
}

func verifyKind[E entity.Record, V any](
	ctx context.Context,
	c *store.Collection[E],
	view func(E) (V, error),
	record func(entity.Kind, int, []Problem),
) error {
	var (
		checked  int
		problems []Problem
	)

	for rec, err := range c.All(ctx) {
		if err != nil {
			return err
		}
		checked++

		if _, err := view(rec); err != nil {
			if !IsDataIntegrity(err) {
				return err
			}
			problems = append(problems, Problem{Kind: c.Kind(), ID: rec.RecordID(), Err: err})
		}
	}

	record(c.Kind(), checked, problems)
	return nil
}
