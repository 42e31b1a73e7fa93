package records

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/roach88/clerk/internal/entity"
	"github.com/roach88/clerk/internal/match"
	"github.com/roach88/clerk/internal/query"
)

func innerLocationsOf(id uuid.UUID) query.Location {
	return query.Location{Outer: query.Some(query.Location{ID: match.EqualTo(id)})}
}

func organizationsAt(id uuid.UUID) query.Organization {
	return query.Organization{Location: query.Location{ID: match.EqualTo(id)}}
}

func jobsWithTimesheetsBy(id uuid.UUID) query.Job {
	return query.Job{Timesheets: query.Timesheet{Employee: query.Employee{ID: match.HasAny(id)}}}
}

// DeleteLocation removes the location. With cascade, every location inside
// it is removed too, at any depth, along with every organization at any of
// the removed locations.
//
// Without cascade the dependents are left in place and will fail view
// materialization with a data integrity error, unless the Repo was built
// WithRestrict, in which case the delete is refused.
func (r *Repo) DeleteLocation(ctx context.Context, id uuid.UUID, cascade bool) error {
	if !cascade {
		if r.restrict {
			if err := r.restrictLocation(ctx, id); err != nil {
				return err
			}
		}
		if err := r.Locations.Remove(ctx, id); err != nil {
			return err
		}
		r.logger.Info("record deleted", "kind", entity.KindLocation, "id", id, "cascade", false)
		return nil
	}

	// Worklist rather than recursion so a malformed cyclic hierarchy
	// cannot loop forever.
	pending := []uuid.UUID{id}
	visited := map[uuid.UUID]bool{id: true}

	for len(pending) > 0 {
		current := pending[0]
		pending = pending[1:]

		if err := r.Locations.Remove(ctx, current); err != nil {
			return err
		}
		r.logger.Info("record deleted", "kind", entity.KindLocation, "id", current, "cascade", true)

		inner, err := r.RetrieveLocations(ctx, innerLocationsOf(current))
		if err != nil {
			return err
		}
		for _, l := range inner {
			if !visited[l.ID] {
				visited[l.ID] = true
				pending = append(pending, l.ID)
			}
		}

		orgs, err := r.RetrieveOrganizations(ctx, organizationsAt(current))
		if err != nil {
			return err
		}
		for _, o := range orgs {
			if err := r.Organizations.Remove(ctx, o.ID); err != nil {
				return err
			}
			r.logger.Debug("cascaded delete", "kind", entity.KindOrganization, "id", o.ID, "location", current)
		}
	}

	return nil
}

func (r *Repo) restrictLocation(ctx context.Context, id uuid.UUID) error {
	inner, err := r.RetrieveLocations(ctx, innerLocationsOf(id))
	if err != nil {
		return err
	}
	if len(inner) > 0 {
		return NewDeleteRestrictedError(entity.KindLocation, id, len(inner), entity.KindLocation)
	}

	orgs, err := r.RetrieveOrganizations(ctx, organizationsAt(id))
	if err != nil {
		return err
	}
	if len(orgs) > 0 {
		return NewDeleteRestrictedError(entity.KindLocation, id, len(orgs), entity.KindOrganization)
	}
	return nil
}

// DeleteEmployee removes the employee. With cascade, every timesheet the
// employee recorded is scrubbed from its job; the jobs themselves remain.
//
// Setting the employee's status to not_employed keeps their history and is
// usually what is wanted instead.
func (r *Repo) DeleteEmployee(ctx context.Context, id uuid.UUID, cascade bool) error {
	if !cascade && r.restrict {
		jobs, err := r.RetrieveJobs(ctx, jobsWithTimesheetsBy(id))
		if err != nil {
			return err
		}
		if len(jobs) > 0 {
			return NewDeleteRestrictedError(entity.KindEmployee, id, len(jobs), entity.KindJob)
		}
	}

	if err := r.Employees.Remove(ctx, id); err != nil {
		return err
	}
	r.logger.Info("record deleted", "kind", entity.KindEmployee, "id", id, "cascade", cascade)

	if !cascade {
		return nil
	}

	jobs, err := r.RetrieveJobs(ctx, jobsWithTimesheetsBy(id))
	if err != nil {
		return err
	}
	for _, j := range jobs {
		before := len(j.Timesheets)
		j.Timesheets = slices.DeleteFunc(j.Timesheets, func(t entity.Timesheet) bool {
			return t.EmployeeID == id
		})
		if err := r.Jobs.Update(ctx, j); err != nil {
			return err
		}
		r.logger.Debug("cascaded timesheet scrub", "kind", entity.KindJob, "id", j.ID,
			"employee", id, "removed", before-len(j.Timesheets))
	}
	return nil
}

// DeleteOrganization removes the organization. Nothing else is removed;
// employees and jobs referencing it are left for integrity checks to find.
func (r *Repo) DeleteOrganization(ctx context.Context, id uuid.UUID, cascade bool) error {
	return r.deleteLeaf(ctx, entity.KindOrganization, id, cascade, r.Organizations.Remove)
}

// DeletePerson removes the person. Nothing else is removed.
func (r *Repo) DeletePerson(ctx context.Context, id uuid.UUID, cascade bool) error {
	return r.deleteLeaf(ctx, entity.KindPerson, id, cascade, r.People.Remove)
}

// DeleteJob removes the job together with its timesheets.
func (r *Repo) DeleteJob(ctx context.Context, id uuid.UUID, cascade bool) error {
	return r.deleteLeaf(ctx, entity.KindJob, id, cascade, r.Jobs.Remove)
}

func (r *Repo) deleteLeaf(
	ctx context.Context,
	kind entity.Kind,
	id uuid.UUID,
	cascade bool,
	remove func(context.Context, uuid.UUID) error,
) error {
	if err := remove(ctx, id); err != nil {
		return err
	}
	r.logger.Info("record deleted", "kind", kind, "id", id, "cascade", cascade)
	return nil
}

// Delete dispatches to the delete operation for kind.
func (r *Repo) Delete(ctx context.Context, kind entity.Kind, id uuid.UUID, cascade bool) error {
	switch kind {
	case entity.KindEmployee:
		return r.DeleteEmployee(ctx, id, cascade)
	case entity.KindJob:
		return r.DeleteJob(ctx, id, cascade)
	case entity.KindLocation:
		return r.DeleteLocation(ctx, id, cascade)
	case entity.KindOrganization:
		return r.DeleteOrganization(ctx, id, cascade)
	case entity.KindPerson:
		return r.DeletePerson(ctx, id, cascade)
	}
	return fmt.Errorf("delete: unknown record kind %q", kind)
}
