package records

import (
	"context"

	"github.com/google/uuid"

	"github.com/roach88/clerk/internal/entity"
	"github.com/roach88/clerk/internal/match"
	"github.com/roach88/clerk/internal/query"
	"github.com/roach88/clerk/internal/store"
)

// retrieve collects every record of c accepted by keep.
func retrieve[E entity.Record](ctx context.Context, c *store.Collection[E], keep func(E) bool) ([]E, error) {
	var out []E
	for record, err := range c.All(ctx) {
		if err != nil {
			return nil, err
		}
		if keep(record) {
			out = append(out, record)
		}
	}
	return out, nil
}

// retrieveViews materializes every record of c and collects the views
// accepted by keep. The first data integrity error aborts the call.
func retrieveViews[E entity.Record, V any](
	ctx context.Context,
	c *store.Collection[E],
	view func(E) (V, error),
	keep func(V) bool,
) ([]V, error) {
	var out []V
	for record, err := range c.All(ctx) {
		if err != nil {
			return nil, err
		}
		v, err := view(record)
		if err != nil {
			return nil, err
		}
		if keep(v) {
			out = append(out, v)
		}
	}
	return out, nil
}

func one[E any](kind entity.Kind, found []E, err error) (E, error) {
	var zero E
	if err != nil {
		return zero, err
	}
	if len(found) == 0 {
		return zero, NewNoDataError(kind)
	}
	return found[0], nil
}

// RetrieveLocations returns the stored locations matching q.
func (r *Repo) RetrieveLocations(ctx context.Context, q query.Location) ([]entity.Location, error) {
	return retrieve(ctx, r.Locations, q.Matches)
}

// RetrievePeople returns the stored people matching q.
func (r *Repo) RetrievePeople(ctx context.Context, q query.Person) ([]entity.Person, error) {
	return retrieve(ctx, r.People, q.Matches)
}

// RetrieveOrganizations returns the stored organizations matching q.
// Nested location queries only consult the location id.
func (r *Repo) RetrieveOrganizations(ctx context.Context, q query.Organization) ([]entity.Organization, error) {
	return retrieve(ctx, r.Organizations, q.Matches)
}

// RetrieveEmployees returns the stored employees matching q.
func (r *Repo) RetrieveEmployees(ctx context.Context, q query.Employee) ([]entity.Employee, error) {
	return retrieve(ctx, r.Employees, q.Matches)
}

// RetrieveJobs returns the stored jobs matching q. Timesheet fields are
// matched with set semantics.
func (r *Repo) RetrieveJobs(ctx context.Context, q query.Job) ([]entity.Job, error) {
	return retrieve(ctx, r.Jobs, q.Matches)
}

// RetrieveLocationViews materializes every location and returns the views
// matching q.
func (r *Repo) RetrieveLocationViews(ctx context.Context, q query.Location) ([]entity.LocationView, error) {
	res := r.resolver(ctx)
	return retrieveViews(ctx, r.Locations, res.locationView, q.MatchesView)
}

// RetrievePersonViews materializes every person and returns the views
// matching q. A dangling address aborts the call.
func (r *Repo) RetrievePersonViews(ctx context.Context, q query.Person) ([]entity.PersonView, error) {
	res := r.resolver(ctx)
	return retrieveViews(ctx, r.People, res.personView, q.MatchesView)
}

// RetrieveOrganizationViews materializes every organization and returns
// the views matching q.
func (r *Repo) RetrieveOrganizationViews(ctx context.Context, q query.Organization) ([]entity.OrganizationView, error) {
	res := r.resolver(ctx)
	return retrieveViews(ctx, r.Organizations, res.organizationView, q.MatchesView)
}

// RetrieveEmployeeViews materializes every employee and returns the views
// matching q.
func (r *Repo) RetrieveEmployeeViews(ctx context.Context, q query.Employee) ([]entity.EmployeeView, error) {
	res := r.resolver(ctx)
	return retrieveViews(ctx, r.Employees, res.employeeView, q.MatchesView)
}

// RetrieveJobViews materializes every job, including its timesheets'
// employees, and returns the views matching q.
func (r *Repo) RetrieveJobViews(ctx context.Context, q query.Job) ([]entity.JobView, error) {
	res := r.resolver(ctx)
	return retrieveViews(ctx, r.Jobs, res.jobView, q.MatchesView)
}

// RetrieveOneLocation returns the first location matching q, or a no data
// error.
func (r *Repo) RetrieveOneLocation(ctx context.Context, q query.Location) (entity.Location, error) {
	found, err := r.RetrieveLocations(ctx, q)
	return one(entity.KindLocation, found, err)
}

// RetrieveOnePerson returns the first person matching q, or a no data
// error.
func (r *Repo) RetrieveOnePerson(ctx context.Context, q query.Person) (entity.Person, error) {
	found, err := r.RetrievePeople(ctx, q)
	return one(entity.KindPerson, found, err)
}

// RetrieveOneOrganization returns the first organization matching q.
func (r *Repo) RetrieveOneOrganization(ctx context.Context, q query.Organization) (entity.Organization, error) {
	found, err := r.RetrieveOrganizations(ctx, q)
	return one(entity.KindOrganization, found, err)
}

// RetrieveOneEmployee returns the first employee matching q.
func (r *Repo) RetrieveOneEmployee(ctx context.Context, q query.Employee) (entity.Employee, error) {
	found, err := r.RetrieveEmployees(ctx, q)
	return one(entity.KindEmployee, found, err)
}

// RetrieveOneJob returns the first job matching q.
func (r *Repo) RetrieveOneJob(ctx context.Context, q query.Job) (entity.Job, error) {
	found, err := r.RetrieveJobs(ctx, q)
	return one(entity.KindJob, found, err)
}

// Location returns the location with id, or a no data error.
func (r *Repo) Location(ctx context.Context, id uuid.UUID) (entity.Location, error) {
	return r.RetrieveOneLocation(ctx, query.Location{ID: match.EqualTo(id)})
}

// Person returns the person with id, or a no data error.
func (r *Repo) Person(ctx context.Context, id uuid.UUID) (entity.Person, error) {
	return r.RetrieveOnePerson(ctx, query.Person{ID: match.EqualTo(id)})
}

// Organization returns the organization with id, or a no data error.
func (r *Repo) Organization(ctx context.Context, id uuid.UUID) (entity.Organization, error) {
	return r.RetrieveOneOrganization(ctx, query.Organization{ID: match.EqualTo(id)})
}

// Employee returns the employee with id, or a no data error.
func (r *Repo) Employee(ctx context.Context, id uuid.UUID) (entity.Employee, error) {
	return r.RetrieveOneEmployee(ctx, query.Employee{ID: match.EqualTo(id)})
}

// Job returns the job with id, or a no data error.
func (r *Repo) Job(ctx context.Context, id uuid.UUID) (entity.Job, error) {
	return r.RetrieveOneJob(ctx, query.Job{ID: match.EqualTo(id)})
}
