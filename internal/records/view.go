package records

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/google/uuid"

	"github.com/roach88/clerk/internal/entity"
	"github.com/roach88/clerk/internal/match"
	"github.com/roach88/clerk/internal/store"
)

// resolver materializes views for a single call. Each referenced id is
// looked up with a full scan of its kind filtered by EqualTo(id), and the
// record found is cached so repeated references are read once.
//
// A resolver is not safe for concurrent use.
type resolver struct {
	ctx  context.Context
	repo *Repo

	employees     map[uuid.UUID]entity.Employee
	locations     map[uuid.UUID]entity.Location
	organizations map[uuid.UUID]entity.Organization
	people        map[uuid.UUID]entity.Person
}

func (r *Repo) resolver(ctx context.Context) *resolver {
	return &resolver{
		ctx:           ctx,
		repo:          r,
		employees:     make(map[uuid.UUID]entity.Employee),
		locations:     make(map[uuid.UUID]entity.Location),
		organizations: make(map[uuid.UUID]entity.Organization),
		people:        make(map[uuid.UUID]entity.Person),
	}
}

// lookup finds the record of c with id. referrer describes the record
// holding the reference, for the error message.
func lookup[E entity.Record](
	ctx context.Context,
	c *store.Collection[E],
	cache map[uuid.UUID]E,
	id uuid.UUID,
	referrer string,
) (E, error) {
	if record, ok := cache[id]; ok {
		return record, nil
	}

	byID := match.EqualTo(id)
	for record, err := range c.All(ctx) {
		if err != nil {
			var zero E
			return zero, err
		}
		if byID.Matches(record.RecordID()) {
			cache[id] = record
			return record, nil
		}
	}

	var zero E
	return zero, NewDataIntegrityError(c.Kind(), id, referrer)
}

func (rv *resolver) location(id uuid.UUID, referrer string) (entity.Location, error) {
	return lookup(rv.ctx, rv.repo.Locations, rv.locations, id, referrer)
}

func (rv *resolver) organization(id uuid.UUID, referrer string) (entity.Organization, error) {
	return lookup(rv.ctx, rv.repo.Organizations, rv.organizations, id, referrer)
}

func (rv *resolver) person(id uuid.UUID, referrer string) (entity.Person, error) {
	return lookup(rv.ctx, rv.repo.People, rv.people, id, referrer)
}

func (rv *resolver) employee(id uuid.UUID, referrer string) (entity.Employee, error) {
	return lookup(rv.ctx, rv.repo.Employees, rv.employees, id, referrer)
}

func referrer(kind entity.Kind, id uuid.UUID) string {
	return fmt.Sprintf("%s/%s", kind, id)
}

// locationView builds the view of l from its outer chain. Views are built
// fresh on every call; no two views share an Outer pointer.
func (rv *resolver) locationView(l entity.Location) (entity.LocationView, error) {
	chain, err := rv.outers(l)
	if err != nil {
		return entity.LocationView{}, err
	}

	var outer *entity.LocationView
	for i := len(chain) - 1; i >= 0; i-- {
		outer = &entity.LocationView{ID: chain[i].ID, Name: chain[i].Name, Outer: outer}
	}
	return entity.LocationView{ID: l.ID, Name: l.Name, Outer: outer}, nil
}

func (rv *resolver) contactView(c entity.Contact, owner string) (entity.ContactView, error) {
	v := entity.ContactView{
		Kind:   c.Kind,
		Email:  c.Email,
		Phone:  c.Phone,
		Export: c.Export,
	}
	if c.Kind == entity.ContactAddress {
		l, err := rv.location(c.Location, owner)
		if err != nil {
			return entity.ContactView{}, err
		}
		lv, err := rv.locationView(l)
		if err != nil {
			return entity.ContactView{}, err
		}
		v.Location = &lv
	}
	return v, nil
}

// contactViews materializes contacts in label order so the first failure
// reported is deterministic.
func (rv *resolver) contactViews(contacts map[string]entity.Contact, owner string) (map[string]entity.ContactView, error) {
	if len(contacts) == 0 {
		return nil, nil
	}
	out := make(map[string]entity.ContactView, len(contacts))
	for _, label := range slices.Sorted(maps.Keys(contacts)) {
		v, err := rv.contactView(contacts[label], owner)
		if err != nil {
			return nil, err
		}
		out[label] = v
	}
	return out, nil
}

func (rv *resolver) personView(p entity.Person) (entity.PersonView, error) {
	contacts, err := rv.contactViews(p.ContactInfo, referrer(entity.KindPerson, p.ID))
	if err != nil {
		return entity.PersonView{}, err
	}
	return entity.PersonView{ID: p.ID, Name: p.Name, ContactInfo: contacts}, nil
}

func (rv *resolver) organizationView(o entity.Organization) (entity.OrganizationView, error) {
	l, err := rv.location(o.LocationID, referrer(entity.KindOrganization, o.ID))
	if err != nil {
		return entity.OrganizationView{}, err
	}
	lv, err := rv.locationView(l)
	if err != nil {
		return entity.OrganizationView{}, err
	}
	return entity.OrganizationView{ID: o.ID, Location: lv, Name: o.Name}, nil
}

func (rv *resolver) employeeView(e entity.Employee) (entity.EmployeeView, error) {
	self := referrer(entity.KindEmployee, e.ID)

	o, err := rv.organization(e.OrganizationID, self)
	if err != nil {
		return entity.EmployeeView{}, err
	}
	ov, err := rv.organizationView(o)
	if err != nil {
		return entity.EmployeeView{}, err
	}

	p, err := rv.person(e.PersonID, self)
	if err != nil {
		return entity.EmployeeView{}, err
	}
	pv, err := rv.personView(p)
	if err != nil {
		return entity.EmployeeView{}, err
	}

	contacts, err := rv.contactViews(e.ContactInfo, self)
	if err != nil {
		return entity.EmployeeView{}, err
	}

	return entity.EmployeeView{
		ID:           e.ID,
		Organization: ov,
		Person:       pv,
		Title:        e.Title,
		Status:       e.Status,
		ContactInfo:  contacts,
	}, nil
}

func (rv *resolver) jobView(j entity.Job) (entity.JobView, error) {
	self := referrer(entity.KindJob, j.ID)

	client, err := rv.organization(j.ClientID, self)
	if err != nil {
		return entity.JobView{}, err
	}
	cv, err := rv.organizationView(client)
	if err != nil {
		return entity.JobView{}, err
	}

	v := entity.JobView{
		ID:         j.ID,
		Client:     cv,
		DateOpen:   j.DateOpen,
		DateClose:  j.DateClose,
		Invoice:    j.Invoice,
		Notes:      j.Notes,
		Objectives: j.Objectives,
	}

	if len(j.Timesheets) > 0 {
		v.Timesheets = make([]entity.TimesheetView, len(j.Timesheets))
		for i, t := range j.Timesheets {
			e, err := rv.employee(t.EmployeeID, fmt.Sprintf("%s timesheet %d", self, i))
			if err != nil {
				return entity.JobView{}, err
			}
			ev, err := rv.employeeView(e)
			if err != nil {
				return entity.JobView{}, err
			}
			v.Timesheets[i] = entity.TimesheetView{
				Employee:  ev,
				TimeBegin: t.TimeBegin,
				TimeEnd:   t.TimeEnd,
				WorkNotes: t.WorkNotes,
				Expenses:  slices.Clone(t.Expenses),
			}
		}
	}

	return v, nil
}

// LocationView materializes l with its outer chain.
func (r *Repo) LocationView(ctx context.Context, l entity.Location) (entity.LocationView, error) {
	return r.resolver(ctx).locationView(l)
}

// PersonView materializes p with its address contacts.
func (r *Repo) PersonView(ctx context.Context, p entity.Person) (entity.PersonView, error) {
	return r.resolver(ctx).personView(p)
}

// OrganizationView materializes o with its location.
func (r *Repo) OrganizationView(ctx context.Context, o entity.Organization) (entity.OrganizationView, error) {
	return r.resolver(ctx).organizationView(o)
}

// EmployeeView materializes e with its organization, person and contacts.
func (r *Repo) EmployeeView(ctx context.Context, e entity.Employee) (entity.EmployeeView, error) {
	return r.resolver(ctx).employeeView(e)
}

// JobView materializes j with its client and every timesheet's employee.
func (r *Repo) JobView(ctx context.Context, j entity.Job) (entity.JobView, error) {
	return r.resolver(ctx).jobView(j)
}
