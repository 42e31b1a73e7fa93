package records

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/roach88/clerk/internal/entity"
)

func validateContacts(contacts map[string]entity.Contact) error {
	for label, c := range contacts {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("contact %q: %w", label, err)
		}
	}
	return nil
}

// CreateLocation stores a new outermost location.
func (r *Repo) CreateLocation(ctx context.Context, name string) (entity.Location, error) {
	l, err := r.Locations.Create(ctx, func(id uuid.UUID) entity.Location {
		return entity.Location{ID: id, Name: name}.Normalized()
	})
	if err != nil {
		return entity.Location{}, err
	}
	r.logger.Debug("record created", "kind", entity.KindLocation, "id", l.ID)
	return l, nil
}

// CreateInnerLocation stores a new location inside outer.
func (r *Repo) CreateInnerLocation(ctx context.Context, outer entity.Location, name string) (entity.Location, error) {
	outerID := outer.ID
	l, err := r.Locations.Create(ctx, func(id uuid.UUID) entity.Location {
		return entity.Location{ID: id, Name: name, OuterID: &outerID}.Normalized()
	})
	if err != nil {
		return entity.Location{}, err
	}
	r.logger.Debug("record created", "kind", entity.KindLocation, "id", l.ID, "outer", outerID)
	return l, nil
}

// CreatePerson stores a new person.
func (r *Repo) CreatePerson(ctx context.Context, name string, contacts map[string]entity.Contact) (entity.Person, error) {
	if err := validateContacts(contacts); err != nil {
		return entity.Person{}, fmt.Errorf("create person: %w", err)
	}
	p, err := r.People.Create(ctx, func(id uuid.UUID) entity.Person {
		return entity.Person{ID: id, Name: name, ContactInfo: contacts}.Normalized()
	})
	if err != nil {
		return entity.Person{}, err
	}
	r.logger.Debug("record created", "kind", entity.KindPerson, "id", p.ID)
	return p, nil
}

// CreateOrganization stores a new organization at location.
func (r *Repo) CreateOrganization(ctx context.Context, location entity.Location, name string) (entity.Organization, error) {
	o, err := r.Organizations.Create(ctx, func(id uuid.UUID) entity.Organization {
		return entity.Organization{ID: id, LocationID: location.ID, Name: name}.Normalized()
	})
	if err != nil {
		return entity.Organization{}, err
	}
	r.logger.Debug("record created", "kind", entity.KindOrganization, "id", o.ID)
	return o, nil
}

// CreateEmployee stores a new employee binding person to organization.
func (r *Repo) CreateEmployee(
	ctx context.Context,
	organization entity.Organization,
	person entity.Person,
	title string,
	status entity.EmployeeStatus,
	contacts map[string]entity.Contact,
) (entity.Employee, error) {
	if !status.Valid() {
		return entity.Employee{}, fmt.Errorf("create employee: unknown status %q", status)
	}
	if err := validateContacts(contacts); err != nil {
		return entity.Employee{}, fmt.Errorf("create employee: %w", err)
	}

	e, err := r.Employees.Create(ctx, func(id uuid.UUID) entity.Employee {
		return entity.Employee{
			ID:             id,
			OrganizationID: organization.ID,
			PersonID:       person.ID,
			Title:          title,
			Status:         status,
			ContactInfo:    contacts,
		}.Normalized()
	})
	if err != nil {
		return entity.Employee{}, err
	}
	r.logger.Debug("record created", "kind", entity.KindEmployee, "id", e.ID)
	return e, nil
}

// CreateJob stores a new open job for client.
func (r *Repo) CreateJob(
	ctx context.Context,
	client entity.Organization,
	dateOpen time.Time,
	hourlyRate entity.Money,
	objectives string,
) (entity.Job, error) {
	j, err := r.Jobs.Create(ctx, func(id uuid.UUID) entity.Job {
		return entity.Job{
			ID:         id,
			ClientID:   client.ID,
			DateOpen:   dateOpen,
			Invoice:    entity.Invoice{HourlyRate: hourlyRate},
			Objectives: objectives,
		}.Normalized()
	})
	if err != nil {
		return entity.Job{}, err
	}
	r.logger.Debug("record created", "kind", entity.KindJob, "id", j.ID)
	return j, nil
}

// UpdateLocation overwrites the stored location.
func (r *Repo) UpdateLocation(ctx context.Context, l entity.Location) error {
	return r.Locations.Update(ctx, l.Normalized())
}

// UpdatePerson overwrites the stored person.
func (r *Repo) UpdatePerson(ctx context.Context, p entity.Person) error {
	if err := validateContacts(p.ContactInfo); err != nil {
		return fmt.Errorf("update person: %w", err)
	}
	return r.People.Update(ctx, p.Normalized())
}

// UpdateOrganization overwrites the stored organization.
func (r *Repo) UpdateOrganization(ctx context.Context, o entity.Organization) error {
	return r.Organizations.Update(ctx, o.Normalized())
}

// UpdateEmployee overwrites the stored employee.
func (r *Repo) UpdateEmployee(ctx context.Context, e entity.Employee) error {
	if !e.Status.Valid() {
		return fmt.Errorf("update employee: unknown status %q", e.Status)
	}
	if err := validateContacts(e.ContactInfo); err != nil {
		return fmt.Errorf("update employee: %w", err)
	}
	return r.Employees.Update(ctx, e.Normalized())
}

// UpdateJob overwrites the stored job.
func (r *Repo) UpdateJob(ctx context.Context, j entity.Job) error {
	return r.Jobs.Update(ctx, j.Normalized())
}
