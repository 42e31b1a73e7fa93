package query

import (
	"github.com/google/uuid"

	"github.com/roach88/clerk/internal/entity"
	"github.com/roach88/clerk/internal/match"
)

// Employee matches employees.
type Employee struct {
	ID           match.Match[uuid.UUID]             `yaml:"id,omitempty" json:"id,omitzero"`
	Organization Organization                       `yaml:"organization,omitempty" json:"organization,omitzero"`
	Person       Person                             `yaml:"person,omitempty" json:"person,omitzero"`
	Title        match.Match[string]                `yaml:"title,omitempty" json:"title,omitzero"`
	Status       match.Match[entity.EmployeeStatus] `yaml:"status,omitempty" json:"status,omitzero"`
}

// IsAny reports whether q places no constraint.
func (q Employee) IsAny() bool {
	return q.ID.IsAny() && q.Organization.IsAny() && q.Person.IsAny() &&
		q.Title.IsAny() && q.Status.IsAny()
}

// Matches tests a stored employee. Organization and person sub-queries
// only consult their ID.
func (q Employee) Matches(e entity.Employee) bool {
	return q.ID.Matches(e.ID) &&
		q.Organization.ID.Matches(e.OrganizationID) &&
		q.Person.ID.Matches(e.PersonID) &&
		q.Title.Matches(e.Title) &&
		q.Status.Matches(e.Status)
}

// MatchesView tests an employee view, recursing into the organization
// and person.
func (q Employee) MatchesView(v entity.EmployeeView) bool {
	return q.ID.Matches(v.ID) &&
		q.Organization.MatchesView(v.Organization) &&
		q.Person.MatchesView(v.Person) &&
		q.Title.Matches(v.Title) &&
		q.Status.Matches(v.Status)
}
