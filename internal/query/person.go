package query

import (
	"github.com/google/uuid"

	"github.com/roach88/clerk/internal/entity"
	"github.com/roach88/clerk/internal/match"
)

// Person matches people.
type Person struct {
	ID   match.Match[uuid.UUID] `yaml:"id,omitempty" json:"id,omitzero"`
	Name match.Match[string]    `yaml:"name,omitempty" json:"name,omitzero"`
}

// IsAny reports whether q places no constraint.
func (q Person) IsAny() bool {
	return q.ID.IsAny() && q.Name.IsAny()
}

// Matches tests a stored person.
func (q Person) Matches(p entity.Person) bool {
	return q.ID.Matches(p.ID) && q.Name.Matches(p.Name)
}

// MatchesView tests a person view.
func (q Person) MatchesView(v entity.PersonView) bool {
	return q.ID.Matches(v.ID) && q.Name.Matches(v.Name)
}
