package query

import (
	"github.com/google/uuid"

	"github.com/roach88/clerk/internal/entity"
	"github.com/roach88/clerk/internal/match"
)

// Organization matches organizations.
type Organization struct {
	ID       match.Match[uuid.UUID] `yaml:"id,omitempty" json:"id,omitzero"`
	Location Location               `yaml:"location,omitempty" json:"location,omitzero"`
	Name     match.Match[string]    `yaml:"name,omitempty" json:"name,omitzero"`
}

// IsAny reports whether q places no constraint.
func (q Organization) IsAny() bool {
	return q.ID.IsAny() && q.Location.IsAny() && q.Name.IsAny()
}

// Matches tests a stored organization. The location sub-query only
// consults its ID.
func (q Organization) Matches(o entity.Organization) bool {
	return q.ID.Matches(o.ID) &&
		q.Location.ID.Matches(o.LocationID) &&
		q.Name.Matches(o.Name)
}

// MatchesView tests an organization view, recursing into its location.
func (q Organization) MatchesView(v entity.OrganizationView) bool {
	return q.ID.Matches(v.ID) &&
		q.Location.MatchesView(v.Location) &&
		q.Name.Matches(v.Name)
}
