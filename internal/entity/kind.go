package entity

import "fmt"

// Kind names a record kind. The value doubles as the directory name of the
// kind inside a flat-file store.
type Kind string

const (
	KindEmployee     Kind = "Employees"
	KindJob          Kind = "Jobs"
	KindLocation     Kind = "Locations"
	KindOrganization Kind = "Organizations"
	KindPerson       Kind = "People"
)

// Kinds lists every record kind in a fixed order.
var Kinds = []Kind{KindEmployee, KindJob, KindLocation, KindOrganization, KindPerson}

// ParseKind accepts a kind by directory name or by its singular,
// lower-case spelling ("location", "person", ...).
func ParseKind(s string) (Kind, error) {
	switch s {
	case string(KindEmployee), "employee", "employees":
		return KindEmployee, nil
	case string(KindJob), "job", "jobs":
		return KindJob, nil
	case string(KindLocation), "location", "locations":
		return KindLocation, nil
	case string(KindOrganization), "organization", "organizations", "org":
		return KindOrganization, nil
	case string(KindPerson), "person", "people":
		return KindPerson, nil
	}
	return "", fmt.Errorf("unknown record kind %q", s)
}
