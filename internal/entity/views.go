package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// LocationView is a Location with its outer chain materialized.
type LocationView struct {
	ID    uuid.UUID     `yaml:"id" json:"id"`
	Name  string        `yaml:"name" json:"name"`
	Outer *LocationView `yaml:"outer,omitempty" json:"outer,omitempty"`
}

// String renders the location followed by every outer location,
// e.g. "Phoenix, Arizona, USA, Earth".
func (v LocationView) String() string {
	var b strings.Builder
	b.WriteString(v.Name)
	for o := v.Outer; o != nil; o = o.Outer {
		b.WriteString(", ")
		b.WriteString(o.Name)
	}
	return b.String()
}

// Location converts the view back to its stored record.
func (v LocationView) Location() Location {
	l := Location{ID: v.ID, Name: v.Name}
	if v.Outer != nil {
		outer := v.Outer.ID
		l.OuterID = &outer
	}
	return l
}

// ContactView is a Contact whose address, if any, is materialized.
type ContactView struct {
	Kind     ContactKind   `yaml:"kind" json:"kind"`
	Location *LocationView `yaml:"location,omitempty" json:"location,omitempty"`
	Email    string        `yaml:"email,omitempty" json:"email,omitempty"`
	Phone    string        `yaml:"phone,omitempty" json:"phone,omitempty"`
	Export   bool          `yaml:"export" json:"export"`
}

func (c ContactView) String() string {
	switch c.Kind {
	case ContactAddress:
		if c.Location != nil {
			return c.Location.String()
		}
	case ContactEmail:
		return c.Email
	case ContactPhone:
		return c.Phone
	}
	return ""
}

// PersonView is a Person with materialized contact information.
type PersonView struct {
	ID          uuid.UUID              `yaml:"id" json:"id"`
	Name        string                 `yaml:"name" json:"name"`
	ContactInfo map[string]ContactView `yaml:"contact_info,omitempty" json:"contact_info,omitempty"`
}

// OrganizationView is an Organization with its location materialized.
type OrganizationView struct {
	ID       uuid.UUID    `yaml:"id" json:"id"`
	Location LocationView `yaml:"location" json:"location"`
	Name     string       `yaml:"name" json:"name"`
}

// String renders "Name @ Location".
func (v OrganizationView) String() string {
	return v.Name + " @ " + v.Location.String()
}

// EmployeeView is an Employee with organization, person and contact
// information materialized.
type EmployeeView struct {
	ID           uuid.UUID              `yaml:"id" json:"id"`
	Organization OrganizationView       `yaml:"organization" json:"organization"`
	Person       PersonView             `yaml:"person" json:"person"`
	Title        string                 `yaml:"title" json:"title"`
	Status       EmployeeStatus         `yaml:"status" json:"status"`
	ContactInfo  map[string]ContactView `yaml:"contact_info,omitempty" json:"contact_info,omitempty"`
}

// TimesheetView is a Timesheet with its employee materialized.
type TimesheetView struct {
	Employee  EmployeeView `yaml:"employee" json:"employee"`
	TimeBegin time.Time    `yaml:"time_begin" json:"time_begin"`
	TimeEnd   time.Time    `yaml:"time_end,omitempty" json:"time_end,omitzero"`
	WorkNotes string       `yaml:"work_notes" json:"work_notes"`
	Expenses  []Expense    `yaml:"expenses,omitempty" json:"expenses,omitempty"`
}

// Timesheet converts the view back to its stored form.
func (v TimesheetView) Timesheet() Timesheet {
	return Timesheet{
		EmployeeID: v.Employee.ID,
		TimeBegin:  v.TimeBegin,
		TimeEnd:    v.TimeEnd,
		WorkNotes:  v.WorkNotes,
		Expenses:   v.Expenses,
	}
}

// JobView is a Job with its client and every timesheet materialized.
type JobView struct {
	ID         uuid.UUID        `yaml:"id" json:"id"`
	Client     OrganizationView `yaml:"client" json:"client"`
	DateOpen   time.Time        `yaml:"date_open" json:"date_open"`
	DateClose  time.Time        `yaml:"date_close,omitempty" json:"date_close,omitzero"`
	Invoice    Invoice          `yaml:"invoice" json:"invoice"`
	Notes      string           `yaml:"notes" json:"notes"`
	Objectives string           `yaml:"objectives" json:"objectives"`
	Timesheets []TimesheetView  `yaml:"timesheets,omitempty" json:"timesheets,omitempty"`
}

// Job converts the view back to its stored record.
func (v JobView) Job() Job {
	j := Job{
		ID:         v.ID,
		ClientID:   v.Client.ID,
		DateOpen:   v.DateOpen,
		DateClose:  v.DateClose,
		Invoice:    v.Invoice,
		Notes:      v.Notes,
		Objectives: v.Objectives,
	}
	if v.Timesheets != nil {
		j.Timesheets = make([]Timesheet, len(v.Timesheets))
		for i, t := range v.Timesheets {
			j.Timesheets[i] = t.Timesheet()
		}
	}
	return j
}
