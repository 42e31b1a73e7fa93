package entity

import (
	"time"

	"github.com/google/uuid"
)

// Record is implemented by every persisted entity.
//
// Kind must be callable on the zero value: generic collections use it to
// find the directory (or table partition) a record type lives in.
type Record interface {
	Kind() Kind
	RecordID() uuid.UUID
}

// Person is a human who may be employed by one or more organizations.
type Person struct {
	ID          uuid.UUID          `yaml:"id" json:"id"`
	Name        string             `yaml:"name" json:"name"`
	ContactInfo map[string]Contact `yaml:"contact_info,omitempty" json:"contact_info,omitempty"`
}

func (Person) Kind() Kind             { return KindPerson }
func (p Person) RecordID() uuid.UUID { return p.ID }

// Location is a named place, optionally inside another (outer) location.
// Outer references form a forest; cycles are forbidden but not enforced on
// write.
type Location struct {
	ID      uuid.UUID  `yaml:"id" json:"id"`
	Name    string     `yaml:"name" json:"name"`
	OuterID *uuid.UUID `yaml:"outer_id,omitempty" json:"outer_id,omitempty"`
}

func (Location) Kind() Kind             { return KindLocation }
func (l Location) RecordID() uuid.UUID { return l.ID }

// Organization is a facilitator of business: a client, an employer, or both.
type Organization struct {
	ID         uuid.UUID `yaml:"id" json:"id"`
	LocationID uuid.UUID `yaml:"location_id" json:"location_id"`
	Name       string    `yaml:"name" json:"name"`
}

func (Organization) Kind() Kind             { return KindOrganization }
func (o Organization) RecordID() uuid.UUID { return o.ID }

// EmployeeStatus describes the relationship between a Person and the
// Organization they are an Employee of.
type EmployeeStatus string

const (
	StatusEmployed       EmployeeStatus = "employed"
	StatusNotEmployed    EmployeeStatus = "not_employed"
	StatusRepresentative EmployeeStatus = "representative"
)

// Valid reports whether s is one of the known statuses.
func (s EmployeeStatus) Valid() bool {
	switch s {
	case StatusEmployed, StatusNotEmployed, StatusRepresentative:
		return true
	}
	return false
}

// Employee binds a Person to an Organization.
//
// Setting Status to StatusNotEmployed is a viable alternative to deletion,
// since deletion scrubs the employee's timesheets from every job.
type Employee struct {
	ID             uuid.UUID          `yaml:"id" json:"id"`
	OrganizationID uuid.UUID          `yaml:"organization_id" json:"organization_id"`
	PersonID       uuid.UUID          `yaml:"person_id" json:"person_id"`
	Title          string             `yaml:"title" json:"title"`
	Status         EmployeeStatus     `yaml:"status" json:"status"`
	ContactInfo    map[string]Contact `yaml:"contact_info,omitempty" json:"contact_info,omitempty"`
}

func (Employee) Kind() Kind             { return KindEmployee }
func (e Employee) RecordID() uuid.UUID { return e.ID }

// Invoice is the accounts receivable for a Job.
// A zero DateIssued means the invoice has not been sent; a zero DatePaid
// means it has not been paid.
type Invoice struct {
	HourlyRate Money     `yaml:"hourly_rate" json:"hourly_rate"`
	DateIssued time.Time `yaml:"date_issued,omitempty" json:"date_issued,omitzero"`
	DatePaid   time.Time `yaml:"date_paid,omitempty" json:"date_paid,omitzero"`
}

// Job is a unit of work requested by a client Organization.
//
// A zero DateClose means the job is still open.
type Job struct {
	ID         uuid.UUID   `yaml:"id" json:"id"`
	ClientID   uuid.UUID   `yaml:"client_id" json:"client_id"`
	DateOpen   time.Time   `yaml:"date_open" json:"date_open"`
	DateClose  time.Time   `yaml:"date_close,omitempty" json:"date_close,omitzero"`
	Invoice    Invoice     `yaml:"invoice" json:"invoice"`
	Notes      string      `yaml:"notes" json:"notes"`
	Objectives string      `yaml:"objectives" json:"objectives"`
	Timesheets []Timesheet `yaml:"timesheets,omitempty" json:"timesheets,omitempty"`
}

func (Job) Kind() Kind             { return KindJob }
func (j Job) RecordID() uuid.UUID { return j.ID }

// Timesheet is a period of work on a Job performed by one Employee.
// A zero TimeEnd means the work is ongoing.
type Timesheet struct {
	EmployeeID uuid.UUID `yaml:"employee_id" json:"employee_id"`
	TimeBegin  time.Time `yaml:"time_begin" json:"time_begin"`
	TimeEnd    time.Time `yaml:"time_end,omitempty" json:"time_end,omitzero"`
	WorkNotes  string    `yaml:"work_notes" json:"work_notes"`
	Expenses   []Expense `yaml:"expenses,omitempty" json:"expenses,omitempty"`
}

// ExpenseCategory classifies an Expense.
type ExpenseCategory string

const (
	ExpenseFood     ExpenseCategory = "Food"
	ExpenseHosting  ExpenseCategory = "Hosting"
	ExpenseItem     ExpenseCategory = "Item"
	ExpenseOther    ExpenseCategory = "Other"
	ExpenseSoftware ExpenseCategory = "Software"
	ExpenseTravel   ExpenseCategory = "Travel"
)

// Expense is a cost incurred during a Timesheet, billed to the client.
type Expense struct {
	Category    ExpenseCategory `yaml:"category" json:"category"`
	Cost        Money           `yaml:"cost" json:"cost"`
	Description string          `yaml:"description" json:"description"`
}
