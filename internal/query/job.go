package query

import (
	"time"

	"github.com/google/uuid"

	"github.com/roach88/clerk/internal/entity"
	"github.com/roach88/clerk/internal/match"
)

// Invoice matches the invoice embedded in a job.
//
// An unissued or unpaid invoice has a zero date, so
// DatePaid: match.EqualTo(time.Time{}) selects unpaid invoices.
type Invoice struct {
	HourlyRate match.Match[entity.Money] `yaml:"hourly_rate,omitempty" json:"hourly_rate,omitzero"`
	DateIssued match.Match[time.Time]    `yaml:"date_issued,omitempty" json:"date_issued,omitzero"`
	DatePaid   match.Match[time.Time]    `yaml:"date_paid,omitempty" json:"date_paid,omitzero"`
}

// Matches tests an invoice.
func (q Invoice) Matches(i entity.Invoice) bool {
	return q.HourlyRate.Matches(i.HourlyRate) &&
		q.DateIssued.Matches(i.DateIssued) &&
		q.DatePaid.Matches(i.DatePaid)
}

// Timesheet matches the timesheets of a job.
type Timesheet struct {
	Employee  Employee               `yaml:"employee,omitempty" json:"employee,omitzero"`
	TimeBegin match.Match[time.Time] `yaml:"time_begin,omitempty" json:"time_begin,omitzero"`
	TimeEnd   match.Match[time.Time] `yaml:"time_end,omitempty" json:"time_end,omitzero"`
}

// IsAny reports whether q places no constraint at all, in which case it
// matches a job with no timesheets too.
func (q Timesheet) IsAny() bool {
	return q.Employee.IsAny() && q.TimeBegin.IsAny() && q.TimeEnd.IsAny()
}

// SetMatches tests a job's stored timesheets as a whole: each field
// predicate is applied with set semantics to the collection of that
// field's values. Only the employee sub-query's ID is consulted.
func (q Timesheet) SetMatches(timesheets []entity.Timesheet) bool {
	employees := make([]uuid.UUID, len(timesheets))
	begins := make([]time.Time, len(timesheets))
	ends := make([]time.Time, len(timesheets))
	for i, t := range timesheets {
		employees[i] = t.EmployeeID
		begins[i] = t.TimeBegin
		ends[i] = t.TimeEnd
	}

	return q.Employee.ID.SetMatches(employees) &&
		q.TimeBegin.SetMatches(begins) &&
		q.TimeEnd.SetMatches(ends)
}

// MatchesView tests one materialized timesheet.
func (q Timesheet) MatchesView(v entity.TimesheetView) bool {
	return q.Employee.MatchesView(v.Employee) &&
		q.TimeBegin.Matches(v.TimeBegin) &&
		q.TimeEnd.Matches(v.TimeEnd)
}

// AnyMatchesView reports whether some timesheet satisfies q. A
// constraint-free q matches every collection, including an empty one.
func (q Timesheet) AnyMatchesView(timesheets []entity.TimesheetView) bool {
	if q.IsAny() {
		return true
	}
	for _, t := range timesheets {
		if q.MatchesView(t) {
			return true
		}
	}
	return false
}

// Job matches jobs.
//
// An open job has a zero DateClose, so DateClose: match.EqualTo(time.Time{})
// selects open jobs.
type Job struct {
	ID         match.Match[uuid.UUID] `yaml:"id,omitempty" json:"id,omitzero"`
	Client     Organization           `yaml:"client,omitempty" json:"client,omitzero"`
	DateOpen   match.Match[time.Time] `yaml:"date_open,omitempty" json:"date_open,omitzero"`
	DateClose  match.Match[time.Time] `yaml:"date_close,omitempty" json:"date_close,omitzero"`
	Invoice    Invoice                `yaml:"invoice,omitempty" json:"invoice,omitzero"`
	Notes      match.Match[string]    `yaml:"notes,omitempty" json:"notes,omitzero"`
	Objectives match.Match[string]    `yaml:"objectives,omitempty" json:"objectives,omitzero"`
	Timesheets Timesheet              `yaml:"timesheets,omitempty" json:"timesheets,omitzero"`
}

// Matches tests a stored job. The client sub-query only consults its ID.
func (q Job) Matches(j entity.Job) bool {
	return q.ID.Matches(j.ID) &&
		q.Client.ID.Matches(j.ClientID) &&
		q.DateOpen.Matches(j.DateOpen) &&
		q.DateClose.Matches(j.DateClose) &&
		q.Invoice.Matches(j.Invoice) &&
		q.Notes.Matches(j.Notes) &&
		q.Objectives.Matches(j.Objectives) &&
		q.Timesheets.SetMatches(j.Timesheets)
}

// MatchesView tests a job view. The timesheet sub-query must be satisfied
// by at least one timesheet, unless it places no constraint.
func (q Job) MatchesView(v entity.JobView) bool {
	return q.ID.Matches(v.ID) &&
		q.Client.MatchesView(v.Client) &&
		q.DateOpen.Matches(v.DateOpen) &&
		q.DateClose.Matches(v.DateClose) &&
		q.Invoice.Matches(v.Invoice) &&
		q.Notes.Matches(v.Notes) &&
		q.Objectives.Matches(v.Objectives) &&
		q.Timesheets.AnyMatchesView(v.Timesheets)
}
