package entity

import (
	"time"

	"golang.org/x/text/unicode/norm"
)

// Normalize returns s in Unicode Normalization Form C.
//
// "Mćtesterson" typed with a combining accent and with a precomposed
// character must compare equal once stored.
func Normalize(s string) string {
	return norm.NFC.String(s)
}

// NormalizeTime converts t to UTC with second precision and no monotonic
// reading. The zero time stays zero.
func NormalizeTime(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}
	return t.UTC().Truncate(time.Second)
}

func normalizeContacts(contacts map[string]Contact) map[string]Contact {
	if len(contacts) == 0 {
		return nil
	}
	out := make(map[string]Contact, len(contacts))
	for label, c := range contacts {
		c.Email = Normalize(c.Email)
		c.Phone = Normalize(c.Phone)
		out[Normalize(label)] = c
	}
	return out
}

// Normalized returns a copy of p with normalized strings.
func (p Person) Normalized() Person {
	p.Name = Normalize(p.Name)
	p.ContactInfo = normalizeContacts(p.ContactInfo)
	return p
}

// Normalized returns a copy of l with normalized strings.
func (l Location) Normalized() Location {
	l.Name = Normalize(l.Name)
	return l
}

// Normalized returns a copy of o with normalized strings.
func (o Organization) Normalized() Organization {
	o.Name = Normalize(o.Name)
	return o
}

// Normalized returns a copy of e with normalized strings.
func (e Employee) Normalized() Employee {
	e.Title = Normalize(e.Title)
	e.ContactInfo = normalizeContacts(e.ContactInfo)
	return e
}

// Normalized returns a copy of j with normalized strings and times.
// The timesheet slice is copied; the receiver is not modified.
func (j Job) Normalized() Job {
	j.DateOpen = NormalizeTime(j.DateOpen)
	j.DateClose = NormalizeTime(j.DateClose)
	j.Invoice.DateIssued = NormalizeTime(j.Invoice.DateIssued)
	j.Invoice.DatePaid = NormalizeTime(j.Invoice.DatePaid)
	j.Notes = Normalize(j.Notes)
	j.Objectives = Normalize(j.Objectives)

	if j.Timesheets != nil {
		timesheets := make([]Timesheet, len(j.Timesheets))
		for i, t := range j.Timesheets {
			t.TimeBegin = NormalizeTime(t.TimeBegin)
			t.TimeEnd = NormalizeTime(t.TimeEnd)
			t.WorkNotes = Normalize(t.WorkNotes)
			if t.Expenses != nil {
				expenses := make([]Expense, len(t.Expenses))
				for k, e := range t.Expenses {
					e.Description = Normalize(e.Description)
					expenses[k] = e
				}
				t.Expenses = expenses
			}
			timesheets[i] = t
		}
		j.Timesheets = timesheets
	}
	return j
}
